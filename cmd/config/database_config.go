package config

import (
	"Aahar-Backend/internal/cache"
	"Aahar-Backend/internal/utils"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// ConnectRedis returns a disabled cache when REDIS_ADDR is empty.
func ConnectRedis() (*cache.RedisCache, error) {
	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     utils.GetConfig("REDIS_ADDR"),
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       utils.GetConfigInt("REDIS_DB", 0),
		TTL:      time.Duration(utils.GetConfigInt("CACHE_TTL_SECONDS", 300)) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	if !redisCache.Enabled() {
		log.Warn("REDIS_ADDR is empty, dashboard caching is disabled")
	}
	return redisCache, nil
}
