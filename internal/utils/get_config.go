package utils

import (
	"gopkg.in/yaml.v2"
	"log"
	"os"
	"strconv"
	"strings"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Application
	AppURL  string `yaml:"APP_URL"`
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis cache
	RedisAddr       string `yaml:"REDIS_ADDR"`
	RedisPassword   string `yaml:"REDIS_PASSWORD"`
	RedisDB         string `yaml:"REDIS_DB"`
	CacheTTLSeconds string `yaml:"CACHE_TTL_SECONDS"`

	// Kafka notification stream
	KafkaBrokers string `yaml:"KAFKA_BROKERS"`
	KafkaTopic   string `yaml:"KAFKA_TOPIC"`

	NotifyTimeoutSeconds string `yaml:"NOTIFY_TIMEOUT_SECONDS"`
}

var config Config

func LoadConfig() {
	LoadConfigFrom(DefaultConfigPath)
}

// LoadConfigFrom reads the YAML file at path. A missing or broken file is
// logged and leaves every key empty, which disables the optional integrations.
func LoadConfigFrom(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	var loaded Config
	err = yaml.Unmarshal(file, &loaded)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
	config = loaded

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

func GetConfig(key string) string {
	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return config.RedisDB
	case "CACHE_TTL_SECONDS":
		return config.CacheTTLSeconds
	case "KAFKA_BROKERS":
		return config.KafkaBrokers
	case "KAFKA_TOPIC":
		return config.KafkaTopic
	case "NOTIFY_TIMEOUT_SECONDS":
		return config.NotifyTimeoutSeconds
	default:
		return ""
	}
}

// GetConfigInt returns fallback when the key is unset or not a number.
func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		return fallback
	}
	return value
}

// GetConfigList splits a comma separated value, dropping empty items.
func GetConfigList(key string) []string {
	var values []string
	for _, item := range strings.Split(GetConfig(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	return values
}
