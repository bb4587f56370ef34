package config

import (
	"Aahar-Backend/internal/api/handlers"
	"Aahar-Backend/internal/api/routes"
	"Aahar-Backend/internal/middleware"
	"Aahar-Backend/internal/utils"
	"Aahar-Backend/internal/utils/mailing"
	"Aahar-Backend/internal/utils/storage"
	"Aahar-Backend/pkg/dashboard"
	"Aahar-Backend/pkg/donation"
	"Aahar-Backend/pkg/event"
	"Aahar-Backend/pkg/impact"
	"Aahar-Backend/pkg/jwt"
	"Aahar-Backend/pkg/notification"
	"Aahar-Backend/pkg/report"
	"Aahar-Backend/pkg/review"
	"Aahar-Backend/pkg/user"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	redisCache, err := ConnectRedis()
	if err != nil {
		return nil, err
	}
	dispatcher := newDispatcher(db)

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	impactRepository := impact.NewImpactRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	eventRepository := event.NewEventRepository(db)
	reportRepository := report.NewReportRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	userService := user.NewUserService(userRepository, jwtService, s3)
	impactService := impact.NewImpactService(impactRepository)
	donationService := donation.NewDonationService(donationRepository, impactService, dispatcher, redisCache)
	dashboardService := dashboard.NewDashboardService(donationService, impactService, redisCache)
	reviewService := review.NewReviewService(reviewRepository)
	eventService := event.NewEventService(eventRepository)
	reportService := report.NewReportService(reportRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	volunteerHandler := handlers.NewVolunteerHandler(donationService, dashboardService, userService, validator)
	donorHandler := handlers.NewDonorHandler(donationService, dashboardService, impactService, userService, validator)
	communityHandler := handlers.NewCommunityHandler(reviewService, eventService, reportService, validator)

	app.Hooks().OnShutdown(func() error {
		return errors.Join(dispatcher.Close(), redisCache.Close(), file.Close())
	})

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		DonationHandler:  donationHandler,
		VolunteerHandler: volunteerHandler,
		DonorHandler:     donorHandler,
		CommunityHandler: communityHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// newDispatcher enables the email and Kafka channels that are configured.
func newDispatcher(db *gorm.DB) notification.Dispatcher {
	var channels []notification.Channel

	if mailConfig := mailing.LoadMailConfig(); mailConfig.Enabled() {
		contacts := notification.NewContactRepository(db)
		channels = append(channels, notification.NewEmailChannel(mailing.NewMailer(mailConfig), contacts, utils.GetConfig("APP_URL")))
	} else {
		log.Warn("SMTP is not configured, email notifications are disabled")
	}

	if brokers := utils.GetConfigList("KAFKA_BROKERS"); len(brokers) > 0 {
		channels = append(channels, notification.NewKafkaChannel(brokers, utils.GetConfig("KAFKA_TOPIC")))
	} else {
		log.Warn("KAFKA_BROKERS is empty, event stream publishing is disabled")
	}

	timeout := time.Duration(utils.GetConfigInt("NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second
	return notification.NewDispatcher(timeout, channels...)
}
