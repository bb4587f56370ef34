package routes

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/api/handlers"
	"Aahar-Backend/internal/middleware"
	"Aahar-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	DonationHandler  handlers.DonationHandler
	VolunteerHandler handlers.VolunteerHandler
	DonorHandler     handlers.DonorHandler
	CommunityHandler handlers.CommunityHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Donations()
	c.Volunteers()
	c.Donors()
	c.Community()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/me", c.UserHandler.Me)
		user.Get("/:id/reviews", c.CommunityHandler.GetUserReviews)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Post("", c.Middleware.RequireRoles(domain.RoleDonor), c.DonationHandler.CreateDonation)
		donations.Get("", c.DonationHandler.GetDonations)
		donations.Get("/:id", c.DonationHandler.GetDonationByID)
		donations.Patch("/:id/status", c.DonationHandler.UpdateDonationStatus)
		donations.Post("/:id/recipient", c.DonationHandler.AssignRecipient)
	}
}

func (c *Config) Volunteers() {
	volunteers := c.App.Group("/api/v1/volunteers",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleVolunteer),
	)
	{
		volunteers.Get("/pickups", c.VolunteerHandler.GetAvailablePickups)
		volunteers.Post("/pickups/:id/accept", c.VolunteerHandler.AcceptPickup)
		volunteers.Patch("/pickups/:id/status", c.VolunteerHandler.UpdatePickupStatus)
		volunteers.Get("/metrics", c.VolunteerHandler.GetMetrics)
		volunteers.Put("/profile", c.VolunteerHandler.UpdateProfile)
	}
}

func (c *Config) Donors() {
	donors := c.App.Group("/api/v1/donors",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleDonor),
	)
	{
		donors.Get("/dashboard", c.DonorHandler.GetDashboard)
		donors.Get("/donations/history", c.DonorHandler.GetDonationHistory)
		donors.Get("/analytics", c.DonorHandler.GetAnalytics)
		donors.Get("/tax-certificate/:year", c.DonorHandler.GetTaxCertificate)
		donors.Put("/profile", c.DonorHandler.UpdateProfile)
		donors.Post("/verify", c.DonorHandler.UploadVerificationDocuments)
	}
}

func (c *Config) Community() {
	authenticated := c.Middleware.AuthMiddleware(c.JWTService)

	reviews := c.App.Group("/api/v1/reviews", authenticated)
	reviews.Post("", c.CommunityHandler.CreateReview)

	events := c.App.Group("/api/v1/events", authenticated)
	{
		events.Get("", c.CommunityHandler.GetEvents)
		events.Post("", c.Middleware.RequireRoles(domain.RoleAdmin), c.CommunityHandler.CreateEvent)
		events.Post("/:id/register", c.CommunityHandler.RegisterForEvent)
		events.Delete("/:id/register", c.CommunityHandler.CancelEventRegistration)
	}

	reports := c.App.Group("/api/v1/reports", authenticated)
	reports.Post("", c.CommunityHandler.CreateReport)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RequireRoles(domain.RoleAdmin),
	)
	{
		admin.Patch("/users/:id/verify", c.UserHandler.VerifyUser)
		admin.Get("/reports", c.CommunityHandler.GetReports)
		admin.Patch("/reports/:id", c.CommunityHandler.UpdateReport)
		admin.Post("/donations/:id/rewards", c.DonationHandler.ApplyRewards)
	}
}
