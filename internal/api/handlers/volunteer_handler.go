package handlers

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/api/presenters"
	"Aahar-Backend/pkg/dashboard"
	"Aahar-Backend/pkg/donation"
	"Aahar-Backend/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VolunteerHandler interface {
		GetAvailablePickups(c *fiber.Ctx) error
		AcceptPickup(c *fiber.Ctx) error
		UpdatePickupStatus(c *fiber.Ctx) error
		GetMetrics(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	volunteerHandler struct {
		donationService  donation.DonationService
		dashboardService dashboard.DashboardService
		userService      user.UserService
		validator        *validator.Validate
	}
)

func NewVolunteerHandler(
	donationService donation.DonationService,
	dashboardService dashboard.DashboardService,
	userService user.UserService,
	validator *validator.Validate,
) VolunteerHandler {
	return &volunteerHandler{
		donationService:  donationService,
		dashboardService: dashboardService,
		userService:      userService,
		validator:        validator,
	}
}

func (h *volunteerHandler) GetAvailablePickups(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	list, err := h.donationService.GetDonations(c.Context(), domain.DonationFilter{
		Location: c.Query("location"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetAvailablePickup, err)
	}
	return presenters.SuccessResponse(c, list, fiber.StatusOK, domain.MessageSuccessGetAvailablePickup)
}

func (h *volunteerHandler) AcceptPickup(c *fiber.Ctx) error {
	accepted, err := h.donationService.AcceptPickup(c.Context(), c.Params("id"), actorFrom(c))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAcceptPickup, err)
	}
	return presenters.SuccessResponse(c, accepted, fiber.StatusOK, domain.MessageSuccessAcceptPickup)
}

func (h *volunteerHandler) UpdatePickupStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateDonationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	updated, err := h.donationService.UpdateStatus(c.Context(), c.Params("id"), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateDonation, err)
	}
	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *volunteerHandler) GetMetrics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	metrics, err := h.dashboardService.GetVolunteerMetrics(c.Context(), userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetVolunteerStats, err)
	}
	return presenters.SuccessResponse(c, metrics, fiber.StatusOK, domain.MessageSuccessGetVolunteerStats)
}

func (h *volunteerHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateVolunteerProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	profile, err := h.userService.UpdateVolunteerProfile(c.Context(), userID, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateProfile, err)
	}
	return presenters.SuccessResponse(c, profile, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}
