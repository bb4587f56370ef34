package handlers

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/api/presenters"
	"Aahar-Backend/pkg/donation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		UpdateDonationStatus(c *fiber.Ctx) error
		AssignRecipient(c *fiber.Ctx) error
		ApplyRewards(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	created, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateDonation, err)
	}
	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetDonations(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := domain.DonationFilter{
		FoodType: c.Query("foodType"),
		Location: c.Query("location"),
		Urgent:   c.QueryBool("urgent"),
		Page:     page,
		Limit:    limit,
	}

	list, err := h.donationService.GetDonations(c.Context(), filter)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, list, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	found, err := h.donationService.GetDonationByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonation, err)
	}
	return presenters.SuccessResponse(c, found, fiber.StatusOK, domain.MessageSuccessGetDonation)
}

func (h *donationHandler) UpdateDonationStatus(c *fiber.Ctx) error {
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

func (h *donationHandler) AssignRecipient(c *fiber.Ctx) error {
	req := new(domain.AssignRecipientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAssignRecipient, err)
	}

	updated, err := h.donationService.AssignRecipient(c.Context(), c.Params("id"), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAssignRecipient, err)
	}
	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessAssignRecipient)
}

func (h *donationHandler) ApplyRewards(c *fiber.Ctx) error {
	result, err := h.donationService.ApplyRewards(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedAwardPoints, err)
	}
	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessAwardPoints)
}
