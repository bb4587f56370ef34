package handlers

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/api/presenters"
	"Aahar-Backend/pkg/dashboard"
	"Aahar-Backend/pkg/donation"
	"Aahar-Backend/pkg/impact"
	"Aahar-Backend/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"strconv"
)

type (
	DonorHandler interface {
		GetDashboard(c *fiber.Ctx) error
		GetDonationHistory(c *fiber.Ctx) error
		GetAnalytics(c *fiber.Ctx) error
		GetTaxCertificate(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		UploadVerificationDocuments(c *fiber.Ctx) error
	}

	donorHandler struct {
		donationService  donation.DonationService
		dashboardService dashboard.DashboardService
		impactService    impact.ImpactService
		userService      user.UserService
		validator        *validator.Validate
	}
)

func NewDonorHandler(
	donationService donation.DonationService,
	dashboardService dashboard.DashboardService,
	impactService impact.ImpactService,
	userService user.UserService,
	validator *validator.Validate,
) DonorHandler {
	return &donorHandler{
		donationService:  donationService,
		dashboardService: dashboardService,
		impactService:    impactService,
		userService:      userService,
		validator:        validator,
	}
}

func (h *donorHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	result, err := h.dashboardService.GetDonorDashboard(c.Context(), userID)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *donorHandler) GetDonationHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	startDate, _, err := queryTime(c, "start_date")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonationHistory, err)
	}
	endDate, endDateOnly, err := queryTime(c, "end_date")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonationHistory, err)
	}

	page, limit := pageParams(c)
	history, err := h.donationService.GetDonationHistory(c.Context(), userID, domain.DonationHistoryFilter{
		Status:      domain.DonationStatus(c.Query("status")),
		StartDate:   startDate,
		EndDate:     endDate,
		EndDateOnly: endDateOnly,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetDonationHistory, err)
	}
	return presenters.SuccessResponse(c, history, fiber.StatusOK, domain.MessageSuccessGetDonationHistory)
}

func (h *donorHandler) GetAnalytics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	timeframe, err := strconv.Atoi(c.Query("timeframe", strconv.Itoa(domain.DefaultAnalyticsTimeframe)))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAnalytics, domain.ErrInvalidTimeframe)
	}

	analytics, err := h.dashboardService.GetDonorAnalytics(c.Context(), userID, timeframe)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetAnalytics, err)
	}
	return presenters.SuccessResponse(c, analytics, fiber.StatusOK, domain.MessageSuccessGetAnalytics)
}

func (h *donorHandler) GetTaxCertificate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	year, err := c.ParamsInt("year")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIssueCertificate, domain.ErrInvalidCertYear)
	}

	certificate, err := h.impactService.IssueTaxCertificate(c.Context(), userID, year)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedIssueCertificate, err)
	}
	return presenters.SuccessResponse(c, certificate, fiber.StatusOK, domain.MessageSuccessIssueCertificate)
}

func (h *donorHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateDonorProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	profile, err := h.userService.UpdateDonorProfile(c.Context(), userID, *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUpdateProfile, err)
	}
	return presenters.SuccessResponse(c, profile, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *donorHandler) UploadVerificationDocuments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	status, err := h.userService.UploadVerificationDocuments(c.Context(), userID, form.File["documents"])
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedUploadDocuments, err)
	}
	return presenters.SuccessResponse(c, status, fiber.StatusOK, domain.MessageSuccessUploadDocuments)
}
