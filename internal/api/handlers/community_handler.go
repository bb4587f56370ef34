package handlers

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/api/presenters"
	"Aahar-Backend/pkg/event"
	"Aahar-Backend/pkg/report"
	"Aahar-Backend/pkg/review"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CommunityHandler interface {
		CreateReview(c *fiber.Ctx) error
		GetUserReviews(c *fiber.Ctx) error
		CreateEvent(c *fiber.Ctx) error
		GetEvents(c *fiber.Ctx) error
		RegisterForEvent(c *fiber.Ctx) error
		CancelEventRegistration(c *fiber.Ctx) error
		CreateReport(c *fiber.Ctx) error
		GetReports(c *fiber.Ctx) error
		UpdateReport(c *fiber.Ctx) error
	}

	communityHandler struct {
		reviewService review.ReviewService
		eventService  event.EventService
		reportService report.ReportService
		validator     *validator.Validate
	}
)

func NewCommunityHandler(
	reviewService review.ReviewService,
	eventService event.EventService,
	reportService report.ReportService,
	validator *validator.Validate,
) CommunityHandler {
	return &communityHandler{
		reviewService: reviewService,
		eventService:  eventService,
		reportService: reportService,
		validator:     validator,
	}
}

func (h *communityHandler) CreateReview(c *fiber.Ctx) error {
	req := new(domain.CreateReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReview, err)
	}

	created, err := h.reviewService.CreateReview(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateReview, err)
	}
	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateReview)
}

func (h *communityHandler) GetUserReviews(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	reviews, pagination, err := h.reviewService.GetUserReviews(c.Context(), c.Params("id"), page, limit)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetReviews, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"reviews":    reviews,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetReviews)
}

func (h *communityHandler) CreateEvent(c *fiber.Ctx) error {
	req := new(domain.CreateEventRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateEvent, err)
	}

	created, err := h.eventService.CreateEvent(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateEvent, err)
	}
	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateEvent)
}

func (h *communityHandler) GetEvents(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	events, pagination, err := h.eventService.GetEvents(c.Context(), page, limit)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetEvents, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"events":     events,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetEvents)
}

func (h *communityHandler) RegisterForEvent(c *fiber.Ctx) error {
	req := new(domain.RegisterEventRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	registered, err := h.eventService.Register(c.Context(), c.Params("id"), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedRegisterEvent, err)
	}
	return presenters.SuccessResponse(c, registered, fiber.StatusOK, domain.MessageSuccessRegisterEvent)
}

func (h *communityHandler) CancelEventRegistration(c *fiber.Ctx) error {
	if err := h.eventService.CancelRegistration(c.Context(), c.Params("id"), actorFrom(c)); err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCancelEvent, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelEvent)
}

func (h *communityHandler) CreateReport(c *fiber.Ctx) error {
	req := new(domain.CreateReportRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReport, err)
	}

	created, err := h.reportService.CreateReport(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedCreateReport, err)
	}
	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateReport)
}

func (h *communityHandler) GetReports(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	reports, pagination, err := h.reportService.GetReports(c.Context(), domain.ReportStatus(c.Query("status")), page, limit)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetReports, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"reports":    reports,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetReports)
}

func (h *communityHandler) UpdateReport(c *fiber.Ctx) error {
	req := new(domain.UpdateReportRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveReport, err)
	}

	updated, err := h.reportService.UpdateReport(c.Context(), c.Params("id"), actorFrom(c), *req)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedResolveReport, err)
	}
	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessResolveReport)
}
