package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Aahar-Backend/domain"
	"Aahar-Backend/internal/utils"
	"Aahar-Backend/pkg/donation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDonationService implements only the calls these handlers make; the
// embedded interface panics on anything else.
type MockDonationService struct {
	mock.Mock
	donation.DonationService
}

func (m *MockDonationService) GetDonations(ctx context.Context, filter domain.DonationFilter) (*domain.DonationList, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(*domain.DonationList), args.Error(1)
}

func (m *MockDonationService) AcceptPickup(ctx context.Context, donationID string, actor domain.Actor) (*domain.Donation, error) {
	args := m.Called(ctx, donationID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) UpdateStatus(ctx context.Context, donationID string, actor domain.Actor, req domain.UpdateDonationStatusRequest) (*domain.Donation, error) {
	args := m.Called(ctx, donationID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func withActor(actor domain.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", actor.ID)
		c.Locals("role", actor.Role)
		return c.Next()
	}
}

func newDonationApp(service donation.DonationService, actor domain.Actor) *fiber.App {
	utils.InitValidator()
	donationHandler := NewDonationHandler(service, utils.Validate)
	volunteerHandler := NewVolunteerHandler(service, nil, nil, utils.Validate)

	app := fiber.New()
	app.Use(withActor(actor))
	app.Get("/donations", donationHandler.GetDonations)
	app.Patch("/donations/:id/status", donationHandler.UpdateDonationStatus)
	app.Post("/volunteers/pickups/:id/accept", volunteerHandler.AcceptPickup)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetDonationsParsesFilters(t *testing.T) {
	service := new(MockDonationService)
	app := newDonationApp(service, domain.Actor{ID: "vol-1", Role: domain.RoleVolunteer})

	expected := domain.DonationFilter{FoodType: "bakery", Location: "Pune", Urgent: true, Page: 2, Limit: 5}
	service.On("GetDonations", mock.Anything, expected).Return(&domain.DonationList{
		Donations:  []*domain.Donation{},
		Pagination: domain.NewPagination(2, 5, 7),
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/donations?foodType=bakery&location=Pune&urgent=true&page=2&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	service.AssertExpectations(t)
}

func TestAcceptPickupConflict(t *testing.T) {
	service := new(MockDonationService)
	actor := domain.Actor{ID: "vol-2", Role: domain.RoleVolunteer}
	app := newDonationApp(service, actor)
	service.On("AcceptPickup", mock.Anything, "don-1", actor).Return(nil, domain.ErrDonationUnavailable)

	resp, err := app.Test(httptest.NewRequest("POST", "/volunteers/pickups/don-1/accept", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestUpdateDonationStatusResponses(t *testing.T) {
	service := new(MockDonationService)
	actor := domain.Actor{ID: "vol-3", Role: domain.RoleVolunteer}
	app := newDonationApp(service, actor)

	delivered := domain.UpdateDonationStatusRequest{Status: domain.StatusDelivered}
	service.On("UpdateStatus", mock.Anything, "don-ok", actor, delivered).
		Return(&domain.Donation{ID: "don-ok", Status: domain.StatusDelivered}, nil)
	service.On("UpdateStatus", mock.Anything, "don-done", actor, delivered).
		Return(nil, &domain.TransitionError{From: domain.StatusCancelled, To: domain.StatusDelivered})

	resp, err := app.Test(jsonRequest("PATCH", "/donations/don-ok/status", delivered))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PATCH", "/donations/don-done/status", delivered))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PATCH", "/donations/don-ok/status", map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
