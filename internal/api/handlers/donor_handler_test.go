package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Aahar-Backend/domain"
	"Aahar-Backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (m *MockDonationService) GetDonationHistory(ctx context.Context, donorID string, filter domain.DonationHistoryFilter) (*domain.DonationList, error) {
	args := m.Called(ctx, donorID, filter)
	return args.Get(0).(*domain.DonationList), args.Error(1)
}

func (m *MockDonationService) ApplyRewards(ctx context.Context, donationID string) (*domain.RewardResult, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardResult), args.Error(1)
}

func newDonorApp(service *MockDonationService, actor domain.Actor) *fiber.App {
	utils.InitValidator()
	donorHandler := NewDonorHandler(service, nil, nil, nil, utils.Validate)
	donationHandler := NewDonationHandler(service, utils.Validate)

	app := fiber.New()
	app.Use(withActor(actor))
	app.Get("/donors/donations/history", donorHandler.GetDonationHistory)
	app.Post("/admin/donations/:id/rewards", donationHandler.ApplyRewards)
	return app
}

func TestGetDonationHistoryEndDate(t *testing.T) {
	donor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleDonor}

	cases := map[string]struct {
		query   string
		end     time.Time
		dayOnly bool
	}{
		"plain date covers the whole day": {
			query:   "end_date=2024-01-31",
			end:     time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			dayOnly: true,
		},
		"timestamp is an exact bound": {
			query: "end_date=2024-01-31T12:30:00Z",
			end:   time.Date(2024, time.January, 31, 12, 30, 0, 0, time.UTC),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			service := new(MockDonationService)
			service.On("GetDonationHistory", mock.Anything, donor.ID, mock.MatchedBy(func(f domain.DonationHistoryFilter) bool {
				return f.EndDate != nil && f.EndDate.Equal(tc.end) && f.EndDateOnly == tc.dayOnly
			})).Return(&domain.DonationList{}, nil)

			resp, err := newDonorApp(service, donor).Test(httptest.NewRequest(http.MethodGet, "/donors/donations/history?"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			service.AssertExpectations(t)
		})
	}
}

func TestGetDonationHistoryRejectsBadDate(t *testing.T) {
	donor := domain.Actor{ID: uuid.NewString(), Role: domain.RoleDonor}
	service := new(MockDonationService)

	resp, err := newDonorApp(service, donor).Test(httptest.NewRequest(http.MethodGet, "/donors/donations/history?end_date=31-01-2024", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "GetDonationHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyRewardsGoesThroughDonationService(t *testing.T) {
	admin := domain.Actor{ID: uuid.NewString(), Role: domain.RoleAdmin}
	donationID := uuid.NewString()
	service := new(MockDonationService)
	service.On("ApplyRewards", mock.Anything, donationID).
		Return(&domain.RewardResult{DonationID: donationID, Points: 100, Applied: true}, nil)

	resp, err := newDonorApp(service, admin).Test(httptest.NewRequest(http.MethodPost, "/admin/donations/"+donationID+"/rewards", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	service.AssertExpectations(t)
}
