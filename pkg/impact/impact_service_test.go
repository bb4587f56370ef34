package impact

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockImpactRepository struct {
	mock.Mock
}

func (m *MockImpactRepository) GetDonorImpact(ctx context.Context, donorID string) (*domain.DonorImpact, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).(*domain.DonorImpact), args.Error(1)
}

func (m *MockImpactRepository) GetMonthlyAnalytics(ctx context.Context, donorID string, since time.Time) ([]MonthlyRow, error) {
	args := m.Called(ctx, donorID, since)
	return args.Get(0).([]MonthlyRow), args.Error(1)
}

func (m *MockImpactRepository) GetDonation(ctx context.Context, id string) (*entities.Donation, error) {
	args := m.Called(ctx, id)
	donation, _ := args.Get(0).(*entities.Donation)
	return donation, args.Error(1)
}

func (m *MockImpactRepository) CountDonationsSince(ctx context.Context, donorID string, since time.Time) (int64, error) {
	args := m.Called(ctx, donorID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImpactRepository) ApplyRewardEvent(ctx context.Context, event *entities.RewardEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockImpactRepository) GetRewardEvent(ctx context.Context, donationID string) (*entities.RewardEvent, error) {
	args := m.Called(ctx, donationID)
	if lookup, ok := args.Get(0).(func(string) *entities.RewardEvent); ok {
		return lookup(donationID), args.Error(1)
	}
	event, _ := args.Get(0).(*entities.RewardEvent)
	return event, args.Error(1)
}

func (m *MockImpactRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockImpactRepository) SumDeliveredValue(ctx context.Context, donorID string, from, to time.Time) (int64, float64, error) {
	args := m.Called(ctx, donorID, from, to)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func (m *MockImpactRepository) UpsertTaxCertificate(ctx context.Context, certificate *entities.TaxCertificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func newTestService(repo ImpactRepository, now time.Time) *impactService {
	service := NewImpactService(repo).(*impactService)
	service.now = func() time.Time { return now }
	return service
}

func deliveredDonation(created, assigned, delivered time.Time) *entities.Donation {
	volunteer := uuid.New()
	return &entities.Donation{
		ID:      uuid.New(),
		DonorID: uuid.New(),
		FoodDetails: entities.FoodDetails{
			Quantity: entities.Quantity{Amount: 10, Unit: "kg"},
		},
		Status:              domain.StatusDelivered,
		AssignedVolunteerID: &volunteer,
		AssignedAt:          &assigned,
		DeliveredAt:         &delivered,
		Impact:              entities.DonationImpact{PeopleServed: 20},
		Timestamp:           entities.Timestamp{CreatedAt: created},
	}
}

func TestCalculatePoints(t *testing.T) {
	created := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		assignedAfter time.Duration
		monthly       int64
		base, bonus   int
	}{
		"base only":         {assignedAfter: 3 * time.Hour, monthly: 1, base: 100, bonus: 0},
		"quick pickup":      {assignedAfter: 2 * time.Hour, monthly: 5, base: 100, bonus: 50},
		"regular donor":     {assignedAfter: 5 * time.Hour, monthly: 6, base: 100, bonus: 100},
		"quick and regular": {assignedAfter: 30 * time.Minute, monthly: 9, base: 100, bonus: 150},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			donation := deliveredDonation(created, created.Add(tc.assignedAfter), created.Add(6*time.Hour))
			base, bonus := CalculatePoints(donation, tc.monthly)
			assert.Equal(t, tc.base, base)
			assert.Equal(t, tc.bonus, bonus)
		})
	}

	t.Run("oversized quantity saturates", func(t *testing.T) {
		donation := deliveredDonation(created, created.Add(3*time.Hour), created.Add(6*time.Hour))
		donation.FoodDetails.Quantity.Amount = 1e19
		base, _ := CalculatePoints(donation, 1)
		assert.Equal(t, domain.MaxBasePoints, base)
	})
}

func TestAwardPointsAppliesOnce(t *testing.T) {
	created := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	donation := deliveredDonation(created, created.Add(90*time.Minute), created.Add(5*time.Hour))
	donationID := donation.ID.String()

	repo := new(MockImpactRepository)
	service := newTestService(repo, created.Add(6*time.Hour))

	// the ledger keyed by donation id, as the unique key would enforce
	ledger := map[uuid.UUID]*entities.RewardEvent{}
	totalPoints := 0

	repo.On("GetDonation", mock.Anything, donationID).Return(donation, nil)
	repo.On("CountDonationsSince", mock.Anything, donation.DonorID.String(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).Return(int64(6), nil)
	repo.On("ApplyRewardEvent", mock.Anything, mock.AnythingOfType("*entities.RewardEvent")).
		Return(true, nil).Once().
		Run(func(args mock.Arguments) {
			event := args.Get(1).(*entities.RewardEvent)
			ledger[event.DonationID] = event
			totalPoints += event.Points
		})
	repo.On("ApplyRewardEvent", mock.Anything, mock.AnythingOfType("*entities.RewardEvent")).Return(false, nil)
	repo.On("GetRewardEvent", mock.Anything, donationID).Return(func(string) *entities.RewardEvent { return ledger[donation.ID] }, nil).Maybe()

	first, err := service.AwardPoints(context.Background(), donationID)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 100, first.BasePoints)
	assert.Equal(t, 150, first.BonusPoints)
	assert.Equal(t, 250, first.Points)
	assert.Equal(t, 250, totalPoints)

	stored := ledger[donation.ID]
	require.NotNil(t, stored)
	assert.Equal(t, domain.HoursPerDelivery, stored.VolunteeringHours)
	assert.Equal(t, 20, stored.PeopleServed)
	assert.Equal(t, donation.AssignedVolunteerID, stored.VolunteerID)

	second, err := service.AwardPoints(context.Background(), donationID)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, first.Points, second.Points)
	assert.Equal(t, 250, totalPoints)
}

func TestAwardPointsRejectsUndelivered(t *testing.T) {
	repo := new(MockImpactRepository)
	service := newTestService(repo, time.Now())

	donation := &entities.Donation{ID: uuid.New(), Status: domain.StatusInTransit}
	repo.On("GetDonation", mock.Anything, donation.ID.String()).Return(donation, nil)

	_, err := service.AwardPoints(context.Background(), donation.ID.String())
	require.ErrorIs(t, err, domain.ErrRewardNotEligible)
	repo.AssertNotCalled(t, "ApplyRewardEvent", mock.Anything, mock.Anything)
}

func TestAwardPointsMissingDonation(t *testing.T) {
	repo := new(MockImpactRepository)
	service := newTestService(repo, time.Now())

	repo.On("GetDonation", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.AwardPoints(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueTaxCertificate(t *testing.T) {
	donorID := uuid.New()
	repo := new(MockImpactRepository)
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	repo.On("GetUserByID", mock.Anything, donorID.String()).Return(&entities.User{ID: donorID, Name: "Green Bowl Kitchen"}, nil)
	repo.On("SumDeliveredValue", mock.Anything, donorID.String(), from, to).Return(int64(1), 500.0, nil)
	repo.On("UpsertTaxCertificate", mock.Anything, mock.MatchedBy(func(c *entities.TaxCertificate) bool {
		return c.Year == 2024 && c.DonorID == donorID && c.TotalValue == 500
	})).Return(nil)

	certificate, err := service.IssueTaxCertificate(context.Background(), donorID.String(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 500.0, certificate.TotalValue)
	assert.Equal(t, int64(1), certificate.TotalDonations)
	assert.Contains(t, certificate.CertificateNumber, "2024")
	assert.True(t, strings.HasSuffix(certificate.CertificateNumber, donorID.String()[len(donorID.String())-6:]))
	assert.Equal(t, "Green Bowl Kitchen", certificate.DonorName)
	assert.Equal(t, now, certificate.IssuedDate)

	repo.AssertExpectations(t)
}

func TestIssueTaxCertificateYearRange(t *testing.T) {
	repo := new(MockImpactRepository)
	service := newTestService(repo, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	for _, year := range []int{1999, 2026} {
		_, err := service.IssueTaxCertificate(context.Background(), uuid.NewString(), year)
		require.ErrorIs(t, err, domain.ErrInvalidCertYear)
	}
	repo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

func TestCertificateNumber(t *testing.T) {
	assert.Equal(t, "TC-2024-abcdef", CertificateNumber(2024, "0000-abcdef"))
	assert.Equal(t, "TC-2024-abc", CertificateNumber(2024, "abc"))
}

func TestComputeMonthlyAnalytics(t *testing.T) {
	repo := new(MockImpactRepository)
	now := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	service := newTestService(repo, now)
	seconds := 5400.0

	repo.On("GetMonthlyAnalytics", mock.Anything, "donor-1", now.AddDate(0, 0, -60)).Return([]MonthlyRow{
		{Year: 2024, Month: 3, DonationCount: 4, TotalQuantity: 32, SuccessfulDeliveries: 3, AveragePickupSeconds: &seconds},
		{Year: 2024, Month: 4, DonationCount: 1, TotalQuantity: 5},
	}, nil)

	analytics, err := service.ComputeMonthlyAnalytics(context.Background(), "donor-1", 60)
	require.NoError(t, err)
	require.Len(t, analytics, 2)
	assert.Equal(t, 3, analytics[0].Month)
	require.NotNil(t, analytics[0].AveragePickupMinutes)
	assert.InDelta(t, 90.0, *analytics[0].AveragePickupMinutes, 1e-9)
	assert.Nil(t, analytics[1].AveragePickupMinutes)

	_, err = service.ComputeMonthlyAnalytics(context.Background(), "donor-1", 0)
	require.ErrorIs(t, err, domain.ErrInvalidTimeframe)
}

func TestComputeDonorImpactEmpty(t *testing.T) {
	repo := new(MockImpactRepository)
	service := newTestService(repo, time.Now())
	repo.On("GetDonorImpact", mock.Anything, "donor-1").Return(&domain.DonorImpact{}, nil)

	result, err := service.ComputeDonorImpact(context.Background(), "donor-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DonorImpact{}, *result)
}
