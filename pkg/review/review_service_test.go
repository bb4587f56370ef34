package review

import (
	"context"
	"testing"

	"Aahar-Backend/domain"
	"Aahar-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetReviewsForUser(ctx context.Context, userID string, page, limit int) ([]*entities.Review, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]*entities.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockReviewRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Donation), args.Error(1)
}

func TestCreateReviewRejectsSelfReview(t *testing.T) {
	repo := new(MockReviewRepository)
	service := NewReviewService(repo)
	id := uuid.NewString()

	_, err := service.CreateReview(context.Background(), domain.Actor{ID: id, Role: domain.RoleDonor}, domain.CreateReviewRequest{RecipientID: id, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrSelfReview)
	repo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestCreateReviewUnknownRecipient(t *testing.T) {
	repo := new(MockReviewRepository)
	service := NewReviewService(repo)
	recipient := uuid.NewString()
	repo.On("GetUserByID", mock.Anything, recipient).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.CreateReview(context.Background(), domain.Actor{ID: uuid.NewString()}, domain.CreateReviewRequest{RecipientID: recipient, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateReviewVerifiedDelivery(t *testing.T) {
	donor := uuid.New()
	volunteer := uuid.New()
	outsider := uuid.New()
	delivered := &entities.Donation{ID: uuid.New(), DonorID: donor, Status: domain.StatusDelivered, AssignedVolunteerID: &volunteer}
	inTransit := &entities.Donation{ID: uuid.New(), DonorID: donor, Status: domain.StatusInTransit, AssignedVolunteerID: &volunteer}

	tests := []struct {
		name     string
		author   uuid.UUID
		donation *entities.Donation
		verified bool
	}{
		{"donor of delivered donation", donor, delivered, true},
		{"outsider", outsider, delivered, false},
		{"donation not delivered yet", donor, inTransit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReviewRepository)
			service := NewReviewService(repo)
			repo.On("GetUserByID", mock.Anything, volunteer.String()).Return(&entities.User{ID: volunteer}, nil)
			repo.On("GetDonationByID", mock.Anything, tt.donation.ID.String()).Return(tt.donation, nil)
			repo.On("CreateReview", mock.Anything, mock.Anything).Return(nil)

			review, err := service.CreateReview(context.Background(), domain.Actor{ID: tt.author.String()}, domain.CreateReviewRequest{
				RecipientID: volunteer.String(),
				DonationID:  tt.donation.ID.String(),
				Rating:      5,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.verified, review.VerifiedDelivery)
			assert.Equal(t, tt.donation.ID.String(), review.DonationID)
			assert.Equal(t, []string{}, review.Images)
		})
	}
}

func TestGetUserReviewsPaginates(t *testing.T) {
	repo := new(MockReviewRepository)
	service := NewReviewService(repo)
	userID := uuid.NewString()
	repo.On("GetReviewsForUser", mock.Anything, userID, 1, domain.DefaultPageLimit).
		Return([]*entities.Review{{ID: uuid.New(), Rating: 3}}, int64(11), nil)

	reviews, pagination, err := service.GetUserReviews(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, int64(2), pagination.TotalPages)
}
