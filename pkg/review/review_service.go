package review

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReviewService interface {
		CreateReview(ctx context.Context, actor domain.Actor, req domain.CreateReviewRequest) (*domain.Review, error)
		GetUserReviews(ctx context.Context, userID string, page, limit int) ([]*domain.Review, domain.Pagination, error)
	}

	reviewService struct {
		reviewRepository ReviewRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository) ReviewService {
	return &reviewService{reviewRepository: reviewRepository}
}

func (s *reviewService) CreateReview(ctx context.Context, actor domain.Actor, req domain.CreateReviewRequest) (*domain.Review, error) {
	authorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if authorID == recipientID {
		return nil, domain.ErrSelfReview
	}

	if _, err := s.reviewRepository.GetUserByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	review := &entities.Review{
		ID:          uuid.New(),
		AuthorID:    authorID,
		RecipientID: recipientID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Images:      req.Images,
	}

	if req.DonationID != "" {
		donationID, err := uuid.Parse(req.DonationID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		donation, err := s.reviewRepository.GetDonationByID(ctx, req.DonationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrDonationNotFound
			}
			return nil, err
		}
		review.DonationID = &donationID
		review.VerifiedDelivery = isVerifiedDelivery(donation, authorID)
	}

	if err := s.reviewRepository.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return toDomainReview(review), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string, page, limit int) ([]*domain.Review, domain.Pagination, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.Pagination{}, domain.ErrParseUUID
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	reviews, total, err := s.reviewRepository.GetReviewsForUser(ctx, userID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	result := make([]*domain.Review, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, toDomainReview(r))
	}
	return result, domain.NewPagination(page, limit, total), nil
}

// isVerifiedDelivery holds when the donation reached its recipient and the
// author took part in it.
func isVerifiedDelivery(donation *entities.Donation, authorID uuid.UUID) bool {
	if donation.Status != domain.StatusDelivered {
		return false
	}
	if donation.DonorID == authorID {
		return true
	}
	if donation.AssignedVolunteerID != nil && *donation.AssignedVolunteerID == authorID {
		return true
	}
	return donation.AssignedRecipientID != nil && *donation.AssignedRecipientID == authorID
}

func toDomainReview(r *entities.Review) *domain.Review {
	review := &domain.Review{
		ID:               r.ID.String(),
		AuthorID:         r.AuthorID.String(),
		RecipientID:      r.RecipientID.String(),
		Rating:           r.Rating,
		Comment:          r.Comment,
		Images:           []string(r.Images),
		VerifiedDelivery: r.VerifiedDelivery,
		CreatedAt:        r.CreatedAt,
	}
	if r.DonationID != nil {
		review.DonationID = r.DonationID.String()
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	return review
}
