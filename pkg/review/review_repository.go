package review

import (
	"Aahar-Backend/entities"
	"context"
	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		GetReviewsForUser(ctx context.Context, userID string, page, limit int) ([]*entities.Review, int64, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateReview stores the review and refreshes the reviewed user's average
// rating in the same transaction.
func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		average := tx.Model(&entities.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Where("recipient_id = ?", review.RecipientID)
		return tx.Model(&entities.User{}).
			Where("id = ?", review.RecipientID).
			UpdateColumn("rating", average).Error
	})
}

func (r *reviewRepository) GetReviewsForUser(ctx context.Context, userID string, page, limit int) ([]*entities.Review, int64, error) {
	var (
		reviews []*entities.Review
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Review{}).Where("recipient_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *reviewRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}
