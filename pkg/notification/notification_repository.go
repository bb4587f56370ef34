package notification

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"gorm.io/gorm"
)

type (
	ContactRepository interface {
		GetEmails(ctx context.Context, userIDs []string) ([]string, error)
		GetVolunteerEmailsByCity(ctx context.Context, city string) ([]string, error)
	}

	contactRepository struct {
		db *gorm.DB
	}
)

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetEmails(ctx context.Context, userIDs []string) ([]string, error) {
	var emails []string
	if len(userIDs) == 0 {
		return emails, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id IN ?", userIDs).
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *contactRepository) GetVolunteerEmailsByCity(ctx context.Context, city string) ([]string, error) {
	var emails []string
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("role = ? AND LOWER(address_city) = LOWER(?)", domain.RoleVolunteer, city).
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
