package user

import (
	"Aahar-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		SaveDonorProfile(ctx context.Context, profile *entities.DonorProfile) error
		SaveVolunteerProfile(ctx context.Context, profile *entities.VolunteerProfile) error
		UpdateVerificationDocuments(ctx context.Context, id string, documents []string) error
		SetVerified(ctx context.Context, id string, verified bool) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("DonorProfile").
		Preload("VolunteerProfile").
		Preload("Certificates", func(db *gorm.DB) *gorm.DB {
			return db.Order("year DESC")
		}).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SaveDonorProfile(ctx context.Context, profile *entities.DonorProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

func (r *userRepository) SaveVolunteerProfile(ctx context.Context, profile *entities.VolunteerProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

// UpdateVerificationDocuments replaces the stored document URLs and puts
// the account back into pending review.
func (r *userRepository) UpdateVerificationDocuments(ctx context.Context, id string, documents []string) error {
	return r.updateUser(ctx, id, map[string]any{
		"verification_documents": datatypes.JSONSlice[string](documents),
		"verified":               false,
	})
}

func (r *userRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.updateUser(ctx, id, map[string]any{"verified": verified})
}

func (r *userRepository) updateUser(ctx context.Context, id string, fields map[string]any) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
