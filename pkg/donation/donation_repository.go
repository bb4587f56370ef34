package donation

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// ErrStaleStatus is returned when a conditional update finds the donation
// in a different state than the caller read.
var ErrStaleStatus = errors.New("donation status changed before update")

type (
	// StatusChange is one committed move of the lifecycle. Fields holds the
	// extra columns written alongside the status.
	StatusChange struct {
		To     domain.DonationStatus
		Fields map[string]any
		Entry  entities.TrackingEntry
	}

	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation, entry *entities.TrackingEntry) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetAvailableDonations(ctx context.Context, filter domain.DonationFilter, now time.Time) ([]*entities.Donation, int64, error)
		GetDonorDonations(ctx context.Context, donorID string, filter domain.DonationHistoryFilter) ([]*entities.Donation, int64, error)
		GetRecentDonations(ctx context.Context, donorID string, limit int) ([]*entities.Donation, error)
		CountDonorDonations(ctx context.Context, donorID string, statuses ...domain.DonationStatus) (int64, error)
		CountVolunteerDonations(ctx context.Context, volunteerID string, statuses ...domain.DonationStatus) (int64, error)
		CountVolunteerCancellations(ctx context.Context, volunteerID string) (int64, error)
		TransitionStatus(ctx context.Context, id string, from domain.DonationStatus, change StatusChange) error
		AssignRecipient(ctx context.Context, id string, recipientID uuid.UUID, at time.Time) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation, entry *entities.TrackingEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}

		entry.DonationID = donation.ID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", donation.DonorID).
			UpdateColumn("impact_total_donations", gorm.Expr("impact_total_donations + ?", 1)).Error
	})
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Volunteer").
		Preload("Recipient").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetAvailableDonations(ctx context.Context, filter domain.DonationFilter, now time.Time) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("status = ?", domain.StatusAvailable)
		if filter.FoodType != "" {
			db = db.Where("food_type = ?", filter.FoodType)
		}
		if filter.Location != "" {
			db = db.Where("LOWER(pickup_address_city) = LOWER(?)", filter.Location)
		}
		if filter.Urgent {
			db = db.Where("food_expiry_time <= ?", now.Add(domain.UrgentExpiryHours*time.Hour))
		}
		return db
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Scopes(scope).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Scopes(scope).
		Order("food_expiry_time ASC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetDonorDonations(ctx context.Context, donorID string, filter domain.DonationHistoryFilter) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("donor_id = ?", donorID)
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.StartDate != nil {
			db = db.Where("created_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			condition, bound := filter.CreatedBefore()
			db = db.Where(condition, bound)
		}
		return db
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Scopes(scope).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Preload("Recipient").
		Scopes(scope).
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetRecentDonations(ctx context.Context, donorID string, limit int) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Preload("Recipient").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) CountDonorDonations(ctx context.Context, donorID string, statuses ...domain.DonationStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Donation{}).Where("donor_id = ?", donorID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *donationRepository) CountVolunteerDonations(ctx context.Context, volunteerID string, statuses ...domain.DonationStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Donation{}).Where("assigned_volunteer_id = ?", volunteerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountVolunteerCancellations counts pickups the volunteer dropped. A
// cancellation clears the assignment, so the ledger is the only record of it.
func (r *donationRepository) CountVolunteerCancellations(ctx context.Context, volunteerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.TrackingEntry{}).
		Where("updated_by = ? AND status = ?", volunteerID, domain.StatusCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TransitionStatus moves the donation from `from` to change.To only if it is
// still in `from`, and appends the tracking entry in the same transaction.
// The conditional UPDATE holds the row lock until commit, so concurrent
// transitions of one donation serialize and their entries get increasing
// sequence numbers.
func (r *donationRepository) TransitionStatus(ctx context.Context, id string, from domain.DonationStatus, change StatusChange) error {
	donationID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":     change.To,
			"updated_at": change.Entry.RecordedAt,
		}
		for column, value := range change.Fields {
			updates[column] = value
		}

		result := tx.Model(&entities.Donation{}).
			Where("id = ? AND status = ?", donationID, from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}

		var last entities.TrackingEntry
		if err := tx.Where("donation_id = ?", donationID).
			Order("sequence DESC").
			First(&last).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry := appendAfter(last, change.Entry)
		entry.DonationID = donationID
		if !entry.RecordedAt.Equal(change.Entry.RecordedAt) {
			// the row is already locked by the update above
			if err := tx.Model(&entities.Donation{}).
				Where("id = ?", donationID).
				Update("updated_at", entry.RecordedAt).Error; err != nil {
				return err
			}
		}
		return tx.Create(&entry).Error
	})
}

func (r *donationRepository) AssignRecipient(ctx context.Context, id string, recipientID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status IN ?", id, []domain.DonationStatus{domain.StatusAssigned, domain.StatusInTransit}).
		Updates(map[string]any{
			"assigned_recipient_id": recipientID,
			"updated_at":            at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *donationRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// appendAfter numbers entry after last and keeps ledger time from going
// backwards when clocks disagree.
func appendAfter(last entities.TrackingEntry, entry entities.TrackingEntry) entities.TrackingEntry {
	entry.Sequence = last.Sequence + 1
	if entry.RecordedAt.Before(last.RecordedAt) {
		entry.RecordedAt = last.RecordedAt
	}
	return entry
}
