package impact

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	MonthlyRow struct {
		Year                 int
		Month                int
		DonationCount        int64
		TotalQuantity        float64
		SuccessfulDeliveries int64
		AveragePickupSeconds *float64
	}

	ImpactRepository interface {
		GetDonorImpact(ctx context.Context, donorID string) (*domain.DonorImpact, error)
		GetMonthlyAnalytics(ctx context.Context, donorID string, since time.Time) ([]MonthlyRow, error)
		GetDonation(ctx context.Context, id string) (*entities.Donation, error)
		CountDonationsSince(ctx context.Context, donorID string, since time.Time) (int64, error)
		ApplyRewardEvent(ctx context.Context, event *entities.RewardEvent) (bool, error)
		GetRewardEvent(ctx context.Context, donationID string) (*entities.RewardEvent, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		SumDeliveredValue(ctx context.Context, donorID string, from, to time.Time) (int64, float64, error)
		UpsertTaxCertificate(ctx context.Context, certificate *entities.TaxCertificate) error
	}

	impactRepository struct {
		db *gorm.DB
	}
)

func NewImpactRepository(db *gorm.DB) ImpactRepository {
	return &impactRepository{db: db}
}

func (r *impactRepository) GetDonorImpact(ctx context.Context, donorID string) (*domain.DonorImpact, error) {
	var result domain.DonorImpact
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select(`COUNT(*) AS total_donations,
			COALESCE(SUM(food_quantity_amount), 0) AS total_quantity,
			COALESCE(SUM(impact_people_served), 0) AS people_served,
			COALESCE(SUM(impact_carbon_saved), 0) AS carbon_saved`).
		Where("donor_id = ? AND status = ?", donorID, domain.StatusDelivered).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMonthlyAnalytics buckets the donor's donations by creation month. The
// pickup time of a donation is the gap between creation and its first
// tracked update.
func (r *impactRepository) GetMonthlyAnalytics(ctx context.Context, donorID string, since time.Time) ([]MonthlyRow, error) {
	var rows []MonthlyRow

	query := `
		SELECT
			EXTRACT(YEAR FROM d.created_at)::int AS year,
			EXTRACT(MONTH FROM d.created_at)::int AS month,
			COUNT(*) AS donation_count,
			COALESCE(SUM(d.food_quantity_amount), 0) AS total_quantity,
			COUNT(*) FILTER (WHERE d.status = ?) AS successful_deliveries,
			AVG(EXTRACT(EPOCH FROM (t.recorded_at - d.created_at))) AS average_pickup_seconds
		FROM donations d
		LEFT JOIN donation_tracking_entries t ON t.donation_id = d.id AND t.sequence = 1
		WHERE d.donor_id = ? AND d.created_at >= ?
		GROUP BY 1, 2
		ORDER BY 1 ASC, 2 ASC
	`

	if err := r.db.WithContext(ctx).Raw(query, domain.StatusDelivered, donorID, since).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *impactRepository) GetDonation(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *impactRepository) CountDonationsSince(ctx context.Context, donorID string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND created_at >= ?", donorID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyRewardEvent records the event and bumps the user aggregates in one
// transaction. It reports false without touching the aggregates when the
// donation was already credited.
func (r *impactRepository) ApplyRewardEvent(ctx context.Context, event *entities.RewardEvent) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(event)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&entities.User{}).
			Where("id = ?", event.DonorID).
			UpdateColumns(map[string]any{
				"reward_points":        gorm.Expr("reward_points + ?", event.Points),
				"impact_people_served": gorm.Expr("impact_people_served + ?", event.PeopleServed),
			}).Error; err != nil {
			return err
		}

		if event.VolunteerID != nil {
			if err := tx.Model(&entities.User{}).
				Where("id = ?", *event.VolunteerID).
				UpdateColumns(map[string]any{
					"impact_volunteering_hours": gorm.Expr("impact_volunteering_hours + ?", event.VolunteeringHours),
					"impact_people_served":      gorm.Expr("impact_people_served + ?", event.PeopleServed),
				}).Error; err != nil {
				return err
			}
		}

		applied = true
		return nil
	})
	return applied, err
}

func (r *impactRepository) GetRewardEvent(ctx context.Context, donationID string) (*entities.RewardEvent, error) {
	var event entities.RewardEvent
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *impactRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *impactRepository) SumDeliveredValue(ctx context.Context, donorID string, from, to time.Time) (int64, float64, error) {
	var result struct {
		TotalDonations int64
		TotalValue     float64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("COUNT(*) AS total_donations, COALESCE(SUM(food_estimated_value), 0) AS total_value").
		Where("donor_id = ? AND status = ? AND created_at >= ? AND created_at < ?", donorID, domain.StatusDelivered, from, to).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.TotalDonations, result.TotalValue, nil
}

// UpsertTaxCertificate keeps one certificate per donor and year; issuing
// again refreshes the totals of that year only.
func (r *impactRepository) UpsertTaxCertificate(ctx context.Context, certificate *entities.TaxCertificate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "donor_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"certificate_number",
				"donor_name",
				"total_donations",
				"total_value",
				"issued_date",
				"updated_at",
			}),
		}).
		Create(certificate).Error
}
