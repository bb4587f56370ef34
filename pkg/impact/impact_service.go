package impact

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"Aahar-Backend/internal/observability"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
	"time"
)

type (
	ImpactService interface {
		ComputeDonorImpact(ctx context.Context, donorID string) (*domain.DonorImpact, error)
		ComputeMonthlyAnalytics(ctx context.Context, donorID string, timeframeDays int) ([]domain.MonthlyAnalytics, error)
		AwardPoints(ctx context.Context, donationID string) (*domain.RewardResult, error)
		IssueTaxCertificate(ctx context.Context, donorID string, year int) (*domain.TaxCertificate, error)
		GetAccountMetrics(ctx context.Context, userID string) (*domain.AccountMetrics, error)
	}

	impactService struct {
		impactRepository ImpactRepository
		now              func() time.Time
	}
)

func NewImpactService(impactRepository ImpactRepository) ImpactService {
	return &impactService{
		impactRepository: impactRepository,
		now:              time.Now,
	}
}

func (s *impactService) ComputeDonorImpact(ctx context.Context, donorID string) (*domain.DonorImpact, error) {
	return s.impactRepository.GetDonorImpact(ctx, donorID)
}

func (s *impactService) ComputeMonthlyAnalytics(ctx context.Context, donorID string, timeframeDays int) ([]domain.MonthlyAnalytics, error) {
	if timeframeDays < 1 || timeframeDays > domain.MaxAnalyticsTimeframe {
		return nil, domain.ErrInvalidTimeframe
	}

	since := s.now().AddDate(0, 0, -timeframeDays)
	rows, err := s.impactRepository.GetMonthlyAnalytics(ctx, donorID, since)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MonthlyAnalytics, 0, len(rows))
	for _, row := range rows {
		bucket := domain.MonthlyAnalytics{
			Year:                 row.Year,
			Month:                row.Month,
			DonationCount:        row.DonationCount,
			TotalQuantity:        row.TotalQuantity,
			SuccessfulDeliveries: row.SuccessfulDeliveries,
		}
		if row.AveragePickupSeconds != nil {
			minutes := *row.AveragePickupSeconds / 60
			bucket.AveragePickupMinutes = &minutes
		}
		result = append(result, bucket)
	}
	return result, nil
}

// AwardPoints credits a delivered donation's donor with reward points and its
// volunteer with volunteering hours. The ledger insert is keyed by donation,
// so replaying a delivery returns the original award with Applied false.
func (s *impactService) AwardPoints(ctx context.Context, donationID string) (*domain.RewardResult, error) {
	donation, err := s.impactRepository.GetDonation(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	if donation.Status != domain.StatusDelivered {
		return nil, domain.ErrRewardNotEligible
	}

	deliveredAt := s.now()
	if donation.DeliveredAt != nil {
		deliveredAt = *donation.DeliveredAt
	}

	monthStart := time.Date(deliveredAt.Year(), deliveredAt.Month(), 1, 0, 0, 0, 0, deliveredAt.Location())
	monthly, err := s.impactRepository.CountDonationsSince(ctx, donation.DonorID.String(), monthStart)
	if err != nil {
		return nil, err
	}

	base, bonus := CalculatePoints(donation, monthly)
	event := &entities.RewardEvent{
		DonationID:   donation.ID,
		DonorID:      donation.DonorID,
		VolunteerID:  donation.AssignedVolunteerID,
		BasePoints:   base,
		BonusPoints:  bonus,
		Points:       base + bonus,
		PeopleServed: donation.Impact.PeopleServed,
		AppliedAt:    s.now(),
	}
	if donation.AssignedVolunteerID != nil {
		event.VolunteeringHours = domain.HoursPerDelivery
	}

	applied, err := s.impactRepository.ApplyRewardEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	if !applied {
		existing, err := s.impactRepository.GetRewardEvent(ctx, donationID)
		if err != nil {
			return nil, err
		}
		event = existing
	} else {
		observability.RewardsApplied.Inc()
	}

	return &domain.RewardResult{
		DonationID:  event.DonationID.String(),
		BasePoints:  event.BasePoints,
		BonusPoints: event.BonusPoints,
		Points:      event.Points,
		Applied:     applied,
	}, nil
}

// CalculatePoints returns the base and bonus points for a delivered donation
// given how many donations its donor created in the month of delivery.
func CalculatePoints(donation *entities.Donation, donationsThisMonth int64) (int, int) {
	base := domain.SaturatingInt(donation.FoodDetails.Quantity.Amount*domain.PointsPerQuantityUnit, domain.MaxBasePoints)

	bonus := 0
	if donation.AssignedAt != nil && donation.AssignedAt.Sub(donation.CreatedAt) <= domain.QuickPickupWindow {
		bonus += domain.QuickPickupBonusPoints
	}
	if donationsThisMonth > domain.RegularDonorMonthlyFloor {
		bonus += domain.RegularDonorBonusPoints
	}
	return base, bonus
}

func (s *impactService) IssueTaxCertificate(ctx context.Context, donorID string, year int) (*domain.TaxCertificate, error) {
	now := s.now()
	if year < 2000 || year > now.Year() {
		return nil, domain.ErrInvalidCertYear
	}

	donor, err := s.impactRepository.GetUserByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	count, total, err := s.impactRepository.SumDeliveredValue(ctx, donorID, from, to)
	if err != nil {
		return nil, err
	}

	certificate := &entities.TaxCertificate{
		DonorID:           donor.ID,
		Year:              year,
		CertificateNumber: CertificateNumber(year, donorID),
		DonorName:         donor.Name,
		TotalDonations:    count,
		TotalValue:        total,
		IssuedDate:        now,
	}
	if err := s.impactRepository.UpsertTaxCertificate(ctx, certificate); err != nil {
		return nil, err
	}

	return &domain.TaxCertificate{
		CertificateNumber: certificate.CertificateNumber,
		DonorName:         certificate.DonorName,
		Year:              certificate.Year,
		TotalDonations:    certificate.TotalDonations,
		TotalValue:        certificate.TotalValue,
		IssuedDate:        certificate.IssuedDate,
	}, nil
}

func CertificateNumber(year int, donorID string) string {
	suffix := donorID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("TC-%d-%s", year, suffix)
}

func (s *impactService) GetAccountMetrics(ctx context.Context, userID string) (*domain.AccountMetrics, error) {
	user, err := s.impactRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.AccountMetrics{
		ImpactMetrics: domain.ImpactMetrics{
			TotalDonations:    user.Impact.TotalDonations,
			PeopleServed:      user.Impact.PeopleServed,
			VolunteeringHours: user.Impact.VolunteeringHours,
		},
		RewardPoints: user.RewardPoints,
	}, nil
}
