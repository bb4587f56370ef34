package domain

import (
	"strings"
	"time"
)

var (
	MessageSuccessGetDashboard      = "dashboard retrieved successfully"
	MessageSuccessGetAnalytics      = "analytics retrieved successfully"
	MessageSuccessIssueCertificate  = "tax certificate issued successfully"
	MessageSuccessGetVolunteerStats = "volunteer metrics retrieved successfully"
	MessageSuccessAwardPoints       = "reward points applied successfully"

	MessageFailedGetDashboard      = "failed to retrieve dashboard"
	MessageFailedGetAnalytics      = "failed to retrieve analytics"
	MessageFailedIssueCertificate  = "failed to issue tax certificate"
	MessageFailedGetVolunteerStats = "failed to retrieve volunteer metrics"
	MessageFailedAwardPoints       = "failed to apply reward points"

	ErrInvalidTimeframe  = Wrap(ErrValidation, "timeframe must be between 1 and 3650 days")
	ErrInvalidCertYear   = Wrap(ErrValidation, "certificate year is out of range")
	ErrRewardNotEligible = Wrap(ErrValidation, "rewards are only applied to delivered donations")
)

const (
	DefaultAnalyticsTimeframe = 30
	MaxAnalyticsTimeframe     = 3650

	PointsPerQuantityUnit    = 10
	QuickPickupBonusPoints   = 50
	QuickPickupWindow        = 2 * time.Hour
	RegularDonorBonusPoints  = 100
	RegularDonorMonthlyFloor = 5
	HoursPerDelivery         = 1.0
	MaxBasePoints            = MaxQuantityAmount * PointsPerQuantityUnit

	CO2PerKgFood      = 2.5
	KgPerGenericUnit  = 0.25
	PeoplePerKgServed = 2.0
)

type (
	DonorImpact struct {
		TotalDonations int64   `json:"total_donations"`
		TotalQuantity  float64 `json:"total_quantity"`
		PeopleServed   int64   `json:"people_served"`
		CarbonSaved    float64 `json:"carbon_saved"`
	}

	MonthlyAnalytics struct {
		Year                 int      `json:"year"`
		Month                int      `json:"month"`
		DonationCount        int64    `json:"donation_count"`
		TotalQuantity        float64  `json:"total_quantity"`
		SuccessfulDeliveries int64    `json:"successful_deliveries"`
		AveragePickupMinutes *float64 `json:"average_pickup_minutes"`
	}

	RewardResult struct {
		DonationID  string `json:"donation_id"`
		BasePoints  int    `json:"base_points"`
		BonusPoints int    `json:"bonus_points"`
		Points      int    `json:"points"`
		Applied     bool   `json:"applied"`
	}

	TaxCertificate struct {
		CertificateNumber string    `json:"certificate_number"`
		DonorName         string    `json:"donor_name"`
		Year              int       `json:"year"`
		TotalDonations    int64     `json:"total_donations"`
		TotalValue        float64   `json:"total_value"`
		IssuedDate        time.Time `json:"issued_date"`
	}

	DonorStatistics struct {
		TotalDonations  int64       `json:"total_donations"`
		ActiveDonations int64       `json:"active_donations"`
		ImpactMetrics   DonorImpact `json:"impact_metrics"`
		RewardPoints    int         `json:"reward_points"`
	}

	DonorDashboard struct {
		Statistics      DonorStatistics `json:"statistics"`
		RecentDonations []*Donation     `json:"recent_donations"`
	}

	AccountMetrics struct {
		ImpactMetrics ImpactMetrics `json:"impact_metrics"`
		RewardPoints  int           `json:"reward_points"`
	}

	VolunteerMetrics struct {
		ImpactMetrics       ImpactMetrics `json:"impact_metrics"`
		CompletedDeliveries int64         `json:"completed_deliveries"`
		ActiveDeliveries    int64         `json:"active_deliveries"`
		CancelledDeliveries int64         `json:"cancelled_deliveries"`
	}
)

// EstimateKg converts a quantity to kilograms. Units without a known
// weight count as one serving of KgPerGenericUnit each.
func EstimateKg(q Quantity) float64 {
	switch strings.ToLower(strings.TrimSpace(q.Unit)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return q.Amount
	case "g", "gram", "grams":
		return q.Amount / 1000
	case "lb", "lbs", "pound", "pounds":
		return q.Amount * 0.4536
	default:
		return q.Amount * KgPerGenericUnit
	}
}

func EstimateCarbonSaved(q Quantity) float64 {
	return EstimateKg(q) * CO2PerKgFood
}

func EstimatePeopleServed(q Quantity) int {
	return SaturatingInt(EstimateKg(q)*PeoplePerKgServed, MaxPeopleServed)
}

// SaturatingInt truncates f to an int in [0, max]. NaN maps to 0.
func SaturatingInt(f float64, max int) int {
	switch {
	case f != f || f <= 0:
		return 0
	case f >= float64(max):
		return max
	default:
		return int(f)
	}
}
