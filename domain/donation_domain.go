package domain

import (
	"time"
)

var (
	MessageSuccessCreateDonation     = "donation created successfully"
	MessageSuccessGetDonations       = "donations retrieved successfully"
	MessageSuccessGetDonation        = "donation retrieved successfully"
	MessageSuccessUpdateDonation     = "donation status updated successfully"
	MessageSuccessAcceptPickup       = "pickup accepted successfully"
	MessageSuccessAssignRecipient    = "recipient assigned successfully"
	MessageSuccessGetAvailablePickup = "available pickups retrieved successfully"
	MessageSuccessGetDonationHistory = "donation history retrieved successfully"

	MessageFailedCreateDonation     = "failed to create donation"
	MessageFailedGetDonations       = "failed to retrieve donations"
	MessageFailedGetDonation        = "failed to retrieve donation"
	MessageFailedUpdateDonation     = "failed to update donation status"
	MessageFailedAcceptPickup       = "failed to accept pickup"
	MessageFailedAssignRecipient    = "failed to assign recipient"
	MessageFailedGetAvailablePickup = "failed to retrieve available pickups"
	MessageFailedGetDonationHistory = "failed to retrieve donation history"

	ErrDonationNotFound           = Wrap(ErrNotFound, "donation not found")
	ErrDonationUnavailable        = Wrap(ErrConflict, "donation is no longer available")
	ErrDonationChanged            = Wrap(ErrConflict, "donation was updated by someone else, reload and retry")
	ErrNotAssignedVolunteer       = Wrap(ErrForbidden, "donation not assigned to you")
	ErrUnauthorizedDonationAccess = Wrap(ErrForbidden, "unauthorized access to donation")
	ErrOnlyVolunteerCanAccept     = Wrap(ErrForbidden, "only volunteers can accept pickups")
	ErrExpiryNotInFuture          = Wrap(ErrValidation, "expiry time must be in the future")
	ErrInvalidPickupWindow        = Wrap(ErrValidation, "pickup window end must be after its start")
	ErrInvalidDonationStatus      = Wrap(ErrValidation, "invalid donation status")
	ErrInvalidRecipient           = Wrap(ErrValidation, "recipient must be a recipient account")
	ErrRecipientAssignmentClosed  = Wrap(ErrConflict, "recipient can only be assigned while the donation is assigned or in transit")
	ErrQuantityTooLarge           = Wrap(ErrValidation, "quantity amount exceeds the allowed maximum")
	ErrEstimatedValueTooLarge     = Wrap(ErrValidation, "estimated value exceeds the allowed maximum")
)

const (
	DefaultPageLimit  = 10
	MaxPageLimit      = 100
	UrgentExpiryHours = 24
	RecentDonations   = 5

	MaxQuantityAmount = 100000
	MaxEstimatedValue = 100000000
	MaxPeopleServed   = 1000000
)

type (
	AddressRequest struct {
		Street  string `json:"street"`
		City    string `json:"city" validate:"required"`
		State   string `json:"state"`
		ZipCode string `json:"zip_code"`
	}

	QuantityRequest struct {
		Amount float64 `json:"amount" validate:"required,gt=0,lte=100000"`
		Unit   string  `json:"unit" validate:"required"`
	}

	FoodDetailsRequest struct {
		Type           string          `json:"type" validate:"required"`
		Description    string          `json:"description" validate:"required"`
		Quantity       QuantityRequest `json:"quantity"`
		PreparedTime   *time.Time      `json:"prepared_time"`
		ExpiryTime     time.Time       `json:"expiry_time" validate:"required"`
		DietaryInfo    []string        `json:"dietary_info" validate:"omitempty,dive,required"`
		Allergens      []string        `json:"allergens" validate:"omitempty,dive,required"`
		EstimatedValue float64         `json:"estimated_value" validate:"gte=0,lte=100000000"`
	}

	PickupDetailsRequest struct {
		Address             AddressRequest `json:"address"`
		AvailableTimeStart  *time.Time     `json:"available_time_start"`
		AvailableTimeEnd    *time.Time     `json:"available_time_end"`
		SpecialInstructions string         `json:"special_instructions"`
	}

	QualityMetricsRequest struct {
		Temperature      *float64 `json:"temperature"`
		PackagingQuality string   `json:"packaging_quality" validate:"omitempty,oneof=excellent good fair poor"`
	}

	CreateDonationRequest struct {
		FoodDetails    FoodDetailsRequest     `json:"food_details"`
		PickupDetails  PickupDetailsRequest   `json:"pickup_details"`
		QualityMetrics *QualityMetricsRequest `json:"quality_metrics"`
	}

	LocationRequest struct {
		Latitude  float64 `json:"latitude" validate:"latitude"`
		Longitude float64 `json:"longitude" validate:"longitude"`
	}

	UpdateDonationStatusRequest struct {
		Status       DonationStatus   `json:"status" validate:"required"`
		Location     *LocationRequest `json:"location"`
		PeopleServed *int             `json:"people_served" validate:"omitempty,gte=0,lte=1000000"`
	}

	AssignRecipientRequest struct {
		RecipientID string `json:"recipient_id" validate:"required,uuid"`
	}

	DonationFilter struct {
		FoodType string
		Location string
		Urgent   bool
		Page     int
		Limit    int
	}

	// DonationHistoryFilter bounds are inclusive. With EndDateOnly set,
	// EndDate names a whole calendar day.
	DonationHistoryFilter struct {
		Status      DonationStatus
		StartDate   *time.Time
		EndDate     *time.Time
		EndDateOnly bool
		Page        int
		Limit       int
	}

	Address struct {
		Street  string `json:"street,omitempty"`
		City    string `json:"city"`
		State   string `json:"state,omitempty"`
		ZipCode string `json:"zip_code,omitempty"`
	}

	Quantity struct {
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}

	FoodDetails struct {
		Type           string     `json:"type"`
		Description    string     `json:"description"`
		Quantity       Quantity   `json:"quantity"`
		PreparedTime   *time.Time `json:"prepared_time,omitempty"`
		ExpiryTime     time.Time  `json:"expiry_time"`
		DietaryInfo    []string   `json:"dietary_info"`
		Allergens      []string   `json:"allergens"`
		EstimatedValue float64    `json:"estimated_value"`
	}

	PickupDetails struct {
		Address             Address    `json:"address"`
		AvailableTimeStart  *time.Time `json:"available_time_start,omitempty"`
		AvailableTimeEnd    *time.Time `json:"available_time_end,omitempty"`
		SpecialInstructions string     `json:"special_instructions,omitempty"`
	}

	AssignedTo struct {
		Volunteer *UserSummary `json:"volunteer,omitempty"`
		Recipient *UserSummary `json:"recipient,omitempty"`
	}

	QualityMetrics struct {
		Temperature      *float64 `json:"temperature,omitempty"`
		PackagingQuality string   `json:"packaging_quality,omitempty"`
		VerifiedBy       string   `json:"verified_by,omitempty"`
	}

	DonationImpact struct {
		PeopleServed int     `json:"people_served"`
		CarbonSaved  float64 `json:"carbon_saved"`
	}

	TrackingEntry struct {
		Sequence  int              `json:"sequence"`
		Status    DonationStatus   `json:"status"`
		Location  *LocationRequest `json:"location,omitempty"`
		Timestamp time.Time        `json:"timestamp"`
		UpdatedBy string           `json:"updated_by"`
	}

	Donation struct {
		ID             string          `json:"id"`
		DonorID        string          `json:"donor_id"`
		Donor          *UserSummary    `json:"donor,omitempty"`
		FoodDetails    FoodDetails     `json:"food_details"`
		PickupDetails  PickupDetails   `json:"pickup_details"`
		Status         DonationStatus  `json:"status"`
		AssignedTo     AssignedTo      `json:"assigned_to"`
		QualityMetrics QualityMetrics  `json:"quality_metrics"`
		Impact         DonationImpact  `json:"impact"`
		Tracking       []TrackingEntry `json:"tracking"`
		AssignedAt     *time.Time      `json:"assigned_at,omitempty"`
		DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
		CreatedAt      time.Time       `json:"created_at"`
		UpdatedAt      time.Time       `json:"updated_at"`
	}

	DonationList struct {
		Donations  []*Donation `json:"donations"`
		Pagination Pagination  `json:"pagination"`
	}
)

// CreatedBefore returns the comparison and bound for the filter's upper end.
func (f DonationHistoryFilter) CreatedBefore() (string, time.Time) {
	if f.EndDateOnly {
		return "created_at < ?", f.EndDate.AddDate(0, 0, 1)
	}
	return "created_at <= ?", *f.EndDate
}
