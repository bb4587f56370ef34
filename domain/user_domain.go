package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "user logged in successfully"
	MessageSuccessGetUser         = "user retrieved successfully"
	MessageSuccessUpdateProfile   = "profile updated successfully"
	MessageSuccessUploadDocuments = "verification documents uploaded successfully"
	MessageSuccessVerifyUser      = "user verified successfully"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedGetUser         = "failed to retrieve user"
	MessageFailedUpdateProfile   = "failed to update profile"
	MessageFailedUploadDocuments = "failed to upload verification documents"
	MessageFailedVerifyUser      = "failed to verify user"

	ErrUserNotFound         = Wrap(ErrNotFound, "user not found")
	ErrEmailAlreadyExists   = Wrap(ErrConflict, "email already registered")
	ErrInvalidCredentials   = Wrap(ErrForbidden, "invalid email or password")
	ErrRoleNotAllowed       = Wrap(ErrValidation, "role not allowed for self registration")
	ErrBusinessNameRequired = Wrap(ErrValidation, "business name is required for organisations")
	ErrTooManyDocuments     = Wrap(ErrValidation, "at most 5 verification documents are allowed")
	ErrNoDocuments          = Wrap(ErrValidation, "at least one verification document is required")
	ErrWrongRoleForProfile  = Wrap(ErrForbidden, "profile does not match the account role")
	ErrStorageNotConfigured = Wrap(ErrValidation, "document storage is not configured")
)

const MaxVerificationDocuments = 5

type (
	ImpactMetrics struct {
		TotalDonations    int     `json:"total_donations"`
		PeopleServed      int     `json:"people_served"`
		VolunteeringHours float64 `json:"volunteering_hours"`
	}

	Rewards struct {
		Points       int              `json:"points"`
		Badges       []string         `json:"badges"`
		Certificates []TaxCertificate `json:"certificates"`
	}

	UserSummary struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Rating float64 `json:"rating"`
	}

	User struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		Email         string        `json:"email"`
		Role          string        `json:"role"`
		PhoneNumber   string        `json:"phone_number"`
		Address       Address       `json:"address"`
		Verified      bool          `json:"verified"`
		Rating        float64       `json:"rating"`
		ImpactMetrics ImpactMetrics `json:"impact_metrics"`
		Rewards       Rewards       `json:"rewards"`
		CreatedAt     time.Time     `json:"created_at"`
	}

	RegisterRequest struct {
		Name        string         `json:"name" validate:"required,min=2"`
		Email       string         `json:"email" validate:"required,email"`
		Password    string         `json:"password" validate:"required,min=8"`
		Role        string         `json:"role" validate:"required,oneof=donor volunteer recipient"`
		PhoneNumber string         `json:"phone_number" validate:"required"`
		Address     AddressRequest `json:"address"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	PickupTimeWindow struct {
		DayOfWeek string `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
		StartTime string `json:"start_time" validate:"required"`
		EndTime   string `json:"end_time" validate:"required"`
		Recurring bool   `json:"recurring"`
	}

	FoodSafetyCredential struct {
		CertificateType   string     `json:"certificate_type" validate:"required"`
		CertificateNumber string     `json:"certificate_number" validate:"required"`
		IssuingAuthority  string     `json:"issuing_authority"`
		ExpiryDate        *time.Time `json:"expiry_date"`
		DocumentURL       string     `json:"document_url"`
	}

	StorageCapacity struct {
		Refrigerated float64 `json:"refrigerated" validate:"gte=0"`
		Frozen       float64 `json:"frozen" validate:"gte=0"`
		Dry          float64 `json:"dry" validate:"gte=0"`
	}

	DonationSchedule struct {
		Frequency           string  `json:"frequency" validate:"omitempty,oneof=daily weekly monthly irregular"`
		TypicalQuantity     float64 `json:"typical_quantity" validate:"gte=0"`
		PreferredNoticeTime int     `json:"preferred_notice_time" validate:"gte=0"`
	}

	TaxInformation struct {
		TaxID              string `json:"tax_id"`
		RegistrationNumber string `json:"registration_number"`
		TaxExemptStatus    bool   `json:"tax_exempt_status"`
	}

	UpdateDonorProfileRequest struct {
		OrganizationType      string                 `json:"organization_type" validate:"required,oneof=restaurant hotel catering supermarket individual other"`
		BusinessName          string                 `json:"business_name"`
		PreferredPickupTimes  []PickupTimeWindow     `json:"preferred_pickup_times" validate:"dive"`
		FoodSafetyCredentials []FoodSafetyCredential `json:"food_safety_credentials" validate:"dive"`
		StorageCapacity       StorageCapacity        `json:"storage_capacity"`
		DonationSchedule      DonationSchedule       `json:"donation_schedule"`
		TaxInformation        TaxInformation         `json:"tax_information"`
	}

	Vehicle struct {
		HasVehicle            bool    `json:"has_vehicle"`
		Type                  string  `json:"type" validate:"omitempty,oneof=car van truck motorcycle bicycle"`
		Capacity              float64 `json:"capacity" validate:"gte=0"`
		TemperatureControlled bool    `json:"temperature_controlled"`
	}

	ServiceArea struct {
		Radius             float64  `json:"radius" validate:"gte=0"`
		PreferredLocations []string `json:"preferred_locations"`
	}

	EmergencyContact struct {
		Name         string `json:"name"`
		Relationship string `json:"relationship"`
		Phone        string `json:"phone"`
	}

	UpdateVolunteerProfileRequest struct {
		Availability     []PickupTimeWindow `json:"availability" validate:"dive"`
		Skills           []string           `json:"skills" validate:"dive,oneof=driving food_handling heavy_lifting coordination food_safety_certified"`
		Vehicle          Vehicle            `json:"vehicle"`
		ServiceArea      ServiceArea        `json:"service_area"`
		EmergencyContact EmergencyContact   `json:"emergency_contact"`
	}

	UploadDocumentsRequest struct {
		Documents []*multipart.FileHeader
	}

	VerificationStatus struct {
		UserID      string    `json:"user_id"`
		Verified    bool      `json:"verified"`
		Documents   []string  `json:"documents"`
		LastUpdated time.Time `json:"last_updated"`
	}
)
