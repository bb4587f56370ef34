package entities

import (
	"Aahar-Backend/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"time"
)

type Quantity struct {
	Amount float64 `gorm:"not null" json:"amount"`
	Unit   string  `gorm:"type:varchar(20);not null" json:"unit"`
}

type FoodDetails struct {
	Type           string                      `gorm:"index;not null" json:"type"`
	Description    string                      `json:"description"`
	Quantity       Quantity                    `gorm:"embedded;embeddedPrefix:quantity_" json:"quantity"`
	PreparedTime   *time.Time                  `json:"prepared_time,omitempty"`
	ExpiryTime     time.Time                   `gorm:"index;not null" json:"expiry_time"`
	DietaryInfo    datatypes.JSONSlice[string] `json:"dietary_info"`
	Allergens      datatypes.JSONSlice[string] `json:"allergens"`
	EstimatedValue float64                     `gorm:"not null;default:0" json:"estimated_value"`
}

type PickupDetails struct {
	Address             Address    `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	AvailableTimeStart  *time.Time `json:"available_time_start,omitempty"`
	AvailableTimeEnd    *time.Time `json:"available_time_end,omitempty"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
}

type QualityMetrics struct {
	Temperature      *float64   `json:"temperature,omitempty"`
	PackagingQuality string     `gorm:"type:varchar(20)" json:"packaging_quality,omitempty"`
	VerifiedBy       *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
}

type DonationImpact struct {
	PeopleServed int     `gorm:"not null;default:0" json:"people_served"`
	CarbonSaved  float64 `gorm:"not null;default:0" json:"carbon_saved"`
}

// Donation rows are never deleted. Status only moves through conditional
// updates that also append a TrackingEntry in the same transaction.
type Donation struct {
	ID                  uuid.UUID             `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID             uuid.UUID             `gorm:"type:uuid;index;not null" json:"donor_id"`
	FoodDetails         FoodDetails           `gorm:"embedded;embeddedPrefix:food_" json:"food_details"`
	PickupDetails       PickupDetails         `gorm:"embedded;embeddedPrefix:pickup_" json:"pickup_details"`
	Status              domain.DonationStatus `gorm:"type:varchar(20);index;not null;default:available" json:"status"`
	AssignedVolunteerID *uuid.UUID            `gorm:"type:uuid;index" json:"assigned_volunteer_id,omitempty"`
	AssignedRecipientID *uuid.UUID            `gorm:"type:uuid;index" json:"assigned_recipient_id,omitempty"`
	AssignedAt          *time.Time            `json:"assigned_at,omitempty"`
	DeliveredAt         *time.Time            `json:"delivered_at,omitempty"`
	Quality             QualityMetrics        `gorm:"embedded;embeddedPrefix:quality_" json:"quality_metrics"`
	Impact              DonationImpact        `gorm:"embedded;embeddedPrefix:impact_" json:"impact"`

	Donor     *User            `gorm:"foreignKey:DonorID"`
	Volunteer *User            `gorm:"foreignKey:AssignedVolunteerID"`
	Recipient *User            `gorm:"foreignKey:AssignedRecipientID"`
	Tracking  []*TrackingEntry `gorm:"foreignKey:DonationID"`
	Timestamp
}

type TrackingEntry struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_donation_sequence,priority:1" json:"donation_id"`
	Sequence   int                   `gorm:"not null;uniqueIndex:idx_tracking_donation_sequence,priority:2" json:"sequence"`
	Status     domain.DonationStatus `gorm:"type:varchar(20);not null" json:"status"`
	Latitude   *float64              `json:"latitude,omitempty"`
	Longitude  *float64              `json:"longitude,omitempty"`
	RecordedAt time.Time             `gorm:"type:timestamp with time zone;not null" json:"recorded_at"`
	UpdatedBy  uuid.UUID             `gorm:"type:uuid;not null" json:"updated_by"`
}

func (TrackingEntry) TableName() string {
	return "donation_tracking_entries"
}
