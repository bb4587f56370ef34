package entities

import (
	"github.com/google/uuid"
	"time"
)

// RewardEvent is the delivered-donation ledger. The primary key on
// DonationID is what keeps reward application at most once per donation.
type RewardEvent struct {
	DonationID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"donation_id"`
	DonorID           uuid.UUID  `gorm:"type:uuid;index;not null" json:"donor_id"`
	VolunteerID       *uuid.UUID `gorm:"type:uuid;index" json:"volunteer_id,omitempty"`
	BasePoints        int        `gorm:"not null" json:"base_points"`
	BonusPoints       int        `gorm:"not null" json:"bonus_points"`
	Points            int        `gorm:"not null" json:"points"`
	VolunteeringHours float64    `gorm:"not null" json:"volunteering_hours"`
	PeopleServed      int        `gorm:"not null" json:"people_served"`
	AppliedAt         time.Time  `gorm:"type:timestamp with time zone;not null" json:"applied_at"`
}

type TaxCertificate struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_donor_year,priority:1" json:"donor_id"`
	Year              int       `gorm:"not null;uniqueIndex:idx_certificate_donor_year,priority:2" json:"year"`
	CertificateNumber string    `gorm:"not null" json:"certificate_number"`
	DonorName         string    `json:"donor_name"`
	TotalDonations    int64     `gorm:"not null" json:"total_donations"`
	TotalValue        float64   `gorm:"not null" json:"total_value"`
	IssuedDate        time.Time `gorm:"type:timestamp with time zone;not null" json:"issued_date"`

	Donor *User `gorm:"foreignKey:DonorID"`
	Timestamp
}
