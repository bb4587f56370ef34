package entities

import (
	"Aahar-Backend/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"time"
)

type Review struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID         uuid.UUID                   `gorm:"type:uuid;index;not null" json:"author_id"`
	RecipientID      uuid.UUID                   `gorm:"type:uuid;index;not null" json:"recipient_id"`
	DonationID       *uuid.UUID                  `gorm:"type:uuid;index" json:"donation_id,omitempty"`
	Rating           int                         `gorm:"not null" json:"rating"`
	Comment          string                      `json:"comment"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	VerifiedDelivery bool                        `gorm:"not null;default:false" json:"verified_delivery"`

	Author    *User `gorm:"foreignKey:AuthorID"`
	Recipient *User `gorm:"foreignKey:RecipientID"`
	Timestamp
}

type Event struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `json:"description"`
	Type         string                      `gorm:"type:varchar(30);not null" json:"type"`
	Start        time.Time                   `gorm:"index;not null" json:"start"`
	End          time.Time                   `gorm:"not null" json:"end"`
	Address      string                      `json:"address"`
	Latitude     *float64                    `json:"latitude,omitempty"`
	Longitude    *float64                    `json:"longitude,omitempty"`
	OrganizerID  uuid.UUID                   `gorm:"type:uuid;not null" json:"organizer_id"`
	Capacity     int                         `gorm:"not null;default:0" json:"capacity"`
	Requirements datatypes.JSONSlice[string] `json:"requirements"`

	Participants []*EventParticipant `gorm:"foreignKey:EventID"`
	Timestamp
}

type EventParticipant struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_participant,priority:1" json:"event_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_participant,priority:2" json:"user_id"`
	Role    string    `json:"role"`
	Status  string    `gorm:"type:varchar(20);not null" json:"status"`

	Event *Event `gorm:"foreignKey:EventID"`
	Timestamp
}

type Report struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ReporterID  uuid.UUID                   `gorm:"type:uuid;index;not null" json:"reporter_id"`
	EntityType  string                      `gorm:"type:varchar(20);not null" json:"entity_type"`
	EntityID    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"entity_id"`
	Reason      string                      `gorm:"not null" json:"reason"`
	Description string                      `json:"description"`
	Evidence    datatypes.JSONSlice[string] `json:"evidence"`
	Status      domain.ReportStatus         `gorm:"type:varchar(20);index;not null;default:pending" json:"status"`
	Action      string                      `json:"action"`
	Notes       string                      `json:"notes"`
	ResolvedBy  *uuid.UUID                  `gorm:"type:uuid" json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time                  `json:"resolved_at,omitempty"`
	Timestamp
}
