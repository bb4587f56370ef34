package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Address struct {
	Street  string `json:"street"`
	City    string `gorm:"index" json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type UserImpact struct {
	TotalDonations    int     `gorm:"not null;default:0" json:"total_donations"`
	PeopleServed      int     `gorm:"not null;default:0" json:"people_served"`
	VolunteeringHours float64 `gorm:"not null;default:0" json:"volunteering_hours"`
}

type User struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name                  string                      `gorm:"not null" json:"name"`
	Email                 string                      `gorm:"uniqueIndex;not null" json:"email"`
	Password              string                      `gorm:"not null" json:"-"`
	Role                  string                      `gorm:"type:varchar(20);index;not null" json:"role"`
	PhoneNumber           string                      `json:"phone_number"`
	Address               Address                     `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Verified              bool                        `gorm:"not null;default:false" json:"verified"`
	VerificationDocuments datatypes.JSONSlice[string] `json:"verification_documents"`
	Rating                float64                     `gorm:"not null;default:0" json:"rating"`
	Impact                UserImpact                  `gorm:"embedded;embeddedPrefix:impact_" json:"impact_metrics"`
	RewardPoints          int                         `gorm:"not null;default:0" json:"reward_points"`
	Badges                datatypes.JSONSlice[string] `json:"badges"`

	Certificates     []*TaxCertificate `gorm:"foreignKey:DonorID"`
	DonorProfile     *DonorProfile     `gorm:"foreignKey:UserID"`
	VolunteerProfile *VolunteerProfile `gorm:"foreignKey:UserID"`
	Timestamp
}
