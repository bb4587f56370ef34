package entities

import (
	"Aahar-Backend/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DonorProfile struct {
	UserID                uuid.UUID                                        `gorm:"type:uuid;primary_key" json:"user_id"`
	OrganizationType      string                                           `gorm:"type:varchar(20);not null" json:"organization_type"`
	BusinessName          string                                           `json:"business_name"`
	PreferredPickupTimes  datatypes.JSONSlice[domain.PickupTimeWindow]     `json:"preferred_pickup_times"`
	FoodSafetyCredentials datatypes.JSONSlice[domain.FoodSafetyCredential] `json:"food_safety_credentials"`
	StorageCapacity       domain.StorageCapacity                           `gorm:"embedded;embeddedPrefix:storage_" json:"storage_capacity"`
	DonationSchedule      domain.DonationSchedule                          `gorm:"embedded;embeddedPrefix:schedule_" json:"donation_schedule"`
	TaxInformation        domain.TaxInformation                            `gorm:"embedded;embeddedPrefix:tax_" json:"tax_information"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type VolunteerProfile struct {
	UserID           uuid.UUID                                    `gorm:"type:uuid;primary_key" json:"user_id"`
	Availability     datatypes.JSONSlice[domain.PickupTimeWindow] `json:"availability"`
	Skills           datatypes.JSONSlice[string]                  `json:"skills"`
	Vehicle          domain.Vehicle                               `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicle"`
	ServiceArea      datatypes.JSONType[domain.ServiceArea]       `json:"service_area"`
	EmergencyContact domain.EmergencyContact                      `gorm:"embedded;embeddedPrefix:emergency_" json:"emergency_contact"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
