package user

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"gorm.io/datatypes"
)

func ToDomainUser(u *entities.User) *domain.User {
	certificates := make([]domain.TaxCertificate, 0, len(u.Certificates))
	for _, c := range u.Certificates {
		certificates = append(certificates, domain.TaxCertificate{
			CertificateNumber: c.CertificateNumber,
			DonorName:         c.DonorName,
			Year:              c.Year,
			TotalDonations:    c.TotalDonations,
			TotalValue:        c.TotalValue,
			IssuedDate:        c.IssuedDate,
		})
	}

	badges := []string(u.Badges)
	if badges == nil {
		badges = []string{}
	}

	return &domain.User{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Address: domain.Address{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			ZipCode: u.Address.ZipCode,
		},
		Verified: u.Verified,
		Rating:   u.Rating,
		ImpactMetrics: domain.ImpactMetrics{
			TotalDonations:    u.Impact.TotalDonations,
			PeopleServed:      u.Impact.PeopleServed,
			VolunteeringHours: u.Impact.VolunteeringHours,
		},
		Rewards: domain.Rewards{
			Points:       u.RewardPoints,
			Badges:       badges,
			Certificates: certificates,
		},
		CreatedAt: u.CreatedAt,
	}
}

func toServiceArea(area domain.ServiceArea) datatypes.JSONType[domain.ServiceArea] {
	if area.PreferredLocations == nil {
		area.PreferredLocations = []string{}
	}
	return datatypes.NewJSONType(area)
}
