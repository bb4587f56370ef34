package donation

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
)

func ToDomainDonation(d *entities.Donation) *domain.Donation {
	result := &domain.Donation{
		ID:      d.ID.String(),
		DonorID: d.DonorID.String(),
		Donor:   toUserSummary(d.Donor),
		FoodDetails: domain.FoodDetails{
			Type:        d.FoodDetails.Type,
			Description: d.FoodDetails.Description,
			Quantity: domain.Quantity{
				Amount: d.FoodDetails.Quantity.Amount,
				Unit:   d.FoodDetails.Quantity.Unit,
			},
			PreparedTime:   d.FoodDetails.PreparedTime,
			ExpiryTime:     d.FoodDetails.ExpiryTime,
			DietaryInfo:    nonNil(d.FoodDetails.DietaryInfo),
			Allergens:      nonNil(d.FoodDetails.Allergens),
			EstimatedValue: d.FoodDetails.EstimatedValue,
		},
		PickupDetails: domain.PickupDetails{
			Address:             toDomainAddress(d.PickupDetails.Address),
			AvailableTimeStart:  d.PickupDetails.AvailableTimeStart,
			AvailableTimeEnd:    d.PickupDetails.AvailableTimeEnd,
			SpecialInstructions: d.PickupDetails.SpecialInstructions,
		},
		Status: d.Status,
		QualityMetrics: domain.QualityMetrics{
			Temperature:      d.Quality.Temperature,
			PackagingQuality: d.Quality.PackagingQuality,
		},
		Impact: domain.DonationImpact{
			PeopleServed: d.Impact.PeopleServed,
			CarbonSaved:  d.Impact.CarbonSaved,
		},
		Tracking:    make([]domain.TrackingEntry, 0, len(d.Tracking)),
		AssignedAt:  d.AssignedAt,
		DeliveredAt: d.DeliveredAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}

	if d.Quality.VerifiedBy != nil {
		result.QualityMetrics.VerifiedBy = d.Quality.VerifiedBy.String()
	}

	if d.AssignedVolunteerID != nil {
		result.AssignedTo.Volunteer = toUserSummary(d.Volunteer)
		if result.AssignedTo.Volunteer == nil {
			result.AssignedTo.Volunteer = &domain.UserSummary{ID: d.AssignedVolunteerID.String()}
		}
	}
	if d.AssignedRecipientID != nil {
		result.AssignedTo.Recipient = toUserSummary(d.Recipient)
		if result.AssignedTo.Recipient == nil {
			result.AssignedTo.Recipient = &domain.UserSummary{ID: d.AssignedRecipientID.String()}
		}
	}

	for _, entry := range d.Tracking {
		tracking := domain.TrackingEntry{
			Sequence:  entry.Sequence,
			Status:    entry.Status,
			Timestamp: entry.RecordedAt,
			UpdatedBy: entry.UpdatedBy.String(),
		}
		if entry.Latitude != nil && entry.Longitude != nil {
			tracking.Location = &domain.LocationRequest{
				Latitude:  *entry.Latitude,
				Longitude: *entry.Longitude,
			}
		}
		result.Tracking = append(result.Tracking, tracking)
	}

	return result
}

func ToDomainDonations(donations []*entities.Donation) []*domain.Donation {
	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, ToDomainDonation(d))
	}
	return result
}

func toUserSummary(u *entities.User) *domain.UserSummary {
	if u == nil {
		return nil
	}
	return &domain.UserSummary{
		ID:     u.ID.String(),
		Name:   u.Name,
		Rating: u.Rating,
	}
}

func toDomainAddress(a entities.Address) domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
