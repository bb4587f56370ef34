package domain

import (
	"time"
)

type NotificationType string

const (
	NotificationNewDonation       NotificationType = "NEW_DONATION"
	NotificationDonationAssigned  NotificationType = "DONATION_ASSIGNED"
	NotificationDonationInTransit NotificationType = "DONATION_IN_TRANSIT"
	NotificationDonationDelivered NotificationType = "DONATION_DELIVERED"
	NotificationDonationCancelled NotificationType = "DONATION_CANCELLED"
	NotificationRecipientAssigned NotificationType = "RECIPIENT_ASSIGNED"
)

// NotificationForStatus maps a lifecycle state to the event announcing it.
func NotificationForStatus(status DonationStatus) NotificationType {
	switch status {
	case StatusAssigned:
		return NotificationDonationAssigned
	case StatusInTransit:
		return NotificationDonationInTransit
	case StatusDelivered:
		return NotificationDonationDelivered
	case StatusCancelled:
		return NotificationDonationCancelled
	default:
		return NotificationNewDonation
	}
}

type NotificationEvent struct {
	Type        NotificationType `json:"type"`
	DonationID  string           `json:"donation_id"`
	DonorID     string           `json:"donor_id"`
	VolunteerID string           `json:"volunteer_id,omitempty"`
	RecipientID string           `json:"recipient_id,omitempty"`
	Status      DonationStatus   `json:"status"`
	Location    *Address         `json:"location,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
