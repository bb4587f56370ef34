package notification

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/utils/mailing"
	"context"
	"errors"
	"fmt"
)

type EmailChannel struct {
	mailer   mailing.Mailer
	contacts ContactRepository
	appURL   string
}

func NewEmailChannel(mailer mailing.Mailer, contacts ContactRepository, appURL string) *EmailChannel {
	return &EmailChannel{
		mailer:   mailer,
		contacts: contacts,
		appURL:   appURL,
	}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) Send(ctx context.Context, event domain.NotificationEvent) error {
	recipients, err := c.recipients(ctx, event)
	if err != nil {
		return err
	}

	subject, body := c.render(event)
	var errs []error
	for _, email := range recipients {
		if err := c.mailer.SendMail(email, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", email, err))
		}
	}
	return errors.Join(errs...)
}

func (c *EmailChannel) recipients(ctx context.Context, event domain.NotificationEvent) ([]string, error) {
	if event.Type == domain.NotificationNewDonation {
		if event.Location == nil || event.Location.City == "" {
			return nil, nil
		}
		return c.contacts.GetVolunteerEmailsByCity(ctx, event.Location.City)
	}

	var ids []string
	switch event.Type {
	case domain.NotificationDonationAssigned, domain.NotificationDonationInTransit:
		ids = []string{event.DonorID}
	case domain.NotificationDonationDelivered:
		ids = []string{event.DonorID, event.RecipientID}
	case domain.NotificationDonationCancelled:
		ids = []string{event.DonorID, event.VolunteerID, event.RecipientID}
	case domain.NotificationRecipientAssigned:
		ids = []string{event.RecipientID, event.VolunteerID}
	}

	present := ids[:0]
	for _, id := range ids {
		if id != "" {
			present = append(present, id)
		}
	}
	return c.contacts.GetEmails(ctx, present)
}

func (c *EmailChannel) render(event domain.NotificationEvent) (string, string) {
	link := fmt.Sprintf("%s/donations/%s", c.appURL, event.DonationID)

	switch event.Type {
	case domain.NotificationNewDonation:
		return "New food donation near you",
			fmt.Sprintf("<p>A new donation is available for pickup in %s.</p><p><a href=\"%s\">View donation</a></p>", event.Location.City, link)
	case domain.NotificationDonationAssigned:
		return "A volunteer accepted your donation",
			fmt.Sprintf("<p>A volunteer is on the way to collect your donation.</p><p><a href=\"%s\">Track donation</a></p>", link)
	case domain.NotificationDonationInTransit:
		return "Your donation is in transit",
			fmt.Sprintf("<p>Your donation has been picked up.</p><p><a href=\"%s\">Track donation</a></p>", link)
	case domain.NotificationDonationDelivered:
		return "Donation delivered",
			fmt.Sprintf("<p>The donation has been delivered. Thank you for reducing food waste.</p><p><a href=\"%s\">View donation</a></p>", link)
	case domain.NotificationDonationCancelled:
		return "Donation cancelled",
			fmt.Sprintf("<p>The donation was cancelled.</p><p><a href=\"%s\">View donation</a></p>", link)
	default:
		return "Donation update",
			fmt.Sprintf("<p>The donation status is now %s.</p><p><a href=\"%s\">View donation</a></p>", event.Status, link)
	}
}
