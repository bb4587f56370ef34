package donation

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"Aahar-Backend/internal/observability"
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error)
		GetDonations(ctx context.Context, filter domain.DonationFilter) (*domain.DonationList, error)
		GetDonationByID(ctx context.Context, id string) (*domain.Donation, error)
		AcceptPickup(ctx context.Context, donationID string, actor domain.Actor) (*domain.Donation, error)
		UpdateStatus(ctx context.Context, donationID string, actor domain.Actor, req domain.UpdateDonationStatusRequest) (*domain.Donation, error)
		AssignRecipient(ctx context.Context, donationID string, actor domain.Actor, req domain.AssignRecipientRequest) (*domain.Donation, error)
		GetDonationHistory(ctx context.Context, donorID string, filter domain.DonationHistoryFilter) (*domain.DonationList, error)
		GetRecentDonations(ctx context.Context, donorID string, limit int) ([]*domain.Donation, error)
		CountDonorDonations(ctx context.Context, donorID string, statuses ...domain.DonationStatus) (int64, error)
		CountVolunteerDonations(ctx context.Context, volunteerID string, statuses ...domain.DonationStatus) (int64, error)
		CountVolunteerCancellations(ctx context.Context, volunteerID string) (int64, error)
		ApplyRewards(ctx context.Context, donationID string) (*domain.RewardResult, error)
	}

	// Rewarder credits a delivered donation. Implementations must be
	// idempotent per donation.
	Rewarder interface {
		AwardPoints(ctx context.Context, donationID string) (*domain.RewardResult, error)
	}

	Notifier interface {
		Notify(ctx context.Context, event domain.NotificationEvent)
	}

	CacheInvalidator interface {
		InvalidateDonor(ctx context.Context, donorID string)
	}

	donationService struct {
		donationRepository DonationRepository
		rewarder           Rewarder
		notifier           Notifier
		cache              CacheInvalidator
		now                func() time.Time
	}
)

func NewDonationService(donationRepository DonationRepository, rewarder Rewarder, notifier Notifier, cache CacheInvalidator) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		rewarder:           rewarder,
		notifier:           notifier,
		cache:              cache,
		now:                time.Now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, donorID string) (*domain.Donation, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := s.now()
	if err := validateCreateRequest(req, now); err != nil {
		return nil, err
	}

	donation := &entities.Donation{
		ID:      uuid.New(),
		DonorID: donorUUID,
		FoodDetails: entities.FoodDetails{
			Type:        strings.TrimSpace(req.FoodDetails.Type),
			Description: req.FoodDetails.Description,
			Quantity: entities.Quantity{
				Amount: req.FoodDetails.Quantity.Amount,
				Unit:   strings.TrimSpace(req.FoodDetails.Quantity.Unit),
			},
			PreparedTime:   req.FoodDetails.PreparedTime,
			ExpiryTime:     req.FoodDetails.ExpiryTime,
			DietaryInfo:    datatypes.JSONSlice[string](req.FoodDetails.DietaryInfo),
			Allergens:      datatypes.JSONSlice[string](req.FoodDetails.Allergens),
			EstimatedValue: req.FoodDetails.EstimatedValue,
		},
		PickupDetails: entities.PickupDetails{
			Address: entities.Address{
				Street:  req.PickupDetails.Address.Street,
				City:    strings.TrimSpace(req.PickupDetails.Address.City),
				State:   req.PickupDetails.Address.State,
				ZipCode: req.PickupDetails.Address.ZipCode,
			},
			AvailableTimeStart:  req.PickupDetails.AvailableTimeStart,
			AvailableTimeEnd:    req.PickupDetails.AvailableTimeEnd,
			SpecialInstructions: req.PickupDetails.SpecialInstructions,
		},
		Status: domain.StatusAvailable,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.QualityMetrics != nil {
		donation.Quality = entities.QualityMetrics{
			Temperature:      req.QualityMetrics.Temperature,
			PackagingQuality: req.QualityMetrics.PackagingQuality,
		}
	}

	entry := &entities.TrackingEntry{
		Sequence:   0,
		Status:     domain.StatusAvailable,
		RecordedAt: now,
		UpdatedBy:  donorUUID,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation, entry); err != nil {
		return nil, err
	}
	donation.Tracking = []*entities.TrackingEntry{entry}
	observability.DonationsCreated.Inc()

	address := toDomainAddress(donation.PickupDetails.Address)
	s.notifier.Notify(ctx, domain.NotificationEvent{
		Type:       domain.NotificationNewDonation,
		DonationID: donation.ID.String(),
		DonorID:    donorID,
		Status:     domain.StatusAvailable,
		Location:   &address,
		OccurredAt: now,
	})
	s.cache.InvalidateDonor(ctx, donorID)

	return ToDomainDonation(donation), nil
}

func validateCreateRequest(req domain.CreateDonationRequest, now time.Time) error {
	switch {
	case strings.TrimSpace(req.FoodDetails.Type) == "":
		return domain.Wrap(domain.ErrValidation, "food type is required")
	case strings.TrimSpace(req.FoodDetails.Description) == "":
		return domain.Wrap(domain.ErrValidation, "food description is required")
	case req.FoodDetails.Quantity.Amount <= 0:
		return domain.Wrap(domain.ErrValidation, "quantity amount must be greater than zero")
	case strings.TrimSpace(req.FoodDetails.Quantity.Unit) == "":
		return domain.Wrap(domain.ErrValidation, "quantity unit is required")
	case strings.TrimSpace(req.PickupDetails.Address.City) == "":
		return domain.Wrap(domain.ErrValidation, "pickup city is required")
	case req.FoodDetails.Quantity.Amount > domain.MaxQuantityAmount:
		return domain.ErrQuantityTooLarge
	case req.FoodDetails.EstimatedValue < 0:
		return domain.Wrap(domain.ErrValidation, "estimated value cannot be negative")
	case req.FoodDetails.EstimatedValue > domain.MaxEstimatedValue:
		return domain.ErrEstimatedValueTooLarge
	}

	if !req.FoodDetails.ExpiryTime.After(now) {
		return domain.ErrExpiryNotInFuture
	}

	start, end := req.PickupDetails.AvailableTimeStart, req.PickupDetails.AvailableTimeEnd
	if start != nil && end != nil && !end.After(*start) {
		return domain.ErrInvalidPickupWindow
	}
	return nil
}

func (s *donationService) GetDonations(ctx context.Context, filter domain.DonationFilter) (*domain.DonationList, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	donations, count, err := s.donationRepository.GetAvailableDonations(ctx, filter, s.now())
	if err != nil {
		return nil, err
	}

	return &domain.DonationList{
		Donations:  ToDomainDonations(donations),
		Pagination: domain.NewPagination(filter.Page, filter.Limit, count),
	}, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (*domain.Donation, error) {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDomainDonation(donation), nil
}

// AcceptPickup claims an available donation for the calling volunteer. Only
// one of any number of concurrent callers can win; the rest get
// ErrDonationUnavailable and leave the record untouched.
func (s *donationService) AcceptPickup(ctx context.Context, donationID string, actor domain.Actor) (*domain.Donation, error) {
	if actor.Role != domain.RoleVolunteer {
		return nil, domain.ErrOnlyVolunteerCanAccept
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation.Status != domain.StatusAvailable {
		return nil, domain.ErrDonationUnavailable
	}

	return s.transition(ctx, donation, actor, domain.StatusAssigned, nil, nil)
}

func (s *donationService) UpdateStatus(ctx context.Context, donationID string, actor domain.Actor, req domain.UpdateDonationStatusRequest) (*domain.Donation, error) {
	if !req.Status.Valid() {
		return nil, domain.ErrInvalidDonationStatus
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	switch donation.Status {
	case domain.StatusAssigned, domain.StatusInTransit:
		if !actor.IsAdmin() && !isAssignedVolunteer(donation, actor.ID) {
			return nil, domain.ErrNotAssignedVolunteer
		}
		if err := donation.Status.CheckTransition(req.Status); err != nil {
			return nil, err
		}
	case domain.StatusAvailable:
		if err := donation.Status.CheckTransition(req.Status); err != nil {
			return nil, err
		}
		if req.Status == domain.StatusAssigned && actor.Role != domain.RoleVolunteer {
			return nil, domain.ErrOnlyVolunteerCanAccept
		}
		if req.Status == domain.StatusCancelled && !actor.IsAdmin() && donation.DonorID.String() != actor.ID {
			return nil, domain.ErrUnauthorizedDonationAccess
		}
	default:
		return nil, donation.Status.CheckTransition(req.Status)
	}

	return s.transition(ctx, donation, actor, req.Status, req.Location, req.PeopleServed)
}

func (s *donationService) transition(
	ctx context.Context,
	donation *entities.Donation,
	actor domain.Actor,
	to domain.DonationStatus,
	location *domain.LocationRequest,
	peopleServed *int,
) (*domain.Donation, error) {
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := s.now()
	from := donation.Status
	fields := map[string]any{}

	switch to {
	case domain.StatusAssigned:
		fields["assigned_volunteer_id"] = actorID
		fields["assigned_at"] = now
	case domain.StatusDelivered:
		quantity := domain.Quantity{
			Amount: donation.FoodDetails.Quantity.Amount,
			Unit:   donation.FoodDetails.Quantity.Unit,
		}
		served := domain.EstimatePeopleServed(quantity)
		if peopleServed != nil {
			if *peopleServed < 0 || *peopleServed > domain.MaxPeopleServed {
				return nil, domain.Wrapf(domain.ErrValidation, "people served must be between 0 and %d", domain.MaxPeopleServed)
			}
			served = *peopleServed
		}
		fields["delivered_at"] = now
		fields["impact_people_served"] = served
		fields["impact_carbon_saved"] = domain.EstimateCarbonSaved(quantity)
	case domain.StatusCancelled:
		fields["assigned_volunteer_id"] = nil
		fields["assigned_recipient_id"] = nil
		fields["assigned_at"] = nil
	}

	entry := entities.TrackingEntry{
		Status:     to,
		RecordedAt: now,
		UpdatedBy:  actorID,
	}
	if location != nil {
		entry.Latitude = &location.Latitude
		entry.Longitude = &location.Longitude
	}

	err = s.donationRepository.TransitionStatus(ctx, donation.ID.String(), from, StatusChange{
		To:     to,
		Fields: fields,
		Entry:  entry,
	})
	if err != nil {
		if errors.Is(err, ErrStaleStatus) {
			observability.DonationConflicts.Inc()
			if from == domain.StatusAvailable && to == domain.StatusAssigned {
				return nil, domain.ErrDonationUnavailable
			}
			return nil, domain.ErrDonationChanged
		}
		return nil, err
	}
	observability.DonationTransitions.WithLabelValues(string(from), string(to)).Inc()

	if to == domain.StatusDelivered {
		if _, err := s.rewarder.AwardPoints(ctx, donation.ID.String()); err != nil {
			observability.RewardFailures.Inc()
			log.Errorf("award points for donation %s: %v", donation.ID, err)
		}
	}

	updated, err := s.getDonation(ctx, donation.ID.String())
	if err != nil {
		return nil, err
	}

	event := s.eventFor(updated, domain.NotificationForStatus(to), now)
	if to == domain.StatusCancelled {
		// assignment is cleared by now; the previous holders still get told
		if donation.AssignedVolunteerID != nil {
			event.VolunteerID = donation.AssignedVolunteerID.String()
		}
		if donation.AssignedRecipientID != nil {
			event.RecipientID = donation.AssignedRecipientID.String()
		}
	}
	s.notifier.Notify(ctx, event)
	s.cache.InvalidateDonor(ctx, updated.DonorID.String())

	return ToDomainDonation(updated), nil
}

// AssignRecipient records the receiving organisation while a volunteer holds
// the donation.
func (s *donationService) AssignRecipient(ctx context.Context, donationID string, actor domain.Actor, req domain.AssignRecipientRequest) (*domain.Donation, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isAssignedVolunteer(donation, actor.ID) && donation.DonorID.String() != actor.ID {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	if donation.Status != domain.StatusAssigned && donation.Status != domain.StatusInTransit {
		return nil, domain.ErrRecipientAssignmentClosed
	}

	recipient, err := s.donationRepository.GetUserByID(ctx, recipientID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if recipient.Role != domain.RoleRecipient {
		return nil, domain.ErrInvalidRecipient
	}

	now := s.now()
	if err := s.donationRepository.AssignRecipient(ctx, donation.ID.String(), recipientID, now); err != nil {
		if errors.Is(err, ErrStaleStatus) {
			observability.DonationConflicts.Inc()
			return nil, domain.ErrRecipientAssignmentClosed
		}
		return nil, err
	}

	updated, err := s.getDonation(ctx, donation.ID.String())
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, s.eventFor(updated, domain.NotificationRecipientAssigned, now))
	s.cache.InvalidateDonor(ctx, updated.DonorID.String())

	return ToDomainDonation(updated), nil
}

func (s *donationService) GetDonationHistory(ctx context.Context, donorID string, filter domain.DonationHistoryFilter) (*domain.DonationList, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidDonationStatus
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domain.Wrap(domain.ErrValidation, "end date must not be before start date")
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	donations, count, err := s.donationRepository.GetDonorDonations(ctx, donorID, filter)
	if err != nil {
		return nil, err
	}

	return &domain.DonationList{
		Donations:  ToDomainDonations(donations),
		Pagination: domain.NewPagination(filter.Page, filter.Limit, count),
	}, nil
}

func (s *donationService) GetRecentDonations(ctx context.Context, donorID string, limit int) ([]*domain.Donation, error) {
	donations, err := s.donationRepository.GetRecentDonations(ctx, donorID, limit)
	if err != nil {
		return nil, err
	}
	return ToDomainDonations(donations), nil
}

func (s *donationService) CountDonorDonations(ctx context.Context, donorID string, statuses ...domain.DonationStatus) (int64, error) {
	return s.donationRepository.CountDonorDonations(ctx, donorID, statuses...)
}

func (s *donationService) CountVolunteerDonations(ctx context.Context, volunteerID string, statuses ...domain.DonationStatus) (int64, error) {
	return s.donationRepository.CountVolunteerDonations(ctx, volunteerID, statuses...)
}

func (s *donationService) CountVolunteerCancellations(ctx context.Context, volunteerID string) (int64, error) {
	return s.donationRepository.CountVolunteerCancellations(ctx, volunteerID)
}

// ApplyRewards re-runs reward application for a delivered donation. The
// ledger makes repeated calls a no-op.
func (s *donationService) ApplyRewards(ctx context.Context, donationID string) (*domain.RewardResult, error) {
	donation, err := s.getDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}

	result, err := s.rewarder.AwardPoints(ctx, donation.ID.String())
	if err != nil {
		return nil, err
	}
	if result.Applied {
		s.cache.InvalidateDonor(ctx, donation.DonorID.String())
	}
	return result, nil
}

// getDonation treats an unparsable id as a missing donation.
func (s *donationService) getDonation(ctx context.Context, id string) (*entities.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, fmt.Errorf("get donation %s: %w", id, err)
	}
	return donation, nil
}

func (s *donationService) eventFor(d *entities.Donation, kind domain.NotificationType, at time.Time) domain.NotificationEvent {
	event := domain.NotificationEvent{
		Type:       kind,
		DonationID: d.ID.String(),
		DonorID:    d.DonorID.String(),
		Status:     d.Status,
		OccurredAt: at,
	}
	if d.AssignedVolunteerID != nil {
		event.VolunteerID = d.AssignedVolunteerID.String()
	}
	if d.AssignedRecipientID != nil {
		event.RecipientID = d.AssignedRecipientID.String()
	}
	if kind == domain.NotificationNewDonation || kind == domain.NotificationDonationAssigned {
		address := toDomainAddress(d.PickupDetails.Address)
		event.Location = &address
	}
	return event
}

func isAssignedVolunteer(d *entities.Donation, actorID string) bool {
	return d.AssignedVolunteerID != nil && d.AssignedVolunteerID.String() == actorID
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}
