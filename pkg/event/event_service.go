package event

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	EventService interface {
		CreateEvent(ctx context.Context, actor domain.Actor, req domain.CreateEventRequest) (*domain.Event, error)
		GetEvents(ctx context.Context, page, limit int) ([]*domain.Event, domain.Pagination, error)
		Register(ctx context.Context, eventID string, actor domain.Actor, req domain.RegisterEventRequest) (*domain.Event, error)
		CancelRegistration(ctx context.Context, eventID string, actor domain.Actor) error
	}

	eventService struct {
		eventRepository EventRepository
		now             func() time.Time
	}
)

func NewEventService(eventRepository EventRepository) EventService {
	return &eventService{
		eventRepository: eventRepository,
		now:             time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, req domain.CreateEventRequest) (*domain.Event, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	organizerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if !req.End.After(req.Start) {
		return nil, domain.ErrInvalidEventWindow
	}

	event := &entities.Event{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Type:         req.Type,
		Start:        req.Start,
		End:          req.End,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OrganizerID:  organizerID,
		Capacity:     req.Capacity,
		Requirements: req.Requirements,
	}
	if err := s.eventRepository.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return toDomainEvent(event, 0), nil
}

func (s *eventService) GetEvents(ctx context.Context, page, limit int) ([]*domain.Event, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	events, total, err := s.eventRepository.GetUpcomingEvents(ctx, s.now(), page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := s.eventRepository.CountActiveParticipants(ctx, ids...)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	result := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		result = append(result, toDomainEvent(e, counts[e.ID]))
	}
	return result, domain.NewPagination(page, limit, total), nil
}

// Register adds the actor to the event. A capacity of zero means unlimited.
// A cancelled registration is reactivated rather than duplicated.
func (s *eventService) Register(ctx context.Context, eventID string, actor domain.Actor, req domain.RegisterEventRequest) (*domain.Event, error) {
	eventUUID, userUUID, err := parseIDs(eventID, actor.ID)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = actor.Role
	}

	var (
		event      *entities.Event
		registered int64
	)
	err = s.eventRepository.Transaction(ctx, func(repo EventRepository) error {
		event, err = repo.LockEvent(ctx, eventUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}

		participant, err := repo.GetParticipant(ctx, eventUUID, userUUID)
		switch {
		case err == nil && participant.Status != domain.ParticipantCancelled:
			return domain.ErrAlreadyRegistered
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		case err != nil:
			participant = &entities.EventParticipant{
				ID:      uuid.New(),
				EventID: eventUUID,
				UserID:  userUUID,
			}
		}

		counts, err := repo.CountActiveParticipants(ctx, eventUUID)
		if err != nil {
			return err
		}
		registered = counts[eventUUID]
		if event.Capacity > 0 && registered >= int64(event.Capacity) {
			return domain.ErrEventFull
		}

		participant.Role = role
		participant.Status = domain.ParticipantRegistered
		if err := repo.SaveParticipant(ctx, participant); err != nil {
			return err
		}
		registered++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomainEvent(event, registered), nil
}

func (s *eventService) CancelRegistration(ctx context.Context, eventID string, actor domain.Actor) error {
	eventUUID, userUUID, err := parseIDs(eventID, actor.ID)
	if err != nil {
		return err
	}

	return s.eventRepository.Transaction(ctx, func(repo EventRepository) error {
		if _, err := repo.LockEvent(ctx, eventUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}

		participant, err := repo.GetParticipant(ctx, eventUUID, userUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotRegistered
			}
			return err
		}
		if participant.Status == domain.ParticipantCancelled {
			return domain.ErrNotRegistered
		}

		participant.Status = domain.ParticipantCancelled
		return repo.SaveParticipant(ctx, participant)
	})
}

func parseIDs(eventID, userID string) (uuid.UUID, uuid.UUID, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return eventUUID, userUUID, nil
}

func toDomainEvent(e *entities.Event, registered int64) *domain.Event {
	requirements := []string(e.Requirements)
	if requirements == nil {
		requirements = []string{}
	}
	return &domain.Event{
		ID:           e.ID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Type:         e.Type,
		Start:        e.Start,
		End:          e.End,
		Address:      e.Address,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		OrganizerID:  e.OrganizerID.String(),
		Capacity:     e.Capacity,
		Registered:   registered,
		Requirements: requirements,
	}
}
