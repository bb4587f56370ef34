package event

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	EventRepository interface {
		CreateEvent(ctx context.Context, event *entities.Event) error
		GetUpcomingEvents(ctx context.Context, from time.Time, page, limit int) ([]*entities.Event, int64, error)
		CountActiveParticipants(ctx context.Context, eventIDs ...uuid.UUID) (map[uuid.UUID]int64, error)

		// Transaction runs fn against a repository bound to one database
		// transaction. LockEvent is only meaningful inside it.
		Transaction(ctx context.Context, fn func(repo EventRepository) error) error
		LockEvent(ctx context.Context, id uuid.UUID) (*entities.Event, error)
		GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*entities.EventParticipant, error)
		SaveParticipant(ctx context.Context, participant *entities.EventParticipant) error
	}

	eventRepository struct {
		db *gorm.DB
	}

	participantCount struct {
		EventID uuid.UUID
		Total   int64
	}
)

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetUpcomingEvents(ctx context.Context, from time.Time, page, limit int) ([]*entities.Event, int64, error) {
	var (
		events []*entities.Event
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Event{}).Where("\"end\" >= ?", from)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("start ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) CountActiveParticipants(ctx context.Context, eventIDs ...uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []participantCount
	if err := r.db.WithContext(ctx).
		Model(&entities.EventParticipant{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND status <> ?", eventIDs, domain.ParticipantCancelled).
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}

func (r *eventRepository) Transaction(ctx context.Context, fn func(repo EventRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&eventRepository{db: tx})
	})
}

// LockEvent reads the event with a row lock so concurrent registrations
// for it are serialised until the transaction ends.
func (r *eventRepository) LockEvent(ctx context.Context, id uuid.UUID) (*entities.Event, error) {
	var event entities.Event
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*entities.EventParticipant, error) {
	var participant entities.EventParticipant
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *eventRepository) SaveParticipant(ctx context.Context, participant *entities.EventParticipant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}
