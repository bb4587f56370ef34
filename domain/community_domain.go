package domain

import (
	"time"
)

var (
	MessageSuccessCreateReview  = "review created successfully"
	MessageSuccessGetReviews    = "reviews retrieved successfully"
	MessageSuccessCreateEvent   = "event created successfully"
	MessageSuccessGetEvents     = "events retrieved successfully"
	MessageSuccessRegisterEvent = "registered for event successfully"
	MessageSuccessCancelEvent   = "event registration cancelled successfully"
	MessageSuccessCreateReport  = "report submitted successfully"
	MessageSuccessGetReports    = "reports retrieved successfully"
	MessageSuccessResolveReport = "report updated successfully"

	MessageFailedCreateReview  = "failed to create review"
	MessageFailedGetReviews    = "failed to retrieve reviews"
	MessageFailedCreateEvent   = "failed to create event"
	MessageFailedGetEvents     = "failed to retrieve events"
	MessageFailedRegisterEvent = "failed to register for event"
	MessageFailedCancelEvent   = "failed to cancel event registration"
	MessageFailedCreateReport  = "failed to submit report"
	MessageFailedGetReports    = "failed to retrieve reports"
	MessageFailedResolveReport = "failed to update report"

	ErrSelfReview             = Wrap(ErrValidation, "users cannot review themselves")
	ErrEventNotFound          = Wrap(ErrNotFound, "event not found")
	ErrEventFull              = Wrap(ErrConflict, "event is at capacity")
	ErrAlreadyRegistered      = Wrap(ErrConflict, "already registered for this event")
	ErrNotRegistered          = Wrap(ErrNotFound, "no active registration for this event")
	ErrInvalidEventWindow     = Wrap(ErrValidation, "event end must be after its start")
	ErrReportNotFound         = Wrap(ErrNotFound, "report not found")
	ErrReportedEntityNotFound = Wrap(ErrNotFound, "reported entity not found")
	ErrInvalidReportStatus    = Wrap(ErrValidation, "invalid report status")
	ErrReportChanged          = Wrap(ErrConflict, "report was updated by someone else, reload and retry")
)

type ReportStatus string

const (
	ReportPending       ReportStatus = "pending"
	ReportInvestigating ReportStatus = "investigating"
	ReportResolved      ReportStatus = "resolved"
	ReportDismissed     ReportStatus = "dismissed"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportPending:       {ReportInvestigating, ReportResolved, ReportDismissed},
	ReportInvestigating: {ReportResolved, ReportDismissed},
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, candidate := range reportTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

const (
	ParticipantRegistered = "registered"
	ParticipantAttended   = "attended"
	ParticipantCancelled  = "cancelled"
)

type (
	CreateReviewRequest struct {
		RecipientID string   `json:"recipient_id" validate:"required,uuid"`
		DonationID  string   `json:"donation_id" validate:"omitempty,uuid"`
		Rating      int      `json:"rating" validate:"required,min=1,max=5"`
		Comment     string   `json:"comment" validate:"max=2000"`
		Images      []string `json:"images" validate:"omitempty,max=5,dive,url"`
	}

	Review struct {
		ID               string    `json:"id"`
		AuthorID         string    `json:"author_id"`
		RecipientID      string    `json:"recipient_id"`
		DonationID       string    `json:"donation_id,omitempty"`
		Rating           int       `json:"rating"`
		Comment          string    `json:"comment,omitempty"`
		Images           []string  `json:"images"`
		VerifiedDelivery bool      `json:"verified_delivery"`
		CreatedAt        time.Time `json:"created_at"`
	}

	CreateEventRequest struct {
		Title        string    `json:"title" validate:"required"`
		Description  string    `json:"description"`
		Type         string    `json:"type" validate:"required,oneof=food-drive volunteer-training awareness-campaign"`
		Start        time.Time `json:"start" validate:"required"`
		End          time.Time `json:"end" validate:"required"`
		Address      string    `json:"address"`
		Latitude     *float64  `json:"latitude" validate:"omitempty,latitude"`
		Longitude    *float64  `json:"longitude" validate:"omitempty,longitude"`
		Capacity     int       `json:"capacity" validate:"gte=0"`
		Requirements []string  `json:"requirements"`
	}

	RegisterEventRequest struct {
		Role string `json:"role"`
	}

	Event struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Description  string    `json:"description,omitempty"`
		Type         string    `json:"type"`
		Start        time.Time `json:"start"`
		End          time.Time `json:"end"`
		Address      string    `json:"address,omitempty"`
		Latitude     *float64  `json:"latitude,omitempty"`
		Longitude    *float64  `json:"longitude,omitempty"`
		OrganizerID  string    `json:"organizer_id"`
		Capacity     int       `json:"capacity"`
		Registered   int64     `json:"registered"`
		Requirements []string  `json:"requirements"`
	}

	CreateReportRequest struct {
		EntityType  string   `json:"entity_type" validate:"required,oneof=User Donation Review"`
		EntityID    string   `json:"entity_id" validate:"required,uuid"`
		Reason      string   `json:"reason" validate:"required"`
		Description string   `json:"description"`
		Evidence    []string `json:"evidence" validate:"omitempty,dive,url"`
	}

	UpdateReportRequest struct {
		Status ReportStatus `json:"status" validate:"required,oneof=investigating resolved dismissed"`
		Action string       `json:"action"`
		Notes  string       `json:"notes"`
	}

	Report struct {
		ID          string       `json:"id"`
		ReporterID  string       `json:"reporter_id"`
		EntityType  string       `json:"entity_type"`
		EntityID    string       `json:"entity_id"`
		Reason      string       `json:"reason"`
		Description string       `json:"description,omitempty"`
		Evidence    []string     `json:"evidence"`
		Status      ReportStatus `json:"status"`
		Action      string       `json:"action,omitempty"`
		Notes       string       `json:"notes,omitempty"`
		ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
		CreatedAt   time.Time    `json:"created_at"`
	}
)
