package domain

import (
	"errors"
)

const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleRecipient = "recipient"
	RoleAdmin     = "admin"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = Wrap(ErrValidation, "failed to parse UUID")
	ErrUserNotAllowed = Wrap(ErrForbidden, "user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Pagination struct {
	Page       int   `json:"current_page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	if limit < 1 {
		limit = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

func IsValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleVolunteer, RoleRecipient, RoleAdmin:
		return true
	}
	return false
}
