package entity

import (
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/google/uuid"
)

// Session is the signed-in operator context passed to services. It is
// created on login and invalidated on logout or when its token is malformed.
type Session struct {
	ID         uuid.UUID `json:"id"`
	OperatorID int64     `json:"operator_id"`
	Username   string    `json:"username"`
	Role       enum.Role `json:"role"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAdmin checks if the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s.Role == enum.RoleAdmin
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
