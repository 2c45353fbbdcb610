package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RevokedSessions remembers logged-out session ids until their tokens would
// have expired anyway.
type RevokedSessions struct {
	mu      sync.RWMutex
	revoked map[uuid.UUID]time.Time
	now     func() time.Time
}

// NewRevokedSessions creates an empty revocation list.
func NewRevokedSessions() *RevokedSessions {
	return &RevokedSessions{
		revoked: make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

// Revoke marks id as logged out until expiresAt.
func (r *RevokedSessions) Revoke(id uuid.UUID, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoked[id] = expiresAt
	r.pruneLocked()
}

// IsRevoked checks whether id was logged out.
func (r *RevokedSessions) IsRevoked(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.revoked[id]
	return ok
}

// Len returns the number of remembered revocations.
func (r *RevokedSessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}

func (r *RevokedSessions) pruneLocked() {
	now := r.now()
	for id, until := range r.revoked {
		if !until.IsZero() && until.Before(now) {
			delete(r.revoked, id)
		}
	}
}
