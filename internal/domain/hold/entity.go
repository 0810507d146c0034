// Package hold models the time-boxed reservation of intent for a single
// table-slot. A hold either converts into a reservation or lapses.
package hold

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("hold not found")
	ErrExpired      = errors.New("hold expired")
	ErrInvalidState = errors.New("hold is not in a consumable state")
	ErrSlotConflict = errors.New("table slot already held or reserved")
	ErrInvalidTTL   = errors.New("hold ttl out of bounds")
	ErrInvalidParty = errors.New("party size must be positive")
)

type Status string

const (
	StatusHeld     Status = "HELD"
	StatusConsumed Status = "CONSUMED"
	StatusExpired  Status = "EXPIRED"
)

// Terminal statuses are never mutated again.
func (s Status) Terminal() bool {
	return s == StatusConsumed || s == StatusExpired
}

type Hold struct {
	ID           uuid.UUID
	VenueID      uuid.UUID
	TableID      uuid.UUID
	PartySize    int
	SlotDate     string
	SlotTime     string
	SlotStartUTC time.Time
	ExpiresAt    time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpiryDue is the single expire-if-due predicate shared by the periodic
// sweeper and the lazy expiry path in hold creation.
func (h Hold) ExpiryDue(now time.Time) bool {
	return h.Status == StatusHeld && !h.ExpiresAt.After(now)
}

// Consumable reports whether the hold can still back a reservation.
func (h Hold) Consumable(now time.Time) error {
	if h.Status != StatusHeld {
		if h.Status == StatusExpired {
			return ErrExpired
		}
		return ErrInvalidState
	}
	if !h.ExpiresAt.After(now) {
		return ErrExpired
	}
	return nil
}
