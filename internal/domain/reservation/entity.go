// Package reservation models confirmed and pending bookings together with
// their ordered table assignments.
package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	Name  string
	Phone string
	Email string
}

type Reservation struct {
	ID              uuid.UUID
	VenueID         uuid.UUID
	Code            string
	Status          Status
	Guest           Guest
	PartySize       int
	SlotDate        string
	SlotTime        string
	SlotStartUTC    time.Time
	DurationMinutes int
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Tables          []TableAssignment
}

// TableAssignment is exclusively owned by its reservation; AssignedOrder
// reflects presentation order, not creation order.
type TableAssignment struct {
	TableID       uuid.UUID
	AssignedOrder int
}

// Window is the half-open UTC interval the reservation occupies.
func (r Reservation) Window() (start, end time.Time) {
	return r.SlotStartUTC, r.SlotStartUTC.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

func (r Reservation) OccupiesTables() bool {
	return !r.Status.Terminal()
}

// NormalizeTableIDs drops blank and duplicate entries while preserving
// first-seen order. A non-blank entry that is not a valid id is the
// client's mistake, never something to discard quietly.
func NormalizeTableIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableID, s)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func ValidateGuest(g Guest) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrGuestNameRequired
	}
	return nil
}
