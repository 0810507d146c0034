package reservation

import (
	"time"

	"github.com/google/uuid"
)

// ConflictingReservation identifies a non-terminal reservation that overlaps
// a requested table-slot.
type ConflictingReservation struct {
	ID       uuid.UUID
	Code     string
	TableID  uuid.UUID
	StartUTC time.Time
	EndUTC   time.Time
}

// ConflictingHold identifies a HELD hold blocking a requested table-slot.
type ConflictingHold struct {
	ID           uuid.UUID
	TableID      uuid.UUID
	SlotStartUTC time.Time
	ExpiresAt    time.Time
}

// Conflicts is what the conflict detector returns. Collections are empty,
// never nil, when nothing conflicts.
type Conflicts struct {
	Reservations []ConflictingReservation
	Holds        []ConflictingHold
}

func (c Conflicts) Empty() bool {
	return len(c.Reservations) == 0 && len(c.Holds) == 0
}
