package commands

import (
	"fmt"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/errs"
)

var (
	ErrTableTooSmall  = errs.New("table capacity below party size")
	ErrHoldMismatch   = errs.New("hold does not match the requested venue or slot")
	ErrStorageFailure = errs.New("storage operation failed")
)

// SlotConflictError carries the identifying info of whatever blocks the
// requested table-slot. errors.Is reports it as hold.ErrSlotConflict whether
// the conflict was detected up front or surfaced by the storage uniqueness
// backstop.
type SlotConflictError struct {
	Conflicts reservation.Conflicts
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("table slot conflict: %d reservations, %d holds",
		len(e.Conflicts.Reservations), len(e.Conflicts.Holds))
}

func (e *SlotConflictError) Is(target error) bool {
	return target == hold.ErrSlotConflict
}
