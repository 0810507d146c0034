package response

import (
	"time"

	"tablebook/internal/domain/reservation"

	"github.com/google/uuid"
)

// ConflictDetail is attached to a 409 so clients can show what is blocking
// the requested table-slot.
type ConflictDetail struct {
	Reservations []ConflictingReservationItem `json:"reservations"`
	Holds        []ConflictingHoldItem        `json:"holds"`
}

type ConflictingReservationItem struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	TableID  uuid.UUID `json:"tableId"`
	StartUTC time.Time `json:"startUtc"`
	EndUTC   time.Time `json:"endUtc"`
}

type ConflictingHoldItem struct {
	ID           uuid.UUID `json:"id"`
	TableID      uuid.UUID `json:"tableId"`
	SlotStartUTC time.Time `json:"slotStartUtc"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func FromConflicts(c reservation.Conflicts) ConflictDetail {
	detail := ConflictDetail{
		Reservations: make([]ConflictingReservationItem, len(c.Reservations)),
		Holds:        make([]ConflictingHoldItem, len(c.Holds)),
	}
	for i, r := range c.Reservations {
		detail.Reservations[i] = ConflictingReservationItem{
			ID:       r.ID,
			Code:     r.Code,
			TableID:  r.TableID,
			StartUTC: r.StartUTC,
			EndUTC:   r.EndUTC,
		}
	}
	for i, h := range c.Holds {
		detail.Holds[i] = ConflictingHoldItem{
			ID:           h.ID,
			TableID:      h.TableID,
			SlotStartUTC: h.SlotStartUTC,
			ExpiresAt:    h.ExpiresAt,
		}
	}
	return detail
}
