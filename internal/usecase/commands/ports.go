package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"

	"github.com/google/uuid"
)

// TxManager runs fn inside one storage transaction; every repository call
// made with the callback context joins it. All cross-operation safety comes
// from the storage layer's transactional and uniqueness guarantees, never
// from in-process locks.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type VenueRepository interface {
	GetVenue(ctx context.Context, id uuid.UUID) (venue.Venue, error)
	GetTable(ctx context.Context, venueID, tableID uuid.UUID) (venue.Table, error)
	GetTablesForUpdate(ctx context.Context, venueID uuid.UUID, tableIDs []uuid.UUID) ([]venue.Table, error)
}

type HoldRepository interface {
	Insert(ctx context.Context, h hold.Hold) error
	GetByID(ctx context.Context, id uuid.UUID) (hold.Hold, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (hold.Hold, error)
	Consume(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

// ConflictFinder is the conflict detector's storage contract. It must be safe
// to call inside the same transaction as the write that uses its result.
type ConflictFinder interface {
	FindConflicts(ctx context.Context, venueID uuid.UUID, tableIDs []uuid.UUID, startUTC, endUTC time.Time) (reservation.Conflicts, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, res reservation.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, now time.Time) (bool, error)
}

type AssignmentRepository interface {
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.TableAssignment, error)
	Delete(ctx context.Context, reservationID uuid.UUID, tableIDs []uuid.UUID) error
	Upsert(ctx context.Context, reservationID, tableID uuid.UUID, order int) error
}

type IdempotencyRepository interface {
	Get(ctx context.Context, key uuid.UUID) (*reservation.IdempotencyRecord, error)
	Insert(ctx context.Context, key uuid.UUID, fingerprint string, expiresAt, now time.Time) error
	SetResult(ctx context.Context, key, reservationID uuid.UUID) error
}
