package commands

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	idempotencyKeyTTL = 24 * time.Hour
	codeRetryAttempts = 3
)

type CreateReservationInput struct {
	VenueID         uuid.UUID
	HoldID          *uuid.UUID
	TableIDs        []string
	Guest           reservation.Guest
	PartySize       int
	Date            string
	Time            string
	DurationMinutes int
	CreatedBy       string
}

type CreateReservationResult struct {
	Reservation reservation.Reservation
	Replayed    bool
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput, idempotencyKey *uuid.UUID) (CreateReservationResult, error)
	SyncTables(ctx context.Context, reservationID uuid.UUID, tableIDs []string) (reservation.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, to reservation.Status) (reservation.Reservation, error)
	GuestCancel(ctx context.Context, reservationID uuid.UUID) (reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	tx           TxManager
	venues       VenueRepository
	holds        HoldRepository
	conflicts    ConflictFinder
	reservations ReservationRepository
	assignments  AssignmentRepository
	idempotency  IdempotencyRepository
	clock        clock.Clock
}

func NewReservationCommands(
	tx TxManager,
	venues VenueRepository,
	holds HoldRepository,
	conflicts ConflictFinder,
	reservations ReservationRepository,
	assignments AssignmentRepository,
	idempotency IdempotencyRepository,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		tx:           tx,
		venues:       venues,
		holds:        holds,
		conflicts:    conflicts,
		reservations: reservations,
		assignments:  assignments,
		idempotency:  idempotency,
		clock:        clk,
	}
}

// Create books a table set, either by consuming a hold or directly. The
// whole sequence — idempotency check, hold consumption, conflict detection,
// reservation insert, table assignments — commits or rolls back as one unit.
// When two equivalent requests race, exactly one creates; the loser of a
// slot race observes a conflict, and the loser of an idempotency-key race
// observes the winner's reservation.
func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput, idempotencyKey *uuid.UUID) (CreateReservationResult, error) {
	if err := reservation.ValidateGuest(in.Guest); err != nil {
		return CreateReservationResult{}, err
	}
	if in.PartySize <= 0 {
		return CreateReservationResult{}, reservation.ErrInvalidParty
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultSlotDurationMinutes
	}
	slot, err := reservation.NewSlot(in.Date, in.Time, duration)
	if err != nil {
		return CreateReservationResult{}, err
	}
	in.DurationMinutes = duration

	directTables, err := reservation.NormalizeTableIDs(in.TableIDs)
	if err != nil {
		return CreateReservationResult{}, err
	}
	if in.HoldID == nil && len(directTables) == 0 {
		return CreateReservationResult{}, reservation.ErrNoTables
	}

	fingerprint := requestFingerprint(in, directTables)

	var result CreateReservationResult
	err = c.tx.WithTx(ctx, func(txCtx context.Context) error {
		if idempotencyKey != nil {
			replayed, res, err := c.claimIdempotencyKey(txCtx, *idempotencyKey, fingerprint)
			if err != nil {
				return err
			}
			if replayed {
				result = CreateReservationResult{Reservation: res, Replayed: true}
				return nil
			}
		}

		tableIDs, err := c.resolveTables(txCtx, in, slot, directTables)
		if err != nil {
			return err
		}

		res, err := c.insertReservation(txCtx, in, slot, tableIDs)
		if err != nil {
			return err
		}

		if idempotencyKey != nil {
			if err := c.idempotency.SetResult(txCtx, *idempotencyKey, res.ID); err != nil {
				return err
			}
		}

		result = CreateReservationResult{Reservation: res}
		return nil
	})
	if err != nil {
		return CreateReservationResult{}, err
	}
	return result, nil
}

// claimIdempotencyKey inserts the key, or, when it already exists, resolves
// the replay-vs-conflict outcome. The key row joins the surrounding
// transaction, so a failed creation attempt releases the key for retry.
func (c *reservationCommandsImpl) claimIdempotencyKey(ctx context.Context, key uuid.UUID, fingerprint string) (replayed bool, res reservation.Reservation, err error) {
	now := c.clock.Now()

	existing, err := c.idempotency.Get(ctx, key)
	if err != nil {
		return false, reservation.Reservation{}, err
	}
	if existing == nil {
		insertErr := c.idempotency.Insert(ctx, key, fingerprint, now.Add(idempotencyKeyTTL), now)
		if insertErr == nil {
			return false, reservation.Reservation{}, nil
		}
		if !infra.IsKind(insertErr, infra.KindDuplicateKey) {
			return false, reservation.Reservation{}, insertErr
		}
		// Lost a first-use race; re-read and fall through to the replay logic.
		existing, err = c.idempotency.Get(ctx, key)
		if err != nil {
			return false, reservation.Reservation{}, err
		}
		if existing == nil {
			return false, reservation.Reservation{}, errs.Mark(insertErr, ErrStorageFailure)
		}
	}

	if existing.RequestFingerprint != fingerprint {
		return false, reservation.Reservation{}, reservation.ErrIdempotencyConflict
	}
	if existing.ReservationID == nil {
		// The first attempt is still in flight (or died before commit, in
		// which case its key row rolled back and cannot be observed here).
		return false, reservation.Reservation{}, reservation.ErrIdempotencyPending
	}

	original, err := c.reservations.GetByID(ctx, *existing.ReservationID)
	if err != nil {
		return false, reservation.Reservation{}, err
	}
	return true, original, nil
}

// resolveTables produces the final table set, consuming the hold when one is
// referenced and conflict-checking the requested window either way.
func (c *reservationCommandsImpl) resolveTables(ctx context.Context, in CreateReservationInput, slot reservation.Slot, directTables []uuid.UUID) ([]uuid.UUID, error) {
	v, err := c.venues.GetVenue(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}
	loc, err := v.Location()
	if err != nil {
		return nil, err
	}
	startUTC, endUTC, err := slot.Window(loc)
	if err != nil {
		return nil, err
	}

	var tableIDs []uuid.UUID
	if in.HoldID != nil {
		h, err := c.holds.GetByIDForUpdate(ctx, *in.HoldID)
		if err != nil {
			return nil, err
		}
		if h.VenueID != in.VenueID || !h.SlotStartUTC.Equal(startUTC) {
			return nil, ErrHoldMismatch
		}
		if err := h.Consumable(c.clock.Now()); err != nil {
			return nil, err
		}
		consumed, err := c.holds.Consume(ctx, h.ID, c.clock.Now())
		if err != nil {
			return nil, err
		}
		if !consumed {
			return nil, hold.ErrExpired
		}
		tableIDs = []uuid.UUID{h.TableID}
	} else {
		tableIDs = directTables
	}

	if _, err := c.venues.GetTablesForUpdate(ctx, in.VenueID, tableIDs); err != nil {
		return nil, err
	}

	found, err := c.conflicts.FindConflicts(ctx, in.VenueID, tableIDs, startUTC, endUTC)
	if err != nil {
		return nil, err
	}
	// The consumed hold no longer blocks; anything else does.
	live := reservation.Conflicts{
		Reservations: found.Reservations,
		Holds:        []reservation.ConflictingHold{},
	}
	for _, blocking := range found.Holds {
		if in.HoldID != nil && blocking.ID == *in.HoldID {
			continue
		}
		live.Holds = append(live.Holds, blocking)
	}
	if !live.Empty() {
		return nil, &SlotConflictError{Conflicts: live}
	}

	return tableIDs, nil
}

func (c *reservationCommandsImpl) insertReservation(ctx context.Context, in CreateReservationInput, slot reservation.Slot, tableIDs []uuid.UUID) (reservation.Reservation, error) {
	v, err := c.venues.GetVenue(ctx, in.VenueID)
	if err != nil {
		return reservation.Reservation{}, err
	}
	loc, err := v.Location()
	if err != nil {
		return reservation.Reservation{}, err
	}
	startUTC, err := slot.StartUTC(loc)
	if err != nil {
		return reservation.Reservation{}, err
	}

	now := c.clock.Now()
	res := reservation.Reservation{
		ID:              uuid.New(),
		VenueID:         in.VenueID,
		Status:          reservation.StatusConfirmed,
		Guest:           in.Guest,
		PartySize:       in.PartySize,
		SlotDate:        slot.Date,
		SlotTime:        slot.Time,
		SlotStartUTC:    startUTC,
		DurationMinutes: slot.DurationMinutes,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for attempt := 0; ; attempt++ {
		res.Code, err = reservation.NewCode()
		if err != nil {
			return reservation.Reservation{}, err
		}
		err = c.reservations.Insert(ctx, res)
		if err == nil {
			break
		}
		if errors.Is(err, reservation.ErrCodeTaken) && attempt < codeRetryAttempts {
			continue
		}
		return reservation.Reservation{}, err
	}

	for i, tableID := range tableIDs {
		if err := c.assignments.Upsert(ctx, res.ID, tableID, i); err != nil {
			return reservation.Reservation{}, err
		}
		res.Tables = append(res.Tables, reservation.TableAssignment{TableID: tableID, AssignedOrder: i})
	}

	return res, nil
}

// SyncTables reconciles the reservation's table set against desired,
// conflict-checking the new tables within the same transaction.
func (c *reservationCommandsImpl) SyncTables(ctx context.Context, reservationID uuid.UUID, tableIDs []string) (reservation.Reservation, error) {
	desired, err := reservation.NormalizeTableIDs(tableIDs)
	if err != nil {
		return reservation.Reservation{}, err
	}

	var out reservation.Reservation
	err = c.tx.WithTx(ctx, func(txCtx context.Context) error {
		res, err := c.reservations.GetByID(txCtx, reservationID)
		if err != nil {
			return err
		}
		if !res.OccupiesTables() {
			return reservation.ErrInvalidTransition
		}

		if len(desired) > 0 {
			start, end := res.Window()
			if _, err := c.venues.GetTablesForUpdate(txCtx, res.VenueID, desired); err != nil {
				return err
			}
			found, err := c.conflicts.FindConflicts(txCtx, res.VenueID, desired, start, end)
			if err != nil {
				return err
			}
			live := reservation.Conflicts{
				Reservations: []reservation.ConflictingReservation{},
				Holds:        found.Holds,
			}
			for _, blocking := range found.Reservations {
				if blocking.ID == res.ID {
					continue
				}
				live.Reservations = append(live.Reservations, blocking)
			}
			if !live.Empty() {
				return &SlotConflictError{Conflicts: live}
			}
		}

		if err := c.applyAssignmentDiff(txCtx, res.ID, desired); err != nil {
			return err
		}

		out, err = c.reservations.GetByID(txCtx, reservationID)
		return err
	})
	if err != nil {
		return reservation.Reservation{}, err
	}
	return out, nil
}

// applyAssignmentDiff deletes rows for tables no longer desired and upserts
// the remainder with assigned_order equal to their position in the desired
// list. An empty desired list clears all assignments.
func (c *reservationCommandsImpl) applyAssignmentDiff(ctx context.Context, reservationID uuid.UUID, desired []uuid.UUID) error {
	current, err := c.assignments.ListByReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	wanted := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		wanted[id] = struct{}{}
	}

	var removed []uuid.UUID
	for _, a := range current {
		if _, keep := wanted[a.TableID]; !keep {
			removed = append(removed, a.TableID)
		}
	}
	if err := c.assignments.Delete(ctx, reservationID, removed); err != nil {
		return err
	}

	for i, id := range desired {
		if err := c.assignments.Upsert(ctx, reservationID, id, i); err != nil {
			return err
		}
	}
	return nil
}

func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, reservationID uuid.UUID, to reservation.Status) (reservation.Reservation, error) {
	if !to.Valid() {
		return reservation.Reservation{}, reservation.ErrInvalidStatus
	}

	var out reservation.Reservation
	err := c.tx.WithTx(ctx, func(txCtx context.Context) error {
		res, err := c.reservations.GetByID(txCtx, reservationID)
		if err != nil {
			return err
		}
		if !reservation.CanTransition(res.Status, to) {
			return reservation.ErrInvalidTransition
		}
		applied, err := c.reservations.UpdateStatus(txCtx, reservationID, res.Status, to, c.clock.Now())
		if err != nil {
			return err
		}
		if !applied {
			// Someone else transitioned first; the caller re-reads and decides.
			return reservation.ErrInvalidTransition
		}
		out, err = c.reservations.GetByID(txCtx, reservationID)
		return err
	})
	if err != nil {
		return reservation.Reservation{}, err
	}
	return out, nil
}

// GuestCancel is the action behind the guest self-service link. The link
// token has already been verified; this only applies the transition.
func (c *reservationCommandsImpl) GuestCancel(ctx context.Context, reservationID uuid.UUID) (reservation.Reservation, error) {
	return c.UpdateStatus(ctx, reservationID, reservation.StatusCancelled)
}
