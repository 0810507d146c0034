package commands

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"

	"github.com/google/uuid"
)

// DefaultSlotDurationMinutes is the dining window a hold blocks for conflict
// purposes when the client does not say otherwise.
const DefaultSlotDurationMinutes = 90

type CreateHoldInput struct {
	VenueID         uuid.UUID
	TableID         uuid.UUID
	Date            string
	Time            string
	PartySize       int
	TTLSeconds      int
	DurationMinutes int
}

type HoldCommands interface {
	CreateHold(ctx context.Context, in CreateHoldInput) (hold.Hold, error)
	GetHold(ctx context.Context, id uuid.UUID) (hold.Hold, error)
	CancelHold(ctx context.Context, id uuid.UUID) error
}

type holdCommandsImpl struct {
	tx        TxManager
	venues    VenueRepository
	holds     HoldRepository
	conflicts ConflictFinder
	clock     clock.Clock
	ttlPolicy hold.TTLPolicy
}

func NewHoldCommands(
	tx TxManager,
	venues VenueRepository,
	holds HoldRepository,
	conflicts ConflictFinder,
	clk clock.Clock,
	cfg config.Config,
) HoldCommands {
	return &holdCommandsImpl{
		tx:        tx,
		venues:    venues,
		holds:     holds,
		conflicts: conflicts,
		clock:     clk,
		ttlPolicy: hold.TTLPolicy{Default: cfg.Hold.DefaultTTL, Max: cfg.Hold.MaxTTL},
	}
}

// CreateHold reserves intent on a single table-slot. The lock-check-insert
// sequence runs inside one transaction; the partial unique index on live
// holds is the backstop when two creators race past the conflict check.
func (c *holdCommandsImpl) CreateHold(ctx context.Context, in CreateHoldInput) (hold.Hold, error) {
	if in.PartySize <= 0 {
		return hold.Hold{}, hold.ErrInvalidParty
	}
	ttl, err := c.ttlPolicy.Resolve(in.TTLSeconds)
	if err != nil {
		return hold.Hold{}, err
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultSlotDurationMinutes
	}
	slot, err := reservation.NewSlot(in.Date, in.Time, duration)
	if err != nil {
		return hold.Hold{}, err
	}

	v, err := c.venues.GetVenue(ctx, in.VenueID)
	if err != nil {
		return hold.Hold{}, err
	}
	loc, err := v.Location()
	if err != nil {
		return hold.Hold{}, err
	}
	startUTC, endUTC, err := slot.Window(loc)
	if err != nil {
		return hold.Hold{}, err
	}

	table, err := c.venues.GetTable(ctx, in.VenueID, in.TableID)
	if err != nil {
		return hold.Hold{}, err
	}
	if table.Capacity < in.PartySize {
		return hold.Hold{}, ErrTableTooSmall
	}

	now := c.clock.Now()
	newHold := hold.Hold{
		ID:           uuid.New(),
		VenueID:      in.VenueID,
		TableID:      in.TableID,
		PartySize:    in.PartySize,
		SlotDate:     slot.Date,
		SlotTime:     slot.Time,
		SlotStartUTC: startUTC,
		ExpiresAt:    hold.ComputeExpiry(now, ttl),
		Status:       hold.StatusHeld,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = c.tx.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := c.venues.GetTablesForUpdate(txCtx, in.VenueID, []uuid.UUID{in.TableID}); err != nil {
			return err
		}

		found, err := c.conflicts.FindConflicts(txCtx, in.VenueID, []uuid.UUID{in.TableID}, startUTC, endUTC)
		if err != nil {
			return err
		}

		live, err := c.expireStaleHolds(txCtx, found)
		if err != nil {
			return err
		}
		if !live.Empty() {
			return &SlotConflictError{Conflicts: live}
		}

		return c.holds.Insert(txCtx, newHold)
	})
	if err != nil {
		return hold.Hold{}, err
	}

	return newHold, nil
}

// expireStaleHolds is the lazy call site of the shared expire-if-due
// predicate: a blocking hold whose expiry has passed is flipped right here so
// the caller is not stuck waiting for the next sweep.
func (c *holdCommandsImpl) expireStaleHolds(ctx context.Context, found reservation.Conflicts) (reservation.Conflicts, error) {
	now := c.clock.Now()
	live := reservation.Conflicts{
		Reservations: found.Reservations,
		Holds:        []reservation.ConflictingHold{},
	}
	for _, blocking := range found.Holds {
		stale := hold.Hold{Status: hold.StatusHeld, ExpiresAt: blocking.ExpiresAt}
		if stale.ExpiryDue(now) {
			expired, err := c.holds.MarkExpired(ctx, blocking.ID, now)
			if err != nil {
				return reservation.Conflicts{}, err
			}
			if expired {
				slog.Info("expired stale hold in place", "hold_id", blocking.ID)
				continue
			}
		}
		live.Holds = append(live.Holds, blocking)
	}
	return live, nil
}

func (c *holdCommandsImpl) GetHold(ctx context.Context, id uuid.UUID) (hold.Hold, error) {
	return c.holds.GetByID(ctx, id)
}

// CancelHold releases a live hold before its natural expiry.
func (c *holdCommandsImpl) CancelHold(ctx context.Context, id uuid.UUID) error {
	return c.tx.WithTx(ctx, func(txCtx context.Context) error {
		h, err := c.holds.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if h.Status != hold.StatusHeld {
			return hold.ErrInvalidState
		}
		cancelled, err := c.holds.Cancel(txCtx, id, c.clock.Now())
		if err != nil {
			return err
		}
		if !cancelled {
			return hold.ErrInvalidState
		}
		return nil
	})
}
