package postgres

import (
	"context"
	"time"

	"tablebook/internal/domain/hold"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holdsActiveSlotConstraint is the partial unique index on
// (venue_id, table_id, slot_start_utc) WHERE status = 'HELD'. It is the
// ultimate backstop for slot exclusivity: a violation means another writer
// inserted first and is reported as the same conflict a detected overlap is.
const holdsActiveSlotConstraint = "holds_active_slot_uq"

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

const holdColumns = `id, venue_id, table_id, party_size, slot_date, slot_time, slot_start_utc, expires_at, status, created_at, updated_at`

func scanHold(row pgx.Row) (hold.Hold, error) {
	var h hold.Hold
	err := row.Scan(
		&h.ID, &h.VenueID, &h.TableID, &h.PartySize,
		&h.SlotDate, &h.SlotTime, &h.SlotStartUTC,
		&h.ExpiresAt, &h.Status, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

func (r *HoldRepository) Insert(ctx context.Context, h hold.Hold) error {
	const stmt = `
INSERT INTO holds (id, venue_id, table_id, party_size, slot_date, slot_time, slot_start_utc, expires_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	_, err := querier(ctx, r.pool).Exec(ctx, stmt,
		h.ID, h.VenueID, h.TableID, h.PartySize,
		h.SlotDate, h.SlotTime, h.SlotStartUTC,
		h.ExpiresAt, h.Status, h.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, holdsActiveSlotConstraint) {
			return hold.ErrSlotConflict
		}
		return infra.WrapRepoErr(classify(err), "insert hold", err)
	}
	return nil
}

func (r *HoldRepository) GetByID(ctx context.Context, id uuid.UUID) (hold.Hold, error) {
	query := `SELECT ` + holdColumns + ` FROM holds WHERE id = $1`

	h, err := scanHold(querier(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return hold.Hold{}, hold.ErrNotFound
		}
		return hold.Hold{}, infra.WrapRepoErr(classify(err), "get hold", err)
	}
	return h, nil
}

// GetByIDForUpdate locks the hold row for the rest of the transaction.
func (r *HoldRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (hold.Hold, error) {
	query := `SELECT ` + holdColumns + ` FROM holds WHERE id = $1 FOR UPDATE`

	h, err := scanHold(querier(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return hold.Hold{}, hold.ErrNotFound
		}
		return hold.Hold{}, infra.WrapRepoErr(classify(err), "lock hold", err)
	}
	return h, nil
}

// Consume flips HELD→CONSUMED only while the hold is still alive. The
// condition is part of the statement so a concurrently swept or consumed hold
// is simply not affected; the caller diagnoses a false return.
func (r *HoldRepository) Consume(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const stmt = `
UPDATE holds
SET status = 'CONSUMED', updated_at = $2
WHERE id = $1 AND status = 'HELD' AND expires_at > $2`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, id, now)
	if err != nil {
		return false, infra.WrapRepoErr(classify(err), "consume hold", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkExpired is the lazy half of expiry: it flips a single lapsed HELD hold
// to EXPIRED so a caller blocked by a stale hold does not have to wait for
// the sweeper.
func (r *HoldRepository) MarkExpired(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const stmt = `
UPDATE holds
SET status = 'EXPIRED', updated_at = $2
WHERE id = $1 AND status = 'HELD' AND expires_at <= $2`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, id, now)
	if err != nil {
		return false, infra.WrapRepoErr(classify(err), "expire hold", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Cancel releases a live hold ahead of its natural expiry. Terminal holds
// are never mutated.
func (r *HoldRepository) Cancel(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const stmt = `
UPDATE holds
SET status = 'EXPIRED', updated_at = $2
WHERE id = $1 AND status = 'HELD'`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, id, now)
	if err != nil {
		return false, infra.WrapRepoErr(classify(err), "cancel hold", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SweepExpired bulk-expires every lapsed HELD hold in one conditional
// statement. Re-running finds nothing to do; concurrent consume/sweep simply
// shrinks the affected set.
func (r *HoldRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `
UPDATE holds
SET status = 'EXPIRED', updated_at = $1
WHERE status = 'HELD' AND expires_at <= $1`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr(classify(err), "sweep expired holds", err)
	}
	return tag.RowsAffected(), nil
}
