package postgres

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID) (*reservation.IdempotencyRecord, error) {
	const query = `
SELECT key, request_fingerprint, reservation_id, expires_at, created_at
FROM idempotency_keys
WHERE key = $1 AND expires_at > now()`

	var rec reservation.IdempotencyRecord
	err := querier(ctx, r.pool).QueryRow(ctx, query, key).
		Scan(&rec.Key, &rec.RequestFingerprint, &rec.ReservationID, &rec.ExpiresAt, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(classify(err), "get idempotency key", err)
	}
	return &rec, nil
}

// ErrKeyExists reports a concurrent first use of the same key; the caller
// re-reads and follows the replay logic.
var ErrKeyExists = infra.WrapRepoErr(infra.KindDuplicateKey, "idempotency key already exists", nil)

// Insert claims the key. A row left behind by an expired key is reclaimed in
// place, so reusing a key past its validity window starts a fresh claim
// rather than colliding with the stale primary key.
func (r *IdempotencyRepository) Insert(ctx context.Context, key uuid.UUID, fingerprint string, expiresAt, now time.Time) error {
	const stmt = `
INSERT INTO idempotency_keys (key, request_fingerprint, expires_at, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO UPDATE
SET request_fingerprint = EXCLUDED.request_fingerprint,
    reservation_id = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = EXCLUDED.created_at
WHERE idempotency_keys.expires_at <= $4`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, key, fingerprint, expiresAt, now)
	if err != nil {
		return infra.WrapRepoErr(classify(err), "insert idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKeyExists
	}
	return nil
}

// SetResult records the created reservation on the key inside the same
// transaction as the insert, so a failed attempt rolls the key back too.
func (r *IdempotencyRepository) SetResult(ctx context.Context, key, reservationID uuid.UUID) error {
	const stmt = `UPDATE idempotency_keys SET reservation_id = $2 WHERE key = $1`

	if _, err := querier(ctx, r.pool).Exec(ctx, stmt, key, reservationID); err != nil {
		return infra.WrapRepoErr(classify(err), "set idempotency result", err)
	}
	return nil
}

// DeleteExpired supports the retention job; keys are dropped after expiry.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `DELETE FROM idempotency_keys WHERE expires_at <= $1`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr(classify(err), "delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
