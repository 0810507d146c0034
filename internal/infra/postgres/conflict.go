package postgres

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConflictRepository is the storage side of the conflict detector. Its reads
// join the ambient transaction when one is present, so a conflict check and
// the write that depends on it share the same isolation.
type ConflictRepository struct {
	pool *pgxpool.Pool
}

func NewConflictRepository(pool *pgxpool.Pool) *ConflictRepository {
	return &ConflictRepository{pool: pool}
}

// FindConflicts returns every non-terminal reservation and HELD hold that
// overlaps the half-open window [startUTC, endUTC) on any of the given
// tables. A hold carries no duration of its own; it blocks a window of the
// requested length anchored at its slot start.
func (r *ConflictRepository) FindConflicts(ctx context.Context, venueID uuid.UUID, tableIDs []uuid.UUID, startUTC, endUTC time.Time) (reservation.Conflicts, error) {
	conflicts := reservation.Conflicts{
		Reservations: []reservation.ConflictingReservation{},
		Holds:        []reservation.ConflictingHold{},
	}
	if len(tableIDs) == 0 {
		return conflicts, nil
	}

	const reservationQuery = `
SELECT r.id, r.code, rt.table_id, r.slot_start_utc,
       r.slot_start_utc + make_interval(mins => r.duration_minutes)
FROM reservations r
JOIN reservation_tables rt ON rt.reservation_id = r.id
WHERE r.venue_id = $1
  AND rt.table_id = ANY($2)
  AND r.status IN ('PENDING', 'CONFIRMED', 'SEATED')
  AND r.slot_start_utc < $4
  AND r.slot_start_utc + make_interval(mins => r.duration_minutes) > $3`

	q := querier(ctx, r.pool)

	rows, err := q.Query(ctx, reservationQuery, venueID, tableIDs, startUTC, endUTC)
	if err != nil {
		return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "find conflicting reservations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c reservation.ConflictingReservation
		if err := rows.Scan(&c.ID, &c.Code, &c.TableID, &c.StartUTC, &c.EndUTC); err != nil {
			return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "scan conflicting reservation", err)
		}
		conflicts.Reservations = append(conflicts.Reservations, c)
	}
	if err := rows.Err(); err != nil {
		return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "find conflicting reservations", err)
	}

	window := endUTC.Sub(startUTC)
	const holdQuery = `
SELECT id, table_id, slot_start_utc, expires_at
FROM holds
WHERE venue_id = $1
  AND table_id = ANY($2)
  AND status = 'HELD'
  AND slot_start_utc < $4
  AND slot_start_utc + $5::interval > $3`

	holdRows, err := q.Query(ctx, holdQuery, venueID, tableIDs, startUTC, endUTC, window)
	if err != nil {
		return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "find conflicting holds", err)
	}
	defer holdRows.Close()
	for holdRows.Next() {
		var c reservation.ConflictingHold
		if err := holdRows.Scan(&c.ID, &c.TableID, &c.SlotStartUTC, &c.ExpiresAt); err != nil {
			return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "scan conflicting hold", err)
		}
		conflicts.Holds = append(conflicts.Holds, c)
	}
	if err := holdRows.Err(); err != nil {
		return reservation.Conflicts{}, infra.WrapRepoErr(classify(err), "find conflicting holds", err)
	}

	return conflicts, nil
}
