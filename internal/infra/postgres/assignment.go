package postgres

import (
	"context"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

func (r *AssignmentRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.TableAssignment, error) {
	const query = `
SELECT table_id, assigned_order
FROM reservation_tables
WHERE reservation_id = $1
ORDER BY assigned_order`

	rows, err := querier(ctx, r.pool).Query(ctx, query, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list assignments", err)
	}
	defer rows.Close()

	assignments := []reservation.TableAssignment{}
	for rows.Next() {
		var a reservation.TableAssignment
		if err := rows.Scan(&a.TableID, &a.AssignedOrder); err != nil {
			return nil, infra.WrapRepoErr(classify(err), "scan assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list assignments", err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, reservationID uuid.UUID, tableIDs []uuid.UUID) error {
	if len(tableIDs) == 0 {
		return nil
	}
	const stmt = `DELETE FROM reservation_tables WHERE reservation_id = $1 AND table_id = ANY($2)`

	if _, err := querier(ctx, r.pool).Exec(ctx, stmt, reservationID, tableIDs); err != nil {
		return infra.WrapRepoErr(classify(err), "delete assignments", err)
	}
	return nil
}

// Upsert inserts or repositions one table assignment.
func (r *AssignmentRepository) Upsert(ctx context.Context, reservationID, tableID uuid.UUID, order int) error {
	const stmt = `
INSERT INTO reservation_tables (reservation_id, table_id, assigned_order)
VALUES ($1, $2, $3)
ON CONFLICT (reservation_id, table_id) DO UPDATE SET assigned_order = EXCLUDED.assigned_order`

	if _, err := querier(ctx, r.pool).Exec(ctx, stmt, reservationID, tableID, order); err != nil {
		return infra.WrapRepoErr(classify(err), "upsert assignment", err)
	}
	return nil
}
