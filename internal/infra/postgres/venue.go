package postgres

import (
	"context"

	"tablebook/internal/domain/venue"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

func (r *VenueRepository) GetVenue(ctx context.Context, id uuid.UUID) (venue.Venue, error) {
	const query = `SELECT id, name, timezone FROM venues WHERE id = $1`

	var v venue.Venue
	err := querier(ctx, r.pool).QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Timezone)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return venue.Venue{}, venue.ErrVenueNotFound
		}
		return venue.Venue{}, infra.WrapRepoErr(classify(err), "get venue", err)
	}
	return v, nil
}

func (r *VenueRepository) GetTable(ctx context.Context, venueID, tableID uuid.UUID) (venue.Table, error) {
	const query = `
SELECT id, venue_id, label, capacity, zone, join_group
FROM tables
WHERE id = $1 AND venue_id = $2`

	var t venue.Table
	err := querier(ctx, r.pool).QueryRow(ctx, query, tableID, venueID).
		Scan(&t.ID, &t.VenueID, &t.Label, &t.Capacity, &t.Zone, &t.JoinGroup)
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return venue.Table{}, venue.ErrTableNotFound
		}
		return venue.Table{}, infra.WrapRepoErr(classify(err), "get table", err)
	}
	return t, nil
}

// GetTablesForUpdate locks the table rows in a stable order so concurrent
// writers targeting the same tables serialize instead of deadlocking. Must be
// called inside a transaction.
func (r *VenueRepository) GetTablesForUpdate(ctx context.Context, venueID uuid.UUID, tableIDs []uuid.UUID) ([]venue.Table, error) {
	const query = `
SELECT id, venue_id, label, capacity, zone, join_group
FROM tables
WHERE venue_id = $1 AND id = ANY($2)
ORDER BY id
FOR UPDATE`

	rows, err := querier(ctx, r.pool).Query(ctx, query, venueID, tableIDs)
	if err != nil {
		return nil, infra.WrapRepoErr(classify(err), "lock tables", err)
	}
	defer rows.Close()

	tables := make([]venue.Table, 0, len(tableIDs))
	for rows.Next() {
		var t venue.Table
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Label, &t.Capacity, &t.Zone, &t.JoinGroup); err != nil {
			return nil, infra.WrapRepoErr(classify(err), "scan table", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(classify(err), "lock tables", err)
	}
	if len(tables) != len(tableIDs) {
		return nil, venue.ErrTableNotFound
	}
	return tables, nil
}

func (r *VenueRepository) ListTables(ctx context.Context, venueID uuid.UUID) ([]venue.Table, error) {
	const query = `
SELECT id, venue_id, label, capacity, zone, join_group
FROM tables
WHERE venue_id = $1
ORDER BY label`

	rows, err := querier(ctx, r.pool).Query(ctx, query, venueID)
	if err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list tables", err)
	}
	defer rows.Close()

	var tables []venue.Table
	for rows.Next() {
		var t venue.Table
		if err := rows.Scan(&t.ID, &t.VenueID, &t.Label, &t.Capacity, &t.Zone, &t.JoinGroup); err != nil {
			return nil, infra.WrapRepoErr(classify(err), "scan table", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list tables", err)
	}
	return tables, nil
}
