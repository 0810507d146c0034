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

const reservationCodeConstraint = "reservations_code_key"

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Insert(ctx context.Context, res reservation.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, venue_id, code, status, guest_name, guest_phone, guest_email,
                          party_size, slot_date, slot_time, slot_start_utc, duration_minutes,
                          created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`

	_, err := querier(ctx, r.pool).Exec(ctx, stmt,
		res.ID, res.VenueID, res.Code, res.Status,
		res.Guest.Name, res.Guest.Phone, res.Guest.Email,
		res.PartySize, res.SlotDate, res.SlotTime, res.SlotStartUTC, res.DurationMinutes,
		res.CreatedBy, res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, reservationCodeConstraint) {
			// Confirmation-code collision; the caller regenerates and retries.
			return reservation.ErrCodeTaken
		}
		return infra.WrapRepoErr(classify(err), "insert reservation", err)
	}
	return nil
}

const reservationColumns = `id, venue_id, code, status, guest_name, guest_phone, guest_email,
       party_size, slot_date, slot_time, slot_start_utc, duration_minutes,
       created_by, created_at, updated_at`

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var res reservation.Reservation
	err := row.Scan(
		&res.ID, &res.VenueID, &res.Code, &res.Status,
		&res.Guest.Name, &res.Guest.Phone, &res.Guest.Email,
		&res.PartySize, &res.SlotDate, &res.SlotTime, &res.SlotStartUTC, &res.DurationMinutes,
		&res.CreatedBy, &res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(querier(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows || isInvalidUUID(err) {
			return reservation.Reservation{}, reservation.ErrNotFound
		}
		return reservation.Reservation{}, infra.WrapRepoErr(classify(err), "get reservation", err)
	}

	res.Tables, err = r.listAssignments(ctx, id)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationRepository) ListByVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]reservation.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
FROM reservations
WHERE venue_id = $1 AND slot_date = $2
ORDER BY slot_start_utc, code`

	rows, err := querier(ctx, r.pool).Query(ctx, query, venueID, date)
	if err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list reservations", err)
	}
	defer rows.Close()

	reservations := []reservation.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(classify(err), "scan reservation", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list reservations", err)
	}

	for i := range reservations {
		reservations[i].Tables, err = r.listAssignments(ctx, reservations[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

// UpdateStatus is a compare-and-set: it only applies when the row is still in
// the expected source status, so concurrent transitions cannot clobber each
// other.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, now time.Time) (bool, error) {
	const stmt = `
UPDATE reservations
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

	tag, err := querier(ctx, r.pool).Exec(ctx, stmt, id, from, to, now)
	if err != nil {
		return false, infra.WrapRepoErr(classify(err), "update reservation status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ReservationRepository) listAssignments(ctx context.Context, reservationID uuid.UUID) ([]reservation.TableAssignment, error) {
	const query = `
SELECT table_id, assigned_order
FROM reservation_tables
WHERE reservation_id = $1
ORDER BY assigned_order`

	rows, err := querier(ctx, r.pool).Query(ctx, query, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list table assignments", err)
	}
	defer rows.Close()

	assignments := []reservation.TableAssignment{}
	for rows.Next() {
		var a reservation.TableAssignment
		if err := rows.Scan(&a.TableID, &a.AssignedOrder); err != nil {
			return nil, infra.WrapRepoErr(classify(err), "scan table assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(classify(err), "list table assignments", err)
	}
	return assignments, nil
}
