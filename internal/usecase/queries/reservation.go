package queries

import (
	"context"

	"tablebook/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	ListByVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]reservation.Reservation, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id uuid.UUID) (reservation.Reservation, error)
	ListByVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]reservation.Reservation, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	return q.store.GetByID(ctx, id)
}

func (q *reservationQueriesImpl) ListByVenueDate(ctx context.Context, venueID uuid.UUID, date string) ([]reservation.Reservation, error) {
	return q.store.ListByVenueDate(ctx, venueID, date)
}
