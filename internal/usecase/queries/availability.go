package queries

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"

	"github.com/google/uuid"
)

type VenueReadStore interface {
	GetVenue(ctx context.Context, id uuid.UUID) (venue.Venue, error)
	ListTables(ctx context.Context, venueID uuid.UUID) ([]venue.Table, error)
}

type ConflictReadStore interface {
	FindConflicts(ctx context.Context, venueID uuid.UUID, tableIDs []uuid.UUID, startUTC, endUTC time.Time) (reservation.Conflicts, error)
}

type AvailabilityInput struct {
	VenueID         uuid.UUID
	Date            string
	Time            string
	DurationMinutes int
	PartySize       int
}

type AvailabilityQueries interface {
	FreeTables(ctx context.Context, in AvailabilityInput) ([]venue.Table, error)
	SuggestTables(ctx context.Context, in AvailabilityInput) ([]Suggestion, error)
}

type availabilityQueriesImpl struct {
	venues    VenueReadStore
	conflicts ConflictReadStore
}

func NewAvailabilityQueries(venues VenueReadStore, conflicts ConflictReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{venues: venues, conflicts: conflicts}
}

// FreeTables lists tables with enough capacity that have no overlapping
// reservation or live hold in the requested window. Purely advisory: the
// authoritative check happens again inside the booking transaction.
func (q *availabilityQueriesImpl) FreeTables(ctx context.Context, in AvailabilityInput) ([]venue.Table, error) {
	slot, err := reservation.NewSlot(in.Date, in.Time, in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	v, err := q.venues.GetVenue(ctx, in.VenueID)
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

	tables, err := q.venues.ListTables(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}

	candidates := make([]venue.Table, 0, len(tables))
	ids := make([]uuid.UUID, 0, len(tables))
	for _, t := range tables {
		if t.Capacity >= in.PartySize {
			candidates = append(candidates, t)
			ids = append(ids, t.ID)
		}
	}
	if len(candidates) == 0 {
		return []venue.Table{}, nil
	}

	found, err := q.conflicts.FindConflicts(ctx, in.VenueID, ids, startUTC, endUTC)
	if err != nil {
		return nil, err
	}

	blocked := make(map[uuid.UUID]struct{})
	for _, c := range found.Reservations {
		blocked[c.TableID] = struct{}{}
	}
	for _, c := range found.Holds {
		blocked[c.TableID] = struct{}{}
	}

	free := make([]venue.Table, 0, len(candidates))
	for _, t := range candidates {
		if _, taken := blocked[t.ID]; !taken {
			free = append(free, t)
		}
	}
	return free, nil
}

func (q *availabilityQueriesImpl) SuggestTables(ctx context.Context, in AvailabilityInput) ([]Suggestion, error) {
	// Suggestions also consider tables too small on their own but combinable
	// within a join group, so ranking works over the full free set.
	slot, err := reservation.NewSlot(in.Date, in.Time, in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	v, err := q.venues.GetVenue(ctx, in.VenueID)
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

	tables, err := q.venues.ListTables(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}

	found, err := q.conflicts.FindConflicts(ctx, in.VenueID, ids, startUTC, endUTC)
	if err != nil {
		return nil, err
	}
	blocked := make(map[uuid.UUID]struct{})
	for _, c := range found.Reservations {
		blocked[c.TableID] = struct{}{}
	}
	for _, c := range found.Holds {
		blocked[c.TableID] = struct{}{}
	}

	free := make([]venue.Table, 0, len(tables))
	for _, t := range tables {
		if _, taken := blocked[t.ID]; !taken {
			free = append(free, t)
		}
	}

	return RankTables(free, in.PartySize), nil
}
