//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"
	"tablebook/internal/usecase/queries"
)

type stubVenueStore struct {
	venue  venue.Venue
	tables []venue.Table
}

func (s *stubVenueStore) GetVenue(_ context.Context, id uuid.UUID) (venue.Venue, error) {
	if id != s.venue.ID {
		return venue.Venue{}, venue.ErrVenueNotFound
	}
	return s.venue, nil
}

func (s *stubVenueStore) ListTables(_ context.Context, _ uuid.UUID) ([]venue.Table, error) {
	return s.tables, nil
}

type stubConflictStore struct {
	conflicts reservation.Conflicts
	gotStart  time.Time
	gotEnd    time.Time
}

func (s *stubConflictStore) FindConflicts(_ context.Context, _ uuid.UUID, _ []uuid.UUID, startUTC, endUTC time.Time) (reservation.Conflicts, error) {
	s.gotStart = startUTC
	s.gotEnd = endUTC
	return s.conflicts, nil
}

func TestFreeTables_FiltersCapacityAndConflicts(t *testing.T) {
	venueID := uuid.New()
	small := venue.Table{ID: uuid.New(), VenueID: venueID, Label: "S1", Capacity: 2}
	taken := venue.Table{ID: uuid.New(), VenueID: venueID, Label: "T1", Capacity: 4}
	open := venue.Table{ID: uuid.New(), VenueID: venueID, Label: "T2", Capacity: 4}

	venues := &stubVenueStore{
		venue:  venue.Venue{ID: venueID, Timezone: "America/New_York"},
		tables: []venue.Table{small, taken, open},
	}
	conflicts := &stubConflictStore{
		conflicts: reservation.Conflicts{
			Reservations: []reservation.ConflictingReservation{{ID: uuid.New(), TableID: taken.ID}},
			Holds:        []reservation.ConflictingHold{},
		},
	}

	q := queries.NewAvailabilityQueries(venues, conflicts)
	free, err := q.FreeTables(context.Background(), queries.AvailabilityInput{
		VenueID:         venueID,
		Date:            "2025-06-01",
		Time:            "18:30",
		DurationMinutes: 90,
		PartySize:       4,
	})
	require.NoError(t, err)

	require.Len(t, free, 1)
	assert.Equal(t, open.ID, free[0].ID)

	// 18:30 New York is 22:30 UTC during DST.
	assert.Equal(t, time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC), conflicts.gotStart)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), conflicts.gotEnd)
}

func TestFreeTables_NoCandidates(t *testing.T) {
	venueID := uuid.New()
	venues := &stubVenueStore{
		venue:  venue.Venue{ID: venueID, Timezone: "UTC"},
		tables: []venue.Table{{ID: uuid.New(), VenueID: venueID, Label: "S1", Capacity: 2}},
	}
	q := queries.NewAvailabilityQueries(venues, &stubConflictStore{})

	free, err := q.FreeTables(context.Background(), queries.AvailabilityInput{
		VenueID:         venueID,
		Date:            "2025-06-01",
		Time:            "18:30",
		DurationMinutes: 60,
		PartySize:       8,
	})
	require.NoError(t, err)
	assert.Empty(t, free)
	assert.NotNil(t, free)
}

func TestSuggestTables_IncludesJoinGroupPairs(t *testing.T) {
	venueID := uuid.New()
	group := "window"
	a1 := venue.Table{ID: uuid.New(), VenueID: venueID, Label: "A1", Capacity: 4, JoinGroup: &group}
	a2 := venue.Table{ID: uuid.New(), VenueID: venueID, Label: "A2", Capacity: 4, JoinGroup: &group}

	venues := &stubVenueStore{
		venue:  venue.Venue{ID: venueID, Timezone: "UTC"},
		tables: []venue.Table{a1, a2},
	}
	q := queries.NewAvailabilityQueries(venues, &stubConflictStore{})

	ranked, err := q.SuggestTables(context.Background(), queries.AvailabilityInput{
		VenueID:         venueID,
		Date:            "2025-06-01",
		Time:            "18:30",
		DurationMinutes: 90,
		PartySize:       6,
	})
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, []uuid.UUID{a1.ID, a2.ID}, ranked[0].TableIDs)
	assert.Equal(t, 8, ranked[0].Capacity)
}
