//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"tablebook/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		time     string
		duration int
		errIs    error
	}{
		{name: "valid slot", date: "2025-01-20", time: "18:30", duration: 90},
		{name: "bad date", date: "2025-13-40", time: "18:30", duration: 90, errIs: reservation.ErrInvalidSlotDate},
		{name: "bad time", date: "2025-01-20", time: "25:99", duration: 90, errIs: reservation.ErrInvalidSlotTime},
		{name: "duration below minimum", date: "2025-01-20", time: "18:30", duration: 10, errIs: reservation.ErrInvalidDuration},
		{name: "duration above maximum", date: "2025-01-20", time: "18:30", duration: 13 * 60, errIs: reservation.ErrInvalidDuration},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := reservation.NewSlot(tc.date, tc.time, tc.duration)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.date, slot.Date)
		})
	}
}

func TestSlot_Window(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	slot, err := reservation.NewSlot("2025-01-20", "18:30", 90)
	require.NoError(t, err)

	start, end, err := slot.Window(loc)
	require.NoError(t, err)

	// 18:30 EST == 23:30 UTC
	assert.Equal(t, time.Date(2025, 1, 20, 23, 30, 0, 0, time.UTC), start)
	assert.Equal(t, start.Add(90*time.Minute), end)
	assert.Equal(t, time.UTC, start.Location())
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	testCases := []struct {
		name                           string
		startA, endA, startB, endB     time.Time
		expected                       bool
	}{
		{name: "identical windows", startA: at(0), endA: at(90), startB: at(0), endB: at(90), expected: true},
		{name: "partial overlap", startA: at(0), endA: at(90), startB: at(60), endB: at(150), expected: true},
		{name: "contained window", startA: at(0), endA: at(90), startB: at(30), endB: at(60), expected: true},
		{name: "back-to-back does not conflict", startA: at(0), endA: at(90), startB: at(90), endB: at(180), expected: false},
		{name: "disjoint", startA: at(0), endA: at(60), startB: at(120), endB: at(180), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, reservation.Overlaps(tc.startA, tc.endA, tc.startB, tc.endB))
			// Overlap is symmetric
			assert.Equal(t, tc.expected, reservation.Overlaps(tc.startB, tc.endB, tc.startA, tc.endA))
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to reservation.Status }{
		{reservation.StatusPending, reservation.StatusConfirmed},
		{reservation.StatusPending, reservation.StatusCancelled},
		{reservation.StatusConfirmed, reservation.StatusSeated},
		{reservation.StatusConfirmed, reservation.StatusCancelled},
		{reservation.StatusSeated, reservation.StatusCompleted},
		{reservation.StatusSeated, reservation.StatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, reservation.CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to reservation.Status }{
		{reservation.StatusCompleted, reservation.StatusSeated},
		{reservation.StatusCancelled, reservation.StatusPending},
		{reservation.StatusSeated, reservation.StatusPending},
		{reservation.StatusCompleted, reservation.StatusCancelled},
	}
	for _, tr := range denied {
		assert.False(t, reservation.CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestNormalizeTableIDs(t *testing.T) {
	t1 := uuid.New()
	t2 := uuid.New()

	t.Run("drops blanks and duplicates, keeps first-seen order", func(t *testing.T) {
		got, err := reservation.NormalizeTableIDs([]string{t1.String(), "", "  ", t2.String(), t1.String()})
		require.NoError(t, err)
		want := []uuid.UUID{t1, t2}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("normalized ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects malformed ids and names the offender", func(t *testing.T) {
		_, err := reservation.NormalizeTableIDs([]string{"not-a-uuid", t1.String()})
		require.ErrorIs(t, err, reservation.ErrInvalidTableID)
		assert.Contains(t, err.Error(), "not-a-uuid")
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		got, err := reservation.NormalizeTableIDs(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestNewCode(t *testing.T) {
	code, err := reservation.NewCode()
	require.NoError(t, err)
	assert.Len(t, code, reservation.CodeLength)
	for _, r := range code {
		assert.False(t, strings.ContainsRune("0O1IL", r), "ambiguous character %q in code %s", r, code)
	}

	other, err := reservation.NewCode()
	require.NoError(t, err)
	assert.NotEqual(t, code, other, "codes should be random")
}
