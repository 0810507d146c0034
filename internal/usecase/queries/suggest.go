package queries

import (
	"sort"

	"tablebook/internal/domain/venue"

	"github.com/google/uuid"
)

// Suggestion is a ranked table combination for a party. Purely a UX ranking;
// never consulted for booking correctness.
type Suggestion struct {
	TableIDs []uuid.UUID
	Labels   []string
	Capacity int
}

// RankTables orders seating options for a party: single tables first,
// tightest capacity fit wins; then two-table combinations drawn from the
// same join group for parties no single table fits. Input tables are assumed
// free for the requested window.
func RankTables(free []venue.Table, partySize int) []Suggestion {
	suggestions := []Suggestion{}

	singles := make([]venue.Table, 0, len(free))
	for _, t := range free {
		if t.Capacity >= partySize {
			singles = append(singles, t)
		}
	}
	sort.Slice(singles, func(i, j int) bool {
		if singles[i].Capacity != singles[j].Capacity {
			return singles[i].Capacity < singles[j].Capacity
		}
		return singles[i].Label < singles[j].Label
	})
	for _, t := range singles {
		suggestions = append(suggestions, Suggestion{
			TableIDs: []uuid.UUID{t.ID},
			Labels:   []string{t.Label},
			Capacity: t.Capacity,
		})
	}

	byGroup := make(map[string][]venue.Table)
	for _, t := range free {
		if t.JoinGroup != nil && *t.JoinGroup != "" {
			byGroup[*t.JoinGroup] = append(byGroup[*t.JoinGroup], t)
		}
	}

	pairs := []Suggestion{}
	for _, group := range byGroup {
		sort.Slice(group, func(i, j int) bool { return group[i].Label < group[j].Label })
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				combined := group[i].Capacity + group[j].Capacity
				if combined < partySize {
					continue
				}
				// A pair only helps when no member seats the party alone.
				if group[i].Capacity >= partySize || group[j].Capacity >= partySize {
					continue
				}
				pairs = append(pairs, Suggestion{
					TableIDs: []uuid.UUID{group[i].ID, group[j].ID},
					Labels:   []string{group[i].Label, group[j].Label},
					Capacity: combined,
				})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Capacity != pairs[j].Capacity {
			return pairs[i].Capacity < pairs[j].Capacity
		}
		return pairs[i].Labels[0] < pairs[j].Labels[0]
	})

	return append(suggestions, pairs...)
}
