package response

import (
	"tablebook/internal/domain/venue"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Capacity int       `json:"capacity"`
	Zone     string    `json:"zone,omitempty"`
}

type SuggestionResponse struct {
	TableIDs []uuid.UUID `json:"tableIds"`
	Labels   []string    `json:"labels"`
	Capacity int         `json:"capacity"`
}

func FromTables(tables []venue.Table) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i, t := range tables {
		out[i] = TableResponse{
			ID:       t.ID,
			Label:    t.Label,
			Capacity: t.Capacity,
			Zone:     t.Zone,
		}
	}
	return out
}

func FromSuggestions(suggestions []queries.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = SuggestionResponse{
			TableIDs: s.TableIDs,
			Labels:   s.Labels,
			Capacity: s.Capacity,
		}
	}
	return out
}
