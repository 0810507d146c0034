package request

import (
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	TableID         uuid.UUID `json:"tableId" binding:"required"`
	Date            string    `json:"date" binding:"required"`
	Time            string    `json:"time" binding:"required"`
	PartySize       int       `json:"partySize" binding:"required,min=1"`
	TTLSeconds      int       `json:"ttlSeconds,omitempty"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
}

func (r CreateHoldRequest) ToInput(venueID uuid.UUID) commands.CreateHoldInput {
	return commands.CreateHoldInput{
		VenueID:         venueID,
		TableID:         r.TableID,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		TTLSeconds:      r.TTLSeconds,
		DurationMinutes: r.DurationMinutes,
	}
}
