package request

import (
	"strings"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type CreateReservationRequest struct {
	HoldID          *uuid.UUID   `json:"holdId,omitempty"`
	TableIDs        []string     `json:"tableIds,omitempty"`
	Guest           GuestRequest `json:"guest" binding:"required"`
	PartySize       int          `json:"partySize" binding:"required,min=1"`
	Date            string       `json:"date" binding:"required"`
	Time            string       `json:"time" binding:"required"`
	DurationMinutes int          `json:"durationMinutes,omitempty"`
}

func (r CreateReservationRequest) ToInput(venueID uuid.UUID, createdBy string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		VenueID:  venueID,
		HoldID:   r.HoldID,
		TableIDs: r.TableIDs,
		Guest: reservation.Guest{
			Name:  strings.TrimSpace(r.Guest.Name),
			Phone: strings.TrimSpace(r.Guest.Phone),
			Email: strings.TrimSpace(r.Guest.Email),
		},
		PartySize:       r.PartySize,
		Date:            r.Date,
		Time:            r.Time,
		DurationMinutes: r.DurationMinutes,
		CreatedBy:       createdBy,
	}
}

type SyncTablesRequest struct {
	TableIDs []string `json:"tableIds"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
