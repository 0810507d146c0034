package response

import (
	"time"

	"tablebook/internal/domain/hold"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HoldResponse struct {
	ID           uuid.UUID `json:"id"`
	VenueID      uuid.UUID `json:"venueId"`
	TableID      uuid.UUID `json:"tableId"`
	PartySize    int       `json:"partySize"`
	SlotDate     string    `json:"slotDate"`
	SlotTime     string    `json:"slotTime"`
	SlotStartUTC time.Time `json:"slotStartUtc"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromHold(h hold.Hold) *HoldResponse {
	var resp HoldResponse
	_ = copier.Copy(&resp, &h)
	resp.Status = string(h.Status)
	return &resp
}
