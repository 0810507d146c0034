package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// fingerprintFields are the client-controllable, booking-determining fields
// of a creation request. Table ids are sorted so retries that merely reorder
// them still replay; free-text fields like notes are deliberately excluded so
// benign retries do not trip IDEMPOTENCY_CONFLICT.
type fingerprintFields struct {
	VenueID         string   `json:"venue_id"`
	HoldID          string   `json:"hold_id,omitempty"`
	TableIDs        []string `json:"table_ids,omitempty"`
	SlotDate        string   `json:"slot_date"`
	SlotTime        string   `json:"slot_time"`
	DurationMinutes int      `json:"duration_minutes"`
	PartySize       int      `json:"party_size"`
	GuestName       string   `json:"guest_name"`
	GuestPhone      string   `json:"guest_phone"`
	GuestEmail      string   `json:"guest_email"`
}

func requestFingerprint(in CreateReservationInput, normalizedTables []uuid.UUID) string {
	fields := fingerprintFields{
		VenueID:         in.VenueID.String(),
		SlotDate:        in.Date,
		SlotTime:        in.Time,
		DurationMinutes: in.DurationMinutes,
		PartySize:       in.PartySize,
		GuestName:       in.Guest.Name,
		GuestPhone:      in.Guest.Phone,
		GuestEmail:      in.Guest.Email,
	}
	if in.HoldID != nil {
		fields.HoldID = in.HoldID.String()
	}
	if len(normalizedTables) > 0 {
		ids := make([]string, 0, len(normalizedTables))
		for _, id := range normalizedTables {
			ids = append(ids, id.String())
		}
		sort.Strings(ids)
		fields.TableIDs = ids
	}

	data, _ := json.Marshal(fields)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
