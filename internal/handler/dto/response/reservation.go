package response

import (
	"time"

	"tablebook/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type TableAssignmentResponse struct {
	TableID       uuid.UUID `json:"tableId"`
	AssignedOrder int       `json:"assignedOrder"`
}

type ReservationResponse struct {
	ID              uuid.UUID                 `json:"id"`
	VenueID         uuid.UUID                 `json:"venueId"`
	Code            string                    `json:"code"`
	Status          string                    `json:"status"`
	Guest           GuestResponse             `json:"guest"`
	PartySize       int                       `json:"partySize"`
	SlotDate        string                    `json:"slotDate"`
	SlotTime        string                    `json:"slotTime"`
	SlotStartUTC    time.Time                 `json:"slotStartUtc"`
	DurationMinutes int                       `json:"durationMinutes"`
	Tables          []TableAssignmentResponse `json:"tables"`
	CreatedBy       string                    `json:"createdBy,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Status       string    `json:"status"`
	GuestName    string    `json:"guestName"`
	PartySize    int       `json:"partySize"`
	SlotTime     string    `json:"slotTime"`
	SlotStartUTC time.Time `json:"slotStartUtc"`
	TableCount   int       `json:"tableCount"`
}

func FromReservation(res reservation.Reservation) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, &res)
	resp.Status = string(res.Status)
	if resp.Tables == nil {
		resp.Tables = []TableAssignmentResponse{}
	}
	return &resp
}

func FromReservationListItem(res reservation.Reservation) *ReservationListResponse {
	return &ReservationListResponse{
		ID:           res.ID,
		Code:         res.Code,
		Status:       string(res.Status),
		GuestName:    res.Guest.Name,
		PartySize:    res.PartySize,
		SlotTime:     res.SlotTime,
		SlotStartUTC: res.SlotStartUTC,
		TableCount:   len(res.Tables),
	}
}
