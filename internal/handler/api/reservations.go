package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/reservation"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationUseCase commands.ReservationCommands
	reservationQueries queries.ReservationQueries
}

func NewReservationHandler(reservationUseCase commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationUseCase: reservationUseCase,
		reservationQueries: reservationQueries,
	}
}

// CreateReservation books a table set directly or by consuming a hold.
// Replays under the same Idempotency-Key return the original reservation
// with 200 instead of 201.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid venue ID format", nil)
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid idempotency key format", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, httperr.CodeValidation, "Invalid request format", nil)
		return
	}

	result, err := h.reservationUseCase.Create(c.Request.Context(), req.ToInput(venueID, "staff"), idempotencyKey)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservation(result.Reservation))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid reservation ID format", nil)
		return
	}

	found, err := h.reservationQueries.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(found))
}

// ListReservations returns a venue's reservations for one service date.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid venue ID format", nil)
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, reservation.ErrInvalidSlotDate, httperr.CodeValidation, "date query parameter required", nil)
		return
	}

	list, err := h.reservationQueries.ListByVenueDate(c.Request.Context(), venueID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*resdto.ReservationListResponse, len(list))
	for i, res := range list {
		out[i] = resdto.FromReservationListItem(res)
	}
	c.JSON(http.StatusOK, out)
}

// SyncTables replaces the reservation's table assignments with the request's
// set. The desired list is normalized, so duplicates and blanks are ignored.
func (h *ReservationHandler) SyncTables(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid reservation ID format", nil)
		return
	}

	var req reqdto.SyncTablesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, httperr.CodeValidation, "Invalid request format", nil)
		return
	}

	updated, err := h.reservationUseCase.SyncTables(c.Request.Context(), id, req.TableIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(updated))
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid reservation ID format", nil)
		return
	}

	var req reqdto.UpdateStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, httperr.CodeValidation, "Invalid request format", nil)
		return
	}

	updated, err := h.reservationUseCase.UpdateStatus(c.Request.Context(), id, reservation.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(updated))
}

// GuestCancel serves the cancellation link sent to guests. The link token
// middleware has already verified the token and resolved the reservation.
func (h *ReservationHandler) GuestCancel(c *gin.Context) {
	id, ok := middleware.GetLinkReservationID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("link reservation id missing from context"),
			httperr.CodeInternal, "Internal server error", nil)
		return
	}

	cancelled, err := h.reservationUseCase.GuestCancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(cancelled))
}

func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
