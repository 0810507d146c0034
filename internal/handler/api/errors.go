package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"
	"tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/infra"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondError maps domain and storage sentinels onto the API error
// vocabulary. Handlers deal with their endpoint-specific cases first and fall
// back here.
func respondError(c *gin.Context, err error) {
	var slotConflict *commands.SlotConflictError
	if errors.As(err, &slotConflict) {
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeConflict,
			"Table slot already held or reserved", response.FromConflicts(slotConflict.Conflicts))
		return
	}

	switch {
	case errors.Is(err, venue.ErrVenueNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, httperr.CodeNotFound, "Venue not found", nil)
	case errors.Is(err, venue.ErrTableNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, httperr.CodeNotFound, "Table not found", nil)
	case errors.Is(err, hold.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, httperr.CodeNotFound, "Hold not found", nil)
	case errors.Is(err, reservation.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, httperr.CodeNotFound, "Reservation not found", nil)
	case errors.Is(err, hold.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeConflict,
			"Table slot already held or reserved", nil)
	case errors.Is(err, hold.ErrExpired):
		httperr.AbortWithError(c, http.StatusGone, err, httperr.CodeExpired, "Hold expired", nil)
	case errors.Is(err, hold.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeConflict,
			"Hold is no longer active", nil)
	case errors.Is(err, reservation.ErrIdempotencyConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeIdempotencyConflict,
			"Idempotency key reused with a different request", nil)
	case errors.Is(err, reservation.ErrIdempotencyPending):
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeConflict,
			"Request with this idempotency key is currently being processed", nil)
	case errors.Is(err, reservation.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, httperr.CodeConflict,
			"Status transition not allowed", nil)
	case errors.Is(err, commands.ErrHoldMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, httperr.CodeValidation,
			"Hold does not match the requested venue or slot", nil)
	case errors.Is(err, commands.ErrTableTooSmall):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, httperr.CodeValidation,
			"Table capacity below party size", nil)
	case isValidationErr(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, err.Error(), nil)
	case infra.IsKind(err, infra.KindTimeout):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, httperr.CodeTransient,
			"Storage temporarily unavailable, retry the request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.CodeInternal,
			"Internal server error", nil)
	}
}

func isValidationErr(err error) bool {
	for _, sentinel := range []error{
		reservation.ErrInvalidSlotDate,
		reservation.ErrInvalidSlotTime,
		reservation.ErrInvalidDuration,
		reservation.ErrInvalidParty,
		reservation.ErrInvalidStatus,
		reservation.ErrGuestNameRequired,
		reservation.ErrNoTables,
		reservation.ErrInvalidTableID,
		hold.ErrInvalidTTL,
		hold.ErrInvalidParty,
		venue.ErrUnknownTimezone,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
