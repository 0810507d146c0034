package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidPartySize = errors.New("invalid party size")

type VenueHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewVenueHandler(availabilityQueries queries.AvailabilityQueries) *VenueHandler {
	return &VenueHandler{
		availabilityQueries: availabilityQueries,
	}
}

// Availability lists tables free for a window. Advisory only; the booking
// transaction is what decides.
func (h *VenueHandler) Availability(c *gin.Context) {
	in, ok := h.bindAvailabilityQuery(c)
	if !ok {
		return
	}

	free, err := h.availabilityQueries.FreeTables(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTables(free))
}

// Suggestions ranks seating options for a party, including join-group
// combinations no single table could cover.
func (h *VenueHandler) Suggestions(c *gin.Context) {
	in, ok := h.bindAvailabilityQuery(c)
	if !ok {
		return
	}

	ranked, err := h.availabilityQueries.SuggestTables(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSuggestions(ranked))
}

func (h *VenueHandler) bindAvailabilityQuery(c *gin.Context) (queries.AvailabilityInput, bool) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid venue ID format", nil)
		return queries.AvailabilityInput{}, false
	}

	partySize, err := strconv.Atoi(c.DefaultQuery("partySize", "0"))
	if err != nil || partySize <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidPartySize, httperr.CodeValidation, "partySize must be a positive integer", nil)
		return queries.AvailabilityInput{}, false
	}
	duration, err := strconv.Atoi(c.DefaultQuery("durationMinutes", "90"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "durationMinutes must be an integer", nil)
		return queries.AvailabilityInput{}, false
	}

	return queries.AvailabilityInput{
		VenueID:         venueID,
		Date:            c.Query("date"),
		Time:            c.Query("time"),
		DurationMinutes: duration,
		PartySize:       partySize,
	}, true
}
