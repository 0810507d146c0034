package api

import (
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holdUseCase commands.HoldCommands
}

func NewHoldHandler(holdUseCase commands.HoldCommands) *HoldHandler {
	return &HoldHandler{
		holdUseCase: holdUseCase,
	}
}

// CreateHold places a short-lived lock on one table-slot. 201 on success;
// 409 with conflict detail when the slot is already taken.
func (h *HoldHandler) CreateHold(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid venue ID format", nil)
		return
	}

	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, httperr.CodeValidation, "Invalid request format", nil)
		return
	}

	created, err := h.holdUseCase.CreateHold(c.Request.Context(), req.ToInput(venueID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHold(created))
}

func (h *HoldHandler) GetHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid hold ID format", nil)
		return
	}

	found, err := h.holdUseCase.GetHold(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(found))
}

// CancelHold releases a live hold before expiry. Cancelling an already
// consumed or expired hold is a conflict, not a no-op.
func (h *HoldHandler) CancelHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid hold ID format", nil)
		return
	}

	if err := h.holdUseCase.CancelHold(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
