package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stagebook/internal/domain/hold"
	reqdto "stagebook/internal/handler/dto/request"
	resdto "stagebook/internal/handler/dto/response"
	"stagebook/internal/handler/middleware"
	"stagebook/internal/usecase/commands"
)

type HoldHandler struct {
	holdCommands *commands.HoldCommands
}

func NewHoldHandler(holdCommands *commands.HoldCommands) *HoldHandler {
	return &HoldHandler{
		holdCommands: holdCommands,
	}
}

// @Summary Request hold
// @Description Place a temporary exclusive claim on a booking, request, or proposal
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	requester, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	created, err := h.holdCommands.CreateHold(c.Request.Context(), requester, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAmbiguousHoldTarget):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Hold target must resolve to exactly one document",
			})
		case errors.Is(err, commands.ErrHoldTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hold target not found",
			})
		case errors.Is(err, commands.ErrHoldConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Target already has a live hold",
			})
		case errors.Is(err, commands.ErrRequestSettled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Request is already settled",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHold(created))
}

// @Summary Respond to hold
// @Description Approve or decline a pending hold as the counterpart
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Param request body reqdto.RespondHoldRequest true "Response action"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id}/respond [post]
func (h *HoldHandler) RespondToHold(c *gin.Context) {
	responder, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID",
		})
		return
	}

	var req reqdto.RespondHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	updated, err := h.holdCommands.RespondToHold(c.Request.Context(), responder, holdID, hold.ResponseAction(req.Action))
	if err != nil {
		respondHoldError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(updated))
}

// @Summary Cancel hold
// @Description Withdraw a live hold as its requester
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id} [delete]
func (h *HoldHandler) CancelHold(c *gin.Context) {
	requester, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID",
		})
		return
	}

	cancelled, err := h.holdCommands.CancelHold(c.Request.Context(), requester, holdID)
	if err != nil {
		respondHoldError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(cancelled))
}

func respondHoldError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrHoldNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Hold not found",
		})
	case errors.Is(err, commands.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized for this hold",
		})
	case errors.Is(err, commands.ErrHoldAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Hold is already resolved",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
