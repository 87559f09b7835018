package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "stagebook/internal/handler/dto/request"
	resdto "stagebook/internal/handler/dto/response"
	"stagebook/internal/handler/middleware"
	"stagebook/internal/usecase/commands"
)

type ProposalHandler struct {
	proposalCommands *commands.ProposalCommands
}

func NewProposalHandler(proposalCommands *commands.ProposalCommands) *ProposalHandler {
	return &ProposalHandler{
		proposalCommands: proposalCommands,
	}
}

// @Summary Submit proposal
// @Description Submit a bid answering a request, or a direct bid to a counterpart
// @Tags proposals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitProposalRequest true "Proposal"
// @Success 201 {object} resdto.ProposalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /proposals [post]
func (h *ProposalHandler) SubmitProposal(c *gin.Context) {
	proposer, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.SubmitProposalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	created, err := h.proposalCommands.SubmitProposal(c.Request.Context(), proposer, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Request not found",
			})
		case errors.Is(err, commands.ErrRequestNotOpen):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Request is not open",
			})
		case errors.Is(err, commands.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not authorized to answer this request",
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

	c.JSON(http.StatusCreated, resdto.FromProposal(created))
}

// @Summary Accept proposal
// @Description Accept a pending proposal; closes its request and creates a confirmed booking
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /proposals/{id}/accept [post]
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid proposal ID",
		})
		return
	}

	created, err := h.proposalCommands.AcceptProposal(c.Request.Context(), actor, proposalID)
	if err != nil {
		respondProposalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(created))
}

// @Summary Decline proposal
// @Description Decline a pending proposal as its receiving party
// @Tags proposals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} resdto.ProposalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /proposals/{id}/decline [post]
func (h *ProposalHandler) DeclineProposal(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid proposal ID",
		})
		return
	}

	declined, err := h.proposalCommands.DeclineProposal(c.Request.Context(), actor, proposalID)
	if err != nil {
		respondProposalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProposal(declined))
}

func respondProposalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrProposalNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Proposal not found",
		})
	case errors.Is(err, commands.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Request not found",
		})
	case errors.Is(err, commands.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized for this proposal",
		})
	case errors.Is(err, commands.ErrProposalFrozen):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Proposal is frozen by an active hold",
		})
	case errors.Is(err, commands.ErrRequestSettled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request is already settled",
		})
	case errors.Is(err, commands.ErrProposalNotPending):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Proposal is not pending",
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
