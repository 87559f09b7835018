package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stagebook/internal/domain/party"
	"stagebook/internal/pkg/jwt"
)

// TokenHandler mints party tokens for local development. It is only
// routed in debug mode; production tokens come from the auth
// collaborator.
type TokenHandler struct {
	tokens *jwt.Service
}

func NewTokenHandler(tokens *jwt.Service) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

type issueTokenRequest struct {
	PartyKind string    `json:"party_kind" binding:"required,oneof=artist venue"`
	PartyID   uuid.UUID `json:"party_id" binding:"required"`
}

// @Summary Issue development token
// @Description Mint a bearer token for a party (debug mode only)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body issueTokenRequest true "Party identity"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/token [post]
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	kind, err := party.ParseKind(req.PartyKind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid party kind",
		})
		return
	}

	token, err := h.tokens.GenerateToken(party.Party{Kind: kind, ID: req.PartyID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
