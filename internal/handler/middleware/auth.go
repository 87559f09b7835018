package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stagebook/internal/domain/party"
	"stagebook/internal/pkg/jwt"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxPartyKindKey = "party_kind"
	ctxPartyIDKey   = "party_id"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		viewpoint, err := claims.Party()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxPartyKindKey, viewpoint.Kind)
		c.Set(ctxPartyIDKey, viewpoint.ID)
		c.Set("jwt_claims", map[string]any{
			"party_id":   viewpoint.ID.String(),
			"party_kind": viewpoint.Kind.String(),
		})
		c.Next()
	}
}

// RequireKind gates routes that only make sense for one side, e.g.
// direct offers are venue-only.
func (m *AuthMiddleware) RequireKind(kind party.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewpoint, ok := GetParty(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if viewpoint.Kind != kind {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetParty returns the authenticated party set by RequireAuth.
func GetParty(c *gin.Context) (party.Party, bool) {
	kindVal, ok := c.Get(ctxPartyKindKey)
	if !ok {
		return party.Party{}, false
	}
	idVal, ok := c.Get(ctxPartyIDKey)
	if !ok {
		return party.Party{}, false
	}

	kind, kindOK := kindVal.(party.Kind)
	id, idOK := idVal.(uuid.UUID)
	if !kindOK || !idOK {
		return party.Party{}, false
	}
	return party.Party{Kind: kind, ID: id}, true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
