package jwt

import (
	"errors"
	"time"

	"stagebook/internal/domain/party"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carry the party identity issued by the external auth service.
// This service only validates; issuance happens elsewhere.
type Claims struct {
	PartyID   uuid.UUID `json:"party_id"`
	PartyKind string    `json:"party_kind"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// GenerateToken exists for tests and local tooling; production tokens
// come from the auth collaborator with the same claim shape.
func (s *Service) GenerateToken(p party.Party) (string, error) {
	now := time.Now()
	claims := Claims{
		PartyID:   p.ID,
		PartyKind: p.Kind.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Party converts the claims back into a domain party.
func (c *Claims) Party() (party.Party, error) {
	kind, err := party.ParseKind(c.PartyKind)
	if err != nil {
		return party.Party{}, ErrInvalidToken
	}
	return party.Party{Kind: kind, ID: c.PartyID}, nil
}
