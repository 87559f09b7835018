package party

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidKind = errors.New("invalid party kind")

// Kind discriminates the two sides of a booking negotiation.
type Kind string

const (
	KindArtist Kind = "artist"
	KindVenue  Kind = "venue"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindArtist, KindVenue:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Party identifies one side of a negotiation. It doubles as the
// viewpoint of every timeline read.
type Party struct {
	Kind Kind
	ID   uuid.UUID
}

func NewArtist(id uuid.UUID) Party {
	return Party{Kind: KindArtist, ID: id}
}

func NewVenue(id uuid.UUID) Party {
	return Party{Kind: KindVenue, ID: id}
}

func (p Party) IsArtist() bool {
	return p.Kind == KindArtist
}

func (p Party) IsVenue() bool {
	return p.Kind == KindVenue
}

func (p Party) Equal(other Party) bool {
	return p.Kind == other.Kind && p.ID == other.ID
}

func (p Party) IsZero() bool {
	return p.ID == uuid.Nil
}
