//go:build unit || e2e

package builder

import (
	"time"

	domoffer "stagebook/internal/domain/offer"

	"github.com/google/uuid"
)

// OfferBuilder produces legacy venue-offer rows. Offers are read-only
// input, so there is only a rehydrating build.
type OfferBuilder struct {
	ID          uuid.UUID
	VenueID     uuid.UUID
	ArtistID    uuid.UUID
	RequestID   *uuid.UUID
	Date        time.Time
	PayoutCents int64
	Status      domoffer.Status
	Now         time.Time
}

func NewOfferBuilder() *OfferBuilder {
	now := time.Now()
	return &OfferBuilder{
		ID:          uuid.New(),
		VenueID:     uuid.New(),
		ArtistID:    uuid.New(),
		Date:        now.AddDate(0, 1, 0),
		PayoutCents: 40000,
		Status:      domoffer.StatusPending,
		Now:         now,
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) BuildStored() *domoffer.Offer {
	return domoffer.ReconstructOffer(
		b.ID, b.VenueID, b.ArtistID, b.RequestID,
		b.Date, b.PayoutCents, b.Status,
		b.Now, b.Now,
	)
}

// Fluent builder methods
func (b *OfferBuilder) WithVenueID(id uuid.UUID) *OfferBuilder {
	b.VenueID = id
	return b
}

func (b *OfferBuilder) WithArtistID(id uuid.UUID) *OfferBuilder {
	b.ArtistID = id
	return b
}

func (b *OfferBuilder) WithRequestID(id uuid.UUID) *OfferBuilder {
	b.RequestID = &id
	return b
}

func (b *OfferBuilder) WithDate(date time.Time) *OfferBuilder {
	b.Date = date
	return b
}

func (b *OfferBuilder) WithPayoutCents(cents int64) *OfferBuilder {
	b.PayoutCents = cents
	return b
}

func (b *OfferBuilder) WithStatus(status domoffer.Status) *OfferBuilder {
	b.Status = status
	return b
}

func (b *OfferBuilder) WithNow(now time.Time) *OfferBuilder {
	b.Now = now
	return b
}
