package offer

import (
	"errors"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"

	"github.com/google/uuid"
)

var (
	ErrMissingDate   = errors.New("offer date is required")
	ErrMissingArtist = errors.New("offer artist is required")
	ErrMissingVenue  = errors.New("offer venue is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Offer is the legacy venue-initiated record. New writes go to the
// unified proposals table; this table is read-only input that the
// timeline still has to reconcile.
type Offer struct {
	id          uuid.UUID
	venueID     uuid.UUID
	artistID    uuid.UUID
	requestID   *uuid.UUID // nil when the offer is a direct invitation
	date        time.Time
	payoutCents int64
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructOffer(
	id, venueID, artistID uuid.UUID,
	requestID *uuid.UUID,
	date time.Time,
	payoutCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:          id,
		venueID:     venueID,
		artistID:    artistID,
		requestID:   requestID,
		date:        booking.NormalizeDate(date),
		payoutCents: payoutCents,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o *Offer) ID() uuid.UUID         { return o.id }
func (o *Offer) VenueID() uuid.UUID    { return o.venueID }
func (o *Offer) ArtistID() uuid.UUID   { return o.artistID }
func (o *Offer) RequestID() *uuid.UUID { return o.requestID }
func (o *Offer) Date() time.Time       { return o.date }
func (o *Offer) PayoutCents() int64    { return o.payoutCents }
func (o *Offer) Status() Status        { return o.status }
func (o *Offer) CreatedAt() time.Time  { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time  { return o.updatedAt }

// IsDirect reports whether the offer stands alone, with no backing
// request record. Direct offers get promoted to synthetic request
// entries by the synthesizer.
func (o *Offer) IsDirect() bool {
	return o.requestID == nil
}

// AsProposal lifts the legacy record into the canonical proposal shape
// so the aggregator only ever sees one representation.
func (o *Offer) AsProposal() *proposal.Proposal {
	id := o.id
	return proposal.ReconstructProposal(
		o.id,
		o.requestID,
		&id,
		party.NewVenue(o.venueID),
		o.artistID,
		o.date,
		o.payoutCents,
		proposal.Status(o.status),
		proposal.HoldNone,
		proposal.ShapeLegacyOffer,
		o.createdAt,
		o.updatedAt,
	)
}
