package proposal

import (
	"errors"
	"fmt"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/party"

	"github.com/google/uuid"
)

var (
	ErrMissingDate     = errors.New("proposal date is required")
	ErrMissingProposer = errors.New("proposal proposer is required")
	ErrNegativePayout  = errors.New("proposal payout cannot be negative")
	ErrNotPending      = errors.New("proposal is not pending")
	ErrAlreadySettled  = errors.New("proposal is already settled")
)

// Proposal is the canonical competing bid: a counterpart's answer to a
// request, or a direct request-less invitation.
type Proposal struct {
	id            uuid.UUID
	requestID     *uuid.UUID // nil for direct invitations
	legacyOfferID *uuid.UUID // cross-reference when the same bid exists in the legacy table
	proposer      party.Party
	counterpartID uuid.UUID
	date          time.Time
	payoutCents   int64
	status        Status
	holdState     HoldState
	shape         SourceShape
	createdAt     time.Time
	updatedAt     time.Time
}

func NewProposal(
	requestID *uuid.UUID,
	proposer party.Party,
	counterpartID uuid.UUID,
	date time.Time,
	payoutCents int64,
	now time.Time,
) (*Proposal, error) {
	if proposer.IsZero() {
		return nil, ErrMissingProposer
	}
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if payoutCents < 0 {
		return nil, ErrNegativePayout
	}

	return &Proposal{
		id:            uuid.New(),
		requestID:     requestID,
		proposer:      proposer,
		counterpartID: counterpartID,
		date:          booking.NormalizeDate(date),
		payoutCents:   payoutCents,
		status:        StatusPending,
		holdState:     HoldNone,
		shape:         ShapeRequestBid,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructProposal(
	id uuid.UUID,
	requestID, legacyOfferID *uuid.UUID,
	proposer party.Party,
	counterpartID uuid.UUID,
	date time.Time,
	payoutCents int64,
	status Status,
	holdState HoldState,
	shape SourceShape,
	createdAt, updatedAt time.Time,
) *Proposal {
	return &Proposal{
		id:            id,
		requestID:     requestID,
		legacyOfferID: legacyOfferID,
		proposer:      proposer,
		counterpartID: counterpartID,
		date:          booking.NormalizeDate(date),
		payoutCents:   payoutCents,
		status:        status,
		holdState:     holdState,
		shape:         shape,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Proposal) ID() uuid.UUID             { return p.id }
func (p *Proposal) RequestID() *uuid.UUID     { return p.requestID }
func (p *Proposal) LegacyOfferID() *uuid.UUID { return p.legacyOfferID }
func (p *Proposal) Proposer() party.Party     { return p.proposer }
func (p *Proposal) CounterpartID() uuid.UUID  { return p.counterpartID }
func (p *Proposal) Date() time.Time           { return p.date }
func (p *Proposal) PayoutCents() int64        { return p.payoutCents }
func (p *Proposal) Status() Status            { return p.status }
func (p *Proposal) HoldState() HoldState      { return p.holdState }
func (p *Proposal) Shape() SourceShape        { return p.shape }
func (p *Proposal) CreatedAt() time.Time      { return p.createdAt }
func (p *Proposal) UpdatedAt() time.Time      { return p.updatedAt }

// IdentityKey reconciles the two storage shapes of the same logical
// proposal: same date, same proposer, same counterpart.
func (p *Proposal) IdentityKey() string {
	return fmt.Sprintf("%s|%s:%s|%s",
		p.date.Format(time.DateOnly),
		p.proposer.Kind, p.proposer.ID,
		p.counterpartID,
	)
}

// IsLive reports whether the proposal still competes for the date.
func (p *Proposal) IsLive() bool {
	switch p.status {
	case StatusCancelled, StatusDeclined, StatusExpired:
		return false
	default:
		return true
	}
}

func (p *Proposal) IsAccepted() bool {
	return p.status == StatusAccepted
}

func (p *Proposal) Accept(now time.Time) error {
	if p.status != StatusPending {
		return ErrNotPending
	}
	p.status = StatusAccepted
	if p.holdState == HoldHeld {
		p.holdState = HoldAcceptedHeld
	}
	p.updatedAt = now
	return nil
}

func (p *Proposal) Decline(now time.Time) error {
	if p.status != StatusPending {
		return ErrNotPending
	}
	p.status = StatusDeclined
	p.holdState = HoldNone
	p.updatedAt = now
	return nil
}

func (p *Proposal) Cancel(now time.Time) error {
	switch p.status {
	case StatusAccepted, StatusDeclined, StatusCancelled, StatusExpired:
		return ErrAlreadySettled
	}
	p.status = StatusCancelled
	p.holdState = HoldNone
	p.updatedAt = now
	return nil
}
