//go:build unit || e2e

package builder

import (
	"time"

	"stagebook/internal/domain/party"
	domproposal "stagebook/internal/domain/proposal"
	reqdto "stagebook/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ProposalBuilder struct {
	ID            uuid.UUID
	RequestID     *uuid.UUID
	LegacyOfferID *uuid.UUID
	Proposer      party.Party
	CounterpartID uuid.UUID
	Date          time.Time
	PayoutCents   int64
	Status        domproposal.Status
	HoldState     domproposal.HoldState
	Shape         domproposal.SourceShape
	Now           time.Time
}

func NewProposalBuilder() *ProposalBuilder {
	now := time.Now()
	return &ProposalBuilder{
		ID:            uuid.New(),
		Proposer:      party.NewArtist(uuid.New()),
		CounterpartID: uuid.New(),
		Date:          now.AddDate(0, 1, 0),
		PayoutCents:   50000,
		Status:        domproposal.StatusPending,
		HoldState:     domproposal.HoldNone,
		Shape:         domproposal.ShapeRequestBid,
		Now:           now,
	}
}

func (b *ProposalBuilder) With(mutate func(*ProposalBuilder)) *ProposalBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProposalBuilder) BuildDomain() (*domproposal.Proposal, error) {
	return domproposal.NewProposal(b.RequestID, b.Proposer, b.CounterpartID, b.Date, b.PayoutCents, b.Now)
}

// BuildStored rehydrates a proposal as if read back from the database,
// so tests can start from any status or hold state.
func (b *ProposalBuilder) BuildStored() *domproposal.Proposal {
	return domproposal.ReconstructProposal(
		b.ID, b.RequestID, b.LegacyOfferID,
		b.Proposer, b.CounterpartID,
		b.Date, b.PayoutCents,
		b.Status, b.HoldState, b.Shape,
		b.Now, b.Now,
	)
}

func (b *ProposalBuilder) BuildSubmitRequestDTO() reqdto.SubmitProposalRequest {
	return reqdto.SubmitProposalRequest{
		RequestID:     b.RequestID,
		CounterpartID: b.CounterpartID,
		Date:          b.Date,
		PayoutCents:   b.PayoutCents,
	}
}

// Fluent builder methods
func (b *ProposalBuilder) WithRequestID(id uuid.UUID) *ProposalBuilder {
	b.RequestID = &id
	return b
}

func (b *ProposalBuilder) WithLegacyOfferID(id uuid.UUID) *ProposalBuilder {
	b.LegacyOfferID = &id
	return b
}

func (b *ProposalBuilder) WithProposer(p party.Party) *ProposalBuilder {
	b.Proposer = p
	return b
}

func (b *ProposalBuilder) WithCounterpartID(id uuid.UUID) *ProposalBuilder {
	b.CounterpartID = id
	return b
}

func (b *ProposalBuilder) WithDate(date time.Time) *ProposalBuilder {
	b.Date = date
	return b
}

func (b *ProposalBuilder) WithPayoutCents(cents int64) *ProposalBuilder {
	b.PayoutCents = cents
	return b
}

func (b *ProposalBuilder) WithStatus(status domproposal.Status) *ProposalBuilder {
	b.Status = status
	return b
}

func (b *ProposalBuilder) WithHoldState(state domproposal.HoldState) *ProposalBuilder {
	b.HoldState = state
	return b
}

func (b *ProposalBuilder) WithShape(shape domproposal.SourceShape) *ProposalBuilder {
	b.Shape = shape
	return b
}

func (b *ProposalBuilder) WithNow(now time.Time) *ProposalBuilder {
	b.Now = now
	return b
}
