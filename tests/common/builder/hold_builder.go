//go:build unit || e2e

package builder

import (
	"time"

	domhold "stagebook/internal/domain/hold"
	"stagebook/internal/domain/party"
	reqdto "stagebook/internal/handler/dto/request"

	"github.com/google/uuid"
)

type HoldBuilder struct {
	TargetKind    domhold.TargetKind
	TargetID      uuid.UUID
	Requester     party.Party
	DurationHours int
	Reason        string
	Now           time.Time
}

func NewHoldBuilder() *HoldBuilder {
	return &HoldBuilder{
		TargetKind:    domhold.TargetRequest,
		TargetID:      uuid.New(),
		Requester:     party.NewVenue(uuid.New()),
		DurationHours: 48,
		Reason:        "waiting on routing confirmation",
		Now:           time.Now(),
	}
}

func (b *HoldBuilder) With(mutate func(*HoldBuilder)) *HoldBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *HoldBuilder) BuildDomain() (*domhold.Hold, error) {
	target := domhold.Target{Kind: b.TargetKind, ID: b.TargetID}
	return domhold.NewHold(target, b.Requester, b.DurationHours, b.Reason, b.Now)
}

func (b *HoldBuilder) BuildCreateRequestDTO() reqdto.CreateHoldRequest {
	req := reqdto.CreateHoldRequest{
		DurationHours: b.DurationHours,
		Reason:        b.Reason,
	}
	id := b.TargetID
	switch b.TargetKind {
	case domhold.TargetBooking:
		req.BookingID = &id
	case domhold.TargetRequest:
		req.RequestID = &id
	case domhold.TargetProposal:
		req.ProposalID = &id
	}
	return req
}

// Fluent builder methods
func (b *HoldBuilder) WithTarget(kind domhold.TargetKind, id uuid.UUID) *HoldBuilder {
	b.TargetKind = kind
	b.TargetID = id
	return b
}

func (b *HoldBuilder) WithRequester(p party.Party) *HoldBuilder {
	b.Requester = p
	return b
}

func (b *HoldBuilder) WithDurationHours(hours int) *HoldBuilder {
	b.DurationHours = hours
	return b
}

func (b *HoldBuilder) WithReason(reason string) *HoldBuilder {
	b.Reason = reason
	return b
}

func (b *HoldBuilder) WithNow(now time.Time) *HoldBuilder {
	b.Now = now
	return b
}
