package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
	"stagebook/internal/infra"
	"stagebook/internal/pkg/clock"
	"stagebook/internal/pkg/errs"
)

// ProposalCommands covers the unified write path for bids. The legacy
// offer table is never written here; it survives as read-side input
// only.
type ProposalCommands struct {
	pool      *pgxpool.Pool
	proposals ProposalRepository
	requests  RequestRepository
	bookings  BookingRepository
	notifier  Notifier
	clock     clock.Clock
}

func NewProposalCommands(
	pool *pgxpool.Pool,
	proposals ProposalRepository,
	requests RequestRepository,
	bookings BookingRepository,
	notifier Notifier,
	clk clock.Clock,
) *ProposalCommands {
	return &ProposalCommands{
		pool:      pool,
		proposals: proposals,
		requests:  requests,
		bookings:  bookings,
		notifier:  notifier,
		clock:     clk,
	}
}

type SubmitProposalInput struct {
	RequestID     *uuid.UUID
	CounterpartID uuid.UUID
	Date          time.Time
	PayoutCents   int64
}

func (c *ProposalCommands) SubmitProposal(ctx context.Context, proposer party.Party, in SubmitProposalInput) (*proposal.Proposal, error) {
	now := c.clock.Now()

	counterpartID := in.CounterpartID
	date := in.Date
	if in.RequestID != nil {
		req, err := c.findOpenRequest(ctx, *in.RequestID)
		if err != nil {
			return nil, err
		}
		if req.Owner().Equal(proposer) {
			return nil, ErrNotAuthorized
		}
		if t := req.TargetID(); t != nil && *t != proposer.ID {
			return nil, ErrNotAuthorized
		}
		counterpartID = req.Owner().ID
		date = req.Date()
	}

	p, err := proposal.NewProposal(in.RequestID, proposer, counterpartID, date, in.PayoutCents, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		return c.proposals.Create(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, party.Party{Kind: opposite(proposer.Kind), ID: counterpartID}, "proposal received", p.ID())
	return p, nil
}

// AcceptProposal settles the contest: the winning bid is accepted, its
// request closes, and a confirmed booking materializes, all in one
// transaction.
func (c *ProposalCommands) AcceptProposal(ctx context.Context, actor party.Party, id uuid.UUID) (*booking.Booking, error) {
	now := c.clock.Now()

	p, err := c.authorizedProposal(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if p.HoldState() == proposal.HoldFrozen {
		return nil, ErrProposalFrozen
	}

	b, err := bookingFromProposal(p, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		ok, err := c.proposals.UpdateStatusIfPending(ctx, tx, p.ID(), proposal.StatusAccepted, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProposalNotPending
		}
		if p.HoldState() == proposal.HoldHeld {
			if err := c.proposals.SetHoldState(ctx, tx, p.ID(), proposal.HoldAcceptedHeld, now); err != nil {
				return err
			}
		}
		if reqID := p.RequestID(); reqID != nil {
			if _, err := c.requests.CloseIfOpen(ctx, tx, *reqID, now); err != nil {
				return err
			}
		}
		return c.bookings.Create(ctx, tx, b)
	})
	if err != nil {
		// The one-accepted-per-request index rejects the second accept
		// in a race; report it as a settled request.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrRequestSettled)
		}
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, p.Proposer(), "proposal accepted", p.ID())
	return b, nil
}

func (c *ProposalCommands) DeclineProposal(ctx context.Context, actor party.Party, id uuid.UUID) (*proposal.Proposal, error) {
	now := c.clock.Now()

	p, err := c.authorizedProposal(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := p.Decline(now); err != nil {
		return nil, errs.Mark(err, ErrProposalNotPending)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		ok, err := c.proposals.UpdateStatusIfPending(ctx, tx, p.ID(), proposal.StatusDeclined, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProposalNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, p.Proposer(), "proposal declined", p.ID())
	return p, nil
}

func (c *ProposalCommands) findOpenRequest(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	req, err := c.requests.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, err
	}
	if !req.IsOpen() {
		return nil, ErrRequestNotOpen
	}
	return req, nil
}

// authorizedProposal loads a pending-side proposal and checks the
// actor sits on the receiving end of it.
func (c *ProposalCommands) authorizedProposal(ctx context.Context, actor party.Party, id uuid.UUID) (*proposal.Proposal, error) {
	p, err := c.proposals.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProposalNotFound)
		}
		return nil, err
	}

	if reqID := p.RequestID(); reqID != nil {
		req, err := c.requests.FindByID(ctx, *reqID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrRequestNotFound)
			}
			return nil, err
		}
		if !req.Owner().Equal(actor) {
			return nil, ErrNotAuthorized
		}
		return p, nil
	}

	if p.CounterpartID() != actor.ID || p.Proposer().Kind == actor.Kind {
		return nil, ErrNotAuthorized
	}
	return p, nil
}

func bookingFromProposal(p *proposal.Proposal, now time.Time) (*booking.Booking, error) {
	venueID := p.Proposer().ID
	artistID := p.CounterpartID()
	if p.Proposer().IsArtist() {
		venueID, artistID = p.CounterpartID(), p.Proposer().ID
	}

	payout := p.PayoutCents()
	slot := booking.Slot{
		ArtistID:    artistID,
		Role:        booking.RoleHeadliner,
		Status:      booking.SlotConfirmed,
		PayoutCents: &payout,
	}
	return booking.NewBooking(venueID, p.Date(), []booking.Slot{slot}, now)
}
