package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/infra"
	"stagebook/internal/pkg/clock"
	"stagebook/internal/pkg/errs"
)

// HoldCommands drives the hold lifecycle: request, respond, cancel,
// expire. Every state transition re-validates its precondition inside
// the transaction; validation done before Begin is advisory only.
type HoldCommands struct {
	pool      *pgxpool.Pool
	holds     HoldRepository
	proposals ProposalRepository
	requests  RequestRepository
	bookings  BookingRepository
	offers    OfferRepository
	notifier  Notifier
	clock     clock.Clock
}

func NewHoldCommands(
	pool *pgxpool.Pool,
	holds HoldRepository,
	proposals ProposalRepository,
	requests RequestRepository,
	bookings BookingRepository,
	offers OfferRepository,
	notifier Notifier,
	clk clock.Clock,
) *HoldCommands {
	return &HoldCommands{
		pool:      pool,
		holds:     holds,
		proposals: proposals,
		requests:  requests,
		bookings:  bookings,
		offers:    offers,
		notifier:  notifier,
		clock:     clk,
	}
}

// CreateHoldInput references the target through exactly one of the
// three document ids.
type CreateHoldInput struct {
	BookingID     *uuid.UUID
	RequestID     *uuid.UUID
	ProposalID    *uuid.UUID
	DurationHours int
	Reason        string
}

func (c *HoldCommands) CreateHold(ctx context.Context, requester party.Party, in CreateHoldInput) (*hold.Hold, error) {
	now := c.clock.Now()

	target, err := c.resolveTarget(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := c.ensureHoldable(ctx, target); err != nil {
		return nil, err
	}

	if _, err := c.holds.FindLiveByTarget(ctx, target.ID); err == nil {
		return nil, ErrHoldConflict
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	h, err := hold.NewHold(target, requester, in.DurationHours, in.Reason, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		return c.holds.Create(ctx, tx, h)
	})
	if err != nil {
		// The partial unique index catches the create that lost a race
		// with a concurrent hold on the same target.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrHoldConflict)
		}
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, c.holdCounterpart(ctx, target, requester), "hold requested", h.ID())
	return h, nil
}

func (c *HoldCommands) RespondToHold(ctx context.Context, responder party.Party, holdID uuid.UUID, action hold.ResponseAction) (*hold.Hold, error) {
	now := c.clock.Now()

	h, err := c.holds.FindByID(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrHoldNotFound)
		}
		return nil, err
	}
	if h.Requester().Equal(responder) {
		return nil, ErrNotAuthorized
	}

	switch action {
	case hold.ActionApprove:
		err = h.Approve(responder, now)
	case hold.ActionDecline:
		err = h.Decline(responder, now)
	default:
		return nil, ErrDomainValidation
	}
	if err != nil {
		return nil, errs.Mark(err, ErrHoldAlreadyResolved)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		ok, err := c.holds.UpdateIfStatus(ctx, tx, h, hold.StatusPending)
		if err != nil {
			return err
		}
		if !ok {
			return ErrHoldAlreadyResolved
		}
		if action == hold.ActionApprove {
			return c.freezeAround(ctx, tx, h.Target(), now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, h.Requester(), "hold "+string(h.Status()), h.ID())
	return h, nil
}

func (c *HoldCommands) CancelHold(ctx context.Context, requester party.Party, holdID uuid.UUID) (*hold.Hold, error) {
	now := c.clock.Now()

	h, err := c.holds.FindByID(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrHoldNotFound)
		}
		return nil, err
	}

	prev := h.Status()
	if err := h.Cancel(requester, now); err != nil {
		if errors.Is(err, hold.ErrNotRequester) {
			return nil, errs.Mark(err, ErrNotAuthorized)
		}
		return nil, errs.Mark(err, ErrHoldAlreadyResolved)
	}

	err = withTx(ctx, c.pool, func(tx pgx.Tx) error {
		ok, err := c.holds.UpdateIfStatus(ctx, tx, h, prev)
		if err != nil {
			return err
		}
		if !ok {
			return ErrHoldAlreadyResolved
		}
		if prev == hold.StatusActive {
			return c.unfreezeAround(ctx, tx, h.Target(), now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, c.notifier, c.holdCounterpart(ctx, h.Target(), requester), "hold cancelled", h.ID())
	return h, nil
}

// ExpireDueHolds transitions every overdue active hold and lifts the
// freeze it imposed. Run by the sweep; reads already treat overdue
// holds as expired, so latency here only affects the persisted state.
func (c *HoldCommands) ExpireDueHolds(ctx context.Context) (int, error) {
	now := c.clock.Now()

	due, err := c.holds.FindDueForExpiry(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, h := range due {
		if !h.ExpireIfDue(now) {
			continue
		}
		err := withTx(ctx, c.pool, func(tx pgx.Tx) error {
			ok, err := c.holds.UpdateIfStatus(ctx, tx, h, hold.StatusActive)
			if err != nil {
				return err
			}
			if !ok {
				return nil // resolved concurrently, nothing to lift
			}
			return c.unfreezeAround(ctx, tx, h.Target(), now)
		})
		if err != nil {
			slog.Warn("hold expiry sweep failed for hold", "hold_id", h.ID(), "error", err.Error())
			continue
		}
		expired++
	}
	return expired, nil
}

// resolveTarget maps the input reference onto a hold target. The id
// must identify exactly one document across all three tables, not
// merely one in the table the caller named.
func (c *HoldCommands) resolveTarget(ctx context.Context, in CreateHoldInput) (hold.Target, error) {
	var target hold.Target
	refs := 0
	if in.BookingID != nil {
		refs++
		target = hold.Target{Kind: hold.TargetBooking, ID: *in.BookingID}
	}
	if in.RequestID != nil {
		refs++
		target = hold.Target{Kind: hold.TargetRequest, ID: *in.RequestID}
	}
	if in.ProposalID != nil {
		refs++
		target = hold.Target{Kind: hold.TargetProposal, ID: *in.ProposalID}
	}
	if refs != 1 {
		return hold.Target{}, ErrAmbiguousHoldTarget
	}

	matched := make(map[hold.TargetKind]bool, 3)
	var err error
	if matched[hold.TargetBooking], err = c.bookings.Exists(ctx, target.ID); err != nil {
		return hold.Target{}, err
	}
	if matched[hold.TargetRequest], err = c.requests.Exists(ctx, target.ID); err != nil {
		return hold.Target{}, err
	}
	if matched[hold.TargetProposal], err = c.proposalOrOfferExists(ctx, target.ID); err != nil {
		return hold.Target{}, err
	}

	count := 0
	for _, ok := range matched {
		if ok {
			count++
		}
	}
	switch {
	case count == 0 || !matched[target.Kind]:
		return hold.Target{}, ErrHoldTargetNotFound
	case count > 1:
		return hold.Target{}, ErrAmbiguousHoldTarget
	}
	return target, nil
}

// ensureHoldable rejects holds whose underlying request is already
// settled.
func (c *HoldCommands) ensureHoldable(ctx context.Context, target hold.Target) error {
	reqID, err := c.requestFor(ctx, target)
	if err != nil || reqID == nil {
		return err
	}

	req, err := c.requests.FindByID(ctx, *reqID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	}
	if !req.IsOpen() {
		return ErrRequestSettled
	}

	accepted, err := c.proposals.HasAcceptedForRequest(ctx, *reqID)
	if err != nil {
		return err
	}
	if accepted {
		return ErrRequestSettled
	}
	return nil
}

func (c *HoldCommands) requestFor(ctx context.Context, target hold.Target) (*uuid.UUID, error) {
	switch target.Kind {
	case hold.TargetRequest:
		id := target.ID
		return &id, nil
	case hold.TargetProposal:
		p, err := c.loadProposal(ctx, target.ID)
		if err != nil || p == nil {
			return nil, err
		}
		return p.RequestID(), nil
	default:
		return nil, nil
	}
}

// loadProposal resolves a proposal id under either storage identity:
// the unified table first, then the legacy offer lifted in place.
func (c *HoldCommands) loadProposal(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	p, err := c.proposals.FindByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	o, err := c.offers.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return o.AsProposal(), nil
}

// proposalOrOfferExists checks the proposal identity under both
// storage shapes: the unified table first, then the legacy offers.
func (c *HoldCommands) proposalOrOfferExists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := c.proposals.Exists(ctx, id)
	if err != nil || ok {
		return ok, err
	}
	return c.offers.Exists(ctx, id)
}

// freezeAround marks competing proposals frozen for the duration of an
// approved hold. Legacy-shaped targets have no row in the unified
// table; only their siblings freeze.
func (c *HoldCommands) freezeAround(ctx context.Context, tx pgx.Tx, target hold.Target, now time.Time) error {
	switch target.Kind {
	case hold.TargetProposal:
		p, err := c.loadProposal(ctx, target.ID)
		if err != nil || p == nil {
			return err
		}
		if p.Shape() == proposal.ShapeRequestBid {
			if err := c.proposals.SetHoldState(ctx, tx, p.ID(), proposal.HoldHeld, now); err != nil {
				return err
			}
		}
		if reqID := p.RequestID(); reqID != nil {
			_, err := c.proposals.FreezeSiblings(ctx, tx, *reqID, p.ID(), now)
			return err
		}
		return nil
	case hold.TargetRequest:
		_, err := c.proposals.FreezeSiblings(ctx, tx, target.ID, uuid.Nil, now)
		return err
	default:
		return nil
	}
}

func (c *HoldCommands) unfreezeAround(ctx context.Context, tx pgx.Tx, target hold.Target, now time.Time) error {
	switch target.Kind {
	case hold.TargetProposal:
		p, err := c.loadProposal(ctx, target.ID)
		if err != nil || p == nil {
			return err
		}
		if p.IsAccepted() {
			return nil // settled while held, freeze outcome is moot
		}
		if p.Shape() == proposal.ShapeRequestBid {
			if err := c.proposals.SetHoldState(ctx, tx, p.ID(), proposal.HoldNone, now); err != nil {
				return err
			}
		}
		if reqID := p.RequestID(); reqID != nil {
			_, err := c.proposals.UnfreezeByRequest(ctx, tx, *reqID, now)
			return err
		}
		return nil
	case hold.TargetRequest:
		_, err := c.proposals.UnfreezeByRequest(ctx, tx, target.ID, now)
		return err
	default:
		return nil
	}
}

// holdCounterpart picks who gets notified about a hold: the party on
// the other side of the targeted document.
func (c *HoldCommands) holdCounterpart(ctx context.Context, target hold.Target, requester party.Party) party.Party {
	switch target.Kind {
	case hold.TargetProposal:
		p, err := c.loadProposal(ctx, target.ID)
		if err != nil || p == nil {
			return party.Party{}
		}
		if p.Proposer().Equal(requester) {
			return party.Party{Kind: opposite(p.Proposer().Kind), ID: p.CounterpartID()}
		}
		return p.Proposer()
	case hold.TargetRequest:
		req, err := c.requests.FindByID(ctx, target.ID)
		if err != nil {
			return party.Party{}
		}
		if !req.Owner().Equal(requester) {
			return req.Owner()
		}
		if t := req.TargetID(); t != nil {
			return party.Party{Kind: opposite(req.Owner().Kind), ID: *t}
		}
		return party.Party{}
	default:
		return party.Party{}
	}
}
