package timeline

import (
	"fmt"
	"time"

	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/proposal"

	"github.com/google/uuid"
)

// ResolvedStatus is the single consistent status a date presents.
type ResolvedStatus string

const (
	StatusPending  ResolvedStatus = "pending"
	StatusHold     ResolvedStatus = "hold"
	StatusAccepted ResolvedStatus = "accepted"
)

// Resolution is the aggregate over every proposal competing for one
// request entry.
type Resolution struct {
	Status    ResolvedStatus
	Competing []*proposal.Proposal
	Warnings  []string
}

// Resolve ranks the proposals targeting a request entry and computes
// one status for the date. Pure: callers re-fetch after any mutation.
//
// Precedence, highest first: accepted > active hold > frozen > pending.
// Holds whose expiry has passed count as expired even before the sweep
// has persisted the transition. Hold targets that no longer resolve to
// a known document degrade to pending and surface a warning, never an
// error.
func Resolve(entry Entry, proposals []*proposal.Proposal, holds []*hold.Hold, now time.Time) Resolution {
	res := Resolution{Status: StatusPending}
	if entry.Kind != KindRequest {
		return res
	}

	competing := competingFor(entry, proposals)
	known := knownDocuments(entry, competing)

	accepted := false
	for _, p := range competing {
		if p.IsAccepted() {
			accepted = true
		}
	}

	holdActive := false
	for _, h := range holds {
		if !h.IsActiveAt(now) {
			continue
		}
		if _, ok := known[h.Target().ID]; !ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("hold %s references unknown %s %s", h.ID(), h.Target().Kind, h.Target().ID))
			continue
		}
		holdActive = true
	}

	switch {
	case accepted:
		res.Status = StatusAccepted
	case holdActive:
		res.Status = StatusHold
	default:
		res.Status = StatusPending
	}

	res.Competing = competing
	return res
}

// HoldsFor selects the holds addressed to one of this entry's
// documents. Callers route each fetched hold to at most one entry;
// holds left unrouted reference documents no entry knows about.
func HoldsFor(entry Entry, proposals []*proposal.Proposal, holds []*hold.Hold) []*hold.Hold {
	known := knownDocuments(entry, competingFor(entry, proposals))
	var out []*hold.Hold
	for _, h := range holds {
		if _, ok := known[h.Target().ID]; ok {
			out = append(out, h)
		}
	}
	return out
}

// competingFor selects the live canonical proposals answering this
// entry. Matching is by request id for real requests; synthetic
// entries (promoted offers, pending booking slots) match by date and
// counterpart since no request record exists.
func competingFor(entry Entry, proposals []*proposal.Proposal) []*proposal.Proposal {
	var out []*proposal.Proposal
	for _, p := range proposals {
		if !p.IsLive() {
			continue
		}
		if matchesEntry(entry, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesEntry(entry Entry, p *proposal.Proposal) bool {
	if entry.Request != nil && !entry.Synthetic {
		return p.RequestID() != nil && *p.RequestID() == entry.Request.ID()
	}

	if !p.Date().Equal(entry.Date) {
		return false
	}

	// Synthetic venue-offer entry: the lifted offer itself is the bid.
	if entry.Request != nil && entry.Synthetic {
		if p.ID() == entry.Request.ID() {
			return true
		}
		target := entry.Request.TargetID()
		return target != nil && p.CounterpartID() == *target
	}

	// Pending slot in a booking: bids addressed to this artist on the
	// contested date compete with the booking claim.
	return entry.BookingRef != nil
}

// knownDocuments is the resolution set for hold targets: the request
// itself, the backing booking, and every competing proposal (under
// both of its storage identities).
func knownDocuments(entry Entry, competing []*proposal.Proposal) map[uuid.UUID]struct{} {
	known := make(map[uuid.UUID]struct{}, len(competing)+2)
	if entry.Request != nil {
		known[entry.Request.ID()] = struct{}{}
	}
	if entry.BookingRef != nil {
		known[*entry.BookingRef] = struct{}{}
	}
	for _, p := range competing {
		known[p.ID()] = struct{}{}
		if legacy := p.LegacyOfferID(); legacy != nil {
			known[*legacy] = struct{}{}
		}
	}
	return known
}
