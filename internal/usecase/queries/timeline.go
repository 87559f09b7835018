package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
	"stagebook/internal/domain/timeline"
	"stagebook/internal/pkg/clock"
	"stagebook/internal/pkg/errs"
)

type BookingReader interface {
	FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*booking.Booking, error)
}

type RequestReader interface {
	FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*request.Request, error)
}

type OfferReader interface {
	FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*offer.Offer, error)
}

type ProposalReader interface {
	FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*proposal.Proposal, error)
}

type HoldReader interface {
	FindLiveRelevant(ctx context.Context, viewpoint party.Party, targetIDs []uuid.UUID) ([]*hold.Hold, error)
}

// TimelineQueries assembles the read side: raw records in, one
// reconciled projection out. Nothing here writes.
type TimelineQueries struct {
	bookings  BookingReader
	requests  RequestReader
	offers    OfferReader
	proposals ProposalReader
	holds     HoldReader
	clock     clock.Clock
}

func NewTimelineQueries(
	bookings BookingReader,
	requests RequestReader,
	offers OfferReader,
	proposals ProposalReader,
	holds HoldReader,
	clk clock.Clock,
) *TimelineQueries {
	return &TimelineQueries{
		bookings:  bookings,
		requests:  requests,
		offers:    offers,
		proposals: proposals,
		holds:     holds,
		clock:     clk,
	}
}

// GetTimeline computes the unified timeline for one party over a date
// range. Zero from/to default to the rolling window anchored at the
// current month.
func (q *TimelineQueries) GetTimeline(ctx context.Context, viewpoint party.Party, from, to time.Time) (*TimelineView, error) {
	now := q.clock.Now()
	from, to = normalizeWindow(from, to, now)

	src, err := q.fetchSources(ctx, viewpoint, from, to)
	if err != nil {
		return nil, err
	}

	canonical := timeline.CanonicalProposals(src.Offers, src.Proposals)
	entries := timeline.Synthesize(src, viewpoint)

	holds, err := q.holds.FindLiveRelevant(ctx, viewpoint, documentIDs(entries, canonical))
	if err != nil {
		return nil, errs.Wrap(err, "failed to load live holds")
	}

	view := &TimelineView{
		Viewpoint: viewpoint.Kind.String(),
		PartyID:   viewpoint.ID,
		Entries:   make([]EntryView, 0, len(entries)),
	}

	routed := make(map[uuid.UUID]struct{}, len(holds))
	for _, e := range entries {
		if e.Kind != timeline.KindRequest {
			v := entryViewFrom(e, timeline.Resolution{})
			v.Status = string(e.Booking.Status())
			view.Entries = append(view.Entries, v)
			continue
		}

		entryHolds := timeline.HoldsFor(e, canonical, holds)
		for _, h := range entryHolds {
			routed[h.ID()] = struct{}{}
		}
		res := timeline.Resolve(e, canonical, entryHolds, now)
		view.Entries = append(view.Entries, entryViewFrom(e, res))
	}

	// Holds left unrouted point at documents no entry resolves. They
	// must not block anything, but the inconsistency is surfaced.
	for _, h := range holds {
		if _, ok := routed[h.ID()]; ok {
			continue
		}
		if !h.IsLive(now) {
			continue
		}
		view.Warnings = append(view.Warnings,
			fmt.Sprintf("hold %s references unknown %s %s", h.ID(), h.Target().Kind, h.Target().ID))
	}

	return view, nil
}

// GetMonthBuckets computes the rolling month navigation strip. Every
// month in the window is present, empty or not.
func (q *TimelineQueries) GetMonthBuckets(ctx context.Context, viewpoint party.Party, anchor time.Time) (*MonthBucketsView, error) {
	if anchor.IsZero() {
		anchor = q.clock.Now()
	}
	from := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, timeline.WindowMonths, 0)

	src, err := q.fetchSources(ctx, viewpoint, from, to)
	if err != nil {
		return nil, err
	}

	entries := timeline.Synthesize(src, viewpoint)
	buckets := timeline.Bucket(entries, anchor)

	view := &MonthBucketsView{
		Anchor:  from,
		Buckets: make([]MonthBucketView, 0, len(buckets)),
	}
	for _, b := range buckets {
		view.Buckets = append(view.Buckets, MonthBucketView{
			Year:      b.Year,
			Month:     int(b.Month),
			Label:     b.Label,
			DateCount: b.DateCount,
		})
	}
	return view, nil
}

func (q *TimelineQueries) fetchSources(ctx context.Context, viewpoint party.Party, from, to time.Time) (timeline.Sources, error) {
	var src timeline.Sources
	var err error

	if src.Bookings, err = q.bookings.FindForParty(ctx, viewpoint, from, to); err != nil {
		return src, errs.Wrap(err, "failed to load bookings")
	}
	if src.Requests, err = q.requests.FindForParty(ctx, viewpoint, from, to); err != nil {
		return src, errs.Wrap(err, "failed to load requests")
	}
	if src.Offers, err = q.offers.FindForParty(ctx, viewpoint, from, to); err != nil {
		return src, errs.Wrap(err, "failed to load offers")
	}
	if src.Proposals, err = q.proposals.FindForParty(ctx, viewpoint, from, to); err != nil {
		return src, errs.Wrap(err, "failed to load proposals")
	}
	return src, nil
}

func normalizeWindow(from, to, now time.Time) (time.Time, time.Time) {
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDate(0, timeline.WindowMonths, 0)
	}
	return from, to
}

// documentIDs is every identity a hold could legitimately point at
// within the window: bookings, requests, and both identities of each
// canonical proposal.
func documentIDs(entries []timeline.Entry, canonical []*proposal.Proposal) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	add := func(id uuid.UUID) {
		if id != uuid.Nil {
			seen[id] = struct{}{}
		}
	}
	for _, e := range entries {
		add(e.SourceID())
	}
	for _, p := range canonical {
		add(p.ID())
		if legacy := p.LegacyOfferID(); legacy != nil {
			add(*legacy)
		}
	}
	ids := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}
