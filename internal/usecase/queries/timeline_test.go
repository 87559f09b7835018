//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
	"stagebook/internal/pkg/clock"
	"stagebook/internal/usecase/queries"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookings []*booking.Booking

func (s stubBookings) FindForParty(context.Context, party.Party, time.Time, time.Time) ([]*booking.Booking, error) {
	return s, nil
}

type stubRequests []*request.Request

func (s stubRequests) FindForParty(context.Context, party.Party, time.Time, time.Time) ([]*request.Request, error) {
	return s, nil
}

type stubOffers []*offer.Offer

func (s stubOffers) FindForParty(context.Context, party.Party, time.Time, time.Time) ([]*offer.Offer, error) {
	return s, nil
}

type stubProposals []*proposal.Proposal

func (s stubProposals) FindForParty(context.Context, party.Party, time.Time, time.Time) ([]*proposal.Proposal, error) {
	return s, nil
}

type stubHolds []*hold.Hold

func (s stubHolds) FindLiveRelevant(context.Context, party.Party, []uuid.UUID) ([]*hold.Hold, error) {
	return s, nil
}

type queriesFixture struct {
	bookings  stubBookings
	requests  stubRequests
	offers    stubOffers
	proposals stubProposals
	holds     stubHolds
}

func (f queriesFixture) build(now time.Time) *queries.TimelineQueries {
	return queries.NewTimelineQueries(
		f.bookings, f.requests, f.offers, f.proposals, f.holds,
		clock.NewMockClock(now),
	)
}

func TestGetTimeline(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	venue := party.NewVenue(uuid.New())
	artist := party.NewArtist(uuid.New())
	date := booking.NormalizeDate(now.AddDate(0, 1, 0))

	t.Run("bookings and requests merge into one ordered view", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithVenueID(venue.ID).WithDate(date).BuildStored()
		r := builder.NewRequestBuilder().
			WithOwner(artist).
			WithTargetID(venue.ID).
			WithDate(date.AddDate(0, 0, 1)).
			BuildStored()
		p := builder.NewProposalBuilder().
			WithRequestID(r.ID()).
			WithProposer(venue).
			WithCounterpartID(artist.ID).
			WithDate(r.Date()).
			BuildStored()

		q := queriesFixture{
			bookings:  stubBookings{b},
			requests:  stubRequests{r},
			proposals: stubProposals{p},
		}.build(now)

		view, err := q.GetTimeline(ctx, venue, time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, "venue", view.Viewpoint)
		assert.Equal(t, venue.ID, view.PartyID)
		require.Len(t, view.Entries, 2)

		assert.Equal(t, "booking", view.Entries[0].Kind)
		assert.Equal(t, "confirmed", view.Entries[0].Status)
		assert.Equal(t, "request", view.Entries[1].Kind)
		assert.Equal(t, "pending", view.Entries[1].Status)
		require.Len(t, view.Entries[1].Competing, 1)
		assert.Equal(t, p.ID(), view.Entries[1].Competing[0].ID)
	})

	t.Run("a double-written bid surfaces once, unified shape first", func(t *testing.T) {
		r := builder.NewRequestBuilder().
			WithOwner(artist).
			WithTargetID(venue.ID).
			WithDate(date).
			BuildStored()
		o := builder.NewOfferBuilder().
			WithVenueID(venue.ID).
			WithArtistID(artist.ID).
			WithRequestID(r.ID()).
			WithDate(date).
			BuildStored()
		p := builder.NewProposalBuilder().
			WithRequestID(r.ID()).
			WithProposer(venue).
			WithCounterpartID(artist.ID).
			WithDate(date).
			BuildStored()

		q := queriesFixture{
			requests:  stubRequests{r},
			offers:    stubOffers{o},
			proposals: stubProposals{p},
		}.build(now)

		view, err := q.GetTimeline(ctx, artist, time.Time{}, time.Time{})
		require.NoError(t, err)

		require.Len(t, view.Entries, 1)
		require.Len(t, view.Entries[0].Competing, 1)
		assert.Equal(t, "request_bid", view.Entries[0].Competing[0].SourceShape)
	})

	t.Run("an active hold resolves the date as held", func(t *testing.T) {
		r := builder.NewRequestBuilder().
			WithOwner(artist).
			WithTargetID(venue.ID).
			WithDate(date).
			BuildStored()
		p := builder.NewProposalBuilder().
			WithRequestID(r.ID()).
			WithProposer(venue).
			WithCounterpartID(artist.ID).
			WithDate(date).
			WithHoldState(proposal.HoldHeld).
			BuildStored()
		h := newActiveHold(hold.TargetProposal, p.ID(), now)

		q := queriesFixture{
			requests:  stubRequests{r},
			proposals: stubProposals{p},
			holds:     stubHolds{h},
		}.build(now)

		view, err := q.GetTimeline(ctx, artist, time.Time{}, time.Time{})
		require.NoError(t, err)

		require.Len(t, view.Entries, 1)
		assert.Equal(t, "hold", view.Entries[0].Status)
		assert.Empty(t, view.Warnings)
	})

	t.Run("a live hold nothing routes surfaces a top-level warning", func(t *testing.T) {
		h := newActiveHold(hold.TargetRequest, uuid.New(), now)

		q := queriesFixture{holds: stubHolds{h}}.build(now)

		view, err := q.GetTimeline(ctx, artist, time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.Empty(t, view.Entries)
		require.Len(t, view.Warnings, 1)
		assert.Contains(t, view.Warnings[0], h.ID().String())
	})

	t.Run("canonical defaults ride every request entry", func(t *testing.T) {
		r := builder.NewRequestBuilder().WithOwner(artist).WithDate(date).BuildStored()

		q := queriesFixture{requests: stubRequests{r}}.build(now)

		view, err := q.GetTimeline(ctx, artist, time.Time{}, time.Time{})
		require.NoError(t, err)

		require.Len(t, view.Entries, 1)
		assert.Equal(t, "all_ages", view.Entries[0].AgeRestriction)
		assert.False(t, view.Entries[0].HouseEquipment)
	})
}

func TestGetMonthBuckets(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	venue := party.NewVenue(uuid.New())

	t.Run("zero anchor defaults to the current month", func(t *testing.T) {
		q := queriesFixture{}.build(now)

		view, err := q.GetMonthBuckets(ctx, venue, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), view.Anchor)
		require.Len(t, view.Buckets, 12)
		assert.Equal(t, "Mar", view.Buckets[0].Label)
		assert.Equal(t, "Jan 2027", view.Buckets[10].Label)
	})

	t.Run("counts are distinct dates within each month", func(t *testing.T) {
		contested := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
		b := builder.NewBookingBuilder().WithVenueID(venue.ID).WithDate(contested).BuildStored()
		r := builder.NewRequestBuilder().WithOwner(venue).WithDate(contested).BuildStored()

		q := queriesFixture{
			bookings: stubBookings{b},
			requests: stubRequests{r},
		}.build(now)

		view, err := q.GetMonthBuckets(ctx, venue, now)
		require.NoError(t, err)

		require.Len(t, view.Buckets, 12)
		assert.Equal(t, 0, view.Buckets[0].DateCount)
		assert.Equal(t, 1, view.Buckets[1].DateCount)
	})
}

func newActiveHold(kind hold.TargetKind, targetID uuid.UUID, now time.Time) *hold.Hold {
	responder := party.NewArtist(uuid.New())
	responded := now.Add(-time.Hour)
	expires := now.Add(24 * time.Hour)
	return hold.ReconstructHold(
		uuid.New(),
		hold.Target{Kind: kind, ID: targetID},
		party.NewVenue(uuid.New()),
		&responder,
		48,
		"",
		hold.StatusActive,
		now.Add(-2*time.Hour),
		&responded,
		&expires,
	)
}
