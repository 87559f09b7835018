//go:build unit

package timeline_test

import (
	"testing"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/timeline"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activeHold rehydrates an approved hold expiring relative to now.
func activeHold(kind hold.TargetKind, targetID uuid.UUID, now time.Time, ttl time.Duration) *hold.Hold {
	responder := party.NewArtist(uuid.New())
	responded := now.Add(-time.Hour)
	expires := now.Add(ttl)
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

func TestResolve(t *testing.T) {
	now := time.Now().UTC()
	venue := party.NewVenue(uuid.New())
	artist := party.NewArtist(uuid.New())

	requestRecord := builder.NewRequestBuilder().
		WithOwner(artist).
		WithTargetID(venue.ID).
		BuildStored()
	entry := timeline.RequestEntry(requestRecord)

	answering := func(status proposal.Status) *proposal.Proposal {
		return builder.NewProposalBuilder().
			WithRequestID(requestRecord.ID()).
			WithProposer(venue).
			WithCounterpartID(artist.ID).
			WithDate(requestRecord.Date()).
			WithStatus(status).
			BuildStored()
	}

	t.Run("booking entries resolve to pending with no competing set", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildStored()

		res := timeline.Resolve(timeline.BookingEntry(b), nil, nil, now)

		assert.Equal(t, timeline.StatusPending, res.Status)
		assert.Empty(t, res.Competing)
	})

	t.Run("pending proposals leave the date pending", func(t *testing.T) {
		res := timeline.Resolve(entry, []*proposal.Proposal{answering(proposal.StatusPending)}, nil, now)

		assert.Equal(t, timeline.StatusPending, res.Status)
		assert.Len(t, res.Competing, 1)
	})

	t.Run("an accepted proposal settles the date", func(t *testing.T) {
		res := timeline.Resolve(entry, []*proposal.Proposal{answering(proposal.StatusAccepted)}, nil, now)

		assert.Equal(t, timeline.StatusAccepted, res.Status)
	})

	t.Run("an active hold marks the date held", func(t *testing.T) {
		p := answering(proposal.StatusPending)
		h := activeHold(hold.TargetProposal, p.ID(), now, time.Hour)

		res := timeline.Resolve(entry, []*proposal.Proposal{p}, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusHold, res.Status)
	})

	t.Run("accepted outranks an active hold", func(t *testing.T) {
		accepted := answering(proposal.StatusAccepted)
		h := activeHold(hold.TargetProposal, accepted.ID(), now, time.Hour)

		res := timeline.Resolve(entry, []*proposal.Proposal{accepted}, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusAccepted, res.Status)
	})

	t.Run("an overdue hold reads as expired before the sweep runs", func(t *testing.T) {
		p := answering(proposal.StatusPending)
		h := activeHold(hold.TargetProposal, p.ID(), now, -time.Minute)

		res := timeline.Resolve(entry, []*proposal.Proposal{p}, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusPending, res.Status)
		assert.Empty(t, res.Warnings)
	})

	t.Run("a hold on an unknown document degrades to a warning", func(t *testing.T) {
		h := activeHold(hold.TargetProposal, uuid.New(), now, time.Hour)

		res := timeline.Resolve(entry, nil, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusPending, res.Status)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "unknown")
	})

	t.Run("a hold may target the request itself", func(t *testing.T) {
		h := activeHold(hold.TargetRequest, requestRecord.ID(), now, time.Hour)

		res := timeline.Resolve(entry, nil, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusHold, res.Status)
	})

	t.Run("declined proposals drop out of the competing set", func(t *testing.T) {
		res := timeline.Resolve(entry, []*proposal.Proposal{answering(proposal.StatusDeclined)}, nil, now)

		assert.Empty(t, res.Competing)
	})

	t.Run("a hold may address the lifted offer's legacy identity", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithVenueID(venue.ID).
			WithArtistID(artist.ID).
			WithRequestID(requestRecord.ID()).
			WithDate(requestRecord.Date()).
			BuildStored()
		lifted := o.AsProposal()
		h := activeHold(hold.TargetProposal, o.ID(), now, time.Hour)

		res := timeline.Resolve(entry, []*proposal.Proposal{lifted}, []*hold.Hold{h}, now)

		assert.Equal(t, timeline.StatusHold, res.Status)
	})
}

func TestResolveSyntheticEntries(t *testing.T) {
	now := time.Now().UTC()
	venue := party.NewVenue(uuid.New())
	artist := party.NewArtist(uuid.New())
	date := day(1)

	t.Run("the lifted offer competes on its own synthetic entry", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithVenueID(venue.ID).
			WithArtistID(artist.ID).
			WithDate(date).
			BuildStored()

		entries := timeline.Synthesize(timeline.Sources{Offers: []*offer.Offer{o}}, artist)
		require.Len(t, entries, 1)

		res := timeline.Resolve(entries[0], []*proposal.Proposal{o.AsProposal()}, nil, now)

		assert.Equal(t, timeline.StatusPending, res.Status)
		require.Len(t, res.Competing, 1)
		assert.Equal(t, o.ID(), res.Competing[0].ID())
	})

	t.Run("a rival bid on the same date competes by counterpart", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithVenueID(venue.ID).
			WithArtistID(artist.ID).
			WithDate(date).
			BuildStored()
		rival := builder.NewProposalBuilder().
			WithProposer(party.NewVenue(uuid.New())).
			WithCounterpartID(artist.ID).
			WithDate(date).
			BuildStored()

		entries := timeline.Synthesize(timeline.Sources{Offers: []*offer.Offer{o}}, artist)
		require.Len(t, entries, 1)

		res := timeline.Resolve(entries[0], []*proposal.Proposal{o.AsProposal(), rival}, nil, now)

		assert.Len(t, res.Competing, 2)
	})

	t.Run("bids on a contested pending-slot date compete with the booking claim", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			WithDate(date).
			WithSlots(booking.Slot{ArtistID: artist.ID, Role: booking.RoleSupport, Status: booking.SlotPending}).
			BuildStored()
		bid := builder.NewProposalBuilder().
			WithProposer(party.NewVenue(uuid.New())).
			WithCounterpartID(artist.ID).
			WithDate(date).
			BuildStored()

		entries := timeline.Synthesize(timeline.Sources{Bookings: []*booking.Booking{b}}, artist)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].BookingRef)

		res := timeline.Resolve(entries[0], []*proposal.Proposal{bid}, nil, now)

		assert.Len(t, res.Competing, 1)
	})
}

func TestHoldsFor(t *testing.T) {
	now := time.Now().UTC()
	venue := party.NewVenue(uuid.New())
	artist := party.NewArtist(uuid.New())

	requestRecord := builder.NewRequestBuilder().
		WithOwner(artist).
		WithTargetID(venue.ID).
		BuildStored()
	entry := timeline.RequestEntry(requestRecord)

	p := builder.NewProposalBuilder().
		WithRequestID(requestRecord.ID()).
		WithProposer(venue).
		WithCounterpartID(artist.ID).
		WithDate(requestRecord.Date()).
		BuildStored()

	routed := activeHold(hold.TargetProposal, p.ID(), now, time.Hour)
	unrouted := activeHold(hold.TargetRequest, uuid.New(), now, time.Hour)

	out := timeline.HoldsFor(entry, []*proposal.Proposal{p}, []*hold.Hold{routed, unrouted})

	require.Len(t, out, 1)
	assert.Equal(t, routed.ID(), out[0].ID())
}
