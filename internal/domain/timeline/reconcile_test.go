//go:build unit

package timeline_test

import (
	"testing"

	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/timeline"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalProposals(t *testing.T) {
	venue := party.NewVenue(uuid.New())
	artistID := uuid.New()
	date := day(1)

	t.Run("the unified shape wins over its legacy duplicate", func(t *testing.T) {
		o := builder.NewOfferBuilder().
			WithVenueID(venue.ID).
			WithArtistID(artistID).
			WithDate(date).
			BuildStored()
		p := builder.NewProposalBuilder().
			WithProposer(venue).
			WithCounterpartID(artistID).
			WithDate(date).
			WithHoldState(proposal.HoldHeld).
			BuildStored()

		out := timeline.CanonicalProposals([]*offer.Offer{o}, []*proposal.Proposal{p})

		require.Len(t, out, 1)
		assert.Equal(t, p.ID(), out[0].ID())
		assert.Equal(t, proposal.ShapeRequestBid, out[0].Shape())
		assert.Equal(t, proposal.HoldHeld, out[0].HoldState())
	})

	t.Run("a lone legacy offer is lifted under its own id", func(t *testing.T) {
		o := builder.NewOfferBuilder().WithArtistID(artistID).BuildStored()

		out := timeline.CanonicalProposals([]*offer.Offer{o}, nil)

		require.Len(t, out, 1)
		assert.Equal(t, o.ID(), out[0].ID())
		assert.Equal(t, proposal.ShapeLegacyOffer, out[0].Shape())
		require.NotNil(t, out[0].LegacyOfferID())
		assert.Equal(t, o.ID(), *out[0].LegacyOfferID())
	})

	t.Run("distinct tuples both survive", func(t *testing.T) {
		o := builder.NewOfferBuilder().WithVenueID(venue.ID).WithArtistID(artistID).WithDate(date).BuildStored()
		p := builder.NewProposalBuilder().
			WithProposer(venue).
			WithCounterpartID(artistID).
			WithDate(day(2)).
			BuildStored()

		out := timeline.CanonicalProposals([]*offer.Offer{o}, []*proposal.Proposal{p})

		assert.Len(t, out, 2)
	})

	t.Run("a live resubmission shadows its cancelled predecessor", func(t *testing.T) {
		cancelled := builder.NewProposalBuilder().
			WithProposer(venue).
			WithCounterpartID(artistID).
			WithDate(date).
			WithStatus(proposal.StatusCancelled).
			BuildStored()
		resubmitted := builder.NewProposalBuilder().
			WithProposer(venue).
			WithCounterpartID(artistID).
			WithDate(date).
			BuildStored()

		out := timeline.CanonicalProposals(nil, []*proposal.Proposal{cancelled, resubmitted})

		require.Len(t, out, 1)
		assert.Equal(t, resubmitted.ID(), out[0].ID())
		assert.True(t, out[0].IsLive())
	})

	t.Run("outputs never alias the inputs", func(t *testing.T) {
		p := builder.NewProposalBuilder().WithProposer(venue).WithCounterpartID(artistID).BuildStored()

		out := timeline.CanonicalProposals(nil, []*proposal.Proposal{p})

		require.Len(t, out, 1)
		assert.NotSame(t, p, out[0])
	})
}
