//go:build unit

package proposal_test

import (
	"testing"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ProposalBuilder)
	errIs  error
}

func TestProposal(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewProposalBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, proposal.StatusPending, actual.Status())
		assert.Equal(t, proposal.HoldNone, actual.HoldState())
		assert.Equal(t, proposal.ShapeRequestBid, actual.Shape())
		assert.True(t, actual.IsLive())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing proposer",
				mutate: func(b *builder.ProposalBuilder) { b.Proposer = party.Party{} },
				errIs:  proposal.ErrMissingProposer,
			},
			{
				name:   "zero date",
				mutate: func(b *builder.ProposalBuilder) { b.Date = time.Time{} },
				errIs:  proposal.ErrMissingDate,
			},
			{
				name:   "negative payout",
				mutate: func(b *builder.ProposalBuilder) { b.WithPayoutCents(-1) },
				errIs:  proposal.ErrNegativePayout,
			},
			{
				name:   "zero payout is allowed",
				mutate: func(b *builder.ProposalBuilder) { b.WithPayoutCents(0) },
			},
		})
	})

	t.Run("date is normalized to a whole day", func(t *testing.T) {
		noisy := time.Date(2026, 10, 3, 21, 45, 12, 0, time.FixedZone("JST", 9*3600))
		p, err := builder.NewProposalBuilder().WithDate(noisy).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), p.Date())
	})
}

func TestProposalIdentityKey(t *testing.T) {
	proposer := party.NewVenue(uuid.New())
	counterpart := uuid.New()
	date := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

	t.Run("same tuple yields the same key across shapes", func(t *testing.T) {
		bid := builder.NewProposalBuilder().
			WithProposer(proposer).WithCounterpartID(counterpart).WithDate(date).
			BuildStored()
		legacy := builder.NewProposalBuilder().
			WithProposer(proposer).WithCounterpartID(counterpart).WithDate(date).
			WithShape(proposal.ShapeLegacyOffer).WithLegacyOfferID(uuid.New()).
			BuildStored()

		assert.Equal(t, bid.IdentityKey(), legacy.IdentityKey())
	})

	t.Run("different date yields a different key", func(t *testing.T) {
		a := builder.NewProposalBuilder().
			WithProposer(proposer).WithCounterpartID(counterpart).WithDate(date).
			BuildStored()
		b := builder.NewProposalBuilder().
			WithProposer(proposer).WithCounterpartID(counterpart).WithDate(date.AddDate(0, 0, 1)).
			BuildStored()

		assert.NotEqual(t, a.IdentityKey(), b.IdentityKey())
	})
}

func TestProposalTransitions(t *testing.T) {
	now := time.Now()

	t.Run("accept from pending", func(t *testing.T) {
		p := builder.NewProposalBuilder().BuildStored()

		require.NoError(t, p.Accept(now))
		assert.Equal(t, proposal.StatusAccepted, p.Status())
		assert.True(t, p.IsAccepted())
		assert.True(t, p.IsLive())
	})

	t.Run("decline from pending", func(t *testing.T) {
		p := builder.NewProposalBuilder().BuildStored()

		require.NoError(t, p.Decline(now))
		assert.Equal(t, proposal.StatusDeclined, p.Status())
		assert.False(t, p.IsLive())
	})

	t.Run("cancel from pending", func(t *testing.T) {
		p := builder.NewProposalBuilder().BuildStored()

		require.NoError(t, p.Cancel(now))
		assert.Equal(t, proposal.StatusCancelled, p.Status())
		assert.False(t, p.IsLive())
	})

	t.Run("accept is rejected once settled", func(t *testing.T) {
		p := builder.NewProposalBuilder().WithStatus(proposal.StatusDeclined).BuildStored()

		require.ErrorIs(t, p.Accept(now), proposal.ErrNotPending)
	})

	t.Run("decline is rejected once settled", func(t *testing.T) {
		p := builder.NewProposalBuilder().WithStatus(proposal.StatusAccepted).BuildStored()

		require.ErrorIs(t, p.Decline(now), proposal.ErrNotPending)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewProposalBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
