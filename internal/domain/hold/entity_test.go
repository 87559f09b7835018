//go:build unit

package hold_test

import (
	"testing"
	"time"

	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/party"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.HoldBuilder)
	errIs  error
}

func TestHold(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, hold.StatusPending, actual.Status())
		assert.False(t, actual.RequestedAt().IsZero())
		assert.Nil(t, actual.Responder())
		assert.Nil(t, actual.RespondedAt())
		assert.Nil(t, actual.ExpiresAt())
	})

	t.Run("duration validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum duration",
				mutate: func(b *builder.HoldBuilder) { b.WithDurationHours(0) },
				errIs:  hold.ErrInvalidDuration,
			},
			{
				name:   "minimum valid duration",
				mutate: func(b *builder.HoldBuilder) { b.WithDurationHours(1) },
			},
			{
				name:   "maximum valid duration",
				mutate: func(b *builder.HoldBuilder) { b.WithDurationHours(168) },
			},
			{
				name:   "above maximum duration",
				mutate: func(b *builder.HoldBuilder) { b.WithDurationHours(169) },
				errIs:  hold.ErrInvalidDuration,
			},
			{
				name:   "negative duration",
				mutate: func(b *builder.HoldBuilder) { b.WithDurationHours(-1) },
				errIs:  hold.ErrInvalidDuration,
			},
		})
	})

	t.Run("target and requester validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "invalid target kind",
				mutate: func(b *builder.HoldBuilder) { b.TargetKind = "venue" },
				errIs:  hold.ErrInvalidTargetKind,
			},
			{
				name:   "missing target id",
				mutate: func(b *builder.HoldBuilder) { b.TargetID = uuid.Nil },
				errIs:  hold.ErrMissingTarget,
			},
			{
				name:   "missing requester",
				mutate: func(b *builder.HoldBuilder) { b.Requester = party.Party{} },
				errIs:  hold.ErrMissingRequester,
			},
			{
				name:   "proposal target",
				mutate: func(b *builder.HoldBuilder) { b.WithTarget(hold.TargetProposal, uuid.New()) },
			},
			{
				name:   "booking target",
				mutate: func(b *builder.HoldBuilder) { b.WithTarget(hold.TargetBooking, uuid.New()) },
			},
		})
	})
}

func TestHoldApprove(t *testing.T) {
	now := time.Now()
	responder := party.NewArtist(uuid.New())

	t.Run("approval activates and stamps expiry from the duration", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().WithDurationHours(48).WithNow(now).BuildDomain()
		require.NoError(t, err)

		respondedAt := now.Add(2 * time.Hour)
		require.NoError(t, h.Approve(responder, respondedAt))

		assert.Equal(t, hold.StatusActive, h.Status())
		require.NotNil(t, h.Responder())
		assert.Equal(t, responder, *h.Responder())
		require.NotNil(t, h.RespondedAt())
		assert.Equal(t, respondedAt, *h.RespondedAt())
		require.NotNil(t, h.ExpiresAt())
		assert.Equal(t, respondedAt.Add(48*time.Hour), *h.ExpiresAt())
	})

	t.Run("approving twice is already resolved", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Approve(responder, now))
		require.ErrorIs(t, h.Approve(responder, now), hold.ErrAlreadyResolved)
	})

	t.Run("approving a declined hold fails", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Decline(responder, now))
		require.ErrorIs(t, h.Approve(responder, now), hold.ErrAlreadyResolved)
	})
}

func TestHoldDecline(t *testing.T) {
	now := time.Now()
	responder := party.NewArtist(uuid.New())

	t.Run("decline is terminal and leaves no expiry", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Decline(responder, now))

		assert.Equal(t, hold.StatusDeclined, h.Status())
		assert.Nil(t, h.ExpiresAt())
		assert.True(t, h.Status().IsTerminal())
	})

	t.Run("declining a resolved hold fails", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Decline(responder, now))
		require.ErrorIs(t, h.Decline(responder, now), hold.ErrAlreadyResolved)
	})
}

func TestHoldCancel(t *testing.T) {
	now := time.Now()
	requester := party.NewVenue(uuid.New())

	t.Run("the requester withdraws a pending hold", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Cancel(requester, now))
		assert.Equal(t, hold.StatusCancelled, h.Status())
	})

	t.Run("anyone else is rejected", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, h.Cancel(party.NewVenue(uuid.New()), now), hold.ErrNotRequester)
		assert.Equal(t, hold.StatusPending, h.Status())
	})

	t.Run("cancelling a resolved hold fails", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, h.Cancel(requester, now))
		require.ErrorIs(t, h.Cancel(requester, now), hold.ErrAlreadyResolved)
	})
}

func TestHoldExpiry(t *testing.T) {
	now := time.Now()
	responder := party.NewArtist(uuid.New())

	activeHold := func(t *testing.T, durationHours int) *hold.Hold {
		t.Helper()
		h, err := builder.NewHoldBuilder().WithDurationHours(durationHours).WithNow(now).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.Approve(responder, now))
		return h
	}

	t.Run("a pending hold never expires", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		assert.False(t, h.ExpireIfDue(now.Add(1000*time.Hour)))
		assert.Equal(t, hold.StatusPending, h.Status())
	})

	t.Run("an active hold is live until its deadline", func(t *testing.T) {
		h := activeHold(t, 24)

		assert.True(t, h.IsActiveAt(now.Add(23*time.Hour)))
		assert.True(t, h.IsLive(now.Add(23*time.Hour)))
		assert.False(t, h.ExpireIfDue(now.Add(23*time.Hour)))
	})

	t.Run("lazy expiry reads expired before the transition persists", func(t *testing.T) {
		h := activeHold(t, 24)
		after := now.Add(25 * time.Hour)

		// IsActiveAt does not mutate.
		assert.False(t, h.IsActiveAt(after))
		assert.Equal(t, hold.StatusActive, h.Status())

		assert.True(t, h.ExpireIfDue(after))
		assert.Equal(t, hold.StatusExpired, h.Status())
	})

	t.Run("the deadline itself counts as expired", func(t *testing.T) {
		h := activeHold(t, 24)

		assert.True(t, h.ExpireIfDue(now.Add(24*time.Hour)))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewHoldBuilder().With(c.mutate).BuildDomain()

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
