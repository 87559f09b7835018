//go:build unit

package request_test

import (
	"testing"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/domain/request"
	"stagebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RequestBuilder)
	errIs  error
}

func TestRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRequestBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, request.StatusOpen, actual.Status())
		assert.True(t, actual.IsOpen())
	})

	t.Run("the initiator is the owner", func(t *testing.T) {
		venue := party.NewVenue(uuid.New())
		r, err := builder.NewRequestBuilder().WithOwner(venue).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, party.KindVenue, r.InitiatedBy())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing owner",
				mutate: func(b *builder.RequestBuilder) { b.Owner = party.Party{} },
				errIs:  request.ErrMissingOwner,
			},
			{
				name:   "zero date",
				mutate: func(b *builder.RequestBuilder) { b.Date = time.Time{} },
				errIs:  request.ErrMissingDate,
			},
			{
				name:   "no target and no region",
				mutate: func(b *builder.RequestBuilder) { b.WithoutScope() },
				errIs:  request.ErrMissingScope,
			},
			{
				name: "empty region without target",
				mutate: func(b *builder.RequestBuilder) {
					b.TargetID = nil
					b.WithRegion("")
				},
				errIs: request.ErrMissingScope,
			},
			{
				name: "target without region",
				mutate: func(b *builder.RequestBuilder) {
					b.Region = nil
					b.WithTargetID(uuid.New())
				},
			},
		})
	})
}

func TestRequestClose(t *testing.T) {
	now := time.Now()

	t.Run("closing an open request", func(t *testing.T) {
		r := builder.NewRequestBuilder().BuildStored()

		require.NoError(t, r.Close(now))
		assert.Equal(t, request.StatusClosed, r.Status())
		assert.False(t, r.IsOpen())
	})

	t.Run("closing twice fails", func(t *testing.T) {
		r := builder.NewRequestBuilder().WithStatus(request.StatusClosed).BuildStored()

		require.ErrorIs(t, r.Close(now), request.ErrAlreadyClosed)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewRequestBuilder().With(c.mutate).BuildDomain()

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
