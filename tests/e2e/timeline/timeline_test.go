//go:build e2e

package timeline_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/usecase/queries"
	"stagebook/tests/common/authtest"
	"stagebook/tests/common/dbtest"
	"stagebook/tests/common/httptest"
	"stagebook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	timelineURL = "/api/timeline"
	monthsURL   = "/api/timeline/months"
	icsURL      = "/api/timeline/export.ics"
)

type TimelineSuite struct {
	e2e.SharedSuite
}

func (s *TimelineSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestTimelineSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TimelineSuite))
}

func (s *TimelineSuite) tokenFor(p party.Party) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), p)
}

func windowQuery(from, to time.Time) string {
	return fmt.Sprintf("?from=%s&to=%s", from.Format(time.DateOnly), to.Format(time.DateOnly))
}

func futureDate(months, days int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, months, days)
}

// =============================================================================
// TestGetTimeline
// =============================================================================

func (s *TimelineSuite) TestGetTimeline() {
	s.Run("venue sees its booking and a request targeting it", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		showDate := futureDate(1, 3)
		askDate := futureDate(1, 10)

		bookingID := dbtest.CreateTestBooking(t, s.DB, venueID, showDate)
		dbtest.CreateTestSlot(t, s.DB, bookingID, artistID, "headliner", "confirmed", 75000)
		requestID := dbtest.CreateTestRequest(t, s.DB, "artist", artistID, askDate, &venueID, nil)

		token := s.tokenFor(party.NewVenue(venueID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(showDate.AddDate(0, 0, -1), askDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Equal(t, "venue", view.Viewpoint)
		require.Equal(t, venueID, view.PartyID)
		require.Len(t, view.Entries, 2)

		require.Equal(t, "booking", view.Entries[0].Kind)
		require.NotNil(t, view.Entries[0].Booking)
		require.Equal(t, bookingID, view.Entries[0].Booking.ID)
		require.Equal(t, "confirmed", view.Entries[0].Status)

		require.Equal(t, "request", view.Entries[1].Kind)
		require.NotNil(t, view.Entries[1].Request)
		require.Equal(t, requestID, view.Entries[1].Request.ID)
		require.Equal(t, "pending", view.Entries[1].Status)
		require.Equal(t, "all_ages", view.Entries[1].AgeRestriction)
	})

	s.Run("pending slot surfaces as a request-shaped entry for the artist", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		showDate := futureDate(2, 0)

		bookingID := dbtest.CreateTestBooking(t, s.DB, venueID, showDate)
		dbtest.CreateTestSlot(t, s.DB, bookingID, artistID, "support", "pending", 20000)

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(showDate.AddDate(0, 0, -1), showDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		entry := view.Entries[0]
		require.Equal(t, "request", entry.Kind)
		require.True(t, entry.Synthetic)
		require.NotNil(t, entry.BookingRef)
		require.Equal(t, bookingID, *entry.BookingRef)
		require.Nil(t, entry.Booking)
	})

	s.Run("direct legacy offer is promoted to a synthetic request entry", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		offerDate := futureDate(1, 20)

		offerID := dbtest.CreateTestOffer(t, s.DB, venueID, artistID, nil, offerDate, 40000, "pending")

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(offerDate.AddDate(0, 0, -1), offerDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		entry := view.Entries[0]
		require.Equal(t, "request", entry.Kind)
		require.True(t, entry.Synthetic)
		require.True(t, entry.VenueInitiated)
		require.NotNil(t, entry.Request)
		require.Equal(t, offerID, entry.Request.ID)
		require.Equal(t, "open", entry.Request.Status)

		// The lifted offer itself is the competing bid.
		require.Len(t, entry.Competing, 1)
		require.Equal(t, offerID, entry.Competing[0].ID)
		require.Equal(t, "legacy_offer", entry.Competing[0].SourceShape)
	})

	s.Run("offer duplicated in the unified table appears once", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		askDate := futureDate(3, 0)

		requestID := dbtest.CreateTestRequest(t, s.DB, "artist", artistID, askDate, &venueID, nil)
		dbtest.CreateTestOffer(t, s.DB, venueID, artistID, &requestID, askDate, 40000, "pending")
		dbtest.CreateTestProposal(t, s.DB, &requestID, "venue", venueID, artistID, askDate, 40000, "pending")

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(askDate.AddDate(0, 0, -1), askDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		entry := view.Entries[0]
		require.Equal(t, requestID, entry.Request.ID)

		// Same logical bid under both storage shapes dedupes to the
		// unified record.
		require.Len(t, entry.Competing, 1)
		require.Equal(t, "request_bid", entry.Competing[0].SourceShape)
	})

	s.Run("accepted proposal resolves the date as accepted", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		askDate := futureDate(1, 7)

		requestID := dbtest.CreateTestRequest(t, s.DB, "artist", artistID, askDate, &venueID, nil)
		dbtest.CreateTestProposal(t, s.DB, &requestID, "venue", venueID, artistID, askDate, 60000, "accepted")

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(askDate.AddDate(0, 0, -1), askDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		require.Equal(t, "accepted", view.Entries[0].Status)
	})

	s.Run("active hold outranks pending proposals", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		askDate := futureDate(1, 14)

		requestID := dbtest.CreateTestRequest(t, s.DB, "artist", artistID, askDate, &venueID, nil)
		dbtest.CreateTestProposal(t, s.DB, &requestID, "venue", venueID, artistID, askDate, 60000, "pending")

		expires := time.Now().Add(48 * time.Hour)
		dbtest.CreateTestHold(t, s.DB, "request", requestID, "venue", venueID, 48, "active", time.Now(), &expires)

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(askDate.AddDate(0, 0, -1), askDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		require.Equal(t, "hold", view.Entries[0].Status)
	})

	s.Run("overdue hold reads as expired before the sweep persists it", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		askDate := futureDate(1, 21)

		requestID := dbtest.CreateTestRequest(t, s.DB, "artist", artistID, askDate, &venueID, nil)

		expired := time.Now().Add(-1 * time.Hour)
		dbtest.CreateTestHold(t, s.DB, "request", requestID, "venue", venueID, 24, "active", time.Now().Add(-25*time.Hour), &expired)

		token := s.tokenFor(party.NewArtist(artistID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL+windowQuery(askDate.AddDate(0, 0, -1), askDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.TimelineView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Entries, 1)
		require.Equal(t, "pending", view.Entries[0].Status)
	})

	s.Run("unauthenticated request is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, timelineURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestGetMonthBuckets
// =============================================================================

func (s *TimelineSuite) TestGetMonthBuckets() {
	s.Run("returns twelve buckets with distinct date counts", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		anchor := futureDate(0, 0)
		inMonth := time.Date(anchor.Year(), anchor.Month(), 15, 0, 0, 0, 0, time.UTC)

		// Two documents on the same date count as one.
		bookingID := dbtest.CreateTestBooking(t, s.DB, venueID, inMonth)
		dbtest.CreateTestSlot(t, s.DB, bookingID, artistID, "headliner", "confirmed", 50000)
		dbtest.CreateTestRequest(t, s.DB, "venue", venueID, inMonth, nil, strPtr("chicago"))

		token := s.tokenFor(party.NewVenue(venueID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, monthsURL+"?anchor="+anchor.Format(time.DateOnly), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var view queries.MonthBucketsView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		require.Len(t, view.Buckets, 12)
		require.Equal(t, anchor.Year(), view.Buckets[0].Year)
		require.Equal(t, int(anchor.Month()), view.Buckets[0].Month)
		require.Equal(t, 1, view.Buckets[0].DateCount)
		for _, b := range view.Buckets[1:] {
			require.Equal(t, 0, b.DateCount)
		}
	})
}

// =============================================================================
// TestExportICS
// =============================================================================

func (s *TimelineSuite) TestExportICS() {
	s.Run("serializes entries as all-day events", func() {
		t := s.T()

		venueID := uuid.New()
		artistID := uuid.New()
		showDate := futureDate(1, 5)

		bookingID := dbtest.CreateTestBooking(t, s.DB, venueID, showDate)
		dbtest.CreateTestSlot(t, s.DB, bookingID, artistID, "headliner", "confirmed", 80000)

		token := s.tokenFor(party.NewVenue(venueID))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, icsURL+windowQuery(showDate.AddDate(0, 0, -1), showDate.AddDate(0, 0, 1)), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
		httptest.AssertHeaders(t, w, map[string]string{
			"Content-Disposition": `attachment; filename="timeline.ics"`,
		})

		body := w.Body.String()
		require.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
		require.Contains(t, body, "UID:booking-"+bookingID.String()+"@stagebook")
		require.Contains(t, body, "SUMMARY:Confirmed show")
		require.Contains(t, body, "STATUS:CONFIRMED")
	})
}

func strPtr(s string) *string { return &s }
