package api

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"

	"stagebook/internal/handler/middleware"
	"stagebook/internal/usecase/queries"
)

type TimelineHandler struct {
	timelineQueries *queries.TimelineQueries
}

func NewTimelineHandler(timelineQueries *queries.TimelineQueries) *TimelineHandler {
	return &TimelineHandler{
		timelineQueries: timelineQueries,
	}
}

// @Summary Get timeline
// @Description Unified booking timeline for the authenticated party
// @Tags timeline
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} queries.TimelineView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	viewpoint, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.timelineQueries.GetTimeline(c.Request.Context(), viewpoint, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get month buckets
// @Description Rolling twelve month navigation strip with distinct date counts
// @Tags timeline
// @Produce json
// @Security BearerAuth
// @Param anchor query string false "Anchor month (YYYY-MM-DD), defaults to current"
// @Success 200 {object} queries.MonthBucketsView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /timeline/months [get]
func (h *TimelineHandler) GetMonthBuckets(c *gin.Context) {
	viewpoint, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var anchor time.Time
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		anchor = parsed
	}

	view, err := h.timelineQueries.GetMonthBuckets(c.Request.Context(), viewpoint, anchor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Export timeline as iCalendar
// @Description Timeline entries as all-day VEVENTs
// @Tags timeline
// @Produce text/calendar
// @Security BearerAuth
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /timeline/export.ics [get]
func (h *TimelineHandler) ExportICS(c *gin.Context) {
	viewpoint, ok := middleware.GetParty(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.timelineQueries.GetTimeline(c.Request.Context(), viewpoint, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timeline.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(buildCalendar(view).Serialize()))
}

func buildCalendar(view *queries.TimelineView) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//stagebook//timeline//EN")

	for _, e := range view.Entries {
		uid := entryUID(e)
		ev := cal.AddEvent(uid)
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		ev.SetSummary(entrySummary(e))
		ev.SetStatus(entryStatus(e))
	}
	return cal
}

func entryUID(e queries.EntryView) string {
	switch {
	case e.Booking != nil:
		return fmt.Sprintf("booking-%s@stagebook", e.Booking.ID)
	case e.BookingRef != nil:
		return fmt.Sprintf("slot-%s@stagebook", e.BookingRef)
	case e.Request != nil:
		return fmt.Sprintf("request-%s@stagebook", e.Request.ID)
	default:
		return fmt.Sprintf("entry-%s@stagebook", e.Date.Format(time.DateOnly))
	}
}

func entrySummary(e queries.EntryView) string {
	if e.Kind == "booking" {
		return "Confirmed show"
	}
	if len(e.Competing) > 0 {
		return fmt.Sprintf("Open date (%d proposals)", len(e.Competing))
	}
	return "Open date"
}

func entryStatus(e queries.EntryView) ical.ObjectStatus {
	switch e.Status {
	case "confirmed", "accepted":
		return ical.ObjectStatusConfirmed
	case "cancelled":
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}

func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
