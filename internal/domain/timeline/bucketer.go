package timeline

import (
	"strconv"
	"time"
)

// WindowMonths is the fixed length of the rolling calendar window.
const WindowMonths = 12

// MonthBucket is one slot of the rolling window. Empty buckets are
// first-class output so navigation never shifts across reloads.
type MonthBucket struct {
	Year      int
	Month     time.Month
	Label     string
	DateCount int
	Entries   []Entry
}

// Bucket groups entries into exactly WindowMonths buckets anchored at
// the anchor's month. The displayed count is distinct dates, not raw
// entries: a date with three competing proposals counts once.
func Bucket(entries []Entry, anchor time.Time) []MonthBucket {
	anchorYear, anchorMonth := anchor.Year(), anchor.Month()
	start := time.Date(anchorYear, anchorMonth, 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, WindowMonths)
	index := make(map[string]int, WindowMonths)
	for i := range buckets {
		m := start.AddDate(0, i, 0)
		buckets[i] = MonthBucket{
			Year:  m.Year(),
			Month: m.Month(),
			Label: monthLabel(m.Year(), m.Month(), anchorYear),
		}
		index[m.Format("2006-01")] = i
	}

	seenDates := make([]map[string]struct{}, WindowMonths)
	for _, e := range entries {
		i, ok := index[e.Date.Format("2006-01")]
		if !ok {
			continue // outside the window
		}
		buckets[i].Entries = append(buckets[i].Entries, e)
		if seenDates[i] == nil {
			seenDates[i] = make(map[string]struct{})
		}
		seenDates[i][e.DateKey()] = struct{}{}
	}

	for i := range buckets {
		buckets[i].DateCount = len(seenDates[i])
	}

	return buckets
}

// monthLabel carries the year only when it differs from the anchor's.
func monthLabel(year int, month time.Month, anchorYear int) string {
	if year == anchorYear {
		return month.String()[:3]
	}
	return month.String()[:3] + " " + strconv.Itoa(year)
}
