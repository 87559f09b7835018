package timeline

import (
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/request"

	"github.com/google/uuid"
)

type EntryKind string

const (
	KindBooking EntryKind = "booking"
	KindRequest EntryKind = "request"
)

// EventDefaults is the canonical default set applied to every
// synthetic request entry, regardless of which storage shape produced
// it. The legacy paths disagreed on these; they converge here.
type EventDefaults struct {
	AgeRestriction string
	HouseEquipment bool
}

var CanonicalDefaults = EventDefaults{
	AgeRestriction: "all_ages",
	HouseEquipment: false,
}

// Entry is the canonical per-date projection: either a confirmed
// booking or a request-shaped row. Entries are derived values; they
// never alias or mutate the raw records they were computed from.
type Entry struct {
	Kind EntryKind
	Date time.Time

	Booking *booking.Booking
	Request *request.Request

	// BookingRef backs a request-shaped entry synthesized for an
	// artist whose slot in a multi-act booking is not yet confirmed.
	BookingRef *uuid.UUID

	// Synthetic marks request entries with no real request record
	// behind them (promoted direct offers, pending booking slots).
	Synthetic bool

	// VenueInitiated flags entries promoted from a direct venue offer.
	VenueInitiated bool

	Defaults EventDefaults
}

// RequestEntry builds the request-shaped variant.
func RequestEntry(r *request.Request) Entry {
	return Entry{
		Kind:     KindRequest,
		Date:     r.Date(),
		Request:  r,
		Defaults: CanonicalDefaults,
	}
}

// BookingEntry builds the confirmed-booking variant.
func BookingEntry(b *booking.Booking) Entry {
	return Entry{
		Kind:     KindBooking,
		Date:     b.Date(),
		Booking:  b,
		Defaults: CanonicalDefaults,
	}
}

// SourceID identifies the raw record an entry was derived from. Used
// by the duplication guard: each input record maps to exactly one
// output entry.
func (e Entry) SourceID() uuid.UUID {
	switch {
	case e.Booking != nil:
		return e.Booking.ID()
	case e.BookingRef != nil:
		return *e.BookingRef
	case e.Request != nil:
		return e.Request.ID()
	default:
		return uuid.Nil
	}
}

// DateKey is the whole-day bucket key.
func (e Entry) DateKey() string {
	return e.Date.Format(time.DateOnly)
}
