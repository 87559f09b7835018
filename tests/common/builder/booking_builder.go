//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stagebook/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID      uuid.UUID
	VenueID uuid.UUID
	Date    time.Time
	Status  dombooking.Status
	Slots   []dombooking.Slot
	Now     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	payout := int64(75000)
	return &BookingBuilder{
		ID:      uuid.New(),
		VenueID: uuid.New(),
		Date:    now.AddDate(0, 1, 0),
		Status:  dombooking.StatusConfirmed,
		Slots: []dombooking.Slot{
			{
				ArtistID:    uuid.New(),
				Role:        dombooking.RoleHeadliner,
				Status:      dombooking.SlotConfirmed,
				PayoutCents: &payout,
			},
		},
		Now: now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(b.VenueID, b.Date, b.Slots, b.Now)
}

// BuildStored rehydrates a booking as if read back from the database.
func (b *BookingBuilder) BuildStored() *dombooking.Booking {
	return dombooking.ReconstructBooking(b.ID, b.VenueID, b.Date, b.Status, b.Slots, b.Now, b.Now)
}

// Fluent builder methods
func (b *BookingBuilder) WithVenueID(id uuid.UUID) *BookingBuilder {
	b.VenueID = id
	return b
}

func (b *BookingBuilder) WithDate(date time.Time) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithSlots(slots ...dombooking.Slot) *BookingBuilder {
	b.Slots = slots
	return b
}

// WithConfirmedSlot replaces the bill with a single confirmed
// headliner slot for the given artist.
func (b *BookingBuilder) WithConfirmedSlot(artistID uuid.UUID) *BookingBuilder {
	payout := int64(75000)
	b.Slots = []dombooking.Slot{
		{ArtistID: artistID, Role: dombooking.RoleHeadliner, Status: dombooking.SlotConfirmed, PayoutCents: &payout},
	}
	return b
}

// WithPendingSlot appends a not-yet-confirmed support slot.
func (b *BookingBuilder) WithPendingSlot(artistID uuid.UUID) *BookingBuilder {
	b.Slots = append(b.Slots, dombooking.Slot{
		ArtistID: artistID,
		Role:     dombooking.RoleSupport,
		Status:   dombooking.SlotPending,
	})
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}
