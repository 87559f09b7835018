package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingDate      = errors.New("booking date is required")
	ErrNoSlots          = errors.New("booking requires at least one artist slot")
	ErrInvalidRole      = errors.New("invalid billing role")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrNegativePayout   = errors.New("payout cannot be negative")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrSlotNotFound     = errors.New("artist has no slot in this booking")
)

// Slot is one artist's place on the bill.
type Slot struct {
	ArtistID    uuid.UUID
	Role        BillingRole
	Status      SlotStatus
	PayoutCents *int64
}

type Booking struct {
	id        uuid.UUID
	venueID   uuid.UUID
	date      time.Time
	status    Status
	slots     []Slot
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(venueID uuid.UUID, date time.Time, slots []Slot, now time.Time) (*Booking, error) {
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	for _, s := range slots {
		if !s.Role.IsValid() {
			return nil, ErrInvalidRole
		}
		if !s.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if s.PayoutCents != nil && *s.PayoutCents < 0 {
			return nil, ErrNegativePayout
		}
	}

	return &Booking{
		id:        uuid.New(),
		venueID:   venueID,
		date:      NormalizeDate(date),
		status:    StatusConfirmed,
		slots:     slots,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBooking(
	id, venueID uuid.UUID,
	date time.Time,
	status Status,
	slots []Slot,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		venueID:   venueID,
		date:      NormalizeDate(date),
		status:    status,
		slots:     slots,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// NormalizeDate strips the time component; the engine reasons in whole
// calendar days, UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VenueID() uuid.UUID   { return b.venueID }
func (b *Booking) Date() time.Time      { return b.date }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Slots() []Slot        { return b.slots }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) SlotFor(artistID uuid.UUID) (Slot, bool) {
	for _, s := range b.slots {
		if s.ArtistID == artistID {
			return s, true
		}
	}
	return Slot{}, false
}

// IsConfirmedFor reports whether the given artist's own commitment is
// locked in. A pending slot means the artist still sees the date as
// contested, not as a confirmed show.
func (b *Booking) IsConfirmedFor(artistID uuid.UUID) bool {
	s, ok := b.SlotFor(artistID)
	return ok && s.Status == SlotConfirmed
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) ConfirmSlot(artistID uuid.UUID, now time.Time) error {
	for i, s := range b.slots {
		if s.ArtistID == artistID {
			b.slots[i].Status = SlotConfirmed
			b.updatedAt = now
			return nil
		}
	}
	return ErrSlotNotFound
}
