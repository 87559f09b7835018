package queries

import (
	"time"

	"github.com/google/uuid"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
	"stagebook/internal/domain/timeline"
)

type SlotView struct {
	ArtistID    uuid.UUID `json:"artistId"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	PayoutCents *int64    `json:"payoutCents,omitempty"`
}

type BookingView struct {
	ID      uuid.UUID  `json:"id"`
	VenueID uuid.UUID  `json:"venueId"`
	Date    time.Time  `json:"date"`
	Status  string     `json:"status"`
	Slots   []SlotView `json:"slots"`
}

type RequestView struct {
	ID          uuid.UUID  `json:"id"`
	OwnerKind   string     `json:"ownerKind"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Date        time.Time  `json:"date"`
	InitiatedBy string     `json:"initiatedBy"`
	Status      string     `json:"status"`
	TargetID    *uuid.UUID `json:"targetId,omitempty"`
	Region      *string    `json:"region,omitempty"`
}

type ProposalView struct {
	ID            uuid.UUID  `json:"id"`
	RequestID     *uuid.UUID `json:"requestId,omitempty"`
	LegacyOfferID *uuid.UUID `json:"legacyOfferId,omitempty"`
	ProposerKind  string     `json:"proposerKind"`
	ProposerID    uuid.UUID  `json:"proposerId"`
	CounterpartID uuid.UUID  `json:"counterpartId"`
	Date          time.Time  `json:"date"`
	PayoutCents   int64      `json:"payoutCents"`
	Status        string     `json:"status"`
	HoldState     string     `json:"holdState"`
	SourceShape   string     `json:"sourceShape"`
}

type HoldView struct {
	ID            uuid.UUID  `json:"id"`
	TargetKind    string     `json:"targetKind"`
	TargetID      uuid.UUID  `json:"targetId"`
	RequesterKind string     `json:"requesterKind"`
	RequesterID   uuid.UUID  `json:"requesterId"`
	Status        string     `json:"status"`
	DurationHours int        `json:"durationHours"`
	Reason        string     `json:"reason,omitempty"`
	RequestedAt   time.Time  `json:"requestedAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// EntryView is a single synthesized timeline entry with its resolved
// status and the proposals competing for the underlying date.
type EntryView struct {
	Kind           string         `json:"kind"`
	Date           time.Time      `json:"date"`
	Status         string         `json:"status"`
	Synthetic      bool           `json:"synthetic"`
	VenueInitiated bool           `json:"venueInitiated"`
	AgeRestriction string         `json:"ageRestriction"`
	HouseEquipment bool           `json:"houseEquipment"`
	Booking        *BookingView   `json:"booking,omitempty"`
	Request        *RequestView   `json:"request,omitempty"`
	BookingRef     *uuid.UUID     `json:"bookingRef,omitempty"`
	Competing      []ProposalView `json:"competing,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
}

type TimelineView struct {
	Viewpoint string      `json:"viewpoint"`
	PartyID   uuid.UUID   `json:"partyId"`
	Entries   []EntryView `json:"entries"`
	Warnings  []string    `json:"warnings,omitempty"`
}

type MonthBucketView struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Label     string `json:"label"`
	DateCount int    `json:"dateCount"`
}

type MonthBucketsView struct {
	Anchor  time.Time         `json:"anchor"`
	Buckets []MonthBucketView `json:"buckets"`
}

func SlotViewFromEntity(s booking.Slot) SlotView {
	return SlotView{
		ArtistID:    s.ArtistID,
		Role:        string(s.Role),
		Status:      string(s.Status),
		PayoutCents: s.PayoutCents,
	}
}

func BookingViewFromEntity(b *booking.Booking) *BookingView {
	if b == nil {
		return nil
	}
	slots := make([]SlotView, 0, len(b.Slots()))
	for _, s := range b.Slots() {
		slots = append(slots, SlotViewFromEntity(s))
	}
	return &BookingView{
		ID:      b.ID(),
		VenueID: b.VenueID(),
		Date:    b.Date(),
		Status:  string(b.Status()),
		Slots:   slots,
	}
}

func RequestViewFromEntity(r *request.Request) *RequestView {
	if r == nil {
		return nil
	}
	return &RequestView{
		ID:          r.ID(),
		OwnerKind:   string(r.Owner().Kind),
		OwnerID:     r.Owner().ID,
		Date:        r.Date(),
		InitiatedBy: string(r.InitiatedBy()),
		Status:      string(r.Status()),
		TargetID:    r.TargetID(),
		Region:      r.Region(),
	}
}

func ProposalViewFromEntity(p *proposal.Proposal) ProposalView {
	return ProposalView{
		ID:            p.ID(),
		RequestID:     p.RequestID(),
		LegacyOfferID: p.LegacyOfferID(),
		ProposerKind:  string(p.Proposer().Kind),
		ProposerID:    p.Proposer().ID,
		CounterpartID: p.CounterpartID(),
		Date:          p.Date(),
		PayoutCents:   p.PayoutCents(),
		Status:        string(p.Status()),
		HoldState:     string(p.HoldState()),
		SourceShape:   string(p.Shape()),
	}
}

func HoldViewFromEntity(h *hold.Hold) HoldView {
	return HoldView{
		ID:            h.ID(),
		TargetKind:    string(h.Target().Kind),
		TargetID:      h.Target().ID,
		RequesterKind: string(h.Requester().Kind),
		RequesterID:   h.Requester().ID,
		Status:        string(h.Status()),
		DurationHours: h.DurationHours(),
		Reason:        h.Reason(),
		RequestedAt:   h.RequestedAt(),
		ExpiresAt:     h.ExpiresAt(),
	}
}

func entryViewFrom(e timeline.Entry, res timeline.Resolution) EntryView {
	v := EntryView{
		Kind:           string(e.Kind),
		Date:           e.Date,
		Status:         string(res.Status),
		Synthetic:      e.Synthetic,
		VenueInitiated: e.VenueInitiated,
		AgeRestriction: e.Defaults.AgeRestriction,
		HouseEquipment: e.Defaults.HouseEquipment,
		Booking:        BookingViewFromEntity(e.Booking),
		Request:        RequestViewFromEntity(e.Request),
		BookingRef:     e.BookingRef,
		Warnings:       res.Warnings,
	}
	for _, p := range res.Competing {
		v.Competing = append(v.Competing, ProposalViewFromEntity(p))
	}
	return v
}
