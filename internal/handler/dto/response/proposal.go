package response

import (
	"time"

	"github.com/google/uuid"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/proposal"
)

type ProposalResponse struct {
	ID            uuid.UUID  `json:"id"`
	RequestID     *uuid.UUID `json:"requestId,omitempty"`
	ProposerKind  string     `json:"proposerKind"`
	ProposerID    uuid.UUID  `json:"proposerId"`
	CounterpartID uuid.UUID  `json:"counterpartId"`
	Date          time.Time  `json:"date"`
	PayoutCents   int64      `json:"payoutCents"`
	Status        string     `json:"status"`
	HoldState     string     `json:"holdState"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func FromProposal(p *proposal.Proposal) *ProposalResponse {
	return &ProposalResponse{
		ID:            p.ID(),
		RequestID:     p.RequestID(),
		ProposerKind:  p.Proposer().Kind.String(),
		ProposerID:    p.Proposer().ID,
		CounterpartID: p.CounterpartID(),
		Date:          p.Date(),
		PayoutCents:   p.PayoutCents(),
		Status:        p.Status().String(),
		HoldState:     string(p.HoldState()),
		CreatedAt:     p.CreatedAt(),
	}
}

type BookingSlotResponse struct {
	ArtistID    uuid.UUID `json:"artistId"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	PayoutCents *int64    `json:"payoutCents,omitempty"`
}

type BookingResponse struct {
	ID      uuid.UUID             `json:"id"`
	VenueID uuid.UUID             `json:"venueId"`
	Date    time.Time             `json:"date"`
	Status  string                `json:"status"`
	Slots   []BookingSlotResponse `json:"slots"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	slots := make([]BookingSlotResponse, 0, len(b.Slots()))
	for _, s := range b.Slots() {
		slots = append(slots, BookingSlotResponse{
			ArtistID:    s.ArtistID,
			Role:        string(s.Role),
			Status:      string(s.Status),
			PayoutCents: s.PayoutCents,
		})
	}
	return &BookingResponse{
		ID:      b.ID(),
		VenueID: b.VenueID(),
		Date:    b.Date(),
		Status:  b.Status().String(),
		Slots:   slots,
	}
}
