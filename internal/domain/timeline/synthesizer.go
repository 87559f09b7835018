package timeline

import (
	"sort"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
)

// Sources are the raw record streams, already fetched and filtered to
// the viewpoint by the caller's repositories. Synthesize never does
// I/O of its own.
type Sources struct {
	Bookings  []*booking.Booking
	Requests  []*request.Request
	Offers    []*offer.Offer
	Proposals []*proposal.Proposal
}

// Synthesize normalizes the four record shapes into canonical entries
// for one viewpoint. Each relevant input record maps to exactly one
// output entry; request-answering offers and proposals surface later
// through Resolve rather than as rows of their own.
func Synthesize(src Sources, viewpoint party.Party) []Entry {
	entries := make([]Entry, 0, len(src.Bookings)+len(src.Requests)+len(src.Offers))

	for _, b := range src.Bookings {
		if e, ok := synthesizeBooking(b, viewpoint); ok {
			entries = append(entries, e)
		}
	}

	for _, r := range src.Requests {
		if !relevantRequest(r, viewpoint) {
			continue
		}
		entries = append(entries, RequestEntry(r))
	}

	for _, o := range src.Offers {
		if !o.IsDirect() {
			continue // answered offers belong to their request's competing set
		}
		if viewpoint.IsArtist() && o.ArtistID() != viewpoint.ID {
			continue
		}
		if viewpoint.IsVenue() && o.VenueID() != viewpoint.ID {
			continue
		}
		entries = append(entries, promoteOffer(o))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == KindBooking
		}
		return entries[i].SourceID().String() < entries[j].SourceID().String()
	})

	return entries
}

func synthesizeBooking(b *booking.Booking, viewpoint party.Party) (Entry, bool) {
	if viewpoint.IsVenue() {
		if b.VenueID() != viewpoint.ID {
			return Entry{}, false
		}
		return BookingEntry(b), true
	}

	slot, ok := b.SlotFor(viewpoint.ID)
	if !ok {
		return Entry{}, false
	}

	// An artist who withdrew from the bill has no claim left on the
	// date; showing the booking would read as a confirmed show.
	if slot.Status == booking.SlotCancelled {
		return Entry{}, false
	}

	// A pending slot must not read as a confirmed show: surface a
	// request-shaped entry instead, back-referencing the booking, so
	// the artist sees competing claims on the date.
	if slot.Status == booking.SlotPending && !b.IsCancelled() {
		ref := b.ID()
		return Entry{
			Kind:       KindRequest,
			Date:       b.Date(),
			BookingRef: &ref,
			Synthetic:  true,
			Defaults:   CanonicalDefaults,
		}, true
	}

	return BookingEntry(b), true
}

func relevantRequest(r *request.Request, viewpoint party.Party) bool {
	if r.Owner().Equal(viewpoint) {
		return true
	}
	// A request targeting this party directly is on their timeline too.
	return r.TargetID() != nil && *r.TargetID() == viewpoint.ID
}

// promoteOffer turns a request-less venue offer into a synthetic
// request-shaped entry so every date has exactly one request row no
// matter which storage generation produced it.
func promoteOffer(o *offer.Offer) Entry {
	artistID := o.ArtistID()
	synthetic := request.ReconstructRequest(
		o.ID(),
		party.NewVenue(o.VenueID()),
		o.Date(),
		party.KindVenue,
		offerRequestStatus(o),
		&artistID,
		nil,
		o.CreatedAt(),
		o.UpdatedAt(),
	)

	e := RequestEntry(synthetic)
	e.Synthetic = true
	e.VenueInitiated = true
	return e
}

func offerRequestStatus(o *offer.Offer) request.Status {
	switch o.Status() {
	case offer.StatusPending:
		return request.StatusOpen
	case offer.StatusExpired:
		return request.StatusExpired
	default:
		return request.StatusClosed
	}
}
