package repository

import (
	"context"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/party"
	"stagebook/internal/infra"
	"stagebook/internal/infra/db"
	"stagebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (id, venue_id, event_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID(), b.VenueID(), b.Date(), b.Status().String(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	for _, s := range b.Slots() {
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_slots (booking_id, artist_id, billing_role, status, payout_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			b.ID(), s.ArtistID, string(s.Role), string(s.Status), pgconv.Int64PtrToPgtype(s.PayoutCents),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create booking slot", err)
		}
	}

	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return bookings[0], nil
}

func (r *BookingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking existence", err)
	}
	return exists, nil
}

// FindForParty returns the bookings on a party's timeline within
// [from, to]: the venue's own dates, or every booking the artist has a
// slot in.
func (r *BookingRepository) FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*booking.Booking, error) {
	var (
		sql  string
		args []any
	)
	if viewpoint.IsVenue() {
		sql = bookingSelect + ` WHERE b.venue_id = $1 AND b.event_date BETWEEN $2 AND $3 ORDER BY b.event_date`
		args = []any{viewpoint.ID, from, to}
	} else {
		sql = bookingSelect + `
			WHERE b.id IN (SELECT booking_id FROM booking_slots WHERE artist_id = $1)
			  AND b.event_date BETWEEN $2 AND $3
			ORDER BY b.event_date`
		args = []any{viewpoint.ID, from, to}
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings for party", err)
	}
	return collectBookings(rows)
}

const bookingSelect = `
	SELECT b.id, b.venue_id, b.event_date, b.status, b.created_at, b.updated_at,
	       s.artist_id, s.billing_role, s.status, s.payout_cents
	FROM bookings b
	JOIN booking_slots s ON s.booking_id = b.id`

type bookingRow struct {
	id        uuid.UUID
	venueID   uuid.UUID
	date      time.Time
	status    string
	createdAt time.Time
	updatedAt time.Time
	slots     []booking.Slot
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()

	byID := make(map[uuid.UUID]*bookingRow)
	var order []uuid.UUID

	for rows.Next() {
		var (
			head   bookingRow
			slot   booking.Slot
			role   string
			sstat  string
			payout pgtype.Int8
		)
		if err := rows.Scan(
			&head.id, &head.venueID, &head.date, &head.status, &head.createdAt, &head.updatedAt,
			&slot.ArtistID, &role, &sstat, &payout,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		slot.Role = booking.BillingRole(role)
		slot.Status = booking.SlotStatus(sstat)
		slot.PayoutCents = pgconv.Int64PtrFromPgtype(payout)

		agg, ok := byID[head.id]
		if !ok {
			agg = &head
			byID[head.id] = agg
			order = append(order, head.id)
		}
		agg.slots = append(agg.slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	out := make([]*booking.Booking, 0, len(order))
	for _, id := range order {
		rw := byID[id]
		out = append(out, booking.ReconstructBooking(
			rw.id, rw.venueID, rw.date, booking.Status(rw.status), rw.slots, rw.createdAt, rw.updatedAt,
		))
	}
	return out, nil
}
