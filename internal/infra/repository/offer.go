package repository

import (
	"context"
	"time"

	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/infra"
	"stagebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OfferRepository reads the legacy venue-offer table. No writes: new
// bids go through proposals; this shape survives only as input to
// reconciliation.
type OfferRepository struct {
	pool *pgxpool.Pool
}

func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

const offerSelect = `
	SELECT id, venue_id, artist_id, request_id, event_date, payout_cents, status,
	       created_at, updated_at
	FROM venue_offers`

func (r *OfferRepository) FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*offer.Offer, error) {
	var column string
	if viewpoint.IsArtist() {
		column = "artist_id"
	} else {
		column = "venue_id"
	}

	rows, err := r.pool.Query(ctx, offerSelect+`
		WHERE `+column+` = $1 AND event_date BETWEEN $2 AND $3
		ORDER BY event_date`,
		viewpoint.ID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offers for party", err)
	}
	defer rows.Close()

	var out []*offer.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer row", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate offer rows", err)
	}
	return out, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	row := r.pool.QueryRow(ctx, offerSelect+` WHERE id = $1`, id)
	o, err := scanOffer(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find offer by ID", err)
	}
	return o, nil
}

func (r *OfferRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM venue_offers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check offer existence", err)
	}
	return exists, nil
}

func scanOffer(row pgx.Row) (*offer.Offer, error) {
	var (
		id          uuid.UUID
		venueID     uuid.UUID
		artistID    uuid.UUID
		requestID   pgtype.UUID
		date        time.Time
		payoutCents int64
		status      string
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &venueID, &artistID, &requestID, &date, &payoutCents, &status,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return offer.ReconstructOffer(
		id, venueID, artistID,
		pgconv.UUIDPtrFromPgtype(requestID),
		date, payoutCents,
		offer.Status(status),
		createdAt, updatedAt,
	), nil
}
