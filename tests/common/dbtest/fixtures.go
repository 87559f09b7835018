//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestBooking(t *testing.T, db DBLike, venueID uuid.UUID, date time.Time) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, venue_id, event_date, status) VALUES ($1, $2, $3, 'confirmed')",
		bookingID, venueID, date)
	require.NoError(t, err)

	return bookingID
}

func CreateTestSlot(t *testing.T, db DBLike, bookingID, artistID uuid.UUID, role, status string, payoutCents int64) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO booking_slots (id, booking_id, artist_id, billing_role, status, payout_cents) VALUES ($1, $2, $3, $4, $5, $6)",
		slotID, bookingID, artistID, role, status, payoutCents)
	require.NoError(t, err)

	return slotID
}

func CreateTestRequest(t *testing.T, db DBLike, ownerKind string, ownerID uuid.UUID, date time.Time, targetID *uuid.UUID, region *string) uuid.UUID {
	t.Helper()

	requestID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO gig_requests (id, owner_kind, owner_id, event_date, initiated_by, status, target_id, region) VALUES ($1, $2, $3, $4, $2, 'open', $5, $6)",
		requestID, ownerKind, ownerID, date, targetID, region)
	require.NoError(t, err)

	return requestID
}

func CreateTestOffer(t *testing.T, db DBLike, venueID, artistID uuid.UUID, requestID *uuid.UUID, date time.Time, payoutCents int64, status string) uuid.UUID {
	t.Helper()

	offerID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO venue_offers (id, venue_id, artist_id, request_id, event_date, payout_cents, status) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		offerID, venueID, artistID, requestID, date, payoutCents, status)
	require.NoError(t, err)

	return offerID
}

func CreateTestProposal(t *testing.T, db DBLike, requestID *uuid.UUID, proposerKind string, proposerID, counterpartID uuid.UUID, date time.Time, payoutCents int64, status string) uuid.UUID {
	t.Helper()

	proposalID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO proposals (id, request_id, proposer_kind, proposer_id, counterpart_id, event_date, payout_cents, status, hold_state) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'none')",
		proposalID, requestID, proposerKind, proposerID, counterpartID, date, payoutCents, status)
	require.NoError(t, err)

	return proposalID
}

func CreateTestHold(t *testing.T, db DBLike, targetKind string, targetID uuid.UUID, requesterKind string, requesterID uuid.UUID, durationHours int, status string, requestedAt time.Time, expiresAt *time.Time) uuid.UUID {
	t.Helper()

	holdID := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		"INSERT INTO holds (id, target_kind, target_id, requester_kind, requester_id, duration_hours, status, requested_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		holdID, targetKind, targetID, requesterKind, requesterID, durationHours, status, requestedAt, expiresAt)
	require.NoError(t, err)

	return holdID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
