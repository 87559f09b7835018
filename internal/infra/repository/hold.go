package repository

import (
	"context"
	"time"

	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/party"
	"stagebook/internal/infra"
	"stagebook/internal/infra/db"
	"stagebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

const holdSelect = `
	SELECT id, target_kind, target_id, requester_kind, requester_id,
	       responder_kind, responder_id, duration_hours, reason, status,
	       requested_at, responded_at, expires_at
	FROM holds`

// Create relies on the partial unique index over live holds: the
// losing side of a concurrent create gets a conflict, not a duplicate.
func (r *HoldRepository) Create(ctx context.Context, tx db.DBTX, h *hold.Hold) error {
	var responderKind pgtype.Text
	var responderID pgtype.UUID
	if resp := h.Responder(); resp != nil {
		responderKind = pgconv.StringToPgtype(resp.Kind.String())
		responderID = pgconv.UUIDToPgtype(resp.ID)
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO holds (id, target_kind, target_id, requester_kind, requester_id,
		                   responder_kind, responder_id, duration_hours, reason, status,
		                   requested_at, responded_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		h.ID(), string(h.Target().Kind), h.Target().ID,
		h.Requester().Kind.String(), h.Requester().ID,
		responderKind, responderID,
		h.DurationHours(), h.Reason(), h.Status().String(),
		h.RequestedAt(), pgconv.TimePtrToPgtype(h.RespondedAt()), pgconv.TimePtrToPgtype(h.ExpiresAt()),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err, "holds_live_target_uniq") {
			return infra.WrapRepoErr("target already has a live hold", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	row := r.pool.QueryRow(ctx, holdSelect+` WHERE id = $1`, id)
	h, err := scanHold(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold by ID", err)
	}
	return h, nil
}

func (r *HoldRepository) FindLiveByTarget(ctx context.Context, targetID uuid.UUID) (*hold.Hold, error) {
	row := r.pool.QueryRow(ctx, holdSelect+`
		WHERE target_id = $1 AND status IN ('pending', 'active')`,
		targetID,
	)
	h, err := scanHold(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no live hold for target", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find live hold", err)
	}
	return h, nil
}

func (r *HoldRepository) FindLiveForTargets(ctx context.Context, targetIDs []uuid.UUID) ([]*hold.Hold, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, holdSelect+`
		WHERE target_id = ANY($1) AND status IN ('pending', 'active')`,
		targetIDs,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find live holds for targets", err)
	}
	return collectHolds(rows)
}

// FindLiveRelevant returns every live hold addressed to one of the
// given documents, plus any raised by the viewpoint itself. The second
// clause keeps holds visible even after their target vanished.
func (r *HoldRepository) FindLiveRelevant(ctx context.Context, viewpoint party.Party, targetIDs []uuid.UUID) ([]*hold.Hold, error) {
	rows, err := r.pool.Query(ctx, holdSelect+`
		WHERE status IN ('pending', 'active')
		  AND (target_id = ANY($1) OR (requester_kind = $2 AND requester_id = $3))`,
		targetIDs, viewpoint.Kind.String(), viewpoint.ID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find relevant live holds", err)
	}
	return collectHolds(rows)
}

// UpdateIfStatus persists a transition guarded by the state the caller
// validated against, closing the race between validation and commit.
func (r *HoldRepository) UpdateIfStatus(ctx context.Context, tx db.DBTX, h *hold.Hold, expected hold.Status) (bool, error) {
	var responderKind pgtype.Text
	var responderID pgtype.UUID
	if resp := h.Responder(); resp != nil {
		responderKind = pgconv.StringToPgtype(resp.Kind.String())
		responderID = pgconv.UUIDToPgtype(resp.ID)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE holds
		SET status = $2, responder_kind = $3, responder_id = $4,
		    responded_at = $5, expires_at = $6
		WHERE id = $1 AND status = $7`,
		h.ID(), h.Status().String(), responderKind, responderID,
		pgconv.TimePtrToPgtype(h.RespondedAt()), pgconv.TimePtrToPgtype(h.ExpiresAt()),
		expected.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update hold", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindDueForExpiry returns active holds whose expiry has passed, for
// the sweep.
func (r *HoldRepository) FindDueForExpiry(ctx context.Context, now time.Time) ([]*hold.Hold, error) {
	rows, err := r.pool.Query(ctx, holdSelect+`
		WHERE status = 'active' AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find due holds", err)
	}
	return collectHolds(rows)
}

func collectHolds(rows pgx.Rows) ([]*hold.Hold, error) {
	defer rows.Close()

	var out []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold row", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate hold rows", err)
	}
	return out, nil
}

func scanHold(row pgx.Row) (*hold.Hold, error) {
	var (
		id            uuid.UUID
		targetKind    string
		targetID      uuid.UUID
		requesterKind string
		requesterID   uuid.UUID
		responderKind pgtype.Text
		responderID   pgtype.UUID
		duration      int
		reason        string
		status        string
		requestedAt   time.Time
		respondedAt   pgtype.Timestamptz
		expiresAt     pgtype.Timestamptz
	)
	if err := row.Scan(&id, &targetKind, &targetID, &requesterKind, &requesterID,
		&responderKind, &responderID, &duration, &reason, &status,
		&requestedAt, &respondedAt, &expiresAt); err != nil {
		return nil, err
	}

	var responder *party.Party
	if respID := pgconv.UUIDPtrFromPgtype(responderID); respID != nil {
		kind := pgconv.StringPtrFromPgtype(responderKind)
		if kind != nil {
			responder = &party.Party{Kind: party.Kind(*kind), ID: *respID}
		}
	}

	return hold.ReconstructHold(
		id,
		hold.Target{Kind: hold.TargetKind(targetKind), ID: targetID},
		party.Party{Kind: party.Kind(requesterKind), ID: requesterID},
		responder,
		duration,
		reason,
		hold.Status(status),
		requestedAt,
		pgconv.TimePtrFromPgtype(respondedAt),
		pgconv.TimePtrFromPgtype(expiresAt),
	), nil
}
