package repository

import (
	"context"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/domain/request"
	"stagebook/internal/infra"
	"stagebook/internal/infra/db"
	"stagebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

const requestSelect = `
	SELECT id, owner_kind, owner_id, event_date, initiated_by, status,
	       target_id, region, created_at, updated_at
	FROM gig_requests`

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.Request) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO gig_requests (id, owner_kind, owner_id, event_date, initiated_by,
		                          status, target_id, region, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID(), req.Owner().Kind.String(), req.Owner().ID, req.Date(), string(req.InitiatedBy()),
		req.Status().String(), pgconv.UUIDPtrToPgtype(req.TargetID()), pgconv.StringPtrToPgtype(req.Region()),
		req.CreatedAt(), req.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create request", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	row := r.pool.QueryRow(ctx, requestSelect+` WHERE id = $1`, id)
	req, err := scanRequest(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return req, nil
}

func (r *RequestRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM gig_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check request existence", err)
	}
	return exists, nil
}

func (r *RequestRepository) FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*request.Request, error) {
	rows, err := r.pool.Query(ctx, requestSelect+`
		WHERE ((owner_kind = $1 AND owner_id = $2) OR target_id = $2)
		  AND event_date BETWEEN $3 AND $4
		ORDER BY event_date`,
		viewpoint.Kind.String(), viewpoint.ID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find requests for party", err)
	}
	defer rows.Close()

	var out []*request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return out, nil
}

// CloseIfOpen is the conditional write that serializes concurrent
// accepts: only one caller observes rows affected = 1.
func (r *RequestRepository) CloseIfOpen(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE gig_requests SET status = 'closed', updated_at = $2
		WHERE id = $1 AND status = 'open'`,
		id, now,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to close request", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanRequest(row pgx.Row) (*request.Request, error) {
	var (
		id          uuid.UUID
		ownerKind   string
		ownerID     uuid.UUID
		date        time.Time
		initiatedBy string
		status      string
		targetID    pgtype.UUID
		region      pgtype.Text
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &ownerKind, &ownerID, &date, &initiatedBy, &status,
		&targetID, &region, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return request.ReconstructRequest(
		id,
		party.Party{Kind: party.Kind(ownerKind), ID: ownerID},
		date,
		party.Kind(initiatedBy),
		request.Status(status),
		pgconv.UUIDPtrFromPgtype(targetID),
		pgconv.StringPtrFromPgtype(region),
		createdAt,
		updatedAt,
	), nil
}
