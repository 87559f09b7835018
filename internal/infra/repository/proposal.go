package repository

import (
	"context"
	"time"

	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/infra"
	"stagebook/internal/infra/db"
	"stagebook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProposalRepository struct {
	pool *pgxpool.Pool
}

func NewProposalRepository(pool *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{pool: pool}
}

const proposalSelect = `
	SELECT id, request_id, legacy_offer_id, proposer_kind, proposer_id, counterpart_id,
	       event_date, payout_cents, status, hold_state, created_at, updated_at
	FROM proposals`

func (r *ProposalRepository) Create(ctx context.Context, tx db.DBTX, p *proposal.Proposal) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO proposals (id, request_id, legacy_offer_id, proposer_kind, proposer_id,
		                       counterpart_id, event_date, payout_cents, status, hold_state,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID(), pgconv.UUIDPtrToPgtype(p.RequestID()), pgconv.UUIDPtrToPgtype(p.LegacyOfferID()),
		p.Proposer().Kind.String(), p.Proposer().ID, p.CounterpartID(),
		p.Date(), p.PayoutCents(), p.Status().String(), string(p.HoldState()),
		p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create proposal", err)
	}
	return nil
}

func (r *ProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	row := r.pool.QueryRow(ctx, proposalSelect+` WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("proposal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find proposal by ID", err)
	}
	return p, nil
}

func (r *ProposalRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM proposals WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check proposal existence", err)
	}
	return exists, nil
}

func (r *ProposalRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*proposal.Proposal, error) {
	rows, err := r.pool.Query(ctx, proposalSelect+` WHERE request_id = $1 ORDER BY created_at`, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find proposals by request", err)
	}
	return collectProposals(rows)
}

func (r *ProposalRepository) FindForParty(ctx context.Context, viewpoint party.Party, from, to time.Time) ([]*proposal.Proposal, error) {
	rows, err := r.pool.Query(ctx, proposalSelect+`
		WHERE ((proposer_kind = $1 AND proposer_id = $2) OR counterpart_id = $2)
		  AND event_date BETWEEN $3 AND $4
		ORDER BY event_date, created_at`,
		viewpoint.Kind.String(), viewpoint.ID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find proposals for party", err)
	}
	return collectProposals(rows)
}

func (r *ProposalRepository) HasAcceptedForRequest(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM proposals WHERE request_id = $1 AND status = 'accepted')`,
		requestID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check accepted proposal", err)
	}
	return exists, nil
}

// UpdateStatusIfPending re-validates the precondition at commit: the
// row only changes if still pending. The partial unique index on
// accepted proposals backs this up for concurrent accepts.
func (r *ProposalRepository) UpdateStatusIfPending(ctx context.Context, tx db.DBTX, id uuid.UUID, status proposal.Status, now time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE proposals SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'`,
		id, status.String(), now,
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err, "proposals_one_accepted_per_request") {
			return false, infra.WrapRepoErr("request already has an accepted proposal", err, infra.KindConflict)
		}
		return false, infra.WrapRepoErr("failed to update proposal status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetHoldState is the only write path for the hold sub-state.
func (r *ProposalRepository) SetHoldState(ctx context.Context, tx db.DBTX, id uuid.UUID, state proposal.HoldState, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE proposals SET hold_state = $2, updated_at = $3 WHERE id = $1`,
		id, string(state), now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set proposal hold state", err)
	}
	return nil
}

// FreezeSiblings freezes every other live proposal on the request.
// Idempotent per row; a retry after partial failure converges.
func (r *ProposalRepository) FreezeSiblings(ctx context.Context, tx db.DBTX, requestID uuid.UUID, exceptID uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE proposals SET hold_state = 'frozen', updated_at = $3
		WHERE request_id = $1 AND id <> $2 AND status = 'pending' AND hold_state <> 'frozen'`,
		requestID, exceptID, now,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to freeze sibling proposals", err)
	}
	return tag.RowsAffected(), nil
}

// UnfreezeByRequest lifts the frozen sub-state once the hold that
// imposed it resolves. A proposal still covered by another active
// hold, on itself, its legacy offer row, or the request, keeps its
// state; callers persist the resolving hold as non-active first, in
// the same transaction, so it never blocks its own cleanup here.
func (r *ProposalRepository) UnfreezeByRequest(ctx context.Context, tx db.DBTX, requestID uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE proposals p SET hold_state = 'none', updated_at = $2
		WHERE p.request_id = $1 AND p.hold_state IN ('frozen', 'held')
		  AND NOT EXISTS (
			SELECT 1 FROM holds h
			WHERE h.status = 'active'
			  AND h.target_id IN (p.id, p.legacy_offer_id, p.request_id))`,
		requestID, now,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to unfreeze proposals", err)
	}
	return tag.RowsAffected(), nil
}

func collectProposals(rows pgx.Rows) ([]*proposal.Proposal, error) {
	defer rows.Close()

	var out []*proposal.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan proposal row", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate proposal rows", err)
	}
	return out, nil
}

func scanProposal(row pgx.Row) (*proposal.Proposal, error) {
	var (
		id            uuid.UUID
		requestID     pgtype.UUID
		legacyOfferID pgtype.UUID
		proposerKind  string
		proposerID    uuid.UUID
		counterpartID uuid.UUID
		date          time.Time
		payoutCents   int64
		status        string
		holdState     string
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(&id, &requestID, &legacyOfferID, &proposerKind, &proposerID, &counterpartID,
		&date, &payoutCents, &status, &holdState, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return proposal.ReconstructProposal(
		id,
		pgconv.UUIDPtrFromPgtype(requestID),
		pgconv.UUIDPtrFromPgtype(legacyOfferID),
		party.Party{Kind: party.Kind(proposerKind), ID: proposerID},
		counterpartID,
		date,
		payoutCents,
		proposal.Status(status),
		proposal.HoldState(holdState),
		proposal.ShapeRequestBid,
		createdAt,
		updatedAt,
	), nil
}
