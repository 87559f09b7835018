package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/domain/party"
	"stagebook/internal/pkg/errs"
)

var (
	ErrDomainValidation    = errs.New("domain validation failed")
	ErrNotAuthorized       = errs.New("party is not authorized for this operation")
	ErrHoldNotFound        = errs.New("hold not found")
	ErrHoldTargetNotFound  = errs.New("hold target not found")
	ErrAmbiguousHoldTarget = errs.New("hold target must resolve to exactly one document")
	ErrHoldConflict        = errs.New("target already has a live hold")
	ErrRequestSettled      = errs.New("request is already settled")
	ErrHoldAlreadyResolved = errs.New("hold is already resolved")
	ErrRequestNotFound     = errs.New("request not found")
	ErrRequestNotOpen      = errs.New("request is not open")
	ErrProposalNotFound    = errs.New("proposal not found")
	ErrProposalNotPending  = errs.New("proposal is not pending")
	ErrProposalFrozen      = errs.New("proposal is frozen by an active hold")
)

// withTx runs fn inside one transaction; every guarded update a
// command performs re-validates its precondition there.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// notifyBestEffort enqueues a notification without letting delivery
// problems leak into the command outcome.
func notifyBestEffort(ctx context.Context, n Notifier, recipient party.Party, summary string, referenceID uuid.UUID) {
	if recipient.IsZero() {
		return
	}
	if err := n.Notify(ctx, recipient, summary, referenceID); err != nil {
		slog.Warn("notification delivery failed", "recipient", recipient.ID, "error", err.Error())
	}
}

func opposite(k party.Kind) party.Kind {
	if k == party.KindVenue {
		return party.KindArtist
	}
	return party.KindVenue
}
