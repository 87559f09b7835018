package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/hold"
	"stagebook/internal/domain/offer"
	"stagebook/internal/domain/party"
	"stagebook/internal/domain/proposal"
	"stagebook/internal/domain/request"
	"stagebook/internal/infra/db"
)

type HoldRepository interface {
	Create(ctx context.Context, tx db.DBTX, h *hold.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	FindLiveByTarget(ctx context.Context, targetID uuid.UUID) (*hold.Hold, error)
	UpdateIfStatus(ctx context.Context, tx db.DBTX, h *hold.Hold, expected hold.Status) (bool, error)
	FindDueForExpiry(ctx context.Context, now time.Time) ([]*hold.Hold, error)
}

type ProposalRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *proposal.Proposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	HasAcceptedForRequest(ctx context.Context, requestID uuid.UUID) (bool, error)
	UpdateStatusIfPending(ctx context.Context, tx db.DBTX, id uuid.UUID, status proposal.Status, now time.Time) (bool, error)
	SetHoldState(ctx context.Context, tx db.DBTX, id uuid.UUID, state proposal.HoldState, now time.Time) error
	FreezeSiblings(ctx context.Context, tx db.DBTX, requestID uuid.UUID, exceptID uuid.UUID, now time.Time) (int64, error)
	UnfreezeByRequest(ctx context.Context, tx db.DBTX, requestID uuid.UUID, now time.Time) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *request.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CloseIfOpen(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type OfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Notifier delivery is best-effort: command outcomes never depend on it.
type Notifier interface {
	Notify(ctx context.Context, recipient party.Party, summary string, referenceID uuid.UUID) error
}
