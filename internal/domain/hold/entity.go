package hold

import (
	"errors"
	"time"

	"stagebook/internal/domain/party"

	"github.com/google/uuid"
)

const (
	MinDurationHours = 1
	MaxDurationHours = 168
)

var (
	ErrInvalidDuration   = errors.New("hold duration must be between 1 and 168 hours")
	ErrInvalidTargetKind = errors.New("invalid hold target kind")
	ErrMissingTarget     = errors.New("hold target is required")
	ErrMissingRequester  = errors.New("hold requester is required")
	ErrNotPending        = errors.New("hold is not pending")
	ErrNotActive         = errors.New("hold is not active")
	ErrAlreadyResolved   = errors.New("hold is already resolved")
	ErrNotRequester      = errors.New("only the requester may cancel a hold")
)

// Target points at exactly one underlying document.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

// Hold is a time-boxed exclusivity lock one party raises against a
// booking, request, or specific proposal.
type Hold struct {
	id            uuid.UUID
	target        Target
	requester     party.Party
	responder     *party.Party
	durationHours int
	reason        string
	status        Status
	requestedAt   time.Time
	respondedAt   *time.Time
	expiresAt     *time.Time
}

func NewHold(target Target, requester party.Party, durationHours int, reason string, now time.Time) (*Hold, error) {
	if !target.Kind.IsValid() {
		return nil, ErrInvalidTargetKind
	}
	if target.ID == uuid.Nil {
		return nil, ErrMissingTarget
	}
	if requester.IsZero() {
		return nil, ErrMissingRequester
	}
	if durationHours < MinDurationHours || durationHours > MaxDurationHours {
		return nil, ErrInvalidDuration
	}

	return &Hold{
		id:            uuid.New(),
		target:        target,
		requester:     requester,
		durationHours: durationHours,
		reason:        reason,
		status:        StatusPending,
		requestedAt:   now,
	}, nil
}

func ReconstructHold(
	id uuid.UUID,
	target Target,
	requester party.Party,
	responder *party.Party,
	durationHours int,
	reason string,
	status Status,
	requestedAt time.Time,
	respondedAt, expiresAt *time.Time,
) *Hold {
	return &Hold{
		id:            id,
		target:        target,
		requester:     requester,
		responder:     responder,
		durationHours: durationHours,
		reason:        reason,
		status:        status,
		requestedAt:   requestedAt,
		respondedAt:   respondedAt,
		expiresAt:     expiresAt,
	}
}

func (h *Hold) ID() uuid.UUID           { return h.id }
func (h *Hold) Target() Target          { return h.target }
func (h *Hold) Requester() party.Party  { return h.requester }
func (h *Hold) Responder() *party.Party { return h.responder }
func (h *Hold) DurationHours() int      { return h.durationHours }
func (h *Hold) Reason() string          { return h.reason }
func (h *Hold) Status() Status          { return h.status }
func (h *Hold) RequestedAt() time.Time  { return h.requestedAt }
func (h *Hold) RespondedAt() *time.Time { return h.respondedAt }
func (h *Hold) ExpiresAt() *time.Time   { return h.expiresAt }

// Approve transitions pending → active and stamps the expiry from the
// requested duration.
func (h *Hold) Approve(responder party.Party, now time.Time) error {
	if h.status != StatusPending {
		if h.status.IsTerminal() || h.status == StatusActive {
			return ErrAlreadyResolved
		}
		return ErrNotPending
	}
	expires := now.Add(time.Duration(h.durationHours) * time.Hour)
	h.status = StatusActive
	h.responder = &responder
	h.respondedAt = &now
	h.expiresAt = &expires
	return nil
}

// Decline is terminal and has no freeze side effects.
func (h *Hold) Decline(responder party.Party, now time.Time) error {
	if h.status != StatusPending {
		return ErrAlreadyResolved
	}
	h.status = StatusDeclined
	h.responder = &responder
	h.respondedAt = &now
	return nil
}

// Cancel is the requester withdrawing a still-pending hold.
func (h *Hold) Cancel(requester party.Party, now time.Time) error {
	if !h.requester.Equal(requester) {
		return ErrNotRequester
	}
	if h.status != StatusPending {
		return ErrAlreadyResolved
	}
	h.status = StatusCancelled
	h.respondedAt = &now
	return nil
}

// ExpireIfDue applies the passive, time-based transition. Returns true
// when the hold flipped to expired.
func (h *Hold) ExpireIfDue(now time.Time) bool {
	if h.status != StatusActive || h.expiresAt == nil {
		return false
	}
	if now.Before(*h.expiresAt) {
		return false
	}
	h.status = StatusExpired
	return true
}

// IsActiveAt reports active status with lazy expiry applied, without
// mutating the hold.
func (h *Hold) IsActiveAt(now time.Time) bool {
	return h.status == StatusActive && h.expiresAt != nil && now.Before(*h.expiresAt)
}

// IsLive covers the exclusivity invariant: at most one pending or
// active hold per target.
func (h *Hold) IsLive(now time.Time) bool {
	return h.status == StatusPending || h.IsActiveAt(now)
}
