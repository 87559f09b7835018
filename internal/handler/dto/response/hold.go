package response

import (
	"time"

	"github.com/google/uuid"

	"stagebook/internal/domain/hold"
)

type HoldResponse struct {
	ID            uuid.UUID  `json:"id"`
	TargetKind    string     `json:"targetKind"`
	TargetID      uuid.UUID  `json:"targetId"`
	RequesterKind string     `json:"requesterKind"`
	RequesterID   uuid.UUID  `json:"requesterId"`
	Status        string     `json:"status"`
	DurationHours int        `json:"durationHours"`
	Reason        string     `json:"reason,omitempty"`
	RequestedAt   time.Time  `json:"requestedAt"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func FromHold(h *hold.Hold) *HoldResponse {
	return &HoldResponse{
		ID:            h.ID(),
		TargetKind:    string(h.Target().Kind),
		TargetID:      h.Target().ID,
		RequesterKind: h.Requester().Kind.String(),
		RequesterID:   h.Requester().ID,
		Status:        h.Status().String(),
		DurationHours: h.DurationHours(),
		Reason:        h.Reason(),
		RequestedAt:   h.RequestedAt(),
		RespondedAt:   h.RespondedAt(),
		ExpiresAt:     h.ExpiresAt(),
	}
}
