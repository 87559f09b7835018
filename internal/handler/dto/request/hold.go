package request

import (
	"github.com/google/uuid"

	"stagebook/internal/usecase/commands"
)

// CreateHoldRequest references its target through exactly one of the
// three ids; the usecase rejects anything else.
type CreateHoldRequest struct {
	BookingID     *uuid.UUID `json:"booking_id,omitempty"`
	RequestID     *uuid.UUID `json:"request_id,omitempty"`
	ProposalID    *uuid.UUID `json:"proposal_id,omitempty"`
	DurationHours int        `json:"duration_hours" binding:"required"`
	Reason        string     `json:"reason,omitempty"`
}

func (r CreateHoldRequest) ToInput() commands.CreateHoldInput {
	return commands.CreateHoldInput{
		BookingID:     r.BookingID,
		RequestID:     r.RequestID,
		ProposalID:    r.ProposalID,
		DurationHours: r.DurationHours,
		Reason:        r.Reason,
	}
}

type RespondHoldRequest struct {
	Action string `json:"action" binding:"required,oneof=approve decline"`
}
