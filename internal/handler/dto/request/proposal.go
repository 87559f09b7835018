package request

import (
	"time"

	"github.com/google/uuid"

	"stagebook/internal/usecase/commands"
)

// SubmitProposalRequest answers a request when request_id is set;
// otherwise it is a direct bid and needs the counterpart and date.
type SubmitProposalRequest struct {
	RequestID     *uuid.UUID `json:"request_id,omitempty"`
	CounterpartID uuid.UUID  `json:"counterpart_id,omitempty"`
	Date          time.Time  `json:"date,omitempty"`
	PayoutCents   int64      `json:"payout_cents"`
}

func (r SubmitProposalRequest) ToInput() commands.SubmitProposalInput {
	return commands.SubmitProposalInput{
		RequestID:     r.RequestID,
		CounterpartID: r.CounterpartID,
		Date:          r.Date,
		PayoutCents:   r.PayoutCents,
	}
}
