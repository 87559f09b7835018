package hold

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusDeclined, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

type TargetKind string

const (
	TargetBooking  TargetKind = "booking"
	TargetRequest  TargetKind = "request"
	TargetProposal TargetKind = "proposal"
)

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetBooking, TargetRequest, TargetProposal:
		return true
	default:
		return false
	}
}

type ResponseAction string

const (
	ActionApprove ResponseAction = "approve"
	ActionDecline ResponseAction = "decline"
)

func (a ResponseAction) IsValid() bool {
	return a == ActionApprove || a == ActionDecline
}
