package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// SlotStatus tracks one artist's commitment inside a booking. A bill
// can carry several acts confirming independently.
type SlotStatus string

const (
	SlotConfirmed SlotStatus = "confirmed"
	SlotPending   SlotStatus = "pending"
	SlotCancelled SlotStatus = "cancelled"
)

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotConfirmed, SlotPending, SlotCancelled:
		return true
	default:
		return false
	}
}

type BillingRole string

const (
	RoleHeadliner BillingRole = "headliner"
	RoleSupport   BillingRole = "support"
	RoleOpener    BillingRole = "opener"
)

func (r BillingRole) IsValid() bool {
	switch r {
	case RoleHeadliner, RoleSupport, RoleOpener:
		return true
	default:
		return false
	}
}
