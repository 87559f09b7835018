package proposal

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// HoldState is layered on top of Status and written only by the hold
// machinery, never by the proposing party.
type HoldState string

const (
	HoldNone         HoldState = "none"
	HoldHeld         HoldState = "held"
	HoldFrozen       HoldState = "frozen"
	HoldAcceptedHeld HoldState = "accepted_held"
)

func (h HoldState) IsValid() bool {
	switch h {
	case HoldNone, HoldHeld, HoldFrozen, HoldAcceptedHeld:
		return true
	default:
		return false
	}
}

// SourceShape tags which storage representation a canonical proposal
// came from. The legacy venue-offer table and the unified request-bid
// table can both describe the same logical proposal.
type SourceShape string

const (
	ShapeRequestBid  SourceShape = "request_bid"
	ShapeLegacyOffer SourceShape = "legacy_offer"
)
