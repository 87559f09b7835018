package request

type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusExpired:
		return true
	default:
		return false
	}
}
