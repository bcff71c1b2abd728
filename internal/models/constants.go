package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Booking list slices. ALL, WAITING and REJECTED select by status;
// CURRENT, PAST and FUTURE select by the booking window against "now".
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

// ValidState reports whether s is a recognized booking list slice.
func ValidState(s string) bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return true
	}
	return false
}

const (
	// DefaultPageSize is applied when a list request omits "size".
	DefaultPageSize = 10

	// HeaderUserID carries the caller identity on authenticated routes.
	HeaderUserID = "X-Sharer-User-Id"
)

// Page is an offset+limit window over a list endpoint.
type Page struct {
	From int
	Size int
}

// Normalize applies defaults for unset values.
func (p Page) Normalize() Page {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.From < 0 {
		p.From = 0
	}
	return p
}
