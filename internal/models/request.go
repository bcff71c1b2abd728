package models

import "time"

// ItemRequest is a posted need for an item that is not listed yet.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRequestView attaches the items created against the request.
type ItemRequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}
