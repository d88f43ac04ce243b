package model

import "time"

// Item is a pending grocery-list entry. Quantity and Notes are nullable on
// the wire: blank values are stored and returned as NULL, matching the
// client's expectations.
type Item struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemName  string    `json:"item_name"`
	Quantity  *string   `json:"quantity"`
	Notes     *string   `json:"notes"`
	IsBought  bool      `json:"is_bought"`
	CreatedAt time.Time `json:"created_at"`
}
