package model

import "time"

// Purchase is an immutable log entry for a completed purchase.
type Purchase struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ItemName    string    `json:"item_name"`
	PurchasedOn time.Time `json:"purchased_on"`
}

// HistoryEntry is the wire shape returned by the history endpoint.
type HistoryEntry struct {
	ItemName    string    `json:"item_name"`
	PurchasedOn time.Time `json:"purchased_on"`
}
