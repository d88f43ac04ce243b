package model

// Recommendation pairs an item name with how often it was co-purchased
// alongside the target user's recent items. Order among equal frequencies
// is not defined.
type Recommendation struct {
	ItemName string `json:"item_name"`
	Freq     int    `json:"freq"`
}
