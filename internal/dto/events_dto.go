package dto

// PublishSummaryMessage is the payload published when a well description has
// been shown, asking the background consumer to follow up with a summary.
type PublishSummaryMessage struct {
	ChatID      int64  `json:"chat_id"`
	UserID      int64  `json:"user_id"`
	WellNumber  string `json:"well_number"`
	Description string `json:"description"`
	Day         string `json:"day"` // YYYY-MM-DD, part of the cache key
}
