package dto

// WebhookResponse is the {status, body} result of one inbound event.
// Telegram only inspects the HTTP status; the body is for operators.
type WebhookResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
