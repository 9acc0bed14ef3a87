package events

import "time"

// Event is the envelope published to the checkout topic. Payload carries
// event-specific fields (amounts, gateway codes) as loose JSON.
type Event struct {
	EventID     string         `json:"event_id"`
	OrderID     string         `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	UserID      string         `json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Type        string         `json:"type"`
	Payload     map[string]any `json:"payload,omitempty"`
}

const (
	EventCheckoutStarted    = "checkout.started"
	EventCheckoutRedirected = "checkout.redirected"
	EventCheckoutCompleted  = "checkout.completed"
	EventCheckoutFailed     = "checkout.failed"
)
