package kafka

import "time"

// OrderPlacedEvent is emitted once per order line when a checkout completes
type OrderPlacedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	ProductID     uint      `json:"product_id"`
	Quantity      int32     `json:"quantity"`
	UserID        uint      `json:"user_id"`
	Session       string    `json:"session"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// Kafka topics
const (
	TopicOrderPlaced = "order-placed"
)
