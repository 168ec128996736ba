package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order statuses. An order never fails once accepted; validation is the
// only gate before it enters the pipeline.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// Order represents a placed order
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	OrderID       string      `gorm:"uniqueIndex;size:64;not null" json:"order_id"`
	Session       string      `gorm:"size:128;index" json:"-"`
	UserID        uint        `gorm:"index" json:"user_id,omitempty"`
	Name          string      `gorm:"size:255;not null" json:"name"`
	Email         string      `gorm:"size:255;not null" json:"email"`
	Address       string      `gorm:"size:255;not null" json:"address"`
	City          string      `gorm:"size:128;not null" json:"city"`
	PostalCode    string      `gorm:"size:16;not null" json:"postal_code"`
	PaymentMethod string      `gorm:"size:64;not null" json:"payment_method"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Status        string      `gorm:"size:32;not null;default:pending" json:"status"`
	Items         []OrderItem `gorm:"foreignKey:OrderRef;references:ID" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is one purchased line, priced at checkout time
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderRef  uint    `gorm:"index;not null" json:"-"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Title     string  `gorm:"size:255" json:"title"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}

// TableName overrides the gorm table name
func (Order) TableName() string {
	return "ordenes"
}

// TableName overrides the gorm table name
func (OrderItem) TableName() string {
	return "orden_items"
}

// NewOrderID mints a human-scannable order reference
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	Create(order *Order) error
	FindByOrderID(orderID string) (*Order, error)
	UpdateStatus(orderID string, status string) error
}

// ValidationErrors maps field names to messages and doubles as an error
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}
