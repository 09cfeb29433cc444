package shop

import "time"

// Order statuses accepted by update_status.
const (
	StatusNew            = "NEW"
	StatusPreparing      = "PREPARING"
	StatusReady          = "READY"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusCompleted      = "COMPLETED"
	StatusCancelled      = "CANCELLED"
)

// Statuses lists every order status in workflow order.
var Statuses = []string{
	StatusNew,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// NextStatus returns the status after s, or s itself at the end of the flow.
// Cancelled orders stay cancelled.
func NextStatus(s string) string {
	for i, v := range Statuses {
		if v != s {
			continue
		}
		if s == StatusCompleted || s == StatusCancelled {
			return s
		}
		return Statuses[i+1]
	}
	return s
}

type Customer struct {
	ID    int     `json:"id"`
	Name  *string `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

// DisplayName falls back to the phone number for anonymous customers.
func (c *Customer) DisplayName() string {
	if c == nil {
		return "-"
	}
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	return c.Phone
}

type Order struct {
	ID            int        `json:"id"`
	Customer      *Customer  `json:"customer"`
	TotalAmount   string     `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	PlacedAt      time.Time  `json:"placed_at"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	Notes         *string    `json:"notes"`
}

type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Unit     string `json:"unit"`
	Stock    int    `json:"stock"`
	IsActive bool   `json:"is_active"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Status    string `json:"status"`
	NewStatus string `json:"new_status"`
	Error     string `json:"error"`
}
