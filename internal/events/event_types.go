package events

import (
	"time"

	"github.com/spec-kit/wellfood-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventUserLoggedIn       EventType = "user_logged_in"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOTPRequested       EventType = "otp_requested"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	SubjectID string      `json:"subject_id"`
	Email     string      `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Email          string `json:"email"`
	LegacyUpgraded bool   `json:"legacy_upgraded"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID     string  `json:"order_id"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// OTPRequestedPayload payload. Code is carried so the SMS delivery stub
// can log it in development; it never appears in API responses.
type OTPRequestedPayload struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}
