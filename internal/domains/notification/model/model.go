package model

import "time"

const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
	EventPaymentCompleted     = "payment.completed"
	EventPaymentRefunded      = "payment.refunded"
	EventPaymentFailed        = "payment.failed"
)

const (
	ChannelMail  = "mail"
	ChannelKafka = "kafka"
)

// BookingEvent is published to Kafka and rendered into customer mail.
// Recipient fields are used for mail only and never published.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	UserID        string    `json:"user_id,omitempty"`
	ServiceName   string    `json:"service_name,omitempty"`
	ServiceDate   string    `json:"service_date,omitempty"`
	ServiceTime   string    `json:"service_time,omitempty"`
	Address       string    `json:"-"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	TotalPrice    int64     `json:"total_price"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`

	RecipientEmail string `json:"-"`
	RecipientName  string `json:"-"`
}
