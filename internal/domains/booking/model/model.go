package model

import (
	"time"

	"cleanbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                   = "id"
	FieldBookingNumber        = "booking_number"
	FieldUserID               = "user_id"
	FieldServiceID            = "service_id"
	FieldCleanerID            = "cleaner_id"
	FieldStatus               = "status"
	FieldServiceDate          = "service_date"
	FieldServiceTime          = "service_time"
	FieldStartAt              = "start_at"
	FieldEndAt                = "end_at"
	FieldDuration             = "duration"
	FieldAddressStreet        = "address_street"
	FieldAddressDetail        = "address_detail"
	FieldAddressZipCode       = "address_zip_code"
	FieldSize                 = "size"
	FieldOptions              = "options"
	FieldSpecialRequests      = "special_requests"
	FieldBasePrice            = "base_price"
	FieldOptionsPrice         = "options_price"
	FieldDiscount             = "discount"
	FieldTotalPrice           = "total_price"
	FieldPaymentMethod        = "payment_method"
	FieldPaymentStatus        = "payment_status"
	FieldPaymentTransactionID = "payment_transaction_id"
	FieldPaidAt               = "paid_at"
	FieldReviewID             = "review_id"
	FieldCancelledAt          = "cancelled_at"
	FieldCancelReason         = "cancel_reason"
	FieldCompletedAt          = "completed_at"
	FieldNotes                = "notes"

	ConstraintBookingNumber = "bookings_booking_number_key"

	ServiceTable = "services"
)

// Cache key prefixes shared by every domain that writes booking rows.
const (
	CacheGet   = "booking:get"
	CacheGets  = "booking:gets"
	CacheCount = "booking:count"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

const (
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
	MethodKakaoPay     = "kakao_pay"
	MethodTossPay      = "toss_pay"
)

type Booking struct {
	ID                   string          `db:"id"`
	BookingNumber        string          `db:"booking_number"`
	UserID               *string         `db:"user_id"`
	GuestName            string          `db:"guest_name"`
	GuestPhone           string          `db:"guest_phone"`
	GuestEmail           string          `db:"guest_email"`
	ServiceID            string          `db:"service_id"`
	ServiceName          string          `db:"service_name" table:"services" column:"name"`
	CleanerID            *string         `db:"cleaner_id"`
	Status               string          `db:"status"`
	ServiceDate          time.Time       `db:"service_date"`
	ServiceTime          string          `db:"service_time"`
	StartAt              time.Time       `db:"start_at"`
	EndAt                time.Time       `db:"end_at"`
	Duration             int             `db:"duration"`
	AddressStreet        string          `db:"address_street"`
	AddressDetail        string          `db:"address_detail"`
	AddressZipCode       string          `db:"address_zip_code"`
	Size                 float64         `db:"size"`
	Options              SelectedOptions `db:"options"`
	SpecialRequests      string          `db:"special_requests"`
	PaymentMethod        string          `db:"payment_method"`
	PaymentStatus        string          `db:"payment_status"`
	PaymentTransactionID string          `db:"payment_transaction_id"`
	PaidAt               *time.Time      `db:"paid_at"`
	ReviewID             *string         `db:"review_id"`
	CancelledAt          *time.Time      `db:"cancelled_at"`
	CancelReason         string          `db:"cancel_reason"`
	CompletedAt          *time.Time      `db:"completed_at"`
	Notes                Notes           `db:"notes"`
	Pricing
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN services ON services.id = bookings.service_id"
}

// OwnedBy reports whether userID placed the booking.
func (b *Booking) OwnedBy(userID string) bool {
	return userID != "" && b.UserID != nil && *b.UserID == userID
}

// AssignedTo reports whether userID is the cleaner assigned to the booking.
func (b *Booking) AssignedTo(userID string) bool {
	return userID != "" && b.CleanerID != nil && *b.CleanerID == userID
}

type SelectedOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type SelectedOptions = model.JSONList[SelectedOption]

type Note struct {
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Notes = model.JSONList[Note]
