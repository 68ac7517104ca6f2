package dto

import (
	"time"

	"cleanbook/infras/toss"
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	"cleanbook/shared/timezone"
)

type RequestPaymentRequest struct {
	BookingID  string `json:"booking_id"  validate:"required,uuid"`
	SuccessURL string `json:"success_url" validate:"omitempty,url"`
	FailURL    string `json:"fail_url"    validate:"omitempty,url"`
}

type RequestPaymentResponse struct {
	PaymentKey  string `json:"payment_key"`
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}

type ConfirmPaymentRequest struct {
	PaymentKey string `json:"payment_key" validate:"required,max=200"`
	OrderID    string `json:"order_id"    validate:"required,max=64"`
	Amount     int64  `json:"amount"      validate:"required,gt=0"`
}

type CancelPaymentRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

type PaymentResponse struct {
	BookingID     string  `json:"booking_id"`
	BookingNumber string  `json:"booking_number"`
	ServiceName   string  `json:"service_name"`
	ServiceDate   string  `json:"service_date"`
	BookingStatus string  `json:"booking_status"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	PaymentKey    string  `json:"payment_key,omitempty"`
	Amount        int64   `json:"amount"`
	PaidAt        *string `json:"paid_at,omitempty"`
	CancelReason  string  `json:"cancel_reason,omitempty"`
	// GatewayStatus is the live status reported by the gateway, only set on single lookups.
	GatewayStatus string `json:"gateway_status,omitempty"`
}

func (r *PaymentResponse) FromModel(m bookingModel.Booking) {
	r.BookingID = m.ID
	r.BookingNumber = m.BookingNumber
	r.ServiceName = m.ServiceName
	r.ServiceDate = timezone.Format(m.ServiceDate, constant.DayFormat)
	r.BookingStatus = m.Status
	r.Method = m.PaymentMethod
	r.Status = m.PaymentStatus
	r.PaymentKey = m.PaymentTransactionID
	r.Amount = m.TotalPrice
	r.CancelReason = m.CancelReason

	if m.PaidAt != nil {
		paidAt := timezone.Format(*m.PaidAt, constant.DateFormat)
		r.PaidAt = &paidAt
	}
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []bookingModel.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

// CompletedFields are the booking columns written when the gateway approves a payment.
func CompletedFields(paymentKey string, paidAt time.Time) map[string]any {
	return map[string]any{
		bookingModel.FieldPaymentStatus:        bookingModel.PaymentCompleted,
		bookingModel.FieldPaymentTransactionID: paymentKey,
		bookingModel.FieldPaidAt:               paidAt,
	}
}

// RefundedFields are the booking columns written when a payment is cancelled.
func RefundedFields(reason string, cancelledAt time.Time) map[string]any {
	return map[string]any{
		bookingModel.FieldPaymentStatus: bookingModel.PaymentRefunded,
		bookingModel.FieldCancelledAt:   cancelledAt,
		bookingModel.FieldCancelReason:  reason,
	}
}

// GatewayOrderName is the order title shown on the checkout page.
func GatewayOrderName(booking bookingModel.Booking) string {
	if booking.ServiceName == constant.Empty {
		return booking.BookingNumber
	}

	return booking.ServiceName + " - " + booking.BookingNumber
}

// ToGatewayRequest builds the checkout request for booking.
func (r *RequestPaymentRequest) ToGatewayRequest(booking bookingModel.Booking, method, clientURL string) toss.PaymentRequest {
	success := r.SuccessURL
	if success == constant.Empty {
		success = clientURL + "/payment/success"
	}

	fail := r.FailURL
	if fail == constant.Empty {
		fail = clientURL + "/payment/fail"
	}

	return toss.PaymentRequest{
		Method:     method,
		Amount:     booking.TotalPrice,
		OrderID:    booking.BookingNumber,
		OrderName:  GatewayOrderName(booking),
		SuccessURL: success,
		FailURL:    fail,
	}
}
