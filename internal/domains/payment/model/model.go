package model

import (
	"cleanbook/infras/toss"
	bookingModel "cleanbook/internal/domains/booking/model"
)

const (
	OperationRequest = "request"
	OperationConfirm = "confirm"
	OperationCancel  = "cancel"
	OperationWebhook = "webhook"
)

// GatewayMethod maps a booking payment method to the method name used by the gateway.
func GatewayMethod(method string) (string, bool) {
	switch method {
	case bookingModel.MethodCard:
		return toss.MethodCard, true
	case bookingModel.MethodTossPay:
		return toss.MethodTossPay, true
	default:
		return "", false
	}
}

// Outcome is the local effect of a gateway payment status.
type Outcome struct {
	PaymentStatus string
	// BookingStatus is empty when the booking status is left untouched.
	BookingStatus string
}

// OutcomeOf maps a gateway payment status, false for statuses that have no local effect.
func OutcomeOf(status string) (Outcome, bool) {
	switch status {
	case toss.StatusDone:
		return Outcome{PaymentStatus: bookingModel.PaymentCompleted, BookingStatus: bookingModel.StatusConfirmed}, true
	case toss.StatusCanceled, toss.StatusPartialCanceled:
		return Outcome{PaymentStatus: bookingModel.PaymentRefunded, BookingStatus: bookingModel.StatusCancelled}, true
	case toss.StatusAborted, toss.StatusExpired, toss.StatusFailed:
		return Outcome{PaymentStatus: bookingModel.PaymentFailed}, true
	default:
		return Outcome{}, false
	}
}
