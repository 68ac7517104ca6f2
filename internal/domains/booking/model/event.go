package model

import (
	notificationModel "cleanbook/internal/domains/notification/model"
	"cleanbook/shared/constant"
	"cleanbook/shared/timezone"
)

// Event builds the notification payload for the booking. Member recipients are resolved by the caller.
func (b *Booking) Event(eventType, reason string) notificationModel.BookingEvent {
	event := notificationModel.BookingEvent{
		Type:           eventType,
		BookingID:      b.ID,
		BookingNumber:  b.BookingNumber,
		ServiceName:    b.ServiceName,
		ServiceDate:    timezone.Format(b.ServiceDate, constant.DayFormat),
		ServiceTime:    b.ServiceTime,
		Address:        b.AddressStreet,
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		TotalPrice:     b.TotalPrice,
		Reason:         reason,
		RecipientEmail: b.GuestEmail,
		RecipientName:  b.GuestName,
	}

	if b.UserID != nil {
		event.UserID = *b.UserID
	}

	return event
}
