package service

import (
	"fmt"

	"cleanbook/infras/mailer"
	"cleanbook/internal/domains/notification/model"
)

const (
	brand        = "청소공작소"
	fallbackName = "고객"
)

// RenderBookingMail returns the customer mail for an event, false when the event has no mail.
func RenderBookingMail(event model.BookingEvent) (mailer.Message, bool) {
	if event.RecipientEmail == "" {
		return mailer.Message{}, false
	}

	msg := mailer.Message{To: event.RecipientEmail}

	name := event.RecipientName
	if name == "" {
		name = fallbackName
	}

	switch event.Type {
	case model.EventBookingCreated:
		msg.Subject = fmt.Sprintf("%s 예약 확인 - %s", brand, event.BookingNumber)
		msg.Body = fmt.Sprintf("안녕하세요 %s님,\n\n예약이 접수되었습니다.\n예약번호: %s\n서비스: %s\n일시: %s %s\n주소: %s\n결제 금액: %d원\n\n감사합니다.",
			name, event.BookingNumber, event.ServiceName, event.ServiceDate, event.ServiceTime, event.Address, event.TotalPrice)
	case model.EventBookingCancelled:
		msg.Subject = "예약 취소 확인 - " + event.BookingNumber
		msg.Body = fmt.Sprintf("예약이 취소되었습니다.\n예약번호: %s\n취소 사유: %s", event.BookingNumber, event.Reason)
	case model.EventPaymentCompleted:
		msg.Subject = fmt.Sprintf("%s 결제 완료 - %s", brand, event.BookingNumber)
		msg.Body = fmt.Sprintf("결제가 완료되었습니다.\n예약번호: %s\n결제 금액: %d원", event.BookingNumber, event.TotalPrice)
	case model.EventPaymentRefunded:
		msg.Subject = fmt.Sprintf("%s 결제 취소 - %s", brand, event.BookingNumber)
		msg.Body = fmt.Sprintf("결제가 취소되었습니다.\n예약번호: %s\n취소 사유: %s", event.BookingNumber, event.Reason)
	default:
		return mailer.Message{}, false
	}

	return msg, true
}

func VerificationMail(to, name, link string) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: brand + " 이메일 인증",
		Body:    fmt.Sprintf("안녕하세요 %s님,\n\n아래 링크를 클릭하여 이메일을 인증해주세요:\n%s\n\n감사합니다.", name, link),
	}
}

func PasswordResetMail(to, link string, validMinutes int) mailer.Message {
	return mailer.Message{
		To:      to,
		Subject: brand + " 비밀번호 재설정",
		Body:    fmt.Sprintf("비밀번호를 재설정하려면 아래 링크를 클릭하세요:\n%s\n\n이 링크는 %d분 동안만 유효합니다.", link, validMinutes),
	}
}
