package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cleanbook/infras/kafka"
	kafkaMocks "cleanbook/infras/kafka/mocks"
	"cleanbook/infras/mailer"
	mailerMocks "cleanbook/infras/mailer/mocks"
	"cleanbook/infras/otel/mocks"
	"cleanbook/internal/domains/notification/model"
	"cleanbook/internal/domains/notification/service"
)

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
	}
}

func TestNotifier_Booking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	notifier := service.New(mockMailer, mockKafka, mocks.NewOtel())

	var wg sync.WaitGroup
	wg.Add(2)

	mockKafka.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
			defer wg.Done()

			if !assert.Len(t, messages, 1) {
				return nil
			}

			assert.Equal(t, "CL2701020001", messages[0].Key)

			raw, err := json.Marshal(messages[0].Value)
			assert.NoError(t, err)
			assert.NotContains(t, string(raw), "guest@example.com")

			return nil
		})

	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			defer wg.Done()

			assert.Equal(t, "guest@example.com", msg.To)
			assert.Contains(t, msg.Subject, "CL2701020001")

			return nil
		})

	notifier.Booking(context.Background(), model.BookingEvent{
		Type:           model.EventBookingCreated,
		BookingNumber:  "CL2701020001",
		RecipientEmail: "guest@example.com",
		RecipientName:  "홍길동",
	})

	waitTimeout(t, &wg)
}

func TestNotifier_BookingPublishFailureStillMails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	notifier := service.New(mockMailer, mockKafka, mocks.NewOtel())

	var wg sync.WaitGroup
	wg.Add(1)

	mockKafka.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, mailer.Message) error {
			wg.Done()

			return errors.New("smtp down")
		})

	notifier.Booking(context.Background(), model.BookingEvent{
		Type:           model.EventBookingCancelled,
		BookingNumber:  "CL2701020002",
		RecipientEmail: "user@example.com",
		Reason:         "customer request",
	})

	waitTimeout(t, &wg)
}

func TestNotifier_Mail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mailerMocks.NewMockMailer(ctrl)
	notifier := service.New(mockMailer, kafkaMocks.NewMockClient(ctrl), mocks.NewOtel())

	var wg sync.WaitGroup
	wg.Add(1)

	want := service.VerificationMail("user@example.com", "홍길동", "https://app/verify/abc")

	mockMailer.EXPECT().
		Send(gomock.Any(), want).
		DoAndReturn(func(context.Context, mailer.Message) error {
			wg.Done()

			return nil
		})

	notifier.Mail(context.Background(), want)

	waitTimeout(t, &wg)
}

func TestRenderBookingMail(t *testing.T) {
	tests := []struct {
		name   string
		event  model.BookingEvent
		wantOK bool
	}{
		{
			name:   "created",
			event:  model.BookingEvent{Type: model.EventBookingCreated, RecipientEmail: "a@b.c"},
			wantOK: true,
		},
		{
			name:   "payment completed",
			event:  model.BookingEvent{Type: model.EventPaymentCompleted, RecipientEmail: "a@b.c"},
			wantOK: true,
		},
		{
			name:  "status change has no mail",
			event: model.BookingEvent{Type: model.EventBookingStatusChanged, RecipientEmail: "a@b.c"},
		},
		{
			name:  "no recipient",
			event: model.BookingEvent{Type: model.EventBookingCreated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := service.RenderBookingMail(tt.event)

			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.NotEmpty(t, msg.Subject)
				assert.NotEmpty(t, msg.Body)
			}
		})
	}
}

func TestPasswordResetMail(t *testing.T) {
	msg := service.PasswordResetMail("user@example.com", "https://app/reset/abc", 10)

	assert.Equal(t, "user@example.com", msg.To)
	assert.Contains(t, msg.Body, "10분")
}
