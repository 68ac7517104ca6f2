package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"cleanbook/infras/kafka"
	"cleanbook/infras/mailer"
	"cleanbook/infras/metrics"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/notification/model"
	"cleanbook/shared/constant"
	"cleanbook/shared/timezone"
)

// Notifier delivers best-effort side effects. Calls return immediately; delivery runs on a
// detached context and failures are only logged.
type Notifier interface {
	Booking(ctx context.Context, event model.BookingEvent)
	Mail(ctx context.Context, message mailer.Message)
}

type serviceImpl struct {
	mailer mailer.Mailer
	kafka  kafka.Client
	otel   otel.Otel
}

func New(mailer mailer.Mailer, kafka kafka.Client, otel otel.Otel) Notifier {
	return &serviceImpl{
		mailer: mailer,
		kafka:  kafka,
		otel:   otel,
	}
}

func (s *serviceImpl) Booking(ctx context.Context, event model.BookingEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	go func() {
		c, scope := s.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+"."+event.Type)
		defer scope.End()

		err := s.kafka.Publish(c, kafka.Message{Key: event.BookingNumber, Value: event})
		metrics.IncNotification(model.ChannelKafka, err)

		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", event.Type).Str("bookingNumber", event.BookingNumber).Msg("failed to publish booking event")
		}

		if msg, ok := RenderBookingMail(event); ok {
			s.send(c, msg)
		}
	}()
}

func (s *serviceImpl) Mail(ctx context.Context, message mailer.Message) {
	go func() {
		c, scope := s.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".mail")
		defer scope.End()

		s.send(c, message)
	}()
}

func (s *serviceImpl) send(ctx context.Context, message mailer.Message) {
	err := s.mailer.Send(ctx, message)
	metrics.IncNotification(model.ChannelMail, err)

	if err != nil {
		log.Error().Err(err).Str("subject", message.Subject).Msg("failed to send notification mail")
	}
}
