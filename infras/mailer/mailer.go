package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/shared/constant"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
}

// New returns an SMTP mailer, or a mailer that only logs when SMTP is disabled.
func New(cfg *config.Config, otl otel.Otel) Mailer {
	if !cfg.External.SMTP.Enable {
		log.Info().Msg("SMTP is disabled, notification mails are logged only")

		return &logMailer{}
	}

	return &smtpMailer{
		config: cfg,
		otel:   otl,
	}
}

func (m *smtpMailer) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, "mailer.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	smtpCfg := m.config.External.SMTP

	msg, err := BuildMessage(smtpCfg.From, message)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(smtpCfg.Host,
		mail.WithPort(smtpCfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(smtpCfg.Username),
		mail.WithPassword(smtpCfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("mail sent")

	return nil
}

// BuildMessage renders a plain text message.
func BuildMessage(from string, message Message) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Body)

	return msg, nil
}

type logMailer struct{}

func (*logMailer) Send(_ context.Context, message Message) error {
	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("mail skipped, smtp disabled")

	return nil
}
