package mailer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/config"
	"cleanbook/infras/mailer"
	"cleanbook/infras/otel/mocks"
)

func TestBuildMessage(t *testing.T) {
	msg, err := mailer.BuildMessage("noreply@cleanbook.kr", mailer.Message{
		To:      "kim@example.com",
		Subject: "예약 확인",
		Body:    "예약번호 CL2610170001",
	})
	require.NoError(t, err)
	assert.NotNil(t, msg)

	_, err = mailer.BuildMessage("noreply@cleanbook.kr", mailer.Message{To: "not-an-address"})
	assert.Error(t, err)

	_, err = mailer.BuildMessage("", mailer.Message{To: "kim@example.com"})
	assert.Error(t, err)
}

func TestDisabledMailer(t *testing.T) {
	m := mailer.New(&config.Config{}, mocks.NewOtel())

	assert.NoError(t, m.Send(context.Background(), mailer.Message{To: "kim@example.com", Subject: "hi"}))
}
