package toss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/infras/toss"
)

func TestVerifySignature(t *testing.T) {
	const (
		secret = "whsec"
		sentAt = "2026-10-17T10:00:00+09:00"
	)

	body := []byte(`{"eventType":"PAYMENT_STATUS_CHANGED","data":{"orderId":"CL2610170001","status":"DONE"}}`)
	valid := toss.Sign(secret, body, sentAt)

	tests := []struct {
		name     string
		body     []byte
		sentAt   string
		header   string
		expected error
	}{
		{name: "valid", body: body, sentAt: sentAt, header: valid},
		{name: "valid among several", body: body, sentAt: sentAt, header: "v1:AAAA, " + valid},
		{name: "missing header", body: body, sentAt: sentAt, header: "", expected: toss.ErrMissingSignature},
		{name: "missing transmission time", body: body, sentAt: "", header: valid, expected: toss.ErrMissingSignature},
		{name: "tampered body", body: []byte(`{"eventType":"PAYMENT_STATUS_CHANGED"}`), sentAt: sentAt, header: valid, expected: toss.ErrInvalidSignature},
		{name: "replayed with other time", body: body, sentAt: "2026-10-17T11:00:00+09:00", header: valid, expected: toss.ErrInvalidSignature},
		{name: "wrong version prefix", body: body, sentAt: sentAt, header: "v2:" + valid[3:], expected: toss.ErrInvalidSignature},
		{name: "not base64", body: body, sentAt: sentAt, header: "v1:%%%", expected: toss.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toss.VerifySignature(secret, tt.body, tt.sentAt, tt.header)
			if tt.expected == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseWebhookEvent(t *testing.T) {
	wrapped, err := toss.ParseWebhookEvent([]byte(`{"eventType":"PAYMENT_STATUS_CHANGED","data":{"paymentKey":"pk","orderId":"CL2610170001","status":"DONE"}}`))
	require.NoError(t, err)
	assert.Equal(t, "CL2610170001", wrapped.OrderID)
	assert.Equal(t, toss.StatusDone, wrapped.Status)
	assert.Equal(t, "pk", wrapped.PaymentKey)

	flat, err := toss.ParseWebhookEvent([]byte(`{"eventType":"PAYMENT_STATUS_CHANGED","orderId":"CL2610170002","status":"CANCELED"}`))
	require.NoError(t, err)
	assert.Equal(t, "CL2610170002", flat.OrderID)
	assert.Equal(t, toss.StatusCanceled, flat.Status)

	_, err = toss.ParseWebhookEvent([]byte(`not-json`))
	assert.Error(t, err)
}
