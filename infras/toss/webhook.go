package toss

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	EventPaymentStatusChanged = "PAYMENT_STATUS_CHANGED"

	signatureVersion = "v1:"
)

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type WebhookEvent struct {
	EventType  string `json:"eventType"`
	CreatedAt  string `json:"createdAt"`
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	Data       *struct {
		PaymentKey string `json:"paymentKey"`
		OrderID    string `json:"orderId"`
		Status     string `json:"status"`
	} `json:"data,omitempty"`
}

// ParseWebhookEvent accepts both the flat and the data-wrapped payload shapes.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	event := &WebhookEvent{}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	if event.Data != nil {
		if event.PaymentKey == "" {
			event.PaymentKey = event.Data.PaymentKey
		}

		if event.OrderID == "" {
			event.OrderID = event.Data.OrderID
		}

		if event.Status == "" {
			event.Status = event.Data.Status
		}
	}

	return event, nil
}

// Sign returns the signature header value for body sent at transmissionTime.
func Sign(secret string, body []byte, transmissionTime string) string {
	return signatureVersion + base64.StdEncoding.EncodeToString(mac(secret, body, transmissionTime))
}

// VerifySignature checks header against HMAC-SHA256(secret, body + ":" + transmissionTime).
// The header may carry several comma separated v1 signatures.
func VerifySignature(secret string, body []byte, transmissionTime, header string) error {
	if header == "" || transmissionTime == "" || secret == "" {
		return ErrMissingSignature
	}

	expected := mac(secret, body, transmissionTime)

	for _, candidate := range strings.Split(header, ",") {
		encoded, ok := strings.CutPrefix(strings.TrimSpace(candidate), signatureVersion)
		if !ok {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}

		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrInvalidSignature
}

func mac(secret string, body []byte, transmissionTime string) []byte {
	hash := hmac.New(sha256.New, []byte(secret))
	hash.Write(body)
	hash.Write([]byte(":" + transmissionTime))

	return hash.Sum(nil)
}
