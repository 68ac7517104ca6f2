package toss

//go:generate go run go.uber.org/mock/mockgen -source=./toss.go -destination=./mocks/toss_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/shared/constant"
)

const (
	MethodCard    = "card"
	MethodTossPay = "tosspay"
)

const (
	StatusDone            = "DONE"
	StatusCanceled        = "CANCELED"
	StatusPartialCanceled = "PARTIAL_CANCELED"
	StatusAborted         = "ABORTED"
	StatusExpired         = "EXPIRED"
	StatusFailed          = "FAILED"
)

var ErrNotConfigured = errors.New("toss: secret key is not configured")

type PaymentRequest struct {
	Method     string `json:"method"`
	Amount     int64  `json:"amount"`
	OrderID    string `json:"orderId"`
	OrderName  string `json:"orderName"`
	SuccessURL string `json:"successUrl"`
	FailURL    string `json:"failUrl"`
}

type Checkout struct {
	URL string `json:"url"`
}

type Payment struct {
	PaymentKey  string    `json:"paymentKey"`
	OrderID     string    `json:"orderId"`
	OrderName   string    `json:"orderName"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	TotalAmount int64     `json:"totalAmount"`
	ApprovedAt  string    `json:"approvedAt,omitempty"`
	Checkout    *Checkout `json:"checkout,omitempty"`
	Receipt     *Checkout `json:"receipt,omitempty"`
}

// CheckoutURL prefers the checkout page and falls back to the receipt.
func (p *Payment) CheckoutURL() string {
	if p.Checkout != nil && p.Checkout.URL != "" {
		return p.Checkout.URL
	}

	if p.Receipt != nil {
		return p.Receipt.URL
	}

	return ""
}

type Gateway interface {
	RequestPayment(ctx context.Context, req PaymentRequest) (*Payment, error)
	ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error)
	CancelPayment(ctx context.Context, paymentKey, reason string) (*Payment, error)
	GetPayment(ctx context.Context, paymentKey string) (*Payment, error)
}

type client struct {
	baseURL    string
	secretKey  string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Gateway {
	tossCfg := cfg.External.Toss

	timeout := time.Duration(tossCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Limit(tossCfg.RatePerSecond)
	if tossCfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}

	return &client{
		baseURL:    strings.TrimSuffix(tossCfg.BaseURL, "/"),
		secretKey:  tossCfg.SecretKey,
		timeout:    timeout,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, max(tossCfg.Burst, 1)),
		otel:       otl,
	}
}

func (c *client) RequestPayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	return c.do(ctx, "RequestPayment", http.MethodPost, "/payments", req)
}

func (c *client) ConfirmPayment(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error) {
	body := map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderID,
		"amount":     amount,
	}

	return c.do(ctx, "ConfirmPayment", http.MethodPost, "/payments/confirm", body)
}

func (c *client) CancelPayment(ctx context.Context, paymentKey, reason string) (*Payment, error) {
	body := map[string]string{"cancelReason": reason}

	return c.do(ctx, "CancelPayment", http.MethodPost, "/payments/"+url.PathEscape(paymentKey)+"/cancel", body)
}

func (c *client) GetPayment(ctx context.Context, paymentKey string) (*Payment, error) {
	return c.do(ctx, "GetPayment", http.MethodGet, "/payments/"+url.PathEscape(paymentKey), nil)
}

func (c *client) do(ctx context.Context, operation, method, path string, payload any) (payment *Payment, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, "toss."+operation)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err = c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("toss rate limiter: %w", err)
	}

	var body io.Reader
	if payload != nil {
		raw, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to marshal toss request: %w", marshalErr)
		}

		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build toss request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte(c.secretKey+":")))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	scope.SetAttributes(map[string]any{
		"http.method": method,
		"http.path":   path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call toss %s: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read toss response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		gatewayErr := &Error{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, gatewayErr); jsonErr != nil {
			log.Warn().Err(jsonErr).Int("status", resp.StatusCode).Msg("toss returned a non json error body")
		}

		log.Error().
			Str("operation", operation).
			Int("status", resp.StatusCode).
			Str("code", gatewayErr.Code).
			Msg("toss request rejected")

		return nil, gatewayErr
	}

	payment = &Payment{}
	if err = json.Unmarshal(raw, payment); err != nil {
		return nil, fmt.Errorf("failed to decode toss response: %w", err)
	}

	return payment, nil
}
