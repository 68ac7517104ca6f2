package payment

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cleanbook/infras/otel"
	"cleanbook/internal/domains/payment/model/dto"
	"cleanbook/internal/domains/payment/service"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
)

const paramPaymentID = "paymentId"

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/request", handler.RequestPayment)
		r.Post("/confirm", handler.ConfirmPayment)
		r.Post("/cancel/{paymentId}", handler.CancelPayment)
		r.Post("/webhook/toss", handler.TossWebhook)
		r.Get("/history", handler.GetPaymentHistory)
		r.Get("/{paymentId}", handler.GetPayment)
	})
}

// RequestPayment opens a checkout for an unpaid booking.
// @Summary Request a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.RequestPaymentRequest true "Request Payment Request"
// @Success 200 {object} response.Data[dto.RequestPaymentResponse] "Checkout created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/request [post]
// @Security BearerAuth
func (handler *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestPayment")
	defer scope.End()

	req := dto.RequestPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Request(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment requested for booking " + req.BookingID)

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmPayment confirms a payment approved by the customer.
// @Summary Confirm a payment
// @Description The amount must equal the booking total. A successful confirmation also confirms the booking.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPaymentRequest true "Confirm Payment Request"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment confirmed successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	req := dto.ConfirmPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment confirmed for order " + req.OrderID)

	response.WithJSONMessage(w, http.StatusOK, "Payment confirmed successfully", res)
}

// CancelPayment refunds a completed payment and cancels its booking.
// @Summary Cancel a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param paymentId path string true "Payment key"
// @Param request body dto.CancelPaymentRequest true "Cancel Payment Request"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/cancel/{paymentId} [post]
// @Security BearerAuth
func (handler *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelPayment")
	defer scope.End()

	paymentKey := chi.URLParam(r, paramPaymentID)

	req := dto.CancelPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, paymentKey, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment cancelled by user " + user)

	response.WithJSONMessage(w, http.StatusOK, "Payment cancelled successfully", res)
}

// TossWebhook receives payment status events from the gateway.
// @Summary Toss payments webhook
// @Description The body signature is checked with the configured webhook secret.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook/toss [post]
func (handler *Handler) TossWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TossWebhook")
	defer scope.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, constant.RequestMaxMemory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(w, failure.BadRequestFromString("failed to read request body"))

		return
	}

	signature := r.Header.Get(constant.RequestHeaderTossSignature)
	transmissionTime := r.Header.Get(constant.RequestHeaderTossTransmission)

	if err := handler.service.Webhook(ctx, body, signature, transmissionTime); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process payment webhook")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Webhook processed")
}

// GetPaymentHistory lists the payments of the caller.
// @Summary Payment history
// @Description Customers see their own payments, admins see all.
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "Payment history"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/history [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.History(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPayment retrieves a payment by its key.
// @Summary Get a payment
// @Tags Payment
// @Produce json
// @Param paymentId path string true "Payment key"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{paymentId} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, paramPaymentID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
