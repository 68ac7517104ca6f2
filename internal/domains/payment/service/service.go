package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/metrics"
	"cleanbook/infras/otel"
	"cleanbook/infras/toss"
	bookingModel "cleanbook/internal/domains/booking/model"
	bookingRepo "cleanbook/internal/domains/booking/repository"
	notificationModel "cleanbook/internal/domains/notification/model"
	notificationService "cleanbook/internal/domains/notification/service"
	"cleanbook/internal/domains/payment/model"
	"cleanbook/internal/domains/payment/model/dto"
	userModel "cleanbook/internal/domains/user/model"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/permissions"
	"cleanbook/shared"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	"cleanbook/shared/timezone"
)

const cacheHistory = bookingModel.CacheGets + ":payments"

type Payment interface {
	Request(ctx context.Context, req dto.RequestPaymentRequest) (dto.RequestPaymentResponse, error)
	Confirm(ctx context.Context, req dto.ConfirmPaymentRequest) (dto.PaymentResponse, error)
	Cancel(ctx context.Context, paymentKey string, req dto.CancelPaymentRequest) (dto.PaymentResponse, error)
	History(ctx context.Context, req gDto.QueryParams) (dto.GetPaymentsResponse, error)
	Get(ctx context.Context, paymentKey string) (dto.PaymentResponse, error)
	Webhook(ctx context.Context, body []byte, signature, transmissionTime string) error
}

type serviceImpl struct {
	repo        bookingRepo.Booking
	userRepo    userRepo.User
	gateway     toss.Gateway
	notifier    notificationService.Notifier
	permissions *permissions.PermissionData
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo bookingRepo.Booking,
	userRepo userRepo.User,
	gateway toss.Gateway,
	notifier notificationService.Notifier,
	permissions *permissions.PermissionData,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		userRepo:    userRepo,
		gateway:     gateway,
		notifier:    notifier,
		permissions: permissions,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Request(ctx context.Context, req dto.RequestPaymentRequest) (res dto.RequestPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorize(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName),
		permissions.OpPaymentRequest)
	if err != nil {
		return res, err
	}

	if booking.PaymentStatus == bookingModel.PaymentCompleted {
		return res, failure.BadRequestFromString("booking is already paid")
	}

	if booking.Status == bookingModel.StatusCancelled {
		return res, failure.Conflict("booking is cancelled")
	}

	method, ok := model.GatewayMethod(booking.PaymentMethod)
	if !ok {
		return res, failure.BadRequestFromString("payment method not supported")
	}

	payment, err := s.gateway.RequestPayment(ctx, req.ToGatewayRequest(booking, method, s.cfg.App.ClientURL))
	metrics.IncPayment(model.OperationRequest, err)

	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to request payment")

		return res, failure.FromGateway(err)
	}

	userID, _ := shared.UserFromContext(ctx)

	fields := shared.TransformFields(struct{}{}, userID)
	fields[bookingModel.FieldPaymentTransactionID] = payment.PaymentKey

	if err = s.repo.Update(ctx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to store payment key")

		return res, fmt.Errorf("failed to store payment key: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	res.PaymentKey = payment.PaymentKey
	res.OrderID = booking.BookingNumber
	res.CheckoutURL = payment.CheckoutURL()

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterEq(bookingModel.TableName, bookingModel.FieldBookingNumber, req.OrderID))
	if err != nil {
		return res, err
	}

	if req.Amount != booking.TotalPrice {
		return res, failure.BadRequestFromString("payment amount does not match the booking total")
	}

	if booking.PaymentStatus == bookingModel.PaymentCompleted {
		return res, failure.BadRequestFromString("booking is already paid")
	}

	if booking.Status == bookingModel.StatusCancelled {
		return res, failure.Conflict("booking is cancelled")
	}

	if _, err = s.gateway.ConfirmPayment(ctx, req.PaymentKey, req.OrderID, req.Amount); err != nil {
		metrics.IncPayment(model.OperationConfirm, err)
		log.Error().Err(err).Str("orderID", req.OrderID).Msg("failed to confirm payment")

		return res, failure.FromGateway(err)
	}

	metrics.IncPayment(model.OperationConfirm, nil)

	userID, _ := shared.UserFromContext(ctx)
	now := timezone.Now()

	fields := dto.CompletedFields(req.PaymentKey, now)
	target := constant.Empty

	if bookingModel.CanTransition(booking.Status, bookingModel.StatusConfirmed) {
		target = bookingModel.StatusConfirmed
	}

	if err = s.apply(ctx, booking, target, fields, userID); err != nil {
		return res, err
	}

	booking = merge(booking, target, bookingModel.PaymentCompleted)
	booking.PaymentTransactionID = req.PaymentKey
	booking.PaidAt = &now

	s.notify(ctx, notificationModel.EventPaymentCompleted, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, paymentKey string, req dto.CancelPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorize(ctx, byPaymentKey(paymentKey), permissions.OpPaymentCancel)
	if err != nil {
		return res, err
	}

	if booking.PaymentStatus != bookingModel.PaymentCompleted {
		return res, failure.BadRequestFromString("payment is not completed")
	}

	target := constant.Empty

	if booking.Status != bookingModel.StatusCancelled {
		if err = bookingModel.Transition(booking.Status, bookingModel.StatusCancelled); err != nil {
			return res, failure.Conflict(err.Error())
		}

		target = bookingModel.StatusCancelled
	}

	if _, err = s.gateway.CancelPayment(ctx, paymentKey, req.Reason); err != nil {
		metrics.IncPayment(model.OperationCancel, err)
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to cancel payment")

		return res, failure.FromGateway(err)
	}

	metrics.IncPayment(model.OperationCancel, nil)

	userID, _ := shared.UserFromContext(ctx)
	now := timezone.Now()

	if err = s.apply(ctx, booking, target, dto.RefundedFields(req.Reason, now), userID); err != nil {
		return res, err
	}

	booking = merge(booking, target, bookingModel.PaymentRefunded)
	booking.CancelledAt = &now
	booking.CancelReason = req.Reason

	s.notify(ctx, notificationModel.EventPaymentRefunded, booking, req.Reason)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, req gDto.QueryParams) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentHistory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	if req.SortBy == constant.Empty {
		req.SortBy = constant.DefaultValueSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	filter := shared.FilterEq(bookingModel.TableName, bookingModel.FieldUserID, userID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    bookingModel.FieldPaymentStatus,
		Operator: gDto.FilterOperatorIn,
		Value:    []string{bookingModel.PaymentCompleted, bookingModel.PaymentRefunded},
		Table:    bookingModel.TableName,
	})

	cacheKey := shared.BuildCacheKeyWithQuery(cacheHistory, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment history")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment history to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, paymentKey string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorize(ctx, byPaymentKey(paymentKey), permissions.OpPaymentRead)
	if err != nil {
		return res, err
	}

	payment, err := s.gateway.GetPayment(ctx, paymentKey)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to get payment from gateway")

		return res, failure.FromGateway(err)
	}

	res.FromModel(booking)
	res.GatewayStatus = payment.Status

	return res, nil
}

// Webhook applies a signed gateway notification. Unknown orders and replays are acknowledged.
func (s *serviceImpl) Webhook(ctx context.Context, body []byte, signature, transmissionTime string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentWebhook")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = toss.VerifySignature(s.cfg.External.Toss.WebhookSecret, body, transmissionTime, signature); err != nil {
		metrics.IncPayment(model.OperationWebhook, err)
		log.Warn().Err(err).Msg("rejected payment webhook")

		if errors.Is(err, toss.ErrMissingSignature) {
			return failure.Unauthorized("missing webhook signature")
		}

		return failure.Unauthorized("invalid webhook signature")
	}

	event, err := toss.ParseWebhookEvent(body)
	if err != nil {
		return failure.BadRequest(err)
	}

	if event.EventType != toss.EventPaymentStatusChanged {
		log.Info().Str("eventType", event.EventType).Msg("ignoring payment webhook event")

		return nil
	}

	outcome, ok := model.OutcomeOf(event.Status)
	if !ok {
		log.Info().Str("status", event.Status).Str("orderID", event.OrderID).Msg("ignoring payment webhook status")

		return nil
	}

	booking, err := s.find(ctx, shared.FilterEq(bookingModel.TableName, bookingModel.FieldBookingNumber, event.OrderID))
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			log.Warn().Str("orderID", event.OrderID).Msg("payment webhook for unknown order")

			return nil
		}

		return err
	}

	target := constant.Empty

	if outcome.BookingStatus != constant.Empty && booking.Status != outcome.BookingStatus {
		if tErr := bookingModel.Transition(booking.Status, outcome.BookingStatus); tErr != nil {
			log.Warn().Err(tErr).Str("bookingID", booking.ID).Msg("payment webhook status change not applied")
		} else {
			target = outcome.BookingStatus
		}
	}

	if target == constant.Empty && booking.PaymentStatus == outcome.PaymentStatus {
		log.Info().Str("bookingID", booking.ID).Msg("payment webhook already applied")

		return nil
	}

	now := timezone.Now()
	fields := map[string]any{bookingModel.FieldPaymentStatus: outcome.PaymentStatus}
	eventType := notificationModel.EventPaymentFailed

	switch outcome.PaymentStatus {
	case bookingModel.PaymentCompleted:
		fields = dto.CompletedFields(event.PaymentKey, now)
		eventType = notificationModel.EventPaymentCompleted
		booking.PaidAt = &now
	case bookingModel.PaymentRefunded:
		fields[bookingModel.FieldCancelledAt] = now
		eventType = notificationModel.EventPaymentRefunded
		booking.CancelledAt = &now
	}

	if err = s.apply(ctx, booking, target, fields, constant.ContextSystem); err != nil {
		return err
	}

	metrics.IncPayment(model.OperationWebhook, nil)

	booking = merge(booking, target, outcome.PaymentStatus)
	s.notify(ctx, eventType, booking, constant.Empty)

	return nil
}

// apply writes payment fields and, when target is set, the status change guarded by the observed status.
func (s *serviceImpl) apply(ctx context.Context, booking bookingModel.Booking, target string, fields map[string]any, actor string) error {
	for key, value := range shared.TransformFields(struct{}{}, actor) {
		fields[key] = value
	}

	filter := shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)

	if target != constant.Empty {
		fields[bookingModel.FieldStatus] = target
		filter = gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: bookingModel.TableName},
				gDto.Filter{
					ArgName:  "current_status",
					Field:    bookingModel.FieldStatus,
					Operator: gDto.FilterOperatorEq,
					Value:    booking.Status,
					Table:    bookingModel.TableName,
				},
			},
		}
	}

	affected, err := s.repo.UpdateAffected(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to update booking payment")

		return fmt.Errorf("failed to update booking payment: %w", err)
	}

	if affected == 0 {
		log.Error().
			Str("bookingID", booking.ID).
			Str("paymentTransactionID", booking.PaymentTransactionID).
			Str("observedStatus", booking.Status).
			Msg("booking changed before the payment update was stored")

		return failure.Conflict(bookingModel.MessageStatusChanged)
	}

	if target != constant.Empty {
		metrics.IncStatusTransition(booking.Status, target)
	}

	s.invalidate(ctx, booking.ID)

	return nil
}

// authorize loads a booking and checks op against the caller's role and ownership.
func (s *serviceImpl) authorize(ctx context.Context, filter gDto.FilterGroup, op string) (bookingModel.Booking, error) {
	booking, err := s.find(ctx, filter)
	if err != nil {
		return booking, err
	}

	userID, role := shared.UserFromContext(ctx)
	if !s.permissions.Allows(op, role, booking.OwnedBy(userID)) {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (bookingModel.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) notify(ctx context.Context, eventType string, booking bookingModel.Booking, reason string) {
	event := booking.Event(eventType, reason)

	if booking.UserID == nil {
		s.notifier.Booking(ctx, event)

		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		user, err := s.userRepo.Get(c, shared.FilterByID(*booking.UserID, userModel.FieldID, userModel.TableName),
			userModel.FieldName, userModel.FieldEmail)
		if err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to resolve payment recipient")
		}

		event.RecipientEmail = user.Email
		event.RecipientName = user.Name

		s.notifier.Booking(c, event)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheGets)
		shared.InvalidateCaches(c, s.cache, bookingModel.CacheCount)
	}()
}

func byPaymentKey(paymentKey string) gDto.FilterGroup {
	return shared.FilterEq(bookingModel.TableName, bookingModel.FieldPaymentTransactionID, paymentKey)
}

func merge(booking bookingModel.Booking, status, paymentStatus string) bookingModel.Booking {
	if status != constant.Empty {
		booking.Status = status
	}

	booking.PaymentStatus = paymentStatus

	return booking
}
