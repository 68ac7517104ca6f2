package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanbook/config"
	otelMocks "cleanbook/infras/otel/mocks"
	"cleanbook/infras/toss"
	tossMocks "cleanbook/infras/toss/mocks"
	bookingMocks "cleanbook/internal/domains/booking/mocks"
	bookingModel "cleanbook/internal/domains/booking/model"
	notificationMocks "cleanbook/internal/domains/notification/service/mocks"
	"cleanbook/internal/domains/payment/model/dto"
	"cleanbook/internal/domains/payment/service"
	userMocks "cleanbook/internal/domains/user/mocks"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/permissions"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	"cleanbook/shared/timezone"
)

const (
	customerID    = "customer-1"
	bookingID     = "7c1e9f1a-5b1d-4a53-9d8e-4f0a0c3b2d11"
	bookingNumber = "CL2510170001"
	paymentKey    = "tgen_20251017ABCDE"
	webhookSecret = "whsec_test"
)

type fixture struct {
	svc      service.Payment
	repo     *bookingMocks.MockBooking
	gateway  *tossMocks.MockGateway
	notifier *notificationMocks.MockNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		gateway:  tossMocks.NewMockGateway(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
	}

	users := userMocks.NewMockUser(ctrl)
	users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: customerID, Name: "김고객", Email: "customer@example.com"}, nil).AnyTimes()

	redis := cacheMocks.NewMockRedisCache(ctrl)
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.notifier.EXPECT().Booking(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}
	cfg.App.ClientURL = "https://cleanbook.example.com"
	cfg.Cache.TTL = 3600
	cfg.External.Toss.WebhookSecret = webhookSecret

	f.svc = service.New(f.repo, users, f.gateway, f.notifier, permissions.Get(), cfg, redis, otelMocks.NewOtel())

	return f
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func pendingBooking() bookingModel.Booking {
	owner := customerID

	return bookingModel.Booking{
		ID:            bookingID,
		BookingNumber: bookingNumber,
		UserID:        &owner,
		ServiceName:   "입주 청소",
		Status:        bookingModel.StatusPending,
		ServiceDate:   timezone.StartOfDay(timezone.Now().AddDate(0, 0, 7)),
		ServiceTime:   "10:00",
		PaymentMethod: bookingModel.MethodCard,
		PaymentStatus: bookingModel.PaymentPending,
		Pricing:       bookingModel.Pricing{BasePrice: 300000, OptionsPrice: 30000, TotalPrice: 330000},
	}
}

func paidBooking(status string) bookingModel.Booking {
	booking := pendingBooking()
	booking.Status = status
	booking.PaymentStatus = bookingModel.PaymentCompleted
	booking.PaymentTransactionID = paymentKey

	return booking
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		booking      func() bookingModel.Booking
		gatewayErr   error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:    "owner requests card payment",
			ctx:     userContext(customerID, constant.RoleCustomer),
			booking: pendingBooking,
		},
		{
			name:         "other customer is forbidden",
			ctx:          userContext("customer-2", constant.RoleCustomer),
			booking:      pendingBooking,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin is not the owner",
			ctx:          userContext("admin-1", constant.RoleAdmin),
			booking:      pendingBooking,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "already paid",
			ctx:          userContext(customerID, constant.RoleCustomer),
			booking:      func() bookingModel.Booking { return paidBooking(bookingModel.StatusConfirmed) },
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "booking is already paid",
		},
		{
			name: "kakao pay is not supported",
			ctx:  userContext(customerID, constant.RoleCustomer),
			booking: func() bookingModel.Booking {
				booking := pendingBooking()
				booking.PaymentMethod = bookingModel.MethodKakaoPay

				return booking
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "payment method not supported",
		},
		{
			name:         "gateway rejection keeps its message",
			ctx:          userContext(customerID, constant.RoleCustomer),
			booking:      pendingBooking,
			gatewayErr:   &toss.Error{Status: http.StatusBadRequest, Code: "INVALID_REQUEST", Message: "잘못된 요청입니다."},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "잘못된 요청입니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking(), nil)

			reachesGateway := tt.expectedCode == 0 || tt.gatewayErr != nil
			if reachesGateway {
				f.gateway.EXPECT().RequestPayment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req toss.PaymentRequest) (*toss.Payment, error) {
						assert.Equal(t, toss.MethodCard, req.Method)
						assert.Equal(t, int64(330000), req.Amount)
						assert.Equal(t, bookingNumber, req.OrderID)
						assert.Equal(t, "입주 청소 - "+bookingNumber, req.OrderName)
						assert.Equal(t, "https://cleanbook.example.com/payment/success", req.SuccessURL)
						assert.Equal(t, "https://cleanbook.example.com/payment/fail", req.FailURL)

						if tt.gatewayErr != nil {
							return nil, tt.gatewayErr
						}

						return &toss.Payment{
							PaymentKey: paymentKey,
							OrderID:    bookingNumber,
							Checkout:   &toss.Checkout{URL: "https://pay.toss.im/checkout/abc"},
						}, nil
					})
			}

			if tt.expectedCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, paymentKey, fields[bookingModel.FieldPaymentTransactionID])
						assert.Equal(t, customerID, fields[constant.FieldModifiedBy])

						return nil
					})
			}

			res, err := f.svc.Request(tt.ctx, dto.RequestPaymentRequest{BookingID: bookingID})

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				if tt.expectedMsg != "" {
					assert.Contains(t, err.Error(), tt.expectedMsg)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, paymentKey, res.PaymentKey)
			assert.Equal(t, bookingNumber, res.OrderID)
			assert.Equal(t, "https://pay.toss.im/checkout/abc", res.CheckoutURL)
		})
	}
}

func TestConfirmAmountMismatch(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.Confirm(userContext(customerID, constant.RoleCustomer), dto.ConfirmPaymentRequest{
		PaymentKey: paymentKey,
		OrderID:    bookingNumber,
		Amount:     1000,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), paymentKey, bookingNumber, int64(330000)).
		Return(&toss.Payment{PaymentKey: paymentKey, Status: toss.StatusDone}, nil)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
			assert.Equal(t, bookingModel.PaymentCompleted, fields[bookingModel.FieldPaymentStatus])
			assert.Equal(t, bookingModel.StatusConfirmed, fields[bookingModel.FieldStatus])
			assert.Equal(t, paymentKey, fields[bookingModel.FieldPaymentTransactionID])
			assert.NotNil(t, fields[bookingModel.FieldPaidAt])

			_, args := filter.GetWhereClause()
			assert.Equal(t, bookingModel.StatusPending, args["current_status"])

			return 1, nil
		})

	res, err := f.svc.Confirm(userContext(customerID, constant.RoleCustomer), dto.ConfirmPaymentRequest{
		PaymentKey: paymentKey,
		OrderID:    bookingNumber,
		Amount:     330000,
	})

	require.NoError(t, err)
	assert.Equal(t, bookingModel.PaymentCompleted, res.Status)
	assert.Equal(t, bookingModel.StatusConfirmed, res.BookingStatus)
	assert.NotNil(t, res.PaidAt)
}

func TestConfirmConcurrentModification(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
	f.gateway.EXPECT().ConfirmPayment(gomock.Any(), paymentKey, bookingNumber, int64(330000)).
		Return(&toss.Payment{PaymentKey: paymentKey, Status: toss.StatusDone}, nil)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	_, err := f.svc.Confirm(userContext(customerID, constant.RoleCustomer), dto.ConfirmPaymentRequest{
		PaymentKey: paymentKey,
		OrderID:    bookingNumber,
		Amount:     330000,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Contains(t, err.Error(), bookingModel.MessageStatusChanged)
}

func TestConfirmUnknownOrder(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

	_, err := f.svc.Confirm(context.Background(), dto.ConfirmPaymentRequest{PaymentKey: paymentKey, OrderID: "CL0000000000", Amount: 1})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name           string
		ctx            context.Context
		booking        bookingModel.Booking
		expectedCode   int
		expectedStatus string
	}{
		{
			name:           "owner refunds a confirmed booking",
			ctx:            userContext(customerID, constant.RoleCustomer),
			booking:        paidBooking(bookingModel.StatusConfirmed),
			expectedStatus: bookingModel.StatusCancelled,
		},
		{
			name:           "admin refunds an already cancelled booking",
			ctx:            userContext("admin-1", constant.RoleAdmin),
			booking:        paidBooking(bookingModel.StatusCancelled),
			expectedStatus: bookingModel.StatusCancelled,
		},
		{
			name:         "cleaner is forbidden",
			ctx:          userContext("cleaner-1", constant.RoleCleaner),
			booking:      paidBooking(bookingModel.StatusConfirmed),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "unpaid booking",
			ctx:          userContext(customerID, constant.RoleCustomer),
			booking:      pendingBooking(),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "completed booking cannot be cancelled",
			ctx:          userContext(customerID, constant.RoleCustomer),
			booking:      paidBooking(bookingModel.StatusCompleted),
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.expectedCode == 0 {
				f.gateway.EXPECT().CancelPayment(gomock.Any(), paymentKey, "일정 변경").
					Return(&toss.Payment{PaymentKey: paymentKey, Status: toss.StatusCanceled}, nil)
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, bookingModel.PaymentRefunded, fields[bookingModel.FieldPaymentStatus])
						assert.Equal(t, "일정 변경", fields[bookingModel.FieldCancelReason])
						assert.NotNil(t, fields[bookingModel.FieldCancelledAt])

						return 1, nil
					})
			}

			res, err := f.svc.Cancel(tt.ctx, paymentKey, dto.CancelPaymentRequest{Reason: "일정 변경"})

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, bookingModel.PaymentRefunded, res.Status)
			assert.Equal(t, tt.expectedStatus, res.BookingStatus)
		})
	}
}

func TestGet(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paidBooking(bookingModel.StatusConfirmed), nil)
	f.gateway.EXPECT().GetPayment(gomock.Any(), paymentKey).
		Return(&toss.Payment{PaymentKey: paymentKey, Status: toss.StatusDone}, nil)

	res, err := f.svc.Get(userContext(customerID, constant.RoleCustomer), paymentKey)

	require.NoError(t, err)
	assert.Equal(t, bookingModel.PaymentCompleted, res.Status)
	assert.Equal(t, toss.StatusDone, res.GatewayStatus)
	assert.Equal(t, int64(330000), res.Amount)
}

func TestHistory(t *testing.T) {
	t.Run("requires user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.History(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("paid and refunded bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.payment_status IN")
				assert.Equal(t, customerID, args[bookingModel.FieldUserID])

				return 2, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{paidBooking(bookingModel.StatusConfirmed), paidBooking(bookingModel.StatusCompleted)}, nil)

		res, err := f.svc.History(userContext(customerID, constant.RoleCustomer), gDto.QueryParams{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, res.Payments, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
	})
}

func webhookBody(status string) []byte {
	return []byte(`{"eventType":"PAYMENT_STATUS_CHANGED","createdAt":"2025-10-17T10:00:00.000000","data":{"paymentKey":"` +
		paymentKey + `","orderId":"` + bookingNumber + `","status":"` + status + `"}}`)
}

func TestWebhookSignature(t *testing.T) {
	const transmission = "2025-10-17T10:00:00+09:00"

	body := webhookBody(toss.StatusDone)

	tests := []struct {
		name      string
		signature string
		time      string
	}{
		{name: "missing signature", signature: "", time: transmission},
		{name: "missing transmission time", signature: toss.Sign(webhookSecret, body, transmission), time: ""},
		{name: "wrong secret", signature: toss.Sign("other", body, transmission), time: transmission},
		{name: "tampered transmission time", signature: toss.Sign(webhookSecret, body, transmission), time: "2025-10-17T10:00:01+09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			err := f.svc.Webhook(context.Background(), body, tt.signature, tt.time)

			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		})
	}
}

func TestWebhook(t *testing.T) {
	const transmission = "2025-10-17T10:00:00+09:00"

	tests := []struct {
		name           string
		status         string
		booking        bookingModel.Booking
		expectUpdate   bool
		expectedStatus any
		expectedPay    string
	}{
		{
			name:           "done confirms a pending booking",
			status:         toss.StatusDone,
			booking:        pendingBooking(),
			expectUpdate:   true,
			expectedStatus: bookingModel.StatusConfirmed,
			expectedPay:    bookingModel.PaymentCompleted,
		},
		{
			name:         "replayed done is acknowledged",
			status:       toss.StatusDone,
			booking:      paidBooking(bookingModel.StatusConfirmed),
			expectUpdate: false,
		},
		{
			name:           "canceled refunds and cancels",
			status:         toss.StatusCanceled,
			booking:        paidBooking(bookingModel.StatusConfirmed),
			expectUpdate:   true,
			expectedStatus: bookingModel.StatusCancelled,
			expectedPay:    bookingModel.PaymentRefunded,
		},
		{
			name:           "canceled on a completed booking only refunds",
			status:         toss.StatusCanceled,
			booking:        paidBooking(bookingModel.StatusCompleted),
			expectUpdate:   true,
			expectedStatus: nil,
			expectedPay:    bookingModel.PaymentRefunded,
		},
		{
			name:           "expired marks the payment failed",
			status:         toss.StatusExpired,
			booking:        pendingBooking(),
			expectUpdate:   true,
			expectedStatus: nil,
			expectedPay:    bookingModel.PaymentFailed,
		},
		{
			name:           "failed marks the payment failed",
			status:         toss.StatusFailed,
			booking:        pendingBooking(),
			expectUpdate:   true,
			expectedStatus: nil,
			expectedPay:    bookingModel.PaymentFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			body := webhookBody(tt.status)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.expectUpdate {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.expectedPay, fields[bookingModel.FieldPaymentStatus])
						assert.Equal(t, tt.expectedStatus, fields[bookingModel.FieldStatus])
						assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

						return 1, nil
					})
			} else {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			}

			err := f.svc.Webhook(context.Background(), body, toss.Sign(webhookSecret, body, transmission), transmission)
			assert.NoError(t, err)
		})
	}
}

func TestWebhookUnknownOrder(t *testing.T) {
	const transmission = "2025-10-17T10:00:00+09:00"

	f := newFixture(t)
	body := webhookBody(toss.StatusDone)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.Webhook(context.Background(), body, toss.Sign(webhookSecret, body, transmission), transmission)
	assert.NoError(t, err)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	const transmission = "2025-10-17T10:00:00+09:00"

	f := newFixture(t)
	body := []byte(`{"eventType":"DEPOSIT_CALLBACK","data":{"orderId":"` + bookingNumber + `"}}`)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.Webhook(context.Background(), body, toss.Sign(webhookSecret, body, transmission), transmission)
	assert.NoError(t, err)
}
