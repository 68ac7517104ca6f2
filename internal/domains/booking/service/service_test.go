package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanbook/config"
	otelMocks "cleanbook/infras/otel/mocks"
	bookingMocks "cleanbook/internal/domains/booking/mocks"
	"cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/booking/model/dto"
	"cleanbook/internal/domains/booking/service"
	catalogMocks "cleanbook/internal/domains/catalog/mocks"
	catalogModel "cleanbook/internal/domains/catalog/model"
	notificationMocks "cleanbook/internal/domains/notification/service/mocks"
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
	serviceID  = "0b6f6f1e-7d55-4c6e-9a0d-2a4b8f1c9e01"
	customerID = "customer-1"
	cleanerID  = "cleaner-1"
)

type fixture struct {
	svc      service.Booking
	repo     *bookingMocks.MockBooking
	catalog  *catalogMocks.MockCatalog
	cache    *cacheMocks.MockRedisCache
	notifier *notificationMocks.MockNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		catalog:  catalogMocks.NewMockCatalog(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
	}

	users := userMocks.NewMockUser(ctrl)
	users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(userModel.User{ID: customerID, Name: "김고객", Email: "customer@example.com"}, nil).AnyTimes()

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.notifier.EXPECT().Booking(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Business.OpenHour = 9
	cfg.Business.CloseHour = 18
	cfg.Business.CancelWindowHours = 24
	cfg.Business.DefaultDuration = 120
	cfg.Business.NumberMaxAttempts = 3

	f.svc = service.New(f.repo, f.catalog, users, f.notifier, permissions.Get(), model.NewNumberGenerator(),
		cfg, f.cache, otelMocks.NewOtel())

	return f
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func cleaningService() catalogModel.Service {
	return catalogModel.Service{
		ID:        serviceID,
		Name:      "입주 청소",
		BasePrice: 300000,
		PriceUnit: model.PriceUnitFixed,
		Duration:  240,
		IsActive:  true,
		Options: catalogModel.Options{
			{Name: "베란다 청소", Price: 30000},
			{Name: "곰팡이 제거", Price: 50000},
		},
	}
}

func futureDate(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DayFormat)
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ServiceID:     serviceID,
		ServiceDate:   futureDate(7),
		ServiceTime:   "10:00",
		Address:       dto.AddressRequest{Street: "서울시 강남구 테헤란로 1"},
		Options:       []string{"베란다 청소"},
		PaymentMethod: model.MethodCard,
	}
}

func bookingStartingIn(d time.Duration, status string) model.Booking {
	start := timezone.Now().Add(d)
	owner := customerID

	return model.Booking{
		ID:            "booking-1",
		BookingNumber: "CL2510170001",
		UserID:        &owner,
		ServiceID:     serviceID,
		Status:        status,
		ServiceDate:   timezone.StartOfDay(start),
		ServiceTime:   start.Format(constant.HourFormat),
		StartAt:       start,
		EndAt:         start.Add(4 * time.Hour),
		Duration:      240,
		PaymentStatus: model.PaymentPending,
	}
}

func TestBookingService_Create(t *testing.T) {
	numberTaken := &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.ConstraintBookingNumber}

	tests := []struct {
		name       string
		req        func() dto.CreateBookingRequest
		service    catalogModel.Service
		overlap    bool
		insertErrs []error
		wantCode   int
		wantErr    bool
	}{
		{
			name:       "successful creation",
			req:        createRequest,
			service:    cleaningService(),
			insertErrs: []error{nil},
		},
		{
			name:       "booking number collision is retried",
			req:        createRequest,
			service:    cleaningService(),
			insertErrs: []error{numberTaken, numberTaken, nil},
		},
		{
			name:       "booking number collisions exhaust attempts",
			req:        createRequest,
			service:    cleaningService(),
			insertErrs: []error{numberTaken, numberTaken, numberTaken},
			wantErr:    true,
			wantCode:   http.StatusInternalServerError,
		},
		{
			name:     "overlapping booking",
			req:      createRequest,
			service:  cleaningService(),
			overlap:  true,
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown option",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.Options = []string{"세차"}

				return req
			},
			service:  cleaningService(),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "service ends after closing time",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.ServiceTime = "15:00"

				return req
			},
			service:  cleaningService(),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive service",
			req:  createRequest,
			service: func() catalogModel.Service {
				s := cleaningService()
				s.IsActive = false

				return s
			}(),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "service not found",
			req:      createRequest,
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.service, nil)
			f.repo.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), constant.Empty).Return(tt.overlap, nil).MaxTimes(1)

			numbers := map[string]bool{}
			for _, insertErr := range tt.insertErrs {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, booking model.Booking) error {
						numbers[booking.BookingNumber] = true

						assert.Regexp(t, `^CL\d{10}$`, booking.BookingNumber)
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, int64(330000), booking.TotalPrice)
						assert.Equal(t, booking.StartAt.Add(240*time.Minute), booking.EndAt)

						return insertErr
					})
			}

			res, err := f.svc.Create(userContext(customerID, constant.RoleCustomer), tt.req())

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, int64(300000), res.Pricing.BasePrice)
			assert.Equal(t, int64(30000), res.Pricing.OptionsPrice)
			assert.Equal(t, int64(330000), res.Pricing.TotalPrice)
			assert.Equal(t, customerID, *res.UserID)
			assert.Nil(t, res.Guest)
			assert.NotEmpty(t, numbers)
		})
	}
}

func TestBookingService_CreateRequiresUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), createRequest())

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestBookingService_CreateGuest(t *testing.T) {
	f := newFixture(t)

	f.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cleaningService(), nil)
	f.repo.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), constant.Empty).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
		assert.Nil(t, booking.UserID)
		assert.Equal(t, "홍길동", booking.GuestName)
		assert.Equal(t, constant.ContextGuest, booking.CreatedBy)

		return nil
	})

	res, err := f.svc.CreateGuest(context.Background(), dto.CreateGuestBookingRequest{
		CreateBookingRequest: createRequest(),
		GuestName:            "홍길동",
		GuestPhone:           "010-1234-5678",
		GuestEmail:           "guest@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, res.Guest)
	assert.Equal(t, "guest@example.com", res.Guest.Email)
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "owner reads booking", ctx: userContext(customerID, constant.RoleCustomer)},
		{name: "admin reads booking", ctx: userContext("admin-1", constant.RoleAdmin)},
		{name: "assigned cleaner reads booking", ctx: userContext(cleanerID, constant.RoleCleaner)},
		{
			name:     "other customer is rejected",
			ctx:      userContext("customer-2", constant.RoleCustomer),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "other cleaner is rejected",
			ctx:      userContext("cleaner-2", constant.RoleCleaner),
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := bookingStartingIn(72*time.Hour, model.StatusConfirmed)
			assigned := cleanerID
			booking.CleanerID = &assigned

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			res, err := f.svc.Get(tt.ctx, booking.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, booking.BookingNumber, res.BookingNumber)
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	t.Run("terminal booking cannot be modified", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingStartingIn(72*time.Hour, model.StatusCompleted), nil)

		special := "현관 비밀번호 1234"
		_, err := f.svc.Update(userContext(customerID, constant.RoleCustomer),
			dto.UpdateBookingRequest{SpecialRequests: &special}, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("reschedule onto a booked interval", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingStartingIn(72*time.Hour, model.StatusPending), nil)
		f.repo.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), "booking-1").Return(true, nil)

		_, err := f.svc.Update(userContext(customerID, constant.RoleCustomer),
			dto.UpdateBookingRequest{ServiceDate: futureDate(10), ServiceTime: "09:00"}, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("options change recalculates pricing", func(t *testing.T) {
		f := newFixture(t)

		booking := bookingStartingIn(72*time.Hour, model.StatusPending)
		booking.Pricing = model.Pricing{BasePrice: 300000, TotalPrice: 300000}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil).Times(2)
		f.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cleaningService(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, int64(80000), fields[model.FieldOptionsPrice])
				assert.Equal(t, int64(380000), fields[model.FieldTotalPrice])
				assert.Equal(t, customerID, fields[constant.FieldModifiedBy])

				return nil
			})

		_, err := f.svc.Update(userContext(customerID, constant.RoleCustomer),
			dto.UpdateBookingRequest{Options: []string{"베란다 청소", "곰팡이 제거"}}, "booking-1")

		require.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(userContext(customerID, constant.RoleCustomer), dto.UpdateBookingRequest{}, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		startsIn time.Duration
		status   string
		ctx      context.Context
		wantCode int
	}{
		{
			name:     "more than a day ahead",
			startsIn: 48 * time.Hour,
			status:   model.StatusConfirmed,
			ctx:      userContext(customerID, constant.RoleCustomer),
		},
		{
			name:     "within the cancellation window",
			startsIn: 10 * time.Hour,
			status:   model.StatusConfirmed,
			ctx:      userContext(customerID, constant.RoleCustomer),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "already completed",
			startsIn: 48 * time.Hour,
			status:   model.StatusCompleted,
			ctx:      userContext(customerID, constant.RoleCustomer),
			wantCode: http.StatusConflict,
		},
		{
			name:     "not the owner",
			startsIn: 48 * time.Hour,
			status:   model.StatusPending,
			ctx:      userContext("customer-2", constant.RoleCustomer),
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := bookingStartingIn(tt.startsIn, tt.status)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
						assert.NotNil(t, fields[model.FieldCancelledAt])
						assert.Equal(t, dto.DefaultCancelReason, fields[model.FieldCancelReason])

						_, args := filter.GetWhereClause()
						assert.Equal(t, model.StatusConfirmed, args["current_status"])

						return 1, nil
					})

				cancelled := booking
				cancelled.Status = model.StatusCancelled
				now := timezone.Now()
				cancelled.CancelledAt = &now
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			}

			res, err := f.svc.Cancel(tt.ctx, dto.CancelBookingRequest{}, booking.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusCancelled, res.Status)
			assert.NotNil(t, res.CancelledAt)
		})
	}
}

func TestBookingService_ChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      string
		req       dto.UpdateStatusRequest
		ctx       context.Context
		updateErr error
		wantCode  int
	}{
		{
			name: "admin confirms and assigns",
			from: model.StatusPending,
			req:  dto.UpdateStatusRequest{Status: model.StatusConfirmed, CleanerID: "5d1e1c4a-8f47-4e37-9a8e-0c4f6b1d2e3f"},
			ctx:  userContext("admin-1", constant.RoleAdmin),
		},
		{
			name: "cleaner starts work",
			from: model.StatusConfirmed,
			req:  dto.UpdateStatusRequest{Status: model.StatusInProgress},
			ctx:  userContext(cleanerID, constant.RoleCleaner),
		},
		{
			name:     "illegal transition",
			from:     model.StatusPending,
			req:      dto.UpdateStatusRequest{Status: model.StatusCompleted},
			ctx:      userContext("admin-1", constant.RoleAdmin),
			wantCode: http.StatusConflict,
		},
		{
			name:     "terminal booking",
			from:     model.StatusCancelled,
			req:      dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			ctx:      userContext("admin-1", constant.RoleAdmin),
			wantCode: http.StatusConflict,
		},
		{
			name:     "customer cannot change status",
			from:     model.StatusPending,
			req:      dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			ctx:      userContext(customerID, constant.RoleCustomer),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "cleaner cannot assign",
			from:     model.StatusConfirmed,
			req:      dto.UpdateStatusRequest{Status: model.StatusInProgress, CleanerID: "5d1e1c4a-8f47-4e37-9a8e-0c4f6b1d2e3f"},
			ctx:      userContext(cleanerID, constant.RoleCleaner),
			wantCode: http.StatusForbidden,
		},
		{
			name:      "unknown cleaner",
			from:      model.StatusPending,
			req:       dto.UpdateStatusRequest{Status: model.StatusConfirmed, CleanerID: "5d1e1c4a-8f47-4e37-9a8e-0c4f6b1d2e3f"},
			ctx:       userContext("admin-1", constant.RoleAdmin),
			updateErr: &pq.Error{Code: constant.PqErrorCodeFkViolation},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			booking := bookingStartingIn(48*time.Hour, tt.from)
			assigned := cleanerID
			booking.CleanerID = &assigned

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.wantCode == 0 || tt.updateErr != nil {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.req.Status, fields[model.FieldStatus])
						assert.Len(t, fields[model.FieldNotes], 1)

						if tt.updateErr != nil {
							return 0, tt.updateErr
						}

						return 1, nil
					})
			}

			if tt.wantCode == 0 {
				updated := booking
				updated.Status = tt.req.Status
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			}

			res, err := f.svc.ChangeStatus(tt.ctx, tt.req, booking.ID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.Status, res.Status)
		})
	}
}

func TestBookingService_ChangeStatus_ConcurrentModification(t *testing.T) {
	f := newFixture(t)

	booking := bookingStartingIn(48*time.Hour, model.StatusPending)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil).Times(1)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

	_, err := f.svc.ChangeStatus(userContext("admin-1", constant.RoleAdmin),
		dto.UpdateStatusRequest{Status: model.StatusConfirmed}, booking.ID)

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Contains(t, err.Error(), model.MessageStatusChanged)
}

func TestBookingService_AvailableSlots(t *testing.T) {
	f := newFixture(t)

	date := futureDate(3)
	day, err := timezone.Parse(constant.DayFormat, date)
	require.NoError(t, err)

	f.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cleaningService(), nil)
	f.repo.EXPECT().Intervals(gomock.Any(), day, day.AddDate(0, 0, 1)).Return([]model.Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(12 * time.Hour)},
	}, nil)

	res, err := f.svc.AvailableSlots(context.Background(), date, serviceID)

	require.NoError(t, err)
	assert.Equal(t, 240, res.Duration)
	require.Len(t, res.Slots, 9)

	available := map[string]bool{}
	for _, slot := range res.Slots {
		available[slot.Time] = slot.Available
	}

	assert.False(t, available["09:00"])
	assert.False(t, available["11:00"])
	assert.True(t, available["12:00"])
	assert.True(t, available["14:00"])
	assert.False(t, available["15:00"])
}

func TestBookingService_AvailableSlotsInvalidDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AvailableSlots(context.Background(), "17-10-2026", constant.Empty)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_CheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		time      string
		overlap   bool
		available bool
	}{
		{name: "free slot", time: "09:00", available: true},
		{name: "booked slot", time: "09:00", overlap: true},
		{name: "ends after closing", time: "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.catalog.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cleaningService(), nil)
			f.repo.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), constant.Empty).Return(tt.overlap, nil).MaxTimes(1)

			res, err := f.svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
				Date:      futureDate(5),
				Time:      tt.time,
				ServiceID: serviceID,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.available, res.Available)
		})
	}
}

func TestBookingService_GetMine(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		_, args := filter.GetWhereClause()
		assert.Equal(t, customerID, args[model.FieldUserID])
		assert.Equal(t, model.StatusPending, args[model.FieldStatus])

		return 1, nil
	})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{bookingStartingIn(48*time.Hour, model.StatusPending)}, nil)

	res, err := f.svc.GetMine(userContext(customerID, constant.RoleCustomer),
		gDto.QueryParams{Page: 1, Limit: 10}, model.StatusPending)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}
