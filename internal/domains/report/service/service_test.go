package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"cleanbook/config"
	otelMocks "cleanbook/infras/otel/mocks"
	"cleanbook/internal/domains/report/export"
	reportMocks "cleanbook/internal/domains/report/mocks"
	"cleanbook/internal/domains/report/model"
	"cleanbook/internal/domains/report/model/dto"
	"cleanbook/internal/domains/report/service"
	userMocks "cleanbook/internal/domains/user/mocks"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
)

type fixture struct {
	svc   service.Report
	repo  *reportMocks.MockReport
	users *userMocks.MockUser
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  reportMocks.NewMockReport(ctrl),
		users: userMocks.NewMockUser(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Name = "cleanbook"
	cfg.Business.OpenHour = 9
	cfg.Business.CloseHour = 18

	f.svc = service.New(f.repo, f.users, cfg, otelMocks.NewOtel())

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.repo.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) (model.Summary, error) {
				assert.Equal(t, 24*time.Hour, to.Sub(from))

				return model.Summary{Bookings: 3, Completed: 1, NewUsers: 2, Revenue: 480000}, nil
			}),
		f.repo.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, from, to time.Time) (model.Summary, error) {
				assert.Equal(t, 1, from.Day())
				assert.Equal(t, 1, to.Day())

				return model.Summary{Bookings: 40, NewUsers: 12, Revenue: 9600000}, nil
			}),
	)
	f.repo.EXPECT().StatusCounts(gomock.Any()).Return([]model.StatusCount{{Status: "pending", Count: 4}}, nil)
	f.repo.EXPECT().PopularServices(gomock.Any(), model.TopServicesLimit).
		Return([]model.ServiceRevenue{{ServiceID: "svc-1", Name: "입주청소", Count: 20, Revenue: 8000000}}, nil)
	f.repo.EXPECT().RecentBookings(gomock.Any(), model.RecentBookingLimit).
		Return([]model.RecentBooking{{ID: "b-1", BookingNumber: "CL2610170001", CustomerName: "홍길동", Status: "pending"}}, nil)
	f.repo.EXPECT().AverageRating(gomock.Any()).Return(4.36, nil)

	res, err := f.svc.Dashboard(adminContext())

	require.NoError(t, err)
	assert.Equal(t, 3, res.Today.Bookings)
	assert.Equal(t, int64(480000), res.Today.Revenue)
	assert.Equal(t, 40, res.Monthly.Bookings)
	assert.Equal(t, 4, res.BookingsByStatus["pending"])
	assert.Equal(t, 0, res.BookingsByStatus["completed"])
	require.Len(t, res.PopularServices, 1)
	require.Len(t, res.RecentBookings, 1)
	assert.Equal(t, "CL2610170001", res.RecentBookings[0].BookingNumber)
	assert.Equal(t, 4.4, res.AverageRating)
}

func TestDashboardRepositoryError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Summary(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Summary{}, errors.New("connection refused"))

	_, err := f.svc.Dashboard(adminContext())

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestRevenueStats(t *testing.T) {
	tests := []struct {
		name         string
		query        dto.RevenueQuery
		setupMock    func(f fixture)
		expectedCode int
	}{
		{
			name:  "monthly buckets",
			query: dto.RevenueQuery{StartDate: "2026-07-01", EndDate: "2026-09-30", GroupBy: model.GroupByMonth},
			setupMock: func(f fixture) {
				f.repo.EXPECT().RevenueBuckets(gomock.Any(), gomock.Any(), gomock.Any(), model.GroupByMonth).
					Return([]model.RevenueBucket{
						{Bucket: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Count: 1, Revenue: 400000},
						{Bucket: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Count: 2, Revenue: 160000},
					}, nil)
				f.repo.EXPECT().RevenueByService(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name:         "inverted range",
			query:        dto.RevenueQuery{StartDate: "2026-09-30", EndDate: "2026-07-01"},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.RevenueStats(adminContext(), tt.query)

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, dto.PeriodResponse{From: "2026-07-01", To: "2026-09-30"}, res.Period)
			assert.Equal(t, int64(560000), res.TotalRevenue)
			assert.Equal(t, 3, res.TotalBookings)
			assert.Equal(t, "2026-07", res.RevenueData[0].Label)
			assert.Empty(t, res.RevenueByService)
		})
	}
}

func TestExportRevenue(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().RevenueBuckets(gomock.Any(), gomock.Any(), gomock.Any(), "").
		Return([]model.RevenueBucket{{Bucket: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Count: 2, Revenue: 480000}}, nil)
	f.repo.EXPECT().RevenueByService(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.ServiceRevenue{{ServiceID: "svc-1", Name: "입주청소", Count: 2, Revenue: 480000}}, nil)

	res, err := f.svc.ExportRevenue(adminContext(), dto.RevenueQuery{StartDate: "2026-09-01", EndDate: "2026-09-30"})

	require.NoError(t, err)
	assert.Equal(t, "revenue_2026-09-01_to_2026-09-30.xlsx", res.FileName)
	assert.Equal(t, export.ContentTypeXLSX, res.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(res.Data))
	require.NoError(t, err)

	defer book.Close()

	label, err := book.GetCellValue(export.SheetRevenue, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", label)
}

func TestBookingStats(t *testing.T) {
	f := newFixture(t)

	var since time.Time

	f.repo.EXPECT().DailyBookings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s time.Time) ([]model.DailyBookings, error) {
			since = s

			return []model.DailyBookings{{Day: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Total: 5, Completed: 2, Cancelled: 1}}, nil
		})
	f.repo.EXPECT().BookingsByHour(gomock.Any(), gomock.Any()).Return([]model.SlotCount{{Slot: 10, Count: 3}}, nil)
	f.repo.EXPECT().BookingsByWeekday(gomock.Any(), gomock.Any()).Return([]model.SlotCount{{Slot: 6, Count: 4}}, nil)

	res, err := f.svc.BookingStats(adminContext(), model.Period30d)

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), since, 25*time.Hour)
	require.Len(t, res.DailyBookings, 1)
	assert.Equal(t, "2026-10-01", res.DailyBookings[0].Date)
	assert.Equal(t, 10, res.BookingsByHour[0].Slot)
	assert.Equal(t, 6, res.BookingsByDayOfWeek[0].Slot)
}

func TestUserStats(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().UserSummary(gomock.Any()).Return(model.UserSummary{Total: 8, Active: 7, Verified: 6}, nil)
	f.repo.EXPECT().DailySignups(gomock.Any(), gomock.Any()).Return([]model.DailyCount{{Day: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), Count: 2}}, nil)
	f.repo.EXPECT().TopSpenders(gomock.Any(), model.TopSpendersLimit).
		Return([]model.TopSpender{{UserID: "u-1", Name: "홍길동", BookingCount: 3, TotalSpent: 1200000}}, nil)

	res, err := f.svc.UserStats(adminContext())

	require.NoError(t, err)
	assert.Equal(t, 75.0, res.Summary.VerificationRate)
	assert.Equal(t, "2026-10-16", res.UserGrowth[0].Date)
	assert.Equal(t, int64(1200000), res.TopUsers[0].TotalSpent)
}

func TestServiceStatsAndCleaners(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ServiceStats(gomock.Any()).
		Return([]model.ServiceStat{{ServiceID: "svc-1", Name: "입주청소", TotalBookings: 10, AverageRating: 4.666}}, nil)
	f.repo.EXPECT().Cleaners(gomock.Any()).
		Return([]model.CleanerStat{{ID: "c-1", Name: "김청소", TotalJobs: 12, CompletedJobs: 10, AverageRating: 4.8, TotalReviews: 9}}, nil)

	services, err := f.svc.ServiceStats(adminContext())
	require.NoError(t, err)
	assert.Equal(t, 4.7, services.Services[0].AverageRating)

	cleaners, err := f.svc.Cleaners(adminContext())
	require.NoError(t, err)
	assert.Equal(t, 10, cleaners.Cleaners[0].CompletedJobs)
}

func TestCreateCleaner(t *testing.T) {
	req := dto.CreateCleanerRequest{Name: "김청소", Email: "Cleaner@Example.com", Password: "cleaner123", Phone: "01098765432"}

	tests := []struct {
		name         string
		setupMock    func(f fixture)
		expectedCode int
	}{
		{
			name: "verified cleaner account",
			setupMock: func(f fixture) {
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleCleaner, user.Role)
						assert.True(t, user.IsVerified)
						assert.True(t, user.Active)
						assert.Equal(t, "cleaner@example.com", user.Email)
						assert.Equal(t, "010-9876-5432", user.Phone)
						assert.NotEqual(t, req.Password, user.Password)
						assert.Equal(t, "admin-1", user.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "referral code collision is retried",
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
						Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: userModel.ConstraintReferralCode}),
					f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "email taken",
			setupMock: func(f fixture) {
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: userModel.ConstraintEmail})
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CreateCleaner(adminContext(), req)

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, constant.RoleCleaner, res.Role)
			assert.Regexp(t, `^CL[A-Z0-9]{6}$`, res.ReferralCode)
		})
	}
}

func TestUpdateCleaner(t *testing.T) {
	active := false
	cleaner := userModel.User{ID: "c-1", Name: "김청소", Role: constant.RoleCleaner, Active: true}

	tests := []struct {
		name         string
		req          dto.UpdateCleanerRequest
		setupMock    func(f fixture)
		expectedCode int
	}{
		{
			name: "deactivate",
			req:  dto.UpdateCleanerRequest{Active: &active, Phone: "010 1111 2222"},
			setupMock: func(f fixture) {
				updated := cleaner
				updated.Active = false

				gomock.InOrder(
					f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cleaner, nil),
					f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
				)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, &active, fields[userModel.FieldActive])
						assert.Equal(t, "010-1111-2222", fields[userModel.FieldPhone])
						assert.NotContains(t, fields, userModel.FieldName)

						return nil
					})
			},
		},
		{
			name: "not a cleaner",
			req:  dto.UpdateCleanerRequest{Name: "김고객"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, constant.RoleCleaner, args[userModel.FieldRole])

						return userModel.User{}, nil
					})
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "empty update",
			req:          dto.UpdateCleanerRequest{},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.UpdateCleaner(adminContext(), tt.req, "c-1")

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.False(t, res.Active)
		})
	}
}

func TestCleanerSchedule(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "c-1", Role: constant.RoleCleaner}, nil)
	f.repo.EXPECT().CleanerSchedule(gomock.Any(), "c-1", gomock.Any(), gomock.Any()).
		Return([]model.ScheduleEntry{{
			BookingID:     "b-1",
			BookingNumber: "CL2610200001",
			ServiceDate:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
			ServiceTime:   "10:00",
			AddressStreet: "서울시 강남구 테헤란로 123",
			AddressDetail: "101동 1001호",
		}}, nil)

	res, err := f.svc.CleanerSchedule(adminContext(), "c-1", dto.ScheduleQuery{StartDate: "2026-10-19", EndDate: "2026-10-25"})

	require.NoError(t, err)
	assert.Equal(t, dto.PeriodResponse{From: "2026-10-19", To: "2026-10-25"}, res.Period)
	require.Len(t, res.Schedule, 1)
	assert.Equal(t, "2026-10-20", res.Schedule[0].ServiceDate)
	assert.Equal(t, "서울시 강남구 테헤란로 123 101동 1001호", res.Schedule[0].Address)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Settings(adminContext())

	assert.Equal(t, "cleanbook", res.Name)
	assert.Equal(t, "09:00", res.Operation.StartTime)
	assert.Equal(t, "18:00", res.Operation.EndTime)
}
