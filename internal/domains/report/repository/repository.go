package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/report/model"
	"cleanbook/shared/constant"
	"cleanbook/shared/logger"
	"cleanbook/shared/timezone"
)

// Report runs read-only aggregates against the read replica.
// Timestamp ranges are half-open [from, to); the cleaner schedule includes both dates.
type Report interface {
	Summary(ctx context.Context, from, to time.Time) (model.Summary, error)
	StatusCounts(ctx context.Context) ([]model.StatusCount, error)
	PopularServices(ctx context.Context, limit int) ([]model.ServiceRevenue, error)
	RecentBookings(ctx context.Context, limit int) ([]model.RecentBooking, error)
	AverageRating(ctx context.Context) (float64, error)
	RevenueBuckets(ctx context.Context, from, to time.Time, groupBy string) ([]model.RevenueBucket, error)
	RevenueByService(ctx context.Context, from, to time.Time) ([]model.ServiceRevenue, error)
	DailyBookings(ctx context.Context, since time.Time) ([]model.DailyBookings, error)
	BookingsByHour(ctx context.Context, since time.Time) ([]model.SlotCount, error)
	BookingsByWeekday(ctx context.Context, since time.Time) ([]model.SlotCount, error)
	UserSummary(ctx context.Context) (model.UserSummary, error)
	DailySignups(ctx context.Context, since time.Time) ([]model.DailyCount, error)
	TopSpenders(ctx context.Context, limit int) ([]model.TopSpender, error)
	ServiceStats(ctx context.Context) ([]model.ServiceStat, error)
	Cleaners(ctx context.Context) ([]model.CleanerStat, error)
	CleanerSchedule(ctx context.Context, cleanerID string, from, to time.Time) ([]model.ScheduleEntry, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) Summary(ctx context.Context, from, to time.Time) (model.Summary, error) {
	var res model.Summary

	err := r.get(ctx, "Summary", &res, querySummary,
		from, to, day(from), day(to), bookingModel.StatusCompleted, bookingModel.PaymentCompleted)

	return res, err
}

func (r *repositoryImpl) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	var res []model.StatusCount

	err := r.selectAll(ctx, "StatusCounts", &res, queryStatusCounts)

	return res, err
}

func (r *repositoryImpl) PopularServices(ctx context.Context, limit int) ([]model.ServiceRevenue, error) {
	var res []model.ServiceRevenue

	err := r.selectAll(ctx, "PopularServices", &res, queryPopularServices, bookingModel.PaymentCompleted, limit)

	return res, err
}

func (r *repositoryImpl) RecentBookings(ctx context.Context, limit int) ([]model.RecentBooking, error) {
	var res []model.RecentBooking

	err := r.selectAll(ctx, "RecentBookings", &res, queryRecentBookings, limit)

	return res, err
}

func (r *repositoryImpl) AverageRating(ctx context.Context) (float64, error) {
	var res float64

	err := r.get(ctx, "AverageRating", &res, queryAverageRating)

	return res, err
}

func (r *repositoryImpl) RevenueBuckets(ctx context.Context, from, to time.Time, groupBy string) ([]model.RevenueBucket, error) {
	var res []model.RevenueBucket

	err := r.selectAll(ctx, "RevenueBuckets", &res, queryRevenueBuckets,
		from, to, model.GroupUnit(groupBy), zone(), bookingModel.PaymentCompleted)

	return res, err
}

func (r *repositoryImpl) RevenueByService(ctx context.Context, from, to time.Time) ([]model.ServiceRevenue, error) {
	var res []model.ServiceRevenue

	err := r.selectAll(ctx, "RevenueByService", &res, queryRevenueByService, from, to, bookingModel.PaymentCompleted)

	return res, err
}

func (r *repositoryImpl) DailyBookings(ctx context.Context, since time.Time) ([]model.DailyBookings, error) {
	var res []model.DailyBookings

	err := r.selectAll(ctx, "DailyBookings", &res, queryDailyBookings,
		since, zone(), bookingModel.StatusCompleted, bookingModel.StatusCancelled)

	return res, err
}

func (r *repositoryImpl) BookingsByHour(ctx context.Context, since time.Time) ([]model.SlotCount, error) {
	var res []model.SlotCount

	err := r.selectAll(ctx, "BookingsByHour", &res, queryBookingsByHour, since, zone())

	return res, err
}

func (r *repositoryImpl) BookingsByWeekday(ctx context.Context, since time.Time) ([]model.SlotCount, error) {
	var res []model.SlotCount

	err := r.selectAll(ctx, "BookingsByWeekday", &res, queryBookingsByWeekday, day(since))

	return res, err
}

func (r *repositoryImpl) UserSummary(ctx context.Context) (model.UserSummary, error) {
	var res model.UserSummary

	err := r.get(ctx, "UserSummary", &res, queryUserSummary)

	return res, err
}

func (r *repositoryImpl) DailySignups(ctx context.Context, since time.Time) ([]model.DailyCount, error) {
	var res []model.DailyCount

	err := r.selectAll(ctx, "DailySignups", &res, queryDailySignups, since, zone())

	return res, err
}

func (r *repositoryImpl) TopSpenders(ctx context.Context, limit int) ([]model.TopSpender, error) {
	var res []model.TopSpender

	err := r.selectAll(ctx, "TopSpenders", &res, queryTopSpenders, bookingModel.PaymentCompleted, limit)

	return res, err
}

func (r *repositoryImpl) ServiceStats(ctx context.Context) ([]model.ServiceStat, error) {
	var res []model.ServiceStat

	err := r.selectAll(ctx, "ServiceStats", &res, queryServiceStats, bookingModel.StatusCompleted, bookingModel.PaymentCompleted)

	return res, err
}

func (r *repositoryImpl) Cleaners(ctx context.Context) ([]model.CleanerStat, error) {
	var res []model.CleanerStat

	err := r.selectAll(ctx, "Cleaners", &res, queryCleaners, constant.RoleCleaner, bookingModel.StatusCompleted)

	return res, err
}

func (r *repositoryImpl) CleanerSchedule(ctx context.Context, cleanerID string, from, to time.Time) ([]model.ScheduleEntry, error) {
	var res []model.ScheduleEntry

	err := r.selectAll(ctx, "CleanerSchedule", &res, queryCleanerSchedule, cleanerID, day(from), day(to))

	return res, err
}

func (r *repositoryImpl) get(ctx context.Context, name string, dest any, query string, args ...any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := r.db.Read.GetContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to get report (%s): %w", name, err)
	}

	return nil
}

func (r *repositoryImpl) selectAll(ctx context.Context, name string, dest any, query string, args ...any) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report."+name)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := r.db.Read.SelectContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to get report (%s): %w", name, err)
	}

	return nil
}

// day renders the calendar date of t in the application timezone for date-typed columns.
func day(t time.Time) string {
	return timezone.Format(t, constant.DayFormat)
}

func zone() string {
	return timezone.GetLocation().String()
}
