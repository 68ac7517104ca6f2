package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/report/export"
	"cleanbook/internal/domains/report/model"
	"cleanbook/internal/domains/report/model/dto"
	"cleanbook/internal/domains/report/repository"
	userModel "cleanbook/internal/domains/user/model"
	userDto "cleanbook/internal/domains/user/model/dto"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/password"
	"cleanbook/shared/timezone"
)

const referralCodeAttempts = 3

type Report interface {
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
	RevenueStats(ctx context.Context, req dto.RevenueQuery) (dto.RevenueStatsResponse, error)
	ExportRevenue(ctx context.Context, req dto.RevenueQuery) (dto.ExportFile, error)
	BookingStats(ctx context.Context, period string) (dto.BookingStatsResponse, error)
	UserStats(ctx context.Context) (dto.UserStatsResponse, error)
	ServiceStats(ctx context.Context) (dto.ServiceStatsResponse, error)
	Cleaners(ctx context.Context) (dto.CleanersResponse, error)
	CreateCleaner(ctx context.Context, req dto.CreateCleanerRequest) (userDto.UserResponse, error)
	UpdateCleaner(ctx context.Context, req dto.UpdateCleanerRequest, id string) (userDto.UserResponse, error)
	CleanerSchedule(ctx context.Context, id string, req dto.ScheduleQuery) (dto.ScheduleResponse, error)
	Settings(ctx context.Context) dto.SettingsResponse
}

type serviceImpl struct {
	repo     repository.Report
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Report, userRepo userRepo.User, cfg *config.Config, otel otel.Otel) Report {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	today := timezone.StartOfDay(now)
	month := timezone.StartOfMonth(now)

	todaySummary, err := s.repo.Summary(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return res, s.logged(err, "today summary")
	}

	monthSummary, err := s.repo.Summary(ctx, month, month.AddDate(0, 1, 0))
	if err != nil {
		return res, s.logged(err, "monthly summary")
	}

	statuses, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return res, s.logged(err, "bookings by status")
	}

	popular, err := s.repo.PopularServices(ctx, model.TopServicesLimit)
	if err != nil {
		return res, s.logged(err, "popular services")
	}

	recent, err := s.repo.RecentBookings(ctx, model.RecentBookingLimit)
	if err != nil {
		return res, s.logged(err, "recent bookings")
	}

	avg, err := s.repo.AverageRating(ctx)
	if err != nil {
		return res, s.logged(err, "average rating")
	}

	res.Today.FromModel(todaySummary)
	res.Monthly.FromModel(monthSummary)
	res.FromStatusCounts(statuses)
	res.PopularServices = dto.FromServiceRevenues(popular)
	res.FromRecentBookings(recent)
	res.AverageRating = model.Round(avg)

	return res, nil
}

func (s *serviceImpl) RevenueStats(ctx context.Context, req dto.RevenueQuery) (res dto.RevenueStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevenueStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := req.Range(timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err)
	}

	buckets, err := s.repo.RevenueBuckets(ctx, from, to, req.GroupBy)
	if err != nil {
		return res, s.logged(err, "revenue buckets")
	}

	services, err := s.repo.RevenueByService(ctx, from, to)
	if err != nil {
		return res, s.logged(err, "revenue by service")
	}

	res.Period = dto.NewPeriod(from, to)
	res.FromModels(req.GroupBy, buckets, services)

	return res, nil
}

func (s *serviceImpl) ExportRevenue(ctx context.Context, req dto.RevenueQuery) (res dto.ExportFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportRevenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stats, err := s.RevenueStats(ctx, req)
	if err != nil {
		return res, err
	}

	data, err := export.Revenue(stats)
	if err != nil {
		log.Error().Err(err).Msg("failed to build revenue workbook")

		return res, fmt.Errorf("failed to build revenue workbook: %w", err)
	}

	res.FileName = export.RevenueFileName(stats.Period)
	res.ContentType = export.ContentTypeXLSX
	res.Data = data

	return res, nil
}

func (s *serviceImpl) BookingStats(ctx context.Context, period string) (res dto.BookingStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	since := timezone.StartOfDay(now).AddDate(0, 0, -model.PeriodDays(period))

	daily, err := s.repo.DailyBookings(ctx, since)
	if err != nil {
		return res, s.logged(err, "daily bookings")
	}

	byHour, err := s.repo.BookingsByHour(ctx, since)
	if err != nil {
		return res, s.logged(err, "bookings by hour")
	}

	byWeekday, err := s.repo.BookingsByWeekday(ctx, since)
	if err != nil {
		return res, s.logged(err, "bookings by weekday")
	}

	res.Period = dto.NewPeriod(since, now)
	res.FromDailyBookings(daily)
	res.BookingsByHour = dto.FromSlotCounts(byHour)
	res.BookingsByDayOfWeek = dto.FromSlotCounts(byWeekday)

	return res, nil
}

func (s *serviceImpl) UserStats(ctx context.Context) (res dto.UserStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	summary, err := s.repo.UserSummary(ctx)
	if err != nil {
		return res, s.logged(err, "user summary")
	}

	since := timezone.StartOfDay(timezone.Now()).AddDate(0, 0, -model.SignupWindowDays)

	growth, err := s.repo.DailySignups(ctx, since)
	if err != nil {
		return res, s.logged(err, "daily signups")
	}

	top, err := s.repo.TopSpenders(ctx, model.TopSpendersLimit)
	if err != nil {
		return res, s.logged(err, "top spenders")
	}

	res.FromModels(summary, growth, top)

	return res, nil
}

func (s *serviceImpl) ServiceStats(ctx context.Context) (res dto.ServiceStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ServiceStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stats, err := s.repo.ServiceStats(ctx)
	if err != nil {
		return res, s.logged(err, "service stats")
	}

	res.FromModels(stats)

	return res, nil
}

func (s *serviceImpl) Cleaners(ctx context.Context) (res dto.CleanersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cleaners")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cleaners, err := s.repo.Cleaners(ctx)
	if err != nil {
		return res, s.logged(err, "cleaners")
	}

	res.FromModels(cleaners)

	return res, nil
}

func (s *serviceImpl) CreateCleaner(ctx context.Context, req dto.CreateCleanerRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCleaner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	adminID, _ := shared.UserFromContext(ctx)

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	for range referralCodeAttempts {
		code, err := userModel.GenerateReferralCode(nil)
		if err != nil {
			return res, err
		}

		cleaner := req.ToUserModel(hashedPassword, code, adminID)

		err = s.userRepo.Insert(ctx, cleaner)
		switch {
		case err == nil:
			res.FromModel(cleaner)

			return res, nil
		case shared.IsUniqueViolation(err, userModel.ConstraintEmail):
			return res, failure.BadRequestFromString("email already registered")
		case shared.IsUniqueViolation(err, userModel.ConstraintReferralCode):
			log.Warn().Str("referralCode", code).Msg("referral code collision, regenerating")
		default:
			log.Error().Err(err).Msg("failed to create cleaner")

			return res, fmt.Errorf("failed to create cleaner: %w", err)
		}
	}

	return res, fmt.Errorf("failed to create cleaner: no unique referral code after %d attempts", referralCodeAttempts)
}

func (s *serviceImpl) UpdateCleaner(ctx context.Context, req dto.UpdateCleanerRequest, id string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCleaner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("no fields to update")
	}

	if _, err = s.findCleaner(ctx, id); err != nil {
		return res, err
	}

	adminID, _ := shared.UserFromContext(ctx)

	req.Normalize()

	if err = s.userRepo.Update(ctx, shared.TransformFields(req, adminID), shared.FilterByID(id, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update cleaner")

		return res, fmt.Errorf("failed to update cleaner: %w", err)
	}

	cleaner, err := s.findCleaner(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(cleaner)

	return res, nil
}

func (s *serviceImpl) CleanerSchedule(ctx context.Context, id string, req dto.ScheduleQuery) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CleanerSchedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to, err := req.Range()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if _, err = s.findCleaner(ctx, id); err != nil {
		return res, err
	}

	entries, err := s.repo.CleanerSchedule(ctx, id, from, to)
	if err != nil {
		return res, s.logged(err, "cleaner schedule")
	}

	res.CleanerID = id
	res.Period = dto.NewPeriod(from, to.AddDate(0, 0, 1))
	res.FromModels(entries)

	return res, nil
}

func (s *serviceImpl) Settings(_ context.Context) (res dto.SettingsResponse) {
	res.FromConfig(s.cfg)

	return res
}

func (s *serviceImpl) findCleaner(ctx context.Context, id string) (userModel.User, error) {
	cleaner, err := s.userRepo.Get(ctx, shared.FilterEq(userModel.TableName, userModel.FieldID, id, userModel.FieldRole, constant.RoleCleaner))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cleaner")

		return cleaner, fmt.Errorf("failed to get cleaner: %w", err)
	}

	if cleaner.ID == constant.Empty {
		return cleaner, failure.NotFound("cleaner not found")
	}

	return cleaner, nil
}

func (s *serviceImpl) logged(err error, report string) error {
	log.Error().Err(err).Str("report", report).Msg("failed to build report")

	return fmt.Errorf("failed to get %s: %w", report, err)
}
