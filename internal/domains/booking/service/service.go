package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/metrics"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/booking/model/dto"
	"cleanbook/internal/domains/booking/repository"
	catalogModel "cleanbook/internal/domains/catalog/model"
	catalogRepo "cleanbook/internal/domains/catalog/repository"
	notificationModel "cleanbook/internal/domains/notification/model"
	notificationService "cleanbook/internal/domains/notification/service"
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

const (
	cacheGetBooking    = model.CacheGet
	cacheGetAllBooking = model.CacheGets
	cacheCountBooking  = model.CacheCount

	kindGuest  = "guest"
	kindMember = "member"
)

type Booking interface {
	CreateGuest(ctx context.Context, req dto.CreateGuestBookingRequest) (dto.BookingResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.BookingResponse, error)
	ChangeStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	AvailableSlots(ctx context.Context, date, serviceID string) (dto.AvailableSlotsResponse, error)
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	catalogRepo catalogRepo.Catalog
	userRepo    userRepo.User
	notifier    notificationService.Notifier
	permissions *permissions.PermissionData
	numbers     *model.NumberGenerator
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	catalogRepo catalogRepo.Catalog,
	userRepo userRepo.User,
	notifier notificationService.Notifier,
	permissions *permissions.PermissionData,
	numbers *model.NumberGenerator,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		permissions: permissions,
		numbers:     numbers,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) CreateGuest(ctx context.Context, req dto.CreateGuestBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateGuestBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.prepare(ctx, req.CreateBookingRequest, constant.ContextGuest, nil)
	if err != nil {
		return res, err
	}

	booking.GuestName = req.GuestName
	booking.GuestPhone = req.GuestPhone
	booking.GuestEmail = req.GuestEmail

	if err = s.insert(ctx, &booking); err != nil {
		return res, err
	}

	metrics.IncBookingCreated(kindGuest)
	s.notify(ctx, notificationModel.EventBookingCreated, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	booking, err := s.prepare(ctx, req, userID, &userID)
	if err != nil {
		return res, err
	}

	if err = s.insert(ctx, &booking); err != nil {
		return res, err
	}

	metrics.IncBookingCreated(kindMember)
	s.notify(ctx, notificationModel.EventBookingCreated, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

// prepare resolves the service, prices the booking and checks that its interval is free.
func (s *serviceImpl) prepare(ctx context.Context, req dto.CreateBookingRequest, actor string, userID *string) (model.Booking, error) {
	service, err := s.findService(ctx, req.ServiceID)
	if err != nil {
		return model.Booking{}, err
	}

	if !service.IsActive {
		return model.Booking{}, failure.BadRequestFromString("service is not available")
	}

	options, err := resolveOptions(service, req.Options)
	if err != nil {
		return model.Booking{}, err
	}

	schedule, err := s.schedule(req.ServiceDate, req.ServiceTime, service.Duration)
	if err != nil {
		return model.Booking{}, err
	}

	if err = s.ensureFree(ctx, schedule, constant.Empty); err != nil {
		return model.Booking{}, err
	}

	return req.ToModel(actor, userID, service, schedule, options), nil
}

// insert stores the booking, regenerating the booking number when it collides with an existing one.
func (s *serviceImpl) insert(ctx context.Context, booking *model.Booking) error {
	attempts := max(s.cfg.Business.NumberMaxAttempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		number, err := s.numbers.Generate(timezone.ToAppTime(booking.CreatedAt))
		if err != nil {
			return err
		}

		booking.BookingNumber = number

		err = s.repo.Insert(ctx, *booking)
		if err == nil {
			s.invalidateLists(ctx)

			return nil
		}

		if !shared.IsUniqueViolation(err, model.ConstraintBookingNumber) {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		metrics.IncBookingNumberRetry()
		log.Warn().Str("bookingNumber", number).Int("attempt", attempt).Msg("booking number collision, regenerating")
	}

	return fmt.Errorf("failed to create booking: no unique booking number after %d attempts", attempts)
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	filter := shared.FilterEq(model.TableName, model.FieldUserID, userID)
	if status != constant.Empty {
		filter = shared.FilterEq(model.TableName, model.FieldUserID, userID, model.FieldStatus, status)
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	if req.SortBy == constant.Empty {
		req.SortBy = constant.DefaultValueSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	var total int
	if err := s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	var booking model.Booking
	if err = s.cache.Get(ctx, cacheKey, &booking); err != nil {
		booking, err = s.find(ctx, id)
		if err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, booking, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	userID, role := shared.UserFromContext(ctx)
	if !s.permissions.Allows(permissions.OpBookingRead, role, booking.OwnedBy(userID) || booking.AssignedTo(userID)) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	booking, err := s.authorize(ctx, id, permissions.OpBookingUpdate)
	if err != nil {
		return res, err
	}

	if model.IsTerminal(booking.Status) {
		return res, failure.Conflict(fmt.Sprintf("booking is already %s and cannot be modified", booking.Status))
	}

	userID, _ := shared.UserFromContext(ctx)
	fields := shared.TransformFields(struct{}{}, userID)

	if req.ChangesSchedule() {
		date := timezone.Format(booking.ServiceDate, constant.DayFormat)
		if req.ServiceDate != constant.Empty {
			date = req.ServiceDate
		}

		clock := booking.ServiceTime
		if req.ServiceTime != constant.Empty {
			clock = req.ServiceTime
		}

		schedule, err := s.schedule(date, clock, booking.Duration)
		if err != nil {
			return res, err
		}

		if err = s.ensureFree(ctx, schedule, booking.ID); err != nil {
			return res, err
		}

		fields[model.FieldServiceDate] = timezone.StartOfDay(schedule.Start)
		fields[model.FieldServiceTime] = clock
		fields[model.FieldStartAt] = schedule.Start
		fields[model.FieldEndAt] = schedule.End
	}

	if req.Address != nil {
		fields[model.FieldAddressStreet] = req.Address.Street
		fields[model.FieldAddressDetail] = req.Address.Detail
		fields[model.FieldAddressZipCode] = req.Address.ZipCode
	}

	if req.SpecialRequests != nil {
		fields[model.FieldSpecialRequests] = *req.SpecialRequests
	}

	if req.ChangesPricing() {
		if err = s.reprice(ctx, &booking, req, fields); err != nil {
			return res, err
		}
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return s.reload(ctx, id)
}

func (s *serviceImpl) reprice(ctx context.Context, booking *model.Booking, req dto.UpdateBookingRequest, fields map[string]any) error {
	service, err := s.findService(ctx, booking.ServiceID)
	if err != nil {
		return err
	}

	if req.Size != nil {
		booking.Size = *req.Size
		booking.BasePrice = model.BasePrice(service.BasePrice, service.PriceUnit, booking.Size)
	}

	if req.Options != nil {
		options, err := resolveOptions(service, req.Options)
		if err != nil {
			return err
		}

		booking.Options = options
	}

	booking.Pricing.Recalculate(booking.Options)

	fields[model.FieldSize] = booking.Size
	fields[model.FieldOptions] = booking.Options
	fields[model.FieldBasePrice] = booking.BasePrice
	fields[model.FieldOptionsPrice] = booking.OptionsPrice
	fields[model.FieldDiscount] = booking.Discount
	fields[model.FieldTotalPrice] = booking.TotalPrice

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorize(ctx, id, permissions.OpBookingCancel)
	if err != nil {
		return res, err
	}

	if model.IsTerminal(booking.Status) {
		return res, failure.Conflict(fmt.Sprintf("booking is already %s", booking.Status))
	}

	window := time.Duration(s.cfg.Business.CancelWindowHours) * time.Hour
	if booking.StartAt.Sub(timezone.Now()) < window {
		return res, failure.BadRequestFromString(
			fmt.Sprintf("cancellation is only allowed at least %d hours before the service", s.cfg.Business.CancelWindowHours))
	}

	if err = model.Transition(booking.Status, model.StatusCancelled); err != nil {
		return res, failure.Conflict(err.Error())
	}

	userID, _ := shared.UserFromContext(ctx)
	reason := req.ReasonOrDefault()
	now := timezone.Now()

	fields := shared.TransformFields(struct{}{}, userID)
	fields[model.FieldStatus] = model.StatusCancelled
	fields[model.FieldCancelledAt] = now
	fields[model.FieldCancelReason] = reason
	fields[model.FieldNotes] = append(booking.Notes, model.Note{Author: userID, Content: "cancelled: " + reason, CreatedAt: now})

	if err = s.transition(ctx, booking, model.StatusCancelled, fields); err != nil {
		return res, err
	}

	booking.CancelReason = reason
	s.notify(ctx, notificationModel.EventBookingCancelled, booking, reason)

	return s.reload(ctx, id)
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeBookingStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.UserFromContext(ctx)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !s.permissions.Allows(permissions.OpBookingStatus, role, false) {
		return res, failure.ResourceRestrictedError
	}

	if role == constant.RoleCleaner && booking.CleanerID != nil && !booking.AssignedTo(userID) {
		return res, failure.Forbidden("booking is assigned to another cleaner")
	}

	if req.CleanerID != constant.Empty && !s.permissions.Allows(permissions.OpBookingAssign, role, false) {
		return res, failure.Forbidden("only admins can assign a cleaner")
	}

	if err = model.Transition(booking.Status, req.Status); err != nil {
		return res, failure.Conflict(err.Error())
	}

	now := timezone.Now()
	content := req.Note
	if content == constant.Empty {
		content = fmt.Sprintf("status changed from %s to %s", booking.Status, req.Status)
	}

	fields := shared.TransformFields(struct{}{}, userID)
	fields[model.FieldStatus] = req.Status
	fields[model.FieldNotes] = append(booking.Notes, model.Note{Author: userID, Content: content, CreatedAt: now})

	switch req.Status {
	case model.StatusCompleted:
		fields[model.FieldCompletedAt] = now
	case model.StatusCancelled:
		fields[model.FieldCancelledAt] = now
		fields[model.FieldCancelReason] = content
	}

	if req.CleanerID != constant.Empty {
		fields[model.FieldCleanerID] = req.CleanerID
	}

	if err = s.transition(ctx, booking, req.Status, fields); err != nil {
		return res, err
	}

	event := notificationModel.EventBookingStatusChanged
	if req.Status == model.StatusCancelled {
		event = notificationModel.EventBookingCancelled
	}

	booking.Status = req.Status
	s.notify(ctx, event, booking, content)

	return s.reload(ctx, id)
}

// transition writes a status change guarded by the status the caller observed.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, to string, fields map[string]any) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    booking.Status,
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.UpdateAffected(ctx, fields, filter)
	if err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString("cleaner not found")
		}

		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		log.Warn().Str("bookingID", booking.ID).Str("from", booking.Status).Str("to", to).Msg("booking status changed concurrently")

		return failure.Conflict(model.MessageStatusChanged)
	}

	metrics.IncStatusTransition(booking.Status, to)
	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) AvailableSlots(ctx context.Context, date, serviceID string) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableSlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := timezone.Parse(constant.DayFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	}

	duration := s.defaultDuration()
	if serviceID != constant.Empty {
		service, err := s.findService(ctx, serviceID)
		if err != nil {
			return res, err
		}

		duration = service.Duration
	}

	booked, err := s.repo.Intervals(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked intervals")

		return res, fmt.Errorf("failed to get available slots: %w", err)
	}

	res.Date = date
	res.ServiceID = serviceID
	res.Duration = duration
	res.Slots = model.ComputeSlots(day, s.cfg.Business.OpenHour, s.cfg.Business.CloseHour, duration, booked)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	service, err := s.findService(ctx, req.ServiceID)
	if err != nil {
		return res, err
	}

	res.Date = req.Date
	res.Time = req.Time
	res.Duration = service.Duration

	schedule, err := s.schedule(req.Date, req.Time, service.Duration)
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, nil
		}

		return res, err
	}

	overlap, err := s.repo.HasOverlap(ctx, schedule, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.Available = !overlap

	return res, nil
}

// schedule parses the requested slot and checks it lies within business hours.
func (s *serviceImpl) schedule(date, clock string, duration int) (model.Interval, error) {
	if duration <= 0 {
		duration = s.defaultDuration()
	}

	interval, err := model.ScheduleInterval(date, clock, duration, timezone.GetLocation())
	if err != nil {
		return interval, failure.BadRequest(err)
	}

	start := interval.Start
	opening := time.Date(start.Year(), start.Month(), start.Day(), s.cfg.Business.OpenHour, 0, 0, 0, start.Location())
	closing := time.Date(start.Year(), start.Month(), start.Day(), s.cfg.Business.CloseHour, 0, 0, 0, start.Location())

	if start.Before(opening) || interval.End.After(closing) {
		return interval, failure.BadRequestFromString(
			fmt.Sprintf("service must start at or after %02d:00 and end by %02d:00", s.cfg.Business.OpenHour, s.cfg.Business.CloseHour))
	}

	return interval, nil
}

func (s *serviceImpl) ensureFree(ctx context.Context, schedule model.Interval, excludeID string) error {
	overlap, err := s.repo.HasOverlap(ctx, schedule, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return failure.Conflict("the selected time slot is already booked")
	}

	return nil
}

func (s *serviceImpl) defaultDuration() int {
	if s.cfg.Business.DefaultDuration > 0 {
		return s.cfg.Business.DefaultDuration
	}

	return model.DefaultDuration
}

// authorize loads a booking and checks op against the caller's role and ownership.
func (s *serviceImpl) authorize(ctx context.Context, id, op string) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	userID, role := shared.UserFromContext(ctx)
	if !s.permissions.Allows(op, role, booking.OwnedBy(userID)) {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) reload(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) findService(ctx context.Context, id string) (catalogModel.Service, error) {
	service, err := s.catalogRepo.Get(ctx, shared.FilterByID(id, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return service, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return service, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return service, nil
}

func resolveOptions(service catalogModel.Service, names []string) ([]model.SelectedOption, error) {
	options := make([]model.SelectedOption, 0, len(names))

	for _, name := range names {
		option, ok := service.FindOption(name)
		if !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("unknown option %q for service %s", name, service.Name))
		}

		options = append(options, model.SelectedOption{Name: option.Name, Price: option.Price})
	}

	return options, nil
}

// notify resolves the recipient and hands the event to the notifier off the request path.
func (s *serviceImpl) notify(ctx context.Context, eventType string, booking model.Booking, reason string) {
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
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to resolve booking recipient")
		}

		event.RecipientEmail = user.Email
		event.RecipientName = user.Name

		s.notifier.Booking(c, event)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
