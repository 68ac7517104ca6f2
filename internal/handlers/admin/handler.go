package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cleanbook/infras/otel"
	"cleanbook/internal/domains/report/model/dto"
	"cleanbook/internal/domains/report/service"
	"cleanbook/shared/constant"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
)

const (
	queryStartDate = "start_date"
	queryEndDate   = "end_date"
	queryGroupBy   = "group_by"
	queryPeriod    = "period"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", handler.Dashboard)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/revenue", handler.RevenueStats)
			r.Get("/revenue/export", handler.ExportRevenue)
			r.Get("/bookings", handler.BookingStats)
			r.Get("/users", handler.UserStats)
			r.Get("/services", handler.ServiceStats)
		})

		r.Route("/cleaners", func(r chi.Router) {
			r.Get("/", handler.GetCleaners)
			r.Post("/", handler.CreateCleaner)
			r.Patch("/{id}", handler.UpdateCleaner)
			r.Get("/{id}/schedule", handler.GetCleanerSchedule)
		})

		r.Get("/settings", handler.Settings)
	})
}

// Dashboard returns today's and this month's figures.
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse] "Dashboard"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Dashboard")
	defer scope.End()

	res, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RevenueStats returns revenue grouped by day, week or month.
// @Summary Revenue statistics
// @Tags Admin
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to today"
// @Param group_by query string false "day, week or month"
// @Success 200 {object} response.Data[dto.RevenueStatsResponse] "Revenue statistics"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats/revenue [get]
// @Security BearerAuth
func (handler *Handler) RevenueStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RevenueStats")
	defer scope.End()

	req, err := revenueQuery(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RevenueStats(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ExportRevenue downloads the revenue statistics as a spreadsheet.
// @Summary Export revenue
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param group_by query string false "day, week or month"
// @Success 200 {file} file "Revenue workbook"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats/revenue/export [get]
// @Security BearerAuth
func (handler *Handler) ExportRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportRevenue")
	defer scope.End()

	req, err := revenueQuery(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	file, err := handler.service.ExportRevenue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue exported as " + file.FileName)

	response.WithFile(w, file.FileName, file.ContentType, file.Data)
}

// BookingStats returns booking counts by day, hour and weekday.
// @Summary Booking statistics
// @Tags Admin
// @Produce json
// @Param period query string false "7d, 30d or 90d"
// @Success 200 {object} response.Data[dto.BookingStatsResponse] "Booking statistics"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats/bookings [get]
// @Security BearerAuth
func (handler *Handler) BookingStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookingStats")
	defer scope.End()

	period := r.URL.Query().Get(queryPeriod)
	if err := validator.ValidateVar(period, "omitempty,oneof=7d 30d 90d"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.BookingStats(ctx, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UserStats returns user totals, growth and top spenders.
// @Summary User statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.UserStatsResponse] "User statistics"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats/users [get]
// @Security BearerAuth
func (handler *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UserStats")
	defer scope.End()

	res, err := handler.service.UserStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ServiceStats returns bookings, revenue and rating per service.
// @Summary Service statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.ServiceStatsResponse] "Service statistics"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats/services [get]
// @Security BearerAuth
func (handler *Handler) ServiceStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ServiceStats")
	defer scope.End()

	res, err := handler.service.ServiceStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCleaners lists cleaners with their job counts and ratings.
// @Summary Get cleaners
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.CleanersResponse] "Cleaners"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/cleaners [get]
// @Security BearerAuth
func (handler *Handler) GetCleaners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCleaners")
	defer scope.End()

	res, err := handler.service.Cleaners(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cleaners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateCleaner creates a verified cleaner account.
// @Summary Create a cleaner
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateCleanerRequest true "Create Cleaner Request"
// @Success 201 {object} response.Data[object] "Cleaner created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/cleaners [post]
// @Security BearerAuth
func (handler *Handler) CreateCleaner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCleaner")
	defer scope.End()

	req := dto.CreateCleanerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateCleaner(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cleaner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaner created successfully by user " + user)

	response.WithJSONMessage(w, http.StatusCreated, "Cleaner created successfully", res)
}

// UpdateCleaner updates a cleaner's name, phone or active flag.
// @Summary Update a cleaner
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Cleaner ID"
// @Param request body dto.UpdateCleanerRequest true "Update Cleaner Request"
// @Success 200 {object} response.Data[object] "Cleaner updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/cleaners/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCleaner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCleaner")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCleanerRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateCleaner(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cleaner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaner updated successfully by user " + user)

	response.WithJSONMessage(w, http.StatusOK, "Cleaner updated successfully", res)
}

// GetCleanerSchedule lists a cleaner's bookings between two dates.
// @Summary Cleaner schedule
// @Tags Admin
// @Produce json
// @Param id path string true "Cleaner ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/cleaners/{id}/schedule [get]
// @Security BearerAuth
func (handler *Handler) GetCleanerSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCleanerSchedule")
	defer scope.End()

	query := r.URL.Query()
	req := dto.ScheduleQuery{
		StartDate: query.Get(queryStartDate),
		EndDate:   query.Get(queryEndDate),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CleanerSchedule(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cleaner schedule")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Settings returns the operating configuration.
// @Summary Operating settings
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse] "Settings"
// @Failure 403 {object} response.Error
// @Router /v1/admin/settings [get]
// @Security BearerAuth
func (handler *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Settings")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Settings(ctx))
}

func revenueQuery(r *http.Request) (dto.RevenueQuery, error) {
	query := r.URL.Query()
	req := dto.RevenueQuery{
		StartDate: query.Get(queryStartDate),
		EndDate:   query.Get(queryEndDate),
		GroupBy:   query.Get(queryGroupBy),
	}

	return req, validator.ValidateStruct(&req)
}
