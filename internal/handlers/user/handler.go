package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cleanbook/infras/otel"
	"cleanbook/internal/domains/user/model"
	"cleanbook/internal/domains/user/model/dto"
	"cleanbook/internal/domains/user/service"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/validator"
	"cleanbook/transport/http/response"
)

const (
	paramCleanerID = "cleanerId"
	querySearch    = "search"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/profile", handler.GetProfile)
		routerGroup.Patch("/profile", handler.UpdateProfile)
		routerGroup.Get("/addresses", handler.GetAddresses)
		routerGroup.Post("/addresses", handler.AddAddress)
		routerGroup.Patch("/addresses/{id}", handler.UpdateAddress)
		routerGroup.Delete("/addresses/{id}", handler.DeleteAddress)
		routerGroup.Get("/favorites", handler.GetFavorites)
		routerGroup.Post("/favorites/{cleanerId}", handler.AddFavorite)
		routerGroup.Delete("/favorites/{cleanerId}", handler.RemoveFavorite)
		routerGroup.Get("/points", handler.GetPoints)
		routerGroup.Get("/referral", handler.GetReferral)

		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/{id}", handler.GetUserByID)
		routerGroup.Patch("/{id}", handler.UpdateUser)
		routerGroup.Delete("/{id}", handler.DeleteUser)
	})
}

// GetProfile returns the profile of the authenticated user.
// @Summary Get my profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse] "Profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/profile [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	res, err := handler.service.GetProfile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateProfile updates name and phone of the authenticated user.
// @Summary Update my profile
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Data[dto.UserResponse] "Updated profile"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/profile [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateProfile(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetAddresses lists the saved addresses of the authenticated user.
// @Summary List my addresses
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[[]dto.AddressResponse] "Addresses"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/addresses [get]
// @Security BearerAuth
func (handler *Handler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAddresses")
	defer scope.End()

	res, err := handler.service.GetAddresses(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get addresses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddAddress saves a new address. The first address becomes the default.
// @Summary Add an address
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.AddressRequest true "Address Request"
// @Success 201 {object} response.Data[[]dto.AddressResponse] "Addresses after the change"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/addresses [post]
// @Security BearerAuth
func (handler *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAddress")
	defer scope.End()

	req := dto.AddressRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddAddress(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add address")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateAddress updates one of the saved addresses.
// @Summary Update an address
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param request body dto.UpdateAddressRequest true "Update Address Request"
// @Success 200 {object} response.Data[[]dto.AddressResponse] "Addresses after the change"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/addresses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAddress")
	defer scope.End()

	req := dto.UpdateAddressRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateAddress(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update address")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteAddress removes one of the saved addresses.
// @Summary Delete an address
// @Tags User
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} response.Data[[]dto.AddressResponse] "Addresses after the change"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/addresses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAddress")
	defer scope.End()

	res, err := handler.service.DeleteAddress(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete address")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFavorites lists the favorite cleaners of the authenticated user.
// @Summary List favorite cleaners
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[[]dto.FavoriteResponse] "Favorite cleaners"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	res, err := handler.service.GetFavorites(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddFavorite adds an active cleaner to the favorites.
// @Summary Add a favorite cleaner
// @Tags User
// @Produce json
// @Param cleanerId path string true "Cleaner ID"
// @Success 200 {object} response.Data[[]dto.FavoriteResponse] "Favorite cleaners"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/favorites/{cleanerId} [post]
// @Security BearerAuth
func (handler *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFavorite")
	defer scope.End()

	res, err := handler.service.AddFavorite(ctx, chi.URLParam(r, paramCleanerID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add favorite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveFavorite removes a cleaner from the favorites.
// @Summary Remove a favorite cleaner
// @Tags User
// @Produce json
// @Param cleanerId path string true "Cleaner ID"
// @Success 200 {object} response.Data[[]dto.FavoriteResponse] "Favorite cleaners"
// @Failure 500 {object} response.Error
// @Router /v1/users/favorites/{cleanerId} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFavorite")
	defer scope.End()

	res, err := handler.service.RemoveFavorite(ctx, chi.URLParam(r, paramCleanerID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove favorite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPoints returns the loyalty points balance.
// @Summary Get my points
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.PointsResponse] "Points"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/points [get]
// @Security BearerAuth
func (handler *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPoints")
	defer scope.End()

	res, err := handler.service.GetPoints(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get points")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReferral returns the referral code and what it earned.
// @Summary Get my referral info
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.ReferralResponse] "Referral info"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/referral [get]
// @Security BearerAuth
func (handler *Handler) GetReferral(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReferral")
	defer scope.End()

	res, err := handler.service.GetReferral(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get referral info")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUsers lists users for admins.
// @Summary Get all users
// @Description Retrieve users with optional role, active and search filters.
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param role query string false "Filter by role (customer, cleaner, admin)"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Match name or email"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := dto.UserListFilter{
		Role:   query.Get(model.FieldRole),
		Active: shared.ConvertStringToBool(query.Get(model.FieldActive)),
		Search: query.Get(querySearch),
	}

	users, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID retrieves a user by its ID.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse] "User details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser lets an admin change role, active and verified flags.
// @Summary Update a user by ID
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Data[dto.UserResponse] "Updated user"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	req := dto.UpdateUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User updated successfully by admin " + admin)

	response.WithJSON(w, http.StatusOK, user)
}

// DeleteUser deactivates a user. Accounts are never hard deleted.
// @Summary Deactivate a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User deactivated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "User deactivated successfully")
}
