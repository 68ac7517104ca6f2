package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/user/model"
	"cleanbook/internal/domains/user/model/dto"
	"cleanbook/internal/domains/user/repository"
	"cleanbook/permissions"
	"cleanbook/shared"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

type User interface {
	GetProfile(ctx context.Context) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error)
	GetAddresses(ctx context.Context) ([]dto.AddressResponse, error)
	AddAddress(ctx context.Context, req dto.AddressRequest) ([]dto.AddressResponse, error)
	UpdateAddress(ctx context.Context, req dto.UpdateAddressRequest, id string) ([]dto.AddressResponse, error)
	DeleteAddress(ctx context.Context, id string) ([]dto.AddressResponse, error)
	GetFavorites(ctx context.Context) ([]dto.FavoriteResponse, error)
	AddFavorite(ctx context.Context, cleanerID string) ([]dto.FavoriteResponse, error)
	RemoveFavorite(ctx context.Context, cleanerID string) ([]dto.FavoriteResponse, error)
	GetPoints(ctx context.Context) (dto.PointsResponse, error)
	GetReferral(ctx context.Context) (dto.ReferralResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.User
	addresses   repository.Address
	favorites   repository.Favorite
	permissions *permissions.PermissionData
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.User,
	addresses repository.Address,
	favorites repository.Favorite,
	permissions *permissions.PermissionData,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) User {
	return &serviceImpl{
		repo:        repo,
		addresses:   addresses,
		favorites:   favorites,
		permissions: permissions,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) GetProfile(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	req.Normalize()
	userID, _ := shared.UserFromContext(ctx)

	if err = s.update(ctx, shared.TransformFields(req, userID), userID); err != nil {
		return res, err
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAddresses(ctx context.Context) (res []dto.AddressResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAddresses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	return s.listAddresses(ctx, userID)
}

func (s *serviceImpl) AddAddress(ctx context.Context, req dto.AddressRequest) (res []dto.AddressResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddAddress")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	owned := shared.FilterEq(model.AddressTableName, model.FieldAddressUserID, userID)

	total, err := s.addresses.Count(ctx, owned)
	if err != nil {
		log.Error().Err(err).Msg("failed to count addresses")

		return res, fmt.Errorf("failed to count addresses: %w", err)
	}

	isDefault := total == 0 || req.IsDefault
	if isDefault && total > 0 {
		if err = s.clearDefault(ctx, userID); err != nil {
			return res, err
		}
	}

	if err = s.addresses.Insert(ctx, req.ToModel(userID, isDefault)); err != nil {
		log.Error().Err(err).Msg("failed to add address")

		return res, fmt.Errorf("failed to add address: %w", err)
	}

	return s.listAddresses(ctx, userID)
}

func (s *serviceImpl) UpdateAddress(ctx context.Context, req dto.UpdateAddressRequest, id string) (res []dto.AddressResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateAddress")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateAddressRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	userID, _ := shared.UserFromContext(ctx)

	if _, err = s.findAddress(ctx, id); err != nil {
		return res, err
	}

	if req.IsDefault {
		if err = s.clearDefault(ctx, userID); err != nil {
			return res, err
		}
	}

	err = s.addresses.Update(ctx, shared.TransformFields(req, userID),
		shared.FilterByID(id, model.FieldID, model.AddressTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update address")

		return res, fmt.Errorf("failed to update address: %w", err)
	}

	return s.listAddresses(ctx, userID)
}

func (s *serviceImpl) DeleteAddress(ctx context.Context, id string) (res []dto.AddressResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteAddress")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	if _, err = s.findAddress(ctx, id); err != nil {
		return res, err
	}

	if err = s.addresses.Delete(ctx, shared.FilterByID(id, model.FieldID, model.AddressTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete address")

		return res, fmt.Errorf("failed to delete address: %w", err)
	}

	return s.listAddresses(ctx, userID)
}

func (s *serviceImpl) findAddress(ctx context.Context, id string) (model.Address, error) {
	address, err := s.addresses.Get(ctx, shared.FilterByID(id, model.FieldID, model.AddressTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get address")

		return address, fmt.Errorf("failed to get address: %w", err)
	}

	if address.ID == constant.Empty {
		return address, failure.NotFound("address not found") // nolint:wrapcheck
	}

	userID, role := shared.UserFromContext(ctx)
	if !s.permissions.Allows(permissions.OpAddressManage, role, address.UserID == userID) {
		return address, failure.ResourceRestrictedError
	}

	return address, nil
}

func (s *serviceImpl) clearDefault(ctx context.Context, userID string) error {
	fields := map[string]any{
		model.FieldAddressIsDefault: false,
		constant.FieldModifiedBy:    userID,
	}

	err := s.addresses.Update(ctx, fields, shared.FilterEq(model.AddressTableName, model.FieldAddressUserID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to reset default address")

		return fmt.Errorf("failed to reset default address: %w", err)
	}

	return nil
}

func (s *serviceImpl) listAddresses(ctx context.Context, userID string) ([]dto.AddressResponse, error) {
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	addresses, err := s.addresses.GetAll(ctx, params, shared.FilterEq(model.AddressTableName, model.FieldAddressUserID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get addresses")

		return nil, fmt.Errorf("failed to get addresses: %w", err)
	}

	return dto.AddressesFromModels(addresses), nil
}

func (s *serviceImpl) GetFavorites(ctx context.Context) (res []dto.FavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetFavorites")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	return s.listFavorites(ctx, userID)
}

func (s *serviceImpl) AddFavorite(ctx context.Context, cleanerID string) (res []dto.FavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddFavorite")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	cleaner, err := s.repo.Get(ctx, shared.FilterEq(model.TableName,
		model.FieldID, cleanerID,
		model.FieldRole, constant.RoleCleaner,
		model.FieldActive, true,
	), model.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cleaner")

		return res, fmt.Errorf("failed to get cleaner: %w", err)
	}

	if cleaner.ID == constant.Empty {
		return res, failure.NotFound("cleaner not found")
	}

	err = s.favorites.Insert(ctx, dto.NewFavorite(userID, cleanerID))
	if err != nil && !shared.IsUniqueViolation(err, model.ConstraintFavorite) {
		log.Error().Err(err).Msg("failed to add favorite cleaner")

		return res, fmt.Errorf("failed to add favorite cleaner: %w", err)
	}

	return s.listFavorites(ctx, userID)
}

func (s *serviceImpl) RemoveFavorite(ctx context.Context, cleanerID string) (res []dto.FavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveFavorite")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	err = s.favorites.Delete(ctx, shared.FilterEq(model.FavoriteTableName,
		model.FieldFavoriteUserID, userID,
		model.FieldFavoriteCleanerID, cleanerID,
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to remove favorite cleaner")

		return res, fmt.Errorf("failed to remove favorite cleaner: %w", err)
	}

	return s.listFavorites(ctx, userID)
}

func (s *serviceImpl) listFavorites(ctx context.Context, userID string) ([]dto.FavoriteResponse, error) {
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	favorites, err := s.favorites.GetAll(ctx, params, shared.FilterEq(model.FavoriteTableName, model.FieldFavoriteUserID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorite cleaners")

		return nil, fmt.Errorf("failed to get favorite cleaners: %w", err)
	}

	return dto.FavoritesFromModels(favorites), nil
}

func (s *serviceImpl) GetPoints(ctx context.Context) (res dto.PointsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPoints")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	res.Points = user.Points

	return res, nil
}

func (s *serviceImpl) GetReferral(ctx context.Context) (res dto.ReferralResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReferral")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.find(ctx, userID)
	if err != nil {
		return res, err
	}

	referred, err := s.repo.Count(ctx, shared.FilterEq(model.TableName, model.FieldReferredBy, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count referred users")

		return res, fmt.Errorf("failed to count referred users: %w", err)
	}

	res.ReferralCode = user.ReferralCode
	res.ReferredCount = referred
	res.EarnedPoints = int64(referred) * s.cfg.Business.ReferralBonus

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllUsers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	var total int
	if err := s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	userID, _ := shared.UserFromContext(ctx)

	if err = s.update(ctx, shared.TransformFields(req, userID), id); err != nil {
		return res, err
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	userID, _ := shared.UserFromContext(ctx)
	fields := shared.TransformFields(struct{}{}, userID)
	fields[model.FieldActive] = false

	return s.update(ctx, fields, id)
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}
