package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/catalog/model"
	"cleanbook/internal/domains/catalog/model/dto"
	"cleanbook/internal/domains/catalog/repository"
	"cleanbook/internal/domains/catalog/seed"
	"cleanbook/shared"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
)

const (
	cacheGetService    = "service:get"
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

type Catalog interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	GetByCategory(ctx context.Context, category string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (dto.ServiceResponse, error)
	Delete(ctx context.Context, id string) error
	Initialize(ctx context.Context) (dto.GetServicesResponse, error)
}

type serviceImpl struct {
	repo  repository.Catalog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.UserFromContext(ctx)
	service := req.ToModel(user)

	if err = s.repo.Insert(ctx, service); err != nil {
		if shared.IsUniqueViolation(err, model.ConstraintName) {
			return res, failure.BadRequestFromString("service name already exists")
		}

		log.Error().Err(err).Msg("failed to insert service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	res.FromModel(service)
	s.invalidateLists(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldPopularity
		req.SortDir = gDto.SortDirDesc
	}

	services, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(services, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, req, filter)

	var total int
	if err := s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return 0, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return total, nil
}

// Get returns a service and bumps its popularity outside the request path.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		if err != nil {
			return
		}

		go func() {
			if err := s.repo.IncrementPopularity(context.WithoutCancel(ctx), id); err != nil {
				log.Error().Err(err).Str("serviceID", id).Msg("failed to increment service popularity")
			}
		}()
	}()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	service, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByCategory(ctx context.Context, category string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServicesByCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !model.IsCategory(category) {
		return res, failure.BadRequestFromString("invalid service category")
	}

	list, err := s.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc},
		shared.FilterEq(model.TableName, model.FieldCategory, category, model.FieldIsActive, true))
	if err != nil {
		return res, err
	}

	res.Category = category
	res.Services = list.Services

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	user, _ := shared.UserFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if shared.IsUniqueViolation(err, model.ConstraintName) {
			return res, failure.BadRequestFromString("service name already exists")
		}

		log.Error().Err(err).Msg("failed to update service")

		return res, fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete deactivates the service; rows stay referenced by bookings.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)
	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldIsActive] = false

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to deactivate service")

		return fmt.Errorf("failed to deactivate service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Initialize seeds the default catalog when the services table is empty.
func (s *serviceImpl) Initialize(ctx context.Context) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InitializeServices")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	if total == 0 {
		defaults, err := seed.Services()
		if err != nil {
			return res, err
		}

		user, _ := shared.UserFromContext(ctx)
		if user == constant.Empty {
			user = constant.ContextSystem
		}

		services := make([]model.Service, len(defaults))
		for i, def := range defaults {
			services[i] = dto.FromSeed(def, user)
		}

		if err := s.repo.InsertBulk(ctx, services); err != nil {
			log.Error().Err(err).Msg("failed to seed services")

			return res, fmt.Errorf("failed to seed services: %w", err)
		}

		log.Info().Int("count", len(services)).Msg("default services seeded")
		s.invalidateLists(ctx)
	}

	services, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(services, len(services), len(services))

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Service, error) {
	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return service, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return service, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return service, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
