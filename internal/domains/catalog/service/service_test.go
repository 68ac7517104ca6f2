package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanbook/config"
	"cleanbook/infras/otel/mocks"
	catalogMocks "cleanbook/internal/domains/catalog/mocks"
	"cleanbook/internal/domains/catalog/model"
	"cleanbook/internal/domains/catalog/model/dto"
	"cleanbook/internal/domains/catalog/service"
	"cleanbook/shared/cache"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
)

func newService(t *testing.T) (service.Catalog, *catalogMocks.MockCatalog, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestCatalogService_Create(t *testing.T) {
	tests := []struct {
		name      string
		insertErr error
		wantCode  int
	}{
		{name: "successful creation"},
		{
			name:      "duplicate name",
			insertErr: &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.ConstraintName},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "database error",
			insertErr: errors.New("database error"),
			wantCode:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(tt.insertErr)

			res, err := svc.Create(adminContext(), dto.CreateServiceRequest{
				Name:        "사무실 청소",
				Category:    model.CategoryOffice,
				Description: "정기 사무실 청소",
				BasePrice:   150000,
			})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "사무실 청소", res.Name)
			assert.Equal(t, "admin-id", res.CreatedBy)
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	t.Run("cache miss loads from repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "service:get:svc-1", gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "svc-1", Name: "쇼파 청소", Duration: 90}, nil)
		mockRepo.EXPECT().IncrementPopularity(gomock.Any(), "svc-1").Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), "svc-1")

		require.NoError(t, err)
		assert.Equal(t, 90, res.Duration)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCatalogService_GetByCategory(t *testing.T) {
	t.Run("invalid category", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.GetByCategory(context.Background(), "garden")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("active services of the category", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Service{
			{ID: "a", Category: model.CategorySpecial},
			{ID: "b", Category: model.CategorySpecial},
		}, nil)

		res, err := svc.GetByCategory(context.Background(), model.CategorySpecial)

		require.NoError(t, err)
		assert.Equal(t, model.CategorySpecial, res.Category)
		assert.Len(t, res.Services, 2)
	})
}

func TestCatalogService_Delete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "svc-1", IsActive: true}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, false, fields[model.FieldIsActive])
			assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])

			return nil
		})

	require.NoError(t, svc.Delete(adminContext(), "svc-1"))
}

func TestCatalogService_Initialize(t *testing.T) {
	t.Run("seeds an empty catalog", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		mockRepo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, services []model.Service) error {
				assert.Len(t, services, 4)
				assert.Equal(t, "입주청소", services[0].Name)
				assert.Equal(t, constant.ContextSystem, services[0].CreatedBy)

				return nil
			})
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(make([]model.Service, 4), nil)

		res, err := svc.Initialize(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalData)
	})

	t.Run("keeps an existing catalog", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)
		mockRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Times(0)
		mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(make([]model.Service, 7), nil)

		res, err := svc.Initialize(context.Background())

		require.NoError(t, err)
		assert.Len(t, res.Services, 7)
	})
}
