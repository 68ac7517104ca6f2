package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "cleanbook/infras/otel/mocks"
	"cleanbook/internal/domains/catalog/model"
	"cleanbook/internal/domains/catalog/model/dto"
	"cleanbook/internal/domains/catalog/service/mocks"
	"cleanbook/internal/handlers/catalog"
	"cleanbook/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockCatalog) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockCatalog(ctrl)

	handler := catalog.New(mockService, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func TestHandler_GetServices(t *testing.T) {
	inactive := false

	tests := []struct {
		name       string
		query      string
		wantFilter *dto.ServiceListFilter
		wantStatus int
	}{
		{
			name:       "defaults to active services",
			wantFilter: &dto.ServiceListFilter{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "category and inactive flag",
			query:      "?category=office&is_active=false",
			wantFilter: &dto.ServiceListFilter{Category: model.CategoryOffice, IsActive: &inactive},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown category",
			query:      "?category=garden",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			if tt.wantFilter != nil {
				mockService.EXPECT().GetAll(gomock.Any(), gomock.Any(), tt.wantFilter.ToFilterGroup()).
					Return(dto.GetServicesResponse{Services: []dto.ServiceResponse{}}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services/"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_DeleteService(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "soft deleted", wantStatus: http.StatusOK},
		{name: "missing service", serviceErr: failure.NotFound("service"), wantStatus: http.StatusNotFound},
		{name: "not an admin", serviceErr: failure.Forbidden("admin only"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			mockService.EXPECT().Delete(gomock.Any(), "svc-1").Return(tt.serviceErr)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/services/svc-1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_InitializeServices_Conflict(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().Initialize(gomock.Any()).
		Return(dto.GetServicesResponse{}, failure.Conflict("services already initialized"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/services/initialize", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
