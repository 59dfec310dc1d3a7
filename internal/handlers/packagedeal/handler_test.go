package packagedeal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	packageMocks "hotel/internal/domains/packagedeal/mocks"
	"hotel/internal/domains/packagedeal/model/dto"
	"hotel/internal/handlers/packagedeal"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*packageMocks.MockPackageService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := packageMocks.NewMockPackageService(ctrl)

	handler := packagedeal.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *packageMocks.MockPackageService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"name":"Honeymoon","price":5000,"duration_nights":3,"inclusions":["Breakfast","Spa"]}`,
			setupMock: func(svc *packageMocks.MockPackageService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.PackageResponse{ID: "x-1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"x-1"`,
		},
		{
			name:      "blank required field never reaches the service",
			body:      `{"name":"Honeymoon"}`,
			setupMock: func(*packageMocks.MockPackageService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "price",
		},
		{
			name:      "invalid field never reaches the service",
			body:      `{"name":"Honeymoon","price":5000,"inclusions":["  "]}`,
			setupMock: func(*packageMocks.MockPackageService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(*packageMocks.MockPackageService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/packages/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(LOWER(packages.name) LIKE LOWER(:name))", where)

			return dto.GetPackagesResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/packages/?search=moon", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "x-404").Return(dto.PackageResponse{}, failure.NotFound("package not found"))

	recorder := serve(router, http.MethodGet, "/packages/x-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "package not found")
}

func TestHandler_Update(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "x-1").Return(nil)

	recorder := serve(router, http.MethodPatch, "/packages/x-1", `{"duration_nights":4}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Package updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-1").Return(nil)

		recorder := serve(router, http.MethodDelete, "/packages/x-1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Package deleted successfully")
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-404").Return(failure.NotFound("package not found"))

		recorder := serve(router, http.MethodDelete, "/packages/x-404", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
