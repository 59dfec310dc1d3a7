package hotelservice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	serviceMocks "hotel/internal/domains/hotelservice/mocks"
	"hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/handlers/hotelservice"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockHotelServiceService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockHotelServiceService(ctrl)

	handler := hotelservice.New(svc, mocks.NewOtel())

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
		setupMock func(svc *serviceMocks.MockHotelServiceService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"name":"Airport transfer","category":"Transport","price":350}`,
			setupMock: func(svc *serviceMocks.MockHotelServiceService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.ServiceResponse{ID: "x-1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"x-1"`,
		},
		{
			name:      "blank required field never reaches the service",
			body:      `{"name":"","category":"Spa"}`,
			setupMock: func(*serviceMocks.MockHotelServiceService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "name",
		},
		{
			name:      "invalid field never reaches the service",
			body:      `{"name":"Massage","price":-10}`,
			setupMock: func(*serviceMocks.MockHotelServiceService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(*serviceMocks.MockHotelServiceService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/services/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(services.category = :category AND services.active = :active)", where)

			return dto.GetServicesResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/services/?category=Spa&active=true", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "x-404").Return(dto.ServiceResponse{}, failure.NotFound("service not found"))

	recorder := serve(router, http.MethodGet, "/services/x-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "service not found")
}

func TestHandler_Update(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "x-1").Return(nil)

	recorder := serve(router, http.MethodPatch, "/services/x-1", `{"category":"Wellness"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Service updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-1").Return(nil)

		recorder := serve(router, http.MethodDelete, "/services/x-1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Service deleted successfully")
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-404").Return(failure.NotFound("service not found"))

		recorder := serve(router, http.MethodDelete, "/services/x-404", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
