package hotel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	hotelMocks "hotel/internal/domains/hotel/mocks"
	"hotel/internal/domains/hotel/model/dto"
	"hotel/internal/handlers/hotel"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*hotelMocks.MockHotelService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := hotelMocks.NewMockHotelService(ctrl)

	handler := hotel.New(svc, mocks.NewOtel())

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
		setupMock func(svc *hotelMocks.MockHotelService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"name":"Seaside Inn","city":"Denpasar","images":["https://res.cloudinary.com/demo/inn.png"]}`,
			setupMock: func(svc *hotelMocks.MockHotelService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.HotelResponse{ID: "x-1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"x-1"`,
		},
		{
			name:      "blank required field never reaches the service",
			body:      `{"name":"   ","city":"Denpasar"}`,
			setupMock: func(*hotelMocks.MockHotelService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "name",
		},
		{
			name:      "invalid field never reaches the service",
			body:      `{"name":"Seaside Inn","email":"front desk"}`,
			setupMock: func(*hotelMocks.MockHotelService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(*hotelMocks.MockHotelService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/hotels/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(hotels.city = :city AND LOWER(hotels.name) LIKE LOWER(:name))", where)

			return dto.GetHotelsResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/hotels/?city=Denpasar&search=inn", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "x-404").Return(dto.HotelResponse{}, failure.NotFound("hotel not found"))

	recorder := serve(router, http.MethodGet, "/hotels/x-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "hotel not found")
}

func TestHandler_Update(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "x-1").Return(nil)

	recorder := serve(router, http.MethodPatch, "/hotels/x-1", `{"city":"Ubud"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Hotel updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-1").Return(nil)

		recorder := serve(router, http.MethodDelete, "/hotels/x-1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Hotel deleted successfully")
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-404").Return(failure.NotFound("hotel not found"))

		recorder := serve(router, http.MethodDelete, "/hotels/x-404", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
