package offer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	offerMocks "hotel/internal/domains/offer/mocks"
	"hotel/internal/domains/offer/model/dto"
	"hotel/internal/handlers/offer"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*offerMocks.MockOfferService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := offerMocks.NewMockOfferService(ctrl)

	handler := offer.New(svc, mocks.NewOtel())

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
		setupMock func(svc *offerMocks.MockOfferService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"title":"Early bird","discount_percent":15,"code":"EARLY15"}`,
			setupMock: func(svc *offerMocks.MockOfferService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.OfferResponse{ID: "x-1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"x-1"`,
		},
		{
			name:      "blank required field never reaches the service",
			body:      `{"title":" ","discount_percent":15}`,
			setupMock: func(*offerMocks.MockOfferService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "title",
		},
		{
			name:      "invalid field never reaches the service",
			body:      `{"title":"Too good","discount_percent":120}`,
			setupMock: func(*offerMocks.MockOfferService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(*offerMocks.MockOfferService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/offers/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOffersResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(offers.code = :code AND offers.active = :active)", where)

			return dto.GetOffersResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/offers/?code=EARLY15&active=false", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "x-404").Return(dto.OfferResponse{}, failure.NotFound("offer not found"))

	recorder := serve(router, http.MethodGet, "/offers/x-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "offer not found")
}

func TestHandler_Update(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "x-1").Return(nil)

	recorder := serve(router, http.MethodPatch, "/offers/x-1", `{"code":"SUMMER20"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Offer updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-1").Return(nil)

		recorder := serve(router, http.MethodDelete, "/offers/x-1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Offer deleted successfully")
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-404").Return(failure.NotFound("offer not found"))

		recorder := serve(router, http.MethodDelete, "/offers/x-404", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
