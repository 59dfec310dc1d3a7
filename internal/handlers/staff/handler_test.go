package staff_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	staffMocks "hotel/internal/domains/staff/mocks"
	"hotel/internal/domains/staff/model/dto"
	"hotel/internal/handlers/staff"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*staffMocks.MockStaffService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := staffMocks.NewMockStaffService(ctrl)

	handler := staff.New(svc, mocks.NewOtel())

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
		setupMock func(svc *staffMocks.MockStaffService)
		wantCode  int
		wantBody  string
	}{
		{
			name: "created",
			body: `{"name":"Rina","role":"Receptionist","email":"rina@hotel.test"}`,
			setupMock: func(svc *staffMocks.MockStaffService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.StaffResponse{ID: "x-1"}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"x-1"`,
		},
		{
			name:      "blank required field never reaches the service",
			body:      `{"name":"Rina","role":" "}`,
			setupMock: func(*staffMocks.MockStaffService) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "role",
		},
		{
			name:      "invalid field never reaches the service",
			body:      `{"name":"Rina","role":"Chef","user_id":"not-a-uuid"}`,
			setupMock: func(*staffMocks.MockStaffService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      ``,
			setupMock: func(*staffMocks.MockStaffService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/staff/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStaffResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(staff.role = :role AND LOWER(staff.name) LIKE LOWER(:name))", where)

			return dto.GetStaffResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/staff/?role=Manager&search=rin", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "x-404").Return(dto.StaffResponse{}, failure.NotFound("staff member not found"))

	recorder := serve(router, http.MethodGet, "/staff/x-404", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "staff member not found")
}

func TestHandler_Update(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "x-1").Return(nil)

	recorder := serve(router, http.MethodPatch, "/staff/x-1", `{"phone":"+62 361 000"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Staff member updated successfully")
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-1").Return(nil)

		recorder := serve(router, http.MethodDelete, "/staff/x-1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Staff member deleted successfully")
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Delete(gomock.Any(), "x-404").Return(failure.NotFound("staff member not found"))

		recorder := serve(router, http.MethodDelete, "/staff/x-404", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
