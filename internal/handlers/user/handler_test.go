package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/handlers/user"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*userMocks.MockUserService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := userMocks.NewMockUserService(ctrl)

	handler := user.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHandler_CreateUser(t *testing.T) {
	t.Run("invalid email never reaches the service", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"email":"desk","password":"password123"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "email must be a valid email address")
	})

	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{ID: "u-1", Email: "desk@hotel.test"}, nil)

		rec := serve(router, httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"email":"desk@hotel.test","password":"password123"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"u-1"`)
	})

	t.Run("conflict", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{}, failure.Conflict("email already registered"))

		rec := serve(router, httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"email":"desk@hotel.test","password":"password123"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_GetUsers_Filters(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(LOWER(users.email) LIKE LOWER(:email) AND users.active = :active)", where)
			assert.Equal(t, false, args["active"])

			return dto.GetUsersResponse{}, nil
		})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/users/?email=desk&active=false&sort_by=password", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateProfile_UsesCaller(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), "u-7").Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"full_name":"Front Desk"}`))
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "u-7"))

	rec := serve(router, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_DeleteUser(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), "u-2").Return(failure.NotFound("user not found"))

	rec := serve(router, httptest.NewRequest(http.MethodDelete, "/users/u-2", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
