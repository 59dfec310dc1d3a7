package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/role"
	roleMocks "hotel/internal/domains/role/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type revocations struct {
	revoked bool
	err     error
}

func (r revocations) IsRevoked(context.Context, string) (bool, error) {
	return r.revoked, r.err
}

var routePermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/rooms/", Method: http.MethodGet, Skip: true},
		{Path: "/v1/rooms/", Method: http.MethodPost, Permissions: []string{constant.RoleOwner, constant.RoleStaff}},
		{Path: "/v1/rooms/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleOwner}},
		{Path: "/v1/feeds/", Method: http.MethodGet},
	},
}

type fixture struct {
	jwt    *jwtMocks.MockJWT
	roles  *roleMocks.MockResolver
	router chi.Router
}

func newFixture(t *testing.T, revoked revocations) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		jwt:    jwtMocks.NewMockJWT(ctrl),
		roles:  roleMocks.NewMockResolver(ctrl),
		router: chi.NewRouter(),
	}

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-secret"

	authRole := middleware.NewAuthRoleMiddleware(f.jwt, revoked, f.roles, mocks.NewOtel(), routePermissions, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		roles, _ := r.Context().Value(constant.ContextKeyUserRoles).([]string)
		w.Header().Set("X-Roles", strings.Join(roles, ","))
		w.WriteHeader(http.StatusOK)
	}

	f.router.Group(func(group chi.Router) {
		group.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		group.Route("/v1", func(v1 chi.Router) {
			v1.Get("/rooms/", ok)
			v1.Post("/rooms/", ok)
			v1.Delete("/rooms/{id}", ok)
			v1.Get("/feeds/", ok)
		})
	})

	return f
}

func (f fixture) expectToken(userID string) {
	f.jwt.EXPECT().ValidateToken("good", jwt.AccessToken).Return(&jwt.Claims{
		UserID:  userID,
		Email:   userID + "@hotel.test",
		TokenID: "tok-1",
	}, nil)
}

func (f fixture) expectRoles(userID string, roles ...string) {
	f.roles.EXPECT().Resolve(gomock.Any(), role.Identity{UserID: userID}).Return(roles, nil)
}

func request(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return req
}

func bearer() map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer good"}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name        string
		revocations revocations
		setup       func(f fixture)
		request     *http.Request
		wantCode    int
		wantRoles   string
	}{
		{
			name:     "public route needs no token",
			setup:    func(fixture) {},
			request:  request(http.MethodGet, "/v1/rooms/", nil),
			wantCode: http.StatusOK,
		},
		{
			name:     "protected route without token",
			setup:    func(fixture) {},
			request:  request(http.MethodPost, "/v1/rooms/", nil),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed authorization header",
			setup:    func(fixture) {},
			request:  request(http.MethodPost, "/v1/rooms/", map[string]string{constant.RequestHeaderAuthorization: "Token good"}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			setup: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("good", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			request:  request(http.MethodPost, "/v1/rooms/", bearer()),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "staff may create rooms",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleStaff)
			},
			request:   request(http.MethodPost, "/v1/rooms/", bearer()),
			wantCode:  http.StatusOK,
			wantRoles: constant.RoleStaff,
		},
		{
			name: "customer may not create rooms",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleCustomer)
			},
			request:  request(http.MethodPost, "/v1/rooms/", bearer()),
			wantCode: http.StatusForbidden,
		},
		{
			name: "only owners delete rooms",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleStaff)
			},
			request:  request(http.MethodDelete, "/v1/rooms/r1", bearer()),
			wantCode: http.StatusForbidden,
		},
		{
			name: "route without roles admits any signed in user",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleCustomer)
			},
			request:  request(http.MethodGet, "/v1/feeds/", bearer()),
			wantCode: http.StatusOK,
		},
		{
			name:        "revoked token",
			revocations: revocations{revoked: true},
			setup: func(f fixture) {
				f.expectToken("u1")
			},
			request:  request(http.MethodGet, "/v1/feeds/", bearer()),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:        "revocation store outage fails open",
			revocations: revocations{err: errors.New("redis down")},
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleCustomer)
			},
			request:  request(http.MethodGet, "/v1/feeds/", bearer()),
			wantCode: http.StatusOK,
		},
		{
			name: "role lookup failure",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.roles.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			request:  request(http.MethodGet, "/v1/feeds/", bearer()),
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "websocket upgrade may pass the token as a query parameter",
			setup: func(f fixture) {
				f.expectToken("u1")
				f.expectRoles("u1", constant.RoleCustomer)
			},
			request:  request(http.MethodGet, "/v1/feeds/?access_token=good", map[string]string{"Upgrade": "websocket"}),
			wantCode: http.StatusOK,
		},
		{
			name:     "query token is ignored outside websocket upgrades",
			setup:    func(fixture) {},
			request:  request(http.MethodGet, "/v1/feeds/?access_token=good", nil),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "internal api key acts as owner",
			setup:     func(fixture) {},
			request:   request(http.MethodDelete, "/v1/rooms/r1", map[string]string{constant.RequestHeaderAPIKey: "internal-secret"}),
			wantCode:  http.StatusOK,
			wantRoles: constant.RoleOwner,
		},
		{
			name:     "wrong api key",
			setup:    func(fixture) {},
			request:  request(http.MethodDelete, "/v1/rooms/r1", map[string]string{constant.RequestHeaderAPIKey: "guess"}),
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.revocations)
			tt.setup(f)

			recorder := httptest.NewRecorder()
			f.router.ServeHTTP(recorder, tt.request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantRoles != "" {
				assert.Equal(t, tt.wantRoles, recorder.Header().Get("X-Roles"))
			}
		})
	}
}
