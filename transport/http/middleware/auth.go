package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/role"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// queryParamAccessToken carries the token for websocket upgrades, where
// browsers cannot set the Authorization header.
const queryParamAccessToken = "access_token"

// Revocations reports whether an access token id was signed out.
type Revocations interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService  jwt.JWT
	revocations Revocations
	roles       role.Resolver
	otel        otel.Otel
	permission  *permissions.PermissionData
	cfg         *config.Config
}

func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	revocations Revocations,
	roles role.Resolver,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthRole {
	return &authRoleImpl{
		jwtService:  jwtService,
		revocations: revocations,
		roles:       roles,
		otel:        otel,
		permission:  permissions,
		cfg:         cfg,
	}
}

// Auth validates the access token. Routes marked skip in the permission file
// are public.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)
		method := request.Method

		if m.permission != nil && m.permission.FindPermissions(path, method).Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		fail := func(err error) {
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()
		}

		tokenString, err := accessToken(request)
		if err != nil {
			fail(err)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			fail(failure.Unauthorized(message))

			return
		}

		if claims.UserID == constant.Empty || claims.Email == constant.Empty {
			log.Error().Str("user_id", claims.UserID).Msg("JWT claims: user id or email is empty")
			fail(failure.Unauthorized("Invalid token claims"))

			return
		}

		revoked, err := m.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// The revocation store being down must not lock every user out.
			log.Warn().Err(err).Str("token_id", claims.TokenID).Msg("failed to check token revocation")
		}

		if revoked {
			fail(failure.Unauthorized("Token has been revoked"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRoles, claims.Roles)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserAgent, request.Header.Get(constant.RequestHeaderUserAgent))

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC resolves the caller's roles and checks them against the roles the
// permission file allows for the route. Requires prior authentication via Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		ctx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission := m.permission.FindPermissions(routePattern(request), request.Method)

		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
		metadataRoles, _ := ctx.Value(constant.ContextKeyUserRoles).([]string)

		roles, err := m.roles.Resolve(ctx, role.Identity{UserID: userID, MetadataRoles: metadataRoles})
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve roles")

			err = failure.InternalError(err)
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if !role.HasAny(roles, permission.Permissions...) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_roles":    roles,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserRoles, roles)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, "internal")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRoles, []string{constant.RoleOwner})

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// routePattern returns the registered pattern of the request's route, such
// as /v1/rooms/{id}.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func accessToken(request *http.Request) (string, error) {
	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)

	if authHeader == constant.Empty {
		if strings.EqualFold(request.Header.Get("Upgrade"), "websocket") {
			if token := request.URL.Query().Get(queryParamAccessToken); token != constant.Empty {
				return token, nil
			}
		}

		return constant.Empty, failure.Unauthorized("Missing authorization header") // nolint:wrapcheck
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return constant.Empty, failure.Unauthorized("Invalid authorization header format") // nolint:wrapcheck
	}

	return tokenString, nil
}
