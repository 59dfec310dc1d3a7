package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/internal/domains/role"
	roleMocks "hotel/internal/domains/role/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

type fixture struct {
	userRepo *userMocks.MockUser
	roles    *roleMocks.MockResolver
	cache    *cacheMocks.MockRedisCache
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		roles:    roleMocks.NewMockResolver(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	f.svc = service.New(f.userRepo, f.roles, f.cache, cfg, mocks.NewOtel(), f.jwt)

	return f
}

func validUser() userModel.User {
	fullName := "Test User"

	return userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", // "password" hashed
		FullName: &fullName,
		Roles:    []string{constant.RoleStaff},
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	user := validUser()
	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.roles.EXPECT().
					Resolve(gomock.Any(), role.Identity{UserID: user.ID, MetadataRoles: user.Roles}).
					Return([]string{constant.RoleStaff}, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email, gomock.Any()).Return(tokenPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.roles.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return([]string{constant.RoleStaff}, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email, gomock.Any()).Return(tokenPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "user not found",
			req:  dto.LoginRequest{Email: "nonexistent@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr:  true,
			wantCode: 401,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				inactiveUser := user
				inactiveUser.Active = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "role lookup failure",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.roles.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr:  true,
			wantCode: 500,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.roles.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return([]string{constant.RoleStaff}, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email, gomock.Any()).Return(nil, errors.New("token generation failed"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
			assert.Equal(t, user.ID, result.User.ID)
			assert.Equal(t, []string{constant.RoleStaff}, result.Roles)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	user := validUser()
	claims := &jwt.Claims{UserID: user.ID, Email: user.Email, TokenID: "refresh-id", Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful token refresh rotates the refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:refresh-id", gomock.Any()).Return(redis.Nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(user.ID, user.Email, gomock.Any()).
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:refresh-id", "1", 3600).Return(nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
		{
			name: "revoked refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:refresh-id", gomock.Any()).Return(nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated user",
			setupMock: func(f fixture) {
				inactive := user
				inactive.Active = false

				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(redis.Nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
			assert.Equal(t, "new-refresh-token", result.RefreshToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyTokenID, "access-id")

	t.Run("revokes access and refresh tokens", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:access-id", "1", 900).Return(nil)
		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(&jwt.Claims{TokenID: "refresh-id"}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:refresh-id", "1", 3600).Return(nil)

		assert.NoError(t, f.svc.Logout(ctx, dto.LogoutRequest{RefreshToken: "refresh"}))
	})

	t.Run("ignores an invalid refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:access-id", "1", 900).Return(nil)
		f.jwt.EXPECT().ValidateToken("bogus", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		assert.NoError(t, f.svc.Logout(ctx, dto.LogoutRequest{RefreshToken: "bogus"}))
	})

	t.Run("requires a session", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_IsRevoked(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:a", gomock.Any()).Return(nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:b", gomock.Any()).Return(redis.Nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:c", gomock.Any()).Return(errors.New("connection refused"))

	revoked, err := f.svc.IsRevoked(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = f.svc.IsRevoked(context.Background(), "b")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = f.svc.IsRevoked(context.Background(), "c")
	assert.Error(t, err)
}

func TestAuthService_SessionAndMe(t *testing.T) {
	user := validUser()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, user.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, user.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, "access-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRoles, []string{constant.RoleOwner})

	f := newFixture(t)

	session, err := f.svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.SessionResponse{
		UserID:  user.ID,
		Email:   user.Email,
		TokenID: "access-id",
		Roles:   []string{constant.RoleOwner},
	}, session)

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
	f.roles.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return([]string{constant.RoleStaff}, nil)

	me, err := f.svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.User.Email)
	assert.Equal(t, []string{constant.RoleStaff}, me.Roles)

	_, err = f.svc.Session(context.Background())
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := validUser()

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "nope",
			NewPassword:     "new-password",
		}, user.ID)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("updates the hash", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hashed, ok := fields[userModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NotEqual(t, "new-password", hashed)

				return nil
			})

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "new-password",
		}, user.ID)

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "new-password",
		}, "missing")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
