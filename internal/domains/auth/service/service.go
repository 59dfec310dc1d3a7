package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/role"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheRevokedToken = "auth:revoked"
	revokedMarker     = "1"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	// Logout revokes the access token of ctx and, when given, the refresh token.
	Logout(ctx context.Context, req dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	// Session describes the authenticated caller without touching the store.
	Session(ctx context.Context) (dto.SessionResponse, error)
	// Me returns the caller's account with freshly resolved roles.
	Me(ctx context.Context) (dto.MeResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	roles      role.Resolver
	cache      cache.RedisCache
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, roles role.Resolver, cache cache.RedisCache, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		roles:      roles,
		cache:      cache,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(constant.ContextGuest, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	roles, err := s.roles.Resolve(ctx, role.Identity{UserID: user.ID, MetadataRoles: user.Roles})
	if err != nil {
		return res, fmt.Errorf("failed to resolve roles: %w", err)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Roles)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	if password.NeedsRehash(user.Password) {
		s.rehash(ctx, user.ID, req.Password)
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)
	res.Roles = roles

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == constant.Empty {
		return failure.Unauthorized("missing session") // nolint:wrapcheck
	}

	if err = s.revoke(ctx, tokenID, s.cfg.JWT.AccessExpireMin); err != nil {
		return err
	}

	if req.RefreshToken == constant.Empty {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		// an expired or forged refresh token cannot be used anyway
		log.Warn().Err(err).Msg("ignoring invalid refresh token on logout")

		return nil
	}

	return s.revoke(ctx, claims.TokenID, s.cfg.JWT.RefreshExpireMin)
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized("refresh token has been revoked") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized("user is no longer active") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Roles)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// refresh tokens are single use
	if err = s.revoke(ctx, claims.TokenID, s.cfg.JWT.RefreshExpireMin); err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Session(ctx context.Context) (res dto.SessionResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Session")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	res.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	res.TokenID, _ = ctx.Value(constant.ContextKeyTokenID).(string)
	res.Roles, _ = ctx.Value(constant.ContextKeyUserRoles).([]string)

	if res.UserID == constant.Empty {
		return res, failure.Unauthorized("missing session") // nolint:wrapcheck
	}

	if res.Roles == nil {
		res.Roles = []string{}
	}

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("missing session") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	roles, err := s.roles.Resolve(ctx, role.Identity{UserID: user.ID, MetadataRoles: user.Roles})
	if err != nil {
		return res, fmt.Errorf("failed to resolve roles: %w", err)
	}

	var userResponse userDto.UserResponse
	userResponse.FromModel(user)

	res.User = userResponse
	res.Roles = roles

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var marker string

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), &marker)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, cache.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
}

func (s *serviceImpl) revoke(ctx context.Context, tokenID string, expireMin int) error {
	key := shared.BuildCacheKey(cacheRevokedToken, tokenID)

	if err := s.cache.Save(ctx, key, revokedMarker, expireMin*constant.MinutesToSeconds); err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterByID(strings.ToLower(strings.TrimSpace(email)), userModel.FieldEmail, userModel.TableName)
}

// rehash upgrades a hash made with an older cost. Failure leaves the old hash
// in place, which still verifies.
func (s *serviceImpl) rehash(ctx context.Context, userID, plain string) {
	hash, err := password.Hash(plain)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to rehash password")

		return
	}

	fields := map[string]any{userModel.FieldPassword: hash}
	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to store rehashed password")
	}
}
