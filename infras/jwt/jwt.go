package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/config"
	"hotel/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")

	errMissingHeader = errors.New("authorization header is required")
	errNotBearer     = errors.New("authorization header must use the Bearer scheme")
)

const (
	bearerScheme = "Bearer"
	leeway       = 30 * time.Second

	defaultAccessExpireMin  = 15
	defaultRefreshExpireMin = 7 * 24 * 60
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identifies a staff member or guest. Roles mirrors the role names
// held in the users table at issue time; authorization re-resolves them.
type Claims struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Roles   []string  `json:"roles,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(userID, email string, roles []string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// keyFor returns the signing secret and lifetime of a token type.
func (s *Service) keyFor(tokenType TokenType) ([]byte, time.Duration, error) {
	var (
		secret   string
		minutes  int
		fallback int
	)

	switch tokenType {
	case AccessToken:
		secret, minutes, fallback = s.config.JWT.AccessSecret, s.config.JWT.AccessExpireMin, defaultAccessExpireMin
	case RefreshToken:
		secret, minutes, fallback = s.config.JWT.RefreshSecret, s.config.JWT.RefreshExpireMin, defaultRefreshExpireMin
	default:
		return nil, 0, fmt.Errorf("unknown token type: %s", tokenType)
	}

	if secret == "" {
		return nil, 0, fmt.Errorf("no secret configured for %s tokens", tokenType)
	}

	if minutes <= 0 {
		minutes = fallback
	}

	return []byte(secret), time.Duration(minutes) * time.Minute, nil
}

func (s *Service) GenerateTokenPair(userID, email string, roles []string) (*TokenPair, error) {
	issuedAt := timezone.Now()

	access, err := s.sign(userID, email, roles, AccessToken, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	refresh, err := s.sign(userID, email, roles, RefreshToken, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	_, accessTTL, _ := s.keyFor(AccessToken)

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerScheme,
		ExpiresIn:    int64(accessTTL / time.Second),
	}, nil
}

func (s *Service) sign(userID, email string, roles []string, tokenType TokenType, issuedAt time.Time) (string, error) {
	secret, ttl, err := s.keyFor(tokenType)
	if err != nil {
		return "", err
	}

	tokenID := uuid.NewString()

	claims := Claims{
		UserID:  userID,
		Email:   email,
		Roles:   roles,
		TokenID: tokenID,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    s.config.App.Name,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}

	return signed, nil
}

// ValidateToken accepts only HS256 tokens from this issuer whose type
// matches tokenType. Expiry maps to ErrExpiredToken, a type mismatch to
// ErrInvalidClaim and everything else to ErrInvalidToken.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	secret, _, err := s.keyFor(tokenType)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if s.config.App.Name != "" {
		options = append(options, jwt.WithIssuer(s.config.App.Name))
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, options...)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil, !token.Valid:
		return nil, ErrInvalidToken
	case claims.Type != tokenType, claims.UserID == "":
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(claims.UserID, claims.Email, claims.Roles)
}

// ExtractTokenFromHeader returns the credentials of a Bearer Authorization
// header. The scheme is matched case-insensitively.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errMissingHeader
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", errNotBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errNotBearer
	}

	return token, nil
}
