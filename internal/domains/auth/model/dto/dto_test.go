package dto_test

import (
	"testing"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
)

var pair = &jwt.TokenPair{
	AccessToken:  "access",
	RefreshToken: "refresh",
	TokenType:    "Bearer",
	ExpiresIn:    900,
}

func TestTokenResponses(t *testing.T) {
	var login dto.LoginResponse
	login.FromTokenPair(pair)

	assert.Equal(t, dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, login)

	var refreshed dto.RefreshTokenResponse
	refreshed.FromTokenPair(pair)

	assert.Equal(t, "access", refreshed.AccessToken)
	assert.Equal(t, "refresh", refreshed.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "Ayu Lestari"

	user := (&dto.RegisterRequest{Email: "ayu@guest.test", Password: "hunter2-hunter2", FullName: &fullName}).
		ToUserModel(constant.ContextGuest, "bcrypt-hash")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ayu@guest.test", user.Email)
	assert.Equal(t, "bcrypt-hash", user.Password)
	assert.Equal(t, &fullName, user.FullName)
	assert.Empty(t, user.Roles)
	assert.NotNil(t, user.Roles)
	assert.True(t, user.Active)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	assert.Equal(t, user.CreatedAt, user.ModifiedAt)
}
