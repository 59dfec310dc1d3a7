package password_test

import (
	"strings"
	"testing"

	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"regular", "frontdesk-2026", nil},
		{"unicode", "пароль-номер-101", nil},
		{"exactly the limit", strings.Repeat("a", 72), nil},
		{"empty", "", password.ErrEmptyPassword},
		{"over the limit", strings.Repeat("a", 73), password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("manager-secret")
	require.NoError(t, err)

	assert.NoError(t, password.Verify("manager-secret", hash))
	assert.ErrorIs(t, password.Verify("guest-secret", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("manager-secret", ""), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("manager-secret", "not-a-hash"), password.ErrVerifyingPassword)
}

func TestNeedsRehash(t *testing.T) {
	current, err := password.Hash("housekeeping")
	require.NoError(t, err)

	weak, err := bcrypt.GenerateFromPassword([]byte("housekeeping"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(current))
	assert.True(t, password.NeedsRehash(string(weak)))
	assert.True(t, password.NeedsRehash("garbage"))
}
