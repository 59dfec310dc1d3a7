package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTableIsValid(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	assert.NotEmpty(t, data.Endpoints)
	assert.True(t, data.FindPermissions("/v1/auth/login", http.MethodPost).Skip)
}

func TestFindPermissions(t *testing.T) {
	data := &PermissionData{
		Endpoints: []Permission{
			{Path: "/v1/rooms/", Method: http.MethodGet, Skip: true},
			{Path: "/v1/rooms/", Method: http.MethodPost, Permissions: []string{"owner", "staff"}},
		},
	}

	assert.True(t, data.FindPermissions("/v1/rooms", http.MethodGet).Skip)
	assert.True(t, data.FindPermissions("/v1/rooms/", http.MethodHead).Skip)
	assert.Equal(t, []string{"owner", "staff"}, data.FindPermissions("/v1/rooms", "post").Permissions)
	assert.Equal(t, Permission{}, data.FindPermissions("/v1/rooms", http.MethodDelete))
	assert.Equal(t, Permission{}, data.FindPermissions("/v1/feeds", http.MethodGet))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: `{"endpoints":[{"path":"/v1/rooms","method":"GET","skip":true}]}`},
		{name: "malformed", raw: `{"endpoints":`, wantErr: true},
		{name: "missing method", raw: `{"endpoints":[{"path":"/v1/rooms"}]}`, wantErr: true},
		{
			name:    "duplicate after normalization",
			raw:     `{"endpoints":[{"path":"/v1/rooms","method":"GET"},{"path":"/v1/rooms/","method":"get"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
