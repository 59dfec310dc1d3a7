package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"failure keeps its status", failure.Conflict("room is already held"), http.StatusConflict},
		{"plain error is a 500", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithError(recorder, tt.err)

			var body response.Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.Equal(t, tt.err.Error(), *body.Error)
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithJSON(recorder, http.StatusCreated, map[string]int{"nights": 3})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"nights":3}}`, recorder.Body.String())
}

func TestWithFile(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithFile(recorder, "application/pdf", "INV-20260301-ABCD1234.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="INV-20260301-ABCD1234.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", recorder.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.3", recorder.Body.String())
}
