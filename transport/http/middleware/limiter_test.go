package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T, maxRequests int) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, store).RateLimit()(next), store
}

func stored(count int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*(value.(*int)) = count

		return nil
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("first request in a window", func(t *testing.T) {
		handler, store := limited(t, 2)

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("miss: %w", cache.Nil))
		store.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/enquiries", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Equal(t, "1", recorder.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("over the limit", func(t *testing.T) {
		handler, store := limited(t, 2)

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(stored(2))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/enquiries", nil))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
	})

	t.Run("cache outage lets requests through", func(t *testing.T) {
		handler, store := limited(t, 2)

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("preflight and websocket upgrades are not counted", func(t *testing.T) {
		handler, _ := limited(t, 0)

		preflight := httptest.NewRecorder()
		handler.ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/v1/rooms", nil))

		upgrade := httptest.NewRequest(http.MethodGet, "/v1/realtime/rooms", nil)
		upgrade.Header.Set("Upgrade", "websocket")

		socket := httptest.NewRecorder()
		handler.ServeHTTP(socket, upgrade)

		assert.Equal(t, http.StatusNoContent, preflight.Code)
		assert.Equal(t, http.StatusNoContent, socket.Code)
	})

	t.Run("clients are keyed by forwarded address", func(t *testing.T) {
		handler, store := limited(t, 5)

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string, _ any) error {
				assert.True(t, strings.Contains(key, "203.0.113.7"), key)
				assert.False(t, strings.Contains(key, "10.0.0.1"), key)

				return cache.Nil
			})
		store.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}
