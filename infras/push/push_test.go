package push_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/push"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(n int) []push.Message {
	res := make([]push.Message, n)
	for i := range res {
		res[i] = push.Message{To: fmt.Sprintf("ExponentPushToken[%d]", i), Title: "New booking enquiry", Body: "Guest"}
	}

	return res
}

func newClient(url string) push.Push {
	cfg := &config.Config{}
	cfg.External.Push.GatewayURL = url
	cfg.External.Push.AccessToken = "secret"
	cfg.External.Push.TimeoutSeconds = 5

	return push.New(cfg, mocks.NewOtel())
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  []int
	}{
		{name: "empty", count: 0, want: []int{}},
		{name: "single partial batch", count: 1, want: []int{1}},
		{name: "exactly one batch", count: 100, want: []int{100}},
		{name: "one over", count: 101, want: []int{100, 1}},
		{name: "several batches", count: 250, want: []int{100, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := push.Chunk(messages(tt.count), push.MaxBatchSize)

			sizes := make([]int, len(batches))
			for i, batch := range batches {
				sizes[i] = len(batch)
			}

			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestPush_Send(t *testing.T) {
	var (
		mu    sync.Mutex
		sizes []int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var batch []push.Message
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch))

		mu.Lock()
		sizes = append(sizes, len(batch))
		mu.Unlock()

		tickets := make([]map[string]any, len(batch))
		for i := range batch {
			tickets[i] = map[string]any{"status": "ok"}
		}

		if batch[0].To == "ExponentPushToken[0]" {
			tickets[1] = map[string]any{"status": "error", "details": map[string]any{"error": "DeviceNotRegistered"}}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": tickets})
	}))
	defer server.Close()

	res, err := newClient(server.URL).Send(context.Background(), messages(250))

	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 50}, sizes)
	assert.Equal(t, 3, res.Batches)
	assert.Equal(t, 249, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"ExponentPushToken[1]"}, res.InvalidTokens)
}

func TestPush_SendContinuesAfterFailedBatch(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++

		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res, err := newClient(server.URL).Send(context.Background(), messages(150))

	require.Error(t, err)
	require.ErrorIs(t, err, push.ErrGatewayStatus)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 100, res.Failed)
	assert.Equal(t, 50, res.Sent)
}

func TestPush_SendNothing(t *testing.T) {
	res, err := newClient("http://127.0.0.1:0").Send(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, res.Batches)
}
