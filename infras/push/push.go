package push

//go:generate go run go.uber.org/mock/mockgen -source=./push.go -destination=./mocks/push_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MaxBatchSize is the largest number of messages the gateway accepts in one
// request.
const MaxBatchSize = 100

const (
	ticketStatusOK           = "ok"
	errorDeviceNotRegistered = "DeviceNotRegistered"
)

var ErrGatewayStatus = errors.New("push gateway returned an unexpected status")

type Message struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
	Sound string         `json:"sound,omitempty"`
}

// Result summarizes a send. Delivery is at most once: failed batches are
// counted and reported, never retried.
type Result struct {
	Batches       int
	Sent          int
	Failed        int
	InvalidTokens []string
}

type ticket struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type gatewayResponse struct {
	Data []ticket `json:"data"`
}

type Push interface {
	// Send posts messages to the gateway in batches of at most MaxBatchSize.
	// A failing batch does not stop the remaining ones; the returned error
	// joins every batch failure.
	Send(ctx context.Context, messages []Message) (Result, error)
}

type pushImpl struct {
	client *http.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Push {
	return &pushImpl{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   time.Duration(cfg.External.Push.TimeoutSeconds) * time.Second,
		},
		cfg:  cfg,
		otel: otel,
	}
}

// Chunk splits messages into consecutive batches of at most size messages.
func Chunk(messages []Message, size int) [][]Message {
	if size <= 0 {
		size = MaxBatchSize
	}

	batches := make([][]Message, 0, (len(messages)+size-1)/size)
	for start := 0; start < len(messages); start += size {
		end := min(start+size, len(messages))
		batches = append(batches, messages[start:end])
	}

	return batches
}

func (p *pushImpl) Send(ctx context.Context, messages []Message) (res Result, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelPushScopeName, constant.OtelPushScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	var errs []error

	for i, batch := range Chunk(messages, MaxBatchSize) {
		res.Batches++

		tickets, err := p.post(ctx, batch)
		if err != nil {
			log.Warn().Err(err).Int("batch", i).Int("size", len(batch)).Msg("failed to send push batch")

			res.Failed += len(batch)
			errs = append(errs, fmt.Errorf("batch %d: %w", i, err))

			continue
		}

		p.collect(&res, batch, tickets)
	}

	scope.SetAttributes(map[string]any{
		"push.batches": res.Batches,
		"push.sent":    res.Sent,
		"push.failed":  res.Failed,
	})

	return res, errors.Join(errs...)
}

func (p *pushImpl) post(ctx context.Context, batch []Message) ([]ticket, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.External.Push.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build push request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set("Accept", constant.ContentTypeJSON)

	if token := p.cfg.External.Push.AccessToken; token != constant.Empty {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call push gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrGatewayStatus, resp.StatusCode)
	}

	var body gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// The gateway accepted the batch, the receipt is only informative.
		log.Warn().Err(err).Msg("failed to decode push gateway response")

		return nil, nil
	}

	return body.Data, nil
}

// collect counts tickets, which the gateway returns in message order. A
// batch without tickets counts as sent.
func (p *pushImpl) collect(res *Result, batch []Message, tickets []ticket) {
	if len(tickets) == 0 {
		res.Sent += len(batch)

		return
	}

	for i, message := range batch {
		if i >= len(tickets) || tickets[i].Status == ticketStatusOK {
			res.Sent++

			continue
		}

		res.Failed++

		if tickets[i].Details.Error == errorDeviceNotRegistered {
			res.InvalidTokens = append(res.InvalidTokens, message.To)
		}
	}
}
