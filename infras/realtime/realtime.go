package realtime

//go:generate go run go.uber.org/mock/mockgen -source=./realtime.go -destination=./mocks/realtime_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	EventInsert    = "INSERT"
	EventUpdate    = "UPDATE"
	EventDelete    = "DELETE"
	EventReconnect = "RECONNECT"
)

// Event is the payload the row triggers publish on the change channel.
type Event struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
}

type Handler func(event Event)

// Notifier delivers change events per table. The returned func removes the
// handler and is safe to call more than once.
type Notifier interface {
	Subscribe(table string, handler Handler) (unsubscribe func())
}

type Listener interface {
	Notifier
	// Listen blocks until ctx is done, dispatching every notification of the
	// configured channel to the handlers of its table.
	Listen(ctx context.Context) error
	Close() error
}

type listenerImpl struct {
	*Dispatcher
	listener *pq.Listener
	channel  string
	ping     time.Duration
}

func New(cfg *config.Config) Listener {
	l := &listenerImpl{
		Dispatcher: NewDispatcher(),
		channel:    cfg.Sync.Channel,
		ping:       time.Duration(cfg.Sync.PingIntervalSeconds) * time.Second,
	}

	l.listener = pq.NewListener(
		postgres.WriteDescriptor(*cfg),
		time.Duration(cfg.Sync.MinReconnectSeconds)*time.Second,
		time.Duration(cfg.Sync.MaxReconnectSeconds)*time.Second,
		l.onConnectionEvent,
	)

	return l
}

func (l *listenerImpl) Listen(ctx context.Context) error {
	if err := l.listener.Listen(l.channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.channel, err)
	}

	log.Info().Str("channel", l.channel).Msg("Listening for row changes")

	ticker := time.NewTicker(l.ping)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case notification := <-l.listener.Notify:
			// pq sends nil after re-establishing a lost connection; anything
			// published meanwhile is gone.
			if notification == nil {
				l.Broadcast(EventReconnect)

				continue
			}

			var event Event
			if err := json.Unmarshal([]byte(notification.Extra), &event); err != nil {
				log.Warn().Err(err).Str("payload", notification.Extra).Msg("failed to decode change notification")

				continue
			}

			l.Dispatch(event)
		case <-ticker.C:
			go func() {
				if err := l.listener.Ping(); err != nil {
					log.Warn().Err(err).Msg("change listener ping failed")
				}
			}()
		}
	}
}

func (l *listenerImpl) Close() error {
	if err := l.listener.Close(); err != nil {
		return fmt.Errorf("failed to close change listener: %w", err)
	}

	return nil
}

func (l *listenerImpl) onConnectionEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		log.Info().Msg("change listener connected")
	case pq.ListenerEventDisconnected:
		log.Warn().Err(err).Msg("change listener disconnected")
	case pq.ListenerEventReconnected:
		log.Info().Msg("change listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		log.Error().Err(err).Msg("change listener connection attempt failed")
	}
}
