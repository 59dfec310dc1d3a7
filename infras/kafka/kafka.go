package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

// Message is an event keyed by the entity it concerns. Messages with the same
// key land on the same partition, so one reservation's events stay ordered.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{Key: []byte(m.Key), Value: value}, nil
}

// DecodeKafkaMessage reads a JSON value of type T. The returned Message holds
// a T in Value.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (Message, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return Message{}, fmt.Errorf("failed to decode message %q: %w", string(msg.Key), err)
	}

	return Message{Key: string(msg.Key), Value: value}, nil
}

// Handler processes one consumed message. Its error is logged and the offset
// is committed either way.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler)
	Reader(consumerGroup, topic string) *kafkaGo.Reader
	Close() error
}

type kafkaClientImpl struct {
	config    *config.Config
	mechanism sasl.Mechanism
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport

	mu      sync.Mutex
	writers map[string]*kafkaGo.Writer
}

func New(config *config.Config) Client {
	client := &kafkaClientImpl{
		config:  config,
		dialer:  &kafkaGo.Dialer{DualStack: true, Timeout: writeTimeout},
		writers: map[string]*kafkaGo.Writer{},
	}

	if config.Kafka.SASL.Username != "" {
		client.mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
		client.dialer.SASLMechanism = client.mechanism
	}

	client.transport = &kafkaGo.Transport{SASL: client.mechanism}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return client
}

// writer returns the cached writer for topic. Writes are synchronous with
// leader acks so a failed publish is reported to the caller.
func (k *kafkaClientImpl) writer(topic string) *kafkaGo.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if writer, ok := k.writers[topic]; ok {
		return writer
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
	k.writers[topic] = writer

	return writer
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	if topic == "" {
		return errors.New("kafka topic is required")
	}

	batch := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		batch = append(batch, msg)
	}

	if err := k.writer(topic).WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(batch)).Msg("Published messages.")

	return nil
}

// Reader joins consumerGroup, or the configured group when it is empty.
func (k *kafkaClientImpl) Reader(consumerGroup, topic string) *kafkaGo.Reader {
	if topic == "" {
		log.Error().Msg("Topic name cannot be empty when creating Kafka reader")

		return nil
	}

	if consumerGroup == "" {
		consumerGroup = k.config.Kafka.ConsumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

// Consume handles messages one at a time, in partition order, until ctx is
// done.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) {
	reader := k.Reader(consumerGroup, topic)
	if reader == nil {
		return
	}

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer stopped.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch message from Kafka.")

			continue
		}

		if err := handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Msg("Failed to handle message.")
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit offset.")
		}
	}
}

// Close flushes and closes every writer opened by SendMessages.
func (k *kafkaClientImpl) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var errs []error

	for topic, writer := range k.writers {
		if err := writer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}

		delete(k.writers, topic)
	}

	return errors.Join(errs...)
}
