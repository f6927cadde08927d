package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ghuser/geoitems/pkg/config"
	"github.com/ghuser/geoitems/pkg/logger"
)

// Kafka header keys. The logical topic travels in a header because every
// logical topic is multiplexed onto the single configured Kafka topic.
const (
	headerMessageUUID = "watermill_uuid"
	headerTopic       = "event_topic"
)

// KafkaPublisher writes messages to the configured Kafka topic.
type KafkaPublisher struct {
	writer  *kafkago.Writer
	brokers []string
	log     logger.Logger
}

var (
	_ Publisher  = (*KafkaPublisher)(nil)
	_ Subscriber = (*KafkaSubscriber)(nil)
)

// NewKafkaPublisher creates a producer for cfg.KafkaTopic on cfg.KafkaBrokers.
func NewKafkaPublisher(cfg *config.Config, log logger.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, brokers: cfg.KafkaBrokers, log: log}
}

// Publish writes msgs in a single batch, tagged with topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	injectTrace(ctx, msgs)
	kmsgs := make([]kafkago.Message, len(msgs))
	for i, msg := range msgs {
		kmsgs[i] = toKafkaMessage(topic, msg)
	}
	if err := p.writer.WriteMessages(ctx, kmsgs...); err != nil {
		return fmt.Errorf("events: kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Ping succeeds when at least one broker accepts a connection.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("events: no kafka brokers configured")
	}
	var errs []error
	for _, broker := range p.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return conn.Close()
	}
	return fmt.Errorf("events: kafka ping: %w", errors.Join(errs...))
}

// Close flushes pending writes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// KafkaSubscriber consumes the configured Kafka topic as part of
// cfg.KafkaGroupID. Each Subscribe call opens its own reader and only hands
// messages tagged with the requested topic to its handler.
//
// Offsets are committed after the handler finishes, including when retries
// are exhausted; such failures are reported on the error channel and the
// message is not redelivered.
type KafkaSubscriber struct {
	cfg *config.Config
	log logger.Logger

	mu      sync.Mutex
	readers []*kafkago.Reader
	wg      sync.WaitGroup
}

// NewKafkaSubscriber returns a subscriber; no connection is made until Subscribe.
func NewKafkaSubscriber(cfg *config.Config, log logger.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{cfg: cfg, log: log}
}

// Subscribe starts consuming in the background. See EventBus.Subscribe for
// the handler contract.
func (s *KafkaSubscriber) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	if len(s.cfg.KafkaBrokers) == 0 {
		return nil, errors.New("events: no kafka brokers configured")
	}
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  s.cfg.KafkaBrokers,
		GroupID:  s.cfg.KafkaGroupID,
		Topic:    s.cfg.KafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	s.mu.Lock()
	s.readers = append(s.readers, r)
	s.mu.Unlock()

	errCh := make(chan error, errChanSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(errCh)

		for {
			km, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}
				s.report(ctx, errCh, topic, fmt.Errorf("events: kafka fetch: %w", err))
				continue
			}

			msg, msgTopic := fromKafkaMessage(km)
			if msgTopic == topic {
				msgCtx := extractTrace(ctx, msg)
				if err := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, s.log); err != nil {
					s.report(msgCtx, errCh, topic, err)
				}
			}

			if err := r.CommitMessages(ctx, km); err != nil && ctx.Err() == nil {
				s.report(ctx, errCh, topic, fmt.Errorf("events: kafka commit: %w", err))
			}
		}
	}()

	return errCh, nil
}

func (s *KafkaSubscriber) report(ctx context.Context, errCh chan<- error, topic string, err error) {
	select {
	case errCh <- err:
	default:
		s.log.ErrorContext(ctx, "events: error channel full, dropping error",
			"error", err, "topic", topic)
	}
}

// Close closes every reader and waits for in-flight handlers, bounded by
// the same shutdown timeout as EventBus.
func (s *KafkaSubscriber) Close() error {
	s.mu.Lock()
	readers := s.readers
	s.readers = nil
	s.mu.Unlock()

	var errs []error
	for _, r := range readers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		s.log.Error("events: timed out waiting for kafka handlers to complete")
	}
	return errors.Join(errs...)
}

// toKafkaMessage maps a watermill message onto a Kafka record. Metadata
// becomes headers; the partition key, when set, becomes the record key.
func toKafkaMessage(topic string, msg *message.Message) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(msg.Metadata)+2)
	headers = append(headers,
		kafkago.Header{Key: headerMessageUUID, Value: []byte(msg.UUID)},
		kafkago.Header{Key: headerTopic, Value: []byte(topic)},
	)
	for k, v := range msg.Metadata {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}

	key := msg.Metadata.Get(MetaPartitionKey)
	if key == "" {
		key = msg.UUID
	}
	return kafkago.Message{
		Key:     []byte(key),
		Value:   msg.Payload,
		Headers: headers,
	}
}

// fromKafkaMessage is the inverse of toKafkaMessage and also returns the
// logical topic the record was published to.
func fromKafkaMessage(km kafkago.Message) (*message.Message, string) {
	var uuid, topic string
	metadata := make(message.Metadata, len(km.Headers))
	for _, h := range km.Headers {
		switch h.Key {
		case headerMessageUUID:
			uuid = string(h.Value)
		case headerTopic:
			topic = string(h.Value)
		default:
			metadata.Set(h.Key, string(h.Value))
		}
	}
	msg := message.NewMessage(uuid, km.Value)
	msg.Metadata = metadata
	return msg, topic
}
