package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/geoitems/pkg/logger"
)

// Handler processes one message. Returning an error triggers the transport's
// retry policy.
type Handler func(context.Context, *message.Message) error

// Publisher sends messages to a topic. Implemented by EventBus, KafkaPublisher
// and any watermill publisher wrapped with WrapPublisher.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Subscriber delivers messages of a topic to handler until ctx is cancelled
// or the subscriber is closed. Failures that survive retries are sent on the
// returned channel, which callers must drain.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error)
}

// Metadata keys set on every message built by NewJSONMessage.
const (
	MetaEventID      = "event_id"
	MetaEventVersion = "event_version"
	MetaPartitionKey = "partition_key"
)

// NewJSONMessage marshals payload into a new message with a fresh UUID.
// key, when non-empty, is carried as the partition key so related messages
// stay ordered on partitioned transports.
func NewJSONMessage(payload any, key string) (*message.Message, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), b)
	if key != "" {
		msg.Metadata.Set(MetaPartitionKey, key)
	}
	return msg, nil
}

// WrapPublisher adapts a plain watermill publisher (gochannel, sql, ...) to
// Publisher, adding trace propagation.
func WrapPublisher(p message.Publisher) Publisher {
	return &watermillPublisher{pub: p}
}

type watermillPublisher struct{ pub message.Publisher }

func (w *watermillPublisher) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := w.pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// injectTrace writes the OTel trace context of ctx into each message's metadata.
func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

// extractTrace restores the publisher's trace context from msg on top of ctx.
func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// retryWithBackoff calls handler up to maxRetries times with exponential backoff.
// Returns nil on first success; returns the last error after all retries exhaust.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
				"next_delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// NewLoggerAdapter bridges logger.Logger to watermill.LoggerAdapter so
// watermill components (gochannel, router, sql transport) log through slog.
func NewLoggerAdapter(log logger.Logger) watermill.LoggerAdapter {
	return &slogAdapter{log: log}
}

type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
