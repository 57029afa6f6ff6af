// Package events carries domain events between the API and the worker over
// Watermill. The production transport is PostgreSQL (see OpenPostgres); any
// Watermill publisher/subscriber pair can back a Bus, which keeps handlers
// testable against the in-memory gochannel transport.
//
// Trace context travels in message metadata, so a subscriber's span continues
// the publisher's trace.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/reactiveshop/pkg/logger"
)

const (
	handlerAttempts = 3
	failureBuffer   = 100
	drainTimeout    = 30 * time.Second
)

// Handler processes one delivered message. A non-nil error triggers another
// attempt; once attempts run out the message is nacked.
type Handler func(ctx context.Context, msg *message.Message) error

// Bus publishes and subscribes domain events.
type Bus struct {
	pub     message.Publisher
	sub     message.Subscriber
	db      *sql.DB // nil unless opened by OpenPostgres
	outbox  bool
	relay   *forwarder.Forwarder
	backoff func() retry.Backoff
	log     logger.Logger

	inflight sync.WaitGroup
}

// New builds a Bus over an existing Watermill transport.
func New(pub message.Publisher, sub message.Subscriber, log logger.Logger) *Bus {
	return &Bus{pub: pub, sub: sub, backoff: handlerBackoff, log: log}
}

// handlerBackoff allows handlerAttempts calls: 1s, then 2s between them.
func handlerBackoff() retry.Backoff {
	return retry.WithMaxRetries(handlerAttempts-1, retry.NewExponential(time.Second))
}

// Publish stamps the caller's trace context on every message and sends them to topic.
func (b *Bus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := b.pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts delivering topic to h in a background goroutine. Messages
// whose handler keeps failing are nacked and their final error is sent on the
// returned channel (buffered, dropped with a log line when full). The channel
// closes when the subscription ends. Close waits for the goroutine.
func (b *Bus) Subscribe(ctx context.Context, topic string, h Handler) (<-chan error, error) {
	msgs, err := b.sub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe %s: %w", topic, err)
	}

	failures := make(chan error, failureBuffer)
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		defer close(failures)
		for msg := range msgs {
			msgCtx := extractTrace(ctx, msg)
			if err := b.deliver(msgCtx, topic, msg, h); err != nil {
				msg.Nack()
				select {
				case failures <- err:
				default:
					b.log.ErrorContext(msgCtx, "events: failure channel full", "topic", topic, "error", err)
				}
				continue
			}
			msg.Ack()
		}
	}()
	return failures, nil
}

func (b *Bus) deliver(ctx context.Context, topic string, msg *message.Message, h Handler) error {
	attempt := 0
	err := retry.Do(ctx, b.backoff(), func(ctx context.Context) error {
		attempt++
		if err := h(ctx, msg); err != nil {
			b.log.WarnContext(ctx, "events: handler failed",
				"topic", topic,
				"message_uuid", msg.UUID,
				"attempt", attempt,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("events: %s message %s failed after %d attempts: %w", topic, msg.UUID, attempt, err)
	}
	return nil
}

// Ping reports whether the bus storage is reachable. In-memory buses are always up.
func (b *Bus) Ping(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping: %w", err)
	}
	return nil
}

// Close stops subscriptions and the outbox relay, waits up to drainTimeout
// for handlers in flight, then releases the publisher and the database.
func (b *Bus) Close() error {
	if err := b.sub.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if b.relay != nil {
		if err := b.relay.Close(); err != nil {
			return fmt.Errorf("events: close relay: %w", err)
		}
	}

	drained := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(drainTimeout):
		b.log.Error("events: handlers still running after drain timeout", "timeout", drainTimeout)
	}

	if err := b.pub.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}
