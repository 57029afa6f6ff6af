package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
)

// outboxTopic holds enveloped messages until the relay moves them to their topic.
const outboxTopic = "reactiveshop_outbox"

var (
	ErrNoOutbox     = errors.New("events: bus opened without outbox")
	ErrRelayStarted = errors.New("events: outbox relay already running")
	postgresSchema  = watermillsql.DefaultPostgreSQLSchema{}
	postgresOffsets = watermillsql.DefaultPostgreSQLOffsetsAdapter{}
)

// Option tunes OpenPostgres.
type Option func(*Bus)

// WithOutbox routes every publish through the outbox topic. A message then
// reaches subscribers only after StartRelay forwards it, which lets a
// transaction publish atomically with its writes (see TxPublisher).
func WithOutbox() Option {
	return func(b *Bus) { b.outbox = true }
}

// OpenPostgres opens cfg.DatabaseURL and builds a Bus on the watermill-sql
// transport. Watermill creates its tables on first use. Instances sharing
// cfg.ServiceName form one consumer group, so each message is handled once.
func OpenPostgres(cfg *config.Config, log logger.Logger, opts ...Option) (*Bus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	wlog := watermillLogger{log: log}

	pub, err := newSQLPublisher(db, true, wlog)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	sub, err := newSQLSubscriber(db, cfg.ServiceName+"-consumer", wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}

	b := New(pub, sub, log)
	b.db = db
	for _, opt := range opts {
		opt(b)
	}
	if b.outbox {
		b.pub = toOutbox(pub)
	}
	return b, nil
}

// StartRelay runs the forwarder that drains the outbox into the real topics.
// It returns once the forwarder is accepting messages; the forwarder stops with ctx.
func (b *Bus) StartRelay(ctx context.Context) error {
	switch {
	case !b.outbox || b.db == nil:
		return ErrNoOutbox
	case b.relay != nil:
		return ErrRelayStarted
	}
	wlog := watermillLogger{log: b.log}

	outboxSub, err := newSQLSubscriber(b.db, "outbox-relay", wlog)
	if err != nil {
		return err
	}
	target, err := newSQLPublisher(b.db, true, wlog)
	if err != nil {
		_ = outboxSub.Close()
		return err
	}
	relay, err := forwarder.NewForwarder(outboxSub, target, wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = outboxSub.Close()
		return fmt.Errorf("events: new relay: %w", err)
	}
	b.relay = relay

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.log.InfoContext(ctx, "events: outbox relay running", "topic", outboxTopic)
		if err := relay.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: outbox relay stopped", "error", err)
		}
	}()

	select {
	case <-relay.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for relay: %w", ctx.Err())
	}
}

// DB returns the bus connection pool.
func (b *Bus) DB() *sql.DB {
	return b.db
}

// TxPublisher returns a publisher whose inserts join tx, so an event commits
// or rolls back with the rows it describes. The tables already exist once
// the bus is open, so no schema work runs inside tx.
func (b *Bus) TxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := newSQLPublisher(tx, false, watermillLogger{log: b.log})
	if err != nil {
		return nil, err
	}
	if b.outbox {
		return toOutbox(pub), nil
	}
	return pub, nil
}

func newSQLPublisher(db watermillsql.ContextExecutor, initSchema bool, wlog watermill.LoggerAdapter) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        postgresSchema,
		AutoInitializeSchema: initSchema,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new sql publisher: %w", err)
	}
	return pub, nil
}

func newSQLSubscriber(db *sql.DB, group string, wlog watermill.LoggerAdapter) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    postgresSchema,
		OffsetsAdapter:   postgresOffsets,
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new sql subscriber %s: %w", group, err)
	}
	return sub, nil
}

func toOutbox(pub message.Publisher) message.Publisher {
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}
