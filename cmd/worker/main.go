// Command worker consumes catalog and cart events: it warms the item cache
// on item.created and counts units added to carts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/events"
	"github.com/ghuser/reactiveshop/pkg/logger"
	"github.com/ghuser/reactiveshop/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		return err
	}
	log := logger.New(cfg)
	log.Debug("configuration loaded", "settings", config.Describe(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer otelShutdown(context.WithoutCancel(ctx)) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	// The worker only consumes, so its bus has no outbox relay.
	bus, err := events.OpenPostgres(cfg, log)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer bus.Close() //nolint:errcheck

	rdb, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close() //nolint:errcheck

	a := &app.Application{Config: cfg, Logger: log, EventBus: bus, Redis: rdb}
	if err := registerSubscribers(ctx, a); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("worker draining in-flight handlers")
	return nil
}
