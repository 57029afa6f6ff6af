package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/reactiveshop/docs/swagger"
	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/cartsession"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/database"
	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/events"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/pkg/logger"
	"github.com/ghuser/reactiveshop/pkg/telemetry"
	cartApi "github.com/ghuser/reactiveshop/services/cart/application/api"
	itemApi "github.com/ghuser/reactiveshop/services/item/application/api"
	itemSvcs "github.com/ghuser/reactiveshop/services/item/application/services"
	kitchenApi "github.com/ghuser/reactiveshop/services/kitchen/application/api"
)

// @title					Reactive Shop API
// @version				1.0
// @description			Item catalog, shopping carts and a kitchen dish feed.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api/v1
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	errhttp.RedactInternal(cfg.IsProduction())
	log.Debug("configuration loaded", "settings", config.Describe(cfg))

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.OpenPostgres(cfg, log, events.WithOutbox())
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartRelay(ctx); err != nil {
		log.Error("failed to start outbox relay", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := cartsession.NewStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.IsProduction(),
	)
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
	}

	r := httpx.NewRouter(httpx.RouterOptions{
		IsDevelopment:  cfg.Environment == config.EnvDevelopment,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Recovery:       logger.Recovery(log),
		Sentry:         telemetry.SentryMiddleware(),
		Tracing:        otelhttp.NewMiddleware(cfg.ServiceName),
		Logging:        logger.Middleware(log),
	})

	r.Get("/health", httpx.HealthHandler(
		httpx.Dependency{Name: "postgres", Pinger: pool},
		httpx.Dependency{Name: "redis", Pinger: redisClient},
		httpx.Dependency{Name: "event_bus", Pinger: eventBus},
	))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api/v1", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})
	kitchenApi.KitchenRoutes(r, appConfig)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api/v1.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	var items *itemSvcs.Services
	r.Group(func(r chi.Router) {
		r.Use(httpx.Timeout())
		items = itemApi.ItemRoutes(r, a)
	})
	cartApi.CartRoutes(r, a, items.Item)
}
