package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/reactiveshop/pkg/cache"
	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/database"
	"github.com/ghuser/reactiveshop/pkg/events"
	"github.com/ghuser/reactiveshop/pkg/logger"
)

// Application holds shared infrastructure dependencies for all bounded contexts.
// Pass it to each context's Routes function during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "adding item to cart", "cart_id", cartID)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.Bus
	Redis        *cache.RedisClient
	SessionStore sessions.Store // Redis-backed cart session store; nil in worker process
}
