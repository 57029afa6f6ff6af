package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/reactiveshop/pkg/config"
)

const sentryFlushTimeout = 2 * time.Second

// SetupSentry starts crash reporting when cfg.SentryDSN is set.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: tracesSampleRate(cfg.Environment),
		BeforeSend:       dropSessionCookie,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// tracesSampleRate samples every transaction outside production.
func tracesSampleRate(env string) float64 {
	if env == config.EnvProduction {
		return 0.2
	}
	return 1.0
}

// dropSessionCookie keeps the visitor's signed cart session out of reports.
func dropSessionCookie(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil {
		return event
	}
	event.Request.Cookies = ""
	for k := range event.Request.Headers {
		if http.CanonicalHeaderKey(k) == "Cookie" {
			delete(event.Request.Headers, k)
		}
	}
	return event
}

// SentryFlush waits up to 2s for buffered reports before the process exits.
func SentryFlush() {
	sentry.Flush(sentryFlushTimeout)
}

// SentryMiddleware reports panics and re-panics, leaving the 500 answer to
// logger.Recovery further out in the chain.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}
