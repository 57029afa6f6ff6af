package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing service answers. *database.Database,
// *cache.RedisClient and *events.Bus implement it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one named entry of the /health report.
type Dependency struct {
	Name string
	Pinger
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler pings every dependency in parallel under a shared 2s budget.
// It answers 200 with status "ok" when all respond and 503 with status
// "degraded" otherwise; each dependency is reported as "ok" or "unreachable".
func HealthHandler(deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		failed := make([]error, len(deps))
		var g errgroup.Group
		for i, dep := range deps {
			g.Go(func() error {
				failed[i] = dep.Ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		report := healthReport{Status: "ok", Checks: make(map[string]string, len(deps))}
		code := http.StatusOK
		for i, dep := range deps {
			if failed[i] != nil {
				report.Checks[dep.Name] = "unreachable"
				report.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			report.Checks[dep.Name] = "ok"
		}
		JSON(w, code, report)
	}
}
