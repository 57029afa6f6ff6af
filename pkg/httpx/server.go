package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	// RequestTimeout is the handler deadline applied by Timeout.
	RequestTimeout = 30 * time.Second
	// RequestsPerMinute is the per-IP budget enforced by NewRouter.
	RequestsPerMinute = 100
	// MaxBodyBytes caps request bodies; item batches are the largest payload.
	MaxBodyBytes = 10 << 20
)

// RouterOptions configures NewRouter. Nil middlewares are skipped.
type RouterOptions struct {
	IsDevelopment bool
	// AllowedOrigins is a comma-separated origin list. "*" admits any origin
	// but, unlike an explicit list, cannot carry the cart session cookie.
	AllowedOrigins string

	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Tracing  func(http.Handler) http.Handler
	Logging  func(http.Handler) http.Handler
}

// NewRouter returns the shop's chi router with its middleware stack, from
// outermost to innermost:
//
//	Recovery        JSON 500 for panics that Sentry re-raises
//	Sentry          reports the panic
//	RequestID       X-Request-Id for logs
//	Tracing         one span per request
//	Logging         one record per request with trace and request id
//	RealIP          RemoteAddr from X-Forwarded-For
//	rate limit      RequestsPerMinute per IP
//	CORS            preflight and headers, credentials for explicit origins
//	body limit      MaxBodyBytes
//	security        CSP, HSTS, frame and referrer policy
//
// There is no global handler deadline: request/response groups opt in with
// Timeout so SSE streams can stay open.
func NewRouter(opts RouterOptions) *chi.Mux {
	stack := []func(http.Handler) http.Handler{
		opts.Recovery,
		opts.Sentry,
		middleware.RequestID,
		opts.Tracing,
		opts.Logging,
		middleware.RealIP,
		httprate.LimitByIP(RequestsPerMinute, time.Minute),
		CORSMiddleware(opts.AllowedOrigins),
		RequestBodyLimit(MaxBodyBytes),
		securityHeaders(opts.IsDevelopment).Handler,
	}

	r := chi.NewRouter()
	for _, mw := range stack {
		if mw != nil {
			r.Use(mw)
		}
	}
	return r
}

func securityHeaders(isDevelopment bool) *secure.Secure {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), payment=()",
		IsDevelopment:         isDevelopment,
	})
}

// Timeout cancels the request context after RequestTimeout.
func Timeout() func(http.Handler) http.Handler {
	return middleware.Timeout(RequestTimeout)
}

// CORSMiddleware admits the listed origins. Explicit origins may send the
// session cookie; Last-Event-ID is allowed so EventSource clients can resume.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Last-Event-ID", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           300,
	})
}

// parseOrigins splits a comma-separated list, dropping blanks. An empty
// list means "*".
func parseOrigins(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the body at maxBytes. Reads past the cap fail with
// *http.MaxBytesError, which handlers answer with 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns the API server. WriteTimeout covers ordinary handlers;
// SSE handlers lift it per response through NewSSEWriter.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      RequestTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
