package cartsession

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/pkg/logger"
)

const (
	sessionName      = "reactiveshop_session"
	sessionCartIDKey = "cart_id"
)

// CartCreator creates carts and checks that a remembered cart still exists.
// *services.CartService in the cart context satisfies it.
type CartCreator interface {
	NewCartID(ctx context.Context) (int64, error)
	CartExists(ctx context.Context, cartID int64) (bool, error)
}

// RequireCart is a chi middleware that gives every visitor a cart.
// It reads the cart id from the session cookie. When the session has none,
// or the cart it names is gone, a new cart is created and remembered.
//
// After this middleware, handlers can safely call cartsession.CartIDFromCtx(r.Context()).
func RequireCart(store sessions.Store, carts CartCreator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := store.Get(r, sessionName)
			if err != nil {
				// gorilla returns a fresh session alongside decode errors
				log.WarnContext(ctx, "invalid session cookie", "error", err)
			}
			if session == nil {
				httpx.JSONError(w, http.StatusInternalServerError, "session unavailable")
				return
			}

			if id, ok := session.Values[sessionCartIDKey].(int64); ok && id > 0 {
				exists, err := carts.CartExists(ctx, id)
				if err != nil {
					log.ErrorContext(ctx, "check session cart", "cart_id", id, "error", err)
					httpx.JSONError(w, http.StatusInternalServerError, "session unavailable")
					return
				}
				if exists {
					next.ServeHTTP(w, r.WithContext(withSessionCart(ctx, id)))
					return
				}
				log.InfoContext(ctx, "session cart gone, creating a new one", "cart_id", id)
			}

			id, err := carts.NewCartID(ctx)
			if err != nil {
				log.ErrorContext(ctx, "create session cart", "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, "could not create cart")
				return
			}
			session.Values[sessionCartIDKey] = id
			if err := session.Save(r, w); err != nil {
				log.ErrorContext(ctx, "save session", "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, "session unavailable")
				return
			}

			next.ServeHTTP(w, r.WithContext(withSessionCart(ctx, id)))
		})
	}
}

// withSessionCart stores the cart id for handlers and tags the request's
// log records with it.
func withSessionCart(ctx context.Context, id int64) context.Context {
	return logger.WithAttrs(WithCartID(ctx, id), "cart_id", id)
}
