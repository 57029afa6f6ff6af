package cartsession

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const cartIDKey contextKey = "cart_id"

// ErrNoCart is returned when no cart id exists in the request context.
var ErrNoCart = errors.New("cart_id not found in context")

// CartIDFromCtx returns the session cart id placed by RequireCart.
func CartIDFromCtx(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(cartIDKey).(int64)
	if !ok || id <= 0 {
		return 0, ErrNoCart
	}
	return id, nil
}

// WithCartID returns a new context carrying cartID.
func WithCartID(ctx context.Context, cartID int64) context.Context {
	return context.WithValue(ctx, cartIDKey, cartID)
}
