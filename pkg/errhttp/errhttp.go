// Package errhttp turns service errors into JSON error responses.
package errhttp

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
)

var redactInternal atomic.Bool

// RedactInternal controls whether 5xx answers hide the error chain behind the
// status text. cmd/api enables it in production.
func RedactInternal(on bool) {
	redactInternal.Store(on)
}

// statuses is matched in order with errors.Is; the first hit wins.
var statuses = []struct {
	target error
	status int
}{
	{itemdomain.ErrItemNotFound, http.StatusNotFound},
	{cartdomain.ErrCartNotFound, http.StatusNotFound},
	{cartdomain.ErrItemNotFound, http.StatusNotFound},
	{cartdomain.ErrCartItemNotFound, http.StatusNotFound},
	{cartdomain.ErrDuplicateLine, http.StatusConflict},
	{itemdomain.ErrInvalidItemName, http.StatusUnprocessableEntity},
	{itemdomain.ErrInvalidItemPrice, http.StatusUnprocessableEntity},
	{itemdomain.ErrEmptyBatch, http.StatusUnprocessableEntity},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// StatusOf returns the HTTP status for err, 500 when nothing matches.
func StatusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.target) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// WriteError answers with StatusOf(err) and a JSON {"error": ...} body.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, redactInternal.Load()))
}
