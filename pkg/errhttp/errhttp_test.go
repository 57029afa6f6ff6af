package errhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	itemdomain "github.com/ghuser/reactiveshop/services/item/domain"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown item", fmt.Errorf("get item 4: %w", itemdomain.ErrItemNotFound), http.StatusNotFound},
		{"unknown cart", fmt.Errorf("%w: 12", cartdomain.ErrCartNotFound), http.StatusNotFound},
		{"cart add of unknown item", fmt.Errorf("%w: 7", cartdomain.ErrItemNotFound), http.StatusNotFound},
		{"missing cart line", cartdomain.ErrCartItemNotFound, http.StatusNotFound},
		{"line raced by another insert", cartdomain.ErrDuplicateLine, http.StatusConflict},
		{"bad name", fmt.Errorf("%w: blank", itemdomain.ErrInvalidItemName), http.StatusUnprocessableEntity},
		{"bad price", itemdomain.ErrInvalidItemPrice, http.StatusUnprocessableEntity},
		{"empty batch", itemdomain.ErrEmptyBatch, http.StatusUnprocessableEntity},
		{"line lock wait expired", fmt.Errorf("wait for cart 1 line 2: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"database down", errors.New("dial tcp 10.0.0.7:5432: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func writeError(t *testing.T, err error) (*httptest.ResponseRecorder, httpx.ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	WriteError(w, err)
	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteError_JSONBody(t *testing.T) {
	w, body := writeError(t, fmt.Errorf("%w: 12", cartdomain.ErrCartNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "cart not found: 12", body.Error)
}

func TestWriteError_RedactsInternalErrors(t *testing.T) {
	RedactInternal(true)
	t.Cleanup(func() { RedactInternal(false) })

	w, body := writeError(t, fmt.Errorf("add item 3 to cart 12: %w", errors.New("dial tcp 10.0.0.7:5432: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", body.Error)

	_, body = writeError(t, fmt.Errorf("%w: 12", cartdomain.ErrCartNotFound))
	assert.Equal(t, "cart not found: 12", body.Error, "4xx messages stay visible")
}

func TestWriteError_ShowsInternalErrorsOutsideProduction(t *testing.T) {
	_, body := writeError(t, errors.New("redis: connection pool timeout"))
	assert.Equal(t, "redis: connection pool timeout", body.Error)
}
