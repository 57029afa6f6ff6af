package cartsession

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
)

// newTestStore returns a cookie store; RequireCart only needs sessions.Store.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

type fakeCarts struct {
	mu        sync.Mutex
	next      int64
	existing  map[int64]bool
	created   int
	createErr error
	existsErr error
}

func newFakeCarts(existing ...int64) *fakeCarts {
	f := &fakeCarts{next: 100, existing: map[int64]bool{}}
	for _, id := range existing {
		f.existing[id] = true
	}
	return f
}

func (f *fakeCarts) NewCartID(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.next++
	f.created++
	f.existing[f.next] = true
	return f.next, nil
}

func (f *fakeCarts) CartExists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[id], nil
}

// requestWithCart builds a request carrying a session cookie for cartID.
func requestWithCart(t *testing.T, store sessions.Store, cartID int64) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/carts/current", nil)
	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	session.Values[sessionCartIDKey] = cartID
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/carts/current", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func captureCartID(got *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = CartIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireCart_CreatesCartForNewVisitor(t *testing.T) {
	store := newTestStore()
	carts := newFakeCarts()

	var got int64
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/carts/current", nil)
	RequireCart(store, carts, newTestLogger())(captureCartID(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != 101 || carts.created != 1 {
		t.Fatalf("expected new cart 101, got %d (created %d)", got, carts.created)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected a session cookie")
	}
}

func TestRequireCart_ReusesRememberedCart(t *testing.T) {
	store := newTestStore()
	carts := newFakeCarts(7)

	var got int64
	w := httptest.NewRecorder()
	RequireCart(store, carts, newTestLogger())(captureCartID(&got)).ServeHTTP(w, requestWithCart(t, store, 7))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != 7 {
		t.Fatalf("expected cart 7, got %d", got)
	}
	if carts.created != 0 {
		t.Fatalf("no cart should be created, got %d", carts.created)
	}
}

func TestRequireCart_ReplacesVanishedCart(t *testing.T) {
	store := newTestStore()
	carts := newFakeCarts()

	var got int64
	w := httptest.NewRecorder()
	RequireCart(store, carts, newTestLogger())(captureCartID(&got)).ServeHTTP(w, requestWithCart(t, store, 7))

	if got != 101 {
		t.Fatalf("expected replacement cart 101, got %d", got)
	}
	if carts.created != 1 {
		t.Fatalf("expected one created cart, got %d", carts.created)
	}
}

func TestRequireCart_Failures(t *testing.T) {
	tests := []struct {
		name  string
		carts *fakeCarts
		req   func(t *testing.T, store sessions.Store) *http.Request
	}{
		{"create fails", &fakeCarts{existing: map[int64]bool{}, createErr: errors.New("db down")},
			func(*testing.T, sessions.Store) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/carts/current", nil)
			}},
		{"exists check fails", &fakeCarts{existing: map[int64]bool{}, existsErr: errors.New("db down")},
			func(t *testing.T, store sessions.Store) *http.Request { return requestWithCart(t, store, 7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler should not be called")
			})

			w := httptest.NewRecorder()
			RequireCart(store, tt.carts, newTestLogger())(next).ServeHTTP(w, tt.req(t, store))

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", w.Code)
			}
		})
	}
}

func TestRequireCart_TamperedCookieStartsOver(t *testing.T) {
	store := newTestStore()
	carts := newFakeCarts(7)

	r := httptest.NewRequest(http.MethodGet, "/carts/current", nil)
	r.AddCookie(&http.Cookie{Name: sessionName, Value: "garbage"})

	var got int64
	w := httptest.NewRecorder()
	RequireCart(store, carts, newTestLogger())(captureCartID(&got)).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != 101 {
		t.Fatalf("expected a fresh cart, got %d", got)
	}
}
