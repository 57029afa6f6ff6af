package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/reactiveshop/pkg/config"
	"github.com/ghuser/reactiveshop/pkg/logger"
	appsvcs "github.com/ghuser/reactiveshop/services/kitchen/application/services"
)

func streamFor(t *testing.T, h *DishStreamHandler, d time.Duration) []DishEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	r := httptest.NewRequest(http.MethodGet, "/server", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.Execute(w, r)

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var events []DishEvent
	for _, frame := range strings.Split(w.Body.String(), "\n\n") {
		payload, ok := strings.CutPrefix(frame, "data: ")
		if !ok {
			continue
		}
		var e DishEvent
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			t.Fatalf("bad frame %q: %v", frame, err)
		}
		events = append(events, e)
	}
	return events
}

func TestServerHandler_StreamsUndeliveredDishes(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	k := appsvcs.NewKitchenService(2 * time.Millisecond)

	events := streamFor(t, NewServerHandler(k, log), 50*time.Millisecond)
	if len(events) == 0 {
		t.Fatal("expected at least one dish")
	}
	for _, e := range events {
		if e.Delivered || e.Description == "" {
			t.Fatalf("unexpected dish %+v", e)
		}
	}
}

func TestServedDishesHandler_MarksDelivered(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	k := appsvcs.NewKitchenService(2 * time.Millisecond)

	events := streamFor(t, NewServedDishesHandler(k, log), 50*time.Millisecond)
	if len(events) == 0 {
		t.Fatal("expected at least one dish")
	}
	for _, e := range events {
		if !e.Delivered {
			t.Fatalf("dish %q not delivered", e.Description)
		}
	}
}
