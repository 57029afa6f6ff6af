package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/reactiveshop/pkg/httpx"
)

func TestSSEWriter_Frames(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := httpx.NewSSEWriter(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sse.Send(map[string]int{"id": 1}); err != nil {
		t.Fatalf("send: %v", err)
	}
	sse.SendError("boom")

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := "data: {\"id\":1}\n\nevent: error\ndata: {\"error\":\"boom\"}\n\n"
	if got := w.Body.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type noFlush struct{ http.ResponseWriter }

func TestSSEWriter_RequiresFlusher(t *testing.T) {
	if _, err := httpx.NewSSEWriter(noFlush{httptest.NewRecorder()}); err == nil {
		t.Fatal("expected error for non-flushing writer")
	}
}
