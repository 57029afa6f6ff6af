package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// SSEWriter writes server-sent events. Each Send emits one
// "data: <json>\n\n" frame and flushes it.
type SSEWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewSSEWriter sets the event-stream headers, lifts the server write
// deadline for this response and writes the 200 status. It fails when the
// writer chain cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return nil, fmt.Errorf("sse deadline: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("sse flush: %w", err)
	}
	return &SSEWriter{w: w, rc: rc}, nil
}

// Send encodes v as JSON and writes it as one event.
func (s *SSEWriter) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sse encode: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return fmt.Errorf("sse write: %w", err)
	}
	return s.rc.Flush()
}

// SendError writes a terminal "error" event.
func (s *SSEWriter) SendError(msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	_, _ = fmt.Fprintf(s.w, "event: error\ndata: %s\n\n", b)
	_ = s.rc.Flush()
}
