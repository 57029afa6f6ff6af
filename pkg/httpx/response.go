package httpx

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ErrorResponse is the body of every JSON error answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON answers with v encoded as JSON. Once the status line is written an
// encoding failure can no longer be reported, so it is dropped.
func JSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", contentTypeJSON)
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError answers with {"error": message}.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// SafeError is the message a client may see for err. With redact set, a 5xx
// answer carries only its status text.
func SafeError(err error, status int, redact bool) string {
	if redact && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
