package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/pkg/logger"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// StreamCartsHandler handles GET /carts/stream.
type StreamCartsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewStreamCartsHandler returns a StreamCartsHandler backed by the given services.
func NewStreamCartsHandler(svc *appsvcs.Services, log logger.Logger) *StreamCartsHandler {
	return &StreamCartsHandler{svc: svc, log: log}
}

// Execute sends one server-sent event per cart as soon as it is assembled.
// A storage failure ends the stream with an error event.
//
//	@Summary	Stream carts
//	@Tags		carts
//	@Produce	text/event-stream
//	@Success	200	{object}	CartResponse
//	@Router		/carts/stream [get]
func (h *StreamCartsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sse, err := httpx.NewSSEWriter(w)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for cart, err := range h.svc.Cart.GetAll(r.Context()) {
		if err != nil {
			h.log.ErrorContext(r.Context(), "cart stream failed", "error", err)
			sse.SendError("cart stream failed")
			return
		}
		if err := sse.Send(toCartResponse(cart)); err != nil {
			h.log.DebugContext(r.Context(), "cart stream closed", "error", err)
			return
		}
	}
}
