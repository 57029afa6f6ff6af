package handlers

import (
	"context"
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/pkg/logger"
	appsvcs "github.com/ghuser/reactiveshop/services/kitchen/application/services"
	"github.com/ghuser/reactiveshop/services/kitchen/domain/models"
)

// DishEvent is one SSE payload.
type DishEvent struct {
	Description string `json:"description" example:"Sesame chicken"`
	Delivered   bool   `json:"delivered"   example:"false"`
} // @name DishEvent

// DishStreamHandler streams dishes as server-sent events.
type DishStreamHandler struct {
	feed func(ctx context.Context) <-chan models.Dish
	log  logger.Logger
}

// NewServerHandler streams freshly cooked dishes.
func NewServerHandler(k *appsvcs.KitchenService, log logger.Logger) *DishStreamHandler {
	return &DishStreamHandler{feed: k.Dishes, log: log}
}

// NewServedDishesHandler streams delivered dishes.
func NewServedDishesHandler(k *appsvcs.KitchenService, log logger.Logger) *DishStreamHandler {
	return &DishStreamHandler{feed: k.Served, log: log}
}

// Execute streams until the client disconnects.
//
//	@Summary		Dish feed
//	@Description	Server-sent events, one random dish per interval. /served-dishes marks each dish delivered.
//	@Tags			kitchen
//	@Produce		text/event-stream
//	@Success		200	{object}	DishEvent
//	@Router			/server [get]
//	@Router			/served-dishes [get]
func (h *DishStreamHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sse, err := httpx.NewSSEWriter(w)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for d := range h.feed(r.Context()) {
		if err := sse.Send(DishEvent{Description: d.Description, Delivered: d.Delivered}); err != nil {
			h.log.DebugContext(r.Context(), "dish stream closed", "error", err)
			return
		}
	}
}
