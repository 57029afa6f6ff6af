package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// ListCartsHandler handles GET /carts.
type ListCartsHandler struct {
	svc *appsvcs.Services
}

// NewListCartsHandler returns a ListCartsHandler backed by the given services.
func NewListCartsHandler(svc *appsvcs.Services) *ListCartsHandler {
	return &ListCartsHandler{svc: svc}
}

// Execute returns every cart that has lines.
//
//	@Summary	List carts
//	@Tags		carts
//	@Produce	json
//	@Success	200	{array}		CartResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/carts [get]
func (h *ListCartsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	out := []CartResponse{}
	for cart, err := range h.svc.Cart.GetAll(r.Context()) {
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		out = append(out, toCartResponse(cart))
	}
	httpx.JSON(w, http.StatusOK, out)
}
