package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// PostCartHandler handles POST /carts.
type PostCartHandler struct {
	svc *appsvcs.Services
}

// NewPostCartHandler returns a PostCartHandler backed by the given services.
func NewPostCartHandler(svc *appsvcs.Services) *PostCartHandler {
	return &PostCartHandler{svc: svc}
}

// Execute creates an empty cart.
//
//	@Summary	Create cart
//	@Tags		carts
//	@Produce	json
//	@Success	201	{object}	CartResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/carts [post]
func (h *PostCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Cart.Create(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toCartResponse(cart))
}
