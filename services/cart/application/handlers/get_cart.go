package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// GetCartHandler handles GET /carts/{id}.
type GetCartHandler struct {
	svc *appsvcs.Services
}

// NewGetCartHandler returns a GetCartHandler backed by the given services.
func NewGetCartHandler(svc *appsvcs.Services) *GetCartHandler {
	return &GetCartHandler{svc: svc}
}

// Execute returns one cart. A cart without lines is reported as missing.
//
//	@Summary	Get cart
//	@Tags		carts
//	@Produce	json
//	@Param		id	path		int	true	"Cart ID"
//	@Success	200	{object}	CartResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/carts/{id} [get]
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id", "cart id")
	if !ok {
		return
	}

	cart, err := h.svc.Cart.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartResponse(cart))
}
