package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// AddCartItemHandler handles POST /carts/{id}/add/{itemId}.
type AddCartItemHandler struct {
	svc *appsvcs.Services
}

// NewAddCartItemHandler returns an AddCartItemHandler backed by the given services.
func NewAddCartItemHandler(svc *appsvcs.Services) *AddCartItemHandler {
	return &AddCartItemHandler{svc: svc}
}

// Execute adds one unit of the item to the cart and returns the line.
//
//	@Summary		Add item to cart
//	@Description	Increments the item's line, or creates it with quantity 1. The cart must already hold at least one line.
//	@Tags			carts
//	@Produce		json
//	@Param			id		path		int	true	"Cart ID"
//	@Param			itemId	path		int	true	"Item ID"
//	@Success		200		{object}	CartItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/carts/{id}/add/{itemId} [post]
func (h *AddCartItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cartID, ok := idParam(w, r, "id", "cart id")
	if !ok {
		return
	}
	itemID, ok := idParam(w, r, "itemId", "item id")
	if !ok {
		return
	}

	line, err := h.svc.Cart.AddToItem(r.Context(), cartID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartItemResponse(line))
}
