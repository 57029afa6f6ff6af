package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/cartsession"
	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// CurrentCartHandler serves the visitor's session cart. Routes using it
// must sit behind cartsession.RequireCart.
type CurrentCartHandler struct {
	svc *appsvcs.Services
}

// NewCurrentCartHandler returns a CurrentCartHandler backed by the given services.
func NewCurrentCartHandler(svc *appsvcs.Services) *CurrentCartHandler {
	return &CurrentCartHandler{svc: svc}
}

// Get returns the session cart, possibly without lines.
//
//	@Summary	Get session cart
//	@Tags		carts
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/carts/current [get]
func (h *CurrentCartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartsession.CartIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cart, err := h.svc.Cart.Current(r.Context(), cartID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartResponse(cart))
}

// Add puts one unit of the item into the session cart.
//
//	@Summary	Add item to session cart
//	@Tags		carts
//	@Produce	json
//	@Param		itemId	path		int	true	"Item ID"
//	@Success	200		{object}	CartItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/carts/current/add/{itemId} [post]
func (h *CurrentCartHandler) Add(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartsession.CartIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	itemID, ok := idParam(w, r, "itemId", "item id")
	if !ok {
		return
	}

	line, err := h.svc.Cart.AddToCurrent(r.Context(), cartID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCartItemResponse(line))
}
