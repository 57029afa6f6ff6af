package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
)

// CartItemSummary is the item embedded in a cart line.
type CartItemSummary struct {
	ID    int64           `json:"id"    example:"3"`
	Name  string          `json:"name"  example:"Sesame chicken"`
	Price decimal.Decimal `json:"price" swaggertype:"string" example:"9.50"`
} // @name CartItemSummary

// CartItemResponse is one cart line.
type CartItemResponse struct {
	ID       int64            `json:"id"       example:"12"`
	Quantity int              `json:"quantity" example:"2"`
	CartID   int64            `json:"cart_id"  example:"1"`
	ItemID   int64            `json:"item_id"  example:"3"`
	Item     *CartItemSummary `json:"item,omitempty"`
} // @name CartItemResponse

// CartResponse is a cart with its lines.
type CartResponse struct {
	ID        int64              `json:"id"         example:"1"`
	CartItems []CartItemResponse `json:"cart_items"`
} // @name CartResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"cart not found: 1"`
} // @name CartErrorResponse

func toCartItemResponse(ci *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:       ci.ID,
		Quantity: ci.Quantity,
		CartID:   ci.CartID,
		ItemID:   ci.ItemID,
	}
	if ci.Item != nil {
		resp.Item = &CartItemSummary{ID: ci.Item.ID, Name: ci.Item.Name, Price: ci.Item.Price}
	}
	return resp
}

func toCartResponse(c *models.Cart) CartResponse {
	lines := make([]CartItemResponse, len(c.CartItems))
	for i, ci := range c.CartItems {
		lines[i] = toCartItemResponse(ci)
	}
	return CartResponse{ID: c.ID, CartItems: lines}
}

// idParam parses a positive int64 path parameter, writing 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+label)
		return 0, false
	}
	return id, true
}
