package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/services/item/domain/models"
)

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID        int64           `json:"id"         example:"1"`
	Name      string          `json:"name"       example:"Sesame chicken"`
	Price     decimal.Decimal `json:"price"      swaggertype:"string" example:"9.50"`
	CreatedAt time.Time       `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		Price:     item.Price,
		CreatedAt: item.CreatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

// itemIDParam parses the {id} path parameter, writing 400 on failure.
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
