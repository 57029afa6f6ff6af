package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	appsvcs "github.com/ghuser/reactiveshop/services/item/application/services"
	"github.com/ghuser/reactiveshop/services/item/domain/repositories"
)

// SearchItemsHandler handles GET /items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute filters items by name substring and/or exact price.
//
//	@Summary		Search items
//	@Description	Case-insensitive name substring match and exact price match. Omitted filters match everything.
//	@Tags			items
//	@Produce		json
//	@Param			name	query		string	false	"Name fragment"
//	@Param			price	query		string	false	"Exact price"
//	@Success		200		{array}		ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := repositories.SearchCriteria{Name: q.Get("name")}

	if v := q.Get("price"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "price must be a decimal number")
			return
		}
		criteria.Price = p
	}

	items, err := h.svc.Item.Search(r.Context(), criteria)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
