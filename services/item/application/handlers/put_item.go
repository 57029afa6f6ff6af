package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/reactiveshop/pkg/validator"
	appsvcs "github.com/ghuser/reactiveshop/services/item/application/services"
)

// UpdateItemRequest is the request body for PUT /items/{id}.
type UpdateItemRequest struct {
	Name  string          `json:"name"  validate:"required,min=1,max=255" example:"Sweet & sour beef"`
	Price decimal.Decimal `json:"price" validate:"price" swaggertype:"string" example:"11.00"`
} // @name UpdateItemRequest

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute replaces an item's name and price.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Item ID"
//	@Param		request	body		UpdateItemRequest	true	"New name and price"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, req.Name, req.Price)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
