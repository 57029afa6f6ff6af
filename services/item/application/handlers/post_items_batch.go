package handlers

import (
	"net/http"

	"github.com/ghuser/reactiveshop/pkg/errhttp"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/reactiveshop/pkg/validator"
	appsvcs "github.com/ghuser/reactiveshop/services/item/application/services"
)

// BatchCreateItemsRequest is the request body for POST /items/batch.
type BatchCreateItemsRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1,max=500,dive"`
} // @name BatchCreateItemsRequest

// PostItemsBatchHandler handles POST /items/batch requests.
type PostItemsBatchHandler struct {
	svc *appsvcs.Services
}

// NewPostItemsBatchHandler returns a PostItemsBatchHandler backed by the given services.
func NewPostItemsBatchHandler(svc *appsvcs.Services) *PostItemsBatchHandler {
	return &PostItemsBatchHandler{svc: svc}
}

// Execute stores every item in one transaction.
//
//	@Summary		Create items in bulk
//	@Description	Inserts all items atomically and returns them with their ids
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchCreateItemsRequest	true	"Items to create"
//	@Success		201		{array}		ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/batch [post]
func (h *PostItemsBatchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[BatchCreateItemsRequest](w, r)
	if !ok {
		return
	}

	inputs := make([]appsvcs.NewItemInput, len(req.Items))
	for i, it := range req.Items {
		inputs[i] = appsvcs.NewItemInput{Name: it.Name, Price: it.Price}
	}

	items, err := h.svc.Item.CreateBatch(r.Context(), inputs)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponses(items))
}
