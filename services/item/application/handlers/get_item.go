package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/geoitems/pkg/errhttp"
	"github.com/ghuser/geoitems/pkg/httpx"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services, production bool) *GetItemHandler {
	return &GetItemHandler{svc: svc, production: production}
}

// Execute returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Item ID (24 hex characters)"
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Item.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusOK, NewItemResponse(item))
}
