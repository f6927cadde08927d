package handlers

import (
	"net/http"

	"github.com/ghuser/geoitems/pkg/errhttp"
	"github.com/ghuser/geoitems/pkg/httpx"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, production bool) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, production: production}
}

// Execute lists every item in creation order.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		ItemResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NewItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}
