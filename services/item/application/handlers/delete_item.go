package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/geoitems/pkg/errhttp"
	"github.com/ghuser/geoitems/pkg/httpx"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, production bool) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, production: production}
}

// Execute deletes an item.
//
//	@Summary	Delete item
//	@Tags		items
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Item ID (24 hex characters)"
//	@Success	200	{object}	MessageResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Item with ID %s has been successfully deleted.", id),
	})
}
