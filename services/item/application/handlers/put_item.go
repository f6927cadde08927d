package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/geoitems/pkg/errhttp"
	"github.com/ghuser/geoitems/pkg/httpx"
	pkgvalidator "github.com/ghuser/geoitems/pkg/validator"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services, production bool) *PutItemHandler {
	return &PutItemHandler{svc: svc, production: production}
}

// Execute updates the mutable fields of an item.
//
//	@Summary		Update item
//	@Description	Applies name, startDate, title and users; postcode and coordinates cannot change and other keys are ignored
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Item ID (24 hex characters)"
//	@Param			request	body		UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := pkgvalidator.DecodeJSON[UpdateItemRequest](r)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	if err := h.svc.Item.Update(r.Context(), id, req.patch()); err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	httpx.JSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Item with ID %s has been successfully updated.", id),
	})
}
