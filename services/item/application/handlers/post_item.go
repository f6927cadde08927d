package handlers

import (
	"net/http"

	"github.com/ghuser/geoitems/pkg/errhttp"
	"github.com/ghuser/geoitems/pkg/httpx"
	pkgvalidator "github.com/ghuser/geoitems/pkg/validator"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, production bool) *PostItemHandler {
	return &PostItemHandler{svc: svc, production: production}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Validates and stores a geotagged item; its direction from the reference point is computed
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	CreateItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, err := pkgvalidator.DecodeJSON[CreateItemRequest](r)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	id, err := h.svc.Item.Create(r.Context(), req.fields())
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateItemResponse{
		ID:      id.String(),
		Message: "Item created successfully!",
	})
}
