package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/geoitems/pkg/app"
	"github.com/ghuser/geoitems/pkg/auth"
	"github.com/ghuser/geoitems/services/item/application/handlers"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router. Every
// route requires a bearer token.
func ItemRoutes(r chi.Router, a *app.Application) {
	RegisterItemRoutes(r, appsvcs.New(a), a)
}

// RegisterItemRoutes mounts the item endpoints backed by svcs.
func RegisterItemRoutes(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	prod := a.IsProduction()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(a.Logger))
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs, prod).Execute)
			r.Get("/", handlers.NewListItemsHandler(svcs, prod).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs, prod).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs, prod).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs, prod).Execute)
		})
	})
}
