package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/services/item/application/handlers"
	appsvcs "github.com/ghuser/reactiveshop/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router and returns
// the wired services so other contexts can depend on them.
func ItemRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	Mount(r, svcs)
	return svcs
}

// Mount registers item endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
		r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
		r.Post("/batch", handlers.NewPostItemsBatchHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
		r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
	})
}
