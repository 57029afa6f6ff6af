package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/pkg/cartsession"
	"github.com/ghuser/reactiveshop/pkg/httpx"
	"github.com/ghuser/reactiveshop/pkg/logger"
	"github.com/ghuser/reactiveshop/services/cart/application/handlers"
	appsvcs "github.com/ghuser/reactiveshop/services/cart/application/services"
)

// CartRoutes registers cart endpoints on r. items resolves catalog items
// for add-to-cart.
func CartRoutes(r chi.Router, a *app.Application, items appsvcs.ItemLookup) *appsvcs.Services {
	svcs := appsvcs.New(a, items)
	Mount(r, svcs, a.SessionStore, a.Logger)
	return svcs
}

// Mount registers cart endpoints backed by svcs. The stream route is left
// without a request timeout.
func Mount(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger) {
	r.Route("/carts", func(r chi.Router) {
		r.Get("/stream", handlers.NewStreamCartsHandler(svcs, log).Execute)

		r.Group(func(r chi.Router) {
			r.Use(httpx.Timeout())

			r.Get("/", handlers.NewListCartsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostCartHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetCartHandler(svcs).Execute)
			r.Post("/{id}/add/{itemId}", handlers.NewAddCartItemHandler(svcs).Execute)

			current := handlers.NewCurrentCartHandler(svcs)
			r.With(cartsession.RequireCart(store, svcs.Cart, log)).Route("/current", func(r chi.Router) {
				r.Get("/", current.Get)
				r.Post("/add/{itemId}", current.Add)
			})
		})
	})
}
