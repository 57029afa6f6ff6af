package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/services/kitchen/application/handlers"
	appsvcs "github.com/ghuser/reactiveshop/services/kitchen/application/services"
)

// KitchenRoutes registers the dish feeds on r.
func KitchenRoutes(r chi.Router, a *app.Application) {
	k := appsvcs.NewKitchenService(a.Config.KitchenDishInterval)
	r.Get("/server", handlers.NewServerHandler(k, a.Logger).Execute)
	r.Get("/served-dishes", handlers.NewServedDishesHandler(k, a.Logger).Execute)
}
