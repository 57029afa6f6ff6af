package services

import (
	"github.com/ghuser/reactiveshop/pkg/app"
	"github.com/ghuser/reactiveshop/services/cart/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the cart context.
type Services struct {
	Cart *CartService
}

// New wires cart services. items resolves catalog items for add-to-cart.
func New(a *app.Application, items ItemLookup) *Services {
	repo := postgres.NewCartRepository(a.Db)
	var bus EventPublisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	return &Services{
		Cart: NewCartService(repo, NewCatalogFinder(items), bus, a.Logger),
	}
}
