package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/reactiveshop/pkg/logger"
	cartdomain "github.com/ghuser/reactiveshop/services/cart/domain"
	domainevents "github.com/ghuser/reactiveshop/services/cart/domain/events"
	"github.com/ghuser/reactiveshop/services/cart/domain/models"
	"github.com/ghuser/reactiveshop/services/cart/domain/repositories"
)

// EventPublisher publishes messages to a topic. *events.Bus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// CartService orchestrates cart reads and add-to-cart.
type CartService struct {
	repo  repositories.CartRepository
	items repositories.ItemFinder
	bus   EventPublisher
	log   logger.Logger
}

// NewCartService returns a CartService. A nil bus disables event publishing.
func NewCartService(repo repositories.CartRepository, items repositories.ItemFinder, bus EventPublisher, log logger.Logger) *CartService {
	return &CartService{repo: repo, items: items, bus: bus, log: log}
}

// GetAll yields every cart that has at least one line.
func (s *CartService) GetAll(ctx context.Context) iter.Seq2[*models.Cart, error] {
	return s.repo.GetAll(ctx)
}

// GetByID returns the cart, or ErrCartNotFound when the aggregate load
// yields nothing (including a cart without lines).
func (s *CartService) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	for cart, err := range s.repo.GetByID(ctx, cartID) {
		if err != nil {
			return nil, fmt.Errorf("get cart %d: %w", cartID, err)
		}
		return cart, nil
	}
	return nil, fmt.Errorf("%w: %d", cartdomain.ErrCartNotFound, cartID)
}

// Create stores a new empty cart.
func (s *CartService) Create(ctx context.Context) (*models.Cart, error) {
	cart, err := s.repo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// AddToItem resolves itemID and adds one unit of it to the cart. A missing
// item fails with ErrItemNotFound before anything is written.
func (s *CartService) AddToItem(ctx context.Context, cartID, itemID int64) (*models.CartItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line, err := s.repo.AddItemToCart(ctx, cartID, item)
	if err != nil {
		return nil, err
	}
	s.publishItemAdded(ctx, line)
	return line, nil
}

// Current returns the cart the caller is known to own. Unlike GetByID, a
// cart without lines is returned empty.
func (s *CartService) Current(ctx context.Context, cartID int64) (*models.Cart, error) {
	cart, err := s.GetByID(ctx, cartID)
	if !errors.Is(err, cartdomain.ErrCartNotFound) {
		return cart, err
	}
	ok, existsErr := s.repo.Exists(ctx, cartID)
	if existsErr != nil {
		return nil, existsErr
	}
	if !ok {
		return nil, err
	}
	return &models.Cart{ID: cartID, CartItems: []*models.CartItem{}}, nil
}

// AddToCurrent is AddToItem for a cart the caller is known to own: a cart
// without lines receives its first line instead of failing.
func (s *CartService) AddToCurrent(ctx context.Context, cartID, itemID int64) (*models.CartItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line, err := s.repo.AddItemToCart(ctx, cartID, item)
	if errors.Is(err, cartdomain.ErrCartNotFound) {
		ok, existsErr := s.repo.Exists(ctx, cartID)
		if existsErr != nil {
			return nil, existsErr
		}
		if ok {
			line, err = s.repo.AddFirstItem(ctx, cartID, item)
		}
	}
	if err != nil {
		return nil, err
	}
	s.publishItemAdded(ctx, line)
	return line, nil
}

// NewCartID creates a cart and returns its id.
func (s *CartService) NewCartID(ctx context.Context) (int64, error) {
	cart, err := s.Create(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ID, nil
}

// CartExists reports whether the cart row exists.
func (s *CartService) CartExists(ctx context.Context, cartID int64) (bool, error) {
	return s.repo.Exists(ctx, cartID)
}

// publishItemAdded runs after the line is committed, so a failure is only logged.
func (s *CartService) publishItemAdded(ctx context.Context, line *models.CartItem) {
	if s.bus == nil {
		return
	}
	event := domainevents.CartItemAddedEvent{
		EventID:    uuid.New(),
		Version:    1,
		CartID:     line.CartID,
		CartItemID: line.ID,
		ItemID:     line.ItemID,
		Quantity:   line.Quantity,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal cart event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, domainevents.TopicCartItemAdded, msg); err != nil {
		s.log.WarnContext(ctx, "publish cart item added failed",
			"cart_id", line.CartID, "item_id", line.ItemID, "error", err)
	}
}
