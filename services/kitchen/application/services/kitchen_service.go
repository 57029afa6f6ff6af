package services

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/ghuser/reactiveshop/services/kitchen/domain/models"
)

// DefaultDishInterval is used when a kitchen is built with a non-positive interval.
const DefaultDishInterval = 250 * time.Millisecond

// KitchenService produces an endless feed of random dishes.
type KitchenService struct {
	interval time.Duration
	pick     func(n int) int
}

// NewKitchenService returns a kitchen that cooks one dish per interval.
// Non-positive intervals fall back to DefaultDishInterval.
func NewKitchenService(interval time.Duration) *KitchenService {
	if interval <= 0 {
		interval = DefaultDishInterval
	}
	return &KitchenService{interval: interval, pick: rand.IntN}
}

// Dishes emits a random menu dish every interval until ctx is done, then
// closes the channel.
func (k *KitchenService) Dishes(ctx context.Context) <-chan models.Dish {
	ch := make(chan models.Dish)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case ch <- k.randomDish():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Served is Dishes with every dish delivered.
func (k *KitchenService) Served(ctx context.Context) <-chan models.Dish {
	out := make(chan models.Dish)
	in := k.Dishes(ctx)
	go func() {
		defer close(out)
		for d := range in {
			select {
			case out <- models.Deliver(d):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (k *KitchenService) randomDish() models.Dish {
	return models.Menu[k.pick(len(models.Menu))]
}
