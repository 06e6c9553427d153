package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foodexpress/delivery-api/internal/api/metrics"
	"github.com/foodexpress/delivery-api/internal/core/cart"
	"github.com/foodexpress/delivery-api/internal/core/domain"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

// Carts is one shard of cart state, keyed by device id.
type Carts map[string]domain.Cart

// CartRunner serializes work per key. Every job for a key sees the same
// Carts shard and no two jobs on a shard run at once. Do returns an error only
// when fn never ran, so a failed add is safe to retry.
type CartRunner interface {
	Do(ctx context.Context, key string, fn func(Carts)) error
}

type CartService struct {
	runner  CartRunner
	catalog ports.Catalog
	log     zerolog.Logger
}

func NewCartService(runner CartRunner, catalog ports.Catalog, log zerolog.Logger) *CartService {
	return &CartService{runner: runner, catalog: catalog, log: log}
}

// apply replaces the device's cart with reduce(cart) and returns the result.
// A nil reduce only reads.
func (s *CartService) apply(ctx context.Context, deviceID string, reduce func(domain.Cart) domain.Cart) (domain.Cart, error) {
	var out domain.Cart
	err := s.runner.Do(ctx, deviceID, func(carts Carts) {
		c := carts[deviceID]
		if reduce != nil {
			c = reduce(c)
			if len(c.Lines) == 0 && c.LastAdded == "" {
				delete(carts, deviceID)
			} else {
				carts[deviceID] = c
			}
		}
		out = c
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart %s: %w: %w", deviceID, domain.ErrUnavailable, err)
	}
	if out.Lines == nil {
		out.Lines = []domain.CartLine{}
	}
	return out, nil
}

func (s *CartService) Get(ctx context.Context, deviceID string) (domain.Cart, error) {
	return s.apply(ctx, deviceID, nil)
}

func (s *CartService) Add(ctx context.Context, deviceID string, productID int) (domain.Cart, error) {
	p, err := s.catalog.Product(productID)
	if err != nil {
		return domain.Cart{}, err
	}
	c, err := s.apply(ctx, deviceID, func(c domain.Cart) domain.Cart { return cart.Add(c, p) })
	if err != nil {
		return c, err
	}
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	s.log.Debug().Str("device_id", deviceID).Int("product_id", productID).Int("count", c.Count()).Msg("cart item added")
	return c, nil
}

// Remove deletes the line for productID; removing an absent line is not an error.
func (s *CartService) Remove(ctx context.Context, deviceID string, productID int) (domain.Cart, error) {
	c, err := s.apply(ctx, deviceID, func(c domain.Cart) domain.Cart { return cart.Remove(c, productID) })
	if err != nil {
		return c, err
	}
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c, nil
}

func (s *CartService) ClearNotification(ctx context.Context, deviceID string) (domain.Cart, error) {
	c, err := s.apply(ctx, deviceID, cart.ClearNotification)
	if err != nil {
		return c, err
	}
	metrics.CartMutationsTotal.WithLabelValues("clear_notification").Inc()
	return c, nil
}
