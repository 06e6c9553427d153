package ports

import (
	"context"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

// CartService mutates the ephemeral cart of a device.
type CartService interface {
	Get(ctx context.Context, deviceID string) (domain.Cart, error)
	Add(ctx context.Context, deviceID string, productID int) (domain.Cart, error)
	Remove(ctx context.Context, deviceID string, productID int) (domain.Cart, error)
	ClearNotification(ctx context.Context, deviceID string) (domain.Cart, error)
}

// Catalog exposes the menu and the restaurant list.
type Catalog interface {
	Menu() []domain.Product
	Product(id int) (domain.Product, error)
	Restaurants() []domain.Restaurant
}
