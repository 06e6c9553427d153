// Package cart implements the cart aggregator as pure functions over
// domain.Cart. Inputs are never mutated; each call returns a new cart.
package cart

import "github.com/foodexpress/delivery-api/internal/core/domain"

// Add increments the line for p or appends a new line with quantity 1, and
// records p as the last added product.
func Add(c domain.Cart, p domain.Product) domain.Cart {
	lines := make([]domain.CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)

	found := false
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  1,
		})
	}

	return domain.Cart{Lines: lines, LastAdded: p.Name}
}

// Remove deletes the whole line for productID. Removing an absent line
// returns an equal cart.
func Remove(c domain.Cart, productID int) domain.Cart {
	lines := make([]domain.CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID != productID {
			lines = append(lines, l)
		}
	}
	return domain.Cart{Lines: lines, LastAdded: c.LastAdded}
}

// ClearNotification acknowledges the last added product.
func ClearNotification(c domain.Cart) domain.Cart {
	c.LastAdded = ""
	return c
}
