package domain

// CartLine is one product-quantity pair. Quantity is always >= 1.
type CartLine struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the ordered list of lines for one device. LastAdded names the most
// recently added product until the client acknowledges it.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	LastAdded string     `json:"last_added,omitempty"`
}

// Total is the sum of unit price times quantity over all lines.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Count is the number of units in the cart, not the number of lines.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID int) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}
