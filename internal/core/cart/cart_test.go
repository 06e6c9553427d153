package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

var (
	pizza  = domain.Product{ID: 1, Name: "Pizza", Price: 10}
	burger = domain.Product{ID: 2, Name: "Burger", Price: 5}
)

func TestAdd_NewProductAppendsLine(t *testing.T) {
	c := Add(domain.Cart{}, pizza)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, domain.CartLine{ProductID: 1, Name: "Pizza", UnitPrice: 10, Quantity: 1}, c.Lines[0])
	assert.Equal(t, "Pizza", c.LastAdded)
}

func TestAdd_SameProductTwiceIncrementsQuantity(t *testing.T) {
	c := Add(Add(domain.Cart{}, pizza), pizza)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 2, c.Count())
	assert.InDelta(t, 20.0, c.Total(), 1e-9)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	before := Add(domain.Cart{}, pizza)
	snapshot := domain.Cart{Lines: append([]domain.CartLine(nil), before.Lines...), LastAdded: before.LastAdded}

	_ = Add(before, pizza)
	_ = Add(before, burger)

	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Fatalf("input cart changed (-want +got):\n%s", diff)
	}
}

func TestRemove_LineAbsentAndTotalsRecomputed(t *testing.T) {
	c := Add(Add(Add(domain.Cart{}, pizza), pizza), burger)
	assert.Equal(t, 3, c.Count())
	assert.InDelta(t, 25.0, c.Total(), 1e-9)

	c = Remove(c, pizza.ID)
	_, ok := c.Line(pizza.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Count())
	assert.InDelta(t, 5.0, c.Total(), 1e-9)
}

func TestRemove_AbsentLineIsNoop(t *testing.T) {
	c := Add(domain.Cart{}, pizza)
	got := Remove(c, 99)
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("unexpected change (-want +got):\n%s", diff)
	}
}

func TestRemove_EmptiesCart(t *testing.T) {
	c := Remove(Add(domain.Cart{}, pizza), pizza.ID)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Count())
	assert.Zero(t, c.Total())
}

func TestClearNotification(t *testing.T) {
	c := ClearNotification(Add(domain.Cart{}, pizza))
	assert.Empty(t, c.LastAdded)
	assert.Len(t, c.Lines, 1)
}

func TestTotalsOverMixedLines(t *testing.T) {
	c := domain.Cart{Lines: []domain.CartLine{
		{ProductID: 1, Name: "Pizza", UnitPrice: 10, Quantity: 2},
		{ProductID: 2, Name: "Burger", UnitPrice: 5, Quantity: 1},
	}}
	assert.InDelta(t, 25.0, c.Total(), 1e-9)
	assert.Equal(t, 3, c.Count())
}
