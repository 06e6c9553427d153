package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodexpress/delivery-api/internal/core/domain"
)

// inlineRunner runs every job on the caller's goroutine under one lock.
type inlineRunner struct {
	mu    sync.Mutex
	carts Carts
	err   error
}

func (r *inlineRunner) Do(_ context.Context, _ string, fn func(Carts)) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts == nil {
		r.carts = make(Carts)
	}
	fn(r.carts)
	return nil
}

type stubCatalog struct{}

func (stubCatalog) Menu() []domain.Product { return nil }

func (stubCatalog) Product(id int) (domain.Product, error) {
	switch id {
	case 1:
		return domain.Product{ID: 1, Name: "Pizza", Price: 10}, nil
	case 2:
		return domain.Product{ID: 2, Name: "Burger", Price: 5}, nil
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (stubCatalog) Restaurants() []domain.Restaurant { return nil }

func newTestCartService() (*CartService, *inlineRunner) {
	r := &inlineRunner{}
	return NewCartService(r, stubCatalog{}, zerolog.Nop()), r
}

func TestCartService_AddTwiceYieldsOneLine(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "d1", 1)
	require.NoError(t, err)
	c, err := svc.Add(ctx, "d1", 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, "Pizza", c.LastAdded)
	assert.InDelta(t, 20.0, c.Total(), 1e-9)
}

func TestCartService_UnknownProduct(t *testing.T) {
	svc, r := newTestCartService()

	_, err := svc.Add(context.Background(), "d1", 42)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, r.carts)
}

func TestCartService_RemoveRecomputesTotals(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, _ = svc.Add(ctx, "d1", 1)
	_, _ = svc.Add(ctx, "d1", 2)
	c, err := svc.Remove(ctx, "d1", 1)
	require.NoError(t, err)

	_, ok := c.Line(1)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Count())
	assert.InDelta(t, 5.0, c.Total(), 1e-9)

	got, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCartService_CartsArePerDevice(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, _ = svc.Add(ctx, "d1", 1)
	c, err := svc.Get(ctx, "d2")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.NotNil(t, c.Lines)
}

func TestCartService_ClearNotification(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, _ = svc.Add(ctx, "d1", 2)
	c, err := svc.ClearNotification(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, c.LastAdded)
	assert.Len(t, c.Lines, 1)
}

func TestCartService_EmptyCartsAreDropped(t *testing.T) {
	svc, r := newTestCartService()
	ctx := context.Background()

	_, _ = svc.Add(ctx, "d1", 1)
	_, _ = svc.ClearNotification(ctx, "d1")
	_, _ = svc.Remove(ctx, "d1", 1)
	assert.NotContains(t, r.carts, "d1")
}

func TestCartService_RunnerError(t *testing.T) {
	svc, r := newTestCartService()
	r.err = errors.New("stopped")

	_, err := svc.Get(context.Background(), "d1")
	require.Error(t, err)
	assert.ErrorIs(t, err, r.err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
