package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

func TestCartService_Add(t *testing.T) {
	tests := []struct {
		name    string
		added   *domain.AddedItem
		err     error
		message string
	}{
		{
			name:    "title",
			added:   &domain.AddedItem{ItemID: "tt1", ItemTitle: "Heat"},
			message: "Added 'Heat' to cart!",
		},
		{
			name:    "id only",
			message: "Added 'Movie ID tt1' to cart!",
		},
		{
			name:    "rejected",
			err:     &domain.ServerError{Message: "Out of stock"},
			message: "Failed to add item: Out of stock",
		},
		{
			name:    "http error with message",
			err:     &domain.APIError{Status: 400, Message: "Bad movie id"},
			message: "Error adding item to cart. Bad movie id",
		},
		{
			name:    "http error",
			err:     &domain.APIError{Status: 503},
			message: "Error adding item to cart. Status: 503",
		},
		{
			name:    "network",
			err:     errors.New("connection refused"),
			message: "Error adding item to cart.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCartService(&fakeCatalog{added: tt.added, err: tt.err}, zap.NewNop())

			msg, err := svc.Add(context.Background(), "tt1")

			assert.Equal(t, tt.message, msg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCartService_Load(t *testing.T) {
	api := &fakeCatalog{cart: &domain.Cart{Items: []domain.CartItem{
		{MovieID: "tt1", Title: "Heat", Quantity: 2, Price: 9.5},
		{MovieID: "tt2", Quantity: 1, Price: 3},
	}}}
	svc := NewCartService(api, zap.NewNop())

	view, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.InDelta(t, 19.0, view.Lines[0].Subtotal, 1e-9)
	assert.Equal(t, "N/A", view.Lines[1].Title)
	assert.InDelta(t, 22.0, view.Total, 1e-9)
	assert.Empty(t, view.Message)
}

func TestCartService_LoadEmpty(t *testing.T) {
	svc := NewCartService(&fakeCatalog{cart: &domain.Cart{}}, zap.NewNop())

	view, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, view.IsEmpty())
	assert.Equal(t, "Your cart is empty.", view.Message)
	assert.Zero(t, view.Total)
}

func TestCartService_LoadError(t *testing.T) {
	svc := NewCartService(&fakeCatalog{err: errors.New("boom")}, zap.NewNop())

	view, err := svc.Load(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "Error loading cart data. Please try again later.", view.Message)
}

func TestCartService_Decrease(t *testing.T) {
	ctx := context.Background()
	api := &fakeCatalog{}
	svc := NewCartService(api, zap.NewNop())

	require.NoError(t, svc.Decrease(ctx, "tt1", 3, false))
	assert.ErrorIs(t, svc.Decrease(ctx, "tt1", 1, false), domain.ErrConfirmationRequired)
	require.NoError(t, svc.Decrease(ctx, "tt1", 1, true))
	require.NoError(t, svc.Increase(ctx, "tt1"))

	assert.Equal(t, []domain.CartAction{domain.CartDecrease, domain.CartRemove, domain.CartIncrease}, api.updates)
}

func TestCartService_Remove(t *testing.T) {
	api := &fakeCatalog{}
	svc := NewCartService(api, zap.NewNop())

	assert.ErrorIs(t, svc.Remove(context.Background(), "tt1", false), domain.ErrConfirmationRequired)
	assert.Empty(t, api.updates)

	require.NoError(t, svc.Remove(context.Background(), "tt1", true))
	assert.Equal(t, []domain.CartAction{domain.CartRemove}, api.updates)
}

func TestUpdateFailureMessage(t *testing.T) {
	assert.Equal(t, "Item not in cart", UpdateFailureMessage(&domain.ServerError{Message: "Item not in cart"}))
	assert.Equal(t, "Failed to update cart. Please try again.", UpdateFailureMessage(errors.New("timeout")))
}
