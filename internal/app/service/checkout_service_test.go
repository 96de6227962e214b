package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

func validPayment() domain.PaymentForm {
	return domain.PaymentForm{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		CCNumber:  "4111111111111111",
		CCExpiry:  "2030-01-31",
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	api := &fakeCatalog{}
	svc := NewCheckoutService(api, validator.New(), zap.NewNop())

	msg, err := svc.PlaceOrder(context.Background(), validPayment())
	require.NoError(t, err)
	assert.Empty(t, msg)

	require.Len(t, api.placed, 1)
	assert.Equal(t, "Ada", api.placed[0].FirstName)
}

func TestCheckoutService_PlaceOrderValidation(t *testing.T) {
	api := &fakeCatalog{}
	svc := NewCheckoutService(api, validator.New(), zap.NewNop())

	form := validPayment()
	form.LastName = "   "
	msg, err := svc.PlaceOrder(context.Background(), form)
	assert.Error(t, err)
	assert.Equal(t, "Please fill out all payment fields.", msg)

	form = validPayment()
	form.CCExpiry = "01/30"
	msg, err = svc.PlaceOrder(context.Background(), form)
	assert.Error(t, err)
	assert.Equal(t, "cc_expiry must use the format YYYY-MM-DD", msg)

	assert.Empty(t, api.placed)
}

func TestCheckoutService_PlaceOrderRejected(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"fail status", &domain.ServerError{Message: "Invalid credit card information."}, "Invalid credit card information."},
		{"http error", &domain.APIError{Status: 500, Message: "Internal error"}, "Internal error"},
		{"network", errors.New("reset"), "An error occurred while processing your payment. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCheckoutService(&fakeCatalog{err: tt.err}, validator.New(), zap.NewNop())

			msg, err := svc.PlaceOrder(context.Background(), validPayment())

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestCheckoutService_Confirmation(t *testing.T) {
	total := 21.5
	api := &fakeCatalog{order: &domain.OrderConfirmation{
		SaleIDs:    []string{"101", "102"},
		Items:      []domain.OrderItem{{Title: "Heat", Quantity: 2, Price: 10.75}},
		TotalPrice: &total,
	}}
	svc := NewCheckoutService(api, validator.New(), zap.NewNop())

	view, err := svc.Confirmation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "101, 102", view.SaleIDs)
	assert.Equal(t, "21.50", view.Total)
	require.Len(t, view.Lines, 1)
	assert.InDelta(t, 21.5, view.Lines[0].Subtotal, 1e-9)
	assert.Empty(t, view.Message)
}

func TestCheckoutService_ConfirmationEmpty(t *testing.T) {
	svc := NewCheckoutService(&fakeCatalog{order: &domain.OrderConfirmation{}}, validator.New(), zap.NewNop())

	view, err := svc.Confirmation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "N/A", view.SaleIDs)
	assert.Equal(t, "N/A", view.Total)
	assert.Equal(t, "No items found in this order.", view.Message)
}

func TestCheckoutService_ConfirmationError(t *testing.T) {
	svc := NewCheckoutService(&fakeCatalog{err: errors.New("boom")}, validator.New(), zap.NewNop())

	view, err := svc.Confirmation(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "Error loading details.", view.SaleIDs)
	assert.Equal(t, "Error", view.Total)
}

func TestCheckoutService_Total(t *testing.T) {
	svc := NewCheckoutService(&fakeCatalog{cart: &domain.Cart{TotalPrice: 42}}, validator.New(), zap.NewNop())

	total, err := svc.Total(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 42.0, total, 1e-9)
}
