package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

// OrderLine is one rendered confirmation row.
type OrderLine struct {
	Title    string
	Quantity int
	Price    float64
	Subtotal float64
}

// ConfirmationView is the rendered order confirmation.
type ConfirmationView struct {
	SaleIDs string
	Lines   []OrderLine
	Message string // shown instead of Lines
	Total   string
}

// CheckoutService handles payment and order confirmation.
type CheckoutService struct {
	api      domain.CartAPI
	validate *validator.Validator
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(api domain.CartAPI, validate *validator.Validator, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		api:      api,
		validate: validate,
		logger:   logger,
	}
}

// Total returns the server-computed cart total shown on the payment page.
func (s *CheckoutService) Total(ctx context.Context) (float64, error) {
	cart, err := s.api.Cart(ctx)
	if err != nil {
		s.logger.Error("fetching cart total failed", zap.Error(err))
		return 0, err
	}
	return cart.TotalPrice, nil
}

// PlaceOrder validates form and submits it. On success the caller replaces the
// payment entry with the confirmation page. On failure the returned message is
// shown under the form.
func (s *CheckoutService) PlaceOrder(ctx context.Context, form domain.PaymentForm) (string, error) {
	form = domain.PaymentForm{
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		CCNumber:  strings.TrimSpace(form.CCNumber),
		CCExpiry:  strings.TrimSpace(form.CCExpiry),
	}

	if err := s.validate.Validate(&form); err != nil {
		if ve, ok := validator.AsValidationErrors(err); ok && ve.HasTag("required") {
			return "Please fill out all payment fields.", err
		}
		return err.Error(), err
	}

	if err := s.api.PlaceOrder(ctx, form); err != nil {
		s.logger.Error("payment submission failed", zap.Error(err))
		if msg := domain.ServerMessage(err); msg != "" {
			return msg, err
		}
		return "An error occurred while processing your payment. Please try again.", err
	}
	return "", nil
}

// Confirmation retrieves and renders the order just placed.
func (s *CheckoutService) Confirmation(ctx context.Context) (ConfirmationView, error) {
	order, err := s.api.OrderConfirmation(ctx)
	if err != nil {
		s.logger.Error("fetching order confirmation failed", zap.Error(err))
		return ConfirmationView{
			SaleIDs: "Error loading details.",
			Message: "Error loading order items.",
			Total:   "Error",
		}, err
	}

	view := ConfirmationView{SaleIDs: "N/A", Total: "N/A"}
	if len(order.SaleIDs) > 0 {
		view.SaleIDs = strings.Join(order.SaleIDs, ", ")
	}
	for _, item := range order.Items {
		view.Lines = append(view.Lines, OrderLine{
			Title:    orNotAvailable(item.Title),
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		})
	}
	if len(view.Lines) == 0 {
		view.Message = "No items found in this order."
	}
	if order.TotalPrice != nil {
		view.Total = formatPrice(*order.TotalPrice)
	}
	return view, nil
}
