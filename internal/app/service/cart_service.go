// Package service provides the storefront use cases behind the non-listing screens.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

// CartLine is one rendered cart row.
type CartLine struct {
	MovieID  string
	Title    string
	Quantity int
	Price    float64
	Subtotal float64
}

// CartView is the rendered shopping cart.
type CartView struct {
	Lines   []CartLine
	Total   float64
	Message string // shown instead of Lines
}

// IsEmpty reports whether the cart has no lines.
func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// CartService handles the shopping cart.
type CartService struct {
	api    domain.CartAPI
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(api domain.CartAPI, logger *zap.Logger) *CartService {
	return &CartService{
		api:    api,
		logger: logger,
	}
}

// Add puts one copy of movieID in the cart and returns the message shown to
// the user. The message is returned even on failure.
func (s *CartService) Add(ctx context.Context, movieID string) (string, error) {
	item, err := s.api.AddToCart(ctx, movieID)
	if err != nil {
		s.logger.Error("add to cart failed", zap.String("movie_id", movieID), zap.Error(err))
		return addFailureMessage(err), err
	}
	return fmt.Sprintf("Added '%s' to cart!", item.Name()), nil
}

func addFailureMessage(err error) string {
	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		return "Failed to add item: " + srvErr.Message
	}

	msg := "Error adding item to cart."
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return msg + " " + apiErr.Message
		}
		return fmt.Sprintf("%s Status: %d", msg, apiErr.Status)
	}
	return msg
}

// Load retrieves the cart and computes line subtotals and the total.
func (s *CartService) Load(ctx context.Context) (CartView, error) {
	cart, err := s.api.Cart(ctx)
	if err != nil {
		s.logger.Error("fetching cart failed", zap.Error(err))
		return CartView{Message: "Error loading cart data. Please try again later."}, err
	}
	return renderCart(cart), nil
}

func renderCart(cart *domain.Cart) CartView {
	if len(cart.Items) == 0 {
		return CartView{Message: "Your cart is empty."}
	}

	view := CartView{Lines: make([]CartLine, 0, len(cart.Items)), Total: cart.Total()}
	for _, item := range cart.Items {
		view.Lines = append(view.Lines, CartLine{
			MovieID:  item.MovieID,
			Title:    orNotAvailable(item.Title),
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal(),
		})
	}
	return view
}

// Increase adds one copy of movieID.
func (s *CartService) Increase(ctx context.Context, movieID string) error {
	return s.update(ctx, movieID, domain.CartIncrease)
}

// Decrease removes one copy of movieID. When quantity is 1 or less the line
// would disappear, so it returns domain.ErrConfirmationRequired unless
// confirmed is set, in which case the line is removed.
func (s *CartService) Decrease(ctx context.Context, movieID string, quantity int, confirmed bool) error {
	if quantity > 1 {
		return s.update(ctx, movieID, domain.CartDecrease)
	}
	return s.Remove(ctx, movieID, confirmed)
}

// Remove deletes the line for movieID. It returns domain.ErrConfirmationRequired
// unless confirmed is set.
func (s *CartService) Remove(ctx context.Context, movieID string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.update(ctx, movieID, domain.CartRemove)
}

func (s *CartService) update(ctx context.Context, movieID string, action domain.CartAction) error {
	if err := s.api.UpdateCart(ctx, movieID, action); err != nil {
		s.logger.Error("updating cart failed",
			zap.String("movie_id", movieID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// UpdateFailureMessage is the message shown when a cart update fails.
func UpdateFailureMessage(err error) string {
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	return "Failed to update cart. Please try again."
}

// RemoveConfirmation is the question asked before a line is removed.
const RemoveConfirmation = "Are you sure you want to remove this item?"

func orNotAvailable(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
