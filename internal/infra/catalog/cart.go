package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

// AddToCart adds one copy of movieID to the session cart.
func (c *Client) AddToCart(ctx context.Context, movieID string) (*domain.AddedItem, error) {
	var resp addToCartResponse
	err := c.postForm(ctx, "adding to cart", EndpointAddToCart, map[string]string{"movieId": movieID}, &resp)
	if err != nil {
		return nil, err
	}
	if err := resp.err("Unknown error"); err != nil {
		return nil, err
	}

	item := &domain.AddedItem{ItemID: string(resp.ItemID), ItemTitle: string(resp.ItemTitle)}
	if item.ItemID == "" {
		item.ItemID = movieID
	}

	c.logger.Info("item added to cart", zap.String("movie_id", item.ItemID))

	return item, nil
}

// Cart retrieves the session cart.
func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	var resp cartResponse
	if err := c.get(ctx, "fetching cart", EndpointShoppingCart, "", &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateCart applies action to the cart line for movieID.
func (c *Client) UpdateCart(ctx context.Context, movieID string, action domain.CartAction) error {
	var resp statusBody
	form := map[string]string{"movie_id": movieID, "action": string(action)}
	if err := c.postForm(ctx, "updating cart", EndpointShoppingCart, form, &resp); err != nil {
		return err
	}
	return resp.err("Failed to update cart.")
}

// PlaceOrder submits the payment form for the current cart.
func (c *Client) PlaceOrder(ctx context.Context, form domain.PaymentForm) error {
	var resp statusBody
	payload := map[string]string{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"cc_number":  form.CCNumber,
		"cc_expiry":  form.CCExpiry,
	}
	if err := c.postForm(ctx, "placing order", EndpointPlaceOrder, payload, &resp); err != nil {
		return err
	}
	if err := resp.err("Payment failed. Please check your details."); err != nil {
		return err
	}

	c.logger.Info("order placed")

	return nil
}

// OrderConfirmation retrieves the details of the order just placed.
func (c *Client) OrderConfirmation(ctx context.Context) (*domain.OrderConfirmation, error) {
	var resp confirmationResponse
	if err := c.get(ctx, "fetching order confirmation", EndpointOrderDetails, "", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("Could not load order details."); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &domain.MalformedPayloadError{Err: errors.New("order data missing from response")}
	}

	order := &domain.OrderConfirmation{}
	for _, id := range resp.Data.SaleIDs {
		order.SaleIDs = append(order.SaleIDs, string(id))
	}
	for _, item := range resp.Data.Items {
		order.Items = append(order.Items, domain.OrderItem{
			Title:    string(item.MovieTitle),
			Quantity: int(item.Quantity),
			Price:    float64(item.Price),
		})
	}
	if resp.Data.TotalPrice != nil {
		total := float64(*resp.Data.TotalPrice)
		order.TotalPrice = &total
	}
	return order, nil
}
