package handler

import (
	"errors"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/transport/httpserver/dto"
	"movie-storefront/internal/validator"
)

// CartHandler serves the shopping cart and checkout endpoints.
type CartHandler struct {
	store     *memstore.Store
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *memstore.Store, v *validator.Validator, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:     store,
		validator: v,
		logger:    logger,
	}
}

// AddToCart handles POST /api/add-to-cart
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body."))
	}
	req.MovieID = strings.TrimSpace(req.MovieID)
	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Movie ID is required."))
	}

	movie, _, err := h.store.Movie(req.MovieID)
	if errors.Is(err, memstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Movie not found with ID: " + req.MovieID))
	}
	if err != nil {
		return err
	}

	visitOf(c).add(movie.ID, movie.Title, movie.Price)

	return c.JSON(dto.AddToCartResponse{
		StatusResponse: dto.Success("Added to cart"),
		ItemID:         movie.ID,
		ItemTitle:      movie.Title,
	})
}

// Cart handles GET /api/shopping-cart
func (h *CartHandler) Cart(c *fiber.Ctx) error {
	lines := visitOf(c).lines()

	resp := dto.CartResponse{CartItems: make([]dto.CartItem, 0, len(lines))}
	for _, l := range lines {
		resp.CartItems = append(resp.CartItems, dto.CartItem{
			MovieID:    l.MovieID,
			MovieTitle: l.Title,
			Quantity:   l.Quantity,
			Price:      l.Price,
		})
	}
	resp.TotalPrice = total(lines)

	return c.JSON(resp)
}

// UpdateCart handles POST /api/shopping-cart
func (h *CartHandler) UpdateCart(c *fiber.Ctx) error {
	var req dto.CartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body."))
	}

	if err := h.validator.Validate(&req); err != nil {
		if ve, ok := validator.AsValidationErrors(err); ok && ve.HasTag("oneof") {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid action specified."))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Missing parameters or item not found in cart."))
	}

	if !visitOf(c).update(req.MovieID, req.Action) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Missing parameters or item not found in cart."))
	}

	return c.JSON(dto.Success("Cart updated"))
}

// PlaceOrder handles POST /api/place-order
func (h *CartHandler) PlaceOrder(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body."))
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.CCNumber = strings.TrimSpace(req.CCNumber)
	req.CCExpiry = strings.TrimSpace(req.CCExpiry)

	visit := visitOf(c)
	lines := visit.lines()
	if len(lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Shopping cart is empty."))
	}

	if err := h.validator.Validate(&req); err != nil {
		if ve, ok := validator.AsValidationErrors(err); ok && ve.HasTag("datetime") && !ve.HasTag("required") {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid expiration date format. Use YYYY-MM-DD."))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Missing payment information."))
	}

	if !h.store.CardMatches(req.FirstName, req.LastName, req.CCNumber, req.CCExpiry) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid credit card information or card expired."))
	}

	customerID, _ := sessionOf(c).Get(keyCustomerID).(int)

	quantities := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	details := &dto.OrderDetails{Items: make([]dto.OrderItem, 0, len(lines))}
	for _, l := range lines {
		quantities[l.MovieID] = l.Quantity
		order = append(order, l.MovieID)
		details.Items = append(details.Items, dto.OrderItem{
			MovieTitle: l.Title,
			Quantity:   l.Quantity,
			Price:      l.Price,
		})
	}
	details.SaleIDs = h.store.RecordSale(customerID, quantities, order)
	details.TotalPrice = total(lines)

	visit.checkout(details)

	h.logger.Info("order placed",
		zap.Int("customer_id", customerID),
		zap.Ints("sale_ids", details.SaleIDs),
		zap.Float64("total", details.TotalPrice),
	)

	return c.JSON(dto.Success("Order placed successfully!"))
}

// OrderDetails handles GET /api/order-confirmation-details
func (h *CartHandler) OrderDetails(c *fiber.Ctx) error {
	details := visitOf(c).order()
	if details == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.OrderDetailsResponse{
			StatusResponse: dto.Fail("No order details found in session."),
		})
	}
	return c.JSON(dto.OrderDetailsResponse{
		StatusResponse: dto.Success(""),
		Data:           details,
	})
}

func total(lines []CartLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	return math.Round(sum*100) / 100
}
