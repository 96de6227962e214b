package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/transport/httpserver/dto"
	"movie-storefront/internal/validator"
)

// AuthHandler serves the customer and employee login endpoints.
type AuthHandler struct {
	store     *memstore.Store
	sessions  *Sessions
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *memstore.Store, sessions *Sessions, v *validator.Validator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:     store,
		sessions:  sessions,
		validator: v,
		logger:    logger,
	}
}

// Login handles POST /api/login
// Failures are reported in the status envelope with 200, like the catalog API.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, ok := h.bind(c)
	if !ok {
		return c.JSON(dto.Fail("Email and password are required."))
	}

	customer, err := h.store.AuthenticateCustomer(req.Email, req.Password)
	switch {
	case errors.Is(err, memstore.ErrUnknownEmail):
		return c.JSON(dto.Fail("Email not found."))
	case errors.Is(err, memstore.ErrWrongPassword):
		return c.JSON(dto.Fail("Incorrect password."))
	case err != nil:
		return err
	}

	sess := sessionOf(c)
	sess.Set(keyCustomerEmail, customer.Email)
	sess.Set(keyCustomerID, customer.ID)

	h.logger.Info("customer logged in", zap.Int("customer_id", customer.ID))

	return c.JSON(dto.Success("Login successful"))
}

// EmployeeLogin handles POST /_dashboard/login-action
func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	req, ok := h.bind(c)
	if !ok {
		return c.JSON(dto.Fail("Email and password are required."))
	}

	employee, err := h.store.AuthenticateEmployee(req.Email, req.Password)
	if errors.Is(err, memstore.ErrBadCredentials) {
		return c.JSON(dto.Fail("Invalid email or password."))
	}
	if err != nil {
		return err
	}

	sessionOf(c).Set(keyEmployeeEmail, employee.Email)

	h.logger.Info("employee logged in", zap.String("email", employee.Email))

	return c.JSON(dto.Success("Login successful"))
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.End(c); err != nil {
		return err
	}
	return c.JSON(dto.Success("Logged out"))
}

func (h *AuthHandler) bind(c *fiber.Ctx) (dto.LoginRequest, bool) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, h.validator.Validate(&req) == nil
}
