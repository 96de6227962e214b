package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

// AuthService handles customer and employee sessions.
type AuthService struct {
	api      domain.AuthAPI
	validate *validator.Validator
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(api domain.AuthAPI, validate *validator.Validator, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      api,
		validate: validate,
		logger:   logger,
	}
}

// Login starts a customer session. On success it returns the movie listing;
// on failure the message shown under the form.
func (s *AuthService) Login(ctx context.Context, form domain.LoginForm) (domain.Location, string, error) {
	return s.login(ctx, form, s.api.Login, domain.PageMovies)
}

// EmployeeLogin starts an employee session and leads to the dashboard.
func (s *AuthService) EmployeeLogin(ctx context.Context, form domain.LoginForm) (domain.Location, string, error) {
	return s.login(ctx, form, s.api.EmployeeLogin, domain.PageDashboard)
}

func (s *AuthService) login(
	ctx context.Context,
	form domain.LoginForm,
	send func(context.Context, domain.LoginForm) error,
	next domain.Page,
) (domain.Location, string, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validate.Validate(&form); err != nil {
		return domain.Location{}, "Email and password are required.", err
	}

	if err := send(ctx, form); err != nil {
		s.logger.Warn("login failed", zap.String("email", form.Email), zap.Error(err))
		return domain.Location{}, loginFailureMessage(err), err
	}

	s.logger.Info("login succeeded", zap.String("email", form.Email), zap.String("next", string(next)))

	return domain.Location{Page: next}, "", nil
}

func loginFailureMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Login failed with status: %d", apiErr.Status)
	}
	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Message
	}
	if errors.Is(err, domain.ErrMalformedPayload) {
		return "Received an unexpected response format from the server."
	}
	return "An unexpected error occurred during login."
}

// Logout ends the session and leads to the employee login page.
func (s *AuthService) Logout(ctx context.Context) (domain.Location, string, error) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Error("logout failed", zap.Error(err))
		var srvErr *domain.ServerError
		if errors.As(err, &srvErr) {
			return domain.Location{}, "Logout failed or server response was unexpected.", err
		}
		return domain.Location{}, "An error occurred during logout: " + err.Error(), err
	}
	return domain.Location{Page: domain.PageEmployeeLogin}, "", nil
}
