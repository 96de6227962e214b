package catalog

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"movie-storefront/internal/domain"
)

// Login starts a customer session.
func (c *Client) Login(ctx context.Context, form domain.LoginForm) error {
	return c.login(ctx, "logging in", EndpointLogin, form)
}

// EmployeeLogin starts an employee session.
func (c *Client) EmployeeLogin(ctx context.Context, form domain.LoginForm) error {
	return c.login(ctx, "logging in employee", EndpointEmployeeLogin, form)
}

func (c *Client) login(ctx context.Context, op, path string, form domain.LoginForm) error {
	var resp statusBody
	payload := map[string]string{
		"email":                form.Email,
		"password":             form.Password,
		"g-recaptcha-response": form.RecaptchaResponse,
	}
	if err := c.postForm(ctx, op, path, payload, &resp); err != nil {
		return err
	}
	return resp.err("Login failed. Please check your credentials.")
}

// Logout ends the session. A successful non-JSON answer counts as success.
func (c *Client) Logout(ctx context.Context) error {
	r, err := c.call(ctx, "logging out", func(r *resty.Request) (*resty.Response, error) {
		return r.Get(EndpointLogout)
	})
	if err != nil {
		return err
	}
	if !strings.Contains(r.Header().Get("Content-Type"), "application/json") {
		return nil
	}

	var resp statusBody
	if err := decode(r, &resp); err != nil {
		return err
	}
	return resp.err("Logout failed or server response was unexpected.")
}
