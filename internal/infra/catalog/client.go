// Package catalog implements domain.Catalog over the movie API using resty and a circuit breaker.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

// maxBodyInError bounds the raw body kept in MalformedPayloadError.
const maxBodyInError = 512

// ClientConfig holds configuration for the catalog client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// NewRestyClient creates a Resty client that keeps session cookies and retries reads.
func NewRestyClient(cfg ClientConfig) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Cart and order writes are not idempotent
			if r != nil && r.Request != nil && r.Request.Method != http.MethodGet {
				return false
			}
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})
}

// NewCircuitBreaker creates a circuit breaker that only counts transport failures and 5xx.
func NewCircuitBreaker[T any](name string, cfg CBConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}

// isBreakerSuccess treats answers the server chose to give (4xx, session and body errors) as healthy.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return false
}

// Client implements domain.Catalog against one API base URL.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

var _ domain.Catalog = (*Client)(nil)

// New creates a new catalog client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		client: NewRestyClient(cfg),
		cb:     NewCircuitBreaker[*resty.Response]("catalog", cfg.CB, logger),
		logger: logger,
	}
}

// call sends one request through the circuit breaker and turns HTTP failures into domain errors.
// Transport and breaker errors are wrapped with op; classified errors are returned as is.
func (c *Client) call(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := send(c.client.R().SetContext(ctx))
		if err != nil {
			return nil, err
		}
		if err := classify(r); err != nil {
			return nil, err
		}

		return r, nil
	})
	if err == nil {
		return resp, nil
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if !errors.Is(err, domain.ErrNotLoggedIn) {
			c.logger.Warn("catalog request rejected",
				zap.String("op", op),
				zap.Int("status", apiErr.Status),
				zap.String("message", apiErr.Message),
			)
		}
		return nil, err
	}

	c.logger.Warn("catalog request failed",
		zap.String("op", op),
		zap.Error(err),
		zap.String("state", c.cb.State().String()),
	)

	return nil, fmt.Errorf("%s: %w", op, err)
}

// get issues a GET with an optional raw query string and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, op, path, rawQuery string, out interface{}) error {
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		if rawQuery != "" {
			r.SetQueryString(rawQuery)
		}
		return r.Get(path)
	})
	if err != nil {
		return err
	}

	return decode(resp, out)
}

// postForm issues a form-encoded POST and decodes the JSON body into out.
func (c *Client) postForm(ctx context.Context, op, path string, form map[string]string, out interface{}) error {
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetFormData(form).Post(path)
	})
	if err != nil {
		return err
	}

	return decode(resp, out)
}

// postJSON issues a JSON POST and decodes the JSON body into out.
func (c *Client) postJSON(ctx context.Context, op, path string, body, out interface{}) error {
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetHeader("Content-Type", "application/json").SetBody(body).Post(path)
	})
	if err != nil {
		return err
	}

	return decode(resp, out)
}

// classify maps non-2xx responses to *domain.APIError carrying the server's message.
func classify(r *resty.Response) error {
	if !r.IsError() {
		return nil
	}

	var body errorBody
	_ = json.Unmarshal(r.Body(), &body)

	return &domain.APIError{Status: r.StatusCode(), Message: body.text()}
}

func decode(r *resty.Response, out interface{}) error {
	if err := json.Unmarshal(r.Body(), out); err != nil {
		raw := string(r.Body())
		if len(raw) > maxBodyInError {
			raw = raw[:maxBodyInError]
		}
		return &domain.MalformedPayloadError{Body: raw, Err: err}
	}
	return nil
}
