// Package middleware provides HTTP middleware for the development catalog server.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
)

// NewHealthCheck creates a Fiber healthcheck middleware with Kubernetes-style endpoints.
//
// Endpoints:
//   - GET /livez  - Liveness probe (server is running)
//   - GET /readyz - Readiness probe (catalog loaded)
//
// Register it before the session middleware so probes do not create sessions.
func NewHealthCheck(ready func() bool) fiber.Handler {
	return healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/livez",
		LivenessProbe: func(_ *fiber.Ctx) bool {
			return true
		},

		ReadinessEndpoint: "/readyz",
		ReadinessProbe: func(_ *fiber.Ctx) bool {
			return ready != nil && ready()
		},
	})
}
