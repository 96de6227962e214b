// Package httpserver provides the development catalog server: an in-memory
// implementation of the movie API the storefront talks to.
package httpserver

import (
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/transport/httpserver/handler"
	"movie-storefront/internal/transport/httpserver/middleware"
	"movie-storefront/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	BodyLimit         int
	SessionExpiration time.Duration
	Debug             bool

	// SessionStorage keeps sessions outside the process. Nil keeps them in memory.
	SessionStorage fiber.Storage
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	store *memstore.Store,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "catalog-mock",
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          errorHandler(logger),
		DisableStartupMessage: !cfg.Debug,
	})

	// Probes answer before sessions are created
	app.Use(middleware.NewHealthCheck(func() bool { return store != nil }))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(compress.New())

	expiration := cfg.SessionExpiration
	if expiration <= 0 {
		expiration = 30 * time.Minute
	}
	sessions := handler.NewSessions(expiration, cfg.SessionStorage)
	app.Use(sessions.Handler())

	registerRoutes(app, sessions,
		handler.NewMoviesHandler(store, logger),
		handler.NewCartHandler(store, v, logger),
		handler.NewAuthHandler(store, sessions, v, logger),
		handler.NewDashboardHandler(store, v, logger),
	)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	sessions *handler.Sessions,
	moviesHandler *handler.MoviesHandler,
	cartHandler *handler.CartHandler,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Login and logout
	app.Post("/api/login", authHandler.Login)
	app.Post("/_dashboard/login-action", authHandler.EmployeeLogin)
	app.Get("/logout", authHandler.Logout)

	// Employee dashboard
	employee := sessions.RequireEmployee()
	app.Post("/api/dashboard/add-star", employee, dashboardHandler.AddStar)
	app.Post("/api/dashboard/add-movie", employee, dashboardHandler.AddMovie)
	app.Get("/api/dashboard/metadata", employee, dashboardHandler.Metadata)

	// Catalog
	customer := sessions.RequireCustomer()
	app.Get("/api/movies", customer, moviesHandler.List)
	app.Get("/api/title-initials", customer, moviesHandler.TitleInitials)
	app.Get("/api/genres", customer, moviesHandler.Genres)
	app.Get("/api/movie-suggestion", customer, moviesHandler.Suggest)
	app.Get("/api/movie", customer, moviesHandler.Movie)
	app.Get("/api/star", customer, moviesHandler.Star)
	app.Get("/api/session-data", customer, moviesHandler.SessionData)

	// Cart and checkout
	app.Post("/api/add-to-cart", customer, cartHandler.AddToCart)
	app.Get("/api/shopping-cart", customer, cartHandler.Cart)
	app.Post("/api/shopping-cart", customer, cartHandler.UpdateCart)
	app.Post("/api/place-order", customer, cartHandler.PlaceOrder)
	app.Get("/api/order-confirmation-details", customer, cartHandler.OrderDetails)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server on addr.
func (s *Server) Start(addr string) error {
	s.Logger.Info("starting catalog server", zap.String("addr", addr))

	return s.App.Listen(addr)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.Logger.Info("starting catalog server", zap.String("addr", ln.Addr().String()))

	return s.App.Listener(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down catalog server")

	return s.App.Shutdown()
}
