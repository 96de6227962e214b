package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/transport/httpserver/dto"
	"movie-storefront/internal/validator"
)

// newMoviePrice is the price given to movies added from the dashboard.
const newMoviePrice = 9.99

// DashboardHandler serves the employee dashboard endpoints.
type DashboardHandler struct {
	store     *memstore.Store
	validator *validator.Validator
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store *memstore.Store, v *validator.Validator, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:     store,
		validator: v,
		logger:    logger,
	}
}

// AddStar handles POST /api/dashboard/add-star
func (h *DashboardHandler) AddStar(c *fiber.Ctx) error {
	var req dto.AddStarRequest
	if err := c.BodyParser(&req); err != nil {
		return dashboardFail(c, fiber.StatusBadRequest, "Error parsing request: Invalid JSON format.")
	}
	req.StarName = strings.TrimSpace(req.StarName)

	if err := h.validator.Validate(&req); err != nil {
		if ve, ok := validator.AsValidationErrors(err); ok && ve.HasTag("required") {
			return dashboardFail(c, fiber.StatusBadRequest, "Star name is required.")
		}
		return dashboardFail(c, fiber.StatusBadRequest, "Birth year must be a valid year.")
	}

	id, err := h.store.AddStar(req.StarName, req.BirthYear)
	if errors.Is(err, memstore.ErrConflict) {
		return dashboardFail(c, fiber.StatusConflict, "Star with this name already exists.")
	}
	if err != nil {
		return err
	}

	h.logger.Info("star added", zap.String("star_id", id), zap.String("name", req.StarName))

	return c.JSON(dto.DashboardResponse{
		Success: true,
		Message: fmt.Sprintf("Star '%s' added successfully with ID %s.", req.StarName, id),
	})
}

// AddMovie handles POST /api/dashboard/add-movie
func (h *DashboardHandler) AddMovie(c *fiber.Ctx) error {
	var req dto.AddMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return dashboardFail(c, fiber.StatusBadRequest, "Error parsing request: Invalid JSON format.")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Director = strings.TrimSpace(req.Director)
	req.StarName = strings.TrimSpace(req.StarName)
	req.GenreName = strings.TrimSpace(req.GenreName)

	if err := h.validator.Validate(&req); err != nil {
		if ve, ok := validator.AsValidationErrors(err); ok && ve.HasTag("required") {
			return dashboardFail(c, fiber.StatusBadRequest, "All fields are required.")
		}
		return dashboardFail(c, fiber.StatusBadRequest, err.Error()+".")
	}

	added, err := h.store.AddMovie(memstore.NewMovie{
		Title:     req.Title,
		Year:      req.Year,
		Director:  req.Director,
		StarName:  req.StarName,
		GenreName: req.GenreName,
		Price:     newMoviePrice,
	})
	if errors.Is(err, memstore.ErrConflict) {
		return dashboardFail(c, fiber.StatusConflict, "Movie already exists.")
	}
	if err != nil {
		return err
	}

	starNote := "existing"
	if added.StarCreated {
		starNote = "new"
	}

	h.logger.Info("movie added",
		zap.String("movie_id", added.MovieID),
		zap.String("star_id", added.StarID),
		zap.Bool("star_created", added.StarCreated),
	)

	return c.JSON(dto.DashboardResponse{
		Success: true,
		Message: fmt.Sprintf("Movie '%s' added successfully with ID %s. Star ID: %s (%s), Genre: %s",
			req.Title, added.MovieID, added.StarID, starNote, req.GenreName),
	})
}

// Metadata handles GET /api/dashboard/metadata
func (h *DashboardHandler) Metadata(c *fiber.Ctx) error {
	return c.JSON(dto.FromMetadata(h.store.Metadata()))
}

func dashboardFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.DashboardResponse{Message: message})
}
