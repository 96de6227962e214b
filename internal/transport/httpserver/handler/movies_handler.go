package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/infra/memstore"
	"movie-storefront/internal/transport/httpserver/dto"
)

// listingPage is the page the saved listing URL points at.
const listingPage = "movies.html"

// MoviesHandler serves the read-only catalog endpoints.
type MoviesHandler struct {
	store  *memstore.Store
	logger *zap.Logger
}

// NewMoviesHandler creates a new MoviesHandler.
func NewMoviesHandler(store *memstore.Store, logger *zap.Logger) *MoviesHandler {
	return &MoviesHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/movies
// The query string is remembered as the session's listing URL.
func (h *MoviesHandler) List(c *fiber.Ctx) error {
	raw := string(c.Request().URI().QueryString())
	state := domain.ParseState(raw)

	rows, hasMore := h.store.Search(state)

	listURL := listingPage
	if raw != "" {
		listURL += "?" + raw
	}
	visitOf(c).setListURL(listURL)

	resp := dto.ListingResponse{
		Movies:         make([]dto.MovieItem, 0, len(rows)),
		CurrentPage:    state.Page,
		Limit:          state.Limit,
		HasMoreResults: hasMore,
	}
	for _, row := range rows {
		resp.Movies = append(resp.Movies, dto.FromMovieRecord(row.Movie, row.Stars))
	}

	h.logger.Debug("listing served",
		zap.String("query", state.Encode()),
		zap.Int("count", len(resp.Movies)),
	)

	return c.JSON(resp)
}

// TitleInitials handles GET /api/title-initials
func (h *MoviesHandler) TitleInitials(c *fiber.Ctx) error {
	return c.JSON(dto.InitialsResponse{Initials: h.store.TitleInitials()})
}

// Genres handles GET /api/genres
func (h *MoviesHandler) Genres(c *fiber.Ctx) error {
	return c.JSON(dto.GenresResponse{Genres: h.store.Genres()})
}

// Suggest handles GET /api/movie-suggestion?query=
func (h *MoviesHandler) Suggest(c *fiber.Ctx) error {
	resp := dto.SuggestionResponse{Suggestions: []dto.Suggestion{}}

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return c.JSON(resp)
	}
	for _, m := range h.store.Suggest(query) {
		resp.Suggestions = append(resp.Suggestions, dto.Suggestion{ID: m.ID, Title: m.Title})
	}
	return c.JSON(resp)
}

// Movie handles GET /api/movie?id=
// An unknown id answers with an empty movie list.
func (h *MoviesHandler) Movie(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Movie ID is required.",
			Code:  "MISSING_ID",
		})
	}

	movie, stars, err := h.store.Movie(id)
	if errors.Is(err, memstore.ErrNotFound) {
		return c.JSON(dto.SingleMovieResponse{Movies: []dto.MovieItem{}})
	}
	if err != nil {
		return err
	}

	return c.JSON(dto.SingleMovieResponse{
		Movies: []dto.MovieItem{dto.FromMovieRecord(movie, stars)},
	})
}

// Star handles GET /api/star?id=
func (h *MoviesHandler) Star(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Star ID is required.",
			Code:  "MISSING_ID",
		})
	}

	star, movies, err := h.store.Star(id)
	if errors.Is(err, memstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Star not found.",
			Code:  "NOT_FOUND",
		})
	}
	if err != nil {
		return err
	}

	info := dto.StarInfo{
		StarName:  star.Name,
		BirthYear: star.BirthYear,
		Movies:    make([]dto.StarMovie, 0, len(movies)),
	}
	for _, m := range movies {
		info.Movies = append(info.Movies, dto.StarMovie{
			MovieID:  m.ID,
			Title:    m.Title,
			Year:     m.Year,
			Director: m.Director,
		})
	}
	return c.JSON(dto.SingleStarResponse{StarInfo: info})
}

// SessionData handles GET /api/session-data
func (h *MoviesHandler) SessionData(c *fiber.Ctx) error {
	return c.JSON(dto.SessionDataResponse{MovieListURL: visitOf(c).listingURL()})
}
