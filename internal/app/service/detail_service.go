package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"movie-storefront/internal/app/listing"
	"movie-storefront/internal/domain"
)

// PageError carries the paragraph a detail page shows instead of its content.
type PageError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}

// MovieView is the rendered single-movie page.
type MovieView struct {
	ID       string
	Title    string
	Year     string
	Director string
	Rating   string
	Genres   []listing.Link
	Stars    []listing.Link
}

// StarView is the rendered single-star page.
type StarView struct {
	Name      string
	BirthYear string
	Movies    []listing.Link
	Message   string // shown instead of Movies
}

// DetailService handles the single-movie and single-star pages.
type DetailService struct {
	api    domain.DetailAPI
	logger *zap.Logger
}

// NewDetailService creates a new DetailService.
func NewDetailService(api domain.DetailAPI, logger *zap.Logger) *DetailService {
	return &DetailService{
		api:    api,
		logger: logger,
	}
}

// Movie loads and renders the movie with id. On failure the returned error's
// text is the page's error paragraph.
func (s *DetailService) Movie(ctx context.Context, id string) (MovieView, error) {
	if id == "" {
		return MovieView{}, &PageError{Message: "Error: Movie ID is missing from the URL."}
	}

	movie, err := s.api.Movie(ctx, id)
	if err != nil {
		s.logger.Error("fetching movie failed", zap.String("movie_id", id), zap.Error(err))
		return MovieView{}, movieError(id, err)
	}

	view := MovieView{
		ID:       movie.ID,
		Title:    orNotAvailable(movie.Title),
		Year:     orNotAvailable(movie.Year),
		Director: orNotAvailable(movie.Director),
		Rating:   orNotAvailable(movie.Rating),
	}
	for _, g := range movie.Genres {
		view.Genres = append(view.Genres, listing.Link{Label: g.Name, Location: domain.GenreLocation(g.Name)})
	}
	for _, star := range movie.Stars {
		if star.ID == "" || star.Name == "" {
			continue
		}
		view.Stars = append(view.Stars, listing.Link{Label: star.Name, Location: domain.StarLocation(star.ID)})
	}
	return view, nil
}

func movieError(id string, err error) error {
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &PageError{Message: "No movie found with ID: " + id, Err: err}
	}
	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		return &PageError{Message: "Error loading movie: " + srvErr.Message, Err: err}
	}
	return &PageError{Message: "Error loading movie details: " + err.Error(), Err: err}
}

// Star loads and renders the star with id.
func (s *DetailService) Star(ctx context.Context, id string) (StarView, error) {
	if id == "" {
		return StarView{}, &PageError{Message: "Error: No star ID provided"}
	}

	star, err := s.api.Star(ctx, id)
	if err != nil {
		s.logger.Error("fetching star failed", zap.String("star_id", id), zap.Error(err))
		return StarView{}, starError(err)
	}

	view := StarView{Name: star.Name, BirthYear: orNotAvailable(star.BirthYear)}
	if view.Name == "" {
		view.Name = "Unknown Name"
	}
	for _, m := range star.Movies {
		label := fmt.Sprintf("%s (%s) - Directed by %s",
			orDefault(m.Title, "Unknown Title"),
			orNotAvailable(m.Year),
			orDefault(m.Director, "Unknown Director"),
		)
		link := listing.Link{Label: label}
		if m.MovieID != "" {
			link.Location = domain.MovieLocation(m.MovieID)
		}
		view.Movies = append(view.Movies, link)
	}
	if len(view.Movies) == 0 {
		view.Message = "No movies listed for this star."
	}
	return view, nil
}

func starError(err error) error {
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return err
	}
	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		return &PageError{Message: "Error from server: " + srvErr.Message, Err: err}
	}
	if errors.Is(err, domain.ErrMalformedPayload) {
		return &PageError{Message: "Error parsing server response.", Err: err}
	}
	return &PageError{Message: "Error loading star details: " + err.Error(), Err: err}
}

// BackLink returns the listing location remembered by the session, falling
// back to the default listing.
func (s *DetailService) BackLink(ctx context.Context) domain.Location {
	fallback := domain.Location{Page: domain.PageMovies}

	raw, err := s.api.MovieListURL(ctx)
	if err != nil {
		s.logger.Warn("fetching session data failed", zap.Error(err))
		return fallback
	}
	if raw == "" {
		return fallback
	}
	return domain.ParseLocation(raw)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
