package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

// MetadataView is the rendered database metadata.
type MetadataView struct {
	Tables  []domain.TableMetadata
	Message string
}

// DashboardService handles the employee dashboard.
type DashboardService struct {
	api      domain.DashboardAPI
	validate *validator.Validator
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(api domain.DashboardAPI, validate *validator.Validator, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:      api,
		validate: validate,
		logger:   logger,
	}
}

// AddStar validates and submits form. The returned message is shown in the
// add-star area whether or not err is nil.
func (s *DashboardService) AddStar(ctx context.Context, form domain.StarForm) (string, error) {
	form = domain.StarForm{
		StarName:  strings.TrimSpace(form.StarName),
		BirthYear: strings.TrimSpace(form.BirthYear),
	}

	if err := s.validate.Validate(&form); err != nil {
		ve, _ := validator.AsValidationErrors(err)
		if _, ok := ve.Field("star_name"); ok {
			return "Star Name is required.", err
		}
		return "Birth year must be a valid number.", err
	}

	msg, err := s.api.AddStar(ctx, form)
	if err != nil {
		s.logger.Error("adding star failed", zap.String("star_name", form.StarName), zap.Error(err))
		return dashboardFailureMessage(err, "An error occurred while adding the star."), err
	}
	return msg, nil
}

// AddMovie validates and submits form.
func (s *DashboardService) AddMovie(ctx context.Context, form domain.MovieForm) (string, error) {
	form = domain.MovieForm{
		Title:     strings.TrimSpace(form.Title),
		Year:      strings.TrimSpace(form.Year),
		Director:  strings.TrimSpace(form.Director),
		StarName:  strings.TrimSpace(form.StarName),
		GenreName: strings.TrimSpace(form.GenreName),
	}

	if err := s.validate.Validate(&form); err != nil {
		ve, _ := validator.AsValidationErrors(err)
		if ve.HasTag("required") {
			return "All fields marked with * are required.", err
		}
		return "Movie year must be a valid number.", err
	}

	msg, err := s.api.AddMovie(ctx, form)
	if err != nil {
		s.logger.Error("adding movie failed", zap.String("title", form.Title), zap.Error(err))
		return dashboardFailureMessage(err, "An error occurred while adding the movie."), err
	}
	return msg, nil
}

// Metadata loads the database tables and their attributes.
func (s *DashboardService) Metadata(ctx context.Context) (MetadataView, error) {
	tables, err := s.api.Metadata(ctx)
	if err != nil {
		s.logger.Error("fetching metadata failed", zap.Error(err))
		return MetadataView{Message: dashboardFailureMessage(err, "An error occurred while fetching metadata.")}, err
	}
	if len(tables) == 0 {
		return MetadataView{Message: "No metadata available or database is empty."}, nil
	}
	return MetadataView{Tables: tables, Message: "Metadata loaded successfully."}, nil
}

func dashboardFailureMessage(err error, fallback string) string {
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
