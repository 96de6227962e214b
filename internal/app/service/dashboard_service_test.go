package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

func TestDashboardService_AddStar(t *testing.T) {
	tests := []struct {
		name    string
		form    domain.StarForm
		message string
		wantErr bool
		calls   int
	}{
		{"ok", domain.StarForm{StarName: " Keanu Reeves ", BirthYear: "1964"}, "Star added successfully!", false, 1},
		{"no birth year", domain.StarForm{StarName: "Keanu Reeves"}, "Star added successfully!", false, 1},
		{"missing name", domain.StarForm{StarName: "  ", BirthYear: "1964"}, "Star Name is required.", true, 0},
		{"bad year", domain.StarForm{StarName: "Keanu", BirthYear: "nineteen"}, "Birth year must be a valid number.", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCatalog{message: "Star added successfully!"}
			svc := NewDashboardService(api, validator.New(), zap.NewNop())

			msg, err := svc.AddStar(context.Background(), tt.form)

			assert.Equal(t, tt.message, msg)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Len(t, api.stars, tt.calls)
		})
	}
}

func TestDashboardService_AddMovie(t *testing.T) {
	form := domain.MovieForm{Title: "Heat", Year: "1995", Director: "Michael Mann", StarName: "Al Pacino", GenreName: "Crime"}

	api := &fakeCatalog{message: "Movie added successfully!"}
	svc := NewDashboardService(api, validator.New(), zap.NewNop())

	msg, err := svc.AddMovie(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Movie added successfully!", msg)

	missing := form
	missing.GenreName = " "
	msg, err = svc.AddMovie(context.Background(), missing)
	assert.Error(t, err)
	assert.Equal(t, "All fields marked with * are required.", msg)

	badYear := form
	badYear.Year = "95a"
	msg, err = svc.AddMovie(context.Background(), badYear)
	assert.Error(t, err)
	assert.Equal(t, "Movie year must be a valid number.", msg)

	assert.Len(t, api.movies, 1)
}

func TestDashboardService_AddMovieRejected(t *testing.T) {
	api := &fakeCatalog{err: &domain.ServerError{Message: "Movie already exists."}}
	svc := NewDashboardService(api, validator.New(), zap.NewNop())

	form := domain.MovieForm{Title: "Heat", Year: "1995", Director: "Michael Mann", StarName: "Al Pacino", GenreName: "Crime"}
	msg, err := svc.AddMovie(context.Background(), form)

	assert.Error(t, err)
	assert.Equal(t, "Movie already exists.", msg)
}

func TestDashboardService_Metadata(t *testing.T) {
	tables := []domain.TableMetadata{{Table: "movies", Attributes: []domain.Attribute{{Name: "id", Type: "varchar"}}}}
	svc := NewDashboardService(&fakeCatalog{tables: tables}, validator.New(), zap.NewNop())

	view, err := svc.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tables, view.Tables)
	assert.Equal(t, "Metadata loaded successfully.", view.Message)

	svc = NewDashboardService(&fakeCatalog{}, validator.New(), zap.NewNop())
	view, err = svc.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No metadata available or database is empty.", view.Message)

	svc = NewDashboardService(&fakeCatalog{err: errors.New("refused")}, validator.New(), zap.NewNop())
	view, err = svc.Metadata(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "An error occurred while fetching metadata.", view.Message)
}
