package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/app/listing"
	"movie-storefront/internal/domain"
)

func TestDetailService_Movie(t *testing.T) {
	api := &fakeCatalog{movie: &domain.MovieDetail{
		ID:     "tt0133093",
		Title:  "The Matrix",
		Year:   "1999",
		Genres: []domain.GenreRef{{ID: "1", Name: "Action"}, {Name: "Sci-Fi"}},
		Stars:  []domain.StarRef{{ID: "nm1", Name: "Keanu Reeves"}, {Name: "No Id"}},
	}}
	svc := NewDetailService(api, zap.NewNop())

	view, err := svc.Movie(context.Background(), "tt0133093")
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", view.Title)
	assert.Equal(t, "N/A", view.Director)
	assert.Equal(t, "N/A", view.Rating)
	assert.Equal(t, []listing.Link{
		{Label: "Action", Location: domain.GenreLocation("Action")},
		{Label: "Sci-Fi", Location: domain.GenreLocation("Sci-Fi")},
	}, view.Genres)
	assert.Equal(t, []listing.Link{
		{Label: "Keanu Reeves", Location: domain.StarLocation("nm1")},
	}, view.Stars)
}

func TestDetailService_MovieErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		err     error
		message string
	}{
		{"missing id", "", nil, "Error: Movie ID is missing from the URL."},
		{"not found", "tt9", domain.ErrNotFound, "No movie found with ID: tt9"},
		{"server error", "tt9", &domain.ServerError{Message: "db down"}, "Error loading movie: db down"},
		{"http error", "tt9", &domain.APIError{Status: 500}, "Error loading movie details: HTTP error! Status: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDetailService(&fakeCatalog{err: tt.err}, zap.NewNop())

			_, err := svc.Movie(context.Background(), tt.id)

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestDetailService_MovieNotLoggedIn(t *testing.T) {
	svc := NewDetailService(&fakeCatalog{err: &domain.APIError{Status: 401}}, zap.NewNop())

	_, err := svc.Movie(context.Background(), "tt1")

	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

func TestDetailService_Star(t *testing.T) {
	api := &fakeCatalog{star: &domain.StarDetail{
		ID:   "nm1",
		Name: "Keanu Reeves",
		Movies: []domain.StarMovie{
			{MovieID: "tt0133093", Title: "The Matrix", Year: "1999", Director: "Lana Wachowski"},
			{Title: "Untracked"},
		},
	}}
	svc := NewDetailService(api, zap.NewNop())

	view, err := svc.Star(context.Background(), "nm1")
	require.NoError(t, err)

	assert.Equal(t, "Keanu Reeves", view.Name)
	assert.Equal(t, "N/A", view.BirthYear)
	require.Len(t, view.Movies, 2)
	assert.Equal(t, "The Matrix (1999) - Directed by Lana Wachowski", view.Movies[0].Label)
	assert.Equal(t, domain.MovieLocation("tt0133093"), view.Movies[0].Location)
	assert.Equal(t, "Untracked (N/A) - Directed by Unknown Director", view.Movies[1].Label)
	assert.False(t, view.Movies[1].Active())
	assert.Empty(t, view.Message)
}

func TestDetailService_StarWithoutMovies(t *testing.T) {
	svc := NewDetailService(&fakeCatalog{star: &domain.StarDetail{BirthYear: "1964"}}, zap.NewNop())

	view, err := svc.Star(context.Background(), "nm1")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Name", view.Name)
	assert.Equal(t, "1964", view.BirthYear)
	assert.Equal(t, "No movies listed for this star.", view.Message)
}

func TestDetailService_StarErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		err     error
		message string
	}{
		{"missing id", "", nil, "Error: No star ID provided"},
		{"server error", "nm1", &domain.ServerError{Message: "no such star"}, "Error from server: no such star"},
		{"malformed", "nm1", &domain.MalformedPayloadError{Err: errors.New("eof")}, "Error parsing server response."},
		{"network", "nm1", errors.New("refused"), "Error loading star details: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDetailService(&fakeCatalog{err: tt.err}, zap.NewNop())

			_, err := svc.Star(context.Background(), tt.id)

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestDetailService_BackLink(t *testing.T) {
	ctx := context.Background()

	svc := NewDetailService(&fakeCatalog{listURL: "movies.html?genre=Drama&page=2"}, zap.NewNop())
	assert.Equal(t, domain.Location{Page: domain.PageMovies, RawQuery: "genre=Drama&page=2"}, svc.BackLink(ctx))

	svc = NewDetailService(&fakeCatalog{}, zap.NewNop())
	assert.Equal(t, domain.Location{Page: domain.PageMovies}, svc.BackLink(ctx))

	svc = NewDetailService(&fakeCatalog{listURL: "movies.html?x=1", err: errors.New("down")}, zap.NewNop())
	assert.Equal(t, domain.Location{Page: domain.PageMovies}, svc.BackLink(ctx))
}
