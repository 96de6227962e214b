package listing

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-storefront/internal/domain"
)

func TestRenderResults_EmptyPage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"genre", "genre=Comedy", `No movies found for genre "Comedy"`},
		{"initial", "titleInitial=Q", `No movies found starting with "Q"`},
		{"search", "ft_query=alien", `No movies found matching "alien"`},
		{"generic", "", "No movies found matching the criteria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &domain.ResultPage{CurrentPage: 1, HasMoreResults: true}

			view := RenderResults(page, domain.ParseState(tt.query))

			assert.Empty(t, view.Rows)
			assert.Equal(t, tt.message, view.Message)
			assert.False(t, view.IsError)
			assert.False(t, view.PrevEnabled)
			assert.False(t, view.NextEnabled)
			assert.Equal(t, "Page 1", view.PageLabel)
		})
	}
}

func TestRenderResults_Pagination(t *testing.T) {
	page := &domain.ResultPage{
		Movies:         []domain.Movie{{ID: "tt1", Title: "Heat"}},
		CurrentPage:    2,
		HasMoreResults: true,
	}

	view := RenderResults(page, domain.ParseState("page=2"))

	assert.True(t, view.PrevEnabled)
	assert.True(t, view.NextEnabled)
	assert.Equal(t, "Page 2", view.PageLabel)

	page.HasMoreResults = false
	page.CurrentPage = 1
	view = RenderResults(page, domain.ParseState(""))
	assert.False(t, view.PrevEnabled)
	assert.False(t, view.NextEnabled)
}

func TestRenderResults_Row(t *testing.T) {
	state := domain.ParseState("year=1999&sort1=title&order1=asc&limit=10&page=3")
	page := &domain.ResultPage{
		CurrentPage: 3,
		Movies: []domain.Movie{{
			ID:       "tt0133093",
			Title:    "The Matrix",
			Year:     "1999",
			Director: "Lana Wachowski",
			Genres:   []string{"Action", "Sci-Fi", "Thriller", "Drama"},
			Stars: []domain.StarRef{
				{ID: "nm1", Name: "Keanu Reeves"},
				{Name: "Uncredited"},
			},
		}},
	}

	view := RenderResults(page, state)
	require.Len(t, view.Rows, 1)
	row := view.Rows[0]

	assert.Equal(t, domain.MovieLocation("tt0133093"), row.Title.Location)
	assert.Equal(t, NotAvailable, row.Rating)
	assert.True(t, row.CanAddToCart)

	var genres []string
	for _, g := range row.Genres {
		genres = append(genres, g.Label)
	}
	assert.Equal(t, []string{"Action", "Sci-Fi", "Thriller"}, genres)

	target := domain.ParseState(row.Genres[0].Location.RawQuery)
	want := state
	want.Genre = "Action"
	want.Page = 1
	assert.Empty(t, cmp.Diff(want, target))

	want2 := []Link{
		{Label: "Keanu Reeves", Location: domain.StarLocation("nm1")},
		{Label: "Uncredited"},
	}
	assert.Empty(t, cmp.Diff(want2, row.Stars))
	assert.False(t, row.Stars[1].Active())
}

func TestRenderResults_RowWithoutID(t *testing.T) {
	page := &domain.ResultPage{CurrentPage: 1, Movies: []domain.Movie{{Title: "Untitled"}}}

	row := RenderResults(page, domain.DefaultQueryState()).Rows[0]

	assert.False(t, row.CanAddToCart)
	assert.False(t, row.Title.Active())
	assert.Equal(t, NotAvailable, row.Year)
	assert.Equal(t, NotAvailable, row.Director)
}

func TestErrorView(t *testing.T) {
	view := ErrorView(errors.New("HTTP error! Status: 500"))

	assert.True(t, view.IsError)
	assert.Equal(t, "Error loading movies: HTTP error! Status: 500", view.Message)
	assert.Equal(t, "Error", view.PageLabel)
	assert.False(t, view.PrevEnabled)
	assert.False(t, view.NextEnabled)
	assert.Empty(t, view.Rows)
}

func TestBrowseLinks(t *testing.T) {
	state := domain.ParseState("genre=Drama&year=1999&sort1=title&order1=asc&sort2=rating&order2=desc&limit=50&page=4")

	links := BrowseLinks(domain.ParamGenre, []string{"Comedy", "Drama"}, state)
	require.Len(t, links, 2)

	assert.False(t, links[0].Selected)
	assert.True(t, links[1].Selected)

	got := domain.ParseState(links[0].Location.RawQuery)
	want := domain.QueryState{
		Genre:  "Comedy",
		Sort1:  domain.SortFieldTitle,
		Order1: domain.SortOrderAsc,
		Sort2:  domain.SortFieldRating,
		Order2: domain.SortOrderDesc,
		Limit:  50,
		Page:   1,
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestBrowseLinks_Initials(t *testing.T) {
	state := domain.ParseState("titleInitial=B&ft_query=alien")

	links := BrowseLinks(domain.ParamTitleInitial, []string{"A", "B", "*"}, state)

	assert.True(t, links[1].Selected)
	got := domain.ParseState(links[2].Location.RawQuery)
	assert.Equal(t, "*", got.TitleInitial)
	assert.Empty(t, got.FTQuery)
}
