package listing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-storefront/internal/app/nav"
	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

type fakeSource struct {
	page  *domain.ResultPage
	err   error
	calls []domain.QueryState
}

func (f *fakeSource) FetchListing(_ context.Context, state domain.QueryState) (*domain.ResultPage, error) {
	f.calls = append(f.calls, state)
	if f.err != nil {
		return nil, f.err
	}
	page := *f.page
	page.CurrentPage = state.Page
	return &page, nil
}

func (f *fakeSource) TitleInitials(context.Context) ([]string, error) { return nil, nil }
func (f *fakeSource) Genres(context.Context) ([]string, error)        { return nil, nil }

func newTestController(t *testing.T, query string) (*Controller, *fakeSource, *nav.History) {
	t.Helper()
	src := &fakeSource{page: &domain.ResultPage{
		Movies:         []domain.Movie{{ID: "tt1", Title: "Heat"}},
		HasMoreResults: true,
	}}
	loc := domain.Location{Page: domain.PageMovies, RawQuery: query}
	history := nav.New(loc)
	c := New(src, history, validator.New(), zap.NewNop())
	c.Deliver(c.Fetch(context.Background(), c.Load(loc)))
	return c, src, history
}

func TestController_Load(t *testing.T) {
	c, src, history := newTestController(t, "genre=Comedy&page=2")

	assert.Equal(t, "Comedy", c.State().Genre)
	assert.Equal(t, 2, c.State().Page)
	assert.Len(t, src.calls, 1)
	assert.Equal(t, 1, history.Len())
	assert.Equal(t, "Page 2", c.View().PageLabel)
	assert.False(t, c.Loading())
}

func TestController_ApplyPatchAndReload(t *testing.T) {
	c, src, history := newTestController(t, "year=1999&sort1=title&order1=asc&limit=10&page=3")

	outcome := c.ApplyPatchAndReload(context.Background(), domain.Patch{domain.ParamGenre: "Comedy"})

	assert.Equal(t, OutcomeRendered, outcome)
	want := "year=1999&genre=Comedy&sort1=title&order1=asc&limit=10&page=1"
	assert.Equal(t, want, history.Current().RawQuery)
	assert.Equal(t, want, src.calls[1].Encode())
	assert.Equal(t, 2, history.Len())
}

func TestController_DeliverStale(t *testing.T) {
	c, _, _ := newTestController(t, "")
	ctx := context.Background()

	first := c.NextPage()
	second := c.NextPage()

	firstRes := c.Fetch(ctx, first)
	secondRes := c.Fetch(ctx, second)

	assert.Equal(t, OutcomeRendered, c.Deliver(secondRes))
	assert.Equal(t, OutcomeStale, c.Deliver(firstRes))
	assert.Equal(t, "Page 3", c.View().PageLabel)
}

func TestController_SharedTokensRejectOtherController(t *testing.T) {
	src := &fakeSource{page: &domain.ResultPage{Movies: []domain.Movie{{ID: "tt1", Title: "Heat"}}}}
	loc := domain.Location{Page: domain.PageMovies}
	history := nav.New(loc)
	seq := new(atomic.Uint64)
	ctx := context.Background()

	gone := New(src, history, validator.New(), zap.NewNop(), WithTokens(seq))
	held := gone.Fetch(ctx, gone.Load(loc))

	c := New(src, history, validator.New(), zap.NewNop(), WithTokens(seq))
	req := c.Load(loc)

	assert.Equal(t, OutcomeStale, c.Deliver(held))
	assert.True(t, c.Loading())
	assert.Equal(t, OutcomeRendered, c.Deliver(c.Fetch(ctx, req)))
	assert.False(t, c.Loading())
}

func TestController_DeliverNotLoggedIn(t *testing.T) {
	c, src, _ := newTestController(t, "")
	src.err = &domain.APIError{Status: 401, Message: "User not logged in"}

	outcome := c.Deliver(c.Fetch(context.Background(), c.Reload()))

	assert.Equal(t, OutcomeLoginRequired, outcome)
	assert.Empty(t, c.View().Rows)
	assert.Empty(t, c.View().Message)
	assert.False(t, c.View().IsError)
}

func TestController_DeliverError(t *testing.T) {
	c, src, _ := newTestController(t, "")
	src.err = &domain.ServerError{Message: "db down"}

	outcome := c.Deliver(c.Fetch(context.Background(), c.Reload()))

	assert.Equal(t, OutcomeFailed, outcome)
	assert.True(t, c.View().IsError)
	assert.Equal(t, "Error loading movies: Server error: db down", c.View().Message)
	assert.Equal(t, "Error", c.View().PageLabel)
}

func TestController_Submit(t *testing.T) {
	c, _, history := newTestController(t, "title=old&genre=Drama&titleInitial=A&sort1=title&order1=asc&limit=50&page=4")

	_, err := c.Submit(domain.SearchForm{Title: "  alien ", Year: "1979", Director: "Scott"})
	require.NoError(t, err)

	s := c.State()
	assert.Equal(t, "alien", s.FTQuery)
	assert.Equal(t, "1979", s.Year)
	assert.Equal(t, "Scott", s.Director)
	assert.Empty(t, s.Title)
	assert.Empty(t, s.Genre)
	assert.Empty(t, s.TitleInitial)
	assert.Equal(t, domain.SortFieldTitle, s.Sort1)
	assert.Equal(t, 50, s.Limit)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, s.Encode(), history.Current().RawQuery)
}

func TestController_SubmitInvalidYear(t *testing.T) {
	c, _, history := newTestController(t, "genre=Drama")
	before := c.State()

	_, err := c.Submit(domain.SearchForm{Year: "19x9"})

	ve, ok := validator.AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, ve.HasTag("numeric"))
	assert.Equal(t, before, c.State())
	assert.Equal(t, 1, history.Len())
}

func TestController_Reset(t *testing.T) {
	c, _, _ := newTestController(t, "ft_query=x&genre=Drama&sort1=title&order1=asc&limit=100&page=5")

	c.Reset()

	want := domain.QueryState{
		Sort1:  domain.SortFieldRating,
		Order1: domain.SortOrderDesc,
		Sort2:  domain.SortFieldTitle,
		Order2: domain.SortOrderAsc,
		Limit:  100,
		Page:   1,
	}
	assert.Equal(t, want, c.State())
}

func TestController_ApplySort(t *testing.T) {
	c, _, history := newTestController(t, "sort1=rating&order1=desc&sort2=title&order2=asc&page=3")

	_, err := c.ApplySort(domain.SortSelection{
		Sort1: domain.SortFieldTitle, Order1: domain.SortOrderAsc,
		Sort2: domain.SortFieldTitle, Order2: domain.SortOrderDesc,
	})
	assert.ErrorIs(t, err, domain.ErrSameSortFields)
	assert.Equal(t, 1, history.Len())
	assert.Equal(t, 3, c.State().Page)

	_, err = c.ApplySort(domain.SortSelection{
		Sort1: domain.SortFieldTitle, Order1: domain.SortOrderAsc,
		Sort2: domain.SortFieldNone, Order2: domain.SortOrderDesc,
	})
	require.NoError(t, err)
	assert.False(t, c.State().HasSecondarySort())
	assert.Equal(t, "sort1=title&order1=asc&limit=25&page=1", history.Current().RawQuery)
}

func TestController_Paging(t *testing.T) {
	c, _, history := newTestController(t, "")

	_, ok := c.PrevPage()
	assert.False(t, ok)
	assert.Equal(t, 1, history.Len())

	c.NextPage()
	assert.Equal(t, 2, c.State().Page)

	_, ok = c.PrevPage()
	assert.True(t, ok)
	assert.Equal(t, 1, c.State().Page)

	c.NextPage()
	c.SetPageSize(100)
	assert.Equal(t, 100, c.State().Limit)
	assert.Equal(t, 1, c.State().Page)
}

func TestController_Browse(t *testing.T) {
	c, _, history := newTestController(t, "year=2001&sort1=title&order1=desc&limit=10&page=2")

	c.BrowseGenre("Horror")
	assert.Equal(t, "genre=Horror&sort1=title&order1=desc&limit=10&page=1", history.Current().RawQuery)

	c.BrowseInitial("Z")
	assert.Equal(t, "titleInitial=Z&sort1=title&order1=desc&limit=10&page=1", history.Current().RawQuery)
	assert.Empty(t, c.State().Genre)
}

func TestController_VisitGenreLink(t *testing.T) {
	c, src, _ := newTestController(t, "year=1999")
	ctx := context.Background()

	row := c.View().Rows[0]
	require.Empty(t, row.Genres)

	src.page.Movies[0].Genres = []string{"Crime"}
	c.Deliver(c.Fetch(ctx, c.Reload()))
	link := c.View().Rows[0].Genres[0]

	c.Deliver(c.Fetch(ctx, c.Visit(link.Location)))

	assert.Equal(t, "Crime", c.State().Genre)
	assert.Equal(t, "1999", c.State().Year)
}

func TestController_StaleErrorIgnored(t *testing.T) {
	c, src, _ := newTestController(t, "")
	ctx := context.Background()

	src.err = errors.New("boom")
	old := c.Fetch(ctx, c.Reload())
	src.err = nil
	fresh := c.Fetch(ctx, c.Reload())

	assert.Equal(t, OutcomeRendered, c.Deliver(fresh))
	assert.Equal(t, OutcomeStale, c.Deliver(old))
	assert.False(t, c.View().IsError)
}
