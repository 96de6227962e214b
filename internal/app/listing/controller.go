// Package listing keeps the movie listing's query state, address bar, and
// results table in sync with the remote listing endpoint.
package listing

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"movie-storefront/internal/app/nav"
	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

// Request is one issued listing fetch. Token orders requests; only the
// latest token's result is rendered.
type Request struct {
	Token uint64
	State domain.QueryState
}

// Result is the outcome of fetching a Request.
type Result struct {
	Request
	Page *domain.ResultPage
	Err  error
}

// Outcome tells the caller what Deliver did with a result.
type Outcome int

const (
	// OutcomeRendered means the results table now shows the page.
	OutcomeRendered Outcome = iota
	// OutcomeFailed means the results table shows the error row.
	OutcomeFailed
	// OutcomeStale means a newer request was issued and the result was dropped.
	OutcomeStale
	// OutcomeLoginRequired means the session is not authenticated. The view is
	// cleared and the caller must navigate to the login page.
	OutcomeLoginRequired
)

// Controller owns the listing state of one movies screen.
type Controller struct {
	source   domain.ListingSource
	history  *nav.History
	validate *validator.Validator
	logger   *zap.Logger

	tokens  *atomic.Uint64
	state   domain.QueryState
	token   uint64
	pending bool
	view    ResultsView
}

// Option configures a Controller.
type Option func(*Controller)

// WithTokens draws request tokens from seq. Controllers sharing seq never
// issue the same token, so a result fetched for one is stale for the others.
func WithTokens(seq *atomic.Uint64) Option {
	return func(c *Controller) {
		c.tokens = seq
	}
}

// New creates a controller bound to the given address bar.
func New(source domain.ListingSource, history *nav.History, validate *validator.Validator, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		history:  history,
		validate: validate,
		logger:   logger,
		tokens:   new(atomic.Uint64),
		state:    domain.DefaultQueryState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current query state.
func (c *Controller) State() domain.QueryState {
	return c.state
}

// View returns the current results table.
func (c *Controller) View() ResultsView {
	return c.view
}

// Loading reports whether the latest request has not been delivered yet.
func (c *Controller) Loading() bool {
	return c.pending
}

// Load creates the state from loc without touching the address bar. It is
// used on page load and when back/forward lands on a listing entry.
func (c *Controller) Load(loc domain.Location) Request {
	c.state = domain.ParseState(loc.RawQuery)
	return c.issue()
}

// Begin merges patch into the state, pushes the new location, and issues a request.
func (c *Controller) Begin(patch domain.Patch) Request {
	c.state = domain.MergeState(c.state, patch)
	c.history.Push(domain.MoviesLocation(c.state))
	return c.issue()
}

// Visit replaces the state with the one encoded in loc and pushes loc.
// It serves genre links, whose targets are fully built listing locations.
func (c *Controller) Visit(loc domain.Location) Request {
	c.state = domain.ParseState(loc.RawQuery)
	c.history.Push(domain.MoviesLocation(c.state))
	return c.issue()
}

// Reload issues a new request for the current state.
func (c *Controller) Reload() Request {
	return c.issue()
}

func (c *Controller) issue() Request {
	c.token = c.tokens.Add(1)
	c.pending = true
	return Request{Token: c.token, State: c.state}
}

// Fetch retrieves the page for req. It does not touch controller state and
// may run off the UI goroutine.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	page, err := c.source.FetchListing(ctx, req.State)
	return Result{Request: req, Page: page, Err: err}
}

// Deliver renders res unless a newer request has been issued since.
func (c *Controller) Deliver(res Result) Outcome {
	if res.Token != c.token {
		c.logger.Debug("stale listing response dropped",
			zap.Uint64("token", res.Token),
			zap.Uint64("latest", c.token),
		)
		return OutcomeStale
	}
	c.pending = false

	switch {
	case errors.Is(res.Err, domain.ErrNotLoggedIn):
		c.view = ResultsView{}
		return OutcomeLoginRequired
	case res.Err != nil:
		c.logger.Error("error fetching or processing movies",
			zap.String("query", res.State.Encode()),
			zap.Error(res.Err),
		)
		c.view = ErrorView(res.Err)
		return OutcomeFailed
	}

	c.view = RenderResults(res.Page, res.State)
	return OutcomeRendered
}

// ApplyPatchAndReload runs Begin, Fetch and Deliver in sequence.
func (c *Controller) ApplyPatchAndReload(ctx context.Context, patch domain.Patch) Outcome {
	return c.Deliver(c.Fetch(ctx, c.Begin(patch)))
}

// Submit starts a new search from the search form. Title text becomes the
// full-text query; genre, title and initial filters are dropped; sort and page
// size carry over. Validation failures return before any state change.
func (c *Controller) Submit(form domain.SearchForm) (Request, error) {
	form = domain.SearchForm{
		Title:    strings.TrimSpace(form.Title),
		Year:     strings.TrimSpace(form.Year),
		Director: strings.TrimSpace(form.Director),
		StarName: strings.TrimSpace(form.StarName),
	}
	if err := c.validate.Validate(&form); err != nil {
		return Request{}, err
	}

	return c.Begin(domain.Patch{
		domain.ParamFTQuery:      form.Title,
		domain.ParamYear:         form.Year,
		domain.ParamDirector:     form.Director,
		domain.ParamStarName:     form.StarName,
		domain.ParamTitle:        "",
		domain.ParamGenre:        "",
		domain.ParamTitleInitial: "",
		domain.ParamPage:         "1",
	}), nil
}

// Reset clears every filter and restores the default sort, keeping the page size.
// The secondary sort is written explicitly as title ascending.
func (c *Controller) Reset() Request {
	patch := domain.Patch{
		domain.ParamSort1:  string(domain.DefaultSort1),
		domain.ParamOrder1: string(domain.DefaultOrder1),
		domain.ParamSort2:  string(domain.DefaultSort2),
		domain.ParamOrder2: string(domain.DefaultOrder2),
		domain.ParamPage:   "1",
	}
	for _, key := range domain.FilterParams {
		patch[key] = ""
	}
	return c.Begin(patch)
}

// ApplySort applies the four sort controls. A selection with the same primary
// and secondary field is rejected with domain.ErrSameSortFields and leaves the
// state untouched.
func (c *Controller) ApplySort(sel domain.SortSelection) (Request, error) {
	if err := sel.Validate(); err != nil {
		return Request{}, err
	}
	patch := sel.Patch()
	patch[domain.ParamPage] = "1"
	return c.Begin(patch), nil
}

// SetPageSize changes the page size and returns to page 1.
func (c *Controller) SetPageSize(limit int) Request {
	return c.Begin(domain.Patch{
		domain.ParamLimit: strconv.Itoa(limit),
		domain.ParamPage:  "1",
	})
}

// PrevPage moves one page back. ok is false on the first page.
func (c *Controller) PrevPage() (req Request, ok bool) {
	if c.state.Page <= 1 {
		return Request{}, false
	}
	return c.Begin(domain.Patch{domain.ParamPage: strconv.Itoa(c.state.Page - 1)}), true
}

// NextPage moves one page forward.
func (c *Controller) NextPage() Request {
	return c.Begin(domain.Patch{domain.ParamPage: strconv.Itoa(c.state.Page + 1)})
}

// BrowseGenre starts a browse by genre.
func (c *Controller) BrowseGenre(genre string) Request {
	return c.Visit(domain.MoviesLocation(browseState(c.state, domain.ParamGenre, genre)))
}

// BrowseInitial starts a browse by title initial.
func (c *Controller) BrowseInitial(initial string) Request {
	return c.Visit(domain.MoviesLocation(browseState(c.state, domain.ParamTitleInitial, initial)))
}
