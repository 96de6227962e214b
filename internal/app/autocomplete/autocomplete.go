// Package autocomplete drives the title input's suggestion list: debounced
// lookups, a per-page cache, and keyboard selection.
package autocomplete

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"movie-storefront/internal/domain"
)

const (
	// DebounceDelay is how long input must stay unchanged before a lookup.
	DebounceDelay = 300 * time.Millisecond

	// MinQueryLength is the minimum trimmed input length that triggers lookups.
	MinQueryLength = 3

	// BlurGrace is how long the list survives losing focus.
	BlurGrace = 150 * time.Millisecond
)

// Ticket identifies one debounced lookup. Only the latest ticket is live.
type Ticket struct {
	ID    uint64
	Query string
}

// Lookup is what a due ticket requires.
type Lookup int

const (
	// LookupStale means newer input superseded the ticket.
	LookupStale Lookup = iota
	// LookupCached means the list was served from the cache.
	LookupCached
	// LookupFetch means the caller must call Fetch and then Deliver.
	LookupFetch
)

// Key is a navigation key handled by the suggestion list.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// Action is what the caller must do after a key press.
type Action int

const (
	// ActionNone means the key was consumed or ignored.
	ActionNone Action = iota
	// ActionOpen means navigate to the selected suggestion's movie page.
	ActionOpen
	// ActionSubmit means submit the search form.
	ActionSubmit
)

// Controller holds the suggestion state of one listing page.
// It is owned by the UI goroutine; only Fetch may run elsewhere.
type Controller struct {
	source domain.SuggestionSource
	cache  domain.SuggestionCache
	logger *zap.Logger
	group  singleflight.Group
	ids    *atomic.Uint64

	input       string
	ticket      uint64
	suggestions []domain.Suggestion
	selected    int
	visible     bool
	focused     bool
	blur        uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithTickets draws ticket and blur ids from seq. Controllers sharing seq
// never hand out the same id.
func WithTickets(seq *atomic.Uint64) Option {
	return func(c *Controller) {
		c.ids = seq
	}
}

// New creates a controller backed by source and cache.
func New(source domain.SuggestionSource, cache domain.SuggestionCache, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		cache:    cache,
		logger:   logger,
		ids:      new(atomic.Uint64),
		selected: -1,
		focused:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input records a new input value. When the trimmed value is long enough it
// returns a ticket the caller fires after DebounceDelay; otherwise the list is
// cleared and ok is false. Every call supersedes earlier tickets.
func (c *Controller) Input(value string) (t Ticket, ok bool) {
	c.input = value
	c.ticket = c.ids.Add(1)

	query := strings.TrimSpace(value)
	if len([]rune(query)) < MinQueryLength {
		c.Clear()
		return Ticket{}, false
	}
	return Ticket{ID: c.ticket, Query: query}, true
}

// Due is called when a ticket's debounce delay has elapsed.
func (c *Controller) Due(t Ticket) Lookup {
	if t.ID != c.ticket {
		return LookupStale
	}
	if cached, ok := c.cache.Get(t.Query); ok {
		c.show(cached)
		return LookupCached
	}

	c.logger.Debug("autocomplete search initiated", zap.String("query", t.Query))

	return LookupFetch
}

// Fetch asks the source for suggestions. Concurrent calls for the same query
// share one request.
func (c *Controller) Fetch(ctx context.Context, query string) ([]domain.Suggestion, error) {
	v, err, _ := c.group.Do(query, func() (interface{}, error) {
		return c.source.Suggest(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Suggestion), nil
}

// Deliver applies a fetch result. Results are cached even when the ticket has
// been superseded, but only the live ticket updates the list.
func (c *Controller) Deliver(t Ticket, suggestions []domain.Suggestion, err error) {
	if err != nil {
		c.logger.Error("autocomplete lookup failed", zap.String("query", t.Query), zap.Error(err))
		if t.ID == c.ticket {
			c.Clear()
		}
		return
	}

	c.cache.Add(t.Query, suggestions)
	if t.ID == c.ticket {
		c.show(suggestions)
	}
}

// Key handles a navigation key. Keys are ignored while the list is hidden,
// except Enter, which then submits the search form.
func (c *Controller) Key(k Key) Action {
	if !c.Visible() {
		if k == KeyEnter {
			return ActionSubmit
		}
		return ActionNone
	}

	switch k {
	case KeyDown:
		c.selected = min(c.selected+1, len(c.suggestions)-1)
		c.input = c.suggestions[c.selected].Title
	case KeyUp:
		c.selected = max(c.selected-1, 0)
		c.input = c.suggestions[c.selected].Title
	case KeyEnter:
		if c.selected >= 0 {
			return ActionOpen
		}
		c.Clear()
		return ActionSubmit
	case KeyEscape:
		c.Clear()
	}
	return ActionNone
}

// Blur marks the input as unfocused and returns a token for the grace timer.
func (c *Controller) Blur() uint64 {
	c.focused = false
	c.blur = c.ids.Add(1)
	return c.blur
}

// BlurExpired clears the list unless the input regained focus since token was issued.
func (c *Controller) BlurExpired(token uint64) {
	if token != c.blur || c.focused {
		return
	}
	c.Clear()
}

// Focus marks the input as focused and re-shows the current list when the input still qualifies.
func (c *Controller) Focus() {
	c.focused = true
	if len([]rune(strings.TrimSpace(c.input))) >= MinQueryLength && len(c.suggestions) > 0 {
		c.visible = true
	}
}

// Clear empties and hides the list.
func (c *Controller) Clear() {
	c.suggestions = nil
	c.selected = -1
	c.visible = false
}

// Value returns the text the title input should display.
func (c *Controller) Value() string {
	return c.input
}

// Suggestions returns the current list.
func (c *Controller) Suggestions() []domain.Suggestion {
	return c.suggestions
}

// Selected returns the highlighted suggestion index, or -1.
func (c *Controller) Selected() int {
	return c.selected
}

// Selection returns the highlighted suggestion.
func (c *Controller) Selection() (domain.Suggestion, bool) {
	if c.selected < 0 || c.selected >= len(c.suggestions) {
		return domain.Suggestion{}, false
	}
	return c.suggestions[c.selected], true
}

// Visible reports whether the list is shown.
func (c *Controller) Visible() bool {
	return c.visible && len(c.suggestions) > 0
}

func (c *Controller) show(suggestions []domain.Suggestion) {
	c.suggestions = suggestions
	c.selected = -1
	c.visible = len(suggestions) > 0
	c.logger.Debug("suggestion list shown", zap.Int("count", len(suggestions)))
}
