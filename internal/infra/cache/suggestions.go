// Package cache provides the in-memory suggestion cache used by autocomplete.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"movie-storefront/internal/domain"
)

// store is satisfied by *lru.Cache and by unbounded.
type store interface {
	Get(key string) ([]domain.Suggestion, bool)
	Add(key string, value []domain.Suggestion) bool
	Purge()
	Len() int
}

// Suggestions implements domain.SuggestionCache keyed by the exact query.
// Entries never expire; the owner purges the cache when the listing page is left.
type Suggestions struct {
	storage store
	logger  *zap.Logger
}

var _ domain.SuggestionCache = (*Suggestions)(nil)

// NewSuggestions creates a suggestion cache holding at most size queries.
// A non-positive size keeps every query until Purge.
func NewSuggestions(size int, logger *zap.Logger) *Suggestions {
	if size <= 0 {
		return &Suggestions{storage: &unbounded{items: map[string][]domain.Suggestion{}}, logger: logger}
	}
	// lru.New only fails for a non-positive size
	storage, _ := lru.New[string, []domain.Suggestion](size)

	return &Suggestions{storage: storage, logger: logger}
}

// Get returns the cached suggestions for query.
func (c *Suggestions) Get(query string) ([]domain.Suggestion, bool) {
	suggestions, ok := c.storage.Get(query)
	if ok {
		c.logger.Debug("suggestion cache hit",
			zap.String("query", query),
			zap.Int("count", len(suggestions)),
		)
	}
	return suggestions, ok
}

// Add stores suggestions for query, including empty lists.
func (c *Suggestions) Add(query string, suggestions []domain.Suggestion) {
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	c.storage.Add(query, suggestions)
}

// Purge drops every entry.
func (c *Suggestions) Purge() {
	c.storage.Purge()
}

// Len returns the number of cached queries.
func (c *Suggestions) Len() int {
	return c.storage.Len()
}

type unbounded struct {
	mu    sync.RWMutex
	items map[string][]domain.Suggestion
}

func (u *unbounded) Get(key string) ([]domain.Suggestion, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	v, ok := u.items[key]
	return v, ok
}

func (u *unbounded) Add(key string, value []domain.Suggestion) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.items[key] = value
	return false
}

func (u *unbounded) Purge() {
	u.mu.Lock()
	defer u.mu.Unlock()
	clear(u.items)
}

func (u *unbounded) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.items)
}
