// Package nav keeps the storefront's address bar: the current location and
// the back/forward stack.
package nav

import "movie-storefront/internal/domain"

// History is a browser-style session history of locations.
// It is owned by the UI goroutine and is not safe for concurrent use.
type History struct {
	entries []domain.Location
	index   int
}

// New creates a history whose only entry is start.
func New(start domain.Location) *History {
	return &History{entries: []domain.Location{start}}
}

// Current returns the location in the address bar.
func (h *History) Current() domain.Location {
	return h.entries[h.index]
}

// Push records loc as a new entry without reloading the current screen.
// Forward entries are discarded.
func (h *History) Push(loc domain.Location) {
	h.entries = append(h.entries[:h.index+1], loc)
	h.index++
}

// Navigate records loc as a new entry that the caller loads as a fresh screen.
func (h *History) Navigate(loc domain.Location) domain.Location {
	h.Push(loc)
	return loc
}

// Replace overwrites the current entry, so Back skips it.
func (h *History) Replace(loc domain.Location) {
	h.entries[h.index] = loc
}

// Back moves one entry back and returns it. ok is false at the first entry.
func (h *History) Back() (loc domain.Location, ok bool) {
	if h.index == 0 {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

// Forward moves one entry forward and returns it. ok is false at the last entry.
func (h *History) Forward() (loc domain.Location, ok bool) {
	if h.index == len(h.entries)-1 {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

// CanGoBack reports whether Back would move.
func (h *History) CanGoBack() bool {
	return h.index > 0
}

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward() bool {
	return h.index < len(h.entries)-1
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
