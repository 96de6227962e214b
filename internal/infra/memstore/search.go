package memstore

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"movie-storefront/internal/domain"
)

// listingStars is how many stars a listing row carries.
const listingStars = 3

// suggestionLimit caps the autocomplete answer.
const suggestionLimit = 10

// ListingRow is one movie of a listing page with its top-billed stars.
type ListingRow struct {
	Movie MovieRecord
	Stars []StarRecord
}

// Search filters, sorts and pages the catalog. hasMore is true when the page is full.
func (s *Store) Search(q domain.QueryState) (rows []ListingRow, hasMore bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*MovieRecord, 0, len(s.movies))
	for _, m := range s.movies {
		if s.matches(m, q) {
			matched = append(matched, m)
		}
	}
	sort.SliceStable(matched, listingOrder(matched, q))

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	page := max(q.Page, 1)
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, false
	}
	matched = matched[offset:min(offset+limit, len(matched))]

	rows = make([]ListingRow, 0, len(matched))
	for _, m := range matched {
		rows = append(rows, ListingRow{Movie: *m, Stars: s.rankedStars(m, listingStars)})
	}
	return rows, len(rows) == limit
}

func (s *Store) matches(m *MovieRecord, q domain.QueryState) bool {
	if q.FTQuery != "" && !prefixMatch(m.Title, q.FTQuery) {
		return false
	}
	if q.Title != "" && !containsFold(m.Title, q.Title) {
		return false
	}
	if q.Genre != "" && !hasGenre(m, q.Genre) {
		return false
	}
	if q.Year != "" {
		// an unparsable year is ignored rather than matching nothing
		if year, err := strconv.Atoi(strings.TrimSpace(q.Year)); err == nil && m.Year != year {
			return false
		}
	}
	if q.Director != "" && !containsFold(m.Director, q.Director) {
		return false
	}
	if q.StarName != "" && !s.hasStarNamed(m, q.StarName) {
		return false
	}
	if q.TitleInitial != "" && !hasInitial(m.Title, q.TitleInitial) {
		return false
	}
	return true
}

func (s *Store) hasStarNamed(m *MovieRecord, name string) bool {
	for _, id := range m.StarIDs {
		if containsFold(s.stars[id].Name, name) {
			return true
		}
	}
	return false
}

func hasGenre(m *MovieRecord, genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// hasInitial matches a leading letter or digit case-insensitively. "*" matches
// titles that start with anything else.
func hasInitial(title, initial string) bool {
	if title == "" {
		return false
	}
	first := []rune(title)[0]
	if initial == "*" {
		return !unicode.IsLetter(first) && !unicode.IsDigit(first)
	}
	return strings.HasPrefix(strings.ToLower(title), strings.ToLower(initial))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// prefixMatch reports whether every keyword of query starts some word of title.
func prefixMatch(title, query string) bool {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, kw := range strings.Fields(strings.ToLower(query)) {
		found := false
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type sortKey struct {
	field domain.SortField
	desc  bool
}

// sortKeys resolves the ORDER BY list. An unusable secondary sort on the same
// column is dropped; with no valid primary the listing uses rating desc, title asc.
func sortKeys(q domain.QueryState) []sortKey {
	valid := func(f domain.SortField, o domain.SortOrder) bool {
		return (f == domain.SortFieldRating || f == domain.SortFieldTitle) &&
			(o == domain.SortOrderAsc || o == domain.SortOrderDesc)
	}

	var keys []sortKey
	if valid(q.Sort1, q.Order1) {
		keys = append(keys, sortKey{field: q.Sort1, desc: q.Order1 == domain.SortOrderDesc})
	}
	if valid(q.Sort2, q.Order2) && (len(keys) == 0 || q.Sort2 != q.Sort1) {
		keys = append(keys, sortKey{field: q.Sort2, desc: q.Order2 == domain.SortOrderDesc})
	}
	if len(keys) == 0 {
		keys = []sortKey{
			{field: domain.SortFieldRating, desc: true},
			{field: domain.SortFieldTitle},
		}
	}
	return keys
}

func listingOrder(movies []*MovieRecord, q domain.QueryState) func(i, j int) bool {
	keys := sortKeys(q)
	return func(i, j int) bool {
		a, b := movies[i], movies[j]
		for _, k := range keys {
			var c int
			switch k.field {
			case domain.SortFieldRating:
				c = compareFloat(ratingOf(a), ratingOf(b))
			case domain.SortFieldTitle:
				c = strings.Compare(a.Title, b.Title)
			}
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	}
}

func ratingOf(m *MovieRecord) float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// TitleInitials returns the distinct leading characters of titles: digits and
// upper-case letters in order, then "*" when some title starts with a symbol.
func (s *Store) TitleInitials() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	symbols := false
	for _, m := range s.movies {
		if m.Title == "" {
			continue
		}
		first := []rune(m.Title)[0]
		if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
			symbols = true
			continue
		}
		seen[string(unicode.ToUpper(first))] = true
	}

	initials := make([]string, 0, len(seen)+1)
	for k := range seen {
		initials = append(initials, k)
	}
	sort.Strings(initials)
	if symbols {
		initials = append(initials, "*")
	}
	return initials
}

// Genres returns the distinct genre names in alphabetical order.
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, m := range s.movies {
		for _, g := range m.Genres {
			seen[g] = true
		}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// Suggest returns up to ten movies whose title words start with every keyword of query.
func (s *Store) Suggest(query string) []MovieRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(query) == "" {
		return nil
	}
	var out []MovieRecord
	for _, m := range s.movies {
		if prefixMatch(m.Title, query) {
			out = append(out, *m)
			if len(out) == suggestionLimit {
				break
			}
		}
	}
	return out
}
