package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortField represents the field to sort by.
type SortField string

const (
	SortFieldTitle  SortField = "title"
	SortFieldRating SortField = "rating"

	// SortFieldNone disables the secondary sort. It is never serialized.
	SortFieldNone SortField = "none"
)

// Query parameter names understood by the listing endpoint.
const (
	ParamTitle        = "title"
	ParamFTQuery      = "ft_query"
	ParamYear         = "year"
	ParamDirector     = "director"
	ParamStarName     = "star_name"
	ParamGenre        = "genre"
	ParamTitleInitial = "titleInitial"
	ParamSort1        = "sort1"
	ParamOrder1       = "order1"
	ParamSort2        = "sort2"
	ParamOrder2       = "order2"
	ParamLimit        = "limit"
	ParamPage         = "page"
)

// FilterParams are carried forward by every merge unless a patch clears them.
var FilterParams = []string{
	ParamTitle,
	ParamYear,
	ParamDirector,
	ParamStarName,
	ParamGenre,
	ParamTitleInitial,
	ParamFTQuery,
}

// PageSizes lists the accepted values of the limit parameter.
var PageSizes = []int{10, 25, 50, 100}

const (
	DefaultLimit  = 25
	DefaultPage   = 1
	DefaultSort1  = SortFieldRating
	DefaultOrder1 = SortOrderDesc
	DefaultSort2  = SortFieldTitle
	DefaultOrder2 = SortOrderAsc
)

// QueryState is the filter, sort and pagination state of the movie listing.
// It is serialized entirely as URL query parameters.
type QueryState struct {
	// Filters
	Title        string
	FTQuery      string
	Year         string
	Director     string
	StarName     string
	Genre        string
	TitleInitial string

	// Sorting. Sort2 is empty when the secondary sort is disabled.
	Sort1  SortField
	Order1 SortOrder
	Sort2  SortField
	Order2 SortOrder

	// Pagination
	Limit int
	Page  int
}

// DefaultQueryState returns the state of a listing with no query string.
func DefaultQueryState() QueryState {
	return QueryState{
		Sort1:  DefaultSort1,
		Order1: DefaultOrder1,
		Limit:  DefaultLimit,
		Page:   DefaultPage,
	}
}

// Patch is a set of query parameter updates. An empty value deletes the key.
type Patch map[string]string

// ParseState extracts a QueryState from a raw query string. It never fails:
// missing or invalid values fall back to their defaults and unknown keys are ignored.
func ParseState(rawQuery string) QueryState {
	// ParseQuery keeps every pair it could decode even when it returns an error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return stateFromValues(values)
}

// MergeState applies patch on top of current. Filter keys, limit and sort are carried
// forward from current; the secondary sort is carried only when current has one.
// The page is never carried and resets to 1 unless the patch sets it.
func MergeState(current QueryState, patch Patch) QueryState {
	values := url.Values{}
	for _, key := range FilterParams {
		if v := current.get(key); v != "" {
			values.Set(key, v)
		}
	}

	values.Set(ParamLimit, strconv.Itoa(current.Limit))
	values.Set(ParamSort1, string(current.Sort1))
	values.Set(ParamOrder1, string(current.Order1))
	if current.HasSecondarySort() {
		values.Set(ParamSort2, string(current.Sort2))
		values.Set(ParamOrder2, string(current.Order2))
	}

	for key, v := range patch {
		if v == "" {
			values.Del(key)
			continue
		}
		values.Set(key, v)
	}

	if values.Get(ParamSort2) == string(SortFieldNone) {
		values.Del(ParamSort2)
		values.Del(ParamOrder2)
	}

	return stateFromValues(values)
}

// Encode serializes the state as a query string in a stable key order.
// ParseState(s.Encode()) == s holds for every parsed or merged state.
func (s QueryState) Encode() string {
	var b strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	add(ParamTitle, s.Title)
	add(ParamFTQuery, s.FTQuery)
	add(ParamYear, s.Year)
	add(ParamDirector, s.Director)
	add(ParamStarName, s.StarName)
	add(ParamGenre, s.Genre)
	add(ParamTitleInitial, s.TitleInitial)
	add(ParamSort1, string(s.Sort1))
	add(ParamOrder1, string(s.Order1))
	if s.HasSecondarySort() {
		add(ParamSort2, string(s.Sort2))
		add(ParamOrder2, string(s.Order2))
	}
	add(ParamLimit, strconv.Itoa(s.Limit))
	add(ParamPage, strconv.Itoa(s.Page))

	return b.String()
}

// HasSecondarySort reports whether a secondary sort field is set.
func (s QueryState) HasSecondarySort() bool {
	return s.Sort2 != "" && s.Sort2 != SortFieldNone
}

// SecondarySort returns the secondary sort as shown by the sort controls, which
// display "title asc" as the preselected secondary sort when none is set.
func (s QueryState) SecondarySort() (SortField, SortOrder) {
	if !s.HasSecondarySort() {
		return SortFieldNone, DefaultOrder2
	}
	return s.Sort2, s.Order2
}

// SearchText returns the text shown in the title input. ft_query wins over title.
func (s QueryState) SearchText() string {
	if s.FTQuery != "" {
		return s.FTQuery
	}
	return s.Title
}

// EmptyResultMessage explains an empty listing in terms of the active filter.
func (s QueryState) EmptyResultMessage() string {
	switch {
	case s.Genre != "":
		return `No movies found for genre "` + s.Genre + `"`
	case s.TitleInitial != "":
		return `No movies found starting with "` + s.TitleInitial + `"`
	case s.SearchText() != "":
		return `No movies found matching "` + s.SearchText() + `"`
	default:
		return "No movies found matching the criteria"
	}
}

// SortSelection is the value of the four sort controls.
type SortSelection struct {
	Sort1  SortField
	Order1 SortOrder
	Sort2  SortField
	Order2 SortOrder
}

// Validate rejects a selection whose primary and secondary fields are the same.
func (s SortSelection) Validate() error {
	if s.Sort2 != SortFieldNone && s.Sort2 != "" && s.Sort1 == s.Sort2 {
		return ErrSameSortFields
	}
	return nil
}

// Patch converts the selection into listing parameters, clearing the secondary
// sort when it is disabled.
func (s SortSelection) Patch() Patch {
	p := Patch{
		ParamSort1:  string(s.Sort1),
		ParamOrder1: string(s.Order1),
		ParamSort2:  "",
		ParamOrder2: "",
	}
	if s.Sort2 != SortFieldNone && s.Sort2 != "" {
		p[ParamSort2] = string(s.Sort2)
		p[ParamOrder2] = string(s.Order2)
	}
	return p
}

// IsValidPageSize reports whether n is an accepted limit.
func IsValidPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

func (s QueryState) get(key string) string {
	switch key {
	case ParamTitle:
		return s.Title
	case ParamFTQuery:
		return s.FTQuery
	case ParamYear:
		return s.Year
	case ParamDirector:
		return s.Director
	case ParamStarName:
		return s.StarName
	case ParamGenre:
		return s.Genre
	case ParamTitleInitial:
		return s.TitleInitial
	}
	return ""
}

func stateFromValues(values url.Values) QueryState {
	s := QueryState{
		Title:        values.Get(ParamTitle),
		FTQuery:      values.Get(ParamFTQuery),
		Year:         values.Get(ParamYear),
		Director:     values.Get(ParamDirector),
		StarName:     values.Get(ParamStarName),
		Genre:        values.Get(ParamGenre),
		TitleInitial: values.Get(ParamTitleInitial),
		Sort1:        parseSortField(values.Get(ParamSort1), DefaultSort1),
		Order1:       parseSortOrder(values.Get(ParamOrder1), DefaultOrder1),
		Limit:        parseLimit(values.Get(ParamLimit)),
		Page:         parsePage(values.Get(ParamPage)),
	}

	if sort2 := parseSortField(values.Get(ParamSort2), ""); sort2 != "" {
		s.Sort2 = sort2
		s.Order2 = parseSortOrder(values.Get(ParamOrder2), DefaultOrder2)
	}

	return s
}

func parseSortField(raw string, fallback SortField) SortField {
	switch f := SortField(raw); f {
	case SortFieldTitle, SortFieldRating:
		return f
	}
	return fallback
}

func parseSortOrder(raw string, fallback SortOrder) SortOrder {
	switch o := SortOrder(raw); o {
	case SortOrderAsc, SortOrderDesc:
		return o
	}
	return fallback
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || !IsValidPageSize(n) {
		return DefaultLimit
	}
	return n
}

func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}
