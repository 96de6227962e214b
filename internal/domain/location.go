package domain

import (
	"net/url"
	"strings"
)

// Page names a storefront screen.
type Page string

const (
	PageMovies        Page = "movies"
	PageMovie         Page = "movie"
	PageStar          Page = "star"
	PageCart          Page = "cart"
	PagePayment       Page = "payment"
	PageConfirmation  Page = "confirmation"
	PageLogin         Page = "login"
	PageEmployeeLogin Page = "employee-login"
	PageDashboard     Page = "dashboard"
)

// Location is an address-bar entry: a page plus its raw query string.
type Location struct {
	Page     Page
	RawQuery string
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.Page == ""
}

// String renders the location the way the address bar shows it.
func (l Location) String() string {
	if l.RawQuery == "" {
		return string(l.Page)
	}
	return string(l.Page) + "?" + l.RawQuery
}

// Query returns the decoded query parameters.
func (l Location) Query() url.Values {
	values, _ := url.ParseQuery(l.RawQuery)
	return values
}

// ParseLocation reads "page?query" text. Paths such as "/movies/movies.html?x=1"
// are reduced to their last segment without extension. Unknown pages map to the
// movie listing.
func ParseLocation(raw string) Location {
	path, query, _ := strings.Cut(strings.TrimSpace(raw), "?")
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(path, ".html")

	page := Page(path)
	switch path {
	case "singlemovie":
		page = PageMovie
	case "singlestar":
		page = PageStar
	case "shopping-cart":
		page = PageCart
	case "_dashboard_login":
		page = PageEmployeeLogin
	case "_dashboard":
		page = PageDashboard
	}

	switch page {
	case PageMovies, PageMovie, PageStar, PageCart, PagePayment, PageConfirmation,
		PageLogin, PageEmployeeLogin, PageDashboard:
	default:
		page = PageMovies
	}

	return Location{Page: page, RawQuery: query}
}

// MoviesLocation returns the listing location for a state.
func MoviesLocation(s QueryState) Location {
	return Location{Page: PageMovies, RawQuery: s.Encode()}
}

// MovieLocation returns the single-movie location for id.
func MovieLocation(id string) Location {
	return Location{Page: PageMovie, RawQuery: url.Values{"id": {id}}.Encode()}
}

// StarLocation returns the single-star location for id.
func StarLocation(id string) Location {
	return Location{Page: PageStar, RawQuery: url.Values{"id": {id}}.Encode()}
}

// GenreLocation returns the listing filtered to a single genre, page 1.
func GenreLocation(genre string) Location {
	return Location{Page: PageMovies, RawQuery: url.Values{ParamGenre: {genre}, ParamPage: {"1"}}.Encode()}
}
