package listing

import (
	"fmt"

	"movie-storefront/internal/domain"
)

// NotAvailable is shown for empty cells.
const NotAvailable = "N/A"

// Link is a navigable label. A zero Location renders as plain text.
type Link struct {
	Label    string
	Location domain.Location
	Selected bool
}

// Active reports whether the link leads somewhere.
func (l Link) Active() bool {
	return !l.Location.IsZero()
}

// RowView is one rendered movie row.
type RowView struct {
	MovieID  string
	Title    Link
	Year     string
	Director string
	Rating   string
	Genres   []Link
	Stars    []Link

	// CanAddToCart is false when the row has no movie id.
	CanAddToCart bool
}

// ResultsView is the rendered results table plus the pagination controls.
type ResultsView struct {
	Rows []RowView

	// Message is the single explanatory row shown instead of Rows.
	Message string
	IsError bool

	PrevEnabled bool
	NextEnabled bool
	PageLabel   string
}

// IsEmpty reports whether nothing has been rendered yet.
func (v ResultsView) IsEmpty() bool {
	return len(v.Rows) == 0 && v.Message == "" && v.PageLabel == ""
}

// RenderResults builds the table for one listing page under state.
func RenderResults(page *domain.ResultPage, state domain.QueryState) ResultsView {
	current := page.CurrentPage
	if current < 1 {
		current = 1
	}

	view := ResultsView{
		PrevEnabled: current > 1,
		NextEnabled: page.HasMoreResults,
		PageLabel:   fmt.Sprintf("Page %d", current),
	}

	if len(page.Movies) == 0 {
		view.Message = state.EmptyResultMessage()
		view.NextEnabled = false
		return view
	}

	view.Rows = make([]RowView, 0, len(page.Movies))
	for _, m := range page.Movies {
		view.Rows = append(view.Rows, renderRow(m, state))
	}
	return view
}

// ErrorView is the single error row shown when a listing fetch fails.
func ErrorView(err error) ResultsView {
	return ResultsView{
		Message:   "Error loading movies: " + err.Error(),
		IsError:   true,
		PageLabel: "Error",
	}
}

func renderRow(m domain.Movie, state domain.QueryState) RowView {
	row := RowView{
		MovieID:      m.ID,
		Title:        Link{Label: m.Title},
		Year:         orNotAvailable(m.Year),
		Director:     orNotAvailable(m.Director),
		Rating:       orNotAvailable(m.Rating),
		CanAddToCart: m.ID != "",
	}
	if m.ID != "" {
		row.Title.Location = domain.MovieLocation(m.ID)
	}

	genres := m.Genres
	if len(genres) > domain.MaxRowGenres {
		genres = genres[:domain.MaxRowGenres]
	}
	for _, g := range genres {
		target := domain.MergeState(state, domain.Patch{domain.ParamGenre: g, domain.ParamPage: "1"})
		row.Genres = append(row.Genres, Link{Label: g, Location: domain.MoviesLocation(target)})
	}

	for _, s := range m.Stars {
		link := Link{Label: s.Name}
		if s.ID != "" {
			link.Location = domain.StarLocation(s.ID)
		}
		row.Stars = append(row.Stars, link)
	}

	return row
}

// BrowseLinks builds browse links for one filter parameter (genre or titleInitial).
// Each link starts a fresh browse: the one filter plus the current sort and page size, page 1.
// The link matching the active filter is marked selected.
func BrowseLinks(param string, values []string, state domain.QueryState) []Link {
	links := make([]Link, 0, len(values))
	for _, v := range values {
		links = append(links, Link{
			Label:    v,
			Location: domain.MoviesLocation(browseState(state, param, v)),
			Selected: activeFilter(state, param) == v,
		})
	}
	return links
}

func browseState(state domain.QueryState, param, value string) domain.QueryState {
	patch := domain.Patch{domain.ParamPage: "1"}
	for _, key := range domain.FilterParams {
		patch[key] = ""
	}
	patch[param] = value
	return domain.MergeState(state, patch)
}

func activeFilter(state domain.QueryState, param string) string {
	switch param {
	case domain.ParamGenre:
		return state.Genre
	case domain.ParamTitleInitial:
		return state.TitleInitial
	}
	return ""
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
