package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"movie-storefront/internal/app/autocomplete"
	"movie-storefront/internal/app/listing"
	"movie-storefront/internal/domain"
)

// sameSortAlert is shown when the sort editor selects one field twice.
const sameSortAlert = "Primary and Secondary sort fields cannot be the same."

// Search form fields.
const (
	fieldTitle = iota
	fieldYear
	fieldDirector
	fieldStarName
)

type moviesMode int

const (
	modeTable moviesMode = iota
	modeSearch
	modeSort
	modeGenres
	modeInitials
	modeRowLinks
)

// moviesScreen is the movie listing.
type moviesScreen struct {
	env
	start   domain.Location
	listing *listing.Controller
	suggest *autocomplete.Controller

	mode   moviesMode
	cursor int
	search form
	sort   sortEditor

	initialNames []string
	genreNames   []string
	initials     picker
	genres       picker
	rowLinks     picker
	browseErr    string
}

func newMoviesScreen(e env, loc domain.Location) *moviesScreen {
	e.deps.Cache.Purge()
	return &moviesScreen{
		env:     e,
		start:   loc,
		listing: listing.New(e.deps.Catalog, e.history, e.deps.Validator, e.deps.Logger.Named("listing"), listing.WithTokens(e.ids)),
		suggest: autocomplete.New(e.deps.Catalog, e.deps.Cache, e.deps.Logger.Named("autocomplete"), autocomplete.WithTickets(e.ids)),
		search:  newForm("Title", "Year", "Director", "Star"),
	}
}

func (s *moviesScreen) title() string { return "Movies" }

func (s *moviesScreen) capturing() bool { return s.mode != modeTable }

func (s *moviesScreen) init() tea.Cmd {
	req := s.listing.Load(s.start)
	s.syncControls()
	return tea.Batch(s.fetch(req), s.loadBrowse())
}

func (s *moviesScreen) restore(loc domain.Location) tea.Cmd {
	s.leaveMode()
	req := s.listing.Load(loc)
	s.syncControls()
	return s.fetch(req)
}

// syncControls shows the current state in the search form and sort editor.
func (s *moviesScreen) syncControls() {
	state := s.listing.State()
	s.search.setValue(fieldTitle, state.SearchText())
	s.search.setValue(fieldYear, state.Year)
	s.search.setValue(fieldDirector, state.Director)
	s.search.setValue(fieldStarName, state.StarName)
	s.sort = newSortEditor(state)
	s.refreshBrowse()
}

func (s *moviesScreen) refreshBrowse() {
	state := s.listing.State()
	s.initials.links = listing.BrowseLinks(domain.ParamTitleInitial, s.initialNames, state)
	s.genres.links = listing.BrowseLinks(domain.ParamGenre, s.genreNames, state)
}

func (s *moviesScreen) fetch(req listing.Request) tea.Cmd {
	ctrl, ctx := s.listing, s.ctx
	return func() tea.Msg {
		return listingLoadedMsg{result: ctrl.Fetch(ctx, req)}
	}
}

// loadBrowse fetches both browse lists concurrently. A failure of one list
// does not cancel the other.
func (s *moviesScreen) loadBrowse() tea.Cmd {
	src, ctx := s.deps.Catalog, s.ctx
	return func() tea.Msg {
		var msg browseLoadedMsg
		var g errgroup.Group
		g.Go(func() error {
			var err error
			msg.initials, err = src.TitleInitials(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.genres, err = src.Genres(ctx)
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

func (s *moviesScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listingLoadedMsg:
		switch s.listing.Deliver(msg.result) {
		case listing.OutcomeLoginRequired:
			return navigate(domain.Location{Page: domain.PageLogin})
		case listing.OutcomeStale:
			return nil
		}
		s.cursor = min(s.cursor, max(len(s.listing.View().Rows)-1, 0))
		s.refreshBrowse()
		return nil

	case browseLoadedMsg:
		s.initialNames, s.genreNames = msg.initials, msg.genres
		s.browseErr = ""
		if msg.err != nil {
			if cmd, ok := loginRequired(msg.err); ok {
				return cmd
			}
			s.deps.Logger.Error("error fetching browse lists", zap.Error(msg.err))
			s.browseErr = "Error loading browse lists: " + msg.err.Error()
		}
		s.refreshBrowse()
		return nil

	case suggestDueMsg:
		if s.suggest.Due(msg.ticket) == autocomplete.LookupFetch {
			return s.fetchSuggestions(msg.ticket)
		}
		return nil

	case suggestionsLoadedMsg:
		s.suggest.Deliver(msg.ticket, msg.suggestions, msg.err)
		return nil

	case blurExpiredMsg:
		s.suggest.BlurExpired(msg.token)
		return nil

	case addedToCartMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		return flash(msg.message, msg.err != nil)

	case tea.KeyMsg:
		switch s.mode {
		case modeSearch:
			return s.searchKeys(msg)
		case modeSort:
			return s.sortKeys(msg)
		case modeGenres:
			return s.pickerKeys(msg, &s.genres)
		case modeInitials:
			return s.pickerKeys(msg, &s.initials)
		case modeRowLinks:
			return s.pickerKeys(msg, &s.rowLinks)
		default:
			return s.tableKeys(msg)
		}
	}

	if s.mode == modeSearch {
		return s.search.update(msg)
	}
	return nil
}

func (s *moviesScreen) tableKeys(msg tea.KeyMsg) tea.Cmd {
	view := s.listing.View()

	switch msg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(view.Rows)-1, 0))
	case "enter":
		if row, ok := s.currentRow(); ok && row.Title.Active() {
			return navigate(row.Title.Location)
		}
	case "a":
		if row, ok := s.currentRow(); ok && row.CanAddToCart {
			return addToCart(s.env, row.MovieID)
		}
	case "n":
		if view.NextEnabled {
			return s.begin(s.listing.NextPage())
		}
	case "p":
		if req, ok := s.listing.PrevPage(); ok {
			return s.begin(req)
		}
	case "l":
		return s.begin(s.listing.SetPageSize(nextPageSize(s.listing.State().Limit)))
	case "r":
		return s.begin(s.listing.Reset())
	case "R":
		return s.fetch(s.listing.Reload())
	case "/":
		s.mode = modeSearch
		s.search.focus = fieldTitle
		s.suggest.Focus()
		return s.search.activate()
	case "o":
		s.mode = modeSort
		s.sort = newSortEditor(s.listing.State())
	case "g":
		s.mode = modeGenres
	case "i":
		s.mode = modeInitials
	case "e":
		if row, ok := s.currentRow(); ok {
			s.rowLinks = picker{links: append(append([]listing.Link{}, row.Genres...), row.Stars...)}
			if len(s.rowLinks.links) > 0 {
				s.mode = modeRowLinks
			}
		}
	case "c":
		return navigate(domain.Location{Page: domain.PageCart})
	}
	return nil
}

func (s *moviesScreen) begin(req listing.Request) tea.Cmd {
	s.cursor = 0
	s.refreshBrowse()
	return s.fetch(req)
}

func (s *moviesScreen) currentRow() (listing.RowView, bool) {
	rows := s.listing.View().Rows
	if s.cursor < 0 || s.cursor >= len(rows) {
		return listing.RowView{}, false
	}
	return rows[s.cursor], true
}

func (s *moviesScreen) searchKeys(msg tea.KeyMsg) tea.Cmd {
	onTitle := s.search.focus == fieldTitle

	switch msg.String() {
	case "esc":
		if onTitle && s.suggest.Visible() {
			s.suggest.Key(autocomplete.KeyEscape)
			return nil
		}
		return s.leaveSearch()
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		var blur tea.Cmd
		if onTitle {
			blur = s.blurTitle()
		}
		cmd := s.search.move(delta)
		if s.search.focus == fieldTitle {
			s.suggest.Focus()
		}
		return tea.Batch(blur, cmd)
	case "up", "down":
		if !onTitle {
			return nil
		}
		key := autocomplete.KeyDown
		if msg.String() == "up" {
			key = autocomplete.KeyUp
		}
		s.suggest.Key(key)
		if s.suggest.Selected() >= 0 {
			s.search.setValue(fieldTitle, s.suggest.Value())
		}
		return nil
	case "enter":
		if onTitle {
			switch s.suggest.Key(autocomplete.KeyEnter) {
			case autocomplete.ActionOpen:
				sel, _ := s.suggest.Selection()
				return navigate(domain.MovieLocation(sel.ID))
			case autocomplete.ActionNone:
				return nil
			}
		}
		return s.submit()
	}

	before := s.search.value(fieldTitle)
	cmd := s.search.update(msg)
	if onTitle && s.search.value(fieldTitle) != before {
		if ticket, ok := s.suggest.Input(s.search.value(fieldTitle)); ok {
			cmd = tea.Batch(cmd, tea.Tick(autocomplete.DebounceDelay, func(time.Time) tea.Msg {
				return suggestDueMsg{ticket: ticket}
			}))
		}
	}
	return cmd
}

func (s *moviesScreen) blurTitle() tea.Cmd {
	token := s.suggest.Blur()
	return tea.Tick(autocomplete.BlurGrace, func(time.Time) tea.Msg {
		return blurExpiredMsg{token: token}
	})
}

func (s *moviesScreen) leaveSearch() tea.Cmd {
	var cmd tea.Cmd
	if s.search.focus == fieldTitle {
		cmd = s.blurTitle()
	}
	s.leaveMode()
	return cmd
}

func (s *moviesScreen) leaveMode() {
	s.mode = modeTable
	s.search.deactivate()
}

func (s *moviesScreen) submit() tea.Cmd {
	req, err := s.listing.Submit(domain.SearchForm{
		Title:    s.search.value(fieldTitle),
		Year:     s.search.value(fieldYear),
		Director: s.search.value(fieldDirector),
		StarName: s.search.value(fieldStarName),
	})
	if err != nil {
		return flash(err.Error(), true)
	}

	s.suggest.Clear()
	s.leaveMode()
	return s.begin(req)
}

func (s *moviesScreen) fetchSuggestions(ticket autocomplete.Ticket) tea.Cmd {
	ac, ctx := s.suggest, s.ctx
	return func() tea.Msg {
		suggestions, err := ac.Fetch(ctx, ticket.Query)
		return suggestionsLoadedMsg{ticket: ticket, suggestions: suggestions, err: err}
	}
}

func (s *moviesScreen) sortKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = modeTable
	case "tab", "down":
		s.sort.focus = (s.sort.focus + 1) % sortControls
	case "shift+tab", "up":
		s.sort.focus = (s.sort.focus + sortControls - 1) % sortControls
	case "left", "right", " ":
		s.sort.cycle()
	case "enter":
		req, err := s.listing.ApplySort(s.sort.sel)
		if err != nil {
			return flash(sameSortAlert, true)
		}
		s.mode = modeTable
		return s.begin(req)
	}
	return nil
}

func (s *moviesScreen) pickerKeys(msg tea.KeyMsg, p *picker) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = modeTable
	case "left", "h", "shift+tab":
		p.move(-1)
	case "right", "l", "tab":
		p.move(1)
	case "enter":
		link, ok := p.current()
		if !ok || !link.Active() {
			return nil
		}
		s.mode = modeTable
		if link.Location.Page == domain.PageMovies {
			return s.begin(s.listing.Visit(link.Location))
		}
		return navigate(link.Location)
	}
	return nil
}

func nextPageSize(current int) int {
	for i, size := range domain.PageSizes {
		if size == current {
			return domain.PageSizes[(i+1)%len(domain.PageSizes)]
		}
	}
	return domain.DefaultLimit
}

func (s *moviesScreen) help() string {
	switch s.mode {
	case modeSearch:
		return "tab next field  ↑/↓ suggestions  enter search  esc close"
	case modeSort:
		return "tab next control  ←/→ change  enter apply  esc cancel"
	case modeGenres, modeInitials, modeRowLinks:
		return "←/→ move  enter open  esc close"
	}
	return "↑/↓ move  enter open  a add to cart  n/p page  l page size  / search  o sort  g genres  i initials  e row links  r reset  c cart"
}

func (s *moviesScreen) view(width int) string {
	var b strings.Builder
	state := s.listing.State()

	b.WriteString(s.search.view())
	if s.suggest.Visible() {
		b.WriteString(s.suggestionsView())
	}
	b.WriteString("\n")

	b.WriteString(s.sort.view(s.mode == modeSort))
	b.WriteString(fmt.Sprintf("   Page size: %d\n", state.Limit))

	b.WriteString(labelStyle.Render("Browse by title: ") + s.initials.view(" ", s.mode == modeInitials) + "\n")
	b.WriteString(labelStyle.Render("Browse by genre: ") + s.genres.view(" ", s.mode == modeGenres) + "\n")
	if s.browseErr != "" {
		b.WriteString(errorStyle.Render(s.browseErr) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.tableView(width))
	b.WriteString("\n")
	b.WriteString(paginationView(s.listing.View(), s.listing.Loading()))
	b.WriteString("\n")
	return b.String()
}

func (s *moviesScreen) suggestionsView() string {
	lines := make([]string, 0, len(s.suggest.Suggestions()))
	for i, sug := range s.suggest.Suggestions() {
		if i == s.suggest.Selected() {
			lines = append(lines, selectedLinkStyle.Render(sug.Title))
			continue
		}
		lines = append(lines, sug.Title)
	}
	return suggestionBoxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// Column widths of the results table, excluding genres and stars which take the rest.
const (
	colTitle    = 32
	colYear     = 6
	colDirector = 20
	colRating   = 7
	colGenres   = 28
)

func (s *moviesScreen) tableView(width int) string {
	view := s.listing.View()
	if view.IsEmpty() {
		return loadingStyle.Render("Loading movies...") + "\n"
	}

	starsWidth := max(width-colTitle-colYear-colDirector-colRating-colGenres-2, 10)

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(
		cell("Title", colTitle) + cell("Year", colYear) + cell("Director", colDirector) +
			cell("Rating", colRating) + cell("Genres", colGenres) + cell("Stars", starsWidth),
	))
	b.WriteString("\n")

	if view.Message != "" {
		style := loadingStyle
		if view.IsError {
			style = errorStyle
		}
		b.WriteString(style.Render(view.Message) + "\n")
		return b.String()
	}

	for i, row := range view.Rows {
		line := cell(row.Title.Label, colTitle) + cell(row.Year, colYear) + cell(row.Director, colDirector) +
			cell(row.Rating, colRating) + cell(joinLabels(row.Genres), colGenres) + cell(joinLabels(row.Stars), starsWidth)
		if i == s.cursor && s.mode == modeTable {
			line = cursorRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if i == s.cursor && s.mode == modeRowLinks {
			b.WriteString("  " + s.rowLinks.view(", ", true) + "\n")
		}
	}
	return b.String()
}

func paginationView(view listing.ResultsView, loading bool) string {
	prev, next := "[p] Prev", "[n] Next"
	if !view.PrevEnabled {
		prev = disabledStyle.Render(prev)
	}
	if !view.NextEnabled {
		next = disabledStyle.Render(next)
	}
	line := prev + "  " + view.PageLabel + "  " + next
	if loading {
		line += "  " + loadingStyle.Render("loading...")
	}
	return line
}

func joinLabels(links []listing.Link) string {
	labels := make([]string, 0, len(links))
	for _, l := range links {
		labels = append(labels, l.Label)
	}
	if len(labels) == 0 {
		return listing.NotAvailable
	}
	return strings.Join(labels, ", ")
}

// cell truncates or pads s to exactly w terminal columns plus one separator space.
func cell(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w-1, "…"), w-1) + " "
}
