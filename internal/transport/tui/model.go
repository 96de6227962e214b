// Package tui provides the terminal storefront. Each history location is shown
// by one screen; the root model owns the address bar and the status line.
package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"movie-storefront/internal/app/nav"
	"movie-storefront/internal/app/service"
	"movie-storefront/internal/domain"
	"movie-storefront/internal/validator"
)

// flashDuration is how long a status-line message stays visible.
const flashDuration = 4 * time.Second

// Deps are the collaborators shared by every screen.
type Deps struct {
	Catalog   domain.Catalog
	Cache     domain.SuggestionCache
	Cart      *service.CartService
	Checkout  *service.CheckoutService
	Detail    *service.DetailService
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Validator *validator.Validator
	Logger    *zap.Logger
}

// Options configures the TUI.
type Options struct {
	// Start is the first location shown.
	Start domain.Location
	// Context bounds every catalog call made by the TUI.
	Context context.Context
}

// env is what a screen needs from the root model.
type env struct {
	deps    Deps
	ctx     context.Context
	history *nav.History
	// ids outlives screens so a rebuilt screen never reuses a request id.
	ids *atomic.Uint64
}

// screen renders one location.
type screen interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width int) string
	title() string
	help() string
	// capturing reports whether keys go to a text input or picker, so that
	// single-letter global keys must not fire.
	capturing() bool
}

// restorer is implemented by screens that reload in place when back/forward
// lands on a location of the same page.
type restorer interface {
	restore(loc domain.Location) tea.Cmd
}

// Model is the root TUI model following the Elm architecture.
type Model struct {
	env
	screen screen

	width  int
	height int

	flashMessage string
	flashError   bool
	flashID      uint64

	quitting bool
}

// New creates the root model positioned at opts.Start.
func New(deps Deps, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	start := opts.Start
	if start.IsZero() {
		start = domain.Location{Page: domain.PageMovies}
	}

	m := Model{env: env{deps: deps, ctx: ctx, history: nav.New(start), ids: new(atomic.Uint64)}}
	m.screen = m.build(start)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.screen.init()
}

// Location returns the address-bar location.
func (m Model) Location() domain.Location {
	return m.history.Current()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "alt+left":
			return m.back()
		case "alt+right":
			return m.forward()
		}
		if !m.screen.capturing() {
			switch msg.String() {
			case "q":
				m.quitting = true
				return m, tea.Quit
			case "[":
				return m.back()
			case "]":
				return m.forward()
			}
		}

	case navigateMsg:
		return m.navigate(msg.loc, msg.replace)

	case flashMsg:
		return m.showFlash(msg.text, msg.isError)

	case flashClearMsg:
		if msg.id == m.flashID {
			m.flashMessage = ""
		}
		return m, nil
	}

	return m, m.screen.update(msg)
}

// navigate loads loc as a fresh screen.
func (m Model) navigate(loc domain.Location, replace bool) (tea.Model, tea.Cmd) {
	if replace {
		m.history.Replace(loc)
	} else {
		m.history.Navigate(loc)
	}

	m.deps.Logger.Debug("navigate", zap.String("location", loc.String()), zap.Bool("replace", replace))

	m.screen = m.build(loc)
	return m, m.screen.init()
}

func (m Model) back() (tea.Model, tea.Cmd) {
	loc, ok := m.history.Back()
	if !ok {
		return m.showFlash("No previous page", false)
	}
	return m.land(loc)
}

func (m Model) forward() (tea.Model, tea.Cmd) {
	loc, ok := m.history.Forward()
	if !ok {
		return m.showFlash("No next page", false)
	}
	return m.land(loc)
}

// land shows loc after back/forward. A listing entry re-parses its state and
// reloads on the same screen; other pages are rebuilt.
func (m Model) land(loc domain.Location) (tea.Model, tea.Cmd) {
	if r, ok := m.screen.(restorer); ok && screenPage(m.screen) == loc.Page {
		return m, r.restore(loc)
	}
	m.screen = m.build(loc)
	return m, m.screen.init()
}

func (m Model) build(loc domain.Location) screen {
	id := loc.Query().Get("id")
	switch loc.Page {
	case domain.PageMovie:
		return newMovieScreen(m.env, id)
	case domain.PageStar:
		return newStarScreen(m.env, id)
	case domain.PageCart:
		return newCartScreen(m.env)
	case domain.PagePayment:
		return newPaymentScreen(m.env)
	case domain.PageConfirmation:
		return newConfirmationScreen(m.env)
	case domain.PageLogin:
		return newLoginScreen(m.env, false)
	case domain.PageEmployeeLogin:
		return newLoginScreen(m.env, true)
	case domain.PageDashboard:
		return newDashboardScreen(m.env)
	default:
		return newMoviesScreen(m.env, loc)
	}
}

func screenPage(s screen) domain.Page {
	if _, ok := s.(*moviesScreen); ok {
		return domain.PageMovies
	}
	return ""
}

// showFlash displays a temporary status-line message.
func (m Model) showFlash(text string, isError bool) (tea.Model, tea.Cmd) {
	m.flashID++
	m.flashMessage = text
	m.flashError = isError
	id := m.flashID
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{id: id}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 120
	}

	header := titleBarStyle.Width(width).Render("Movie Storefront | " + m.screen.title())
	address := footerStyle.Render("location: " + m.history.Current().String())

	status := ""
	if m.flashMessage != "" {
		style := flashStyle
		if m.flashError {
			style = style.Inherit(errorStyle)
		}
		status = style.Render(m.flashMessage)
	}

	help := footerStyle.Render(m.screen.help() + " | [/] back/forward  q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		address,
		"",
		m.screen.view(width),
		status,
		help,
	)
}

// navigate returns a command that loads loc.
func navigate(loc domain.Location) tea.Cmd {
	return func() tea.Msg { return navigateMsg{loc: loc} }
}

// replaceWith returns a command that replaces the current entry with loc.
func replaceWith(loc domain.Location) tea.Cmd {
	return func() tea.Msg { return navigateMsg{loc: loc, replace: true} }
}

// flash returns a command that shows text on the status line.
func flash(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text, isError: isError} }
}

// loginRequired reports whether err means the session must log in first,
// and returns the redirect when it does.
func loginRequired(err error) (tea.Cmd, bool) {
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return navigate(domain.Location{Page: domain.PageLogin}), true
	}
	return nil, false
}
