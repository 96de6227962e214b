package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"movie-storefront/internal/app/listing"
	"movie-storefront/internal/app/service"
	"movie-storefront/internal/domain"
)

// loadWithBackLink runs load and the back-link lookup concurrently.
func loadWithBackLink(ctx context.Context, detail *service.DetailService, load func(context.Context) error) (domain.Location, error) {
	var back domain.Location
	var g errgroup.Group
	g.Go(func() error {
		back = detail.BackLink(ctx)
		return nil
	})
	g.Go(func() error {
		return load(ctx)
	})
	err := g.Wait()
	return back, err
}

// movieScreen is the single-movie page.
type movieScreen struct {
	env
	id      string
	loaded  bool
	movie   service.MovieView
	back    domain.Location
	err     error
	links   picker
	picking bool
}

func newMovieScreen(e env, id string) *movieScreen {
	return &movieScreen{env: e, id: id}
}

func (s *movieScreen) title() string { return "Movie" }

func (s *movieScreen) capturing() bool { return s.picking }

func (s *movieScreen) init() tea.Cmd {
	detail, ctx, id := s.deps.Detail, s.ctx, s.id
	return func() tea.Msg {
		var view service.MovieView
		back, err := loadWithBackLink(ctx, detail, func(ctx context.Context) error {
			var err error
			view, err = detail.Movie(ctx, id)
			return err
		})
		return movieLoadedMsg{view: view, back: back, err: err}
	}
}

func (s *movieScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case movieLoadedMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		s.loaded = true
		s.movie, s.back, s.err = msg.view, msg.back, msg.err
		s.links = picker{links: append(append([]listing.Link{}, s.movie.Genres...), s.movie.Stars...)}
		return nil

	case addedToCartMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		return flash(msg.message, msg.err != nil)

	case tea.KeyMsg:
		if s.picking {
			return s.pickKeys(msg)
		}
		switch msg.String() {
		case "a":
			if s.loaded && s.err == nil {
				return addToCart(s.env, s.movie.ID)
			}
		case "tab", "e":
			if len(s.links.links) > 0 {
				s.picking = true
			}
		case "b", "esc":
			return navigate(s.backLink())
		case "c":
			return navigate(domain.Location{Page: domain.PageCart})
		}
	}
	return nil
}

func (s *movieScreen) pickKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.picking = false
	case "left", "h", "shift+tab":
		s.links.move(-1)
	case "right", "l", "tab":
		s.links.move(1)
	case "enter":
		if link, ok := s.links.current(); ok && link.Active() {
			return navigate(link.Location)
		}
	}
	return nil
}

func (s *movieScreen) backLink() domain.Location {
	if s.back.IsZero() {
		return domain.Location{Page: domain.PageMovies}
	}
	return s.back
}

func (s *movieScreen) help() string {
	if s.picking {
		return "←/→ move  enter open  esc close"
	}
	return "a add to cart  tab links  b back to list  c cart"
}

func (s *movieScreen) view(int) string {
	if !s.loaded {
		return loadingStyle.Render("Loading movie...") + "\n"
	}
	if s.err != nil {
		return errorStyle.Render(s.err.Error()) + "\n"
	}

	m := s.movie
	genres := picker{links: s.links.links[:len(m.Genres)], cursor: s.links.cursor}
	stars := picker{links: s.links.links[len(m.Genres):], cursor: s.links.cursor - len(m.Genres)}

	var b strings.Builder
	b.WriteString(headingStyle.Render(m.Title+" ("+m.Year+")") + "\n")
	b.WriteString(labelStyle.Render("Director: ") + m.Director + "\n")
	b.WriteString(labelStyle.Render("Rating: ") + m.Rating + "\n")
	b.WriteString(labelStyle.Render("Genres: ") + orNA(genres.view(", ", s.picking)) + "\n")
	b.WriteString(labelStyle.Render("Stars: ") + orNA(stars.view(", ", s.picking)) + "\n")
	b.WriteString("\n" + linkStyle.Render("Back to list: "+s.backLink().String()) + "\n")
	return b.String()
}

// starScreen is the single-star page.
type starScreen struct {
	env
	id     string
	loaded bool
	star   service.StarView
	back   domain.Location
	err    error
	cursor int
}

func newStarScreen(e env, id string) *starScreen {
	return &starScreen{env: e, id: id}
}

func (s *starScreen) title() string { return "Star" }

func (s *starScreen) capturing() bool { return false }

func (s *starScreen) init() tea.Cmd {
	detail, ctx, id := s.deps.Detail, s.ctx, s.id
	return func() tea.Msg {
		var view service.StarView
		back, err := loadWithBackLink(ctx, detail, func(ctx context.Context) error {
			var err error
			view, err = detail.Star(ctx, id)
			return err
		})
		return starLoadedMsg{view: view, back: back, err: err}
	}
}

func (s *starScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case starLoadedMsg:
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		s.loaded = true
		s.star, s.back, s.err = msg.view, msg.back, msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.star.Movies)-1, 0))
		case "enter":
			if s.cursor < len(s.star.Movies) && s.star.Movies[s.cursor].Active() {
				return navigate(s.star.Movies[s.cursor].Location)
			}
		case "b", "esc":
			if s.back.IsZero() {
				return navigate(domain.Location{Page: domain.PageMovies})
			}
			return navigate(s.back)
		case "c":
			return navigate(domain.Location{Page: domain.PageCart})
		}
	}
	return nil
}

func (s *starScreen) help() string {
	return "↑/↓ move  enter open movie  b back to list  c cart"
}

func (s *starScreen) view(int) string {
	if !s.loaded {
		return loadingStyle.Render("Loading star...") + "\n"
	}
	if s.err != nil {
		return errorStyle.Render(s.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(s.star.Name) + "\n")
	b.WriteString(labelStyle.Render("Birth Year: ") + s.star.BirthYear + "\n")
	b.WriteString(labelStyle.Render("Movies:") + "\n")
	if s.star.Message != "" {
		b.WriteString("  " + loadingStyle.Render(s.star.Message) + "\n")
	}
	for i, m := range s.star.Movies {
		b.WriteString("  " + renderLink(m, i == s.cursor) + "\n")
	}
	return b.String()
}

func addToCart(e env, movieID string) tea.Cmd {
	cart, ctx := e.deps.Cart, e.ctx
	return func() tea.Msg {
		message, err := cart.Add(ctx, movieID)
		return addedToCartMsg{message: message, err: err}
	}
}

func orNA(s string) string {
	if s == "" {
		return listing.NotAvailable
	}
	return s
}
