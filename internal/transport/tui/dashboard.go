package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"movie-storefront/internal/app/service"
	"movie-storefront/internal/domain"
)

type dashboardSection int

const (
	sectionAddStar dashboardSection = iota
	sectionAddMovie
	sectionMetadata
	dashboardSections
)

var sectionNames = [...]string{"Add Star", "Add Movie", "Metadata"}

const (
	fieldStarFormName = iota
	fieldStarFormBirthYear
)

const (
	fieldMovieTitle = iota
	fieldMovieYear
	fieldMovieDirector
	fieldMovieStar
	fieldMovieGenre
)

// dashboardScreen is the employee dashboard.
type dashboardScreen struct {
	env
	section   dashboardSection
	starForm  form
	movieForm form
	messages  [dashboardSections]string
	failed    [dashboardSections]bool
	metadata  service.MetadataView
}

func newDashboardScreen(e env) *dashboardScreen {
	return &dashboardScreen{
		env:       e,
		starForm:  newForm("Star Name *", "Birth Year"),
		movieForm: newForm("Title *", "Year *", "Director *", "Star Name *", "Genre *"),
	}
}

func (s *dashboardScreen) title() string { return "Employee Dashboard" }

func (s *dashboardScreen) capturing() bool { return s.section != sectionMetadata }

func (s *dashboardScreen) init() tea.Cmd {
	return s.starForm.activate()
}

func (s *dashboardScreen) activeForm() *form {
	switch s.section {
	case sectionAddStar:
		return &s.starForm
	case sectionAddMovie:
		return &s.movieForm
	}
	return nil
}

func (s *dashboardScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDoneMsg:
		s.messages[msg.section] = msg.message
		s.failed[msg.section] = msg.err != nil
		if msg.err != nil {
			if cmd, ok := loginRequired(msg.err); ok {
				return cmd
			}
			return nil
		}
		switch msg.section {
		case sectionAddStar:
			s.starForm.reset()
		case sectionAddMovie:
			s.movieForm.reset()
		}
		return nil

	case metadataLoadedMsg:
		s.metadata = msg.view
		s.failed[sectionMetadata] = msg.err != nil
		s.messages[sectionMetadata] = msg.view.Message
		if cmd, ok := loginRequired(msg.err); ok {
			return cmd
		}
		return nil

	case loginDoneMsg:
		if msg.err != nil {
			return flash(msg.message, true)
		}
		return replaceWith(msg.next)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			return s.switchSection((s.section + 1) % dashboardSections)
		case "ctrl+p":
			return s.switchSection((s.section + dashboardSections - 1) % dashboardSections)
		case "ctrl+l":
			return s.logout()
		}

		if s.section == sectionMetadata {
			if msg.String() == "enter" || msg.String() == "m" {
				return s.loadMetadata()
			}
			return nil
		}

		f := s.activeForm()
		switch msg.String() {
		case "tab", "down":
			return f.move(1)
		case "shift+tab", "up":
			return f.move(-1)
		case "enter":
			if f.focus < len(f.fields)-1 {
				return f.move(1)
			}
			return s.submit()
		}
	}

	if f := s.activeForm(); f != nil {
		return f.update(msg)
	}
	return nil
}

func (s *dashboardScreen) switchSection(next dashboardSection) tea.Cmd {
	if f := s.activeForm(); f != nil {
		f.deactivate()
	}
	s.section = next
	if f := s.activeForm(); f != nil {
		return f.activate()
	}
	return nil
}

func (s *dashboardScreen) submit() tea.Cmd {
	dash, ctx, section := s.deps.Dashboard, s.ctx, s.section

	switch section {
	case sectionAddStar:
		star := domain.StarForm{
			StarName:  s.starForm.value(fieldStarFormName),
			BirthYear: s.starForm.value(fieldStarFormBirthYear),
		}
		return func() tea.Msg {
			message, err := dash.AddStar(ctx, star)
			return dashboardDoneMsg{section: section, message: message, err: err}
		}
	case sectionAddMovie:
		movie := domain.MovieForm{
			Title:     s.movieForm.value(fieldMovieTitle),
			Year:      s.movieForm.value(fieldMovieYear),
			Director:  s.movieForm.value(fieldMovieDirector),
			StarName:  s.movieForm.value(fieldMovieStar),
			GenreName: s.movieForm.value(fieldMovieGenre),
		}
		return func() tea.Msg {
			message, err := dash.AddMovie(ctx, movie)
			return dashboardDoneMsg{section: section, message: message, err: err}
		}
	}
	return nil
}

func (s *dashboardScreen) loadMetadata() tea.Cmd {
	s.messages[sectionMetadata] = "Loading metadata..."
	s.failed[sectionMetadata] = false
	dash, ctx := s.deps.Dashboard, s.ctx
	return func() tea.Msg {
		view, err := dash.Metadata(ctx)
		return metadataLoadedMsg{view: view, err: err}
	}
}

func (s *dashboardScreen) logout() tea.Cmd {
	auth, ctx := s.deps.Auth, s.ctx
	return func() tea.Msg {
		next, message, err := auth.Logout(ctx)
		return loginDoneMsg{next: next, message: message, err: err}
	}
}

func (s *dashboardScreen) help() string {
	if s.section == sectionMetadata {
		return "enter load metadata  ctrl+n/ctrl+p section  ctrl+l logout"
	}
	return "tab next field  enter submit  ctrl+n/ctrl+p section  ctrl+l logout"
}

func (s *dashboardScreen) view(int) string {
	var b strings.Builder

	tabs := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		if dashboardSection(i) == s.section {
			tabs = append(tabs, selectedLinkStyle.Render(name))
			continue
		}
		tabs = append(tabs, name)
	}
	b.WriteString(strings.Join(tabs, "  ") + "\n\n")

	switch s.section {
	case sectionAddStar:
		b.WriteString(s.starForm.view())
	case sectionAddMovie:
		b.WriteString(s.movieForm.view())
	case sectionMetadata:
		b.WriteString(metadataView(s.metadata))
	}

	if msg := s.messages[s.section]; msg != "" {
		style := successStyle
		if s.failed[s.section] {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(msg) + "\n")
	}
	return b.String()
}

func metadataView(view service.MetadataView) string {
	var b strings.Builder
	for _, table := range view.Tables {
		b.WriteString(headingStyle.Render(table.Table) + "\n")
		b.WriteString(tableHeaderStyle.Render(cell("Attribute Name", 28)+cell("Type", 20)) + "\n")
		for _, attr := range table.Attributes {
			b.WriteString(cell(attr.Name, 28) + cell(attr.Type, 20) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
