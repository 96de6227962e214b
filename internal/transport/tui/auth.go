package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"movie-storefront/internal/domain"
)

const (
	fieldEmail = iota
	fieldPassword
)

// loginScreen is the customer or employee login form.
type loginScreen struct {
	env
	employee   bool
	form       form
	message    string
	submitting bool
}

func newLoginScreen(e env, employee bool) *loginScreen {
	f := newForm("Email", "Password")
	f.password(fieldPassword)
	return &loginScreen{env: e, employee: employee, form: f}
}

func (s *loginScreen) title() string {
	if s.employee {
		return "Employee Login"
	}
	return "Login"
}

func (s *loginScreen) capturing() bool { return true }

func (s *loginScreen) init() tea.Cmd {
	return s.form.activate()
}

func (s *loginScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginDoneMsg:
		s.submitting = false
		if msg.err != nil {
			s.message = msg.message
			s.form.setValue(fieldPassword, "")
			return nil
		}
		if s.employee {
			return replaceWith(msg.next)
		}
		return navigate(msg.next)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s.form.move(1)
		case "shift+tab", "up":
			return s.form.move(-1)
		case "enter":
			if s.form.focus == fieldEmail {
				return s.form.move(1)
			}
			return s.submit()
		case "ctrl+e":
			page := domain.PageEmployeeLogin
			if s.employee {
				page = domain.PageLogin
			}
			return navigate(domain.Location{Page: page})
		}
	}
	return s.form.update(msg)
}

func (s *loginScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	s.message = ""

	auth, ctx, employee := s.deps.Auth, s.ctx, s.employee
	creds := domain.LoginForm{
		Email:    s.form.value(fieldEmail),
		Password: s.form.value(fieldPassword),
	}
	return func() tea.Msg {
		login := auth.Login
		if employee {
			login = auth.EmployeeLogin
		}
		next, message, err := login(ctx, creds)
		return loginDoneMsg{next: next, message: message, err: err}
	}
}

func (s *loginScreen) help() string {
	if s.employee {
		return "tab next field  enter log in  ctrl+e customer login"
	}
	return "tab next field  enter log in  ctrl+e employee login"
}

func (s *loginScreen) view(int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(s.title()) + "\n")
	b.WriteString(s.form.view())
	if s.submitting {
		b.WriteString(loadingStyle.Render("Logging in...") + "\n")
	}
	if s.message != "" {
		b.WriteString(errorStyle.Render(s.message) + "\n")
	}
	return b.String()
}
