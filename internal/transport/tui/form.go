package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-storefront/internal/app/listing"
)

// field is one labelled text input.
type field struct {
	label string
	input textinput.Model
}

// form is an ordered set of text inputs with one focused field.
type form struct {
	fields []field
	focus  int
	active bool
}

func newForm(labels ...string) form {
	f := form{fields: make([]field, 0, len(labels))}
	for _, label := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		f.fields = append(f.fields, field{label: label, input: ti})
	}
	return f
}

// activate focuses the current field.
func (f *form) activate() tea.Cmd {
	f.active = true
	return f.fields[f.focus].input.Focus()
}

// deactivate blurs every field.
func (f *form) deactivate() {
	f.active = false
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

// move shifts focus by delta, wrapping around.
func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// update forwards msg to the focused field.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
	f.fields[i].input.CursorEnd()
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
}

func (f *form) password(i int) {
	f.fields[i].input.EchoMode = textinput.EchoPassword
	f.fields[i].input.EchoCharacter = '*'
}

func (f form) view() string {
	width := 0
	for _, fl := range f.fields {
		width = max(width, lipgloss.Width(fl.label))
	}

	var b strings.Builder
	for i, fl := range f.fields {
		label := labelStyle.Width(width + 2).Render(fl.label + ":")
		marker := "  "
		if f.active && i == f.focus {
			marker = "> "
		}
		b.WriteString(marker + label + fl.input.View() + "\n")
	}
	return b.String()
}

// picker is a cursor over a row of links.
type picker struct {
	links  []listing.Link
	cursor int
}

func (p *picker) move(delta int) {
	if len(p.links) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.links)-1)
}

func (p picker) current() (listing.Link, bool) {
	if p.cursor < 0 || p.cursor >= len(p.links) {
		return listing.Link{}, false
	}
	return p.links[p.cursor], true
}

// view renders the links separated by sep. The cursor is shown only when focused.
func (p picker) view(sep string, focused bool) string {
	parts := make([]string, 0, len(p.links))
	for i, l := range p.links {
		parts = append(parts, renderLink(l, focused && i == p.cursor))
	}
	return strings.Join(parts, sep)
}

func renderLink(l listing.Link, cursor bool) string {
	switch {
	case cursor:
		return selectedLinkStyle.Render(l.Label)
	case l.Selected:
		return activeFilterStyle.Render("[" + l.Label + "]")
	case l.Active():
		return linkStyle.Render(l.Label)
	default:
		return l.Label
	}
}
