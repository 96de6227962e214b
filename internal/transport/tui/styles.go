package tui

import "github.com/charmbracelet/lipgloss"

// Monochrome theme with adaptive colors for light and dark terminals.
var (
	bgBase = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	dim    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	cursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"})

	linkStyle = lipgloss.NewStyle().
			Underline(true)

	selectedLinkStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true)

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Faint(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(dim).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b00020", Dark: "#ff6b6b"})

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1b5e20", Dark: "#81c784"})

	loadingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(dim)

	flashStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase).
			Padding(0, 1)

	suggestionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)
