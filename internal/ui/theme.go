package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	TopBar     lipgloss.Style
	StatusBar  lipgloss.Style
	NavButton  lipgloss.Style
	NavActive  lipgloss.Style
	Dot        lipgloss.Style
	DotActive  lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Hint       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Selected   lipgloss.Style
	DropTarget lipgloss.Style
	Card       lipgloss.Style
	CardFocus  lipgloss.Style
}

type palette struct {
	accent, text, muted, surface string
}

var palettes = map[string]palette{
	"default": {accent: "#89B4FA", text: "#cdd6f4", muted: "#585b70", surface: "#313244"},
	"green":   {accent: "#a6e3a1", text: "#94e2d5", muted: "#585b70", surface: "#1e1e2e"},
	"purple":  {accent: "#cba6f7", text: "#f5c2e7", muted: "#585b70", surface: "#313244"},
}

// ThemeFor returns the named theme, falling back to "default".
func ThemeFor(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}
	accent := lipgloss.Color(p.accent)
	muted := lipgloss.Color(p.muted)

	return Theme{
		TopBar:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true).Padding(0, 1),
		StatusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Background(lipgloss.Color(p.surface)).Padding(0, 1),
		NavButton:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Align(lipgloss.Center),
		NavActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(accent).Bold(true).Align(lipgloss.Center),
		Dot:        lipgloss.NewStyle().Foreground(muted),
		DotActive:  lipgloss.NewStyle().Foreground(accent),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
		Value:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
		Hint:       lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		DropTarget: lipgloss.NewStyle().Underline(true).Foreground(accent),
		Card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		CardFocus:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
	}
}
