package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/prefs"
)

// palette holds the colours for one theme
type palette struct {
	levels [5]lipgloss.Color
	dimmed lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	bar    lipgloss.Color
}

var palettes = map[prefs.Theme]palette{
	prefs.ThemeDark: {
		levels: [5]lipgloss.Color{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
		dimmed: "#30363d",
		text:   "#e6edf3",
		muted:  "#7d8590",
		accent: "#2f81f7",
		bar:    "#21262d",
	},
	prefs.ThemeLight: {
		levels: [5]lipgloss.Color{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
		dimmed: "#f6f8fa",
		text:   "#1f2328",
		muted:  "#656d76",
		accent: "#0969da",
		bar:    "#eaeef2",
	},
}

// styles is the rendered style set for one theme
type styles struct {
	cell      [5]lipgloss.Style
	dimmed    lipgloss.Style
	cursor    lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	errorText lipgloss.Style
	panelYear lipgloss.Style
	activeTab lipgloss.Style
	tab       lipgloss.Style
}

func newStyles(theme prefs.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[prefs.ThemeDark]
	}

	var s styles
	for i, c := range p.levels {
		s.cell[i] = lipgloss.NewStyle().Foreground(c)
	}
	s.dimmed = lipgloss.NewStyle().Foreground(p.dimmed)
	s.cursor = lipgloss.NewStyle().Foreground(p.accent).Bold(true)

	s.title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.accent).
		Padding(0, 1)

	s.label = lipgloss.NewStyle().Foreground(p.muted)

	s.status = lipgloss.NewStyle().
		Background(p.bar).
		Foreground(p.text).
		Padding(0, 1)

	s.help = lipgloss.NewStyle().Foreground(p.muted)
	s.errorText = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	s.panelYear = lipgloss.NewStyle().Bold(true).Foreground(p.text)

	s.activeTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.text).
		Background(p.accent).
		Padding(0, 1)
	s.tab = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)
	return s
}

// levelStyle returns the cell style for level
func (s styles) levelStyle(l grid.Level) lipgloss.Style {
	if !l.Valid() {
		return s.cell[0]
	}
	return s.cell[l]
}
