package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/script"
)

const (
	cellGlyph   = "■"
	cursorGlyph = "◆"
	dimGlyph    = "·"
)

var rowLabels = [calendar.DaysPerWeek]string{"", "Mon", "", "Wed", "", "Fri", ""}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.mode {
	case modeExport:
		b.WriteString(m.exportView())
	default:
		b.WriteString(m.gridView())
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) header() string {
	start, end := m.sess.Bounds()
	rangeText := fmt.Sprintf("%s → %s", start, end)
	if !m.sess.Range().Valid() {
		rangeText = "invalid range"
	}

	pen := "up"
	if m.penDown {
		pen = "down"
	}

	info := fmt.Sprintf("%s | level %d | pen %s | random %d | weight %d | planned %d",
		rangeText,
		m.sess.CurrentLevel(),
		pen,
		m.sess.RandomizeCount(),
		m.sess.TotalWeight(),
		m.sess.Plan().TotalCommits(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.title.Render("GitArt"),
		m.styles.label.Render(info),
	)
}

func (m Model) gridView() string {
	panels := m.panels()
	if len(panels) == 0 {
		return m.styles.label.Render("  nothing to show: the date range is empty or invalid (press d to edit)") + "\n"
	}

	var b strings.Builder
	for i, p := range panels {
		b.WriteString(m.renderPanel(p, i == m.panel))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPanel draws the 53x7 grid with month labels on top and weekday labels left
func (m Model) renderPanel(p calendar.Panel, selected bool) string {
	var b strings.Builder
	title := fmt.Sprintf("%d", p.Year)
	if selected {
		title = "▸ " + title
	} else {
		title = "  " + title
	}
	b.WriteString(m.styles.panelYear.Render(title))
	b.WriteString("\n")

	b.WriteString("     ")
	b.WriteString(m.styles.label.Render(monthRow(p)))
	b.WriteString("\n")

	cells := p.Cells()
	for d := 0; d < calendar.DaysPerWeek; d++ {
		b.WriteString(m.styles.label.Render(fmt.Sprintf("%-4s ", rowLabels[d])))
		for w := 0; w < calendar.WeeksPerPanel; w++ {
			c := cells[w][d]
			onCursor := selected && w == m.week && d == m.day
			b.WriteString(m.renderCell(c, onCursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(c calendar.Cell, onCursor bool) string {
	switch {
	case onCursor:
		return m.styles.cursor.Render(cursorGlyph) + " "
	case c.State == calendar.CellHidden:
		return "  "
	case c.State == calendar.CellDimmed:
		return m.styles.dimmed.Render(dimGlyph) + " "
	default:
		return m.styles.levelStyle(m.sess.State().Level(c.Key)).Render(cellGlyph) + " "
	}
}

// monthRow places three-letter month names at their week columns
func monthRow(p calendar.Panel) string {
	row := []rune(strings.Repeat(" ", calendar.WeeksPerPanel*2))
	for w := 0; w < calendar.WeeksPerPanel; w++ {
		month, ok := p.MonthLabel(w)
		if !ok {
			continue
		}
		name := []rune(month.String()[:3])
		for i, r := range name {
			if pos := w*2 + i; pos < len(row) {
				row[pos] = r
			}
		}
	}
	return strings.TrimRight(string(row), " ")
}

func (m Model) exportView() string {
	var tabs []string
	for _, t := range script.Targets {
		if t == m.target {
			tabs = append(tabs, m.styles.activeTab.Render(t.Label()))
		} else {
			tabs = append(tabs, m.styles.tab.Render(t.Label()))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render(fmt.Sprintf("%s | %d commits", m.target.FileName(), m.sess.Plan().TotalCommits())))
	b.WriteString("\n\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) footer() string {
	var line string
	switch m.mode {
	case modeConfirmClear:
		line = m.styles.errorText.Render("Clear all planned commits? (y/n)")
	case modePrompt:
		line = "AI pattern: " + m.promptIn.View()
	case modeRange:
		line = "Range (start end): " + m.rangeIn.View()
	case modeExport:
		line = m.styles.help.Render("tab target | w write file | ↑/↓ scroll | esc back")
	default:
		line = m.styles.help.Render("←↑↓→ move | space cycle | p pen | 0-4 level | r randomize | +/- count | !-% presets | d range | a AI | e export | c clear | t theme | q quit")
	}

	status := m.status
	if m.suggesting {
		status = "asking for a pattern..."
	}
	if m.errMsg != "" {
		status = m.styles.errorText.Render(m.errMsg)
	}
	if status == "" {
		return line
	}
	return line + "\n" + m.styles.status.Render(status)
}
