// Package tui is the interactive painter: a bubbletea program over a session.Session.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/rohankatakam/gitart/internal/randomizer"
	"github.com/rohankatakam/gitart/internal/script"
	"github.com/rohankatakam/gitart/internal/session"
)

type mode int

const (
	modeGrid mode = iota
	modeConfirmClear
	modeExport
	modePrompt
	modeRange
)

// presetKeys maps shifted digits to range presets in years
var presetKeys = map[string]int{"!": 1, "@": 2, "#": 3, "$": 4, "%": 5}

type (
	leadInMsg     struct{}
	randomStepMsg struct{}

	suggestionMsg struct {
		prompt     string
		year       int
		suggestion *pattern.Suggestion
	}

	writtenMsg struct {
		path string
		err  error
	}
)

// SuggestionHook is called after a suggestion has been applied
type SuggestionHook func(prompt string, year int, s *pattern.Suggestion, applied int)

// Options wires optional collaborators into the painter
type Options struct {
	Suggester    pattern.Suggester
	OnSuggestion SuggestionHook
	OutputDir    string
	Target       script.Target
}

// Model is the bubbletea model of the painter
type Model struct {
	sess *session.Session
	opts Options

	panel   int // index into sess.Panels()
	week    int
	day     int
	penDown bool

	mode       mode
	target     script.Target
	preview    viewport.Model
	promptIn   textinput.Model
	rangeIn    textinput.Model
	suggesting bool

	styles   styles
	status   string
	errMsg   string
	width    int
	height   int
	quitting bool

	logger *slog.Logger
}

// NewModel creates the painter for sess
func NewModel(sess *session.Session, opts Options) Model {
	if opts.Target == "" {
		opts.Target = script.TargetBash
	}

	pi := textinput.New()
	pi.Placeholder = "describe a pattern, e.g. a heart"
	pi.CharLimit = 200

	ri := textinput.New()
	ri.Placeholder = "2023-01-01 2023-12-31"
	ri.CharLimit = 21

	m := Model{
		sess:     sess,
		opts:     opts,
		target:   opts.Target,
		preview:  viewport.New(110, 20),
		promptIn: pi,
		rangeIn:  ri,
		styles:   newStyles(sess.Theme()),
		width:    120,
		height:   40,
		logger:   slog.Default().With("component", "tui"),
	}
	m.resetCursor()
	return m
}

// Run starts the painter on the terminal
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width - 2
		m.preview.Height = max(5, msg.Height-6)
		return m, nil

	case leadInMsg, randomStepMsg:
		if m.sess.StepRandomize() {
			m.status = fmt.Sprintf("randomized: %d planned commits", m.sess.Plan().TotalCommits())
			return m, nil
		}
		return m, stepCmd()

	case suggestionMsg:
		m.suggesting = false
		if msg.suggestion == nil {
			m.errMsg = "no suggestion (check the AI provider and key)"
			return m, nil
		}
		applied := m.sess.ApplySuggestion(msg.suggestion, msg.year)
		m.status = fmt.Sprintf("applied %q: %d cells in %d", msg.suggestion.Name, applied, msg.year)
		if m.opts.OnSuggestion != nil {
			m.opts.OnSuggestion(msg.prompt, msg.year, msg.suggestion, applied)
		}
		return m, nil

	case writtenMsg:
		if msg.err != nil {
			m.logger.Warn("failed to write script", "error", msg.err)
			m.errMsg = msg.err.Error()
		} else {
			m.status = "wrote " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		m.errMsg = ""
		switch m.mode {
		case modeConfirmClear:
			return m.updateConfirm(msg)
		case modeExport:
			return m.updateExport(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modeRange:
			return m.updateRange(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if years, ok := presetKeys[key]; ok {
		m.sess.ApplyPreset(years)
		m.resetCursor()
		m.status = fmt.Sprintf("range: last %d year(s)", years)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)

	case "tab", "]":
		m.switchPanel(1)
	case "shift+tab", "[":
		m.switchPanel(-1)

	case " ", "enter":
		if key, ok := m.cursorKey(); ok {
			m.sess.Press(key)
		}

	case "p":
		m.penDown = !m.penDown
		if m.penDown {
			m.paintUnderCursor()
		}

	case "0", "1", "2", "3", "4":
		m.sess.SetCurrentLevel(grid.Level(key[0] - '0'))

	case "+", "=":
		m.sess.AdjustRandomizeCount(session.CountStep)
	case "-", "_":
		m.sess.AdjustRandomizeCount(-session.CountStep)

	case "r":
		if !m.sess.StartRandomize() {
			if m.sess.Randomizing() {
				m.status = "randomize already running"
			} else {
				m.errMsg = "the date range is empty"
			}
			return m, nil
		}
		return m, tea.Tick(randomizer.LeadIn, func(time.Time) tea.Msg { return leadInMsg{} })

	case "c":
		m.mode = modeConfirmClear

	case "e":
		m.mode = modeExport
		m.refreshPreview()

	case "t":
		m.styles = newStyles(m.sess.ToggleTheme())

	case "a":
		if m.opts.Suggester == nil {
			m.errMsg = "AI suggestions are disabled: set GEMINI_API_KEY or OPENAI_API_KEY"
			return m, nil
		}
		m.mode = modePrompt
		m.promptIn.SetValue("")
		m.promptIn.Focus()
		return m, textinput.Blink

	case "d":
		start, end := m.sess.Bounds()
		m.mode = modeRange
		m.rangeIn.SetValue(strings.TrimSpace(start + " " + end))
		m.rangeIn.CursorEnd()
		m.rangeIn.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "y" || msg.String() == "Y" {
		m.sess.Clear()
		m.status = "cleared"
	}
	m.mode = modeGrid
	return m, nil
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "e":
		m.mode = modeGrid
		return m, nil
	case "tab":
		m.target = m.target.Next()
		m.refreshPreview()
		return m, nil
	case "w":
		body, err := m.sess.Script(m.target)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, writeCmd(m.opts.OutputDir, m.target, body)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptIn.Blur()
		m.mode = modeGrid
		return m, nil
	case "enter":
		prompt := strings.TrimSpace(m.promptIn.Value())
		m.promptIn.Blur()
		m.mode = modeGrid
		if prompt == "" {
			return m, nil
		}
		m.suggesting = true
		m.status = "asking for a pattern..."
		return m, suggestCmd(m.opts.Suggester, prompt, m.currentYear())
	}

	var cmd tea.Cmd
	m.promptIn, cmd = m.promptIn.Update(msg)
	return m, cmd
}

func (m Model) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.rangeIn.Blur()
		m.mode = modeGrid
		return m, nil
	case "enter":
		fields := strings.Fields(m.rangeIn.Value())
		var start, end string
		if len(fields) > 0 {
			start = fields[0]
		}
		if len(fields) > 1 {
			end = fields[1]
		}
		m.sess.SetRange(start, end)
		if !m.sess.Range().Valid() {
			m.errMsg = "invalid date, use YYYY-MM-DD"
		}
		m.rangeIn.Blur()
		m.mode = modeGrid
		m.resetCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.rangeIn, cmd = m.rangeIn.Update(msg)
	return m, cmd
}

func stepCmd() tea.Cmd {
	return tea.Tick(randomizer.StepInterval(), func(time.Time) tea.Msg { return randomStepMsg{} })
}

func suggestCmd(s pattern.Suggester, prompt string, year int) tea.Cmd {
	return func() tea.Msg {
		return suggestionMsg{
			prompt:     prompt,
			year:       year,
			suggestion: pattern.SuggestOrNil(context.Background(), s, prompt),
		}
	}
}

func writeCmd(dir string, t script.Target, body string) tea.Cmd {
	return func() tea.Msg {
		path, err := script.WriteFile(dir, t, body)
		return writtenMsg{path: path, err: err}
	}
}

// refreshPreview renders the selected target into the export viewport
func (m *Model) refreshPreview() {
	body, err := m.sess.Script(m.target)
	if err != nil {
		body = err.Error()
	}
	m.preview.SetContent(body)
	m.preview.GotoTop()
}

// panels returns the visible panels; the slice is rebuilt on every call
func (m Model) panels() []calendar.Panel {
	return m.sess.Panels()
}

func (m Model) currentPanel() (calendar.Panel, bool) {
	panels := m.panels()
	if m.panel < 0 || m.panel >= len(panels) {
		return calendar.Panel{}, false
	}
	return panels[m.panel], true
}

func (m Model) currentYear() int {
	if p, ok := m.currentPanel(); ok {
		return p.Year
	}
	return time.Now().Year()
}

// cursorKey returns the date under the cursor when it is paintable in the current panel.
// Spillover days from a neighbouring year and days outside the range yield ok=false.
func (m Model) cursorKey() (grid.DateKey, bool) {
	p, ok := m.currentPanel()
	if !ok {
		return "", false
	}
	cell := p.Cell(m.week, m.day)
	if cell.State != calendar.CellActive {
		return "", false
	}
	return cell.Key, true
}

// resetCursor puts the cursor on the last active day of the newest panel
func (m *Model) resetCursor() {
	m.panel, m.week, m.day = 0, 0, 0
	p, ok := m.currentPanel()
	if !ok {
		return
	}
	if w, d, found := p.Locate(m.sess.Range().EndKey()); found {
		m.week, m.day = w, d
	}
}

func (m *Model) move(dw, dd int) {
	m.week = clamp(m.week+dw, 0, calendar.WeeksPerPanel-1)
	m.day = clamp(m.day+dd, 0, calendar.DaysPerWeek-1)
	if m.penDown {
		m.paintUnderCursor()
	}
}

func (m *Model) switchPanel(delta int) {
	n := len(m.panels())
	if n == 0 {
		return
	}
	m.panel = (m.panel + delta + n) % n
}

func (m *Model) paintUnderCursor() {
	if key, ok := m.cursorKey(); ok {
		m.sess.Drag(key)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
