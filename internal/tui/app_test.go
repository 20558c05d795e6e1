package tui

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/grid"
	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/rohankatakam/gitart/internal/prefs"
	"github.com/rohankatakam/gitart/internal/script"
	"github.com/rohankatakam/gitart/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)

type stubSuggester struct{ s *pattern.Suggestion }

func (f stubSuggester) Provider() pattern.Provider { return "stub" }
func (f stubSuggester) Suggest(context.Context, string) (*pattern.Suggestion, error) {
	return f.s, nil
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	sess := session.New(session.Options{
		Now:   func() time.Time { return fixedNow },
		Rand:  rand.New(rand.NewPCG(7, 7)),
		Prefs: prefs.NewMemoryStore(),
	})
	return NewModel(sess, opts)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestCursorStartsOnEndDate(t *testing.T) {
	m := newTestModel(t, Options{})
	key, ok := m.cursorKey()
	require.True(t, ok)
	assert.Equal(t, grid.DateKey("2024-03-15"), key)
	assert.Equal(t, 2024, m.currentYear())
}

func TestPressCyclesLevel(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, grid.Level(2), m.sess.State().Level("2024-03-15"))

	// the day after the end date is dimmed and ignores presses
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, grid.LevelNone, m.sess.State().Level("2024-03-16"))
}

func TestPenPaintsCurrentLevel(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, runes("4"), runes("p"), tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, grid.LevelMax, m.sess.State().Level("2024-03-15"))
	assert.Equal(t, grid.LevelMax, m.sess.State().Level("2024-03-08"))
	assert.Equal(t, grid.LevelMax, m.sess.State().Level("2024-03-01"))

	m, _ = send(m, runes("p"), tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, grid.LevelNone, m.sess.State().Level("2024-02-23"))
	assert.Equal(t, 12, m.sess.TotalWeight())
}

func TestPanelsAndPresets(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Len(t, m.panels(), 2)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2023, m.currentYear())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2024, m.currentYear())

	m, _ = send(m, runes("#"))
	assert.Len(t, m.panels(), 4)
	start, _ := m.sess.Bounds()
	assert.Equal(t, "2021-03-15", start)
}

func TestRandomizeAnimation(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, runes("+"), runes("+"))
	assert.Equal(t, 70, m.sess.RandomizeCount())

	m, cmd := send(m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.sess.Randomizing())

	m, cmd = send(m, runes("r"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "already running")

	steps := 0
	m, cmd = send(m, leadInMsg{})
	steps++
	for cmd != nil {
		m, cmd = send(m, randomStepMsg{})
		steps++
		require.LessOrEqual(t, steps, 12)
	}
	assert.Equal(t, 12, steps)
	assert.False(t, m.sess.Randomizing())
	assert.Greater(t, m.sess.TotalWeight(), 0)
}

func TestClearNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = send(m, runes("c"))
	assert.Contains(t, m.View(), "Clear all planned commits?")
	m, _ = send(m, runes("n"))
	assert.Equal(t, 1, m.sess.TotalWeight())

	m, _ = send(m, runes("c"), runes("y"))
	assert.Zero(t, m.sess.TotalWeight())
	assert.Equal(t, modeGrid, m.mode)
}

func TestExportPreviewAndWrite(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{OutputDir: dir})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace}, runes("e"))
	assert.Equal(t, modeExport, m.mode)
	assert.Contains(t, m.View(), "git-art-script.sh")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, script.TargetPowerShell, m.target)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, script.TargetNode, m.target)
	assert.Contains(t, m.View(), "simple-git")

	m, cmd := send(m, runes("w"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Contains(t, m.status, "git-art-script.js")

	data, err := os.ReadFile(filepath.Join(dir, "git-art-script.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-03-15 12:00:00")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeGrid, m.mode)
}

func TestAISuggestion(t *testing.T) {
	var hooked []string
	sug := &pattern.Suggestion{Name: "dot", Points: []pattern.Point{{X: 10, Y: 5, Level: 3}}}
	m := newTestModel(t, Options{
		Suggester: stubSuggester{s: sug},
		OnSuggestion: func(prompt string, year int, s *pattern.Suggestion, applied int) {
			hooked = append(hooked, prompt)
			assert.Equal(t, 2024, year)
			assert.Equal(t, 1, applied)
		},
	})

	m, _ = send(m, runes("a"))
	assert.Equal(t, modePrompt, m.mode)
	m, _ = send(m, runes("a dot"))
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.suggesting)

	m, _ = send(m, cmd())
	assert.False(t, m.suggesting)
	assert.Equal(t, grid.Level(3), m.sess.State().Level("2024-03-15"))
	assert.Equal(t, []string{"a dot"}, hooked)
}

func TestAIDisabledAndNilSuggestion(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, runes("a"))
	assert.Equal(t, modeGrid, m.mode)
	assert.Contains(t, m.View(), "AI suggestions are disabled")

	m, _ = send(m, suggestionMsg{prompt: "x", year: 2024})
	assert.Contains(t, m.View(), "no suggestion")
	assert.Zero(t, m.sess.TotalWeight())
}

func TestHiddenSpilloverCellIsNotPaintable(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, 2024, m.currentYear())

	// 2024 starts on Monday, so week 0 Sunday of its panel is 2023-12-31
	m.week, m.day = 0, 0
	p, ok := m.currentPanel()
	require.True(t, ok)
	require.Equal(t, calendar.CellHidden, p.Cell(0, 0).State)
	_, ok = m.cursorKey()
	assert.False(t, ok)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace}, runes("4"), runes("p"))
	assert.Equal(t, grid.LevelNone, m.sess.State().Level("2023-12-31"))

	m, _ = send(m, runes("j"))
	assert.Equal(t, grid.Level(4), m.sess.State().Level("2024-01-01"), "pen paints once back on an active day")
	assert.Equal(t, grid.LevelNone, m.sess.State().Level("2023-12-31"))

	// the same date stays paintable from its own year
	m, _ = send(m, runes("p"), runes("]"))
	require.Equal(t, 2023, m.currentYear())
	p, _ = m.currentPanel()
	w, d, found := p.Locate("2023-12-31")
	require.True(t, found)
	m.week, m.day = w, d
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, grid.Level(1), m.sess.State().Level("2023-12-31"))
}

func TestRangeEditAndTheme(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = send(m, runes("d"))
	require.Equal(t, modeRange, m.mode)
	m.rangeIn.SetValue("2020-01-01 2020-12-31")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Len(t, m.panels(), 1)
	assert.Equal(t, 2020, m.currentYear())
	key, _ := m.cursorKey()
	assert.Equal(t, grid.DateKey("2020-12-31"), key)

	m, _ = send(m, runes("d"))
	m.rangeIn.SetValue("2020-99-01")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "invalid date")
	assert.Contains(t, m.View(), "nothing to show")

	before := m.sess.Theme()
	m, _ = send(m, runes("t"))
	assert.Equal(t, before.Toggle(), m.sess.Theme())
}

func TestViewRendersPanels(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()
	assert.Contains(t, view, "2024")
	assert.Contains(t, view, "2023")
	assert.Contains(t, view, "Jan")
	assert.Contains(t, view, "Mon")
	assert.Equal(t, 1, strings.Count(view, cursorGlyph))

	m, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}
