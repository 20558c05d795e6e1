// Package pattern asks an AI provider for a grid design and lays the answer onto a
// year panel. Providers answer with week/day coordinates; Apply turns those into
// dated levels.
package pattern

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/errors"
	"github.com/rohankatakam/gitart/internal/grid"
)

// Point is one painted cell: X is the week column (0-52), Y the weekday row (0-6)
type Point struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Level int `json:"level"`
}

// Suggestion is a provider's answer
type Suggestion struct {
	Name   string  `json:"patternName"`
	Points []Point `json:"points"`
}

// ParseSuggestion decodes a provider response. Markdown code fences around the JSON
// are tolerated. Points outside the 53x7 panel are dropped and levels are clamped to 1-4.
func ParseSuggestion(text string) (*Suggestion, error) {
	body := stripFences(text)
	if body == "" {
		return nil, errors.ValidationErrorf("empty suggestion response")
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		return nil, errors.ValidationError(err, "suggestion is not valid JSON")
	}

	kept := s.Points[:0]
	for _, p := range s.Points {
		if p.X < 0 || p.X >= calendar.WeeksPerPanel || p.Y < 0 || p.Y >= calendar.DaysPerWeek {
			continue
		}
		p.Level = int(clampPainted(p.Level))
		kept = append(kept, p)
	}
	s.Points = kept

	if len(s.Points) == 0 {
		return nil, errors.ValidationErrorf("suggestion %q has no usable points", s.Name)
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = "untitled"
	}
	return &s, nil
}

func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	}
	return strings.TrimSpace(t)
}

// clampPainted keeps suggested levels visible: a suggested point is never blank
func clampPainted(n int) grid.Level {
	if n < 1 {
		return 1
	}
	return grid.ClampLevel(n)
}

// Apply lays s onto the panel for year and returns the new state with the number of
// cells whose level changed. Points landing on cells outside the active range are skipped.
func Apply(state grid.State, s *Suggestion, panel calendar.Panel) (grid.State, int) {
	if s == nil {
		return state, 0
	}
	applied := 0
	for _, p := range s.Points {
		cell := panel.Cell(p.X, p.Y)
		if cell.State != calendar.CellActive {
			continue
		}
		level := clampPainted(p.Level)
		if state.Level(cell.Key) == level {
			continue
		}
		next, err := grid.SetLevel(state, cell.Key, level)
		if err != nil {
			continue
		}
		state = next
		applied++
	}
	return state, applied
}

// Describe renders a one-line summary for logs and status lines
func (s *Suggestion) Describe() string {
	return fmt.Sprintf("%s (%d points)", s.Name, len(s.Points))
}
