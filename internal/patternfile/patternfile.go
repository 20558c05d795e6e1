// Package patternfile reads and writes painted designs as YAML so they can be shared,
// versioned and exported without the interactive painter.
package patternfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rohankatakam/gitart/internal/calendar"
	"github.com/rohankatakam/gitart/internal/errors"
	"github.com/rohankatakam/gitart/internal/grid"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a design
type File struct {
	Name  string         `yaml:"name"`
	Start string         `yaml:"start"`
	End   string         `yaml:"end"`
	Cells map[string]int `yaml:"cells"`
}

// FromState captures the non-blank cells of state
func FromState(name string, r calendar.Range, state grid.State) *File {
	f := &File{
		Name:  name,
		Start: string(r.StartKey()),
		End:   string(r.EndKey()),
		Cells: make(map[string]int, len(state)),
	}
	for key, level := range state {
		if level > grid.LevelNone {
			f.Cells[string(key)] = int(level)
		}
	}
	return f
}

// Validate checks every date key and level
func (f *File) Validate() error {
	for _, s := range []string{f.Start, f.End} {
		if s == "" {
			continue
		}
		if _, _, _, err := grid.ParseDateKey(s); err != nil {
			return errors.ValidationError(err, fmt.Sprintf("invalid range boundary %q", s))
		}
	}
	for key, n := range f.Cells {
		if _, _, _, err := grid.ParseDateKey(key); err != nil {
			return errors.ValidationError(err, fmt.Sprintf("invalid cell date %q", key))
		}
		if _, err := grid.ParseLevel(n); err != nil {
			return errors.ValidationError(err, fmt.Sprintf("cell %s", key))
		}
	}
	return nil
}

// State converts the cells into a grid state. Call Validate first.
func (f *File) State() grid.State {
	state := make(grid.State, len(f.Cells))
	for key, n := range f.Cells {
		if level := grid.ClampLevel(n); level > grid.LevelNone {
			state[grid.DateKey(key)] = level
		}
	}
	return state
}

// Range resolves the stored boundaries, empty ones falling back to today
func (f *File) Range(now time.Time) calendar.Range {
	return calendar.ResolveRange(f.Start, f.End, now)
}

// Load reads and validates a pattern file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to read pattern file").WithContext("path", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.ValidationError(err, "pattern file is not valid YAML").WithContext("path", path)
	}
	if f.Cells == nil {
		f.Cells = map[string]int{}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes f to path, creating parent directories
func Save(path string, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.InternalErrorf("encode pattern file: %v", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.FileSystemError(err, "failed to create pattern directory")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.FileSystemError(err, "failed to write pattern file").WithContext("path", path)
	}
	return nil
}
