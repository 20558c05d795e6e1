package script

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile saves body as dir/<FileName> and returns the path written.
// Bash scripts are marked executable, also when overwriting an existing file.
func WriteFile(dir string, t Target, body string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	mode := os.FileMode(0644)
	if t == TargetBash {
		mode = 0755
	}

	path := filepath.Join(dir, t.FileName())
	if err := os.WriteFile(path, []byte(body), mode); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, mode); err != nil {
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	return path, nil
}
