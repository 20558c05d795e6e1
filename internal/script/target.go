package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rohankatakam/gitart/internal/plan"
)

// ErrUnknownTarget is returned for an unsupported script target
var ErrUnknownTarget = errors.New("unknown script target")

// Target names an execution environment for the generated script
type Target string

const (
	TargetNode       Target = "nodejs"
	TargetBash       Target = "bash"
	TargetPowerShell Target = "powershell"
)

// Targets lists every supported target in display order
var Targets = []Target{TargetNode, TargetBash, TargetPowerShell}

// FileBase is the download name shared by all targets
const FileBase = "git-art-script"

// ParseTarget accepts a target tag or a common alias
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nodejs", "node", "js":
		return TargetNode, nil
	case "bash", "sh":
		return TargetBash, nil
	case "powershell", "ps1", "pwsh", "ps":
		return TargetPowerShell, nil
	}
	return "", fmt.Errorf("%w: %q (want nodejs, bash or powershell)", ErrUnknownTarget, s)
}

// Extension returns the file extension without the dot
func (t Target) Extension() string {
	switch t {
	case TargetNode:
		return "js"
	case TargetBash:
		return "sh"
	case TargetPowerShell:
		return "ps1"
	}
	return "txt"
}

// FileName returns the download file name for t
func (t Target) FileName() string {
	return FileBase + "." + t.Extension()
}

// Label is the human-facing tab title
func (t Target) Label() string {
	switch t {
	case TargetNode:
		return "Node.js"
	case TargetBash:
		return "Bash (Linux/Mac)"
	case TargetPowerShell:
		return "PowerShell (Windows)"
	}
	return string(t)
}

// Next cycles through Targets
func (t Target) Next() Target {
	for i, cur := range Targets {
		if cur == t {
			return Targets[(i+1)%len(Targets)]
		}
	}
	return Targets[0]
}

// Render produces the script text of prog for t
func Render(t Target, prog Program) (string, error) {
	switch t {
	case TargetNode:
		return RenderNode(prog), nil
	case TargetBash:
		return RenderBash(prog), nil
	case TargetPowerShell:
		return RenderPowerShell(prog), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, t)
}

// Emit lowers p and renders it for t in one step
func Emit(t Target, p plan.Plan, opts Options) (string, error) {
	return Render(t, Build(p, opts))
}
