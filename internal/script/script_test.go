package script

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/gitart/internal/plan"
)

// commitPattern matches the one commit-producing statement of each target
var commitPattern = map[Target]*regexp.Regexp{
	TargetNode:       regexp.MustCompile(`(?m)^\s*await commitAt\("([^"]+)"\);$`),
	TargetBash:       regexp.MustCompile(`(?m)^GIT_AUTHOR_DATE="([^"]+)" GIT_COMMITTER_DATE="[^"]+" git commit .*$`),
	TargetPowerShell: regexp.MustCompile(`(?m)^\$env:GIT_AUTHOR_DATE="([^"]+)"; \$env:GIT_COMMITTER_DATE="[^"]+"; git commit .*$`),
}

func TestBuildTimestamps(t *testing.T) {
	prog := Build(plan.Plan{{Date: "2023-05-01", Count: 2}, {Date: "2023-05-03", Count: 4}}, Options{})

	assert.Equal(t, DefaultDataFile, prog.DataFile)
	require.Len(t, prog.Days, 2)

	commits := prog.Commits()
	require.Len(t, commits, 6)
	assert.Equal(t, "2023-05-01 12:00:00", commits[0].Timestamp)
	assert.Equal(t, "2023-05-01 12:01:00", commits[1].Timestamp)
	assert.Equal(t, "2023-05-03 12:03:00", commits[5].Timestamp)

	for i := 1; i < len(commits); i++ {
		assert.Less(t, commits[i-1].Timestamp, commits[i].Timestamp)
	}
	for _, c := range commits {
		assert.True(t, strings.HasPrefix(c.Timestamp, string(c.Date)), "stamp %s outside day %s", c.Timestamp, c.Date)
	}
}

func TestBuildOptions(t *testing.T) {
	prog := Build(plan.Plan{{Date: "2023-05-01", Count: 1}}, Options{DataFile: "art/marker.json", CommitHour: Hour(9)})
	assert.Equal(t, "art/marker.json", prog.DataFile)
	assert.Equal(t, "2023-05-01 09:00:00", prog.Commits()[0].Timestamp)

	fallback := Build(plan.Plan{{Date: "2023-05-01", Count: 1}}, Options{CommitHour: Hour(30)})
	assert.Equal(t, "2023-05-01 12:00:00", fallback.Commits()[0].Timestamp)
}

func TestBuildMidnightHour(t *testing.T) {
	p := plan.Plan{{Date: "2023-05-01", Count: 2}}

	midnight := Build(p, Options{CommitHour: Hour(0)}).Commits()
	assert.Equal(t, "2023-05-01 00:00:00", midnight[0].Timestamp)
	assert.Equal(t, "2023-05-01 00:01:00", midnight[1].Timestamp)

	unset := Build(p, Options{}).Commits()
	assert.Equal(t, "2023-05-01 12:00:00", unset[0].Timestamp)
	assert.Equal(t, "2023-05-01 12:01:00", unset[1].Timestamp)
}

func TestBuildSkipsBadEntries(t *testing.T) {
	prog := Build(plan.Plan{{Date: "bogus", Count: 2}, {Date: "2023-05-01", Count: 0}}, Options{})
	assert.Empty(t, prog.Days)
}

func TestEveryTargetEmitsOneCommitPerInstruction(t *testing.T) {
	p := plan.Plan{{Date: "2023-05-01", Count: 2}}

	for _, target := range Targets {
		t.Run(string(target), func(t *testing.T) {
			out, err := Emit(target, p, Options{})
			require.NoError(t, err)

			matches := commitPattern[target].FindAllStringSubmatch(out, -1)
			require.Len(t, matches, 2)

			stamps := map[string]bool{}
			for _, m := range matches {
				assert.True(t, strings.HasPrefix(m[1], "2023-05-01"))
				stamps[m[1]] = true
			}
			assert.Len(t, stamps, 2, "timestamps must be distinct")

			assert.Contains(t, out, startNotice)
			assert.Contains(t, out, doneNotice)
			assert.Contains(t, out, "data.json")
		})
	}
}

func TestTargetsAgreeOnSchedule(t *testing.T) {
	p := plan.Plan{
		{Date: "2022-12-31", Count: 1},
		{Date: "2023-01-02", Count: 3},
		{Date: "2023-07-14", Count: 4},
	}
	prog := Build(p, Options{})

	var want []string
	for _, c := range prog.Commits() {
		want = append(want, c.Timestamp)
	}

	for _, target := range Targets {
		out, err := Render(target, prog)
		require.NoError(t, err)

		var got []string
		for _, m := range commitPattern[target].FindAllStringSubmatch(out, -1) {
			got = append(got, m[1])
		}
		assert.Equal(t, want, got, "target %s", target)
	}
}

func TestEmptyPlanProducesValidScripts(t *testing.T) {
	for _, target := range Targets {
		out, err := Emit(target, nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, commitPattern[target].FindAllString(out, -1))
		assert.Contains(t, out, startNotice)
		assert.Contains(t, out, doneNotice)
		assert.NotContains(t, out, "git add")
	}
}

func TestBashSetupAndQuoting(t *testing.T) {
	out := RenderBash(Build(nil, Options{DataFile: `./we"ird$.json`}))
	assert.True(t, strings.HasPrefix(out, "#!/bin/bash\n"))
	assert.Contains(t, out, `FILE="./we\"ird\$.json"`)
	assert.Contains(t, out, `if [ ! -f "$FILE" ]; then`)

	ps := RenderPowerShell(Build(nil, Options{DataFile: `./we"ird$.json`}))
	assert.Contains(t, ps, "$file = \"./we`\"ird`$.json\"")
}

func TestParseTarget(t *testing.T) {
	cases := map[string]Target{
		"nodejs": TargetNode, "node": TargetNode, "JS": TargetNode,
		"bash": TargetBash, "sh": TargetBash,
		"powershell": TargetPowerShell, "ps1": TargetPowerShell, " pwsh ": TargetPowerShell,
	}
	for in, want := range cases {
		got, err := ParseTarget(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseTarget("fish")
	assert.True(t, errors.Is(err, ErrUnknownTarget))
	_, err = Render(Target("fish"), Program{})
	assert.True(t, errors.Is(err, ErrUnknownTarget))
}

func TestTargetFileNames(t *testing.T) {
	assert.Equal(t, "git-art-script.js", TargetNode.FileName())
	assert.Equal(t, "git-art-script.sh", TargetBash.FileName())
	assert.Equal(t, "git-art-script.ps1", TargetPowerShell.FileName())

	assert.Equal(t, TargetBash, TargetNode.Next())
	assert.Equal(t, TargetNode, TargetPowerShell.Next())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, TargetBash, "#!/bin/bash\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "git-art-script.sh"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	path, err = WriteFile(dir, TargetNode, "// js\n")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "// js\n", string(data))
}

func TestWriteFileRestoresExecutableBit(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, TargetBash.FileName())
	require.NoError(t, os.WriteFile(existing, []byte("old\n"), 0644))
	require.NoError(t, os.Chmod(existing, 0644))

	path, err := WriteFile(dir, TargetBash, "#!/bin/bash\n")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\n", string(data))
}
