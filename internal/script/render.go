package script

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	startNotice = "Starting GitArt generation..."
	doneNotice  = "GitArt completed! Remember to push your changes."
)

func dayComment(d Day) string {
	return fmt.Sprintf("%s (%d commits)", d.Date, len(d.Commits))
}

// RenderNode emits a Node.js script driven by simple-git
func RenderNode(prog Program) string {
	var b strings.Builder

	b.WriteString("/**\n")
	b.WriteString(" * GitArt Contribution Script (Node.js)\n")
	b.WriteString(" * Generated by gitart\n")
	b.WriteString(" */\n")
	b.WriteString("const simpleGit = require(\"simple-git\");\n")
	b.WriteString("const fs = require(\"fs\");\n\n")
	fmt.Fprintf(&b, "const path = %s;\n", strconv.Quote(prog.DataFile))
	b.WriteString("const git = simpleGit();\n\n")

	b.WriteString("async function commitAt(date) {\n")
	b.WriteString("  fs.writeFileSync(path, JSON.stringify({ date, salt: Math.random() }));\n")
	b.WriteString("  await git.add(path);\n")
	b.WriteString("  await git\n")
	b.WriteString("    .env({ ...process.env, GIT_AUTHOR_DATE: date, GIT_COMMITTER_DATE: date })\n")
	b.WriteString("    .commit(date, { \"--date\": date });\n")
	b.WriteString("}\n\n")

	b.WriteString("async function run() {\n")
	fmt.Fprintf(&b, "  console.log(%s);\n\n", strconv.Quote(startNotice))
	b.WriteString("  if (!fs.existsSync(path)) {\n")
	b.WriteString("    fs.writeFileSync(path, JSON.stringify({}));\n")
	b.WriteString("  }\n")

	for _, d := range prog.Days {
		fmt.Fprintf(&b, "\n  // %s\n", dayComment(d))
		for _, c := range d.Commits {
			fmt.Fprintf(&b, "  await commitAt(%s);\n", strconv.Quote(c.Timestamp))
		}
	}

	fmt.Fprintf(&b, "\n  console.log(%s);\n", strconv.Quote(doneNotice))
	b.WriteString("}\n\n")
	b.WriteString("run().catch(err => {\n")
	b.WriteString("  console.error(\"Error generating commits:\", err);\n")
	b.WriteString("  process.exit(1);\n")
	b.WriteString("});\n")
	return b.String()
}

// RenderBash emits a POSIX-shell flavoured bash script
func RenderBash(prog Program) string {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n")
	b.WriteString("# GitArt Contribution Script (Bash)\n")
	b.WriteString("# Generated by gitart\n")
	b.WriteString("set -e\n\n")
	fmt.Fprintf(&b, "FILE=%s\n", bashQuote(prog.DataFile))
	fmt.Fprintf(&b, "echo %s\n\n", bashQuote(startNotice))
	b.WriteString("if [ ! -f \"$FILE\" ]; then\n")
	b.WriteString("    echo \"{}\" > \"$FILE\"\n")
	b.WriteString("fi\n")

	for _, d := range prog.Days {
		fmt.Fprintf(&b, "\n# %s\n", dayComment(d))
		for _, c := range d.Commits {
			ts := bashQuote(c.Timestamp)
			fmt.Fprintf(&b, "echo '{\"date\": \"%s\", \"salt\": \"'$RANDOM'\"}' > \"$FILE\"\n", c.Timestamp)
			b.WriteString("git add \"$FILE\"\n")
			fmt.Fprintf(&b, "GIT_AUTHOR_DATE=%s GIT_COMMITTER_DATE=%s git commit -m %s --date=%s\n", ts, ts, ts, ts)
		}
	}

	fmt.Fprintf(&b, "\necho %s\n", bashQuote(doneNotice))
	return b.String()
}

// RenderPowerShell emits a Windows PowerShell script
func RenderPowerShell(prog Program) string {
	var b strings.Builder

	b.WriteString("# GitArt Contribution Script (PowerShell)\n")
	b.WriteString("# Generated by gitart\n\n")
	fmt.Fprintf(&b, "$file = %s\n", psQuote(prog.DataFile))
	fmt.Fprintf(&b, "Write-Host %s -ForegroundColor Green\n\n", psQuote(startNotice))
	b.WriteString("if (-not (Test-Path $file)) {\n")
	b.WriteString("    \"{}\" | Out-File -FilePath $file -Encoding utf8\n")
	b.WriteString("}\n")

	for _, d := range prog.Days {
		fmt.Fprintf(&b, "\n# %s\n", dayComment(d))
		for _, c := range d.Commits {
			ts := psQuote(c.Timestamp)
			fmt.Fprintf(&b, "'{\"date\": \"%s\", \"salt\": \"' + (Get-Random) + '\"}' | Out-File -FilePath $file -Encoding utf8\n", c.Timestamp)
			b.WriteString("git add $file\n")
			fmt.Fprintf(&b, "$env:GIT_AUTHOR_DATE=%s; $env:GIT_COMMITTER_DATE=%s; git commit -m %s --date=%s\n", ts, ts, ts, ts)
		}
	}

	b.WriteString("\nRemove-Item Env:GIT_AUTHOR_DATE -ErrorAction SilentlyContinue\n")
	b.WriteString("Remove-Item Env:GIT_COMMITTER_DATE -ErrorAction SilentlyContinue\n")
	fmt.Fprintf(&b, "Write-Host %s -ForegroundColor Cyan\n", psQuote(doneNotice))
	return b.String()
}

// bashQuote wraps s in double quotes, escaping characters bash expands inside them
func bashQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}

// psQuote wraps s in double quotes using PowerShell's backtick escapes
func psQuote(s string) string {
	r := strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")
	return `"` + r.Replace(s) + `"`
}
