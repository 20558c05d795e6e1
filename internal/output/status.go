package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

// ConfigureColor enables colour only when forced or when stdout is a terminal
func ConfigureColor(force, disable bool) {
	switch {
	case disable:
		color.NoColor = true
	case force:
		color.NoColor = false
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// Success prints a green status line
func Success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warn prints a yellow status line
func Warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "! "+format+"\n", args...)
}

// Fail prints a red status line
func Fail(w io.Writer, format string, args ...any) {
	failColor.Fprintf(w, "✗ "+format+"\n", args...)
}

// Info prints a cyan status line
func Info(w io.Writer, format string, args ...any) {
	infoColor.Fprintf(w, format+"\n", args...)
}

func weekdayOf(y int, m time.Month, d int) string {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday().String()[:3]
}

// Plural formats n with a singular or plural noun
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
