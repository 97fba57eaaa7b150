package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. Yellow, or `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Success formats success indicators and messages.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats error indicators and messages.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warning indicators and messages.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats emphasized values like key IDs. 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}

	// Heading formats section titles.
	Heading = Formatter{color.New(color.Bold), "", ""}

	// Secret formats exported key material so it stands out for copying.
	Secret = Formatter{color.New(color.FgGreen, color.Bold), "", ""}
)

// Done prefixes msg with a success mark.
func Done(msg string) string {
	return Success.Sprint("✓") + " " + msg
}

// Fail prefixes msg with an error mark.
func Fail(msg string) string {
	return Error.Sprint("✗") + " " + msg
}

// Caution prefixes msg with a warning mark.
func Caution(msg string) string {
	return Warning.Sprint("⚠") + " " + msg
}

// Hint prefixes msg with an arrow.
func Hint(msg string) string {
	return Info.Sprint("→") + " " + msg
}
