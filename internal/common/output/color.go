package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Probe outcome colors
	Live    = color.New(color.FgGreen)
	Unknown = color.New(color.FgYellow)
	Offline = color.New(color.FgRed)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header  = color.New(color.FgWhite, color.Bold)
	Channel = color.New(color.FgBlue, color.Bold)
)

// ResetMarker ends any color started by a preceding marker.
const ResetMarker = "&!r"

// Marker maps an inline color code to the terminal attribute it stands for.
type Marker struct {
	Code string
	Attr color.Attribute
}

// Markers is the inline color table, longest code first. Codes are matched
// in this order at each position of the message.
var Markers = []Marker{
	{ResetMarker, color.Reset},
	{"&r", color.FgRed},
	{"&c", color.FgCyan},
	{"&g", color.FgGreen},
	{"&y", color.FgYellow},
	{"&m", color.FgMagenta},
	{"&b", color.FgBlue},
	{"&w", color.FgWhite},
}

// escape returns the SGR sequence for a single attribute
func escape(attr color.Attribute) string {
	return fmt.Sprintf("\x1b[%dm", attr)
}

func markerReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(Markers)*2)
	for _, m := range Markers {
		replacement := ""
		if !color.NoColor {
			replacement = escape(m.Attr)
		}
		pairs = append(pairs, m.Code, replacement)
	}
	return strings.NewReplacer(pairs...)
}

// ConsoleMessage appends a reset marker to message and substitutes every
// inline color code in a single left-to-right pass. With color disabled the
// codes are stripped, repeatedly, since removing one code can join its
// neighbours into another (as in "&&rr").
func ConsoleMessage(message string) string {
	r := markerReplacer()
	out := r.Replace(message + ResetMarker)
	if !color.NoColor {
		return out
	}
	for {
		next := r.Replace(out)
		if next == out {
			return out
		}
		out = next
	}
}

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ResultColor returns the color for a probe outcome label
func ResultColor(kind string) *color.Color {
	switch kind {
	case "live":
		return Live
	case "unconfirmed":
		return Unknown
	case "offline":
		return Offline
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// FormatResult formats a probe outcome label with its color
func FormatResult(kind string) string {
	return ResultColor(kind).Sprintf("[%s]", kind)
}

// FormatChannel formats a channel name with color
func FormatChannel(name string) string {
	return Channel.Sprint(name)
}

// Box prints a boxed message
func Box(title, content string) {
	fmt.Println()
	Header.Println("┌─ " + title + " ─")
	fmt.Println("│")
	fmt.Println("│  " + content)
	fmt.Println("│")
	Header.Println("└────────────────")
	fmt.Println()
}
