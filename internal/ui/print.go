package ui

import (
	"fmt"
	"os"
	"strings"
)

// Puts prints a styled line to stdout.
func Puts(s string) {
	fmt.Println(s)
}

// Putsf prints a formatted styled line to stdout.
func Putsf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warn prints a warning to stderr so it never mixes with JSON on stdout.
func Warn(msg string) {
	fmt.Fprintln(os.Stderr, Warning.Render(IconWarn+msg))
}

// Err prints an error message.
func Err(msg string) {
	styled := Error.Bold(true).Render(IconError + msg)
	fmt.Fprintln(os.Stderr, styled)
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len(s)+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-12s", key))
	v := ValueStyle.Render(value)
	fmt.Printf("%s %s\n", k, v)
}

// Days renders a day count as "1 day" or "N days".
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Bar renders value as a bar of at most width cells, scaled against peak.
// Any non-zero value gets at least one cell.
func Bar(value, peak, width int) string {
	if value <= 0 || peak <= 0 || width <= 0 {
		return ""
	}
	n := value * width / peak
	if n == 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}
