// Package render lays out plain and styled text in terminal cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters other than tab and invalid UTF-8, and
// turns non-breaking spaces into spaces. Titles come from file names and
// user input and must not break the terminal.
func Sanitize(s string) string {
	if utf8.ValidString(s) && !strings.ContainsFunc(s, unprintable) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case unprintable(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unprintable(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Truncate shortens s to maxWidth cells with a single-character ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Center pads s on both sides to width cells.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Row joins left and right with at least one space, filling width.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Wrap word-wraps s to width cells.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(Sanitize(s))
}

// Dots renders a slide indicator: one dot per slide, the active one filled.
func Dots(n, active int) string {
	if n <= 0 {
		return ""
	}
	dots := make([]string, n)
	for i := range dots {
		dots[i] = "○"
		if i == active {
			dots[i] = "●"
		}
	}
	return strings.Join(dots, " ")
}
