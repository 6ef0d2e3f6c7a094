package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// grey stands in for palette colors, which have no RGB value to blend.
var grey = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ApplyBoldGradient renders text in bold, shading each grapheme from one
// color to the other.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	n := uniseg.GraphemeClusterCount(text)
	if n == 0 {
		return ""
	}
	bold := lipgloss.NewStyle().Bold(true)
	if n == 1 {
		return bold.Foreground(from).Render(text)
	}

	a, b := rgb(from), rgb(to)
	var sb strings.Builder
	g := uniseg.NewGraphemes(text)
	for i := 0; g.Next(); i++ {
		c := a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
		sb.WriteString(bold.Foreground(lipgloss.Color(c.Hex())).Render(g.Str()))
	}
	return sb.String()
}

// Logo renders the application name in the theme's accent gradient.
func Logo() string {
	t := T()
	return ApplyBoldGradient("folio", t.Primary, t.Secondary)
}

func rgb(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return grey
	}
	return col
}
