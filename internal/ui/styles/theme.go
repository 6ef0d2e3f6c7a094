package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Accent colors
	Primary   lipgloss.Color // Amber - selection, active category
	Secondary lipgloss.Color // Teal - featured badge, links

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase     lipgloss.Color // Lightbox backdrop
	BgCursor   lipgloss.Color // Cursor/selection highlight
	BgSkeleton lipgloss.Color // Tiles whose image is still loading

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style // Bold, bright
	Active   lipgloss.Style // Selected category, current slide dot
	Featured lipgloss.Style // Featured badge
	Cursor   lipgloss.Style // Cursor background highlight
	Skeleton lipgloss.Style // Loading placeholder
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#e0a458"),
	Secondary: lipgloss.Color("#5fb3b3"),

	FgBase:   lipgloss.Color("#d8d4cf"),
	FgMuted:  lipgloss.Color("#8a8580"),
	FgSubtle: lipgloss.Color("#5c5853"),

	BgBase:     lipgloss.Color("#111111"),
	BgCursor:   lipgloss.Color("#2e2b28"),
	BgSkeleton: lipgloss.Color("#262422"),

	Border:      lipgloss.Color("#4a4642"),
	BorderFocus: lipgloss.Color("#e0a458"),

	Success: lipgloss.Color("#7fb069"),
	Error:   lipgloss.Color("#e06c75"),
	Warning: lipgloss.Color("#e5c07b"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:    base.Bold(true),
		Active:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Featured: lipgloss.NewStyle().Foreground(t.Secondary),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Skeleton: lipgloss.NewStyle().
			Background(t.BgSkeleton).
			Foreground(t.FgSubtle),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
