package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Cards
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Dim       lipgloss.Style

	// Large stat values under the charts
	StatValue lipgloss.Style
	StatHigh  lipgloss.Style

	// Badges
	BadgeOnline  lipgloss.Style
	BadgeOffline lipgloss.Style

	// Alert banners
	AlertCritical lipgloss.Style
	AlertWarning  lipgloss.Style

	// Interface table
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	StatusUp    lipgloss.Style
	StatusDown  lipgloss.Style
	ErrHigh     lipgloss.Style

	// Charts
	ChartCPU  lipgloss.Style
	ChartRAM  lipgloss.Style
	Threshold lipgloss.Style

	// Debug panel
	Debug      lipgloss.Style
	DebugTitle lipgloss.Style

	// Forms
	FormLabel lipgloss.Style
	FormError lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base02).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Width(14),
		Value: lipgloss.NewStyle().
			Foreground(theme.Base05),
		Dim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatValue: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Bold(true),
		StatHigh: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),

		BadgeOnline: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0B).
			Bold(true).
			Padding(0, 1),
		BadgeOffline: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base08).
			Bold(true).
			Padding(0, 1),

		AlertCritical: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Base08).
			Bold(true).
			PaddingLeft(1),
		AlertWarning: lipgloss.NewStyle().
			Foreground(theme.Base0A).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Base0A).
			Bold(true).
			PaddingLeft(1),

		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B).
			Bold(true),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),
		ErrHigh: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),

		ChartCPU: lipgloss.NewStyle().
			Foreground(theme.Base08),
		ChartRAM: lipgloss.NewStyle().
			Foreground(theme.Base0D),
		Threshold: lipgloss.NewStyle().
			Foreground(theme.Base09),

		Debug: lipgloss.NewStyle().
			Foreground(theme.Base0B).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Base03).
			Padding(0, 1),
		DebugTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Base04),
		FormError: lipgloss.NewStyle().
			Foreground(theme.Base08),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
	}
}
