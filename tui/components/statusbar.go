package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/tui/styles"
)

// StatusInfo carries the poll counters shown in the status bar.
type StatusInfo struct {
	Interval    time.Duration
	LastSuccess time.Time
	Attempts    int
	Failures    int
	Message     string
}

// RenderStatusBar renders the two-line footer showing poll info and key bindings.
func RenderStatusBar(theme styles.Theme, info StatusInfo, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")
	plain := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)

	pollSeg := plain.Render(fmt.Sprintf("poll: %s", info.Interval))
	lastStr := "never"
	if !info.LastSuccess.IsZero() {
		lastStr = info.LastSuccess.Format("15:04:05")
	}
	lastSeg := plain.Render(fmt.Sprintf("last ok: %s", lastStr))

	healthColor := theme.Base0B
	if info.Failures > 0 {
		healthColor = theme.Base0A
	}
	healthSeg := lipgloss.NewStyle().Foreground(healthColor).Background(bg).
		Render(fmt.Sprintf("%d/%d OK", info.Attempts-info.Failures, info.Attempts))

	topContent := bgStyle.Render(" ") + pollSeg + sep + lastSeg + sep + healthSeg
	if info.Message != "" {
		topContent += sep + lipgloss.NewStyle().Foreground(theme.Base0E).Background(bg).Render(info.Message)
	}
	topContent = padLine(bgStyle, topContent, width)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("r") + descStyle.Render(":refresh") + spacer +
		keyStyle.Render("p") + descStyle.Render(":report") + spacer +
		keyStyle.Render("g") + descStyle.Render(":debug") + spacer +
		keyStyle.Render("t") + descStyle.Render(":theme") + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	return lipgloss.JoinVertical(lipgloss.Left, topContent, padLine(bgStyle, keys, width))
}

func padLine(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}
