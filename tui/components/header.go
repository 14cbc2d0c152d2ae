package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/tui/styles"
)

// RenderHeader renders the top header bar with app name, device name,
// online/offline status and version.
func RenderHeader(theme styles.Theme, deviceName string, online, loading bool, width int, ver string) string {
	bg := theme.Base01
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(bg).
		Bold(true).
		Render("snmpdash")

	displayName := deviceName
	if displayName == "" {
		displayName = "(unknown device)"
	}
	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(bg).
		Render(displayName)

	status := "OFFLINE"
	statusColor := theme.Base08
	switch {
	case loading:
		status = "CONNECTING"
		statusColor = theme.Base0A
	case online:
		status = "ONLINE"
		statusColor = theme.Base0B
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(bg).
		Bold(true).
		Render(status)

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(bg).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s ", left, center, right, versionSeg)

	return lipgloss.NewStyle().
		Background(bg).
		Width(width).
		Render(content)
}
