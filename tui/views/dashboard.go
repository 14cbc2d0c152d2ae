package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/internal/units"
	"github.com/tonhe/snmpdash/tui/components"
	"github.com/tonhe/snmpdash/tui/styles"
)

// Column width constants (minimum widths).
const (
	colInterface = 22
	colStatus    = 8
	colIn        = 14
	colOut       = 14
	colErrIn     = 10
	colErrOut    = 10
)

const (
	chartHeight   = 10
	minSplitWidth = 100
	rawPreviewLen = 400
)

// DashboardView renders the device cards, charts, alerts and interface table.
type DashboardView struct {
	theme     styles.Theme
	sty       *styles.Styles
	state     engine.State
	hasState  bool
	showDebug bool
	width     int
	height    int
}

// NewDashboardView creates a new DashboardView with the given theme.
func NewDashboardView(theme styles.Theme) DashboardView {
	return DashboardView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme swaps the palette used for rendering.
func (v *DashboardView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// SetState replaces the state being rendered.
func (v *DashboardView) SetState(st engine.State) {
	v.state = st
	v.hasState = true
}

// ToggleDebug flips the debug panel.
func (v *DashboardView) ToggleDebug() {
	v.showDebug = !v.showDebug
}

// DebugVisible reports whether the debug panel is shown.
func (v DashboardView) DebugVisible() bool {
	return v.showDebug
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the dashboard view.
func (v DashboardView) View() string {
	if !v.hasState || (v.state.Loading && v.state.Snapshot == nil) {
		return v.renderWaiting()
	}

	var sections []string
	if banners := v.renderBanners(); banners != "" {
		sections = append(sections, banners)
	}
	sections = append(sections, v.renderOverview())
	sections = append(sections, v.renderTable())
	if v.showDebug {
		sections = append(sections, v.renderDebug())
	}

	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return clipLines(out, v.height)
}

// renderWaiting is shown until the first cycle has been applied.
func (v DashboardView) renderWaiting() string {
	msg := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Align(lipgloss.Center).
		Render("Waiting for first reading from " + v.state.BaseURL + " ...")
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// renderBanners renders the connection error followed by the active alerts.
func (v DashboardView) renderBanners() string {
	var lines []string
	if v.state.Conn.Error != "" {
		lines = append(lines, v.sty.AlertCritical.Render(v.state.Conn.Error))
	}
	for _, a := range v.state.Alerts {
		st := v.sty.AlertWarning
		if a.Severity == engine.SeverityCritical {
			st = v.sty.AlertCritical
		}
		lines = append(lines, st.Render(a.Message))
	}
	return strings.Join(lines, "\n")
}

// renderOverview lays out the status card and the two charts side by side
// when there is room, stacked otherwise.
func (v DashboardView) renderOverview() string {
	snap := v.state.Snapshot
	if snap == nil {
		snap = &engine.Snapshot{}
	}

	cardWidth := 44
	if v.width < minSplitWidth {
		cardWidth = v.width - 4
	}
	card := v.renderStatusCard(snap, cardWidth)

	chartWidth := (v.width - lipgloss.Width(card) - 4) / 2
	if v.width < minSplitWidth {
		chartWidth = v.width - 4
	}
	if chartWidth < 20 {
		chartWidth = 20
	}
	cpu := v.renderCPUChart(snap, chartWidth)
	ram := v.renderRAMChart(snap, chartWidth)

	if v.width < minSplitWidth {
		return lipgloss.JoinVertical(lipgloss.Left, card, cpu, ram)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, card, cpu, ram)
}

func (v DashboardView) renderStatusCard(snap *engine.Snapshot, width int) string {
	valueWidth := width - 18
	if valueWidth < 8 {
		valueWidth = 8
	}
	row := func(label, value string) string {
		return v.sty.Label.Render(label) + v.sty.Value.Render(truncate(orDash(value), valueWidth))
	}

	badge := v.sty.BadgeOffline.Render("OFFLINE")
	if v.state.Online() {
		badge = v.sty.BadgeOnline.Render("ONLINE")
	}

	lines := []string{
		v.sty.CardTitle.Render("Device") + "  " + badge,
		"",
		row("Name", snap.Name),
		row("Description", snap.Description),
		row("Location", snap.Location),
		row("Contact", snap.Contact),
		row("Uptime", units.Uptime(snap.UpTime)),
	}
	if snap.Error != "" {
		lines = append(lines, v.sty.FormError.Render(truncate(snap.Error, width-4)))
	}
	return v.sty.Card.Width(width).Render(strings.Join(lines, "\n"))
}

func (v DashboardView) renderCPUChart(snap *engine.Snapshot, width int) string {
	data := make([]float64, len(v.state.History))
	for i, p := range v.state.History {
		data[i] = p.CPU
	}
	chart := components.RenderChart(data, width-4, chartHeight, "CPU %", components.ChartOptions{
		Max:       100,
		Threshold: engine.CPUThreshold,
		Label:     func(f float64) string { return fmt.Sprintf("%.0f%%", f) },
		XStart:    v.firstLabel(),
		XEnd:      v.lastLabel(),
	})

	stat := v.sty.StatValue
	if cpu, ok := snap.CPU.Float(); ok && cpu > engine.CPUThreshold {
		stat = v.sty.StatHigh
	}
	footer := stat.Render(units.Percent(snap.CPU)) + " " + v.sty.Dim.Render(components.Trend(data))
	return v.sty.Card.Render(v.sty.ChartCPU.Render(chart) + "\n" + footer)
}

// ramSeries returns the RAM values of the history, skipping samples whose
// RAM reading was not numeric.
func (v DashboardView) ramSeries() []float64 {
	data := make([]float64, 0, len(v.state.History))
	for _, p := range v.state.History {
		if p.RAMValid {
			data = append(data, p.RAM)
		}
	}
	return data
}

func (v DashboardView) renderRAMChart(snap *engine.Snapshot, width int) string {
	data := v.ramSeries()
	chart := components.RenderChart(data, width-4, chartHeight, "RAM", components.ChartOptions{
		Label:  func(f float64) string { return units.FormatBytes(f, 0) },
		XStart: v.firstLabel(),
		XEnd:   v.lastLabel(),
	})
	footer := v.sty.StatValue.Render(units.Bytes(snap.RAM)) + " " + v.sty.Dim.Render(components.Trend(data))
	return v.sty.Card.Render(v.sty.ChartRAM.Render(chart) + "\n" + footer)
}

func (v DashboardView) firstLabel() string {
	if len(v.state.History) == 0 {
		return ""
	}
	return v.state.History[0].Label
}

func (v DashboardView) lastLabel() string {
	if len(v.state.History) < 2 {
		return ""
	}
	return v.state.History[len(v.state.History)-1].Label
}

// renderTable renders the interface status table.
func (v DashboardView) renderTable() string {
	h := v.sty.TableHeader
	header := h.Render(padRight("Interface", colInterface)) +
		h.Render(padRight("Status", colStatus)) +
		h.Render(padLeft("In", colIn)) +
		h.Render(padLeft("Out", colOut)) +
		h.Render(padLeft("Err In", colErrIn)) +
		h.Render(padLeft("Err Out", colErrOut))

	lines := []string{header}
	if snap := v.state.Snapshot; snap != nil {
		for i, iface := range snap.Interfaces {
			lines = append(lines, v.renderInterfaceRow(iface, engine.DefaultInterfaceNames[i]))
		}
	}
	return v.sty.Card.Render(v.sty.CardTitle.Render("Interfaces") + "\n" + strings.Join(lines, "\n"))
}

// renderInterfaceRow renders a single interface row.
func (v DashboardView) renderInterfaceRow(iface engine.Interface, fallback string) string {
	row := v.sty.TableRow

	status := v.sty.StatusDown.Render(padRight("DOWN", colStatus))
	if iface.Up() {
		status = v.sty.StatusUp.Render(padRight("UP", colStatus))
	}

	errCell := func(m engine.Metric, w int) string {
		n, _ := m.Int()
		if n > 0 {
			return v.sty.ErrHigh.Render(padLeft(units.Count(m), w))
		}
		return row.Render(padLeft(units.Count(m), w))
	}

	return row.Render(padRight(truncate(iface.DisplayName(fallback), colInterface-1), colInterface)) +
		status +
		row.Render(padLeft(units.Bytes(iface.InOctets), colIn)) +
		row.Render(padLeft(units.Bytes(iface.OutOctets), colOut)) +
		errCell(iface.ErrIn, colErrIn) +
		errCell(iface.ErrOut, colErrOut)
}

// renderDebug renders the connection diagnostics panel.
func (v DashboardView) renderDebug() string {
	c := v.state.Conn
	status := "OK"
	if c.Error != "" {
		status = c.Error
	}
	lastOK := "never"
	if !c.LastSuccess.IsZero() {
		lastOK = c.LastSuccess.Format("15:04:05")
	}

	raw := "(none)"
	if v.state.Snapshot != nil && len(v.state.Snapshot.Raw) > 0 {
		raw = truncate(string(v.state.Snapshot.Raw), rawPreviewLen)
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}
	lines := []string{
		v.sty.DebugTitle.Render("Debug"),
		"endpoint:  " + v.state.BaseURL + engine.SnapshotPath,
		"status:    " + status,
		"trace:     " + c.Debug,
		"cycle:     " + strconv.FormatUint(v.state.Cycle, 10),
		fmt.Sprintf("attempts:  %d (%d failed), last ok %s", c.Attempts, c.Failures, lastOK),
		fmt.Sprintf("history:   %d/%d points", len(v.state.History), engine.HistoryCapacity),
		"raw:       " + raw,
	}
	return v.sty.Debug.Width(width).Render(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// clipLines keeps at most height lines of s.
func clipLines(s string, height int) string {
	if height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= height {
		return s
	}
	return strings.Join(lines[:height], "\n")
}

// fit cuts s to at most width display cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String()
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	s = fit(s, width)
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// padLeft pads s with spaces on the left to the given width.
func padLeft(s string, width int) string {
	s = fit(s, width)
	return strings.Repeat(" ", max(0, width-lipgloss.Width(s))) + s
}

// truncate shortens s to maxLen characters, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
