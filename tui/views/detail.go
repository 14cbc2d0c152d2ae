package views

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/internal/units"
	"github.com/tonhe/snmpdash/tui/components"
	"github.com/tonhe/snmpdash/tui/keys"
	"github.com/tonhe/snmpdash/tui/styles"
)

// DetailView is a full-screen view with the complete device reading: the
// identity fields, raw interface counters, the sample history and the
// payload as received.
type DetailView struct {
	theme  styles.Theme
	sty    *styles.Styles
	state  engine.State
	offset int
	width  int
	height int
}

// NewDetailView creates a new DetailView with the given theme.
func NewDetailView(theme styles.Theme) DetailView {
	return DetailView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme swaps the palette used for rendering.
func (v *DetailView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// SetState updates the detail view with new data.
func (v *DetailView) SetState(st engine.State) {
	v.state = st
}

// SetSize updates the available dimensions for the view.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles key messages for the detail view. The third return value
// indicates whether the user wants to go back (Esc pressed).
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			v.offset = 0
			return v, nil, true
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.offset > 0 {
				v.offset--
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			v.offset++
		}
	}
	return v, nil, false
}

// View renders the detail view.
func (v DetailView) View() string {
	snap := v.state.Snapshot
	if snap == nil {
		msg := lipgloss.NewStyle().
			Foreground(v.theme.Base04).
			Align(lipgloss.Center).
			Render("No reading received yet")
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
	}

	var lines []string
	lines = append(lines, v.renderInfo(snap)...)
	lines = append(lines, "")
	lines = append(lines, v.renderCounters(snap)...)
	lines = append(lines, "")
	lines = append(lines, v.renderHistory()...)
	lines = append(lines, "")
	lines = append(lines, v.renderRaw(snap)...)

	// Keep one line for the help hint and scroll the rest.
	visible := v.height - 1
	if visible < 1 {
		visible = 1
	}
	offset := v.offset
	if maxOffset := len(lines) - visible; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n") + "\n" + v.renderHelp()
}

func (v DetailView) renderInfo(snap *engine.Snapshot) []string {
	labelStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Width(16)
	valueStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base05)
	highlightStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)

	cpuStyle := valueStyle
	if cpu, ok := snap.CPU.Float(); ok && cpu > engine.CPUThreshold {
		cpuStyle = v.sty.StatHigh
	}

	row := func(label string, value string, st lipgloss.Style) string {
		return fmt.Sprintf("  %s%s", labelStyle.Render(label), st.Render(value))
	}

	rows := []string{
		"",
		row("Name:", orDash(snap.Name), highlightStyle),
		row("Description:", orDash(snap.Description), valueStyle),
		row("Location:", orDash(snap.Location), valueStyle),
		row("Contact:", orDash(snap.Contact), valueStyle),
		row("Uptime:", fmt.Sprintf("%s (%s ticks)", units.Uptime(snap.UpTime), units.Count(snap.UpTime)), valueStyle),
		row("CPU:", units.Percent(snap.CPU), cpuStyle),
		row("RAM:", fmt.Sprintf("%s (%s bytes)", units.Bytes(snap.RAM), units.Count(snap.RAM)), valueStyle),
	}
	if snap.Error != "" {
		rows = append(rows, row("Error:", snap.Error, v.sty.FormError))
	}
	return rows
}

func (v DetailView) renderCounters(snap *engine.Snapshot) []string {
	rows := []string{"  " + v.sty.CardTitle.Render("Interface counters")}
	for i, iface := range snap.Interfaces {
		status := v.sty.StatusDown.Render("DOWN")
		if iface.Up() {
			status = v.sty.StatusUp.Render("UP")
		}
		rows = append(rows, fmt.Sprintf("  %s %s  status=%s in=%s out=%s errIn=%s errOut=%s",
			v.sty.Value.Render(padRight(iface.DisplayName(engine.DefaultInterfaceNames[i]), colInterface)),
			status,
			units.Count(iface.Status),
			units.Count(iface.InOctets),
			units.Count(iface.OutOctets),
			units.Count(iface.ErrIn),
			units.Count(iface.ErrOut),
		))
	}
	return rows
}

func (v DetailView) renderHistory() []string {
	rows := []string{"  " + v.sty.CardTitle.Render(fmt.Sprintf("History (%d/%d)", len(v.state.History), engine.HistoryCapacity))}
	if len(v.state.History) == 0 {
		return append(rows, "  "+v.sty.Dim.Render("no samples"))
	}
	cpuData := make([]float64, 0, len(v.state.History))
	ramData := make([]float64, 0, len(v.state.History))
	for _, p := range v.state.History {
		cpuData = append(cpuData, p.CPU)
		if p.RAMValid {
			ramData = append(ramData, p.RAM)
		}
	}
	rows = append(rows,
		"  "+v.sty.Label.Render("CPU trend")+v.sty.ChartCPU.Render(components.Sparkline(cpuData, engine.HistoryCapacity)),
		"  "+v.sty.Label.Render("RAM trend")+v.sty.ChartRAM.Render(components.Sparkline(ramData, engine.HistoryCapacity)),
		"",
	)

	rows = append(rows, "  "+v.sty.TableHeader.Render(padRight("Time", 10)+padLeft("CPU", 8)+padLeft("RAM", 14)))
	for i := len(v.state.History) - 1; i >= 0; i-- {
		p := v.state.History[i]
		ram := "--"
		if p.RAMValid {
			ram = units.FormatBytes(p.RAM, 2)
		}
		rows = append(rows, "  "+v.sty.TableRow.Render(
			padRight(p.Label, 10)+padLeft(fmt.Sprintf("%.1f%%", p.CPU), 8)+padLeft(ram, 14)))
	}
	return rows
}

func (v DetailView) renderRaw(snap *engine.Snapshot) []string {
	rows := []string{"  " + v.sty.CardTitle.Render("Payload")}
	if len(snap.Raw) == 0 {
		return append(rows, "  "+v.sty.Dim.Render("(none)"))
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, snap.Raw, "", "  "); err != nil {
		return append(rows, "  "+string(snap.Raw))
	}
	for _, l := range strings.Split(buf.String(), "\n") {
		rows = append(rows, "  "+v.sty.Dim.Render(l))
	}
	return rows
}

// renderHelp renders a help line at the bottom of the detail view.
func (v DetailView) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(v.theme.Base04)
	keyStyle := lipgloss.NewStyle().Foreground(v.theme.Base0D).Bold(true)
	return helpStyle.Render(fmt.Sprintf("  %s scroll  %s to go back",
		keyStyle.Render("[up/down]"), keyStyle.Render("[esc]")))
}
