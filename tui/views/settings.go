package views

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/internal/config"
	"github.com/tonhe/snmpdash/tui/keys"
	"github.com/tonhe/snmpdash/tui/styles"
)

// SettingsAction describes what the app should do after a settings update.
type SettingsAction int

const (
	// SettingsNone means continue in the settings view.
	SettingsNone SettingsAction = iota
	// SettingsClose means the user cancelled without saving.
	SettingsClose
	// SettingsSaved means the config was saved; the app should apply changes.
	SettingsSaved
)

// Settings field indices.
const (
	settingsFieldTheme     = 0
	settingsFieldReportDir = 1
	settingsFieldListen    = 2
	settingsFieldLogFile   = 3
	settingsFieldCount     = 4
)

// SettingsView is a full-screen settings editor with a live theme preview.
type SettingsView struct {
	theme  styles.Theme
	sty    *styles.Styles
	config *config.Config
	path   string

	themeIndex int // index into styles.ListThemes()
	cursor     int // which setting row is focused

	width  int
	height int

	reportDirInput textinput.Model
	listenInput    textinput.Model
	logFileInput   textinput.Model

	err        string
	Saved *config.Config // the persisted config after a successful save
}

// NewSettingsView creates a fresh SettingsView populated from cfg. Saving
// writes to path.
func NewSettingsView(theme styles.Theme, cfg *config.Config, path string) SettingsView {
	themeIdx := 0
	for i, slug := range styles.ListThemes() {
		if slug == cfg.Theme {
			themeIdx = i
		}
	}

	reportDirInput := textinput.New()
	reportDirInput.Placeholder = "."
	reportDirInput.CharLimit = 256
	reportDirInput.Width = 40
	reportDirInput.SetValue(cfg.ReportDir)

	listenInput := textinput.New()
	listenInput.Placeholder = "127.0.0.1:8080"
	listenInput.CharLimit = 64
	listenInput.Width = 40
	listenInput.SetValue(cfg.ListenAddr)

	logFileInput := textinput.New()
	logFileInput.Placeholder = "default"
	logFileInput.CharLimit = 256
	logFileInput.Width = 40
	logFileInput.SetValue(cfg.LogFile)

	return SettingsView{
		theme:          theme,
		sty:            styles.NewStyles(theme),
		config:         cfg,
		path:           path,
		themeIndex:     themeIdx,
		reportDirInput: reportDirInput,
		listenInput:    listenInput,
		logFileInput:   logFileInput,
	}
}

// SetSize updates the available dimensions for the settings view.
func (s *SettingsView) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// selectedThemeSlug returns the slug of the currently selected theme.
func (s SettingsView) selectedThemeSlug() string {
	themes := styles.ListThemes()
	if s.themeIndex >= 0 && s.themeIndex < len(themes) {
		return themes[s.themeIndex]
	}
	return ""
}

// selectedTheme returns the Theme struct for the currently selected theme.
func (s SettingsView) selectedTheme() styles.Theme {
	return styles.Resolve(s.selectedThemeSlug())
}

// focusInput blurs all inputs and focuses the one at the cursor position.
func (s *SettingsView) focusInput() {
	s.reportDirInput.Blur()
	s.listenInput.Blur()
	s.logFileInput.Blur()

	switch s.cursor {
	case settingsFieldReportDir:
		s.reportDirInput.Focus()
	case settingsFieldListen:
		s.listenInput.Focus()
	case settingsFieldLogFile:
		s.logFileInput.Focus()
	}
}

// cycleTheme moves the theme selection by delta and refreshes the preview.
func (s *SettingsView) cycleTheme(delta int) {
	n := len(styles.ListThemes())
	s.themeIndex = (s.themeIndex + delta + n) % n
	s.theme = s.selectedTheme()
	s.sty = styles.NewStyles(s.theme)
}

// Update handles messages for the settings view.
func (s SettingsView) Update(msg tea.Msg) (SettingsView, tea.Cmd, SettingsAction) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			return s, nil, SettingsClose

		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			return s.save()

		case msg.String() == "up":
			if s.cursor > 0 {
				s.cursor--
				s.focusInput()
			}
			return s, nil, SettingsNone

		case msg.String() == "down":
			if s.cursor < settingsFieldCount-1 {
				s.cursor++
				s.focusInput()
			}
			return s, nil, SettingsNone

		case key.Matches(msg, keys.DefaultKeyMap.Tab):
			s.cursor = (s.cursor + 1) % settingsFieldCount
			s.focusInput()
			return s, nil, SettingsNone

		case msg.String() == "shift+tab":
			s.cursor = (s.cursor + settingsFieldCount - 1) % settingsFieldCount
			s.focusInput()
			return s, nil, SettingsNone

		case s.cursor == settingsFieldTheme && key.Matches(msg, keys.DefaultKeyMap.Left):
			s.cycleTheme(-1)
			return s, nil, SettingsNone

		case s.cursor == settingsFieldTheme && key.Matches(msg, keys.DefaultKeyMap.Right):
			s.cycleTheme(1)
			return s, nil, SettingsNone

		default:
			return s.updateTextInput(msg)
		}
	}
	return s, nil, SettingsNone
}

// updateTextInput dispatches a key message to the currently focused text input.
func (s SettingsView) updateTextInput(msg tea.Msg) (SettingsView, tea.Cmd, SettingsAction) {
	var cmd tea.Cmd
	switch s.cursor {
	case settingsFieldReportDir:
		s.reportDirInput, cmd = s.reportDirInput.Update(msg)
	case settingsFieldListen:
		s.listenInput, cmd = s.listenInput.Update(msg)
	case settingsFieldLogFile:
		s.logFileInput, cmd = s.logFileInput.Update(msg)
	}
	return s, cmd, SettingsNone
}

// save validates and persists the config to disk.
func (s SettingsView) save() (SettingsView, tea.Cmd, SettingsAction) {
	listen := strings.TrimSpace(s.listenInput.Value())
	if listen == "" {
		listen = config.DefaultConfig().ListenAddr
	}
	if _, _, err := net.SplitHostPort(listen); err != nil {
		s.err = fmt.Sprintf("Invalid listen address: %v", err)
		return s, nil, SettingsNone
	}

	reportDir := strings.TrimSpace(s.reportDirInput.Value())
	if reportDir == "" {
		reportDir = "."
	}

	next := *s.config
	next.Theme = s.selectedThemeSlug()
	next.ReportDir = reportDir
	next.ListenAddr = listen
	next.LogFile = strings.TrimSpace(s.logFileInput.Value())

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.err = fmt.Sprintf("Failed to create directories: %v", err)
		return s, nil, SettingsNone
	}
	if err := config.SaveConfig(&next, s.path); err != nil {
		s.err = fmt.Sprintf("Failed to save config: %v", err)
		return s, nil, SettingsNone
	}

	s.Saved = &next
	s.err = ""
	return s, nil, SettingsSaved
}

// View renders the settings screen.
func (s SettingsView) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.theme.Base0D).
		Bold(true)
	activeLabelStyle := lipgloss.NewStyle().
		Foreground(s.theme.Base0D).
		Bold(true)
	valStyle := lipgloss.NewStyle().
		Foreground(s.theme.Base06)

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Settings") + "\n")
	b.WriteString("  " + s.sty.Dim.Render(s.path) + "\n")
	b.WriteString("\n")

	if s.err != "" {
		b.WriteString("  " + s.sty.FormError.Render(s.err) + "\n\n")
	}

	themeName := s.selectedTheme().Name
	themeDisplay := fmt.Sprintf("< %s >  (%d/%d)", themeName, s.themeIndex+1, len(styles.ListThemes()))

	type settingsRow struct {
		label   string
		display string
		isInput bool
		input   string
	}

	rows := []settingsRow{
		{"Theme", themeDisplay, false, ""},
		{"Report Directory", "", true, s.reportDirInput.View()},
		{"Listen Address", "", true, s.listenInput.View()},
		{"Log File", "", true, s.logFileInput.View()},
	}

	for i, row := range rows {
		indicator := "  "
		lbl := s.sty.FormLabel
		if i == s.cursor {
			indicator = activeLabelStyle.Render("> ")
			lbl = activeLabelStyle
		}

		label := lbl.Render(padRight(row.label+":", 20))
		if row.isInput {
			b.WriteString(fmt.Sprintf("  %s%s%s\n", indicator, label, row.input))
		} else {
			b.WriteString(fmt.Sprintf("  %s%s%s\n", indicator, label, valStyle.Render(row.display)))
		}
	}

	b.WriteString("\n")
	b.WriteString(s.renderThemePreview())

	b.WriteString("\n")
	b.WriteString("  " + s.renderHelp() + "\n")

	return b.String()
}

// renderThemePreview renders a small preview panel showing the selected theme's colors.
func (s SettingsView) renderThemePreview() string {
	previewTheme := s.selectedTheme()
	sty := styles.NewStyles(previewTheme)

	sepStyle := lipgloss.NewStyle().Foreground(previewTheme.Base03)
	titleStyle := lipgloss.NewStyle().Foreground(previewTheme.Base0D).Bold(true)

	previewWidth := 56
	if s.width > 0 && s.width-6 < previewWidth {
		previewWidth = s.width - 6
	}
	if previewWidth < 30 {
		previewWidth = 30
	}

	var b strings.Builder

	label := " Theme Preview "
	dashCount := previewWidth - len(label)
	if dashCount < 2 {
		dashCount = 2
	}
	leftDash := dashCount / 2
	rightDash := dashCount - leftDash
	b.WriteString("  " + sepStyle.Render(strings.Repeat("-", leftDash)) + titleStyle.Render(label) + sepStyle.Render(strings.Repeat("-", rightDash)) + "\n")

	b.WriteString("  " + sty.AlertCritical.Render("CRITICAL: CPU load is 91% (threshold: 80%)") + "\n")
	b.WriteString("  " + sty.AlertWarning.Render("WARNING: interface GigabitEthernet0/1 is DOWN") + "\n")

	b.WriteString("  " + fmt.Sprintf("  %s%s%s",
		sty.TableHeader.Render(padRight("Interface", 22)),
		sty.TableHeader.Render(padRight("Status", 8)),
		sty.TableHeader.Render(padLeft("Err In", 8)),
	) + "\n")
	b.WriteString("  " + fmt.Sprintf("  %s%s%s",
		sty.TableRow.Render(padRight("GigabitEthernet0/0", 22)),
		sty.StatusUp.Render(padRight("UP", 8)),
		sty.ErrHigh.Render(padLeft("3", 8)),
	) + "\n")
	b.WriteString("  " + fmt.Sprintf("  %s%s%s",
		sty.TableRow.Render(padRight("GigabitEthernet0/1", 22)),
		sty.StatusDown.Render(padRight("DOWN", 8)),
		sty.TableRow.Render(padLeft("0", 8)),
	) + "\n")

	b.WriteString("  " + sty.ChartCPU.Render("CPU ▂▃▅▇█▆") + "  " + sty.ChartRAM.Render("RAM ▄▄▅▅▆▆") + "\n")
	b.WriteString("  " + sepStyle.Render(strings.Repeat("-", previewWidth)) + "\n")

	return b.String()
}

// renderHelp renders the help line for the settings view.
func (s SettingsView) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(s.theme.Base04)
	keyStyle := lipgloss.NewStyle().Foreground(s.theme.Base0D).Bold(true)

	hint := fmt.Sprintf(
		"%s/%s navigate  %s save  %s cancel",
		keyStyle.Render("[up]"),
		keyStyle.Render("[down]"),
		keyStyle.Render("[enter]"),
		keyStyle.Render("[esc]"),
	)
	if s.cursor == settingsFieldTheme {
		hint = fmt.Sprintf("%s/%s cycle theme  ", keyStyle.Render("[left]"), keyStyle.Render("[right]")) + hint
	}
	return helpStyle.Render(hint)
}
