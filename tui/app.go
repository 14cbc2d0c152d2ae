package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/snmpdash/internal/config"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/tui/components"
	"github.com/tonhe/snmpdash/tui/keys"
	"github.com/tonhe/snmpdash/tui/styles"
	"github.com/tonhe/snmpdash/tui/views"
)

// reportTimeout bounds a single PDF download.
const reportTimeout = 2 * time.Minute

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateDashboard AppState = iota
	StateDetail
	StateSettings
)

// StateSource is the refresh loop as seen by the UI.
type StateSource interface {
	State() engine.State
	Subscribe() <-chan engine.Event
	Refresh()
	Stop()
	Interval() time.Duration
}

// ReportSaver downloads the PDF report into a directory.
type ReportSaver interface {
	SaveReport(ctx context.Context, dir string) (string, error)
}

// TickMsg triggers a periodic UI refresh.
type TickMsg struct{}

// eventMsg carries a poller event into the update loop.
type eventMsg engine.Event

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// reportDoneMsg is sent when a report download finishes.
type reportDoneMsg struct {
	path string
	err  error
}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	state      AppState
	theme      styles.Theme
	themeSlug  string
	config     *config.Config
	configPath string
	version    string

	source StateSource
	events <-chan engine.Event
	report ReportSaver

	current   engine.State
	dashboard views.DashboardView
	detail    views.DetailView
	settings  views.SettingsView
	help      views.HelpView
	spinner   spinner.Model

	downloading bool
	status      string
	width       int
	height      int
}

// NewAppModel creates a new AppModel. configPath is where the settings view
// saves changes.
func NewAppModel(cfg *config.Config, configPath string, src StateSource, report ReportSaver, version string) AppModel {
	theme := styles.Resolve(cfg.Theme)
	slug := cfg.Theme
	if styles.GetThemeByName(slug) == nil {
		slug = styles.DefaultSlug
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Base0D)

	m := AppModel{
		state:      StateDashboard,
		theme:      theme,
		themeSlug:  slug,
		config:     cfg,
		configPath: configPath,
		version:    version,
		source:     src,
		events:     src.Subscribe(),
		report:     report,
		dashboard:  views.NewDashboardView(theme),
		detail:     views.NewDetailView(theme),
		help:       views.NewHelpView(theme),
		spinner:    sp,
	}
	m.setState(src.State())
	return m
}

// Init returns the initial commands: UI tick, spinner and the event wait.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick, waitForEvent(m.events))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent blocks on the next poller event.
func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func saveReportCmd(r ReportSaver, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		path, err := r.SaveReport(ctx, dir)
		return reportDoneMsg{path: path, err: err}
	}
}

func (m *AppModel) setState(st engine.State) {
	m.current = st
	m.dashboard.SetState(st)
	m.detail.SetState(st)
}

func (m *AppModel) applyTheme(slug string) {
	m.themeSlug = slug
	m.theme = styles.Resolve(slug)
	m.dashboard.SetTheme(m.theme)
	m.detail.SetTheme(m.theme)
	m.help.SetTheme(m.theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Base0D)
}

func (m *AppModel) resize() {
	// Body height = total - 1 (header) - 2 (status bar lines)
	bodyHeight := m.height - 3
	m.dashboard.SetSize(m.width, bodyHeight)
	m.detail.SetSize(m.width, bodyHeight)
	m.settings.SetSize(m.width, bodyHeight)
	m.help.SetSize(m.width, bodyHeight)
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case TickMsg:
		m.setState(m.source.State())
		return m, tickCmd()

	case eventMsg:
		m.setState(msg.State)
		return m, waitForEvent(m.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		if msg.Config == nil {
			return m, nil
		}
		if msg.Config.Theme != m.config.Theme && styles.GetThemeByName(msg.Config.Theme) != nil {
			m.applyTheme(msg.Config.Theme)
		}
		m.config = msg.Config
		m.status = "config reloaded"
		return m, nil

	case reportDoneMsg:
		m.downloading = false
		if msg.err != nil {
			log.Printf("report download failed: %v", msg.err)
			m.status = fmt.Sprintf("report failed: %v", msg.err)
		} else {
			log.Printf("report saved to %s", msg.path)
			m.status = "report saved to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.state {
		case StateSettings:
			return m.updateSettings(msg)
		case StateDetail:
			if key.Matches(msg, keys.DefaultKeyMap.Quit) {
				return m.quit()
			}
			var back bool
			m.detail, _, back = m.detail.Update(msg)
			if back {
				m.state = StateDashboard
			}
			return m, nil
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.source.Stop()
	return m, tea.Quit
}

func (m AppModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() {
		if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
			m.help.Toggle()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Quit):
		return m.quit()
	case key.Matches(msg, keys.DefaultKeyMap.Help):
		m.help.Toggle()
	case key.Matches(msg, keys.DefaultKeyMap.Debug):
		m.dashboard.ToggleDebug()
	case key.Matches(msg, keys.DefaultKeyMap.Refresh):
		m.source.Refresh()
		m.status = "refresh requested"
	case key.Matches(msg, keys.DefaultKeyMap.Theme):
		m.applyTheme(styles.NextTheme(m.themeSlug))
		m.status = "theme: " + m.theme.Name
	case key.Matches(msg, keys.DefaultKeyMap.Enter):
		m.state = StateDetail
	case key.Matches(msg, keys.DefaultKeyMap.Settings):
		m.settings = views.NewSettingsView(m.theme, m.config, m.configPath)
		m.settings.SetSize(m.width, m.height-3)
		m.state = StateSettings
	case key.Matches(msg, keys.DefaultKeyMap.Report):
		if m.downloading {
			return m, nil
		}
		m.downloading = true
		m.status = "downloading " + engine.ReportFileName
		return m, saveReportCmd(m.report, m.config.ReportDir)
	}
	return m, nil
}

func (m AppModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.SettingsAction
	m.settings, cmd, action = m.settings.Update(msg)
	switch action {
	case views.SettingsClose:
		m.state = StateDashboard
	case views.SettingsSaved:
		m.config = m.settings.Saved
		m.applyTheme(m.config.Theme)
		m.status = "settings saved"
		m.state = StateDashboard
	}
	return m, cmd
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	deviceName := ""
	if m.current.Snapshot != nil {
		deviceName = m.current.Snapshot.Name
	}
	header := components.RenderHeader(m.theme, deviceName, m.current.Online(), m.current.Loading, m.width, m.version)

	var body string
	switch m.state {
	case StateDetail:
		body = m.detail.View()
	case StateSettings:
		body = m.settings.View()
	default:
		body = m.dashboard.View()
	}
	if m.help.IsVisible() {
		body = m.help.View()
	}

	msg := m.status
	if m.downloading || m.current.Loading {
		msg = m.spinner.View() + " " + msg
	}
	statusBar := components.RenderStatusBar(m.theme, components.StatusInfo{
		Interval:    m.source.Interval(),
		LastSuccess: m.current.Conn.LastSuccess,
		Attempts:    m.current.Conn.Attempts,
		Failures:    m.current.Conn.Failures,
		Message:     msg,
	}, m.width)

	// Fill body to the available height between header and status bar
	bodyHeight := m.height - 1 - 2 // 1 header line, 2 status bar lines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
