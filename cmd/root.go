// Package cmd implements the snmpdash command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tonhe/snmpdash/internal/config"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/tui"
	"github.com/tonhe/snmpdash/tui/styles"
)

// baseURL is the backend every command talks to.
var baseURL = engine.DefaultBaseURL

// httpTimeout bounds a single request made by the one-shot commands.
const httpTimeout = 30 * time.Second

// NewRootCmd builds the command tree. Running it without a subcommand
// launches the terminal dashboard.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "snmpdash",
		Short: "snmpdash - live dashboard for an SNMP-monitored device",
		Long: `snmpdash polls the SNMP monitoring backend every 5 seconds and shows the
device status, CPU and RAM history, interface table and alerts in the
terminal or, with 'snmpdash serve', in the browser.`,
		SilenceUsage: true,
		Version:      version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, version)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default is the platform config dir)")
	root.Flags().String("theme", "", "theme override for this session")

	root.AddCommand(
		newServeCmd(),
		newSnapshotCmd(),
		newReportCmd(),
		newConfigCmd(),
		newThemesCmd(),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// configPath returns the --config flag or the default config location.
func configPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.GetConfigPath()
}

// loadConfig loads the config file, falling back to defaults when the
// config dir cannot be determined.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := configPath(cmd)
	if err != nil {
		return config.DefaultConfig(), "", nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, path, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, path, nil
}

// newClient returns a backend client identifying itself with the version
// of the running binary.
func newClient(cmd *cobra.Command) *engine.Client {
	c := engine.NewClient(baseURL, &http.Client{})
	c.UserAgent = engine.UserAgent(cmd.Root().Version)
	return c
}

// setupTUILog routes the log package to the log file for the lifetime of the
// TUI. Logging is discarded if the file cannot be opened.
func setupTUILog(cfg *config.Config) func() {
	path, err := cfg.LogPath()
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "snmpdash")
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

func runTUI(cmd *cobra.Command, version string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		if styles.GetThemeByName(theme) == nil {
			return fmt.Errorf("unknown theme %q (run 'snmpdash themes')", theme)
		}
		cfg.Theme = theme
	}

	closeLog := setupTUILog(cfg)
	defer closeLog()

	client := newClient(cmd)
	poller := engine.NewPoller(client, client.BaseURL())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := poller.Run(ctx); err != nil {
			log.Printf("poller: %v", err)
		}
	}()

	log.Printf("starting dashboard for %s", client.BaseURL())
	model := tui.NewAppModel(cfg, path, poller, client, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if path != "" {
		go forwardConfigReloads(ctx, p, path)
	}
	_, runErr := p.Run()

	poller.Stop()
	cancel()
	<-done
	if runErr != nil {
		return fmt.Errorf("running dashboard: %w", runErr)
	}
	return nil
}

// forwardConfigReloads feeds config file changes into the running program.
func forwardConfigReloads(ctx context.Context, p *tea.Program, path string) {
	updates, err := config.Watch(ctx, path)
	if err != nil {
		log.Printf("config watch disabled: %v", err)
		return
	}
	for cfg := range updates {
		p.Send(tui.ConfigReloadedMsg{Config: cfg})
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the snmpdash version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snmpdash v%s\n", version)
		},
	}
}
