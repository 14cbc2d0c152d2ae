package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tonhe/snmpdash/internal/config"
	"github.com/tonhe/snmpdash/tui/styles"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme NAME",
		Short: "Set the default theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if styles.GetThemeByName(name) == nil {
				return fmt.Errorf("unknown theme %q (run 'snmpdash themes')", name)
			}
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Theme = name
			if err := saveConfig(cmd, cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default theme set to %q.\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "theme       = %s\n", cfg.Theme)
			fmt.Fprintf(w, "listen_addr = %s\n", cfg.ListenAddr)
			fmt.Fprintf(w, "report_dir  = %s\n", cfg.ReportDir)
			logPath, err := cfg.LogPath()
			if err != nil {
				logPath = "(unavailable)"
			}
			fmt.Fprintf(w, "log_file    = %s\n", logPath)
			return nil
		},
	})

	return cmd
}

// saveConfig writes cfg to path, creating directories as needed.
func saveConfig(cmd *cobra.Command, cfg *config.Config, path string) error {
	if path == "" {
		p, err := configPath(cmd)
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range styles.ListThemes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, styles.Themes[name].Name)
			}
		},
	}
}
