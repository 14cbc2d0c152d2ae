package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF report as raport.pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("output")
			if dir == "" {
				cfg, _, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				dir = cfg.ReportDir
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), httpTimeout)
			defer cancel()

			path, err := newClient(cmd).SaveReport(ctx, dir)
			if err != nil {
				return fmt.Errorf("downloading report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "directory to save into (default is report_dir)")
	return cmd
}
