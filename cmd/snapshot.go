package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/internal/units"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch one reading and print it with its alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), httpTimeout)
			defer cancel()

			snap, err := newClient(cmd).Fetch(ctx)
			if err != nil {
				return fmt.Errorf("fetching snapshot: %w", err)
			}

			out := cmd.OutOrStdout()
			if raw, _ := cmd.Flags().GetBool("json"); raw {
				var buf bytes.Buffer
				if err := json.Indent(&buf, snap.Raw, "", "  "); err != nil {
					return fmt.Errorf("formatting payload: %w", err)
				}
				buf.WriteByte('\n')
				_, err := buf.WriteTo(out)
				return err
			}
			printSnapshot(out, snap, engine.Evaluate(snap))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the raw payload instead of the summary")
	return cmd
}

func printSnapshot(w io.Writer, snap *engine.Snapshot, alerts []engine.Alert) {
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%-13s %s\n", label+":", value)
	}

	field("Name", snap.Name)
	field("Description", snap.Description)
	field("Location", snap.Location)
	field("Contact", snap.Contact)
	field("Uptime", units.Uptime(snap.UpTime))
	field("CPU", units.Percent(snap.CPU))
	field("RAM", units.Bytes(snap.RAM))
	if snap.Error != "" {
		field("Error", snap.Error)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Interfaces:")
	for i, iface := range snap.Interfaces {
		status := "DOWN"
		if iface.Up() {
			status = "UP"
		}
		fmt.Fprintf(w, "  %-22s %-5s in %-12s out %-12s errors %s/%s\n",
			iface.DisplayName(engine.DefaultInterfaceNames[i]),
			status,
			units.Bytes(iface.InOctets),
			units.Bytes(iface.OutOctets),
			units.Count(iface.ErrIn),
			units.Count(iface.ErrOut),
		)
	}

	fmt.Fprintln(w)
	if len(alerts) == 0 {
		fmt.Fprintln(w, "Alerts: none")
		return
	}
	fmt.Fprintln(w, "Alerts:")
	for _, a := range alerts {
		fmt.Fprintf(w, "  [%s] %s\n", a.Severity, a.Message)
	}
}
