package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/splitscreen/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := ipc.NewClient().GetStatus()
		if err != nil {
			return daemonUnreachable(err)
		}
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), status)
		}
		return printStatus(cmd.OutOrStdout(), status)
	},
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the placements of the last layout pass",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := ipc.NewClient().GetLayout()
		if err != nil {
			return daemonUnreachable(err)
		}
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), data)
		}
		return printLayout(cmd.OutOrStdout(), data)
	},
}

var relayoutCmd = &cobra.Command{
	Use:   "relayout",
	Short: "Run a layout pass now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := ipc.NewClient().Relayout()
		if err != nil {
			return daemonUnreachable(err)
		}
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), data)
		}
		return printLayout(cmd.OutOrStdout(), data)
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List outputs and the players on each",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := ipc.NewClient().GetMonitors()
		if err != nil {
			return daemonUnreachable(err)
		}
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), data)
		}
		return printMonitors(cmd.OutOrStdout(), data)
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Ask the daemon to reload its config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := ipc.NewClient().Reload(); err != nil {
			return daemonUnreachable(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Config reloaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, layoutCmd, relayoutCmd, monitorsCmd, reloadCmd)
}

func daemonUnreachable(err error) error {
	return fmt.Errorf("%w (is the daemon running? try: splitscreen daemon)", err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStatus(w io.Writer, s *ipc.StatusData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Daemon:\trunning\n")
	fmt.Fprintf(tw, "Uptime:\t%s\n", time.Duration(s.UptimeSeconds)*time.Second)
	if s.Display != "" {
		fmt.Fprintf(tw, "Display:\t%s\n", s.Display)
	}
	fmt.Fprintf(tw, "Target windows:\t%d\n", s.TargetWindows)
	fmt.Fprintf(tw, "Layout passes:\t%d\n", s.LayoutPasses)
	fmt.Fprintf(tw, "Stacking passes:\t%d\n", s.StackingPasses)
	fmt.Fprintf(tw, "Dropped events:\t%d\n", s.DroppedEvents)
	fmt.Fprintf(tw, "Keep above:\t%t\n", s.KeepAbove)
	if s.LastPassUnix > 0 {
		fmt.Fprintf(tw, "Last pass:\t%s\n", time.Unix(s.LastPassUnix, 0).Format(time.RFC3339))
	}
	if s.LastError != "" {
		fmt.Fprintf(tw, "Last error:\t%s\n", s.LastError)
	}
	return tw.Flush()
}

func printLayout(w io.Writer, data *ipc.LayoutData) error {
	if len(data.Placements) == 0 && len(data.Skipped) == 0 {
		fmt.Fprintln(w, "No gamescope windows")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(data.Placements) > 0 {
		fmt.Fprintln(tw, "WINDOW\tCLASS\tOUTPUT\tSLOT\tGEOMETRY")
		for _, p := range data.Placements {
			fmt.Fprintf(tw, "0x%x\t%s\t%s\t%d/%d\t%dx%d+%d+%d\n",
				p.WindowID, p.Class, p.Output, p.Index+1, p.Players,
				p.Width, p.Height, p.X, p.Y)
		}
	}
	if len(data.Skipped) > 0 {
		if len(data.Placements) > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, "SKIPPED\tOUTPUT\tREASON")
		for _, s := range data.Skipped {
			output := s.Output
			if output == "" {
				output = "-"
			}
			fmt.Fprintf(tw, "0x%x\t%s\t%s\n", s.WindowID, output, s.Reason)
		}
	}
	fmt.Fprintf(tw, "\nKeep above: %t\n", data.KeepAbove)
	return tw.Flush()
}

func printMonitors(w io.Writer, data *ipc.MonitorsData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGEOMETRY\tPLAYERS")
	for _, m := range data.Monitors {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d+%d+%d\t%d\n",
			m.ID, m.Name, m.Width, m.Height, m.X, m.Y, m.Players)
	}
	return tw.Flush()
}
