package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/counterline/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training progress and recent shifts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd, depOpts{})
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Progress      %.0f%% (%d days passed)\n",
			d.tracker.OverallProgress()*100, d.tracker.CompletedDays())
		fmt.Fprintf(out, "Tips          %d unlocked\n", len(d.tracker.UnlockedContent()))

		repo := d.events()
		total, err := repo.CountSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		fmt.Fprintf(out, "Shifts        %d\n\n", total)

		events, err := repo.SessionEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		fmt.Fprintf(out, "%-16s  %-6s  %-10s  %7s  %5s  %5s\n",
			"When", "Day", "Ended", "Orders", "Score", "Grade")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		shown := 0
		for _, ev := range events {
			if ev.Action != store.ActionEnd {
				continue
			}
			fmt.Fprintf(out, "%-16s  %-6s  %-10s  %3d/%-3d  %5d  %5s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.DayID, ev.Reason,
				ev.CompletedOrders, ev.TotalOrders, ev.Score, ev.Grade)
			shown++
			if shown == limit {
				break
			}
		}
		if shown == 0 {
			fmt.Fprintln(out, "No shifts yet.")
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent shifts to show")
}
