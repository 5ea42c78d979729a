package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List training days and your best results",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depOpts{})
		if err != nil {
			return err
		}
		defer d.Close()

		scenarios, err := d.loader.LoadAll()
		if err != nil {
			return fmt.Errorf("load days: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-32s  %-8s  %5s  %5s  %8s\n",
			"Day", "Title", "Status", "Best", "Grade", "Attempts")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		for _, sc := range scenarios {
			status := "locked"
			if d.tracker.IsDayUnlocked(sc.DayNumber) {
				status = "open"
			}
			best, grade, attempts := "-", "-", 0
			if p, ok := d.tracker.Progress(sc.ID); ok {
				if p.Completed {
					status = "passed"
				}
				best = fmt.Sprintf("%d", p.BestScore)
				grade = string(p.BestGrade)
				attempts = p.AttemptCount
			}
			title := sc.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			fmt.Fprintf(out, "%-4d  %-32s  %-8s  %5s  %5s  %8d\n",
				sc.DayNumber, title, status, best, grade, attempts)
		}

		fmt.Fprintf(out, "\n%d/%d days passed\n", d.tracker.CompletedDays(), len(scenarios))
		return nil
	},
}
