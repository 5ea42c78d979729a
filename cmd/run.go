package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abhisek/counterline/internal/autoplay"
	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/logging"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/session"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one day without the TUI",
	Long: "Play one day on the command line. Orders are read from stdin, one answer per line,\n" +
		"or answered automatically with --auto.",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetInt("day")
		auto, _ := cmd.Flags().GetBool("auto")
		ephemeral, _ := cmd.Flags().GetBool("ephemeral")
		interval, _ := cmd.Flags().GetDuration("interval")
		force, _ := cmd.Flags().GetBool("force")

		d, err := openDeps(cmd, depOpts{ephemeral: ephemeral})
		if err != nil {
			return err
		}
		defer d.Close()

		sc, err := d.loader.LoadDay(day)
		if err != nil {
			return fmt.Errorf("load day: %w", err)
		}
		if !force && !d.tracker.IsDayUnlocked(sc.DayNumber) {
			return fmt.Errorf("day %d is locked; pass day %d first (or use --force)", sc.DayNumber, sc.DayNumber-1)
		}

		out := cmd.OutOrStdout()
		var answerer autoplay.Answerer = autoplay.Scripted{}
		if !auto {
			answerer = autoplay.NewLines(cmd.InOrStdin(), out)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "Day %d: %s\n%s\n\n", sc.DayNumber, sc.Title, sc.Description)

		runner := autoplay.New(autoplay.Options{
			Interval: interval,
			Answerer: answerer,
			Reporter: d.tracker,
			Events:   d.events(),
			Logger:   logging.WithComponent(d.logger, "session"),
			OnServed: func(o scenario.Order, v judge.Verdict) {
				mark := "✔"
				if !v.Correct {
					mark = "✗"
				}
				fmt.Fprintf(out, "  %s %-12s satisfaction %3.0f\n", mark, o.CustomerName, v.Satisfaction)
			},
		})

		res, err := runner.Run(ctx, sc)
		if res.SessionID != "" {
			printResult(cmd, sc, res)
		}
		return err
	},
}

func init() {
	runCmd.Flags().Int("day", 1, "Day number to play")
	runCmd.Flags().Bool("auto", false, "Answer every order correctly without prompting")
	runCmd.Flags().Bool("ephemeral", false, "Keep progress in memory only")
	runCmd.Flags().Duration("interval", time.Second, "Wall time per countdown second")
	runCmd.Flags().Bool("force", false, "Play a day even if it is still locked")
}

// printResult writes a plain-text rendering of the session summary.
func printResult(cmd *cobra.Command, sc scenario.Scenario, res session.Result) {
	sum := session.BuildSummary(res, sc.Title, sc.UnlockTips)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s — %s (%s)\n", sum.Title, strings.ToUpper(string(sum.Reason)), session.FormatClock(int(sum.Duration.Seconds())))
	fmt.Fprintln(out, strings.Repeat("─", 48))
	fmt.Fprintf(out, "Orders        %d/%d (%d correct)\n", sum.CompletedOrders, sum.TotalOrders, sum.CorrectOrders)
	fmt.Fprintf(out, "Accuracy      %5.1f\n", sum.Score.Accuracy)
	fmt.Fprintf(out, "Speed         %5.1f  (avg %s)\n", sum.Score.Speed, session.FormatClock(int(sum.AverageTime.Seconds())))
	fmt.Fprintf(out, "Satisfaction  %5.1f\n", sum.Score.Satisfaction)
	fmt.Fprintf(out, "Compliance    %5.1f\n", sum.Score.Compliance)
	fmt.Fprintf(out, "Total         %5d  grade %s  (required %d)\n", sum.Total, sum.Grade, sum.RequiredScore)

	for _, m := range sum.Mistakes {
		fmt.Fprintf(out, "  - #%d %s (-%d)\n", m.OrderNumber, m.Description, m.DeductedPoints)
	}
	if sum.Passed {
		fmt.Fprintln(out, "PASSED")
		for _, tip := range sum.UnlockedTips {
			fmt.Fprintf(out, "  unlocked %s\n", tip)
		}
	} else {
		fmt.Fprintln(out, "NOT PASSED")
	}
}
