package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/counterline/internal/scenario"
	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Work with day files",
}

var scenariosValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check day, tip and menu files against their schemas",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.ScenarioDir = args[0]
		}
		loader, err := scenarioLoader(cfg, slog.New(slog.DiscardHandler))
		if err != nil {
			return err
		}

		source := cfg.ScenarioDir
		if source == "" {
			source = "built-in days"
		}

		out := cmd.OutOrStdout()
		errs := loader.Validate()
		for _, e := range errs {
			fmt.Fprintln(out, "✗", e)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%s: %d invalid file(s)", source, len(errs))
		}

		scenarios, err := loader.LoadAll()
		if err != nil {
			return err
		}
		for _, sc := range scenarios {
			fmt.Fprintf(out, "✔ day %d  %-32s  %d stages  %d orders  %ds\n",
				sc.DayNumber, sc.Title, len(sc.Stages), sc.TotalOrders(), sc.TotalTime())
		}
		fmt.Fprintf(out, "%s: ok (format %s)\n", source, scenario.SupportedFormat)
		return nil
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosValidateCmd)
}
