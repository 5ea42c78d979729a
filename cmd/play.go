package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/counterline/internal/app"
	"github.com/abhisek/counterline/internal/logging"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the training game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("skip-intro", false, "Go straight to the day list")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, depOpts{logToFile: true})
	if err != nil {
		return err
	}
	defer d.Close()

	scenarios, err := d.loader.LoadAll()
	if err != nil {
		return fmt.Errorf("load days: %w", err)
	}
	tips, err := d.loader.LoadTips()
	if err != nil && !errors.Is(err, scenario.ErrNotFound) {
		return fmt.Errorf("load tips: %w", err)
	}
	menu, err := d.loader.LoadMenu()
	if err != nil && !errors.Is(err, scenario.ErrNotFound) {
		return fmt.Errorf("load menu: %w", err)
	}

	skip, _ := cmd.Flags().GetBool("skip-intro")
	d.logger.Info("starting tui", "days", len(scenarios), "tips", len(tips))

	return app.Run(app.Options{
		Scenarios:   scenarios,
		Menu:        menu,
		Tips:        tips,
		Tracker:     d.tracker,
		Events:      d.events(),
		Logger:      logging.WithComponent(d.logger, "session"),
		SkipWelcome: skip,
	})
}
