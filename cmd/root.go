package cmd

import (
	"github.com/abhisek/counterline/internal/config"
	"github.com/abhisek/counterline/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "counterline",
	Short: "Fast food crew training in the terminal",
	Long: "Counterline — a seven-day fast food crew training game. Take orders, build burgers\n" +
		"and keep the counter clean against the clock to unlock the next day.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COUNTERLINE_DB env var)")
	rootCmd.PersistentFlags().String("scenarios", "", "Directory of day files to play instead of the built-in days (overrides COUNTERLINE_SCENARIOS)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides COUNTERLINE_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COUNTERLINE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
