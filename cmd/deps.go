package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/counterline/internal/config"
	"github.com/abhisek/counterline/internal/logging"
	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/store"
	"github.com/spf13/cobra"
)

// depOpts selects how a command's dependencies are built.
type depOpts struct {
	// logToFile sends logs to the log file (default under the data dir)
	// instead of stderr, for the TUI.
	logToFile bool
	// ephemeral keeps progress in memory and skips the database.
	ephemeral bool
}

// deps is what the subcommands share.
type deps struct {
	cfg     *config.Config
	logger  *slog.Logger
	loader  *scenario.Loader
	store   *store.Store // nil when ephemeral
	tracker *progress.Tracker
	closers []io.Closer
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
	}
	if dir, _ := cmd.Flags().GetString("scenarios"); dir != "" {
		cfg.ScenarioDir = dir
	}
	return cfg, nil
}

// openDeps builds the logger, scenario loader, store and tracker. Callers
// must Close the result.
func openDeps(cmd *cobra.Command, opts depOpts) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	logFile := cfg.LogFile
	if logFile == "" && opts.logToFile {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "counterline.log")
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   logFile,
	}, os.Stderr)
	if err != nil {
		return nil, err
	}
	d.logger = logger
	d.closers = append(d.closers, closer)

	d.loader, err = scenarioLoader(cfg, logger)
	if err != nil {
		d.Close()
		return nil, err
	}

	var ps progress.Store = progress.NewMemoryStore()
	if !opts.ephemeral {
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, logging.WithComponent(logger, "store"))
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.store = st
		d.closers = append(d.closers, st)
		ps = st.ProgressStore()
	}

	d.tracker, err = progress.New(cmd.Context(), ps, progress.WithLogger(logging.WithComponent(logger, "progress")))
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return d, nil
}

// events returns the session event log, or nil when running ephemeral.
func (d *deps) events() store.EventRepo {
	if d.store == nil {
		return nil
	}
	return d.store.EventRepo()
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// scenarioLoader reads day files from the configured directory, or the
// built-in pack.
func scenarioLoader(cfg *config.Config, logger *slog.Logger) (*scenario.Loader, error) {
	l := logging.WithComponent(logger, "scenario")
	if cfg.ScenarioDir == "" {
		return scenario.Builtin(l), nil
	}
	loader, err := scenario.Dir(cfg.ScenarioDir, l)
	if err != nil {
		return nil, fmt.Errorf("open scenarios: %w", err)
	}
	return loader, nil
}
