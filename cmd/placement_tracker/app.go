package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/jonathan/placement-tracker/internal/config"
	"github.com/jonathan/placement-tracker/internal/observability"
	"github.com/jonathan/placement-tracker/internal/repository"
	"github.com/jonathan/placement-tracker/internal/store"
	"github.com/jonathan/placement-tracker/internal/timesource"
	"github.com/jonathan/placement-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

// app bundles what every subcommand needs.
type app struct {
	cfg     config.Config
	svc     *tracker.Service
	store   store.Store
	logger  *slog.Logger
	printer *observability.Printer
	out     io.Writer
}

// resolveConfig layers defaults, the config file, the environment and flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = storeName
	}
	if flags.Changed("store-path") {
		cfg.StorePath = storePath
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = redisURL
	}
	if offline {
		cfg.Offline = true
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp connects the configured store and builds the tracker service.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)

	st, err := store.Open(cmd.Context(), cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	logger.Debug("store opened", "backend", cfg.Store)

	var clock timesource.Clock = timesource.Local
	if !cfg.Offline && cfg.TimeAPIURL != "" {
		clock = timesource.NewRemote(cfg.TimeAPIURL, cfg.Timeout(), logger)
	}

	svc := tracker.New(repository.New(st, logger),
		tracker.WithClock(clock),
		tracker.WithPlanOptions(cfg.PlanOptions()),
		tracker.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		svc:     svc,
		store:   st,
		logger:  logger,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
	}, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}

// emit prints v as JSON with --json, otherwise runs the human-readable printer.
func (a *app) emit(v any, human func()) error {
	if jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human()
	return nil
}

// printf writes a confirmation line unless --json is set.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (a *app) printf(format string, args ...any) {
	if !jsonOutput {
		fmt.Fprintf(a.out, format, args...)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseNumber(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return n, nil
}
