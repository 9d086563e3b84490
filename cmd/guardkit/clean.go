package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mcpguard/guardkit/internal/config"
	"github.com/mcpguard/guardkit/internal/database"
	"github.com/mcpguard/guardkit/internal/log"
	"github.com/mcpguard/guardkit/internal/model"
	"github.com/mcpguard/guardkit/internal/report"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <input> <output>",
		Short: "Filter excluded issue blocks out of an audit report",
		Long: `Clean removes excluded issue blocks from a markdown audit report.

The report is split on its "---" block delimiter, every block containing a
configured marker substring (default "#### Magic value") is dropped, and the
remaining blocks are reassembled byte for byte. The "- **Issues Found:** N"
line in the report header is rewritten to the new total. Per-severity section
counts are intentionally left as written.

Each run is recorded in the local history database unless --no-save is given.

Examples:
  # Clean a single report
  guardkit clean audit.md audit.clean.md

  # Remove a different finding class
  guardkit clean --marker "#### Unwrapped error" audit.md audit.clean.md

  # Clean several reports into a directory
  guardkit clean --out-dir cleaned/ audit1.md audit2.md audit3.md

  # Write a markdown digest of the run
  guardkit clean --summary clean-summary.md audit.md audit.clean.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCleanCmd,
	}

	cmd.Flags().StringArrayP("marker", "m", nil,
		"Marker substring that flags a block for removal (repeatable, overrides config)")
	cmd.Flags().StringP("summary", "s", "",
		"Write a markdown clean-run summary to this path")
	cmd.Flags().StringP("out-dir", "d", "",
		"Batch mode: clean every input into this directory under its own name")
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Maximum concurrent file cleans in batch mode")
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")
	cmd.Flags().StringP("config", "c", "",
		"Path to the configuration file (default: .guardkit in CWD or home)")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCleanConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	cleaner := report.NewCleaner(
		report.WithMarkers(cfg.Markers...),
		report.WithLogger(logger),
	)

	var results []report.Result
	if cfg.OutputDir != "" {
		results, err = runBatchClean(cmd.Context(), cfg, cleaner, args, logger)
	} else {
		results, err = runSingleClean(cfg, cleaner, args)
	}
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d excluded issue block(s) from %s\n",
			r.Removed, r.InputPath)
	}

	if cfg.SummaryFile != "" {
		if err := writeCleanSummary(cfg.SummaryFile, results); err != nil {
			return err
		}
	}

	if cfg.SaveHistory {
		if err := saveCleanHistory(cmd.Context(), cfg, results, logger); err != nil {
			// History is an audit convenience; a broken database must not
			// fail a run whose output file is already written.
			logger.Warn("failed to record clean history", "error", err)
		}
	}

	return nil
}

// buildCleanConfig assembles the effective configuration from defaults,
// the optional config file, and flags, then validates it.
func buildCleanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if found := config.FindConfigFile(configPath); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		file.Apply(cfg)
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	markers, err := cmd.Flags().GetStringArray("marker")
	if err != nil {
		return nil, err
	}
	if len(markers) > 0 {
		cfg.Markers = markers
	}

	if cfg.SummaryFile, err = cmd.Flags().GetString("summary"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = cmd.Flags().GetString("out-dir"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noSave

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Argument shape depends on mode: a single clean takes exactly an
	// input and an output path; batch mode takes one or more inputs.
	if cfg.OutputDir == "" && len(args) != 2 {
		return nil, errors.New("expected <input> and <output> arguments (or use --out-dir for batch mode)")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runSingleClean cleans one input/output pair.
func runSingleClean(cfg *config.Config, cleaner *report.Cleaner, args []string) ([]report.Result, error) {
	result, err := cleaner.CleanFile(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return []report.Result{result}, nil
}

// runBatchClean cleans every input into cfg.OutputDir under its base name.
func runBatchClean(ctx context.Context, cfg *config.Config, cleaner *report.Cleaner, inputs []string, logger *slog.Logger) ([]report.Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pairs := make([]report.Pair, 0, len(inputs))
	for _, input := range inputs {
		pairs = append(pairs, report.Pair{
			Input:  input,
			Output: filepath.Join(cfg.OutputDir, filepath.Base(input)),
		})
	}

	batch := report.NewBatchCleaner(cleaner,
		report.WithConcurrency(cfg.Concurrency),
		report.WithBatchLogger(logger),
	)
	return batch.CleanAll(ctx, pairs)
}

// writeCleanSummary writes the markdown run digest to path.
func writeCleanSummary(path string, results []report.Result) error {
	f, err := os.Create(path) //nolint:gosec // User-provided summary path is intentional
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	if err := report.NewSummaryWriter(f).Write(results); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// saveCleanHistory records every result in the history database.
func saveCleanHistory(ctx context.Context, cfg *config.Config, results []report.Result, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	for _, r := range results {
		rec := model.CleanRecord{
			InputPath:      r.InputPath,
			OutputPath:     r.OutputPath,
			RemovedCount:   r.Removed,
			OriginalTotal:  r.OriginalTotal,
			NewTotal:       r.NewTotal,
			SummaryUpdated: r.SummaryUpdated,
		}
		if _, err := db.InsertCleanRun(ctx, &rec); err != nil {
			return err
		}
		logger.Debug("recorded clean run", "run_id", rec.RunID, "input", rec.InputPath)
	}

	return nil
}
