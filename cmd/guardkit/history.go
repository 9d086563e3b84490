package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/mcpguard/guardkit/internal/config"
	"github.com/mcpguard/guardkit/internal/database"
	"github.com/mcpguard/guardkit/internal/model"
)

// NewHistoryCmd creates the history command.
// It reads clean runs recorded by previous clean commands.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded clean runs",
		Long: `History lists clean runs recorded in the local history database.

Each clean command records the input and output paths, the number of removed
blocks, and the issue totals before and after rewriting the report summary.

Examples:
  # Show the 20 most recent runs
  guardkit history

  # Show runs for one report file
  guardkit history --report audit.md

  # Emit the history as JSON or Markdown
  guardkit history --json
  guardkit history --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringP("report", "r", "", "Only list runs for this input report path")
	cmd.Flags().BoolP("json", "j", false, "Output history in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output history in Markdown format")
	cmd.Flags().String("db-dir", "", "Directory of the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return fmt.Errorf("conflicting output formats: --json and --markdown cannot be used together")
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	records, err := db.ListCleanRuns(context.Background(), reportPath, limit)
	if err != nil {
		return fmt.Errorf("failed to list clean runs: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clean runs recorded.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'guardkit clean <input> <output>' to clean a report.")
		return nil
	}

	switch {
	case jsonOutput:
		return writeHistoryJSON(cmd, records)
	case markdownOutput:
		return writeHistoryMarkdown(cmd, records)
	default:
		writeHistoryPlain(cmd, records)
		return nil
	}
}

// historyEntry is the JSON shape of one clean run.
type historyEntry struct {
	RunID          string `json:"run_id"`
	InputPath      string `json:"input_path"`
	OutputPath     string `json:"output_path"`
	RemovedCount   int    `json:"removed_count"`
	OriginalTotal  *int   `json:"original_total,omitempty"`
	NewTotal       *int   `json:"new_total,omitempty"`
	SummaryUpdated bool   `json:"summary_updated"`
	Timestamp      string `json:"timestamp"`
}

// writeHistoryJSON emits the records as a JSON array.
func writeHistoryJSON(cmd *cobra.Command, records []model.CleanRecord) error {
	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entry := historyEntry{
			RunID:          rec.RunID,
			InputPath:      rec.InputPath,
			OutputPath:     rec.OutputPath,
			RemovedCount:   rec.RemovedCount,
			SummaryUpdated: rec.SummaryUpdated,
			Timestamp:      rec.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		if rec.OriginalTotal != model.TotalUnknown {
			entry.OriginalTotal = &rec.OriginalTotal
		}
		if rec.NewTotal != model.TotalUnknown {
			entry.NewTotal = &rec.NewTotal
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// writeHistoryMarkdown emits the records as a markdown table.
func writeHistoryMarkdown(cmd *cobra.Command, records []model.CleanRecord) error {
	md := markdown.NewMarkdown(cmd.OutOrStdout())

	md.H1("Clean Run History")
	md.PlainText("")

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			"`" + rec.InputPath + "`",
			strconv.Itoa(rec.RemovedCount),
			formatHistoryTotal(rec.OriginalTotal),
			formatHistoryTotal(rec.NewTotal),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Timestamp", "Input", "Removed", "Issues Before", "Issues After"},
		Rows:   rows,
	})

	return md.Build()
}

// writeHistoryPlain emits a human-readable listing.
func writeHistoryPlain(cmd *cobra.Command, records []model.CleanRecord) {
	fmt.Fprintf(cmd.OutOrStdout(), "Clean runs (%d):\n\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s -> %s  removed=%d",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.InputPath,
			rec.OutputPath,
			rec.RemovedCount,
		)
		if rec.SummaryUpdated {
			fmt.Fprintf(cmd.OutOrStdout(), "  issues %d -> %d",
				rec.OriginalTotal, rec.NewTotal)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
}

// formatHistoryTotal renders an issue total, showing "-" for unknown.
func formatHistoryTotal(n int) string {
	if n == model.TotalUnknown {
		return "-"
	}
	return strconv.Itoa(n)
}
