package report

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcpguard/guardkit/internal/model"
)

// DefaultMarker is the marker substring the original report cleaner
// suppressed. A block containing this text anywhere is removed.
const DefaultMarker = "#### Magic value"

// summaryLinePattern matches the top-level issue count line in the header
// block, e.g. "- **Issues Found:** 1700". The count is a plain decimal
// integer with no thousands separators.
var summaryLinePattern = regexp.MustCompile(`- \*\*Issues Found:\*\* (\d+)`)

// Cleaner removes marked issue blocks from report text.
// A block is removed when it contains any of the configured markers;
// matching is a plain substring test, so no parsing of severity, path,
// or line fields is involved.
type Cleaner struct {
	// markers are the substrings that flag a block for removal.
	markers []string

	// logger receives per-run debug output.
	logger *slog.Logger
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithMarkers replaces the default marker set. Empty strings are ignored
// because an empty substring would match every block.
func WithMarkers(markers ...string) Option {
	return func(c *Cleaner) {
		filtered := make([]string, 0, len(markers))
		for _, m := range markers {
			if m != "" {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) > 0 {
			c.markers = filtered
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cleaner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCleaner creates a Cleaner. Without options it removes blocks containing
// DefaultMarker and logs through slog.Default.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{
		markers: []string{DefaultMarker},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result describes one clean run.
type Result struct {
	// InputPath and OutputPath are set by CleanFile; Clean leaves them empty.
	InputPath  string
	OutputPath string

	// Removed is the number of blocks discarded.
	Removed int

	// OriginalBlocks and RetainedBlocks count blocks before and after
	// filtering, header block included.
	OriginalBlocks int
	RetainedBlocks int

	// OriginalTotal is the issue count parsed from the summary line,
	// or model.TotalUnknown when the line is absent.
	OriginalTotal int

	// NewTotal is the count written back, or model.TotalUnknown.
	NewTotal int

	// SummaryUpdated reports whether the summary line was found and rewritten.
	SummaryUpdated bool
}

// Matches reports whether a block contains any configured marker.
func (c *Cleaner) Matches(block string) bool {
	for _, marker := range c.markers {
		if strings.Contains(block, marker) {
			return true
		}
	}
	return false
}

// Clean filters report text in memory and returns the filtered text with
// run statistics. Retained blocks are kept byte for byte; only the summary
// count in the header block may change.
//
// The per-severity section headers (e.g. "### 🟠 High (702 issues)") are
// deliberately left as written: the original cleaner never recomputed them,
// and downstream tooling has come to expect the stale values. Only the
// top-level total is rewritten.
func (c *Cleaner) Clean(text string) (string, Result) {
	parsed := model.ParseReport(text)

	result := Result{
		OriginalBlocks: len(parsed.Blocks),
		OriginalTotal:  model.TotalUnknown,
		NewTotal:       model.TotalUnknown,
	}

	kept := make([]string, 0, len(parsed.Blocks))
	for _, block := range parsed.Blocks {
		if c.Matches(block) {
			result.Removed++
			continue
		}
		kept = append(kept, block)
	}
	result.RetainedBlocks = len(kept)

	filtered := (&model.Report{Blocks: kept}).String()
	filtered, result = c.rewriteSummary(filtered, result)

	c.logger.Debug("cleaned report text",
		"removed", result.Removed,
		"retained", result.RetainedBlocks,
		"summary_updated", result.SummaryUpdated,
	)

	return filtered, result
}

// rewriteSummary replaces the first "- **Issues Found:** N" occurrence with
// the post-filter count. An absent summary line is not an error; the text is
// returned unchanged. Only the first occurrence is touched, mirroring the
// original cleaner's single literal replacement.
func (c *Cleaner) rewriteSummary(text string, result Result) (string, Result) {
	match := summaryLinePattern.FindStringSubmatch(text)
	if match == nil {
		return text, result
	}

	original, err := strconv.Atoi(match[1])
	if err != nil {
		// Unreachable in practice: the pattern only captures digits.
		return text, result
	}

	result.OriginalTotal = original
	result.NewTotal = original - result.Removed
	result.SummaryUpdated = true

	oldLine := fmt.Sprintf("- **Issues Found:** %d", original)
	newLine := fmt.Sprintf("- **Issues Found:** %d", result.NewTotal)
	return strings.Replace(text, oldLine, newLine, 1), result
}

// CleanFile reads the report at inputPath, filters it, and overwrites
// outputPath with the result. Read and write failures are fatal and surface
// immediately; a failed write discards the run with no retry.
func (c *Cleaner) CleanFile(inputPath, outputPath string) (Result, error) {
	data, err := os.ReadFile(inputPath) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return Result{}, fmt.Errorf("failed to read report: %w", err)
	}

	filtered, result := c.Clean(string(data))
	result.InputPath = inputPath
	result.OutputPath = outputPath

	if err := os.WriteFile(outputPath, []byte(filtered), 0600); err != nil {
		return Result{}, fmt.Errorf("failed to write filtered report: %w", err)
	}

	c.logger.Debug("wrote filtered report",
		"input", inputPath,
		"output", outputPath,
		"removed", result.Removed,
	)

	return result, nil
}
