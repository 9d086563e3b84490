package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcpguard/guardkit/internal/model"
)

// sampleReport builds a report with a summary line, two marked blocks, and
// two clean blocks.
const sampleReport = "# Audit Report\n" +
	"- **Issues Found:** 4\n" +
	"---\n" +
	"#### Magic value\nliteral 42 in handler.rs\n" +
	"---\n" +
	"#### Unwrapped error\ncall may panic\n" +
	"---\n" +
	"#### Magic value\nliteral 7 in router.rs\n" +
	"---\n" +
	"#### Missing docs\npublic item undocumented"

// TestCleanerClean exercises the in-memory filter.
func TestCleanerClean(t *testing.T) {
	t.Parallel()

	t.Run("removes marked blocks and rewrites total", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner()
		out, result := c.Clean(sampleReport)

		if result.Removed != 2 {
			t.Errorf("expected 2 removed blocks, got %d", result.Removed)
		}
		if strings.Contains(out, "#### Magic value") {
			t.Error("expected all magic value blocks removed")
		}
		if !strings.Contains(out, "#### Unwrapped error") {
			t.Error("expected unrelated blocks retained")
		}
		if !strings.Contains(out, "- **Issues Found:** 2") {
			t.Errorf("expected total rewritten to 2, output:\n%s", out)
		}
		if result.OriginalTotal != 4 || result.NewTotal != 2 {
			t.Errorf("expected totals 4 -> 2, got %d -> %d",
				result.OriginalTotal, result.NewTotal)
		}
		if !result.SummaryUpdated {
			t.Error("expected summary line to be reported as updated")
		}
	})

	t.Run("block count conservation", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner()
		_, result := c.Clean(sampleReport)

		if result.RetainedBlocks+result.Removed != result.OriginalBlocks {
			t.Errorf("retained %d + removed %d != original %d",
				result.RetainedBlocks, result.Removed, result.OriginalBlocks)
		}
	})

	t.Run("predicate classifies every block exactly once", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner()
		out, _ := c.Clean(sampleReport)

		for _, block := range model.ParseReport(out).Blocks {
			if c.Matches(block) {
				t.Errorf("retained block still matches predicate: %q", block)
			}
		}
	})

	t.Run("count arithmetic follows removals", func(t *testing.T) {
		t.Parallel()

		input := "- **Issues Found:** 10\n---\n#### Magic value\nx"
		c := NewCleaner()
		out, result := c.Clean(input)

		if result.Removed != 1 {
			t.Fatalf("expected 1 removed block, got %d", result.Removed)
		}
		if !strings.Contains(out, "- **Issues Found:** 9") {
			t.Errorf("expected total 9, output: %q", out)
		}
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner()
		once, first := c.Clean(sampleReport)
		twice, second := c.Clean(once)

		if second.Removed != 0 {
			t.Errorf("expected 0 removals on second pass, got %d", second.Removed)
		}
		if twice != once {
			t.Error("expected second pass output to be byte-identical")
		}
		if first.Removed == 0 {
			t.Error("expected first pass to remove blocks")
		}
	})

	t.Run("no matches leaves input byte-identical", func(t *testing.T) {
		t.Parallel()

		input := "Header\n- **Issues Found:** 2\n---\nclean block\n---\nanother"
		c := NewCleaner()
		out, result := c.Clean(input)

		if result.Removed != 0 {
			t.Errorf("expected 0 removals, got %d", result.Removed)
		}
		if out != input {
			t.Errorf("expected byte-identical output:\n input: %q\noutput: %q", input, out)
		}
	})

	t.Run("missing summary line is not an error", func(t *testing.T) {
		t.Parallel()

		input := "No summary here\n---\n#### Magic value\nfoo\n---\nkept"
		c := NewCleaner()
		out, result := c.Clean(input)

		if result.Removed != 1 {
			t.Errorf("expected 1 removal, got %d", result.Removed)
		}
		if result.SummaryUpdated {
			t.Error("expected summary to be reported as not updated")
		}
		if result.OriginalTotal != model.TotalUnknown || result.NewTotal != model.TotalUnknown {
			t.Errorf("expected unknown totals, got %d and %d",
				result.OriginalTotal, result.NewTotal)
		}
		if out != "No summary here\n---\nkept" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("only the first summary occurrence is rewritten", func(t *testing.T) {
		t.Parallel()

		input := "- **Issues Found:** 3\n---\n#### Magic value\nx\n---\nquoted: - **Issues Found:** 3"
		c := NewCleaner()
		out, _ := c.Clean(input)

		if !strings.HasPrefix(out, "- **Issues Found:** 2") {
			t.Errorf("expected first occurrence rewritten, output: %q", out)
		}
		if !strings.HasSuffix(out, "- **Issues Found:** 3") {
			t.Errorf("expected later occurrence untouched, output: %q", out)
		}
	})

	t.Run("custom markers remove their blocks", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner(WithMarkers("#### Unwrapped error", "#### Missing docs"))
		out, result := c.Clean(sampleReport)

		if result.Removed != 2 {
			t.Errorf("expected 2 removals, got %d", result.Removed)
		}
		if !strings.Contains(out, "#### Magic value") {
			t.Error("expected magic value blocks retained with custom markers")
		}
	})

	t.Run("block matching several markers is counted once", func(t *testing.T) {
		t.Parallel()

		input := "h\n---\n#### Magic value and #### Unwrapped error"
		c := NewCleaner(WithMarkers("#### Magic value", "#### Unwrapped error"))
		_, result := c.Clean(input)

		if result.Removed != 1 {
			t.Errorf("expected 1 removal, got %d", result.Removed)
		}
	})

	t.Run("empty markers option keeps defaults", func(t *testing.T) {
		t.Parallel()

		c := NewCleaner(WithMarkers(""))
		if !c.Matches("#### Magic value here") {
			t.Error("expected default marker to survive empty override")
		}
	})
}

// TestCleanScenarios pins the behavior on the canonical example inputs.
func TestCleanScenarios(t *testing.T) {
	t.Parallel()

	t.Run("marked middle block", func(t *testing.T) {
		t.Parallel()

		input := "Header\n- **Issues Found:** 3\n---\n#### Magic value\nfoo\n---\nOK block"
		want := "Header\n- **Issues Found:** 2\n---\nOK block"

		out, result := NewCleaner().Clean(input)
		if result.Removed != 1 {
			t.Errorf("expected 1 removal, got %d", result.Removed)
		}
		if out != want {
			t.Errorf("unexpected output:\n got: %q\nwant: %q", out, want)
		}
	})

	t.Run("header-only report", func(t *testing.T) {
		t.Parallel()

		input := "Header\n- **Issues Found:** 0\nno blocks follow"
		out, result := NewCleaner().Clean(input)

		if result.Removed != 0 {
			t.Errorf("expected 0 removals, got %d", result.Removed)
		}
		if out != input {
			t.Errorf("expected identical output, got %q", out)
		}
	})
}

// TestCleanFile exercises the file-level operation.
func TestCleanFile(t *testing.T) {
	t.Parallel()

	t.Run("reads input and overwrites output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		inPath := filepath.Join(dir, "audit.md")
		outPath := filepath.Join(dir, "audit.clean.md")

		if err := os.WriteFile(inPath, []byte(sampleReport), 0600); err != nil {
			t.Fatal(err)
		}
		// Pre-existing output must be overwritten.
		if err := os.WriteFile(outPath, []byte("stale"), 0600); err != nil {
			t.Fatal(err)
		}

		result, err := NewCleaner().CleanFile(inPath, outPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Removed != 2 {
			t.Errorf("expected 2 removals, got %d", result.Removed)
		}
		if result.InputPath != inPath || result.OutputPath != outPath {
			t.Errorf("expected paths recorded in result, got %q and %q",
				result.InputPath, result.OutputPath)
		}

		written, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(written), "#### Magic value") {
			t.Error("expected marked blocks absent from output file")
		}
		if strings.Contains(string(written), "stale") {
			t.Error("expected stale output content overwritten")
		}
	})

	t.Run("missing input is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, err := NewCleaner().CleanFile(
			filepath.Join(dir, "does-not-exist.md"),
			filepath.Join(dir, "out.md"),
		)
		if err == nil {
			t.Fatal("expected error for missing input")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("unwritable output is fatal", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		inPath := filepath.Join(dir, "audit.md")
		if err := os.WriteFile(inPath, []byte(sampleReport), 0600); err != nil {
			t.Fatal(err)
		}

		// The output parent directory does not exist.
		_, err := NewCleaner().CleanFile(inPath, filepath.Join(dir, "missing", "out.md"))
		if err == nil {
			t.Fatal("expected error for unwritable output path")
		}
	})
}
