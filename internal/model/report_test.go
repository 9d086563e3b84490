package model

import "testing"

// TestParseReport verifies block splitting on the literal separator.
func TestParseReport(t *testing.T) {
	t.Parallel()

	t.Run("splits on line-leading triple hyphen", func(t *testing.T) {
		t.Parallel()

		r := ParseReport("Header\n---\nfirst\n---\nsecond")
		if len(r.Blocks) != 3 {
			t.Fatalf("expected 3 blocks, got %d", len(r.Blocks))
		}
		if r.Blocks[0] != "Header" {
			t.Errorf("unexpected header block: %q", r.Blocks[0])
		}
		if r.Blocks[1] != "\nfirst" {
			t.Errorf("expected leading newline preserved, got %q", r.Blocks[1])
		}
	})

	t.Run("text without separator is a single block", func(t *testing.T) {
		t.Parallel()

		r := ParseReport("just a header")
		if len(r.Blocks) != 1 {
			t.Fatalf("expected 1 block, got %d", len(r.Blocks))
		}
		if len(r.IssueBlocks()) != 0 {
			t.Error("expected no issue blocks")
		}
	})

	t.Run("inline hyphens do not split", func(t *testing.T) {
		t.Parallel()

		// "---" must follow a line break to count as a delimiter.
		r := ParseReport("a --- b")
		if len(r.Blocks) != 1 {
			t.Fatalf("expected 1 block, got %d", len(r.Blocks))
		}
	})
}

// TestReportString verifies that split and join are exact inverses.
func TestReportString(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Header only",
		"Header\n---\nblock one\n---\nblock two\n",
		"Header\n- **Issues Found:** 3\n---\n#### Magic value\nfoo\n---\nOK block",
		"trailing separator\n---",
	}

	for _, input := range inputs {
		if got := ParseReport(input).String(); got != input {
			t.Errorf("round trip mismatch:\n input: %q\noutput: %q", input, got)
		}
	}
}

// TestReportHeader verifies header access on empty and populated reports.
func TestReportHeader(t *testing.T) {
	t.Parallel()

	if got := (&Report{}).Header(); got != "" {
		t.Errorf("expected empty header for empty report, got %q", got)
	}

	r := ParseReport("Summary\n---\nissue")
	if got := r.Header(); got != "Summary" {
		t.Errorf("expected %q, got %q", "Summary", got)
	}
	if got := len(r.IssueBlocks()); got != 1 {
		t.Errorf("expected 1 issue block, got %d", got)
	}
}
