package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/mcpguard/guardkit/internal/model"
)

// SummaryWriter renders a markdown digest of completed clean runs.
// The digest is an artifact for humans and CI logs; the filtered report
// itself is never touched by this writer.
type SummaryWriter struct {
	output io.Writer
}

// NewSummaryWriter creates a SummaryWriter that writes to output.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{output: output}
}

// Write renders the digest for the given results.
func (w *SummaryWriter) Write(results []Result) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Report Clean Summary")
	md.PlainText("")
	md.PlainTextf("Generated: %s", time.Now().Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	w.writeRunTable(md, results)
	w.writeAlert(md, results)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by guardkit clean*")

	return md.Build()
}

// writeRunTable writes one row per clean run.
func (w *SummaryWriter) writeRunTable(md *markdown.Markdown, results []Result) {
	rows := make([][]string, 0, len(results)+1)
	totalRemoved := 0

	for _, r := range results {
		rows = append(rows, []string{
			"`" + r.InputPath + "`",
			"`" + r.OutputPath + "`",
			strconv.Itoa(r.Removed),
			formatTotal(r.OriginalTotal),
			formatTotal(r.NewTotal),
		})
		totalRemoved += r.Removed
	}

	rows = append(rows, []string{
		"**Total**", "", "**" + strconv.Itoa(totalRemoved) + "**", "", "",
	})

	md.Table(markdown.TableSet{
		Header: []string{"Input", "Output", "Removed", "Issues Before", "Issues After"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes a GitHub-flavored alert describing the overall outcome.
func (w *SummaryWriter) writeAlert(md *markdown.Markdown, results []Result) {
	totalRemoved := 0
	missingSummary := 0
	for _, r := range results {
		totalRemoved += r.Removed
		if !r.SummaryUpdated {
			missingSummary++
		}
	}

	switch {
	case missingSummary > 0:
		md.Warningf(
			"%d report(s) had no \"Issues Found\" summary line; their totals were left unchanged.",
			missingSummary,
		)
	case totalRemoved > 0:
		md.Note(fmt.Sprintf("Removed %d excluded issue block(s) across %d report(s).",
			totalRemoved, len(results)))
	default:
		md.Tip("No excluded issue blocks found; reports are unchanged.")
	}
	md.PlainText("")
}

// formatTotal renders an issue total, showing "-" for an unknown count.
func formatTotal(n int) string {
	if n == model.TotalUnknown {
		return "-"
	}
	return strconv.Itoa(n)
}
