package model

import "strings"

// Separator is the literal block delimiter used by mcp-guard audit reports:
// a line break immediately followed by three hyphens. The split consumes it,
// and String restores it verbatim, so retained block content round-trips
// byte for byte.
const Separator = "\n---"

// Report is an ordered sequence of text blocks. The first block is the
// header/summary block; every later block describes one audit issue.
//
// A Report never owns more than the text it was parsed from: blocks hold
// the exact byte spans between delimiters, including leading newlines and
// internal formatting.
type Report struct {
	// Blocks holds the block contents in original order, delimiters excluded.
	Blocks []string
}

// ParseReport splits raw report text into blocks on Separator.
// Text with no delimiter yields a single-block report.
func ParseReport(text string) *Report {
	return &Report{Blocks: strings.Split(text, Separator)}
}

// String reassembles the report by joining blocks with Separator.
// For an unmodified report this reproduces the parsed text exactly.
func (r *Report) String() string {
	return strings.Join(r.Blocks, Separator)
}

// Header returns the header/summary block, or an empty string for an
// empty report.
func (r *Report) Header() string {
	if len(r.Blocks) == 0 {
		return ""
	}
	return r.Blocks[0]
}

// IssueBlocks returns the blocks after the header block.
func (r *Report) IssueBlocks() []string {
	if len(r.Blocks) <= 1 {
		return nil
	}
	return r.Blocks[1:]
}
