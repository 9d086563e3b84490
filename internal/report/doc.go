// Package report implements filtering of mcp-guard audit report files.
//
// A report is a sequence of text blocks separated by a line-leading "---".
// The Cleaner removes blocks matching configured marker substrings, rewrites
// the top-level issue count in the header block, and leaves every retained
// byte untouched. BatchCleaner runs the same transformation over many files
// with bounded concurrency, and the summary writer renders a markdown
// digest of completed runs.
package report
