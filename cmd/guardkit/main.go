// Package main provides the entry point for the guardkit CLI.
//
// guardkit maintains mcp-guard audit report artifacts: it filters suppressed
// finding classes out of generated markdown reports and mints HS256 JWT
// fixtures for the test environment.
//
// Usage:
//
//	guardkit clean <input> <output>
//	guardkit token
//
// See --help for all available options.
package main

// main is the entry point for guardkit.
func main() {
	Execute()
}
