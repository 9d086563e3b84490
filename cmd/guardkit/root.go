// Package main provides the entry point for the guardkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for guardkit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guardkit",
		Short: "Maintenance toolkit for mcp-guard audit report artifacts",
		Long: `guardkit maintains the artifacts produced around mcp-guard audits.

It filters suppressed finding classes (such as magic value issues) out of
generated markdown audit reports while keeping the report's total issue
count consistent, records every clean run in a local history database, and
mints HS256 JWT fixtures for the mcp-guard test environment.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewTokenCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
