// Package cmd wires the git-sitemap command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

// Persistent flag names shared by subcommands.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

// NewRootCmd creates the git-sitemap root command with all subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-sitemap",
		Short: "Generate sitemap.xml for a static site tracked in git",
		Long: `git-sitemap walks a static site directory, dates every public page with
its last git commit and writes a sorted sitemap.xml. It can also run as an
MCP server exposing the same operation as a tool.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String(flagConfig, "", "Config file (default: sitemap.{yaml,json,toml} in the root or working directory)")
	cmd.PersistentFlags().String(flagLogLevel, "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
