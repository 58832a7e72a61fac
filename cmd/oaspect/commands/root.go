// Package commands implements the CLI commands for the oaspect tool.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
	"github.com/oaspect/oaspect/internal/build"
)

// CLI represents the command line interface for oaspect.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "oaspect",
		Short:         "Parse, cache, diff and inspect OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the cache and re-fetch the document")
	rootCmd.PersistentFlags().Duration("ttl", 0, "Override the cache freshness window (e.g. 30m, 12h)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newParseCmd())
	rootCmd.AddCommand(c.newDepsCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// cacheOptions reads the persistent caching flags.
func cacheOptions(cmd *cobra.Command) app.CacheOptions {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	return app.CacheOptions{
		NoCache:     noCache,
		TTLOverride: max(ttl, time.Duration(0)),
	}
}

// writeJSON renders a command result to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
