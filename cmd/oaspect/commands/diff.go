package commands

import (
	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-source> <new-source>",
		Short: "Compare two documents and report added, removed and modified items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Diff(cmd.Context(), app.DiffOptions{
				CacheOptions: cacheOptions(cmd),
				OldSource:    args[0],
				NewSource:    args[1],
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
}
