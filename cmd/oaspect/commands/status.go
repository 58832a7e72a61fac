package commands

import (
	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <source>",
		Short: "Report the cache record's state for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Status(cmd.Context(), app.StatusOptions{Source: args[0]})
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
}
