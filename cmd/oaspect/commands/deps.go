package commands

import (
	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <source> <anchor>",
		Short: "List endpoints and schemas reachable from an anchor node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, _ := cmd.Flags().GetString("direction")

			result, err := c.app.Deps(cmd.Context(), app.DepsOptions{
				CacheOptions: cacheOptions(cmd),
				Source:       args[0],
				Anchor:       args[1],
				Direction:    direction,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	cmd.Flags().StringP("direction", "d", "downstream", "Traversal direction: upstream, downstream or both")
	return cmd
}
