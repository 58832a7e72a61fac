package commands

import (
	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
	"github.com/oaspect/oaspect/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <source>",
		Short: "Watch a local document and print a diff on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				CacheOptions: cacheOptions(cmd),
				Source:       args[0],
			}, func(d *domain.SpecDiff) {
				_ = writeJSON(cmd, d)
			})
		},
	}
}
