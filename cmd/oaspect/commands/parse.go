package commands

import (
	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
)

func (c *CLI) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <source>",
		Short: "Parse an OpenAPI document into the unified model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			tag, _ := cmd.Flags().GetString("tag")
			pathPrefix, _ := cmd.Flags().GetString("path-prefix")

			result, err := c.app.Parse(cmd.Context(), app.ParseOptions{
				CacheOptions: cacheOptions(cmd),
				Source:       args[0],
				Format:       format,
				Limit:        limit,
				Offset:       offset,
				Tag:          tag,
				PathPrefix:   pathPrefix,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatSummary, "Output view: summary, endpoints-list, schemas-list, endpoints, schemas or full")
	cmd.Flags().Int("limit", app.DefaultLimit, "Maximum number of listed entries")
	cmd.Flags().Int("offset", 0, "Number of listed entries to skip")
	cmd.Flags().String("tag", "", "Only list endpoints carrying this tag")
	cmd.Flags().String("path-prefix", "", "Only list endpoints whose path starts with this prefix")
	return cmd
}
