package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oaspect/oaspect/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <source>",
		Short: "Generate typed client code from a document's schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("target")
			names, _ := cmd.Flags().GetStringSlice("name")
			readonly, _ := cmd.Flags().GetBool("readonly")
			indent, _ := cmd.Flags().GetInt("indent")
			outDir, _ := cmd.Flags().GetString("out")

			result, err := c.app.Generate(cmd.Context(), app.GenerateOptions{
				CacheOptions: cacheOptions(cmd),
				Source:       args[0],
				Target:       target,
				Names:        names,
				Readonly:     readonly,
				Indent:       indent,
			})
			if err != nil {
				return err
			}

			if outDir == "" {
				for _, file := range result.Files {
					if _, err := cmd.OutOrStdout().Write([]byte(file.Content)); err != nil {
						return err
					}
				}
				return nil
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, file := range result.Files {
				if err := os.WriteFile(filepath.Join(outDir, file.Name), []byte(file.Content), 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("target", "t", "", "Generation target (default typescript-types)")
	cmd.Flags().StringSlice("name", nil, "Only generate the named schemas")
	cmd.Flags().Bool("readonly", false, "Mark generated properties as readonly")
	cmd.Flags().Int("indent", 0, "Indentation width of generated code")
	cmd.Flags().StringP("out", "o", "", "Directory to write generated files to (default stdout)")
	return cmd
}
