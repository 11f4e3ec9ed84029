package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/treefmt/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenCommand())
}

func NewGenCommand() *cobra.Command {
	var schemaPath, outDir, outFile string

	// genCmd represents the treefmt gen command
	var genCmd = &cobra.Command{
		Use:   "gen",
		Short: "generate node types",
		Long:  "Generate Go node types implementing node.Node from a schema",
		RunE: func(c *cobra.Command, args []string) error {
			_, err := generate.Generate(schemaPath, outDir, outFile)
			return err
		},
	}
	genCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "schema.yaml", "schema to generate types from")
	genCmd.PersistentFlags().StringVarP(&outDir, "output-directory", "o", "ast", "directory to write generated types")
	genCmd.PersistentFlags().StringVarP(&outFile, "output-file", "f", "ast_gen.go", "output file where types will be written")

	return genCmd
}
