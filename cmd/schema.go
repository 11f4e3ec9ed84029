package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/treefmt/pkg/action/extract"
)

func init() {
	rootCmd.AddCommand(NewSchemaCommand())
}

func NewSchemaCommand() *cobra.Command {
	var inDir, outPath string

	// schemaCmd represents the treefmt schema command
	var schemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "extract a schema",
		Long:  "Extract a schema from the node types declared in a Go package",
		RunE: func(c *cobra.Command, args []string) error {
			return extract.Extract(inDir, outPath, c.OutOrStdout())
		},
	}
	schemaCmd.PersistentFlags().StringVarP(&inDir, "input-directory", "i", ".", "directory of the package to scan")
	schemaCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "file to write the schema to (default stdout)")

	return schemaCmd
}
