package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/treefmt/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var schemaPath, manifestPath, outDir, name, snapshotVersion string

	// snapshotCmd represents the treefmt snapshot command
	var snapshotCmd = &cobra.Command{
		Use:   "snapshot [documents...]",
		Short: "record a rendering",
		Long:  "Render documents into a versioned snapshot file and record it in the manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			opts, err := formatOptions(c)
			if err != nil {
				return err
			}
			out, err := snapshot.Generate(ctx, opts, schemaPath, args, manifestPath, outDir, name, snapshotVersion)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), out)
			return err
		},
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "snapshots/manifest.yaml", "manifest recording snapshots")
	snapshotCmd.Flags().StringVarP(&schemaPath, "schema", "s", "schema.yaml", "schema describing the document node types")
	snapshotCmd.Flags().StringVarP(&outDir, "output-directory", "o", "snapshots", "directory to write snapshot files")
	snapshotCmd.Flags().StringVarP(&name, "name", "n", "tree", "snapshot name")
	snapshotCmd.Flags().StringVarP(&snapshotVersion, "version", "v", "", "snapshot version")
	addFormatFlags(snapshotCmd)

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.OutOrStdout(), diff)
			return err
		},
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, s := range m.Snapshots {
				marker := " "
				if s.Version == m.CurrentVersion {
					marker = "*"
				}
				if _, err := fmt.Fprintf(c.OutOrStdout(), "%s %s %s %s\n", marker, s.Name, s.Version, s.File); err != nil {
					return err
				}
			}
			return nil
		},
	}
	snapshotCmd.AddCommand(diffCmd, listCmd)

	return snapshotCmd
}
