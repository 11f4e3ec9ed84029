package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/treefmt/pkg/action/render"
	"github.com/cmmoran/treefmt/pkg/format"
)

func init() {
	rootCmd.AddCommand(NewPrintCommand())
}

var formatFlags = map[string]string{
	"format.width":          "width",
	"format.indent":         "indent",
	"format.reverse_arrays": "reverse-arrays",
	"format.depth_budget":   "depth-budget",
	"format.workers":        "workers",
	"format.backend":        "backend",
}

// addFormatFlags registers the render option flags on c.
func addFormatFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.Int("width", format.DefaultWidth, "maximum width of a single-line rendering")
	flags.Int("indent", format.DefaultIndent, "spaces per nesting level")
	flags.Bool("reverse-arrays", false, "emit array elements last-to-first")
	flags.Bool("depth-budget", false, "reduce the width budget by indent at each nesting level")
	flags.Int("workers", 4, "roots rendered concurrently")
	flags.String("backend", format.BackendText, "output backend (text, html, ansi)")
}

// formatOptions binds the flags of the running command to their format.*
// config keys and reads the merged result. Flags set on the command line
// win over config, config wins over flag defaults.
func formatOptions(c *cobra.Command) (*format.Options, error) {
	for key, flag := range formatFlags {
		if err := viper.BindPFlag(key, c.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	return &format.Options{
		Width:         viper.GetInt("format.width"),
		Indent:        viper.GetInt("format.indent"),
		ReverseArrays: viper.GetBool("format.reverse_arrays"),
		DepthBudget:   viper.GetBool("format.depth_budget"),
		Workers:       viper.GetInt("format.workers"),
		Backend:       viper.GetString("format.backend"),
		Palette:       viper.GetStringMapString("format.palette"),
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func NewPrintCommand() *cobra.Command {
	var (
		schemaPath string
		watch      bool
	)

	// printCmd represents the treefmt print command
	var printCmd = &cobra.Command{
		Use:   "print [documents...]",
		Short: "print syntax trees",
		Long:  "Decode documents against a schema and pretty-print every root node",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			opts, err := formatOptions(c)
			if err != nil {
				return err
			}
			if watch {
				return render.Watch(ctx, schemaPath, args, opts, c.OutOrStdout())
			}
			return render.Run(ctx, schemaPath, args, opts, c.OutOrStdout())
		},
	}
	printCmd.Flags().StringVarP(&schemaPath, "schema", "s", "schema.yaml", "schema describing the document node types")
	printCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the schema or a document changes")
	addFormatFlags(printCmd)

	return printCmd
}
