package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanjigraph/internal/codec"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		from   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "convert DIAGRAM",
		Short: "Re-render a saved json or yaml diagram in another format",
		Long: `Reads a diagram written by "show --format json" or "show --format yaml" and
prints it in another format. The input format is taken from the file
extension unless --from is given.`,
		Example: `  kanjigraph show paste.txt 面 --format json > face.json
  kanjigraph convert face.json --format dot | dot -Tpng > face.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				importer codec.Importer
				err      error
			)
			if from != "" {
				importer, err = codec.NewImporter(from)
			} else {
				importer, err = codec.ImporterForPath(path)
			}
			if err != nil {
				return err
			}
			exporter, err := codec.New(format)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open diagram: %w", err)
			}
			defer f.Close()

			d, err := importer.Parse(f)
			if err != nil {
				return err
			}
			a.logger.Debug("diagram read",
				zap.String("path", path),
				zap.String("from", importer.Format()),
				zap.String("focus", d.Focus),
				zap.Int("nodes", len(d.Nodes)))

			out := cmd.OutOrStdout()
			if err := exporter.Export(d, out); err != nil {
				return err
			}
			if format == "mermaid" {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Input format: json or yaml (default: from the file extension)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: "+strings.Join(codec.Formats(), ", "))
	return cmd
}
