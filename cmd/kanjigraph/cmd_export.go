package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kanjigraph/internal/artifact"
	"kanjigraph/internal/config"
	"kanjigraph/internal/loader"
	"kanjigraph/internal/render"
	"kanjigraph/internal/repository"
	"kanjigraph/internal/repository/sqlite"
	"kanjigraph/internal/service"
)

// exportFlags are shared by export and watch
type exportFlags struct {
	outputDir string
	format    string
	jobs      int
	catalog   string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Directory to store output files (default: kanji_output)")
	cmd.Flags().StringVar(&f.format, "format", "", "Diagram format: "+strings.Join(config.OutputFormats, ", ")+" (default: png)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "Diagrams rendered in parallel (default: 1)")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "SQLite catalog recording the mapping and written artifacts")
}

// apply overrides config values with the flags that were set
func (f *exportFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = f.format
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Export.Jobs = f.jobs
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog.Path = f.catalog
	}
	return cfg.Validate()
}

func newExportCmd(a *app) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export INPUT",
		Short: "Render every character and write the summary workbook",
		Long: `Loads INPUT, renders one diagram per character into the output directory and
writes a workbook with one row per character: the character, its "in" and
"out" lists and its diagram (embedded PNG, or the DOT, text or mermaid source).

The output directory is only created once INPUT has been loaded successfully.`,
		Example: `  kanjigraph export paste.txt
  kanjigraph export paste.txt -o out --format mermaid
  kanjigraph export paste.txt --jobs 8 --catalog kanji.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			// before the catalog is created or Graphviz is looked up
			if err := loader.CheckInput(args[0]); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, closeSvc, err := a.exportService(nil)
			if err != nil {
				return err
			}
			defer closeSvc()

			result, err := svc.Export(ctx, a.exportRequest(args[0]))
			if err != nil {
				return err
			}
			printResult(cmd, a.cfg.Output.Dir, result)
			return nil
		},
	}
	cmd.Annotations = inputAnnotation(1)
	flags.register(cmd)
	return cmd
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		MaxDepth:      a.cfg.Render.MaxDepth,
		OutgoingLimit: a.cfg.Render.OutgoingLimit,
	}
}

func (a *app) exportRequest(input string) service.ExportRequest {
	return service.ExportRequest{
		InputPath: input,
		OutputDir: a.cfg.Output.Dir,
		Format:    a.cfg.Output.Format,
		Jobs:      a.cfg.Export.Jobs,
	}
}

// exportService wires the export pipeline from the current config. The
// returned func releases the catalog.
func (a *app) exportService(bus *service.EventBus) (*service.ExportService, func(), error) {
	var rasterizer artifact.Rasterizer
	if a.cfg.Output.Format == "png" {
		g := artifact.NewGraphviz(a.cfg.Graphviz.Binary, a.cfg.Graphviz.Timeout.Duration())
		if !g.Available() {
			return nil, nil, fmt.Errorf("graphviz binary %q not found; install Graphviz or use --format dot|text|mermaid", g.Binary)
		}
		rasterizer = g
	}

	catalog, err := a.openCatalog()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if catalog != nil {
			catalog.Close()
		}
	}

	var repo repository.Repository
	if catalog != nil {
		repo = catalog
	}
	return service.NewExportService(a.logger, rasterizer, repo, bus, a.renderOptions()), closeFn, nil
}

func (a *app) openCatalog() (*sqlite.Repository, error) {
	if a.cfg.Catalog.Path == "" {
		return nil, nil
	}
	catalog, err := sqlite.New(a.cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	a.logger.Debug("catalog opened", zap.String("path", a.cfg.Catalog.Path))
	return catalog, nil
}

func printResult(cmd *cobra.Command, dir string, result *service.ExportResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Excel file saved as %s\n", result.Workbook)
	fmt.Fprintf(out, "Processing complete. Check the '%s' directory for output files.\n", dir)
}

// runExport is shared by watch; failures are logged, not returned
func runExport(ctx context.Context, cmd *cobra.Command, a *app, svc *service.ExportService, input string) {
	result, err := svc.Export(ctx, a.exportRequest(input))
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
		return
	}
	printResult(cmd, a.cfg.Output.Dir, result)
}
