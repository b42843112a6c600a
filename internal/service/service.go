package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kanjigraph/internal/artifact"
	"kanjigraph/internal/codec"
	"kanjigraph/internal/domain"
	"kanjigraph/internal/loader"
	"kanjigraph/internal/render"
	"kanjigraph/internal/repository"
	"kanjigraph/internal/sheet"
)

// ErrUnsupportedFormat is returned for an export format outside ExportFormats
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportFormat describes how one output variant is produced
type ExportFormat struct {
	Name     string
	Codec    string // codec producing the textual diagram
	Raster   bool   // rasterize the codec output instead of embedding it
	Workbook string
	Layout   sheet.Layout
}

// ExportFormats lists the export variants by name
var ExportFormats = map[string]ExportFormat{
	"png": {
		Name:     "png",
		Codec:    "dot",
		Raster:   true,
		Workbook: "kanji_data.xlsx",
		Layout:   sheet.DefaultLayout(),
	},
	"dot": {
		Name:     "dot",
		Codec:    "dot",
		Workbook: "kanji_data_dot.xlsx",
		Layout:   sheet.DefaultLayout(),
	},
	"text": {
		Name:     "text",
		Codec:    "text",
		Workbook: "kanji_data_text.xlsx",
		Layout:   sheet.DefaultLayout(),
	},
	"mermaid": {
		Name:     "mermaid",
		Codec:    "mermaid",
		Workbook: "kanji_data_mermaid.xlsx",
		Layout:   sheet.Layout{DiagramHeader: "Mermaid Diagram", ColumnWidth: 50},
	},
}

// LookupExportFormat returns the export variant called name
func LookupExportFormat(name string) (ExportFormat, error) {
	f, ok := ExportFormats[name]
	if !ok {
		return ExportFormat{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// ExportRequest describes one export run
type ExportRequest struct {
	InputPath string
	OutputDir string
	Format    string
	Jobs      int
}

// ExportResult summarizes a finished export run
type ExportResult struct {
	Rows      int           `json:"rows"`
	Workbook  string        `json:"workbook"`
	Artifacts []string      `json:"artifacts"`
	Duration  time.Duration `json:"duration"`
}

// ExportService renders every character of an input file to disk
type ExportService struct {
	logger     *zap.Logger
	rasterizer artifact.Rasterizer
	catalog    repository.Repository
	eventBus   *EventBus
	opts       render.Options
}

// NewExportService creates a new export service. catalog and eventBus may be nil.
func NewExportService(logger *zap.Logger, rasterizer artifact.Rasterizer, catalog repository.Repository, eventBus *EventBus, opts render.Options) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		logger:     logger,
		rasterizer: rasterizer,
		catalog:    catalog,
		eventBus:   eventBus,
		opts:       opts,
	}
}

// Export runs the pipeline. The input is loaded before the output directory
// is created, so a missing or unparsable input leaves no trace on disk. Any
// render failure aborts the whole run.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	started := time.Now()

	format, err := LookupExportFormat(req.Format)
	if err != nil {
		return nil, err
	}
	if format.Raster && s.rasterizer == nil {
		return nil, fmt.Errorf("format %s needs a rasterizer", format.Name)
	}
	exporter, err := codec.New(format.Codec)
	if err != nil {
		return nil, err
	}

	m, err := loader.Load(req.InputPath)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventExportStarted,
		Payload: map[string]interface{}{"input": req.InputPath, "format": format.Name, "rows": m.Len()},
	})
	s.logger.Info("export started",
		zap.String("input", req.InputPath),
		zap.String("output_dir", req.OutputDir),
		zap.String("format", format.Name),
		zap.Int("rows", m.Len()))

	result, err := s.export(ctx, m, req, format, exporter)
	if err != nil {
		s.eventBus.Publish(Event{Type: EventExportFailed, Payload: map[string]string{"error": err.Error()}})
		return nil, err
	}
	result.Duration = time.Since(started)

	s.eventBus.Publish(Event{Type: EventExportCompleted, Payload: result})
	s.logger.Info("export completed",
		zap.Int("rows", result.Rows),
		zap.String("workbook", result.Workbook),
		zap.Duration("duration", result.Duration))

	return result, nil
}

func (s *ExportService) export(ctx context.Context, m *domain.RelationMapping, req ExportRequest, format ExportFormat, exporter codec.Exporter) (*ExportResult, error) {
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if s.catalog != nil {
		if err := s.catalog.ImportMapping(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to import mapping into catalog: %w", err)
		}
	}

	entries := m.Entries()
	rows := make([]sheet.Row, len(entries))
	paths := make([]string, len(entries))

	jobs := req.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, path, err := s.renderRow(gctx, m, entry, req.OutputDir, format, exporter)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", entry.Character, err)
			}
			rows[i] = row
			paths[i] = path
			s.logger.Debug("diagram written", zap.String("symbol", entry.Character), zap.String("path", path))
			s.eventBus.Publish(Event{
				Type:    EventDiagramWritten,
				Payload: map[string]string{"symbol": entry.Character, "path": path},
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	workbook := filepath.Join(req.OutputDir, format.Workbook)
	if err := sheet.Write(workbook, rows, format.Layout); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	if s.catalog != nil {
		for i, entry := range entries {
			if err := s.catalog.RecordArtifact(ctx, repository.Artifact{
				Symbol: entry.Character,
				Format: format.Name,
				Path:   paths[i],
			}); err != nil {
				return nil, fmt.Errorf("failed to record artifact: %w", err)
			}
		}
	}

	return &ExportResult{
		Rows:      len(entries),
		Workbook:  workbook,
		Artifacts: paths,
	}, nil
}

// renderRow renders one character and writes its artifact
func (s *ExportService) renderRow(ctx context.Context, m *domain.RelationMapping, entry domain.RelationEntry, dir string, format ExportFormat, exporter codec.Exporter) (sheet.Row, string, error) {
	row := sheet.Row{Character: entry.Character, In: entry.In, Out: entry.Out}

	d := render.Traverse(m, entry.Character, s.opts)
	var buf bytes.Buffer
	if err := exporter.Export(d, &buf); err != nil {
		return row, "", err
	}

	if format.Raster {
		path := artifact.Path(dir, entry.Character, "png")
		if err := s.rasterizer.Rasterize(ctx, buf.String(), path); err != nil {
			return row, "", err
		}
		row.ImagePath = path
		return row, path, nil
	}

	path, err := artifact.Write(dir, entry.Character, exporter.Extension(), buf.Bytes())
	if err != nil {
		return row, "", err
	}
	row.Diagram = buf.String()
	return row, path, nil
}
