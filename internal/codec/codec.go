package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"kanjigraph/internal/domain"
)

// ErrUnknownFormat is returned for a format name no exporter handles
var ErrUnknownFormat = errors.New("unknown diagram format")

// Exporter interface for serializing a diagram to one format
type Exporter interface {
	Export(d *domain.Diagram, w io.Writer) error
	Format() string
	// Extension is the file extension used for artifacts, without the dot
	Extension() string
}

// Importer reads a diagram back from one serialized format
type Importer interface {
	Parse(r io.Reader) (*domain.Diagram, error)
	Format() string
}

var importers = map[string]func() Importer{
	"json": func() Importer { return NewJSONCodec() },
	"yaml": func() Importer { return NewYAMLCodec() },
}

var exporters = map[string]func() Exporter{
	"dot":     func() Exporter { return NewDOTCodec() },
	"text":    func() Exporter { return NewTextCodec() },
	"mermaid": func() Exporter { return NewMermaidCodec() },
	"json":    func() Exporter { return NewJSONCodec() },
	"yaml":    func() Exporter { return NewYAMLCodec() },
}

// New returns the exporter for a format name
func New(format string) (Exporter, error) {
	ctor, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return ctor(), nil
}

// Formats lists the supported format names
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewImporter returns the importer for a format name
func NewImporter(format string) (Importer, error) {
	ctor, ok := importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q cannot be read back", ErrUnknownFormat, format)
	}
	return ctor(), nil
}

// ImporterForPath picks the importer matching the extension of path
func ImporterForPath(path string) (Importer, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "yml" {
		ext = "yaml"
	}
	return NewImporter(ext)
}
