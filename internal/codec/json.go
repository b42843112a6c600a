package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"kanjigraph/internal/domain"
)

// JSONCodec handles JSON import/export of diagrams
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Extension returns the artifact file extension
func (c *JSONCodec) Extension() string {
	return "json"
}

// Parse reads a diagram back from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Diagram, error) {
	var d domain.Diagram
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Rebuild through the Add methods so lookups and duplicate checks work
	out := domain.NewDiagram(d.Focus)
	for _, n := range d.Nodes {
		out.AddNode(n)
	}
	for _, e := range d.Edges {
		out.AddEdge(e)
	}
	out.Incoming = append(out.Incoming, d.Incoming...)
	out.Outgoing = append(out.Outgoing, d.Outgoing...)

	return out, nil
}

// Export exports a diagram to JSON
func (c *JSONCodec) Export(d *domain.Diagram, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
