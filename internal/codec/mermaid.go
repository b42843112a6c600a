package codec

import (
	"fmt"
	"io"
	"strings"

	"kanjigraph/internal/domain"
)

// MermaidCodec exports the direct neighbours of the focus as a fenced
// Mermaid flowchart.
type MermaidCodec struct{}

// NewMermaidCodec creates a new Mermaid codec
func NewMermaidCodec() *MermaidCodec {
	return &MermaidCodec{}
}

// Format returns the codec format identifier
func (c *MermaidCodec) Format() string {
	return "mermaid"
}

// Extension returns the artifact file extension
func (c *MermaidCodec) Extension() string {
	return "md"
}

// Render returns the fenced block of a diagram, without a trailing newline
func (c *MermaidCodec) Render(d *domain.Diagram) string {
	var b strings.Builder
	b.WriteString("```mermaid\ngraph TD\n")
	fmt.Fprintf(&b, "    %s((%s))\n", d.Focus, d.Focus)
	for _, in := range d.Incoming {
		fmt.Fprintf(&b, "    %s((%s)) --> %s\n", in, in, d.Focus)
	}
	for _, out := range d.Outgoing {
		fmt.Fprintf(&b, "    %s --> %s((%s))\n", d.Focus, out, out)
	}
	b.WriteString("```")
	return b.String()
}

// Export writes the fenced block of a diagram
func (c *MermaidCodec) Export(d *domain.Diagram, w io.Writer) error {
	if _, err := io.WriteString(w, c.Render(d)); err != nil {
		return fmt.Errorf("failed to write Mermaid diagram: %w", err)
	}
	return nil
}
