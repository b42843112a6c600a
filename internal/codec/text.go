package codec

import (
	"fmt"
	"io"
	"strings"

	"kanjigraph/internal/domain"
)

// TextCodec exports the direct neighbours of the focus as an indented list.
// Deeper levels of the diagram are not shown.
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Extension returns the artifact file extension
func (c *TextCodec) Extension() string {
	return "txt"
}

// Render returns the text block of a diagram
func (c *TextCodec) Render(d *domain.Diagram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Kanji: %s\n", d.Focus)
	b.WriteString("In:\n")
	for _, in := range d.Incoming {
		fmt.Fprintf(&b, "  %s\n", in)
	}
	b.WriteString("Out:\n")
	for _, out := range d.Outgoing {
		fmt.Fprintf(&b, "  %s\n", out)
	}
	return b.String()
}

// Export writes the text block of a diagram
func (c *TextCodec) Export(d *domain.Diagram, w io.Writer) error {
	if _, err := io.WriteString(w, c.Render(d)); err != nil {
		return fmt.Errorf("failed to write text diagram: %w", err)
	}
	return nil
}
