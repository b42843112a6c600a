package codec

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"

	"kanjigraph/internal/domain"
)

// DOTCodec exports a diagram as a Graphviz directed graph
type DOTCodec struct{}

// NewDOTCodec creates a new DOT codec
func NewDOTCodec() *DOTCodec {
	return &DOTCodec{}
}

// Format returns the codec format identifier
func (c *DOTCodec) Format() string {
	return "dot"
}

// Extension returns the artifact file extension
func (c *DOTCodec) Extension() string {
	return "dot"
}

// Graph builds the Graphviz graph of a diagram, laid out top to bottom
func (c *DOTCodec) Graph(d *domain.Diagram) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("comment", "Kanji Diagram for "+d.Focus)
	g.Attr("rankdir", "TB")
	g.Attr("size", "12,12")

	for _, n := range d.Nodes {
		node := g.Node(n.Symbol).
			Label(n.Symbol).
			Attr("shape", n.Style.Shape).
			Attr("style", "filled").
			Attr("fillcolor", n.Style.FillColor).
			Attr("fontcolor", n.Style.FontColor)
		if n.Style.Expanded {
			node.Attr("width", "1").Attr("height", "1").Attr("fontsize", "24")
		}
	}

	// Endpoints beyond the depth bound have no node of their own and are
	// drawn with Graphviz defaults.
	for _, e := range d.Edges {
		g.Edge(g.Node(e.From), g.Node(e.To))
	}

	return g
}

// Export writes the DOT source of a diagram
func (c *DOTCodec) Export(d *domain.Diagram, w io.Writer) error {
	if _, err := io.WriteString(w, c.Graph(d).String()); err != nil {
		return fmt.Errorf("failed to write DOT: %w", err)
	}
	return nil
}
