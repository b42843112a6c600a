package codec

import (
	"fmt"
	"io"

	"kanjigraph/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export of diagrams
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Extension returns the artifact file extension
func (c *YAMLCodec) Extension() string {
	return "yaml"
}

// yamlDiagram represents the YAML structure for a diagram
type yamlDiagram struct {
	Focus string     `yaml:"focus"`
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
	In    []string   `yaml:"incoming"`
	Out   []string   `yaml:"outgoing"`
}

type yamlNode struct {
	Symbol    string `yaml:"symbol"`
	Depth     int    `yaml:"depth"`
	Role      string `yaml:"role"`
	FillColor string `yaml:"fill_color"`
}

type yamlEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Kind string `yaml:"kind"`
}

// Parse reads a diagram back from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Diagram, error) {
	var yd yamlDiagram
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yd); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	d := domain.NewDiagram(yd.Focus)
	for _, yn := range yd.Nodes {
		style := domain.Style{FillColor: yn.FillColor, FontColor: "black", Shape: "circle"}
		d.AddNode(domain.DiagramNode{
			Symbol: yn.Symbol,
			Depth:  yn.Depth,
			Role:   domain.Role(yn.Role),
			Style:  style,
		})
	}
	for _, ye := range yd.Edges {
		d.AddEdge(domain.DiagramEdge{From: ye.From, To: ye.To, Kind: domain.EdgeKind(ye.Kind)})
	}
	d.Incoming = append(d.Incoming, yd.In...)
	d.Outgoing = append(d.Outgoing, yd.Out...)

	return d, nil
}

// Export exports a diagram to YAML
func (c *YAMLCodec) Export(d *domain.Diagram, w io.Writer) error {
	yd := yamlDiagram{
		Focus: d.Focus,
		Nodes: make([]yamlNode, 0, len(d.Nodes)),
		Edges: make([]yamlEdge, 0, len(d.Edges)),
		In:    d.Incoming,
		Out:   d.Outgoing,
	}

	for _, n := range d.Nodes {
		yd.Nodes = append(yd.Nodes, yamlNode{
			Symbol:    n.Symbol,
			Depth:     n.Depth,
			Role:      string(n.Role),
			FillColor: n.Style.FillColor,
		})
	}

	for _, e := range d.Edges {
		yd.Edges = append(yd.Edges, yamlEdge{
			From: e.From,
			To:   e.To,
			Kind: string(e.Kind),
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
