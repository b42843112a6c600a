package domain

import "fmt"

// Role describes how a node relates to the focus of a diagram
type Role string

const (
	RoleFocus      Role = "focus"
	RoleDependency Role = "dependency" // composes the focus, directly or transitively
	RoleDependent  Role = "dependent"  // composed by the focus
	RoleExternal   Role = "external"   // referenced but absent from the mapping
)

// EdgeKind tells which relation list produced an edge
type EdgeKind string

const (
	EdgeKindComposes  EdgeKind = "composes"  // from an "in" list: From composes To
	EdgeKindDependent EdgeKind = "dependent" // from an "out" list of the focus
)

// DiagramNode is a node emitted during one render pass
type DiagramNode struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Depth  int    `json:"depth" yaml:"depth"`
	Role   Role   `json:"role" yaml:"role"`
	Style  Style  `json:"style" yaml:"style"`
}

// DiagramEdge means From contributes to To
type DiagramEdge struct {
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
	Kind EdgeKind `json:"kind" yaml:"kind"`
}

// Key returns a stable identifier for the edge
func (e DiagramEdge) Key() string {
	return fmt.Sprintf("%s|%s|%s", e.From, e.To, e.Kind)
}

// Diagram is the abstract result of rendering one focus symbol
type Diagram struct {
	Focus string        `json:"focus" yaml:"focus"`
	Nodes []DiagramNode `json:"nodes" yaml:"nodes"`
	Edges []DiagramEdge `json:"edges" yaml:"edges"`

	// Incoming and Outgoing are the focus's own relation lists as written,
	// repeats included. Outgoing is already capped.
	Incoming []string `json:"incoming" yaml:"incoming"`
	Outgoing []string `json:"outgoing" yaml:"outgoing"`

	nodeIndex map[string]int
	edgeSet   map[string]struct{}
}

// NewDiagram creates an empty diagram for a focus symbol
func NewDiagram(focus string) *Diagram {
	return &Diagram{
		Focus:     focus,
		Nodes:     make([]DiagramNode, 0),
		Edges:     make([]DiagramEdge, 0),
		Incoming:  make([]string, 0),
		Outgoing:  make([]string, 0),
		nodeIndex: make(map[string]int),
		edgeSet:   make(map[string]struct{}),
	}
}

// AddNode appends a node unless the symbol is already present.
// It reports whether the node was added.
func (d *Diagram) AddNode(node DiagramNode) bool {
	if d.nodeIndex == nil {
		d.nodeIndex = make(map[string]int)
	}
	if _, exists := d.nodeIndex[node.Symbol]; exists {
		return false
	}
	d.nodeIndex[node.Symbol] = len(d.Nodes)
	d.Nodes = append(d.Nodes, node)
	return true
}

// AddEdge appends an edge unless the same edge was already added
func (d *Diagram) AddEdge(edge DiagramEdge) bool {
	if d.edgeSet == nil {
		d.edgeSet = make(map[string]struct{})
	}
	key := edge.Key()
	if _, exists := d.edgeSet[key]; exists {
		return false
	}
	d.edgeSet[key] = struct{}{}
	d.Edges = append(d.Edges, edge)
	return true
}

// Node looks up a node by symbol
func (d *Diagram) Node(symbol string) (DiagramNode, bool) {
	if i, ok := d.nodeIndex[symbol]; ok {
		return d.Nodes[i], true
	}
	for _, n := range d.Nodes {
		if n.Symbol == symbol {
			return n, true
		}
	}
	return DiagramNode{}, false
}
