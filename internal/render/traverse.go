// Package render computes the bounded neighbourhood diagram of one character.
package render

import (
	"kanjigraph/internal/domain"
)

const (
	DefaultMaxDepth      = 2
	DefaultOutgoingLimit = 5
)

// Options bounds a traversal
type Options struct {
	MaxDepth      int // deepest level at which nodes are still expanded
	OutgoingLimit int // dependents shown for the focus
}

// DefaultOptions returns the standard bounds (depth 2, five dependents)
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, OutgoingLimit: DefaultOutgoingLimit}
}

func (o Options) normalized() Options {
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	if o.OutgoingLimit < 0 {
		o.OutgoingLimit = 0
	}
	return o
}

// Traverse builds the diagram of focus.
//
// Incoming relations are followed recursively up to opts.MaxDepth; symbols
// without an entry become external leaves and are never expanded. Only the
// focus shows its outgoing relations, capped at opts.OutgoingLimit. The
// focus's own lists are also kept on the diagram as written, repeats
// included. The visited set belongs to this call, so concurrent calls over
// the same mapping are safe.
func Traverse(m *domain.RelationMapping, focus string, opts Options) *domain.Diagram {
	t := &traversal{
		mapping: m,
		opts:    opts.normalized(),
		visited: make(map[string]struct{}),
		diagram: domain.NewDiagram(focus),
	}

	if !m.Has(focus) {
		t.diagram.AddNode(domain.DiagramNode{
			Symbol: focus,
			Role:   domain.RoleExternal,
			Style:  domain.ExternalStyle(),
		})
		return t.diagram
	}

	t.visit(focus, 0)
	return t.diagram
}

type traversal struct {
	mapping *domain.RelationMapping
	opts    Options
	visited map[string]struct{}
	diagram *domain.Diagram
}

func (t *traversal) visit(symbol string, depth int) {
	if _, seen := t.visited[symbol]; seen || depth > t.opts.MaxDepth {
		return
	}
	t.visited[symbol] = struct{}{}

	role := domain.RoleDependency
	if depth == 0 {
		role = domain.RoleFocus
	}
	t.diagram.AddNode(domain.DiagramNode{
		Symbol: symbol,
		Depth:  depth,
		Role:   role,
		Style:  domain.DepthStyle(depth),
	})

	entry, ok := t.mapping.Get(symbol)
	if !ok {
		return
	}
	if depth == 0 {
		t.diagram.Incoming = append(t.diagram.Incoming, entry.In...)
		t.diagram.Outgoing = append(t.diagram.Outgoing, head(entry.Out, t.opts.OutgoingLimit)...)
	}

	for _, in := range entry.In {
		if t.mapping.Has(in) {
			t.visit(in, depth+1)
		} else {
			t.diagram.AddNode(domain.DiagramNode{
				Symbol: in,
				Depth:  depth + 1,
				Role:   domain.RoleExternal,
				Style:  domain.ExternalStyle(),
			})
		}
		t.diagram.AddEdge(domain.DiagramEdge{From: in, To: symbol, Kind: domain.EdgeKindComposes})
	}

	if depth != 0 {
		return
	}
	for _, out := range head(entry.Out, t.opts.OutgoingLimit) {
		t.diagram.AddNode(domain.DiagramNode{
			Symbol: out,
			Depth:  1,
			Role:   domain.RoleDependent,
			Style:  domain.DependentStyle(),
		})
		t.diagram.AddEdge(domain.DiagramEdge{From: symbol, To: out, Kind: domain.EdgeKindDependent})
	}
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
