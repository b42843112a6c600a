package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagramAddNode(t *testing.T) {
	d := NewDiagram("面")

	assert.True(t, d.AddNode(DiagramNode{Symbol: "面", Role: RoleFocus, Style: DepthStyle(0)}))
	assert.False(t, d.AddNode(DiagramNode{Symbol: "面", Role: RoleDependent, Style: DependentStyle()}))

	assert.Len(t, d.Nodes, 1)
	n, ok := d.Node("面")
	assert.True(t, ok)
	assert.Equal(t, RoleFocus, n.Role, "first emission wins")
}

func TestDiagramAddEdge(t *testing.T) {
	d := NewDiagram("a")

	assert.True(t, d.AddEdge(DiagramEdge{From: "b", To: "a", Kind: EdgeKindComposes}))
	assert.False(t, d.AddEdge(DiagramEdge{From: "b", To: "a", Kind: EdgeKindComposes}))
	assert.True(t, d.AddEdge(DiagramEdge{From: "a", To: "b", Kind: EdgeKindDependent}))

	assert.Len(t, d.Edges, 2)
}

func TestNewDiagramEmptyLists(t *testing.T) {
	d := NewDiagram("a")

	assert.NotNil(t, d.Incoming)
	assert.Empty(t, d.Incoming)
	assert.NotNil(t, d.Outgoing)
	assert.Empty(t, d.Outgoing)
}

func TestDepthStyle(t *testing.T) {
	tests := []struct {
		depth int
		want  string
	}{
		{0, ColorFocus},
		{1, ColorDependency},
		{2, ColorDeepDependency},
		{7, ColorDeepDependency},
	}
	for _, tt := range tests {
		s := DepthStyle(tt.depth)
		assert.Equal(t, tt.want, s.FillColor, "depth %d", tt.depth)
		assert.True(t, s.Expanded)
		assert.Equal(t, "circle", s.Shape)
	}

	assert.False(t, ExternalStyle().Expanded)
	assert.Equal(t, ColorDeepDependency, ExternalStyle().FillColor)
	assert.Equal(t, ColorDependency, DependentStyle().FillColor)
}
