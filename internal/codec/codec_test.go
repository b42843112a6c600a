package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanjigraph/internal/domain"
	"kanjigraph/internal/render"
)

func faceDiagram() *domain.Diagram {
	m := domain.NewRelationMapping()
	m.Add(domain.RelationEntry{Character: "面", In: []string{"一", "丿"}, Out: []string{"面白"}})
	m.Add(domain.RelationEntry{Character: "一", In: []string{"二"}, Out: []string{"面"}})
	m.Add(domain.RelationEntry{Character: "二", In: []string{}, Out: []string{}})
	return render.Traverse(m, "面", render.DefaultOptions())
}

func loveDiagram() *domain.Diagram {
	m := domain.NewRelationMapping()
	m.Add(domain.RelationEntry{
		Character: "愛",
		In:        []string{"心", "受"},
		Out:       []string{"愛情", "愛着", "恋愛", "愛する", "愛情深い", "可愛い"},
	})
	return render.Traverse(m, "愛", render.DefaultOptions())
}

func repeatDiagram() *domain.Diagram {
	m := domain.NewRelationMapping()
	m.Add(domain.RelationEntry{Character: "a", In: []string{"b", "b", "c"}, Out: []string{"x", "x", "y"}})
	return render.Traverse(m, "a", render.DefaultOptions())
}

func TestNew(t *testing.T) {
	for _, name := range Formats() {
		exp, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, exp.Format())
		assert.NotEmpty(t, exp.Extension())
	}

	_, err := New("png")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestNewImporter(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"face.json", "json"},
		{"face.yaml", "yaml"},
		{"dir/face.YML", "yaml"},
	}
	for _, tt := range tests {
		imp, err := ImporterForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, imp.Format())
	}

	for _, name := range []string{"dot", "text", "mermaid"} {
		_, err := NewImporter(name)
		assert.True(t, errors.Is(err, ErrUnknownFormat), name)
	}
	_, err := ImporterForPath("face")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"dot", "json", "mermaid", "text", "yaml"}, Formats())
}

func TestTextCodec(t *testing.T) {
	t.Run("shows direct neighbours only", func(t *testing.T) {
		want := "Kanji: 面\nIn:\n  一\n  丿\nOut:\n  面白\n"
		assert.Equal(t, want, NewTextCodec().Render(faceDiagram()))
	})

	t.Run("caps outgoing at five", func(t *testing.T) {
		want := "Kanji: 愛\nIn:\n  心\n  受\nOut:\n  愛情\n  愛着\n  恋愛\n  愛する\n  愛情深い\n"
		assert.Equal(t, want, NewTextCodec().Render(loveDiagram()))
	})

	t.Run("absent focus", func(t *testing.T) {
		d := render.Traverse(domain.NewRelationMapping(), "無", render.DefaultOptions())
		assert.Equal(t, "Kanji: 無\nIn:\nOut:\n", NewTextCodec().Render(d))
	})

	t.Run("repeated relations are all listed", func(t *testing.T) {
		want := "Kanji: a\nIn:\n  b\n  b\n  c\nOut:\n  x\n  x\n  y\n"
		assert.Equal(t, want, NewTextCodec().Render(repeatDiagram()))
	})

	t.Run("export writes render", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextCodec().Export(faceDiagram(), &buf))
		assert.Equal(t, NewTextCodec().Render(faceDiagram()), buf.String())
	})
}

func TestMermaidCodec(t *testing.T) {
	t.Run("direct neighbours", func(t *testing.T) {
		want := "```mermaid\ngraph TD\n" +
			"    面((面))\n" +
			"    一((一)) --> 面\n" +
			"    丿((丿)) --> 面\n" +
			"    面 --> 面白((面白))\n" +
			"```"
		got := NewMermaidCodec().Render(faceDiagram())
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "二", "deeper levels are not shown")
	})

	t.Run("caps outgoing at five", func(t *testing.T) {
		got := NewMermaidCodec().Render(loveDiagram())
		assert.Equal(t, 5, strings.Count(got, "愛 --> "))
		assert.NotContains(t, got, "可愛い")
	})

	t.Run("absent focus", func(t *testing.T) {
		d := render.Traverse(domain.NewRelationMapping(), "無", render.DefaultOptions())
		assert.Equal(t, "```mermaid\ngraph TD\n    無((無))\n```", NewMermaidCodec().Render(d))
	})

	t.Run("repeated relations are all listed", func(t *testing.T) {
		want := "```mermaid\ngraph TD\n" +
			"    a((a))\n" +
			"    b((b)) --> a\n" +
			"    b((b)) --> a\n" +
			"    c((c)) --> a\n" +
			"    a --> x((x))\n" +
			"    a --> x((x))\n" +
			"    a --> y((y))\n" +
			"```"
		assert.Equal(t, want, NewMermaidCodec().Render(repeatDiagram()))
	})
}

func TestDOTCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDOTCodec().Export(faceDiagram(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph"))
	assert.Contains(t, out, "rankdir")
	assert.Contains(t, out, "TB")
	for _, sym := range []string{"面", "一", "二", "丿", "面白"} {
		assert.Contains(t, out, sym)
	}
	assert.Contains(t, out, domain.ColorFocus)
	assert.Contains(t, out, domain.ColorDependency)
	assert.Contains(t, out, domain.ColorDeepDependency)
	assert.Equal(t, 4, strings.Count(out, "->"))
}

func TestJSONCodecRoundTrip(t *testing.T) {
	d := faceDiagram()
	c := NewJSONCodec()

	var buf bytes.Buffer
	require.NoError(t, c.Export(d, &buf))
	assert.Contains(t, buf.String(), `"focus": "面"`)

	back, err := c.Parse(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(d.Nodes, back.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Edges, back.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	_, ok := back.Node("丿")
	assert.True(t, ok)
	assert.Equal(t, NewTextCodec().Render(d), NewTextCodec().Render(back))
}

func TestYAMLCodec(t *testing.T) {
	d := faceDiagram()
	c := NewYAMLCodec()

	var buf bytes.Buffer
	require.NoError(t, c.Export(d, &buf))
	assert.Contains(t, buf.String(), "focus: 面")

	back, err := c.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Edges, back.Edges)
	require.Len(t, back.Nodes, len(d.Nodes))
	for i := range d.Nodes {
		assert.Equal(t, d.Nodes[i].Symbol, back.Nodes[i].Symbol)
		assert.Equal(t, d.Nodes[i].Role, back.Nodes[i].Role)
		assert.Equal(t, d.Nodes[i].Style.FillColor, back.Nodes[i].Style.FillColor)
	}
	assert.Equal(t, []string{"一", "丿"}, back.Incoming)
	assert.Equal(t, []string{"面白"}, back.Outgoing)
}
