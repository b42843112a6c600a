package domain

// Fill colours used by every diagram format
const (
	ColorFocus          = "#FFFFFF"
	ColorDependency     = "#99CCFF"
	ColorDeepDependency = "#FFCCCC"
)

// Style holds the visual attributes of a diagram node
type Style struct {
	FillColor string `json:"fill_color" yaml:"fill_color"`
	FontColor string `json:"font_color" yaml:"font_color"`
	Shape     string `json:"shape" yaml:"shape"`
	// Expanded nodes (those visited by the traversal) are drawn larger
	Expanded bool `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// DepthStyle returns the style of a node reached by the traversal at depth
func DepthStyle(depth int) Style {
	s := Style{FontColor: "black", Shape: "circle", Expanded: true}
	switch {
	case depth <= 0:
		s.FillColor = ColorFocus
	case depth == 1:
		s.FillColor = ColorDependency
	default:
		s.FillColor = ColorDeepDependency
	}
	return s
}

// ExternalStyle is used for symbols that have no entry in the mapping
func ExternalStyle() Style {
	return Style{FillColor: ColorDeepDependency, FontColor: "black", Shape: "circle"}
}

// DependentStyle is used for the capped outgoing neighbours of the focus
func DependentStyle() Style {
	return Style{FillColor: ColorDependency, FontColor: "black", Shape: "circle"}
}
