// Package domain defines the core types of the kanjigraph character dependency tool.
//
// # Relations
//
// RelationEntry records, for one character, the characters that compose it
// ("in") and the characters it helps compose ("out"). RelationMapping holds all
// entries of a dataset in source order and is read-only once built. Symbols
// named in "in" or "out" lists need not have an entry of their own; such
// symbols are external leaves.
//
// # Diagrams
//
// Diagram is the format-independent result of rendering one focus character:
// an ordered node list (DiagramNode, annotated with depth, role and style) and
// an ordered edge list (DiagramEdge). A diagram never holds the same symbol
// twice. Diagrams are created per render and never shared.
//
// # Design Principles
//
// - No I/O and no third-party dependencies
// - Value types with typed string enumerations
package domain
