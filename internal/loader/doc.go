// Package loader turns hand-written relation text into a RelationMapping.
//
// The text is repaired by a fixed pipeline of independent steps (see Steps)
// and then decoded as strict JSON. Decoding either succeeds for the whole
// text or fails with a *ParseError carrying the repaired text.
package loader
