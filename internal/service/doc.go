// Package service implements the use cases of kanjigraph.
//
// ExportService runs the full pipeline for one input file: load and repair
// the text, render every character's diagram, write one artifact per
// character and the summary workbook, and optionally record the run in the
// catalog. Rendering runs with bounded parallelism; each render owns its
// traversal state and only shares the read-only mapping.
//
// KanjiService holds the most recently loaded mapping for the interactive
// surfaces (show, serve). A reload replaces the whole mapping; nothing is
// updated in place.
//
// Both publish progress on an EventBus, which the HTTP server forwards to
// Server-Sent Events clients.
package service
