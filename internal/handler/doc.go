// Package handler implements the HTTP API of the kanjigraph server.
//
// # Endpoints
//
//	GET  /api/kanji                     all entries in source order
//	GET  /api/kanji/{symbol}            one entry, with its recorded artifacts
//	GET  /api/kanji/{symbol}/diagram    the diagram (?format=json|yaml|dot|text|mermaid)
//	GET  /api/artifacts                 artifacts from the catalog (?symbol=)
//	POST /api/reload                    reload the input file
//	GET  /api/events                    Server-Sent Events stream
//
// Error responses return JSON with {error, details} structure. A reload that
// fails to parse answers 422 with the repaired text in details.
package handler
