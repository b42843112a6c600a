// Package repository defines the data access interfaces for the kanji catalog.
//
// The catalog is optional. When enabled it keeps the last imported relation
// mapping and a record of every artifact written for a character, so the
// HTTP API and later runs can answer "what was exported, and where" without
// re-reading the output directory. The implementation lives in the sqlite
// subpackage and is tested against in-memory databases.
package repository
