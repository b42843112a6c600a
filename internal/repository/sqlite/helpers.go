package sqlite

import (
	"encoding/json"
	"time"

	"kanjigraph/internal/domain"
	"kanjigraph/internal/repository"
)

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// marshalList encodes a symbol list, storing nil as an empty array
func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalList decodes a symbol list column
func unmarshalList(data string) ([]string, error) {
	list := []string{}
	if data == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ============================================================================
// Relation Row Scanner
// ============================================================================
//
// Column order must match between relationColumns, scanArgs() and
// relationInsertArgs(). Same for artifacts.

// relationRow holds all columns from a relation query for scanning
type relationRow struct {
	Symbol   string
	Position int
	Incoming string
	Outgoing string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match relationColumns order exactly: symbol, position, incoming, outgoing
func (r *relationRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Symbol,   // 1
		&r.Position, // 2
		&r.Incoming, // 3
		&r.Outgoing, // 4
	}
}

// toDomain converts the scanned row to a domain.RelationEntry
func (r *relationRow) toDomain() (domain.RelationEntry, error) {
	in, err := unmarshalList(r.Incoming)
	if err != nil {
		return domain.RelationEntry{}, err
	}
	out, err := unmarshalList(r.Outgoing)
	if err != nil {
		return domain.RelationEntry{}, err
	}
	return domain.RelationEntry{Character: r.Symbol, In: in, Out: out}, nil
}

const relationColumns = `symbol, position, incoming, outgoing`

// relationInsertArgs prepares arguments for relation INSERT
// Returns: symbol, position, incoming, outgoing
func relationInsertArgs(position int, entry domain.RelationEntry) ([]interface{}, error) {
	in, err := marshalList(entry.In)
	if err != nil {
		return nil, err
	}
	out, err := marshalList(entry.Out)
	if err != nil {
		return nil, err
	}
	return []interface{}{entry.Character, position, in, out}, nil
}

// ============================================================================
// Artifact Row Scanner
// ============================================================================

// artifactRow holds all columns from an artifact query for scanning
type artifactRow struct {
	Symbol    string
	Format    string
	Path      string
	CreatedAt time.Time
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match artifactColumns order exactly: symbol, format, path, created_at
func (r *artifactRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Symbol,    // 1
		&r.Format,    // 2
		&r.Path,      // 3
		&r.CreatedAt, // 4
	}
}

func (r *artifactRow) toDomain() repository.Artifact {
	return repository.Artifact{
		Symbol:    r.Symbol,
		Format:    r.Format,
		Path:      r.Path,
		CreatedAt: r.CreatedAt,
	}
}

const artifactColumns = `symbol, format, path, created_at`
