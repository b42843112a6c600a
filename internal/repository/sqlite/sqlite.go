package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kanjigraph/internal/domain"
	"kanjigraph/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure database: %w", err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS relations (
		symbol TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		incoming JSON NOT NULL,
		outgoing JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		format TEXT NOT NULL,
		path TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_relations_position ON relations(position);
	CREATE INDEX IF NOT EXISTS idx_artifacts_symbol ON artifacts(symbol);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ImportMapping replaces all stored relations with m, keeping its order
func (r *Repository) ImportMapping(ctx context.Context, m *domain.RelationMapping) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM relations`); err != nil {
		return fmt.Errorf("failed to clear relations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO relations (symbol, position, incoming, outgoing, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare relation insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, entry := range m.Entries() {
		args, err := relationInsertArgs(i, entry)
		if err != nil {
			return fmt.Errorf("failed to encode relation %s: %w", entry.Character, err)
		}
		args = append(args, now)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert relation %s: %w", entry.Character, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// GetMapping loads the stored relations in their original order
func (r *Repository) GetMapping(ctx context.Context) (*domain.RelationMapping, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+relationColumns+`
		FROM relations
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}
	defer rows.Close()

	m := domain.NewRelationMapping()
	for rows.Next() {
		var row relationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		entry, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode relation %s: %w", row.Symbol, err)
		}
		m.Add(entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relations: %w", err)
	}

	return m, nil
}

// RecordArtifact stores a written artifact
func (r *Repository) RecordArtifact(ctx context.Context, a repository.Artifact) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO artifacts (symbol, format, path, created_at)
		VALUES (?, ?, ?, ?)
	`, a.Symbol, a.Format, a.Path, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record artifact: %w", err)
	}
	return nil
}

// ListArtifacts returns the artifacts of symbol in insertion order, or all
// artifacts when symbol is empty
func (r *Repository) ListArtifacts(ctx context.Context, symbol string) ([]repository.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts`
	var args []interface{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []repository.Artifact{}
	for rows.Next() {
		var row artifactRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifacts: %w", err)
	}

	return artifacts, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
