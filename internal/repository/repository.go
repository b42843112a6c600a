package repository

import (
	"context"
	"errors"
	"time"

	"kanjigraph/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Artifact records one diagram file written for a character
type Artifact struct {
	Symbol    string    `json:"symbol"`
	Format    string    `json:"format"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the interface for catalog data access
type Repository interface {
	// Relations
	ImportMapping(ctx context.Context, m *domain.RelationMapping) error
	GetMapping(ctx context.Context) (*domain.RelationMapping, error)

	// Artifacts
	RecordArtifact(ctx context.Context, a Artifact) error
	ListArtifacts(ctx context.Context, symbol string) ([]Artifact, error)

	// Close releases resources
	Close() error
}
