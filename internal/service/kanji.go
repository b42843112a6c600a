package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"kanjigraph/internal/codec"
	"kanjigraph/internal/domain"
	"kanjigraph/internal/loader"
	"kanjigraph/internal/render"
)

// ErrCharacterNotFound is returned for a symbol without an entry
var ErrCharacterNotFound = errors.New("character not found")

// ErrEmptyCatalog is returned when a catalog holds no imported mapping
var ErrEmptyCatalog = errors.New("catalog holds no mapping")

// MappingReader supplies a previously imported mapping
type MappingReader interface {
	GetMapping(ctx context.Context) (*domain.RelationMapping, error)
}

// KanjiService answers queries against the current relation mapping
type KanjiService struct {
	mu       sync.RWMutex
	mapping  *domain.RelationMapping
	source   string
	opts     render.Options
	eventBus *EventBus
	logger   *zap.Logger
}

// NewKanjiService creates a service with an empty mapping
func NewKanjiService(logger *zap.Logger, eventBus *EventBus, opts render.Options) *KanjiService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KanjiService{
		mapping:  domain.NewRelationMapping(),
		opts:     opts,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Load replaces the mapping with the contents of path. On failure the
// previous mapping stays in place.
func (s *KanjiService) Load(path string) error {
	m, err := loader.Load(path)
	if err != nil {
		return err
	}

	s.replace(m, path)
	return nil
}

// LoadCatalog replaces the mapping with the one last imported into the
// catalog at source. An empty catalog is an error and keeps the current
// mapping.
func (s *KanjiService) LoadCatalog(ctx context.Context, r MappingReader, source string) error {
	m, err := r.GetMapping(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if m.Len() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCatalog, source)
	}

	s.replace(m, source)
	return nil
}

func (s *KanjiService) replace(m *domain.RelationMapping, source string) {
	s.mu.Lock()
	s.mapping = m
	s.source = source
	s.mu.Unlock()

	s.logger.Info("mapping loaded", zap.String("path", source), zap.Int("characters", m.Len()))
	s.eventBus.Publish(Event{
		Type:    EventMappingReloaded,
		Payload: map[string]interface{}{"path": source, "characters": m.Len()},
	})
}

// SetMapping replaces the mapping directly
func (s *KanjiService) SetMapping(m *domain.RelationMapping) {
	if m == nil {
		m = domain.NewRelationMapping()
	}
	s.mu.Lock()
	s.mapping = m
	s.mu.Unlock()
}

// Source returns the path of the last successful load
func (s *KanjiService) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *KanjiService) current() *domain.RelationMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapping
}

// List returns all entries in source order
func (s *KanjiService) List() []domain.RelationEntry {
	return s.current().Entries()
}

// Get returns the entry of symbol
func (s *KanjiService) Get(symbol string) (domain.RelationEntry, error) {
	entry, ok := s.current().Get(symbol)
	if !ok {
		return domain.RelationEntry{}, fmt.Errorf("%w: %s", ErrCharacterNotFound, symbol)
	}
	return entry, nil
}

// Diagram renders the bounded diagram of symbol. Unknown symbols render as
// a single external node.
func (s *KanjiService) Diagram(symbol string) *domain.Diagram {
	return render.Traverse(s.current(), symbol, s.opts)
}

// WriteDiagram serializes the diagram of symbol in format to w
func (s *KanjiService) WriteDiagram(symbol, format string, w io.Writer) error {
	exporter, err := codec.New(format)
	if err != nil {
		return err
	}
	return exporter.Export(s.Diagram(symbol), w)
}
