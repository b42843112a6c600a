package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"kanjigraph/internal/codec"
	"kanjigraph/internal/domain"
	"kanjigraph/internal/loader"
	"kanjigraph/internal/repository"
	"kanjigraph/internal/service"
)

// KanjiService is the query side used by the handler
type KanjiService interface {
	List() []domain.RelationEntry
	Get(symbol string) (domain.RelationEntry, error)
	WriteDiagram(symbol, format string, w io.Writer) error
	Load(path string) error
	Source() string
}

// ArtifactLister lists artifacts recorded in the catalog
type ArtifactLister interface {
	ListArtifacts(ctx context.Context, symbol string) ([]repository.Artifact, error)
}

// KanjiHandler handles kanji API requests
type KanjiHandler struct {
	svc     KanjiService
	catalog ArtifactLister
	logger  *zap.Logger
}

// NewKanjiHandler creates a new kanji handler
func NewKanjiHandler(svc KanjiService, logger *zap.Logger) *KanjiHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KanjiHandler{svc: svc, logger: logger}
}

// SetCatalog enables the artifact endpoints
func (h *KanjiHandler) SetCatalog(c ArtifactLister) {
	h.catalog = c
}

// Register adds the API routes to mux
func (h *KanjiHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/kanji", h.ListKanji)
	mux.HandleFunc("GET /api/kanji/{symbol}", h.GetKanji)
	mux.HandleFunc("GET /api/kanji/{symbol}/diagram", h.GetDiagram)
	mux.HandleFunc("GET /api/artifacts", h.ListArtifacts)
	mux.HandleFunc("POST /api/reload", h.Reload)
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// KanjiList is the response of ListKanji
type KanjiList struct {
	Source string                 `json:"source"`
	Count  int                    `json:"count"`
	Kanji  []domain.RelationEntry `json:"kanji"`
}

// KanjiDetail is the response of GetKanji
type KanjiDetail struct {
	domain.RelationEntry
	Artifacts []repository.Artifact `json:"artifacts,omitempty"`
}

var diagramContentTypes = map[string]string{
	"json":    "application/json",
	"yaml":    "application/x-yaml",
	"dot":     "text/vnd.graphviz; charset=utf-8",
	"text":    "text/plain; charset=utf-8",
	"mermaid": "text/markdown; charset=utf-8",
}

// ListKanji returns all entries
func (h *KanjiHandler) ListKanji(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.List()
	h.writeJSON(w, KanjiList{
		Source: h.svc.Source(),
		Count:  len(entries),
		Kanji:  entries,
	}, http.StatusOK)
}

// GetKanji returns a single entry
func (h *KanjiHandler) GetKanji(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		h.writeError(w, "Invalid symbol", "Symbol is required", http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Get(symbol)
	if err != nil {
		if errors.Is(err, service.ErrCharacterNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get kanji", zap.String("symbol", symbol), zap.Error(err))
		h.writeError(w, "Failed to get kanji", err.Error(), http.StatusInternalServerError)
		return
	}

	detail := KanjiDetail{RelationEntry: entry}
	if h.catalog != nil {
		artifacts, err := h.catalog.ListArtifacts(r.Context(), symbol)
		if err != nil {
			h.logger.Error("failed to list artifacts", zap.String("symbol", symbol), zap.Error(err))
			h.writeError(w, "Failed to list artifacts", err.Error(), http.StatusInternalServerError)
			return
		}
		detail.Artifacts = artifacts
	}

	h.writeJSON(w, detail, http.StatusOK)
}

// GetDiagram renders the diagram of a symbol. Unknown symbols render as a
// single external node, not as 404.
func (h *KanjiHandler) GetDiagram(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	if err := h.svc.WriteDiagram(symbol, format, &buf); err != nil {
		if errors.Is(err, codec.ErrUnknownFormat) {
			h.writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to render diagram", zap.String("symbol", symbol), zap.Error(err))
		h.writeError(w, "Failed to render diagram", err.Error(), http.StatusInternalServerError)
		return
	}

	contentType, ok := diagramContentTypes[format]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ListArtifacts returns recorded artifacts, optionally for one symbol
func (h *KanjiHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		h.writeError(w, "Catalog disabled", "Start the server with --catalog to record artifacts", http.StatusNotFound)
		return
	}

	artifacts, err := h.catalog.ListArtifacts(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		h.logger.Error("failed to list artifacts", zap.Error(err))
		h.writeError(w, "Failed to list artifacts", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, artifacts, http.StatusOK)
}

// Reload re-reads the input file
func (h *KanjiHandler) Reload(w http.ResponseWriter, r *http.Request) {
	source := h.svc.Source()
	if source == "" {
		h.writeError(w, "Nothing to reload", "No input file loaded", http.StatusConflict)
		return
	}

	if err := h.svc.Load(source); err != nil {
		var parseErr *loader.ParseError
		switch {
		case errors.As(err, &parseErr):
			h.writeError(w, "Failed to parse input", parseErr.Repaired, http.StatusUnprocessableEntity)
		case errors.Is(err, loader.ErrInputNotFound):
			h.writeError(w, "Input not found", err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("failed to reload", zap.Error(err))
			h.writeError(w, "Failed to reload", err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"status": "reloaded",
		"source": source,
		"count":  len(h.svc.List()),
	}, http.StatusOK)
}

// Helper methods

func (h *KanjiHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("failed to encode JSON", zap.Error(err))
	}
}

func (h *KanjiHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Warn("failed to encode error response", zap.Error(err))
	}
}
