package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"kanjigraph/internal/domain"
)

// ErrInputNotFound is returned when the input file does not exist
var ErrInputNotFound = fmt.Errorf("input file not found: %w", fs.ErrNotExist)

// ParseError reports text that still is not valid JSON after repair.
// Repaired holds the full repaired text for diagnosis.
type ParseError struct {
	Repaired string
	Err      error
}

func (e *ParseError) Error() string {
	var syntaxErr *json.SyntaxError
	if errors.As(e.Err, &syntaxErr) {
		return fmt.Sprintf("failed to parse repaired text at offset %d: %v", syntaxErr.Offset, e.Err)
	}
	return fmt.Sprintf("failed to parse repaired text: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// relationJSON is the shape of one entry after repair
type relationJSON struct {
	In  []string `json:"in"`
	Out []string `json:"out"`
}

// Load reads and parses a lenient relation file
func Load(path string) (*domain.RelationMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(data)
}

// CheckInput fails with ErrInputNotFound when path does not exist. Callers
// use it to reject a missing input before acquiring other resources.
func CheckInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("failed to stat input: %w", err)
	}
	return nil
}

// Parse repairs and parses lenient relation text
func Parse(data []byte) (*domain.RelationMapping, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	return Decode(Repair(string(data)))
}

// Decode parses repaired text as an object of {"in": [...], "out": [...]}
// objects. Either the whole text parses or a *ParseError is returned.
func Decode(repaired string) (*domain.RelationMapping, error) {
	m, err := decode(repaired)
	if err != nil {
		return nil, &ParseError{Repaired: repaired, Err: err}
	}
	return m, nil
}

func decode(text string) (*domain.RelationMapping, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	m := domain.NewRelationMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected character key, got %v", tok)
		}

		var rel relationJSON
		if err := dec.Decode(&rel); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		m.Add(domain.RelationEntry{Character: key, In: rel.In, Out: rel.Out})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("unexpected data after offset %d", dec.InputOffset())
		}
		return nil, err
	}

	return m, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("expected %q, got end of input: %w", want, io.ErrUnexpectedEOF)
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
