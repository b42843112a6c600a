package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path returns where the artifact of symbol lives inside dir
func Path(dir, symbol, ext string) string {
	return filepath.Join(dir, Name(symbol, ext))
}

// Write stores a textual artifact for symbol in dir and returns its path
func Write(dir, symbol, ext string, data []byte) (string, error) {
	path := Path(dir, symbol, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return path, nil
}
