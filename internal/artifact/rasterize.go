package artifact

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Rasterizer turns DOT source into an image file
type Rasterizer interface {
	Rasterize(ctx context.Context, dotSource, outPath string) error
}

// Graphviz rasterizes with the Graphviz command line tool
type Graphviz struct {
	Binary  string
	Format  string
	Timeout time.Duration
}

// NewGraphviz creates a PNG rasterizer using the given dot binary
func NewGraphviz(binary string, timeout time.Duration) *Graphviz {
	if binary == "" {
		binary = "dot"
	}
	return &Graphviz{Binary: binary, Format: "png", Timeout: timeout}
}

// Available reports whether the dot binary can be found
func (g *Graphviz) Available() bool {
	_, err := exec.LookPath(g.Binary)
	return err == nil
}

// Rasterize pipes dotSource to Graphviz and writes the image to outPath
func (g *Graphviz) Rasterize(ctx context.Context, dotSource, outPath string) error {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, g.Binary, "-T"+g.Format, "-o", outPath)
	cmd.Stdin = strings.NewReader(dotSource)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("graphviz failed: %w: %s", err, msg)
		}
		return fmt.Errorf("graphviz failed: %w", err)
	}
	return nil
}
