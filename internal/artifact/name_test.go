package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	t.Run("plain symbols kept", func(t *testing.T) {
		assert.Equal(t, "kanji_diagram_面.png", Name("面", "png"))
		assert.Equal(t, "kanji_diagram_愛する.txt", Name("愛する", "txt"))
		assert.Equal(t, "kanji_diagram_a-b_1", Name("a-b_1", ""))
	})

	t.Run("unsafe symbols hashed", func(t *testing.T) {
		for _, sym := range []string{"a/b", "..", "", "a b", `c:\x`} {
			name := Name(sym, "png")
			assert.True(t, strings.HasPrefix(name, Prefix+"~"), "symbol %q -> %q", sym, name)
			assert.NotContains(t, strings.TrimPrefix(name, Prefix), "/")
			assert.Len(t, name, len(Prefix)+1+16+len(".png"))
		}
	})

	t.Run("deterministic and distinct", func(t *testing.T) {
		assert.Equal(t, Name("a/b", "png"), Name("a/b", "png"))
		assert.NotEqual(t, Name("a/b", "png"), Name("a/c", "png"))
		assert.NotEqual(t, Name("ab", "png"), Name("a b", "png"))
	})
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "面", "txt", []byte("Kanji: 面\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kanji_diagram_面.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Kanji: 面\n", string(data))

	_, err = Write(filepath.Join(dir, "missing"), "面", "txt", nil)
	assert.Error(t, err)
}
