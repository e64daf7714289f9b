package docsource

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/matchgrade/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Home FC - Away FC 2-1.txt", "Lineup\nGK 1 Anna Keeper\n")

	doc, err := NewFileSource(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Home FC - Away FC 2-1.txt", doc.Filename)
	assert.Equal(t, "Lineup\nGK 1 Anna Keeper\n", doc.Text)
}

func TestExtractHTML(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><style>td { color: red }</style><script>var x = 1;</script></head>
<body>
  <h1>Matchday 5</h1>
  <p>12.03.2026</p>
  <table>
    <tr><th>#</th><th>Player</th><th>Min</th></tr>
    <tr><td>9</td><td>C. <b>Smith</b></td><td>75'</td></tr>
  </table>
</body></html>`
	path := writeFile(t, dir, "report.HTML", page)

	doc, err := NewFileSource(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Matchday 5\n12.03.2026\n# Player Min\n9 C. Smith 75'", doc.Text)
	assert.NotContains(t, doc.Text, "color")
	assert.NotContains(t, doc.Text, "var x")
}

func TestExtractUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.docx", "x")

	_, err := NewFileSource(nil).Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewFileSource(nil).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestExtractCanceled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource(nil).Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractInvalidPDF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.pdf", "not a pdf")

	_, err := NewFileSource(nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "fresh text")
	key := cacheKey(path, []byte("fresh text"))

	t.Run("miss stores text", func(t *testing.T) {
		cache := new(iocache.MockDocumentCache)
		cache.On("Get", key).Return(nil, 0, int64(0), sql.ErrNoRows)
		cache.On("Set", key, []byte("fresh text"), currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

		doc, err := NewFileSource(cache).Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "fresh text", doc.Text)
		cache.AssertExpectations(t)
	})

	t.Run("hit returns cached text", func(t *testing.T) {
		cache := new(iocache.MockDocumentCache)
		cache.On("Get", key).Return([]byte("cached text"), currentCacheVersion, int64(1), nil)

		doc, err := NewFileSource(cache).Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "cached text", doc.Text)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stale version is ignored", func(t *testing.T) {
		cache := new(iocache.MockDocumentCache)
		cache.On("Get", key).Return([]byte("old layout"), currentCacheVersion-1, int64(1), nil)
		cache.On("Set", key, []byte("fresh text"), currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

		doc, err := NewFileSource(cache).Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "fresh text", doc.Text)
	})
}

func TestCacheKeyDependsOnFormat(t *testing.T) {
	data := []byte("<p>x</p>")
	assert.NotEqual(t, cacheKey("a.html", data), cacheKey("a.txt", data))
	assert.Equal(t, cacheKey("a.html", data), cacheKey("b.HTML", data))
	assert.Len(t, cacheKey("a.txt", data), 64)
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.pdf", true},
		{"a.PDF", true},
		{"a.htm", true},
		{"a.html", true},
		{"a.txt", true},
		{"a.csv", false},
		{"a", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Supported(tt.path))
		})
	}
}

func TestTidyLines(t *testing.T) {
	assert.Equal(t, "a b\nc", tidyLines("  a   b \n\n\t\n c\n"))
}
