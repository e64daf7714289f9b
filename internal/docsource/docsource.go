// Package docsource reads match reports from PDF, HTML and plain text files.
package docsource

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// currentCacheVersion defines the version of the cached text layout.
const currentCacheVersion = 1

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = fmt.Errorf("unsupported report format")

// reader converts raw file bytes to text.
type reader func(data []byte) (string, error)

var readers = map[string]reader{
	".pdf":  readPDF,
	".html": readHTML,
	".htm":  readHTML,
	".txt":  readText,
}

// Supported reports whether path has a readable report extension.
func Supported(path string) bool {
	_, ok := readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FileSource reads reports from disk, caching extracted text by content hash
// when a cache is configured.
type FileSource struct {
	cache contract.DocumentCache
}

var _ contract.DocumentSource = &FileSource{} // Compile-time check

// NewFileSource returns a source backed by cache. A nil cache disables caching.
func NewFileSource(cache contract.DocumentCache) *FileSource {
	return &FileSource{cache: cache}
}

// Extract reads the document at path and returns its text with the base filename.
func (s *FileSource) Extract(ctx context.Context, path string) (schema.Document, error) {
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return schema.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("failed to read report: %w", err)
	}

	doc := schema.Document{Filename: filepath.Base(path)}
	key := cacheKey(path, data)
	if text, hit := s.checkCacheHit(key); hit {
		doc.Text = text
		return doc, nil
	}

	text, err := read(data)
	if err != nil {
		return schema.Document{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(key, []byte(text), currentCacheVersion, time.Now().Unix())
	}
	doc.Text = text
	return doc, nil
}

// checkCacheHit returns cached text written by the current layout version.
func (s *FileSource) checkCacheHit(key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	data, version, _, err := s.cache.Get(key)
	if err != nil || version != currentCacheVersion {
		return "", false
	}
	return string(data), true
}

// cacheKey hashes the file contents together with the format, since the same
// bytes read as HTML and as text give different results.
func cacheKey(path string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(filepath.Ext(path))))
	h.Write([]byte{0})
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func readText(data []byte) (string, error) {
	return string(data), nil
}
