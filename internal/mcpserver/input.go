package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wordgrain/wgtools/parser"
)

// documentInput represents the two ways a WordGrain document can be provided
// to a tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a WordGrain document (.wg.json, .json or .yaml) on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline WordGrain document content (JSON or YAML)"`
}

// documentCache is a session-scoped cache of loaded documents. File inputs
// are keyed by (absolutePath, modTime, size) so edits invalidate them; inline
// content is keyed by its SHA-256 hash. Entries expire after cfg.CacheTTL.
type documentCache struct {
	lru *expirable.LRU[string, *parser.ParseResult]
}

func newDocumentCache(size int, ttl time.Duration) *documentCache {
	return &documentCache{lru: expirable.NewLRU[string, *parser.ParseResult](size, nil, ttl)}
}

var docCache = newDocumentCache(cfg.CacheMaxSize, cfg.CacheTTL)

func (c *documentCache) get(key string) *parser.ParseResult {
	if pr, ok := c.lru.Get(key); ok {
		return pr
	}
	return nil
}

func (c *documentCache) put(key string, pr *parser.ParseResult) {
	c.lru.Add(key, pr)
}

func (c *documentCache) size() int {
	return c.lru.Len()
}

// reset clears all cached entries. Used in tests.
func (c *documentCache) reset() {
	c.lru.Purge()
}

// makeCacheKey creates a cache key for the given input, or "" when the input
// should not be cached.
func makeCacheKey(d documentInput) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d:%d", absPath, info.ModTime().UnixNano(), info.Size())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve loads the document from whichever input was provided, using the
// cache when it is enabled. Syntax errors are returned as *wgerrors.ParseError
// so callers can report them as validation failures.
func (d documentInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %s exceeds maximum %s; use file input instead, or set WGTOOLS_MAX_INLINE_SIZE to increase",
			parser.FormatBytes(int64(len(d.Content))), parser.FormatBytes(cfg.MaxInlineSize))
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(d)
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	if d.File != "" {
		opts = append(opts, parser.WithFilePath(d.File))
	} else {
		opts = append(opts, parser.WithBytes([]byte(d.Content)), parser.WithSourceName("content"))
	}
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		docCache.put(key, result)
	}
	return result, nil
}
