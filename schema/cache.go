package schema

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/wordgrain/wgtools/parser"
)

// Cache holds compiled schemas keyed by their $id. The zero value is not
// usable; create one with NewCache. Entries are never evicted.
type Cache struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	group   singleflight.Group
	opts    []CompileOption
}

// NewCache returns an empty cache whose compilations use opts.
func NewCache(opts ...CompileOption) *Cache {
	return &Cache{
		schemas: make(map[string]*Schema),
		opts:    opts,
	}
}

// Get returns the schema compiled for id.
func (c *Cache) Get(id string) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[id]
	return s, ok
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.schemas)
}

// Compile returns the cached schema for raw's $id, compiling and storing it
// on first use. Concurrent calls for the same $id share one compilation.
// A schema without $id is compiled every time and not stored.
func (c *Cache) Compile(raw any) (*Schema, error) {
	id := rawID(raw)
	if id == "" {
		return Compile(raw, c.opts...)
	}
	if s, ok := c.Get(id); ok {
		return s, nil
	}
	v, err, _ := c.group.Do(id, func() (any, error) {
		if s, ok := c.Get(id); ok {
			return s, nil
		}
		s, err := Compile(raw, c.opts...)
		if err != nil {
			return nil, err
		}
		c.Put(s)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("schema: compiling %s: %w", id, err)
	}
	return v.(*Schema), nil
}

// Put stores s under its ID, replacing any previous entry. Schemas without
// an ID are ignored.
func (c *Cache) Put(s *Schema) {
	if s == nil || s.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[s.ID] = s
}

func rawID(raw any) string {
	switch r := raw.(type) {
	case *parser.Object:
		return stringKeyword(r, "$id")
	case map[string]any:
		id, _ := r["$id"].(string)
		return id
	default:
		return ""
	}
}
