package stepregex

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes compiled patterns keyed by their source text.
//
// A Cache is safe for concurrent use. Failed compilations are not cached, so a
// bad pattern is reported on every call.
type Cache struct {
	config Config
	m      sync.Map // pattern -> *Regex
	n      atomic.Int64
}

// NewCache returns an empty cache that compiles with config.
func NewCache(config Config) *Cache {
	return &Cache{config: config}
}

// Get returns the compiled form of pattern, compiling it on first use.
//
// Two goroutines asking for the same new pattern may both compile it; only one
// result is kept and both callers receive it.
func (c *Cache) Get(pattern string) (*Regex, error) {
	if re, ok := c.m.Load(pattern); ok {
		return re.(*Regex), nil
	}

	re, err := CompileWithConfig(pattern, c.config)
	if err != nil {
		return nil, err
	}

	actual, loaded := c.m.LoadOrStore(pattern, re)
	if !loaded {
		c.n.Add(1)
	}
	return actual.(*Regex), nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	return int(c.n.Load())
}

var defaultCache = NewCache(DefaultConfig())

// Cached compiles pattern with the default configuration, reusing an earlier
// compilation of the same text.
//
// Example:
//
//	re, err := stepregex.Cached(`\d+`)
func Cached(pattern string) (*Regex, error) {
	return defaultCache.Get(pattern)
}
