// Package cache provides the two narrow pieces of mutable state in the
// linting core: a compiled-regex cache and a content-keyed memoization
// table. Both degrade instead of failing: a pattern that does not compile
// behaves as if it matches nothing, and a panicking compute function is
// treated as a cache miss.
package cache

import (
	"regexp"
	"sync"
)

// neverMatch is a pattern that cannot match any input, used in place of
// patterns that fail to compile.
var neverMatch = regexp.MustCompile(`\A\z.`)

// RegexCache compiles patterns once and shares them across rules and
// worker goroutines.
type RegexCache struct {
	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
}

// NewRegexCache returns an empty cache.
func NewRegexCache() *RegexCache {
	return &RegexCache{compiled: make(map[string]*regexp.Regexp)}
}

// Get returns the compiled form of pattern. A pattern that fails to
// compile is remembered as a regexp that matches nothing, so a bad
// user-configured pattern silences its rule instead of aborting the file.
func (c *RegexCache) Get(pattern string) *regexp.Regexp {
	c.mu.RLock()
	re, ok := c.compiled[pattern]
	c.mu.RUnlock()
	if ok {
		return re
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		re = neverMatch
	}

	c.mu.Lock()
	c.compiled[pattern] = re
	c.mu.Unlock()
	return re
}

// Len returns the number of cached patterns.
func (c *RegexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.compiled)
}

// defaultRegexCache backs the package-level Regex helper.
var defaultRegexCache = NewRegexCache()

// Regex returns a compiled pattern from the shared process-wide cache.
func Regex(pattern string) *regexp.Regexp {
	return defaultRegexCache.Get(pattern)
}
