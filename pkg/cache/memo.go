package cache

import (
	"crypto/sha256"
	"sync"
)

// Key identifies a memoized computation: the content hash plus a label for
// the computation itself.
type Key struct {
	content [sha256.Size]byte
	label   string
}

// NewKey builds a Key from raw content and a computation label.
func NewKey(content, label string) Key {
	return Key{content: sha256.Sum256([]byte(content)), label: label}
}

// Memo memoizes expensive per-rule computations keyed by content hash.
// A rule instance may be shared across workers linting different files, so
// access is mutex-guarded. A compute function that panics is treated as a
// cache miss: the panic is swallowed, nothing is stored, and the zero
// value is returned, so one bad file cannot poison unrelated files.
type Memo struct {
	mu     sync.Mutex
	values map[Key]any
}

// NewMemo returns an empty memoization table.
func NewMemo() *Memo {
	return &Memo{values: make(map[Key]any)}
}

// Get returns the cached value for key, computing and storing it on a
// miss. ok is false when compute panicked and no value is available.
func (m *Memo) Get(key Key, compute func() any) (value any, ok bool) {
	m.mu.Lock()
	if v, hit := m.values[key]; hit {
		m.mu.Unlock()
		return v, true
	}
	m.mu.Unlock()

	// Compute outside the lock: computations can be slow, and a panic
	// while holding the mutex must not wedge other workers.
	value, ok = safeCompute(compute)
	if !ok {
		return nil, false
	}

	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return value, true
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// safeCompute runs compute, converting a panic into a miss.
func safeCompute(compute func() any) (value any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			value, ok = nil, false
		}
	}()
	return compute(), true
}
