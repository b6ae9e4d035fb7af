package lint

import (
	"cmp"
	"slices"
	"sync"

	"github.com/yaklabco/marklint/pkg/config"
)

// Constructor builds a configured instance of a rule. Rules are
// constructed per run so that configuration can be bound once at
// construction time instead of threaded through every check.
type Constructor func(cfg *config.Config) Rule

type registration struct {
	id   string
	name string
	ctor Constructor
}

// Registry holds the constructors for all registered lint rules.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]registration
	byName  map[string]registration
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]registration),
		byName:  make(map[string]registration),
		aliases: make(map[string]string),
	}
}

// Register adds a rule constructor under its ID and human-readable name.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(id, name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := registration{id: id, name: name, ctor: ctor}
	r.byID[id] = reg
	r.byName[name] = reg
}

// RegisterAlias maps an alias to a canonical rule ID.
// Used for legacy markdownlint compatibility (e.g., "first-header-h1" -> "MD002").
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// New constructs a configured rule by ID, name, or alias.
func (r *Registry) New(key string, cfg *config.Config) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.lookup(key); ok {
		return reg.ctor(cfg), true
	}
	return nil, false
}

// Resolve returns the canonical ID for a given key.
// The key can be a rule ID, name, or legacy alias.
func (r *Registry) Resolve(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.lookup(key); ok {
		return reg.id, true
	}
	return "", false
}

// lookup must be called with at least a read lock held.
func (r *Registry) lookup(key string) (registration, bool) {
	// Try ID first
	if reg, ok := r.byID[key]; ok {
		return reg, true
	}
	// Fall back to name
	if reg, ok := r.byName[key]; ok {
		return reg, true
	}
	// Then alias
	if targetID, ok := r.aliases[key]; ok {
		if reg, ok := r.byID[targetID]; ok {
			return reg, true
		}
	}
	return registration{}, false
}

// NewAll constructs every registered rule, sorted by ID.
func (r *Registry) NewAll(cfg *config.Config) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byID))
	for _, reg := range r.byID {
		result = append(result, reg.ctor(cfg))
	}

	// Sort by rule ID for consistent, deterministic output.
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
