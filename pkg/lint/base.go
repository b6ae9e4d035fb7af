package lint

import (
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id         string   // Unique identifier (e.g., "MD009")
	name       string   // Human-readable name
	desc       string   // Detailed description
	tags       []string // Categorization tags
	capability FixCapability
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, capability FixCapability) BaseRule {
	return BaseRule{
		id:         id,
		name:       name,
		desc:       desc,
		tags:       tags,
		capability: capability,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// OptIn returns whether the rule requires explicit activation.
// Override this method for opt-in rules.
func (r *BaseRule) OptIn() bool {
	return false
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// FixCapability returns whether this rule can auto-fix issues.
func (r *BaseRule) FixCapability() FixCapability {
	return r.capability
}

// ShouldSkip reports whether Check can be skipped for this document.
// The default never skips; rules override it with cheap prefilters.
func (r *BaseRule) ShouldSkip(_ *document.Document) bool {
	return false
}

// Fix must be overridden by fixable rules. The default reports the rule
// as unfixable.
func (r *BaseRule) Fix(_ *document.Document) (string, error) {
	return "", ErrUnfixable
}
