// Package lint provides the rule contract, rule registry, selection
// resolver, and check/fix engine for marklint.
package lint

import (
	"errors"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
)

// ErrUnfixable is returned by Fix when a rule cannot compute a safe
// automatic rewrite for the issues it reports.
var ErrUnfixable = errors.New("rule cannot compute a safe automatic fix")

// FixCapability describes whether a rule can rewrite the issues it finds.
type FixCapability int

const (
	// Unfixable rules only report warnings.
	Unfixable FixCapability = iota

	// Fixable rules can produce a rewritten document.
	Fixable
)

// Warning represents a single lint issue found in a file.
// Line and column positions are 1-based.
type Warning struct {
	// RuleID is the identifier of the rule that produced this warning.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the warning.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable hint for resolving the issue.
	Suggestion string

	// Fix is an optional byte-range replacement that resolves the issue.
	// The range is only valid against the exact content snapshot the
	// warning was produced from.
	Fix *fix.TextEdit
}

// HasFix returns true if this warning carries a fix.
func (w *Warning) HasFix() bool {
	return w.Fix != nil
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MD009").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Tags returns categorization tags for this rule (e.g., ["whitespace"]).
	Tags() []string

	// OptIn returns whether the rule is excluded from the default active
	// set unless explicitly enabled.
	OptIn() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// FixCapability returns whether this rule can auto-fix issues.
	FixCapability() FixCapability

	// ShouldSkip is a cheap syntactic prefilter: true means Check is
	// guaranteed to find nothing on this document. It must never skip a
	// document that Check would flag.
	ShouldSkip(doc *document.Document) bool

	// Check reports all issues in the document.
	Check(doc *document.Document) []Warning

	// Fix returns the document content with this rule's issues resolved.
	// Rules with FixCapability Unfixable return ErrUnfixable.
	Fix(doc *document.Document) (string, error)
}
