package rules

import (
	"fmt"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/lint"
)

// HeadingIncrementRule checks that heading levels increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule(_ *config.Config) *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			[]string{"headings"},
			lint.Unfixable,
		),
	}
}

// ShouldSkip skips documents with no heading markers at all.
func (r *HeadingIncrementRule) ShouldSkip(doc *document.Document) bool {
	return !doc.LikelyHasHeadings()
}

// Check reports headings that jump more than one level past the previous one.
func (r *HeadingIncrementRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning
	var prevLevel int

	for _, h := range doc.Headings() {
		level := h.Info.Level

		// First heading can be any level.
		if prevLevel > 0 && level > prevLevel+1 {
			warnings = append(warnings, lint.WarningOnLine(doc, h.Line,
				fmt.Sprintf("Heading level jumped from H%d to H%d", prevLevel, level)))
		}

		prevLevel = level
	}

	return warnings
}

// SingleH1Rule checks that there is at most one top-level heading.
type SingleH1Rule struct {
	lint.BaseRule
}

// NewSingleH1Rule creates a new single H1 rule.
func NewSingleH1Rule(_ *config.Config) *SingleH1Rule {
	return &SingleH1Rule{
		BaseRule: lint.NewBaseRule(
			"MD025",
			"single-h1",
			"Documents should have a single top-level heading",
			[]string{"headings"},
			lint.Unfixable,
		),
	}
}

// ShouldSkip skips documents with no heading markers at all.
func (r *SingleH1Rule) ShouldSkip(doc *document.Document) bool {
	return !doc.LikelyHasHeadings()
}

// Check reports every H1 after the first.
func (r *SingleH1Rule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning
	seen := false

	for _, h := range doc.Headings() {
		if h.Info.Level != 1 {
			continue
		}
		if seen {
			warnings = append(warnings, lint.WarningOnLine(doc, h.Line,
				"Multiple top-level headings in the same document"))
			continue
		}
		seen = true
	}

	return warnings
}
