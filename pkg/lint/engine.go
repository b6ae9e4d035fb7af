package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Document is the analyzed file.
	Document *document.Document

	// Warnings contains all issues found, in position order.
	Warnings []Warning

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any warnings were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Warnings) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of warnings.
func (fr *FileResult) IssueCount() int {
	return len(fr.Warnings)
}

// FixableCount returns the number of warnings with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Warnings {
		if fr.Warnings[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates document analysis and rule execution for linting.
type Engine struct {
	// Registry holds all available rule constructors.
	Registry *Registry
}

// NewEngine creates a new Engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// flavorFor picks the dialect for a file: an explicit configured flavor
// wins, otherwise the file extension decides.
func flavorFor(path string, cfg *config.Config) config.Flavor {
	if cfg != nil && cfg.Flavor != config.FlavorStandard {
		return cfg.Flavor
	}
	return config.FlavorFromPath(path)
}

// LintFile analyzes and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	// Build the analysis context once; every rule shares it.
	doc := document.New(string(content), flavorFor(path, cfg))

	// Resolve which rules to run.
	resolved := ResolveRules(e.Registry.NewAll(cfg), cfg)

	result := &FileResult{
		Document:   doc,
		Warnings:   nil,
		Edits:      nil,
		RuleErrors: make(map[string]error),
	}

	// Collect all edits for validation.
	var allEdits []fix.TextEdit

	// Run each rule.
	for _, rr := range resolved {
		// Check for cancellation.
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		warnings, err := runRule(rr.Rule, doc)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		// Process warnings.
		for i := range warnings {
			// Apply resolved severity.
			warnings[i].Severity = rr.Severity

			// Ensure file path and identity are set.
			if warnings[i].FilePath == "" {
				warnings[i].FilePath = path
			}
			if warnings[i].RuleID == "" {
				warnings[i].RuleID = rr.Rule.ID()
			}
			if warnings[i].RuleName == "" {
				warnings[i].RuleName = rr.Rule.Name()
			}

			// Collect edits if auto-fix is enabled for this rule.
			if rr.AutoFix && warnings[i].Fix != nil {
				allEdits = append(allEdits, *warnings[i].Fix)
			}
		}

		result.Warnings = append(result.Warnings, warnings...)
	}

	SortWarnings(result.Warnings)

	// Validate and prepare edits, merging deletions and filtering conflicts.
	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, content)
		if err != nil {
			// Validation error (not conflicts - those are filtered).
			// Still include warnings but clear edits.
			result.Edits = nil
			result.SkippedEdits = nil
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

// runRule executes a single rule, converting a panic into a rule error so
// one misbehaving rule cannot take down the whole run.
func runRule(rule Rule, doc *document.Document) (warnings []Warning, err error) {
	defer func() {
		if r := recover(); r != nil {
			warnings = nil
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()

	if rule.ShouldSkip(doc) {
		return nil, nil
	}
	return rule.Check(doc), nil
}
