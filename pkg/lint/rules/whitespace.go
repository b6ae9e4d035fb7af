package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/lint"
)

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule

	// brSpaces is the number of trailing spaces tolerated as a hard line
	// break. Zero means no trailing whitespace at all.
	brSpaces         int
	ignoreCodeBlocks bool
}

// NewTrailingWhitespaceRule creates a configured trailing whitespace rule.
func NewTrailingWhitespaceRule(cfg *config.Config) *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Lines should not have trailing spaces",
			[]string{"whitespace"},
			lint.Fixable,
		),
		brSpaces:         cfg.OptionInt("MD009", "br_spaces", 0),
		ignoreCodeBlocks: cfg.OptionBool("MD009", "ignore_code_blocks", false),
	}
}

// Check reports every line with trailing spaces or tabs.
func (r *TrailingWhitespaceRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.InFrontMatter {
			continue
		}
		if r.ignoreCodeBlocks && line.InCodeBlock {
			continue
		}

		start, end := lint.TrailingWhitespaceRange(doc, i)
		if start < 0 {
			continue
		}

		// A run of exactly brSpaces spaces is a hard line break.
		trailing := doc.Content[start:end]
		if r.brSpaces >= 2 && trailing == strings.Repeat(" ", r.brSpaces) {
			continue
		}

		w := lint.WarningAt(doc, start, end, "Trailing whitespace")
		w.Fix = fix.Delete(start, end)
		warnings = append(warnings, w)
	}

	return warnings
}

// Fix removes trailing whitespace from every flagged line.
func (r *TrailingWhitespaceRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// HardTabsRule checks for tab characters in content lines.
type HardTabsRule struct {
	lint.BaseRule

	spacesPerTab    int
	ignoreCodeLines bool
}

// NewHardTabsRule creates a configured hard tabs rule.
func NewHardTabsRule(cfg *config.Config) *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs should be replaced with spaces",
			[]string{"whitespace"},
			lint.Fixable,
		),
		spacesPerTab:    cfg.OptionInt("MD010", "spaces_per_tab", 4),
		ignoreCodeLines: cfg.OptionBool("MD010", "code_blocks", true),
	}
}

// ShouldSkip skips documents that contain no tab at all.
func (r *HardTabsRule) ShouldSkip(doc *document.Document) bool {
	return !strings.Contains(doc.Content, "\t")
}

// Check reports each run of tab characters outside ignored zones.
func (r *HardTabsRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.InFrontMatter {
			continue
		}
		// Tabs inside code blocks are often intentional (Makefiles).
		if r.ignoreCodeLines && line.InCodeBlock {
			continue
		}

		content := line.Content
		for j := 0; j < len(content); {
			if content[j] != '\t' {
				j++
				continue
			}
			runStart := j
			for j < len(content) && content[j] == '\t' {
				j++
			}
			start := line.ByteOffset + runStart
			end := line.ByteOffset + j

			w := lint.WarningAt(doc, start, end, "Hard tab")
			w.Fix = fix.Replace(start, end, strings.Repeat(" ", r.spacesPerTab*(j-runStart)))
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// Fix replaces each tab run with spaces.
func (r *HardTabsRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// MultipleBlanksRule checks for runs of consecutive blank lines.
type MultipleBlanksRule struct {
	lint.BaseRule

	maximum int
}

// NewMultipleBlanksRule creates a configured multiple blank lines rule.
func NewMultipleBlanksRule(cfg *config.Config) *MultipleBlanksRule {
	return &MultipleBlanksRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines should be collapsed",
			[]string{"whitespace", "blank_lines"},
			lint.Fixable,
		),
		maximum: cfg.OptionInt("MD012", "maximum", 1),
	}
}

// Check reports every blank line beyond the allowed run length. Blank
// lines inside code blocks are content, not formatting.
func (r *MultipleBlanksRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning
	run := 0

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if !line.Blank || line.InCodeBlock || line.InFrontMatter {
			run = 0
			continue
		}

		run++
		if run <= r.maximum {
			continue
		}

		// Delete the whole line including its terminator.
		delEnd := len(doc.Content)
		if i+1 < len(doc.Lines) {
			delEnd = doc.Lines[i+1].ByteOffset
		}

		w := lint.WarningOnLine(doc, i,
			fmt.Sprintf("Multiple consecutive blank lines (expected at most %d)", r.maximum))
		w.Fix = fix.Delete(line.ByteOffset, delEnd)
		warnings = append(warnings, w)
	}

	return warnings
}

// Fix deletes the excess blank lines.
func (r *MultipleBlanksRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}
