package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/marklint/pkg/cache"
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/lint"
)

const hrPattern = `^ {0,3}([-_*])(?:[ \t]*\1){2,}[ \t]*$`

// HRStyleRule checks that horizontal rules use a consistent style.
type HRStyleRule struct {
	lint.BaseRule

	// style is either "consistent" or a literal rule string like "---".
	style string
}

// NewHRStyleRule creates a configured horizontal rule style rule.
func NewHRStyleRule(cfg *config.Config) *HRStyleRule {
	return &HRStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD035",
			"hr-style",
			"Horizontal rules should use a consistent style",
			[]string{"hr"},
			lint.Fixable,
		),
		style: cfg.OptionString("MD035", "style", "consistent"),
	}
}

// ShouldSkip skips documents that cannot contain a horizontal rule.
func (r *HRStyleRule) ShouldSkip(doc *document.Document) bool {
	return !strings.ContainsAny(doc.Content, "-_*")
}

// Check reports horizontal rules that deviate from the expected style.
// With "consistent", the first rule in the document sets the style.
func (r *HRStyleRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning
	expected := r.style
	if expected == "consistent" {
		expected = ""
	}

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if !isHorizontalRule(doc, i) {
			continue
		}

		found := strings.TrimSpace(line.Content)
		if expected == "" {
			expected = found
			continue
		}
		if found == expected {
			continue
		}

		w := lint.WarningOnLine(doc, i,
			fmt.Sprintf("Horizontal rule style %q, expected %q", found, expected))
		w.Fix = fix.Replace(line.ByteOffset, line.ByteEnd, expected)
		warnings = append(warnings, w)
	}

	return warnings
}

// Fix rewrites deviating rules to the expected style.
func (r *HRStyleRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// isHorizontalRule reports whether a line is a thematic break. A dash run
// that underlines a Setext heading is not one.
func isHorizontalRule(doc *document.Document, idx int) bool {
	line := &doc.Lines[idx]
	if line.Blank || line.InCodeBlock || line.InFrontMatter || line.InHTMLBlock || line.InHTMLComment {
		return false
	}
	if !cache.Regex(hrPattern).MatchString(line.Content) {
		return false
	}
	if idx > 0 {
		if h := doc.Lines[idx-1].Heading; h != nil &&
			(h.Style == document.HeadingSetext1 || h.Style == document.HeadingSetext2) {
			return false
		}
	}
	return true
}
