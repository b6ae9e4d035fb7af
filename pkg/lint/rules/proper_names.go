package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/marklint/pkg/cache"
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/lint"
)

// ProperNamesRule checks that configured proper names use their canonical
// spelling throughout the document.
type ProperNamesRule struct {
	lint.BaseRule

	names      []string
	codeBlocks bool // also check code blocks and spans
	matches    *cache.Memo
}

// NewProperNamesRule creates a configured proper names rule.
func NewProperNamesRule(cfg *config.Config) *ProperNamesRule {
	return &ProperNamesRule{
		BaseRule: lint.NewBaseRule(
			"MD044",
			"proper-names",
			"Proper names should use their canonical capitalization",
			[]string{"spelling"},
			lint.Fixable,
		),
		names:      cfg.OptionStringSlice("MD044", "names", nil),
		codeBlocks: cfg.OptionBool("MD044", "code_blocks", false),
		matches:    cache.NewMemo(),
	}
}

// ShouldSkip skips when no names are configured or none of them occurs in
// the document in any spelling.
func (r *ProperNamesRule) ShouldSkip(doc *document.Document) bool {
	if len(r.names) == 0 {
		return true
	}
	for _, name := range r.names {
		if len(r.nameMatches(doc.Content, name)) > 0 {
			return false
		}
	}
	return true
}

// Check reports every occurrence of a configured name with the wrong
// capitalization.
func (r *ProperNamesRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for _, name := range r.names {
		for _, m := range r.nameMatches(doc.Content, name) {
			start, end := m[0], m[1]
			found := doc.Content[start:end]
			if found == name {
				continue
			}
			if !r.codeBlocks && doc.IsInCodeBlockOrSpan(start) {
				continue
			}
			// Leave URLs and HTML attributes alone.
			if doc.IsInLinkDestination(start) || doc.IsInHTMLTag(start) || doc.IsInReferenceDef(start) {
				continue
			}
			if lineIdx := doc.LineForOffset(start); lineIdx >= 0 && doc.Lines[lineIdx].InFrontMatter {
				continue
			}

			w := lint.WarningAt(doc, start, end,
				fmt.Sprintf("%q should be spelled %q", found, name))
			w.Fix = fix.Replace(start, end, name)
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// Fix rewrites every misspelled occurrence.
func (r *ProperNamesRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// nameMatches returns every occurrence of a name in content, in any
// capitalization. ShouldSkip, Check, and the repeated re-checks of the fix
// pipeline all scan the same content, so the result is memoized by content
// hash.
func (r *ProperNamesRule) nameMatches(content, name string) [][]int {
	v, ok := r.matches.Get(cache.NewKey(content, name), func() any {
		return r.pattern(name).FindAllStringIndex(content, -1)
	})
	if !ok {
		return nil
	}
	matches, _ := v.([][]int)
	return matches
}

// pattern returns the cached case-insensitive word pattern for a name.
func (r *ProperNamesRule) pattern(name string) *regexp.Regexp {
	return cache.Regex(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
}
