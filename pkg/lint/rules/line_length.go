package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/lint"
)

// defaultMaxLineLength is the default maximum line length.
const defaultMaxLineLength = 120

// MaxLineLengthRule checks that lines do not exceed a maximum length.
type MaxLineLengthRule struct {
	lint.BaseRule

	maxLength        int
	ignoreCodeBlocks bool
	ignoreTables     bool
	ignoreURLs       bool
}

// NewMaxLineLengthRule creates a configured max line length rule.
func NewMaxLineLengthRule(cfg *config.Config) *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"MD013",
			"line-length",
			"Line length should not exceed the configured maximum",
			[]string{"line_length"},
			lint.Unfixable,
		),
		maxLength:        cfg.OptionInt("MD013", "max", defaultMaxLineLength),
		ignoreCodeBlocks: cfg.OptionBool("MD013", "ignore_code_blocks", true),
		ignoreTables:     cfg.OptionBool("MD013", "ignore_tables", true),
		ignoreURLs:       cfg.OptionBool("MD013", "ignore_urls", true),
	}
}

// Check reports every line longer than the maximum. Length is measured in
// runes, not bytes.
func (r *MaxLineLengthRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.InFrontMatter {
			continue
		}
		if r.ignoreCodeBlocks && line.InCodeBlock {
			continue
		}
		if r.ignoreTables && isTableRow(line.Content) {
			continue
		}

		length := utf8.RuneCountInString(line.Content)
		if length <= r.maxLength {
			continue
		}

		// A long line whose overflow is a bare URL cannot be wrapped.
		if r.ignoreURLs && longBecauseOfURL(line.Content, r.maxLength) {
			continue
		}

		w := lint.WarningOnLine(doc, i,
			fmt.Sprintf("Line length %d exceeds maximum %d", length, r.maxLength))
		w.StartColumn = r.maxLength + 1
		warnings = append(warnings, w)
	}

	return warnings
}

// isTableRow matches pipe-table rows loosely: a line whose first
// non-whitespace character is a pipe, or that contains a pipe-delimited
// separator row.
func isTableRow(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if trimmed[0] == '|' {
		return true
	}
	// "a | b | c" style rows without a leading pipe.
	return strings.Count(trimmed, "|") >= 2
}

// longBecauseOfURL reports whether everything past the limit belongs to a
// single unbreakable URL token.
func longBecauseOfURL(text string, limit int) bool {
	idx := strings.Index(text, "http://")
	if idx < 0 {
		idx = strings.Index(text, "https://")
	}
	if idx < 0 {
		return false
	}
	tokenEnd := idx
	for tokenEnd < len(text) && text[tokenEnd] != ' ' && text[tokenEnd] != '\t' {
		tokenEnd++
	}
	return utf8.RuneCountInString(text[:idx]) <= limit && tokenEnd == len(text)
}
