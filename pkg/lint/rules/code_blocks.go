package rules

import (
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/langdetect"
	"github.com/yaklabco/marklint/pkg/lint"
)

// FencedCodeLanguageRule checks that fenced code blocks declare a language.
type FencedCodeLanguageRule struct {
	lint.BaseRule

	// suggest enables content-based language detection for the fix.
	suggest bool
}

// NewFencedCodeLanguageRule creates a configured fenced code language rule.
func NewFencedCodeLanguageRule(cfg *config.Config) *FencedCodeLanguageRule {
	return &FencedCodeLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should declare a language",
			[]string{"code"},
			lint.Fixable,
		),
		suggest: cfg.OptionBool("MD040", "suggest", true),
	}
}

// ShouldSkip skips documents with no fence characters at all.
func (r *FencedCodeLanguageRule) ShouldSkip(doc *document.Document) bool {
	return !doc.LikelyHasCode()
}

// Check reports every fenced code block without an info string. When
// detection is enabled and the block content identifies a language, the
// warning carries a fix inserting it after the opening fence.
func (r *FencedCodeLanguageRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for i := range doc.CodeBlocks {
		block := &doc.CodeBlocks[i]
		if block.Language != "" {
			continue
		}

		w := lint.WarningOnLine(doc, block.StartLine, "Fenced code block without a language")

		if r.suggest {
			// "text" is the detector's low-confidence fallback; an
			// inserted "text" info string would be worse than none.
			if lang := langdetect.Detect([]byte(blockBody(doc, block))); lang != "" && lang != "text" {
				openEnd := doc.Lines[block.StartLine].ByteEnd
				w.Fix = fix.Insert(openEnd, lang)
				w.Message = "Fenced code block without a language (detected " + lang + ")"
			}
		}

		warnings = append(warnings, w)
	}

	return warnings
}

// Fix inserts detected languages after unlabeled opening fences. Blocks
// whose language cannot be detected are left for the author.
func (r *FencedCodeLanguageRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// blockBody returns the text between the fences of a code block.
func blockBody(doc *document.Document, block *document.CodeBlock) string {
	var sb strings.Builder
	for i := block.StartLine + 1; i < block.EndLine && i < len(doc.Lines); i++ {
		sb.WriteString(doc.Lines[i].Content)
		sb.WriteByte('\n')
	}
	return sb.String()
}
