package rules

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
	"github.com/yaklabco/marklint/pkg/lint"
)

// Small words kept lowercase in title case unless they lead the heading.
var titleSmallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "nor": true, "of": true, "on": true,
	"or": true, "per": true, "the": true, "to": true, "via": true,
}

// HeadingCapitalizationRule checks that heading text follows a consistent
// capitalization style. Proper-name spellings are taken from the
// proper-names rule's configuration so the two rules never disagree about
// a word.
type HeadingCapitalizationRule struct {
	lint.BaseRule

	style       string // "sentence" or "title"
	properNames []string
}

// NewHeadingCapitalizationRule creates a configured heading capitalization
// rule. The proper-name list is read from the MD044 configuration at
// construction time.
func NewHeadingCapitalizationRule(cfg *config.Config) *HeadingCapitalizationRule {
	return &HeadingCapitalizationRule{
		BaseRule: lint.NewBaseRule(
			"MD063",
			"heading-capitalization",
			"Heading text should use consistent capitalization",
			[]string{"headings", "style"},
			lint.Fixable,
		),
		style:       cfg.OptionString("MD063", "style", "sentence"),
		properNames: cfg.OptionStringSlice("MD044", "names", nil),
	}
}

// OptIn marks the rule as excluded from the default active set.
func (r *HeadingCapitalizationRule) OptIn() bool {
	return true
}

// ShouldSkip skips documents with no heading markers at all.
func (r *HeadingCapitalizationRule) ShouldSkip(doc *document.Document) bool {
	return !doc.LikelyHasHeadings()
}

// Check reports each heading word whose spelling deviates from the
// configured style, with a fix that rewrites the word in place.
func (r *HeadingCapitalizationRule) Check(doc *document.Document) []lint.Warning {
	var warnings []lint.Warning

	for _, h := range doc.Headings() {
		line := doc.Lines[h.Line]
		textStart := line.ByteOffset + h.Info.ContentColumn

		words := splitWords(h.Info.Text)
		frozen := r.freezeProperNames(h.Info.Text, words)

		for idx, word := range words {
			start := textStart + word.start
			end := start + len(word.text)

			// Words inside inline code keep their spelling.
			if doc.IsInCodeBlockOrSpan(start) {
				continue
			}

			expected, ok := frozen[word.start]
			if !ok {
				expected, ok = r.expectedSpelling(word.text, idx == 0)
			}
			if !ok || expected == word.text {
				continue
			}
			w := lint.WarningAt(doc, start, end,
				fmt.Sprintf("Heading word %q should be %q", word.text, expected))
			w.Fix = fix.Replace(start, end, expected)
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// Fix rewrites every misspelled heading word.
func (r *HeadingCapitalizationRule) Fix(doc *document.Document) (string, error) {
	return lint.FixViaWarnings(r, doc)
}

// freezeProperNames maps word offsets inside heading text to the canonical
// spelling from the proper-names list. Names are matched case-insensitively
// against runs of consecutive heading words, so a multi-word name like
// "Visual Studio" is frozen as a unit and the style rules never touch it.
func (r *HeadingCapitalizationRule) freezeProperNames(text string, words []headingWord) map[int]string {
	if len(r.properNames) == 0 {
		return nil
	}

	var frozen map[int]string
	for _, name := range r.properNames {
		nameWords := splitWords(name)
		if len(nameWords) == 0 {
			continue
		}
		for i := 0; i+len(nameWords) <= len(words); i++ {
			if !phraseMatches(text, words[i:i+len(nameWords)], nameWords) {
				continue
			}
			if frozen == nil {
				frozen = make(map[int]string)
			}
			for j, nw := range nameWords {
				frozen[words[i+j].start] = nw.text
			}
		}
	}
	return frozen
}

// phraseMatches reports whether a run of heading words spells out a name,
// ignoring case. The run must be contiguous: only whitespace may separate
// consecutive words, so "visual, studio" does not match "Visual Studio".
func phraseMatches(text string, run, nameWords []headingWord) bool {
	for j, nw := range nameWords {
		if !strings.EqualFold(run[j].text, nw.text) {
			return false
		}
		if j > 0 {
			prev := run[j-1]
			gap := text[prev.start+len(prev.text) : run[j].start]
			if strings.TrimSpace(gap) != "" {
				return false
			}
		}
	}
	return true
}

// expectedSpelling returns the styled spelling for a heading word, or
// ok=false when the word should be left alone.
func (r *HeadingCapitalizationRule) expectedSpelling(word string, first bool) (string, bool) {
	switch r.style {
	case "title":
		if !first && titleSmallWords[strings.ToLower(word)] {
			if word == strings.ToLower(word) {
				return word, false
			}
			return strings.ToLower(word), true
		}
		if isPlainLower(word) {
			return upperFirst(word), true
		}
		return "", false
	default: // sentence
		if first {
			if isPlainLower(word) {
				return upperFirst(word), true
			}
			return "", false
		}
		// Only demote simple capitalized words; acronyms and mixed-case
		// words are assumed intentional.
		if isCapitalizedLower(word) {
			return strings.ToLower(word), true
		}
		return "", false
	}
}

type headingWord struct {
	text  string
	start int
}

// splitWords breaks heading text into words with byte offsets. A word is a
// run of letters, digits, apostrophes, or interior dots (for names like
// Node.js).
func splitWords(text string) []headingWord {
	var words []headingWord
	start := -1

	isWordByte := func(i int) bool {
		r, _ := utf8.DecodeRuneInString(text[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return true
		}
		// A dot joins a word only when flanked by word characters.
		if r == '.' && start >= 0 && i+1 < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i+1:])
			return unicode.IsLetter(next) || unicode.IsDigit(next)
		}
		return false
	}

	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		if isWordByte(i) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			words = append(words, headingWord{text: text[start:i], start: start})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		words = append(words, headingWord{text: text[start:], start: start})
	}
	return words
}

// isPlainLower reports whether every letter in the word is lowercase.
func isPlainLower(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// isCapitalizedLower reports whether the word is an uppercase letter
// followed only by lowercase letters ("Word" but not "HTTP" or "JavaScript").
func isCapitalizedLower(word string) bool {
	first, size := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, r := range word[size:] {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// upperFirst uppercases the first rune of a word.
func upperFirst(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + word[size:]
}
