package lint

import (
	"sort"

	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/fix"
)

// WarningAt builds a Warning spanning a byte range of the document, with
// 1-based line and column positions derived from the range.
func WarningAt(doc *document.Document, start, end int, message string) Warning {
	startLine, startCol := doc.PositionForOffset(start)
	endLine, endCol := doc.PositionForOffset(end)
	return Warning{
		Message:     message,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// WarningOnLine builds a Warning covering one whole 0-based line.
func WarningOnLine(doc *document.Document, lineIdx int, message string) Warning {
	line := doc.Lines[lineIdx]
	return Warning{
		Message:     message,
		StartLine:   lineIdx + 1,
		StartColumn: 1,
		EndLine:     lineIdx + 1,
		EndColumn:   len(line.Content) + 1,
	}
}

// FixViaWarnings implements Fix for rules whose warnings each carry their
// own edit: it collects the edits from Check, drops conflicting ones, and
// applies the rest. Overlaps left unapplied resolve on a later pass of the
// fix pipeline.
func FixViaWarnings(r Rule, doc *document.Document) (string, error) {
	warnings := r.Check(doc)
	edits := make([]fix.TextEdit, 0, len(warnings))
	for i := range warnings {
		if warnings[i].Fix != nil {
			edits = append(edits, *warnings[i].Fix)
		}
	}
	if len(edits) == 0 {
		return doc.Content, nil
	}

	content := []byte(doc.Content)
	accepted, _, _, err := fix.PrepareEditsFiltered(edits, content)
	if err != nil {
		return "", err
	}
	return string(fix.ApplyEdits(content, accepted)), nil
}

// SortWarnings orders warnings by start position, then rule ID.
func SortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].StartLine != warnings[j].StartLine {
			return warnings[i].StartLine < warnings[j].StartLine
		}
		if warnings[i].StartColumn != warnings[j].StartColumn {
			return warnings[i].StartColumn < warnings[j].StartColumn
		}
		return warnings[i].RuleID < warnings[j].RuleID
	})
}

// TrailingWhitespaceRange returns the byte range of trailing spaces and
// tabs on a 0-based line, or (-1, -1) when there are none.
func TrailingWhitespaceRange(doc *document.Document, lineIdx int) (int, int) {
	if lineIdx < 0 || lineIdx >= len(doc.Lines) {
		return -1, -1
	}
	line := doc.Lines[lineIdx]
	content := line.Content
	end := len(content)
	start := end
	for start > 0 && (content[start-1] == ' ' || content[start-1] == '\t') {
		start--
	}
	if start == end {
		return -1, -1
	}
	return line.ByteOffset + start, line.ByteOffset + end
}
