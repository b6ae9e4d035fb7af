package document

import (
	"regexp"
	"strings"
)

var (
	atxHeadingRe    = regexp.MustCompile(`^(\s*)(#{1,6})(\s*)([^#\n]*?)(?:\s+(#{1,6}))?\s*$`)
	setextUnderline = regexp.MustCompile(`^(\s*)(=+|-+)\s*$`)
	listItemRe      = regexp.MustCompile(`^\s*(?:[-*+]|\d{1,9}[.)])\s`)
	customIDRe      = regexp.MustCompile(`\s*\{#([^}\s]+)\}\s*$`)
)

// scanHeadings attaches HeadingInfo to lines that start headings. ATX
// headings are matched per line; Setext headings need a two-line lookahead
// where the underline's indentation equals the heading line's indentation.
func (d *Document) scanHeadings() {
	for i := range d.Lines {
		line := &d.Lines[i]
		if !headingEligible(line) {
			continue
		}

		if info := parseATXHeading(line.Content); info != nil {
			line.Heading = info
			continue
		}

		// Setext: the underline is the next line; list items, blank
		// lines and fences cannot be Setext heading text.
		if i+1 >= len(d.Lines) {
			continue
		}
		next := &d.Lines[i+1]
		if !headingEligible(next) || next.Heading != nil {
			continue
		}
		if info := parseSetextHeading(line, next); info != nil {
			line.Heading = info
		}
	}
}

// headingEligible reports whether a line can carry or underline a heading.
func headingEligible(line *Line) bool {
	return !line.InCodeBlock && !line.InFrontMatter && !line.InHTMLComment &&
		!line.InHTMLBlock && !line.InMDXComment && !line.InObsidianComment &&
		!line.InJSXExpression && !line.InMathBlock
}

// parseATXHeading parses an ATX or ATX-closed heading, returning nil when
// the line is not one.
func parseATXHeading(text string) *HeadingInfo {
	m := atxHeadingRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	indent := m[1]
	if len(indent) > 3 || strings.ContainsRune(indent, '\t') {
		return nil
	}

	marker := m[2]
	gap := m[3]
	content := m[4]
	closing := m[5]

	// "#text" with no separating space is not a heading, but a bare "#"
	// or "# " is an empty one.
	if gap == "" && content != "" {
		return nil
	}

	info := &HeadingInfo{
		Level:           len(marker),
		Style:           HeadingATX,
		MarkerColumn:    len(indent),
		ContentColumn:   len(indent) + len(marker) + len(gap),
		ClosingSequence: closing,
		Text:            strings.TrimSpace(content),
	}
	if closing != "" {
		info.Style = HeadingATXClosed
	}
	if idm := customIDRe.FindStringSubmatch(info.Text); idm != nil {
		info.CustomID = idm[1]
		info.Text = strings.TrimSpace(customIDRe.ReplaceAllString(info.Text, ""))
	}
	return info
}

// parseSetextHeading checks whether line is Setext heading text underlined
// by next, returning nil when it is not.
func parseSetextHeading(line, next *Line) *HeadingInfo {
	if line.Blank || line.VisualIndent > 3 {
		return nil
	}
	text := line.Content
	if listItemRe.MatchString(text) {
		return nil
	}
	// A line that parses as ATX never doubles as Setext text, and a fence
	// line cannot either.
	if _, _, _, isFence := fenceMarker(text); isFence {
		return nil
	}

	m := setextUnderline.FindStringSubmatch(next.Content)
	if m == nil {
		return nil
	}
	if len(m[1]) != leadingSpaces(text) {
		return nil
	}

	style := HeadingSetext1
	level := 1
	if m[2][0] == '-' {
		style = HeadingSetext2
		level = 2
	}

	info := &HeadingInfo{
		Level:         level,
		Style:         style,
		MarkerColumn:  leadingSpaces(text),
		ContentColumn: leadingSpaces(text),
		Text:          strings.TrimSpace(text),
	}
	if idm := customIDRe.FindStringSubmatch(info.Text); idm != nil {
		info.CustomID = idm[1]
		info.Text = strings.TrimSpace(customIDRe.ReplaceAllString(info.Text, ""))
	}
	return info
}

// leadingSpaces counts literal leading space bytes.
func leadingSpaces(text string) int {
	n := 0
	for n < len(text) && text[n] == ' ' {
		n++
	}
	return n
}
