package document

import "sort"

// The interval queries below are all binary searches over offset-sorted
// slices. A single document can be queried per-match thousands of times
// across dozens of rules, so linear scans are off the table.

// LinkPart identifies which portion of a link a byte position falls in.
type LinkPart int

const (
	LinkPartNone LinkPart = iota
	LinkPartText
	LinkPartDestination
)

// IsInCodeBlockOrSpan reports whether a byte position falls inside a code
// block or inline code span.
func (d *Document) IsInCodeBlockOrSpan(pos int) bool {
	return spanContaining(d.codeRanges, pos) >= 0
}

// IsInHTMLTag reports whether a byte position falls inside an HTML tag.
func (d *Document) IsInHTMLTag(pos int) bool {
	idx := sort.Search(len(d.HTMLTags), func(i int) bool {
		return d.HTMLTags[i].ByteEnd > pos
	})
	return idx < len(d.HTMLTags) && d.HTMLTags[idx].ByteOffset <= pos
}

// IsInReferenceDef reports whether a byte position falls inside a link
// reference definition.
func (d *Document) IsInReferenceDef(pos int) bool {
	idx := sort.Search(len(d.ReferenceDefs), func(i int) bool {
		return d.ReferenceDefs[i].ByteEnd > pos
	})
	return idx < len(d.ReferenceDefs) && d.ReferenceDefs[idx].ByteOffset <= pos
}

// LinkAt returns the link containing a byte position and which part of it
// the position falls in. Display text is checkable prose; the destination
// or reference portion is not.
func (d *Document) LinkAt(pos int) (*Link, LinkPart) {
	idx := sort.Search(len(d.Links), func(i int) bool {
		return d.Links[i].ByteEnd > pos
	})
	if idx >= len(d.Links) || d.Links[idx].ByteOffset > pos {
		return nil, LinkPartNone
	}
	link := &d.Links[idx]
	if pos >= link.TextStart && pos < link.TextEnd {
		return link, LinkPartText
	}
	return link, LinkPartDestination
}

// IsInLink reports whether a byte position falls inside any link.
func (d *Document) IsInLink(pos int) bool {
	link, _ := d.LinkAt(pos)
	return link != nil
}

// IsInLinkText reports whether a byte position falls in a link's display
// text.
func (d *Document) IsInLinkText(pos int) bool {
	_, part := d.LinkAt(pos)
	return part == LinkPartText
}

// IsInLinkDestination reports whether a byte position falls in a link's
// destination or reference portion.
func (d *Document) IsInLinkDestination(pos int) bool {
	_, part := d.LinkAt(pos)
	return part == LinkPartDestination
}

// LineForOffset returns the 0-based index of the line containing a byte
// offset, or -1 when out of range.
func (d *Document) LineForOffset(pos int) int {
	if pos < 0 || pos > len(d.Content) || len(d.Lines) == 0 {
		return -1
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].ByteOffset > pos
	})
	return idx - 1
}

// PositionForOffset converts a byte offset to 1-based line and column
// numbers. Column counts bytes. Returns (0, 0) when out of range.
func (d *Document) PositionForOffset(pos int) (int, int) {
	idx := d.LineForOffset(pos)
	if idx < 0 {
		return 0, 0
	}
	return idx + 1, pos - d.Lines[idx].ByteOffset + 1
}

// spanContaining returns the index of the span containing pos, or -1.
func spanContaining(spans []span, pos int) int {
	idx := sort.Search(len(spans), func(i int) bool {
		return spans[i].End > pos
	})
	if idx < len(spans) && spans[idx].Start <= pos {
		return idx
	}
	return -1
}
