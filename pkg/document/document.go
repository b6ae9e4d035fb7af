// Package document builds the analysis model that lint rules run against.
// A Document is an immutable snapshot of one file: its raw content, derived
// per-line zone classification, and the structural elements (headings, links,
// HTML tags, reference definitions, code blocks) extracted from it. Rules
// only read the Document; it is discarded after the pass.
package document

import (
	"github.com/yaklabco/marklint/pkg/config"
)

// HeadingStyle identifies how a heading is written in the source.
type HeadingStyle int

const (
	HeadingATX HeadingStyle = iota
	HeadingATXClosed
	HeadingSetext1
	HeadingSetext2
)

// String returns a human-readable name for the heading style.
func (s HeadingStyle) String() string {
	switch s {
	case HeadingATXClosed:
		return "atx_closed"
	case HeadingSetext1:
		return "setext_h1"
	case HeadingSetext2:
		return "setext_h2"
	default:
		return "atx"
	}
}

// HeadingInfo describes a heading found on a line.
type HeadingInfo struct {
	// Level is the heading level, 1 through 6.
	Level int

	// Text is the heading content with markers stripped.
	Text string

	// Style records how the heading is written.
	Style HeadingStyle

	// MarkerColumn is the 0-based column of the first marker character.
	MarkerColumn int

	// ContentColumn is the 0-based column where the heading text starts.
	ContentColumn int

	// ClosingSequence holds the trailing hashes of an ATX-closed heading,
	// empty otherwise.
	ClosingSequence string

	// CustomID holds the id from a trailing {#id} attribute, if present.
	CustomID string
}

// Line is one source line plus its zone classification.
// All zone flags are computed once by the builder and never mutated.
type Line struct {
	// Content is the line text without its newline.
	Content string

	// ByteOffset is the offset of the line's first byte in the document.
	ByteOffset int

	// ByteEnd is the offset just past the line content, before the newline.
	ByteEnd int

	// Blank reports whether the line is empty or whitespace-only.
	Blank bool

	// VisualIndent is the leading indentation in columns, tabs counted as 4.
	VisualIndent int

	// Zone flags.
	InCodeBlock       bool
	InFrontMatter     bool
	InHTMLBlock       bool
	InHTMLComment     bool
	InJSXExpression   bool
	InMDXComment      bool
	InObsidianComment bool
	InAdmonition      bool
	InContentTab      bool
	InMathBlock       bool
	InKramdownBlock   bool

	// Heading is set when the line starts a heading.
	Heading *HeadingInfo
}

// LinkKind classifies how a link is written in the source.
type LinkKind int

const (
	LinkInline LinkKind = iota
	LinkReference
	LinkCollapsed
	LinkShortcut
	LinkAutolink
	LinkWiki
)

// String returns a human-readable name for the link kind.
func (k LinkKind) String() string {
	switch k {
	case LinkReference:
		return "reference"
	case LinkCollapsed:
		return "collapsed"
	case LinkShortcut:
		return "shortcut"
	case LinkAutolink:
		return "autolink"
	case LinkWiki:
		return "wikilink"
	default:
		return "inline"
	}
}

// Link is a link or image occurrence with byte-exact positions.
type Link struct {
	// ByteOffset and ByteEnd delimit the whole construct, including
	// brackets and destination.
	ByteOffset int
	ByteEnd    int

	// TextStart and TextEnd delimit the display text between the brackets.
	// For autolinks they cover the URL itself.
	TextStart int
	TextEnd   int

	// Text is the display text.
	Text string

	// Destination is the URL or reference label the link resolves through.
	Destination string

	// Kind records the source syntax.
	Kind LinkKind

	// IsImage reports whether the construct is an image.
	IsImage bool
}

// HTMLTag is an inline or block HTML tag occurrence.
type HTMLTag struct {
	ByteOffset    int
	ByteEnd       int
	Name          string
	IsClosing     bool
	IsSelfClosing bool
}

// ReferenceDefinition is a link reference definition line.
type ReferenceDefinition struct {
	Label       string
	Destination string
	ByteOffset  int
	ByteEnd     int
}

// CodeBlock describes one fenced or indented code block.
type CodeBlock struct {
	// StartLine and EndLine are 0-based line indexes. StartLine is the
	// opening fence line; EndLine is the closing fence line, or the last
	// line of the file for an unterminated block.
	StartLine int
	EndLine   int

	// FenceChar is '`' or '~'; zero for indented blocks.
	FenceChar byte

	// FenceLength is the opening fence run length; zero for indented blocks.
	FenceLength int

	// Language is the first word of the info string, empty if none.
	Language string

	// Indent is the opening fence's indentation in columns.
	Indent int

	// ByteOffset and ByteEnd delimit the whole block including fences.
	ByteOffset int
	ByteEnd    int
}

// span is a half-open byte range [Start, End).
type span struct {
	Start int
	End   int
}

// Document is the immutable analysis context for one file.
type Document struct {
	// Content is the raw file text.
	Content string

	// Flavor is the dialect the builder ran with.
	Flavor config.Flavor

	// Lines holds per-line classification, 0-based.
	Lines []Line

	// CodeBlocks lists code blocks in source order.
	CodeBlocks []CodeBlock

	// Links lists links and images sorted by start offset.
	Links []Link

	// HTMLTags lists HTML tags sorted by start offset.
	HTMLTags []HTMLTag

	// ReferenceDefs lists reference definitions sorted by start offset.
	ReferenceDefs []ReferenceDefinition

	// codeRanges merges code block and code span byte ranges, sorted and
	// non-overlapping, for the interval queries.
	codeRanges []span

	// codeSpans holds inline code span byte ranges in document order,
	// collected during inline extraction.
	codeSpans []span

	// frontMatterEnd is the 0-based index one past the last front matter
	// line, or 0 when there is no front matter.
	frontMatterEnd int

	// Cheap content prefilters, usable by rules as should-skip fast paths.
	hasHash     bool
	hasBracket  bool
	hasEmphasis bool
	hasAngle    bool
	hasBacktick bool
	hasTilde    bool
	hasSetext   bool
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineContent returns the content of a 0-based line index, or "" if out of
// range.
func (d *Document) LineContent(idx int) string {
	if idx < 0 || idx >= len(d.Lines) {
		return ""
	}
	return d.Lines[idx].Content
}

// HasFrontMatter reports whether the document opens with a front matter
// block.
func (d *Document) HasFrontMatter() bool {
	return d.frontMatterEnd > 0
}

// FrontMatterEnd returns the 0-based index one past the last front matter
// line, or 0 when there is no front matter.
func (d *Document) FrontMatterEnd() int {
	return d.frontMatterEnd
}

// Headings returns the heading infos in source order paired with their
// 0-based line indexes.
func (d *Document) Headings() []HeadingLine {
	var out []HeadingLine
	for i := range d.Lines {
		if d.Lines[i].Heading != nil {
			out = append(out, HeadingLine{Line: i, Info: d.Lines[i].Heading})
		}
	}
	return out
}

// HeadingLine pairs a heading with the line it starts on.
type HeadingLine struct {
	Line int
	Info *HeadingInfo
}

// LikelyHasHeadings reports whether the content can possibly contain a
// heading. False guarantees no headings; true proves nothing.
func (d *Document) LikelyHasHeadings() bool {
	return d.hasHash || d.hasSetext
}

// LikelyHasLinksOrImages reports whether the content can possibly contain a
// link or image.
func (d *Document) LikelyHasLinksOrImages() bool {
	return d.hasBracket || d.hasAngle
}

// LikelyHasEmphasis reports whether the content can possibly contain
// emphasis markers.
func (d *Document) LikelyHasEmphasis() bool {
	return d.hasEmphasis
}

// LikelyHasHTML reports whether the content can possibly contain HTML.
func (d *Document) LikelyHasHTML() bool {
	return d.hasAngle
}

// LikelyHasCode reports whether the content can possibly contain a code
// fence or span.
func (d *Document) LikelyHasCode() bool {
	return d.hasBacktick || d.hasTilde
}
