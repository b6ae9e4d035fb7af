package document

import (
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
)

// New builds a Document from raw content and a flavor.
// The builder never fails: malformed constructs degrade to plain text.
func New(content string, flavor config.Flavor) *Document {
	doc := &Document{
		Content: content,
		Flavor:  flavor,
	}

	doc.scanCharClasses()
	doc.buildLines()
	doc.markFrontMatter()
	doc.scanFences()
	doc.scanHTMLComments()
	doc.scanHTMLBlocks()

	switch flavor {
	case config.FlavorMkDocs:
		doc.scanMkDocsContainers()
	case config.FlavorMDX:
		doc.scanMDX()
	case config.FlavorObsidian:
		doc.scanObsidianComments()
	case config.FlavorKramdown:
		doc.scanKramdownBlocks()
	case config.FlavorQuarto:
		doc.scanMathBlocks()
	}

	doc.scanHeadings()
	doc.extractInlines()
	doc.buildCodeRanges()
	doc.extractScanned()

	return doc
}

// scanCharClasses records which marker characters occur anywhere in the
// content. Rules use these as cheap prefilters before regex work.
func (d *Document) scanCharClasses() {
	for i := 0; i < len(d.Content); i++ {
		switch d.Content[i] {
		case '#':
			d.hasHash = true
		case '[':
			d.hasBracket = true
		case '*', '_':
			d.hasEmphasis = true
		case '<':
			d.hasAngle = true
		case '`':
			d.hasBacktick = true
		case '~':
			d.hasTilde = true
		case '=', '-':
			d.hasSetext = true
		}
	}
}

// buildLines splits the content into lines with byte offsets computed from
// scan position, never by re-searching substrings. Handles LF and CRLF.
func (d *Document) buildLines() {
	if d.Content == "" {
		return
	}

	lineStart := 0
	for i := 0; i < len(d.Content); i++ {
		if d.Content[i] != '\n' {
			continue
		}
		contentEnd := i
		if i > 0 && d.Content[i-1] == '\r' {
			contentEnd = i - 1
		}
		d.appendLine(lineStart, contentEnd)
		lineStart = i + 1
	}

	// Last line without a trailing newline.
	if lineStart < len(d.Content) {
		d.appendLine(lineStart, len(d.Content))
	}
}

func (d *Document) appendLine(start, end int) {
	text := d.Content[start:end]
	d.Lines = append(d.Lines, Line{
		Content:      text,
		ByteOffset:   start,
		ByteEnd:      end,
		Blank:        strings.TrimSpace(text) == "",
		VisualIndent: visualIndent(text),
	})
}

// visualIndent measures leading indentation in columns with tabs as 4.
func visualIndent(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}

// markFrontMatter classifies an opening front matter block. Front matter is
// only recognized when line 0 is exactly "---" or "+++"; an unterminated
// block stays open through end of file.
func (d *Document) markFrontMatter() {
	if len(d.Lines) == 0 {
		return
	}

	delim := strings.TrimRight(d.Lines[0].Content, " \t")
	if delim != "---" && delim != "+++" {
		return
	}

	d.Lines[0].InFrontMatter = true
	end := len(d.Lines)
	for i := 1; i < len(d.Lines); i++ {
		d.Lines[i].InFrontMatter = true
		if strings.TrimRight(d.Lines[i].Content, " \t") == delim {
			end = i + 1
			break
		}
	}
	d.frontMatterEnd = end

	// Every line was consumed by an unterminated block.
	if end == len(d.Lines) {
		for i := range d.Lines {
			d.Lines[i].InFrontMatter = true
		}
	}
}

// fenceMarker parses a fence line and returns its char, run length and
// indent. ok is false when the line is not a fence.
func fenceMarker(line string) (char byte, length int, indent int, ok bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 || i >= len(line) {
		return 0, 0, 0, false
	}
	c := line[i]
	if c != '`' && c != '~' {
		return 0, 0, 0, false
	}
	indent = i
	for i < len(line) && line[i] == c {
		length++
		i++
	}
	if length < 3 {
		return 0, 0, 0, false
	}
	// A backtick fence may not contain backticks in its info string.
	if c == '`' && strings.IndexByte(line[i:], '`') >= 0 {
		return 0, 0, 0, false
	}
	return c, length, indent, true
}

// fenceLanguage extracts the first word of a fence line's info string.
func fenceLanguage(line string, char byte) string {
	info := strings.TrimLeft(line, " ")
	info = strings.TrimLeft(info, string(char))
	info = strings.TrimSpace(info)
	if info == "" {
		return ""
	}
	if idx := strings.IndexAny(info, " \t"); idx >= 0 {
		info = info[:idx]
	}
	return info
}

// scanFences runs the primary fence state machine over every line outside
// front matter. A fence opens on a run of three or more backticks or tildes
// and closes on a same-char run at least as long with nothing else on the
// line. An unterminated fence stays open through end of file.
func (d *Document) scanFences() {
	var open *CodeBlock

	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter {
			continue
		}

		if open != nil {
			line.InCodeBlock = true
			char, length, _, ok := fenceMarker(line.Content)
			closes := ok && char == open.FenceChar && length >= open.FenceLength &&
				strings.TrimSpace(line.Content) == strings.Repeat(string(char), length)
			if closes {
				open.EndLine = i
				open.ByteEnd = line.ByteEnd
				d.CodeBlocks = append(d.CodeBlocks, *open)
				open = nil
			}
			continue
		}

		char, length, indent, ok := fenceMarker(line.Content)
		if !ok {
			continue
		}
		line.InCodeBlock = true
		open = &CodeBlock{
			StartLine:   i,
			EndLine:     len(d.Lines) - 1,
			FenceChar:   char,
			FenceLength: length,
			Language:    fenceLanguage(line.Content, char),
			Indent:      indent,
			ByteOffset:  line.ByteOffset,
			ByteEnd:     lastByteEnd(d.Lines),
		}
	}

	if open != nil {
		d.CodeBlocks = append(d.CodeBlocks, *open)
	}
}

func lastByteEnd(lines []Line) int {
	if len(lines) == 0 {
		return 0
	}
	return lines[len(lines)-1].ByteEnd
}

// scanHTMLComments marks lines inside <!-- --> comments, including
// multi-line ones. Comments opened inside code blocks are ignored; an
// unclosed comment runs to end of file.
func (d *Document) scanHTMLComments() {
	inComment := false
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter {
			continue
		}

		text := line.Content
		pos := 0
		touched := inComment
		for pos < len(text) {
			if !inComment {
				if line.InCodeBlock {
					break
				}
				idx := strings.Index(text[pos:], "<!--")
				if idx < 0 {
					break
				}
				inComment = true
				touched = true
				pos += idx + 4
			} else {
				idx := strings.Index(text[pos:], "-->")
				if idx < 0 {
					break
				}
				inComment = false
				pos += idx + 3
			}
		}
		if touched {
			line.InHTMLComment = true
		}
	}
}

// scanHTMLBlocks marks lines inside block-level HTML. A block opens on a
// line whose first construct is an HTML tag at indent three or less and
// closes at the next blank line.
func (d *Document) scanHTMLBlocks() {
	inBlock := false
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter || line.InCodeBlock || line.InHTMLComment {
			inBlock = false
			continue
		}
		if inBlock {
			if line.Blank {
				inBlock = false
				continue
			}
			line.InHTMLBlock = true
			continue
		}
		if line.VisualIndent <= 3 && startsHTMLBlock(strings.TrimLeft(line.Content, " ")) {
			line.InHTMLBlock = true
			inBlock = true
		}
	}
}

// startsHTMLBlock reports whether a trimmed line opens an HTML block.
// Comment openers are excluded; they are classified separately.
func startsHTMLBlock(text string) bool {
	if len(text) < 2 || text[0] != '<' {
		return false
	}
	if strings.HasPrefix(text, "<!--") {
		return false
	}
	rest := text[1:]
	if rest[0] == '/' {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	c := rest[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// buildCodeRanges merges code block byte ranges with inline code span
// ranges into one sorted non-overlapping list for the interval queries.
// Code spans inside code blocks never occur, so a simple merge sort of the
// two already-sorted lists suffices.
func (d *Document) buildCodeRanges() {
	ranges := make([]span, 0, len(d.CodeBlocks)+len(d.codeSpans))
	for _, cb := range d.CodeBlocks {
		ranges = append(ranges, span{Start: cb.ByteOffset, End: cb.ByteEnd})
	}
	ranges = append(ranges, d.codeSpans...)

	// Both sources are in document order; a single insertion pass keeps
	// the merged list sorted.
	for i := 1; i < len(ranges); i++ {
		for j := i; j > 0 && ranges[j].Start < ranges[j-1].Start; j-- {
			ranges[j], ranges[j-1] = ranges[j-1], ranges[j]
		}
	}
	d.codeRanges = ranges
}
