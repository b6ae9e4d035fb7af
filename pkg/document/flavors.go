package document

import (
	"regexp"
	"strings"
)

// containerIndentStep is the indentation added by one MkDocs container
// level.
const containerIndentStep = 4

var (
	admonitionMarkerRe = regexp.MustCompile(`^(\s*)(!!!|\?\?\?\+?)\s`)
	contentTabMarkerRe = regexp.MustCompile(`^(\s*)===\s+"`)
	esmBlockRe         = regexp.MustCompile(`^(import|export)\s`)
	jsxOpenRe          = regexp.MustCompile(`^<([A-Z][A-Za-z0-9]*|>)`)
	kramdownOpenRe     = regexp.MustCompile(`^\{::(\w+)\}`)
	kramdownCloseRe    = regexp.MustCompile(`^\{:/(\w*)\}`)
)

type containerKind int

const (
	containerAdmonition containerKind = iota
	containerTab
)

type containerFrame struct {
	kind   containerKind
	indent int
}

// scanMkDocsContainers classifies admonition and content-tab containers.
// Container nesting is tracked as a stack of indent thresholds: before
// testing a non-blank line for new markers, every frame whose threshold
// plus one indent step exceeds the line's indent is popped, so consecutive
// same-level containers never inherit a stale context. While any frame is
// on the stack a secondary fence scan runs at container indentation,
// because the primary scan only sees fences indented three columns or
// less.
func (d *Document) scanMkDocsContainers() {
	var stack []containerFrame
	var fence *CodeBlock

	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter || line.InCodeBlock {
			continue
		}

		if line.Blank {
			// Blank lines neither pop nor push; interior blanks keep
			// their containing zone.
			if fence != nil {
				line.InCodeBlock = true
			}
			markContainerZones(line, stack)
			continue
		}

		if fence != nil {
			line.InCodeBlock = true
			char, length, _, ok := nestedFenceMarker(line.Content)
			if ok && char == fence.FenceChar && length >= fence.FenceLength &&
				strings.TrimSpace(line.Content) == strings.Repeat(string(char), length) {
				fence.EndLine = i
				fence.ByteEnd = line.ByteEnd
				d.CodeBlocks = append(d.CodeBlocks, *fence)
				fence = nil
			}
			markContainerZones(line, stack)
			continue
		}

		// Pop stale frames before testing for new markers.
		for len(stack) > 0 && stack[len(stack)-1].indent+containerIndentStep > line.VisualIndent {
			stack = stack[:len(stack)-1]
		}

		if m := admonitionMarkerRe.FindStringSubmatch(line.Content); m != nil {
			stack = append(stack, containerFrame{kind: containerAdmonition, indent: len(m[1])})
			markContainerZones(line, stack)
			continue
		}
		if m := contentTabMarkerRe.FindStringSubmatch(line.Content); m != nil {
			stack = append(stack, containerFrame{kind: containerTab, indent: len(m[1])})
			markContainerZones(line, stack)
			continue
		}

		markContainerZones(line, stack)

		// Secondary fence scan, anchored to container indentation.
		if len(stack) > 0 {
			char, length, indent, ok := nestedFenceMarker(line.Content)
			if ok && indent >= stack[len(stack)-1].indent+containerIndentStep {
				line.InCodeBlock = true
				fence = &CodeBlock{
					StartLine:   i,
					EndLine:     len(d.Lines) - 1,
					FenceChar:   char,
					FenceLength: length,
					Language:    fenceLanguage(strings.TrimLeft(line.Content, " \t"), char),
					Indent:      indent,
					ByteOffset:  line.ByteOffset,
					ByteEnd:     lastByteEnd(d.Lines),
				}
			}
		}
	}

	if fence != nil {
		d.CodeBlocks = append(d.CodeBlocks, *fence)
	}
}

// nestedFenceMarker parses a fence line at any indentation, unlike the
// primary scan which caps indent at three columns.
func nestedFenceMarker(line string) (char byte, length int, indent int, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return 0, 0, 0, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0, 0, false
	}
	for length < len(trimmed) && trimmed[length] == c {
		length++
	}
	if length < 3 {
		return 0, 0, 0, false
	}
	if c == '`' && strings.IndexByte(trimmed[length:], '`') >= 0 {
		return 0, 0, 0, false
	}
	return c, length, visualIndent(line), true
}

func markContainerZones(line *Line, stack []containerFrame) {
	for _, frame := range stack {
		switch frame.kind {
		case containerAdmonition:
			line.InAdmonition = true
		case containerTab:
			line.InContentTab = true
		}
	}
}

// scanMDX classifies ESM import/export blocks, JSX expression blocks and
// {/* */} comments. ESM and JSX blocks start at column zero and run to the
// next blank line; an unclosed comment runs to end of file.
func (d *Document) scanMDX() {
	inComment := false
	inESM := false
	inJSX := false

	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter || line.InCodeBlock {
			inESM = false
			inJSX = false
			continue
		}

		text := line.Content
		if inComment {
			line.InMDXComment = true
			if idx := strings.Index(text, "*/}"); idx >= 0 {
				inComment = false
			}
			continue
		}

		if line.Blank {
			inESM = false
			inJSX = false
			continue
		}

		if inESM {
			line.InJSXExpression = true
			continue
		}
		if inJSX {
			line.InJSXExpression = true
			continue
		}

		if open := strings.Index(text, "{/*"); open >= 0 {
			line.InMDXComment = true
			if !strings.Contains(text[open:], "*/}") {
				inComment = true
			}
			continue
		}

		if line.VisualIndent == 0 && esmBlockRe.MatchString(text) {
			line.InJSXExpression = true
			inESM = true
			continue
		}
		if line.VisualIndent == 0 && jsxOpenRe.MatchString(text) {
			line.InJSXExpression = true
			inJSX = true
		}
	}
}

// scanObsidianComments classifies %% comment %% ranges. The %% token
// toggles comment state; an unclosed comment runs to end of file. Tokens
// inside code blocks are ignored.
func (d *Document) scanObsidianComments() {
	inComment := false
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter {
			continue
		}
		if line.InCodeBlock {
			if inComment {
				line.InObsidianComment = true
			}
			continue
		}

		text := line.Content
		touched := inComment
		pos := 0
		for {
			idx := strings.Index(text[pos:], "%%")
			if idx < 0 {
				break
			}
			touched = true
			inComment = !inComment
			pos += idx + 2
		}
		if touched {
			line.InObsidianComment = true
		}
	}
}

// scanKramdownBlocks classifies {::name} ... {:/name} extension blocks.
// The closing tag may omit the name. An unclosed block runs to end of
// file.
func (d *Document) scanKramdownBlocks() {
	depth := 0
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter || line.InCodeBlock {
			continue
		}

		text := strings.TrimSpace(line.Content)
		if depth > 0 {
			line.InKramdownBlock = true
			if kramdownCloseRe.MatchString(text) {
				depth--
			}
			continue
		}
		if m := kramdownOpenRe.FindStringSubmatch(text); m != nil {
			line.InKramdownBlock = true
			// Single-line form: {::comment}text{:/comment}
			if !strings.Contains(text[len(m[0]):], "{:/") {
				depth++
			}
		}
	}
}

// scanMathBlocks classifies $$ display math blocks.
func (d *Document) scanMathBlocks() {
	inMath := false
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InFrontMatter || line.InCodeBlock {
			continue
		}

		text := strings.TrimSpace(line.Content)
		if inMath {
			line.InMathBlock = true
			if strings.HasPrefix(text, "$$") {
				inMath = false
			}
			continue
		}
		if text == "$$" || (strings.HasPrefix(text, "$$") && !strings.HasSuffix(text, "$$")) {
			line.InMathBlock = true
			inMath = true
		}
	}
}
