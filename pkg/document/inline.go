package document

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var (
	htmlTagRe  = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9-]*)(?:\s[^<>]*?)?(/?)>`)
	refDefRe   = regexp.MustCompile(`^(\s{0,3})\[([^\]]+)\]:\s*(\S+)`)
	autolinkRe = regexp.MustCompile(`<((?:https?|ftp)://[^<>\s]+|[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})>`)
	wikilinkRe = regexp.MustCompile(`\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)
)

// extractInlines parses the content with goldmark and collects links,
// images and code spans with byte-exact positions. Block positions come
// from node line segments; inline positions come from Text child segments.
func (d *Document) extractInlines() {
	if d.Content == "" {
		return
	}

	source := []byte(d.Content)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			if link := d.linkFromNode(node, source, false); link != nil {
				d.Links = append(d.Links, *link)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			if link := d.linkFromNode(node, source, true); link != nil {
				d.Links = append(d.Links, *link)
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			if s, ok := codeSpanRange(node, source); ok {
				d.codeSpans = append(d.codeSpans, s)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.Slice(d.codeSpans, func(i, j int) bool {
		return d.codeSpans[i].Start < d.codeSpans[j].Start
	})
}

// linkFromNode recovers the source byte range of a link or image node and
// classifies its syntax kind by inspecting the source around the text
// segments. Nodes whose positions cannot be recovered are dropped rather
// than reported with bogus ranges.
func (d *Document) linkFromNode(n ast.Node, source []byte, isImage bool) *Link {
	textStart, textEnd, ok := inlineTextRange(n)
	if !ok {
		return nil
	}

	// Scan back to the opening bracket. The display text may begin with
	// emphasis or code markers, so the bracket is not always adjacent.
	open := textStart - 1
	for open >= 0 && source[open] != '[' && source[open] != '\n' {
		open--
	}
	if open < 0 || source[open] != '[' {
		return nil
	}
	start := open
	if isImage {
		if open == 0 || source[open-1] != '!' {
			return nil
		}
		start = open - 1
	}

	// Scan forward to the closing bracket.
	closeIdx := textEnd
	for closeIdx < len(source) && source[closeIdx] != ']' && source[closeIdx] != '\n' {
		closeIdx++
	}
	if closeIdx >= len(source) || source[closeIdx] != ']' {
		return nil
	}

	kind := LinkShortcut
	end := closeIdx + 1
	if closeIdx+1 < len(source) {
		switch source[closeIdx+1] {
		case '(':
			kind = LinkInline
			depth := 1
			pos := closeIdx + 2
			for pos < len(source) && depth > 0 && source[pos] != '\n' {
				switch source[pos] {
				case '(':
					depth++
				case ')':
					depth--
				}
				pos++
			}
			if depth != 0 {
				return nil
			}
			end = pos
		case '[':
			refEnd := closeIdx + 2
			for refEnd < len(source) && source[refEnd] != ']' && source[refEnd] != '\n' {
				refEnd++
			}
			if refEnd < len(source) && source[refEnd] == ']' {
				if refEnd == closeIdx+2 {
					kind = LinkCollapsed
				} else {
					kind = LinkReference
				}
				end = refEnd + 1
			}
		}
	}

	var destination []byte
	switch node := n.(type) {
	case *ast.Link:
		destination = node.Destination
	case *ast.Image:
		destination = node.Destination
	}

	return &Link{
		ByteOffset:  start,
		ByteEnd:     end,
		TextStart:   open + 1,
		TextEnd:     closeIdx,
		Text:        string(source[open+1 : closeIdx]),
		Destination: string(destination),
		Kind:        kind,
		IsImage:     isImage,
	}
}

// inlineTextRange returns the byte range covered by an inline node's Text
// descendants.
func inlineTextRange(n ast.Node) (int, int, bool) {
	start, end := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, isText := c.(*ast.Text); isText {
			seg := t.Segment
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, end, start >= 0
}

// codeSpanRange returns the full byte range of a code span including its
// backtick delimiters.
func codeSpanRange(n *ast.CodeSpan, source []byte) (span, bool) {
	start, end, ok := inlineTextRange(n)
	if !ok {
		return span{}, false
	}
	for start > 0 && source[start-1] == '`' {
		start--
	}
	for end < len(source) && source[end] == '`' {
		end++
	}
	return span{Start: start, End: end}, true
}

// extractScanned collects the constructs found by direct source scanning:
// HTML tags, reference definitions, bracketed autolinks, and (for the
// Obsidian flavor) wikilinks. Matches inside code are discarded using the
// already-built code ranges.
func (d *Document) extractScanned() {
	d.scanHTMLTags()
	d.scanReferenceDefs()
	d.scanAutolinks()
	if d.Flavor.SupportsWikiLinks() {
		d.scanWikilinks()
	}

	sort.Slice(d.Links, func(i, j int) bool {
		return d.Links[i].ByteOffset < d.Links[j].ByteOffset
	})
}

func (d *Document) scanHTMLTags() {
	if !d.hasAngle {
		return
	}
	for _, m := range htmlTagRe.FindAllStringSubmatchIndex(d.Content, -1) {
		start, end := m[0], m[1]
		if d.IsInCodeBlockOrSpan(start) {
			continue
		}
		tag := d.Content[start:end]
		if strings.HasPrefix(tag, "<!--") {
			continue
		}
		d.HTMLTags = append(d.HTMLTags, HTMLTag{
			ByteOffset:    start,
			ByteEnd:       end,
			Name:          strings.ToLower(d.Content[m[2]:m[3]]),
			IsClosing:     strings.HasPrefix(tag, "</"),
			IsSelfClosing: m[5]-m[4] > 0,
		})
	}
}

func (d *Document) scanReferenceDefs() {
	if !d.hasBracket {
		return
	}
	for i := range d.Lines {
		line := &d.Lines[i]
		if line.InCodeBlock || line.InFrontMatter || line.InHTMLComment {
			continue
		}
		m := refDefRe.FindStringSubmatchIndex(line.Content)
		if m == nil {
			continue
		}
		d.ReferenceDefs = append(d.ReferenceDefs, ReferenceDefinition{
			Label:       line.Content[m[4]:m[5]],
			Destination: line.Content[m[6]:m[7]],
			ByteOffset:  line.ByteOffset + m[0],
			ByteEnd:     line.ByteOffset + m[1],
		})
	}
}

func (d *Document) scanAutolinks() {
	if !d.hasAngle {
		return
	}
	for _, m := range autolinkRe.FindAllStringSubmatchIndex(d.Content, -1) {
		start, end := m[0], m[1]
		if d.IsInCodeBlockOrSpan(start) {
			continue
		}
		url := d.Content[m[2]:m[3]]
		d.Links = append(d.Links, Link{
			ByteOffset:  start,
			ByteEnd:     end,
			TextStart:   m[2],
			TextEnd:     m[3],
			Text:        url,
			Destination: url,
			Kind:        LinkAutolink,
		})
	}
}

func (d *Document) scanWikilinks() {
	if !d.hasBracket {
		return
	}
	for _, m := range wikilinkRe.FindAllStringSubmatchIndex(d.Content, -1) {
		start, end := m[0], m[1]
		if d.IsInCodeBlockOrSpan(start) {
			continue
		}
		target := d.Content[m[2]:m[3]]
		display := target
		textStart, textEnd := m[2], m[3]
		if m[4] >= 0 {
			display = d.Content[m[4]:m[5]]
			textStart, textEnd = m[4], m[5]
		}
		d.Links = append(d.Links, Link{
			ByteOffset:  start,
			ByteEnd:     end,
			TextStart:   textStart,
			TextEnd:     textEnd,
			Text:        display,
			Destination: target,
			Kind:        LinkWiki,
		})
	}
}
