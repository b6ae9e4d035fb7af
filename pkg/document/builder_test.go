package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
)

func TestBuildLines(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		doc := document.New("", config.FlavorStandard)
		assert.Equal(t, 0, doc.LineCount())
	})

	t.Run("lf offsets", func(t *testing.T) {
		doc := document.New("one\ntwo\nthree", config.FlavorStandard)
		require.Equal(t, 3, doc.LineCount())
		assert.Equal(t, 0, doc.Lines[0].ByteOffset)
		assert.Equal(t, 4, doc.Lines[1].ByteOffset)
		assert.Equal(t, 8, doc.Lines[2].ByteOffset)
		assert.Equal(t, "three", doc.Lines[2].Content)
	})

	t.Run("crlf does not desynchronize offsets", func(t *testing.T) {
		doc := document.New("one\r\ntwo\r\n", config.FlavorStandard)
		require.Equal(t, 2, doc.LineCount())
		assert.Equal(t, "one", doc.Lines[0].Content)
		assert.Equal(t, "two", doc.Lines[1].Content)
		assert.Equal(t, 5, doc.Lines[1].ByteOffset)
	})

	t.Run("blank and indent classification", func(t *testing.T) {
		doc := document.New("text\n   \n\tindented", config.FlavorStandard)
		require.Equal(t, 3, doc.LineCount())
		assert.False(t, doc.Lines[0].Blank)
		assert.True(t, doc.Lines[1].Blank)
		assert.Equal(t, 4, doc.Lines[2].VisualIndent)
	})
}

func TestFences(t *testing.T) {
	t.Run("basic fenced block", func(t *testing.T) {
		doc := document.New("```python\nprint(1)\n```", config.FlavorStandard)
		require.Len(t, doc.CodeBlocks, 1)
		cb := doc.CodeBlocks[0]
		assert.Equal(t, 0, cb.StartLine)
		assert.Equal(t, 2, cb.EndLine)
		assert.Equal(t, byte('`'), cb.FenceChar)
		assert.Equal(t, 3, cb.FenceLength)
		assert.Equal(t, "python", cb.Language)
		assert.True(t, doc.Lines[1].InCodeBlock)
	})

	t.Run("tilde fence with longer close", func(t *testing.T) {
		doc := document.New("~~~\ncode\n~~~~\n", config.FlavorStandard)
		require.Len(t, doc.CodeBlocks, 1)
		assert.Equal(t, byte('~'), doc.CodeBlocks[0].FenceChar)
		assert.Equal(t, 2, doc.CodeBlocks[0].EndLine)
	})

	t.Run("mismatched close char keeps block open", func(t *testing.T) {
		doc := document.New("```\ncode\n~~~\nmore\n```\n", config.FlavorStandard)
		require.Len(t, doc.CodeBlocks, 1)
		assert.Equal(t, 4, doc.CodeBlocks[0].EndLine)
	})

	t.Run("unterminated fence runs to end of file", func(t *testing.T) {
		doc := document.New("```\ncode\nmore", config.FlavorStandard)
		require.Len(t, doc.CodeBlocks, 1)
		assert.Equal(t, 2, doc.CodeBlocks[0].EndLine)
		assert.True(t, doc.Lines[2].InCodeBlock)
	})

	t.Run("indented fence is not a block", func(t *testing.T) {
		doc := document.New("    ```\n    x\n    ```\n", config.FlavorStandard)
		assert.Empty(t, doc.CodeBlocks)
	})
}

func TestFrontMatter(t *testing.T) {
	t.Run("yaml front matter", func(t *testing.T) {
		doc := document.New("---\ntitle: x\n---\n# Heading\n", config.FlavorStandard)
		assert.True(t, doc.HasFrontMatter())
		assert.Equal(t, 3, doc.FrontMatterEnd())
		assert.True(t, doc.Lines[1].InFrontMatter)
		assert.False(t, doc.Lines[3].InFrontMatter)
	})

	t.Run("toml front matter", func(t *testing.T) {
		doc := document.New("+++\ntitle = \"x\"\n+++\n", config.FlavorStandard)
		assert.True(t, doc.HasFrontMatter())
	})

	t.Run("unterminated front matter stays open to end of file", func(t *testing.T) {
		doc := document.New("---\ntitle: x\nbody\n", config.FlavorStandard)
		assert.True(t, doc.Lines[2].InFrontMatter)
	})

	t.Run("delimiter after line zero is not front matter", func(t *testing.T) {
		doc := document.New("text\n---\nmore\n", config.FlavorStandard)
		assert.False(t, doc.HasFrontMatter())
	})
}

func TestHeadings(t *testing.T) {
	t.Run("atx levels and text", func(t *testing.T) {
		doc := document.New("# One\n\n### Three\n", config.FlavorStandard)
		headings := doc.Headings()
		require.Len(t, headings, 2)
		assert.Equal(t, 1, headings[0].Info.Level)
		assert.Equal(t, "One", headings[0].Info.Text)
		assert.Equal(t, 3, headings[1].Info.Level)
		assert.Equal(t, 2, headings[1].Line)
		assert.Equal(t, 2, headings[0].Info.ContentColumn)
	})

	t.Run("atx closed", func(t *testing.T) {
		doc := document.New("## Title ##\n", config.FlavorStandard)
		headings := doc.Headings()
		require.Len(t, headings, 1)
		assert.Equal(t, document.HeadingATXClosed, headings[0].Info.Style)
		assert.Equal(t, "##", headings[0].Info.ClosingSequence)
		assert.Equal(t, "Title", headings[0].Info.Text)
	})

	t.Run("custom id attribute", func(t *testing.T) {
		doc := document.New("# Title {#custom-id}\n", config.FlavorStandard)
		headings := doc.Headings()
		require.Len(t, headings, 1)
		assert.Equal(t, "custom-id", headings[0].Info.CustomID)
		assert.Equal(t, "Title", headings[0].Info.Text)
	})

	t.Run("hash without space is not a heading", func(t *testing.T) {
		doc := document.New("#tag\n", config.FlavorStandard)
		assert.Empty(t, doc.Headings())
	})

	t.Run("setext heading", func(t *testing.T) {
		doc := document.New("Title\n=====\n\nSub\n---\n", config.FlavorStandard)
		headings := doc.Headings()
		require.Len(t, headings, 2)
		assert.Equal(t, document.HeadingSetext1, headings[0].Info.Style)
		assert.Equal(t, 1, headings[0].Info.Level)
		assert.Equal(t, document.HeadingSetext2, headings[1].Info.Style)
		assert.Equal(t, 2, headings[1].Info.Level)
	})

	t.Run("setext underline indent must match", func(t *testing.T) {
		doc := document.New("Title\n   ===\n", config.FlavorStandard)
		assert.Empty(t, doc.Headings())
	})

	t.Run("list item is not setext text", func(t *testing.T) {
		doc := document.New("- item\n---\n", config.FlavorStandard)
		assert.Empty(t, doc.Headings())
	})

	t.Run("heading inside code block is ignored", func(t *testing.T) {
		doc := document.New("```\n# not a heading\n```\n", config.FlavorStandard)
		assert.Empty(t, doc.Headings())
	})
}

func TestHTMLZones(t *testing.T) {
	t.Run("multi line comment", func(t *testing.T) {
		doc := document.New("text\n<!-- start\nmiddle\nend -->\nafter\n", config.FlavorStandard)
		assert.False(t, doc.Lines[0].InHTMLComment)
		assert.True(t, doc.Lines[1].InHTMLComment)
		assert.True(t, doc.Lines[2].InHTMLComment)
		assert.True(t, doc.Lines[3].InHTMLComment)
		assert.False(t, doc.Lines[4].InHTMLComment)
	})

	t.Run("html block until blank line", func(t *testing.T) {
		doc := document.New("<div>\ncontent\n</div>\n\ntext\n", config.FlavorStandard)
		assert.True(t, doc.Lines[0].InHTMLBlock)
		assert.True(t, doc.Lines[2].InHTMLBlock)
		assert.False(t, doc.Lines[4].InHTMLBlock)
	})
}

func TestLinkExtraction(t *testing.T) {
	t.Run("inline link", func(t *testing.T) {
		content := "see [docs](https://example.com) here\n"
		doc := document.New(content, config.FlavorStandard)
		require.Len(t, doc.Links, 1)
		link := doc.Links[0]
		assert.Equal(t, document.LinkInline, link.Kind)
		assert.Equal(t, "docs", link.Text)
		assert.Equal(t, "https://example.com", link.Destination)
		assert.Equal(t, "[docs](https://example.com)", content[link.ByteOffset:link.ByteEnd])
	})

	t.Run("image", func(t *testing.T) {
		content := "![alt text](img.png)\n"
		doc := document.New(content, config.FlavorStandard)
		require.Len(t, doc.Links, 1)
		assert.True(t, doc.Links[0].IsImage)
		assert.Equal(t, "alt text", doc.Links[0].Text)
		assert.Equal(t, 0, doc.Links[0].ByteOffset)
	})

	t.Run("reference link kinds", func(t *testing.T) {
		content := "[full][ref] and [collapsed][]\n\n[ref]: https://a.example\n[collapsed]: https://b.example\n"
		doc := document.New(content, config.FlavorStandard)
		require.Len(t, doc.Links, 2)
		assert.Equal(t, document.LinkReference, doc.Links[0].Kind)
		assert.Equal(t, document.LinkCollapsed, doc.Links[1].Kind)
		require.Len(t, doc.ReferenceDefs, 2)
		assert.Equal(t, "ref", doc.ReferenceDefs[0].Label)
		assert.Equal(t, "https://a.example", doc.ReferenceDefs[0].Destination)
	})

	t.Run("autolink", func(t *testing.T) {
		content := "visit <https://example.com> now\n"
		doc := document.New(content, config.FlavorStandard)
		require.Len(t, doc.Links, 1)
		assert.Equal(t, document.LinkAutolink, doc.Links[0].Kind)
		assert.Equal(t, "https://example.com", doc.Links[0].Destination)
	})

	t.Run("link inside code span is ignored by scans", func(t *testing.T) {
		content := "`<https://example.com>` is literal\n"
		doc := document.New(content, config.FlavorStandard)
		assert.Empty(t, doc.Links)
	})

	t.Run("links sorted by offset", func(t *testing.T) {
		content := "[a](x) then <https://b.example> then [c](y)\n"
		doc := document.New(content, config.FlavorStandard)
		require.Len(t, doc.Links, 3)
		for i := 1; i < len(doc.Links); i++ {
			assert.Less(t, doc.Links[i-1].ByteOffset, doc.Links[i].ByteOffset)
		}
	})
}

func TestHTMLTagExtraction(t *testing.T) {
	content := "text <br/> and <span class=\"x\">y</span>\n"
	doc := document.New(content, config.FlavorStandard)
	require.Len(t, doc.HTMLTags, 3)
	assert.Equal(t, "br", doc.HTMLTags[0].Name)
	assert.True(t, doc.HTMLTags[0].IsSelfClosing)
	assert.Equal(t, "span", doc.HTMLTags[1].Name)
	assert.False(t, doc.HTMLTags[1].IsClosing)
	assert.True(t, doc.HTMLTags[2].IsClosing)
}

func TestPrefilters(t *testing.T) {
	doc := document.New("plain text only\n", config.FlavorStandard)
	assert.False(t, doc.LikelyHasHeadings())
	assert.False(t, doc.LikelyHasLinksOrImages())
	assert.False(t, doc.LikelyHasEmphasis())
	assert.False(t, doc.LikelyHasCode())

	doc = document.New("# h\n[l](x) *em* `c`\n", config.FlavorStandard)
	assert.True(t, doc.LikelyHasHeadings())
	assert.True(t, doc.LikelyHasLinksOrImages())
	assert.True(t, doc.LikelyHasEmphasis())
	assert.True(t, doc.LikelyHasCode())
}
