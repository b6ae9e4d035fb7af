package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
)

func TestHeadingIncrementRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
	}{
		{
			name:      "proper increments",
			input:     "# One\n## Two\n### Three\n",
			wantWarns: 0,
		},
		{
			name:      "level jump",
			input:     "# One\n### Three\n",
			wantWarns: 1,
		},
		{
			name:      "first heading can be any level",
			input:     "### Deep start\n",
			wantWarns: 0,
		},
		{
			name:      "decrement is fine",
			input:     "# One\n## Two\n# Another\n",
			wantWarns: 0,
		},
		{
			name:      "heading in code block ignored",
			input:     "# One\n```\n### not a heading\n```\n",
			wantWarns: 0,
		},
		{
			name:      "no headings",
			input:     "just text\n",
			wantWarns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHeadingIncrementRule(config.NewConfig())
			assert.Len(t, checkRule(t, rule, tt.input), tt.wantWarns)
		})
	}
}

func TestHeadingIncrementRule_Message(t *testing.T) {
	rule := NewHeadingIncrementRule(config.NewConfig())
	warnings := checkRule(t, rule, "## Two\n#### Four\n")

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].StartLine)
	assert.Contains(t, warnings[0].Message, "H2")
	assert.Contains(t, warnings[0].Message, "H4")
}

func TestSingleH1Rule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
	}{
		{
			name:      "single h1",
			input:     "# Title\n## Section\n",
			wantWarns: 0,
		},
		{
			name:      "two h1s",
			input:     "# Title\n# Another\n",
			wantWarns: 1,
		},
		{
			name:      "three h1s flag two",
			input:     "# A\n# B\n# C\n",
			wantWarns: 2,
		},
		{
			name:      "setext h1 counts",
			input:     "Title\n=====\n# Another\n",
			wantWarns: 1,
		},
		{
			name:      "no h1",
			input:     "## Section\n## Other\n",
			wantWarns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewSingleH1Rule(config.NewConfig())
			assert.Len(t, checkRule(t, rule, tt.input), tt.wantWarns)
		})
	}
}

func TestHeadingRules_ShouldSkip(t *testing.T) {
	doc := document.New("plain text, no markers\n", config.FlavorStandard)

	assert.True(t, NewHeadingIncrementRule(config.NewConfig()).ShouldSkip(doc))
	assert.True(t, NewSingleH1Rule(config.NewConfig()).ShouldSkip(doc))
}
