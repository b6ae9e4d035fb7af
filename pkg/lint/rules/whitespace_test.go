package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
	"github.com/yaklabco/marklint/pkg/lint"
)

func checkRule(t *testing.T, rule lint.Rule, input string) []lint.Warning {
	t.Helper()
	doc := document.New(input, config.FlavorStandard)
	if rule.ShouldSkip(doc) {
		return nil
	}
	return rule.Check(doc)
}

func fixRule(t *testing.T, rule lint.Rule, input string) string {
	t.Helper()
	fixed, err := rule.Fix(document.New(input, config.FlavorStandard))
	require.NoError(t, err)
	return fixed
}

func TestTrailingWhitespaceRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
		wantFix   string
	}{
		{
			name:      "no trailing whitespace",
			input:     "Hello world\nSecond line\n",
			wantWarns: 0,
			wantFix:   "Hello world\nSecond line\n",
		},
		{
			name:      "single trailing space",
			input:     "Hello world \n",
			wantWarns: 1,
			wantFix:   "Hello world\n",
		},
		{
			name:      "trailing tab",
			input:     "Hello world\t\n",
			wantWarns: 1,
			wantFix:   "Hello world\n",
		},
		{
			name:      "multiple lines",
			input:     "Line one \nLine two  \nLine three\n",
			wantWarns: 2,
			wantFix:   "Line one\nLine two\nLine three\n",
		},
		{
			name:      "empty file",
			input:     "",
			wantWarns: 0,
			wantFix:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewTrailingWhitespaceRule(config.NewConfig())
			warnings := checkRule(t, rule, tt.input)
			assert.Len(t, warnings, tt.wantWarns)
			assert.Equal(t, tt.wantFix, fixRule(t, rule, tt.input))
		})
	}
}

func TestTrailingWhitespaceRule_BrSpaces(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{
		"MD009": {Options: map[string]any{"br_spaces": 2}},
	}
	rule := NewTrailingWhitespaceRule(cfg)

	// Exactly two trailing spaces is a hard line break.
	assert.Empty(t, checkRule(t, rule, "line break  \nnext\n"))
	assert.Len(t, checkRule(t, rule, "three   \nnext\n"), 1)
	assert.Len(t, checkRule(t, rule, "one \nnext\n"), 1)
}

func TestTrailingWhitespaceRule_Positions(t *testing.T) {
	rule := NewTrailingWhitespaceRule(config.NewConfig())
	warnings := checkRule(t, rule, "ok\nbad  \n")

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].StartLine)
	assert.Equal(t, 4, warnings[0].StartColumn)
	assert.Equal(t, 6, warnings[0].EndColumn)
	require.NotNil(t, warnings[0].Fix)
}

func TestHardTabsRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
		wantFix   string
	}{
		{
			name:      "no tabs",
			input:     "clean line\n",
			wantWarns: 0,
			wantFix:   "clean line\n",
		},
		{
			name:      "leading tab",
			input:     "\tindented\n",
			wantWarns: 1,
			wantFix:   "    indented\n",
		},
		{
			name:      "tab run",
			input:     "a\t\tb\n",
			wantWarns: 1,
			wantFix:   "a        b\n",
		},
		{
			name:      "tab inside code block is ignored",
			input:     "```\n\tcode\n```\n",
			wantWarns: 0,
			wantFix:   "```\n\tcode\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHardTabsRule(config.NewConfig())
			warnings := checkRule(t, rule, tt.input)
			assert.Len(t, warnings, tt.wantWarns)
			assert.Equal(t, tt.wantFix, fixRule(t, rule, tt.input))
		})
	}
}

func TestHardTabsRule_ShouldSkip(t *testing.T) {
	rule := NewHardTabsRule(config.NewConfig())

	assert.True(t, rule.ShouldSkip(document.New("no tabs here\n", config.FlavorStandard)))
	assert.False(t, rule.ShouldSkip(document.New("a\tb\n", config.FlavorStandard)))
}

func TestMultipleBlanksRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
		wantFix   string
	}{
		{
			name:      "single blank line",
			input:     "a\n\nb\n",
			wantWarns: 0,
			wantFix:   "a\n\nb\n",
		},
		{
			name:      "double blank line",
			input:     "a\n\n\nb\n",
			wantWarns: 1,
			wantFix:   "a\n\nb\n",
		},
		{
			name:      "triple blank line",
			input:     "a\n\n\n\nb\n",
			wantWarns: 2,
			wantFix:   "a\n\nb\n",
		},
		{
			name:      "blank lines in code block are content",
			input:     "```\na\n\n\nb\n```\n",
			wantWarns: 0,
			wantFix:   "```\na\n\n\nb\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewMultipleBlanksRule(config.NewConfig())
			warnings := checkRule(t, rule, tt.input)
			assert.Len(t, warnings, tt.wantWarns)
			assert.Equal(t, tt.wantFix, fixRule(t, rule, tt.input))
		})
	}
}

func TestMultipleBlanksRule_Maximum(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{
		"MD012": {Options: map[string]any{"maximum": 2}},
	}
	rule := NewMultipleBlanksRule(cfg)

	assert.Empty(t, checkRule(t, rule, "a\n\n\nb\n"))
	assert.Len(t, checkRule(t, rule, "a\n\n\n\nb\n"), 1)
}
