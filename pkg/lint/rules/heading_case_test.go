package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/document"
)

func capitalizationConfig(style string, names ...string) *config.Config {
	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{
		"MD063": {Options: map[string]any{"style": style}},
	}
	if len(names) > 0 {
		cfg.Rules["MD044"] = config.RuleConfig{Options: map[string]any{"names": names}}
	}
	return cfg
}

func TestHeadingCapitalizationRule_Sentence(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantWarns int
		wantFix   string
	}{
		{
			name:      "already sentence case",
			input:     "# Installing the tools\n",
			wantWarns: 0,
			wantFix:   "# Installing the tools\n",
		},
		{
			name:      "lowercase first word",
			input:     "# installing tools\n",
			wantWarns: 1,
			wantFix:   "# Installing tools\n",
		},
		{
			name:      "capitalized interior word",
			input:     "# Installing The tools\n",
			wantWarns: 1,
			wantFix:   "# Installing the tools\n",
		},
		{
			name:      "acronyms untouched",
			input:     "# Installing HTTP tools\n",
			wantWarns: 0,
			wantFix:   "# Installing HTTP tools\n",
		},
		{
			name:      "mixed case word untouched",
			input:     "# Installing JavaScript tools\n",
			wantWarns: 0,
			wantFix:   "# Installing JavaScript tools\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHeadingCapitalizationRule(capitalizationConfig("sentence"))
			warnings := checkRule(t, rule, tt.input)
			assert.Len(t, warnings, tt.wantWarns)
			assert.Equal(t, tt.wantFix, fixRule(t, rule, tt.input))
		})
	}
}

func TestHeadingCapitalizationRule_Title(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantFix string
	}{
		{
			name:    "lowercase words promoted",
			input:   "# installing the tools\n",
			wantFix: "# Installing the Tools\n",
		},
		{
			name:    "small words stay lowercase",
			input:   "# A Guide To the API\n",
			wantFix: "# A Guide to the API\n",
		},
		{
			name:    "leading small word capitalized",
			input:   "# the guide\n",
			wantFix: "# The Guide\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHeadingCapitalizationRule(capitalizationConfig("title"))
			assert.Equal(t, tt.wantFix, fixRule(t, rule, tt.input))
		})
	}
}

func TestHeadingCapitalizationRule_ProperNameInjection(t *testing.T) {
	cfg := capitalizationConfig("sentence", "JavaScript")

	capRule := NewHeadingCapitalizationRule(cfg)
	namesRule := NewProperNamesRule(cfg)

	input := "# installing javascript\n"

	// One fix pass corrects both the first word and the proper name.
	fixed := fixRule(t, capRule, input)
	require.Equal(t, "# Installing JavaScript\n", fixed)

	// Rechecking the fixed output produces no warnings from either rule,
	// so the two rules cannot oscillate.
	fixedDoc := document.New(fixed, config.FlavorStandard)
	assert.Empty(t, capRule.Check(fixedDoc))
	assert.True(t, namesRule.ShouldSkip(fixedDoc) || len(namesRule.Check(fixedDoc)) == 0)
}

func TestHeadingCapitalizationRule_MultiWordProperName(t *testing.T) {
	cfg := capitalizationConfig("sentence", "Visual Studio")

	capRule := NewHeadingCapitalizationRule(cfg)
	namesRule := NewProperNamesRule(cfg)

	input := "# using visual studio\n"

	// Both words of the name are frozen to canonical casing, so one pass
	// corrects the heading and the interior capitals are never demoted.
	fixed := fixRule(t, capRule, input)
	require.Equal(t, "# Using Visual Studio\n", fixed)

	fixedDoc := document.New(fixed, config.FlavorStandard)
	assert.Empty(t, capRule.Check(fixedDoc))
	assert.True(t, namesRule.ShouldSkip(fixedDoc) || len(namesRule.Check(fixedDoc)) == 0)
}

func TestHeadingCapitalizationRule_ProperNameNeedsAdjacentWords(t *testing.T) {
	rule := NewHeadingCapitalizationRule(capitalizationConfig("sentence", "Visual Studio"))

	// Punctuation between the words breaks the phrase, so the ordinary
	// sentence-style rules apply instead of the frozen spelling.
	assert.Equal(t, "# Visual, studio tools\n",
		fixRule(t, rule, "# Visual, Studio tools\n"))
}

func TestHeadingCapitalizationRule_InlineCodePreserved(t *testing.T) {
	for _, style := range []string{"sentence", "title"} {
		t.Run(style, func(t *testing.T) {
			rule := NewHeadingCapitalizationRule(capitalizationConfig(style))

			input := "# Using `javascript` Tools\n"
			warnings := checkRule(t, rule, input)
			for _, w := range warnings {
				assert.NotContains(t, w.Message, "javascript")
			}
		})
	}
}

func TestHeadingCapitalizationRule_OptIn(t *testing.T) {
	rule := NewHeadingCapitalizationRule(config.NewConfig())
	assert.True(t, rule.OptIn())
}

func TestHeadingCapitalizationRule_SetextHeadings(t *testing.T) {
	rule := NewHeadingCapitalizationRule(capitalizationConfig("sentence"))
	assert.Equal(t, "Good title\n==========\n", fixRule(t, rule, "good title\n==========\n"))
}
