package rules

import (
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// RegisterAll registers every built-in rule constructor with the registry.
// The table is the single source of truth for the catalog: the engine
// rebuilds rules from it whenever configuration changes.
func RegisterAll(registry *lint.Registry) {
	// Whitespace rules
	registry.Register("MD009", "no-trailing-spaces", func(cfg *config.Config) lint.Rule { return NewTrailingWhitespaceRule(cfg) })
	registry.Register("MD010", "no-hard-tabs", func(cfg *config.Config) lint.Rule { return NewHardTabsRule(cfg) })
	registry.Register("MD012", "no-multiple-blanks", func(cfg *config.Config) lint.Rule { return NewMultipleBlanksRule(cfg) })

	// Heading rules
	registry.Register("MD001", "heading-increment", func(cfg *config.Config) lint.Rule { return NewHeadingIncrementRule(cfg) })
	registry.Register("MD025", "single-h1", func(cfg *config.Config) lint.Rule { return NewSingleH1Rule(cfg) })
	registry.Register("MD063", "heading-capitalization", func(cfg *config.Config) lint.Rule { return NewHeadingCapitalizationRule(cfg) })

	// Line rules
	registry.Register("MD013", "line-length", func(cfg *config.Config) lint.Rule { return NewMaxLineLengthRule(cfg) })
	registry.Register("MD035", "hr-style", func(cfg *config.Config) lint.Rule { return NewHRStyleRule(cfg) })

	// Code block rules
	registry.Register("MD040", "fenced-code-language", func(cfg *config.Config) lint.Rule { return NewFencedCodeLanguageRule(cfg) })

	// Spelling rules
	registry.Register("MD044", "proper-names", func(cfg *config.Config) lint.Rule { return NewProperNamesRule(cfg) })
}

// RegisterLegacyAliases registers markdownlint-compatible aliases.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("single-title", "MD025")
	registry.RegisterAlias("no-hard-tab", "MD010")
	registry.RegisterAlias("fenced-code-language-required", "MD040")
	registry.RegisterAlias("capitalize-headings", "MD063")
}

func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfos
}

// ruleInfos reports catalog metadata for config template generation.
func ruleInfos() []config.RuleInfo {
	rules := lint.DefaultRegistry.NewAll(config.NewConfig())
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     !rule.OptIn(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.FixCapability() == lint.Fixable,
		})
	}
	return infos
}
