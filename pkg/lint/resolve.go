package lint

import (
	"strings"

	"github.com/yaklabco/marklint/pkg/config"
)

// allToken selects every rule in an enable or disable list, case-insensitively.
const allToken = "all"

// ResolvedRule pairs a Rule with its resolved per-rule settings.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Severity is the resolved severity for warnings from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules selects which rules run for a given configuration and
// attaches their resolved settings. Selection follows the enable, disable,
// extend_enable, and extend_disable lists in precedence order; when a rule
// is named both in enable and disable, enable wins.
func ResolveRules(catalog []Rule, cfg *config.Config) []ResolvedRule {
	selected := selectRules(catalog, cfg)

	resolved := make([]ResolvedRule, 0, len(selected))
	for _, rule := range selected {
		resolved = append(resolved, resolveSettings(rule, cfg))
	}
	return resolved
}

// selectRules applies the list precedence and returns the active subset of
// the catalog in catalog order.
func selectRules(catalog []Rule, cfg *config.Config) []Rule {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	enableAll := containsAllToken(cfg.Enable)
	disableAll := containsAllToken(cfg.Disable)
	extendEnableAll := containsAllToken(cfg.ExtendEnable)
	enableExplicit := cfg.EnableIsExplicit || len(cfg.Enable) > 0

	var out []Rule
	for _, rule := range catalog {
		active := selectRule(rule, cfg, enableAll, disableAll, extendEnableAll, enableExplicit)

		// A per-rule enabled setting overrides the default selection, but
		// never a rule named explicitly in the enable list.
		if ruleCfg, ok := cfg.Rules[rule.ID()]; ok && ruleCfg.Enabled != nil && !matchesRule(rule, cfg.Enable) {
			active = *ruleCfg.Enabled && !disableAll
		}

		if active {
			out = append(out, rule)
		}
	}
	return out
}

func selectRule(rule Rule, cfg *config.Config, enableAll, disableAll, extendEnableAll, enableExplicit bool) bool {
	switch {
	case disableAll && enableAll:
		// "disable: all" with "enable: all" cancels out to the full catalog.
		return true
	case disableAll && len(cfg.Enable) > 0:
		// Only the explicitly enabled rules survive a disable-all.
		return matchesRule(rule, cfg.Enable)
	case disableAll:
		return false
	case enableAll || extendEnableAll:
		// Everything runs except the disabled rules.
		return !matchesRule(rule, cfg.Disable) && !matchesRule(rule, cfg.ExtendDisable)
	case enableExplicit:
		// An explicit enable list is exhaustive: it names the active set,
		// and an empty list means no rules at all. Names in enable win
		// over any disable list; extend_enable additions remain subject
		// to the disable lists.
		if matchesRule(rule, cfg.Enable) {
			return true
		}
		if matchesRule(rule, cfg.ExtendEnable) {
			return !matchesRule(rule, cfg.Disable) && !matchesRule(rule, cfg.ExtendDisable)
		}
		return false
	default:
		if matchesRule(rule, cfg.Disable) || matchesRule(rule, cfg.ExtendDisable) {
			return false
		}
		if rule.OptIn() {
			return matchesRule(rule, cfg.ExtendEnable)
		}
		return true
	}
}

// matchesRule reports whether a list names the rule by ID or name,
// case-insensitively.
func matchesRule(rule Rule, list []string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, rule.ID()) || strings.EqualFold(entry, rule.Name()) {
			return true
		}
	}
	return false
}

func containsAllToken(list []string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, allToken) {
			return true
		}
	}
	return false
}

// resolveSettings resolves the severity and auto-fix settings for a single
// active rule.
func resolveSettings(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.FixCapability() == Fixable,
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	// Apply rule-specific config.
	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.FixCapability() == Fixable
		}
	}

	// Apply fix-rules filter from CLI.
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = false
		for _, id := range cfg.FixRules {
			if strings.EqualFold(id, rule.ID()) && rule.FixCapability() == Fixable {
				rr.AutoFix = true
				break
			}
		}
	}

	// Disable auto-fix if --fix is not set.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
