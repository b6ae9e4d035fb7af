package config

import "fmt"

// ParseRuleFormat validates a rule format string from a flag or config
// value. An empty string parses to the default, RuleFormatName.
func ParseRuleFormat(s string) (RuleFormat, error) {
	switch RuleFormat(s) {
	case "":
		return RuleFormatName, nil
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return RuleFormat(s), nil
	default:
		return "", fmt.Errorf("invalid rule format %q (must be one of: name, id, combined)", s)
	}
}

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	// Fall back to ID if name is empty
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatName:
		return ruleName
	default:
		// Default to name format
		return ruleName
	}
}
