// Package config defines core configuration types for marklint.
// These types are pure data structures with no external dependencies on Viper or other config loaders.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Severity represents the severity level of a lint warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled"`
	Severity *string        `mapstructure:"severity" yaml:"severity"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix"`
	Options  map[string]any `mapstructure:"options" yaml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar", "xdg", etc.
}

// OutputFormat specifies the output format for warnings.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "no-trailing-spaces"
	RuleFormatID       RuleFormat = "id"       // "MD009"
	RuleFormatCombined RuleFormat = "combined" // "MD009/no-trailing-spaces"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Flavor identifies the Markdown dialect used to build document contexts.
// The flavor decides which extended syntaxes get classified during analysis:
// admonition and content-tab containers (MkDocs), ESM blocks and JSX
// expressions (MDX), display math (Quarto), %%comments%% and wikilinks
// (Obsidian), extension blocks (Kramdown).
type Flavor string

const (
	FlavorStandard Flavor = "standard"
	FlavorMkDocs   Flavor = "mkdocs"
	FlavorMDX      Flavor = "mdx"
	FlavorQuarto   Flavor = "quarto"
	FlavorObsidian Flavor = "obsidian"
	FlavorKramdown Flavor = "kramdown"
)

// ParseFlavor converts a user-supplied flavor string to a Flavor.
// Matching is case-insensitive and accepts common aliases: gfm, github and
// commonmark map to standard (the base parser already handles GFM tables and
// strikethrough), qmd/rmd/rmarkdown map to quarto, jekyll maps to kramdown.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "", "gfm", "github", "commonmark":
		return FlavorStandard, nil
	case "mkdocs":
		return FlavorMkDocs, nil
	case "mdx":
		return FlavorMDX, nil
	case "quarto", "qmd", "rmd", "rmarkdown":
		return FlavorQuarto, nil
	case "obsidian":
		return FlavorObsidian, nil
	case "kramdown", "jekyll":
		return FlavorKramdown, nil
	default:
		return FlavorStandard, fmt.Errorf("unknown markdown flavor: %q", s)
	}
}

// FlavorFromPath detects the flavor from a file path's extension.
// Unknown or plain .md extensions return standard.
func FlavorFromPath(path string) Flavor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mdx":
		return FlavorMDX
	case ".qmd", ".rmd":
		return FlavorQuarto
	default:
		return FlavorStandard
	}
}

// SupportsJSX reports whether the flavor recognizes JSX expressions and
// ESM import/export blocks.
func (f Flavor) SupportsJSX() bool {
	return f == FlavorMDX
}

// SupportsContainers reports whether the flavor recognizes admonition and
// content-tab containers.
func (f Flavor) SupportsContainers() bool {
	return f == FlavorMkDocs
}

// SupportsMathBlocks reports whether "$$" display math is classified.
func (f Flavor) SupportsMathBlocks() bool {
	return f == FlavorQuarto
}

// SupportsWikiLinks reports whether [[wikilink]] syntax is parsed as links.
func (f Flavor) SupportsWikiLinks() bool {
	return f == FlavorObsidian
}

// SupportsKramdownSyntax reports whether kramdown extension blocks are
// classified.
func (f Flavor) SupportsKramdownSyntax() bool {
	return f == FlavorKramdown
}

// Name returns a human-readable name for the flavor.
func (f Flavor) Name() string {
	switch f {
	case FlavorMkDocs:
		return "MkDocs"
	case FlavorMDX:
		return "MDX"
	case FlavorQuarto:
		return "Quarto"
	case FlavorObsidian:
		return "Obsidian"
	case FlavorKramdown:
		return "Kramdown"
	default:
		return "Standard"
	}
}

// Config is the root configuration structure for marklint.
type Config struct {
	// Flavor specifies the Markdown dialect used to build document contexts.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Enable restricts the active rule set to exactly these rules (plus
	// ExtendEnable). The token "ALL" (case-insensitive) selects the full
	// catalog including opt-in rules.
	Enable []string `mapstructure:"enable" yaml:"enable"`

	// Disable removes rules from the active set. "ALL" disables every rule
	// not explicitly enabled.
	Disable []string `mapstructure:"disable" yaml:"disable"`

	// ExtendEnable adds rules to the default set without replacing it.
	// This is the way opt-in rules are activated.
	ExtendEnable []string `mapstructure:"extend_enable" yaml:"extend_enable"`

	// ExtendDisable removes rules from whatever set the other lists produce.
	ExtendDisable []string `mapstructure:"extend_disable" yaml:"extend_disable"`

	// EnableIsExplicit records that the enable key appeared in the
	// configuration source even when its value was an empty list. An
	// explicit empty enable list means "no rules", not "default rules".
	EnableIsExplicit bool `mapstructure:"-" yaml:"-"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorStandard,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Ignore:          nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// RuleOptions returns the options map for a rule, or nil if not configured.
func (c *Config) RuleOptions(ruleID string) map[string]any {
	if c == nil || c.Rules == nil {
		return nil
	}
	if rc, ok := c.Rules[ruleID]; ok {
		return rc.Options
	}
	return nil
}

// OptionString returns a string option for a rule, or the default.
func (c *Config) OptionString(ruleID, key, defaultValue string) string {
	if v, ok := c.RuleOptions(ruleID)[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// OptionInt returns an integer option for a rule, or the default.
func (c *Config) OptionInt(ruleID, key string, defaultValue int) int {
	if v, ok := c.RuleOptions(ruleID)[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		}
	}
	return defaultValue
}

// OptionBool returns a boolean option for a rule, or the default.
func (c *Config) OptionBool(ruleID, key string, defaultValue bool) bool {
	if v, ok := c.RuleOptions(ruleID)[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// OptionStringSlice returns a string-slice option for a rule, or the default.
// YAML decoding produces []any values, which are converted element-wise.
func (c *Config) OptionStringSlice(ruleID, key string, defaultValue []string) []string {
	v, ok := c.RuleOptions(ruleID)[key]
	if !ok {
		return defaultValue
	}
	switch slice := v.(type) {
	case []string:
		return slice
	case []any:
		result := make([]string, 0, len(slice))
		for _, item := range slice {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return defaultValue
}
