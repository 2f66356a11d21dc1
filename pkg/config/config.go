// Package config defines core configuration types for jslex.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

// ContextMode selects how the lexer decides between the division and
// regular expression readings of '/'.
type ContextMode string

const (
	// ContextDivision lexes every file with the division root rule.
	ContextDivision ContextMode = "division"

	// ContextRegex lexes every file with the regular expression root rule.
	ContextRegex ContextMode = "regex"

	// ContextAuto switches root rules from the previous significant token.
	ContextAuto ContextMode = "auto"
)

// OutputFormat specifies the output format for lexing results.
type OutputFormat string

const (
	FormatText      OutputFormat = "text"
	FormatTable     OutputFormat = "table"
	FormatJSON      OutputFormat = "json"
	FormatSARIF     OutputFormat = "sarif"
	FormatSummary   OutputFormat = "summary"
	FormatHighlight OutputFormat = "highlight"
)

// Flavor specifies the Markdown flavor used when extracting code blocks.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultTabWidth is the tab stop used for column numbers.
const DefaultTabWidth = 4

// MarkdownConfig controls extraction of JavaScript code blocks from Markdown files.
type MarkdownConfig struct {
	// Enabled turns extraction on. Nil means the default (enabled).
	Enabled *bool `yaml:"enabled,omitempty"`

	// Flavor is the Markdown dialect ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Languages lists extra fence info strings treated as JavaScript.
	Languages []string `yaml:"languages,omitempty"`

	// Detect classifies fenced blocks without an info string by content.
	// Nil means the default (disabled).
	Detect *bool `yaml:"detect,omitempty"`
}

// Config is the root configuration structure for jslex.
type Config struct {
	// TabWidth is the tab stop used when computing columns.
	TabWidth int `yaml:"tab_width,omitempty"`

	// Context is "division", "regex" or "auto".
	Context ContextMode `yaml:"context,omitempty"`

	// Recover skips one character after a lex error and resumes.
	// Nil means the default (disabled).
	Recover *bool `yaml:"recover,omitempty"`

	// Extensions lists the file extensions picked up during discovery.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Markdown configures code block extraction.
	Markdown MarkdownConfig `yaml:"markdown,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict reports failure when lex errors were recovered from.
	Strict bool `yaml:"-"`

	// Output is the file results are written to; empty means stdout.
	Output string `yaml:"-"`
}

// DefaultExtensions returns the file extensions lexed by default.
func DefaultExtensions() []string {
	return []string{".js", ".mjs", ".cjs"}
}

// MarkdownExtensions returns the extensions of Markdown files searched for code blocks.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	enabled := true
	recoverErrors := false
	return &Config{
		TabWidth:   DefaultTabWidth,
		Context:    ContextAuto,
		Recover:    &recoverErrors,
		Extensions: DefaultExtensions(),
		Markdown: MarkdownConfig{
			Enabled: &enabled,
			Flavor:  FlavorGFM,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// RecoverEnabled reports whether lex errors are skipped.
func (c *Config) RecoverEnabled() bool {
	return c != nil && c.Recover != nil && *c.Recover
}

// MarkdownEnabled reports whether Markdown files are searched for code blocks.
func (c *Config) MarkdownEnabled() bool {
	if c == nil || c.Markdown.Enabled == nil {
		return true
	}
	return *c.Markdown.Enabled
}

// DetectEnabled reports whether untagged code blocks are classified by content.
func (c *Config) DetectEnabled() bool {
	return c != nil && c.Markdown.Detect != nil && *c.Markdown.Detect
}

// AllExtensions returns the configured extensions plus the Markdown
// extensions when extraction is enabled.
func (c *Config) AllExtensions() []string {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	out := make([]string, 0, len(exts)+2)
	out = append(out, exts...)
	if c.MarkdownEnabled() {
		out = append(out, MarkdownExtensions()...)
	}
	return out
}

// IsValid reports whether the context mode is known.
func (m ContextMode) IsValid() bool {
	switch m {
	case ContextDivision, ContextRegex, ContextAuto:
		return true
	default:
		return false
	}
}
