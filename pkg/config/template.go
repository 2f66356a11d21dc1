package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting with its default value.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts.Full)
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# How '/' is read: division, regex, or auto
context: auto

# Tab stop used for column numbers
# tab_width: 4

# Skip one character after a lex error and keep going
# recover: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template documenting every setting.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every setting with its default value.

# How '/' is read: division, regex, or auto.
# auto picks regex at the start of input and after operators,
# division after identifiers, literals and closing brackets.
context: auto

# Tab stop used for column numbers
tab_width: 4

# Skip one character after a lex error and keep going
recover: false

# File extensions lexed as JavaScript
extensions:
`)
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}

	buf.WriteString(`
# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - "dist/**"
  - ".git/**"

# JavaScript code blocks inside Markdown files
markdown:
  enabled: true
  # Markdown flavor: commonmark or gfm
  flavor: gfm
  # Extra fence info strings treated as JavaScript
  languages: []
  # Classify fenced blocks without an info string by content
  detect: false
`)

	return buf.Bytes()
}

// templateToJSON renders the template settings as JSON. JSON has no
// comments, so the minimal and full variants differ only in their keys.
func templateToJSON(full bool) ([]byte, error) {
	cfg := map[string]any{
		"context": string(ContextAuto),
	}
	if full {
		cfg["tab_width"] = DefaultTabWidth
		cfg["recover"] = false
		cfg["extensions"] = DefaultExtensions()
		cfg["ignore"] = []string{"node_modules/**", "dist/**", ".git/**"}
		cfg["markdown"] = map[string]any{
			"enabled":   true,
			"flavor":    string(FlavorGFM),
			"languages": []string{},
			"detect":    false,
		}
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return strings.Join([]string{
		"# jslex configuration",
		"# See: https://github.com/yaklabco/jslex",
	}, "\n")
}
