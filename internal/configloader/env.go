package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/jslex/pkg/config"
)

// envVarPrefix is the prefix for all jslex environment variables.
const envVarPrefix = "JSLEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TAB_WIDTH":          {field: "tab_width", typ: envTypeInt, description: "Tab stop used for column numbers"},
	"CONTEXT":            {field: "context", typ: envTypeString, description: "How '/' is read: division, regex, or auto"},
	"RECOVER":            {field: "recover", typ: envTypeBool, description: "Skip past lex errors: true or false"},
	"JOBS":               {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":             {field: "format", typ: envTypeString, description: "Output format: text, table, json, sarif, summary, or highlight"},
	"EXTENSIONS":         {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of JavaScript file extensions"},
	"IGNORE":             {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"MARKDOWN_ENABLED":   {field: "markdown.enabled", typ: envTypeBool, description: "Lex code blocks in Markdown files: true or false"},
	"MARKDOWN_FLAVOR":    {field: "markdown.flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"MARKDOWN_LANGUAGES": {field: "markdown.languages", typ: envTypeSlice, description: "Comma-separated extra fence languages treated as JavaScript"},
	"MARKDOWN_DETECT":    {field: "markdown.detect", typ: envTypeBool, description: "Classify untagged code blocks by content: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with JSLEX_ (e.g., JSLEX_CONTEXT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "context":
		cfg.Context = config.ContextMode(strings.ToLower(value))
	case "format":
		cfg.Format = config.OutputFormat(strings.ToLower(value))
	case "markdown.flavor":
		cfg.Markdown.Flavor = config.Flavor(strings.ToLower(value))
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "recover":
		cfg.Recover = &value
	case "markdown.enabled":
		cfg.Markdown.Enabled = &value
	case "markdown.detect":
		cfg.Markdown.Detect = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "tab_width":
		cfg.TabWidth = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	case "markdown.languages":
		cfg.Markdown.Languages = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        envVarPrefix + suffix,
			Field:       mapping.field,
			Description: mapping.description,
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
