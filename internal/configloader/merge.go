package configloader

import "github.com/yaklabco/jslex/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.Context != "" {
		result.Context = override.Context
	}
	if override.Recover != nil {
		recoverErrors := *override.Recover
		result.Recover = &recoverErrors
	}
	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	mergeMarkdown(&result.Markdown, override.Markdown)

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	// Strict is a plain bool: a layer can turn it on but not off.
	if override.Strict {
		result.Strict = true
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	return result
}

func mergeMarkdown(base *config.MarkdownConfig, override config.MarkdownConfig) {
	if override.Enabled != nil {
		enabled := *override.Enabled
		base.Enabled = &enabled
	}
	if override.Flavor != "" {
		base.Flavor = override.Flavor
	}
	if override.Languages != nil {
		base.Languages = append([]string(nil), override.Languages...)
	}
	if override.Detect != nil {
		detect := *override.Detect
		base.Detect = &detect
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
