package configloader

import (
	"maps"

	"github.com/yaklabco/docweave/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.MessageLevel != "" {
		result.MessageLevel = override.MessageLevel
	}
	if override.FailLevel != "" {
		result.FailLevel = override.FailLevel
	}
	if override.Highlight.Style != "" {
		result.Highlight.Style = override.Highlight.Style
	}
	// false is the zero value, so a layer can only switch line numbers on.
	if override.Highlight.LineNumbers {
		result.Highlight.LineNumbers = true
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Report != "" {
		result.Report = override.Report
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Markup = mergeMaps(base.Markup, override.Markup)
	result.LinkTargets = mergeMaps(base.LinkTargets, override.LinkTargets)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.LinkValidation.Excluded != nil {
		result.LinkValidation.Excluded = override.LinkValidation.Excluded
	}

	return &result
}

// mergeMaps returns a fresh map holding base's entries overlaid with
// override's.
func mergeMaps(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
