package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/docweave/pkg/config"
)

// envVarPrefix is the prefix for all docweave environment variables.
const envVarPrefix = "DOCWEAVE_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"FORMAT", "Render format: html, ast, or dump", func(cfg *config.Config, v string) error {
		cfg.Format = config.RenderFormat(v)
		return nil
	}},
	{"MESSAGE_LEVEL", "Lowest message level rendered: debug, info, warning, error, fatal", func(cfg *config.Config, v string) error {
		cfg.MessageLevel = v
		return nil
	}},
	{"FAIL_LEVEL", "Lowest message level that fails check", func(cfg *config.Config, v string) error {
		cfg.FailLevel = v
		return nil
	}},
	{"EXTENSIONS", "Comma-separated list of markup extensions", func(cfg *config.Config, v string) error {
		cfg.Extensions = parseSliceValue(v)
		return nil
	}},
	{"HIGHLIGHT_STYLE", "Chroma style used for code blocks", func(cfg *config.Config, v string) error {
		cfg.Highlight.Style = v
		return nil
	}},
	{"HIGHLIGHT_LINE_NUMBERS", "Number highlighted code lines: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", v)
		}
		cfg.Highlight.LineNumbers = b
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"OUTPUT", "Directory rendered documents are written to", func(cfg *config.Config, v string) error {
		cfg.Output = v
		return nil
	}},
	{"REPORT", "Diagnostic report format: text, json, table, or summary", func(cfg *config.Config, v string) error {
		cfg.Report = config.ReportFormat(v)
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		cfg.Jobs = i
		return nil
	}},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DOCWEAVE_ (e.g., DOCWEAVE_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := lo.Map(strings.Split(value, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	})
	return lo.Compact(parts)
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	vars := lo.Map(envVars, func(ev envVar, _ int) [2]string {
		return [2]string{envVarPrefix + ev.suffix, ev.description}
	})
	slices.SortFunc(vars, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return vars
}
