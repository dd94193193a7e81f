package reporter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/docweave/pkg/config"
)

// Format selects the layout of a report. Its values mirror the report
// formats accepted in configuration.
type Format string

// Report layouts.
const (
	FormatText    = Format(config.ReportText)
	FormatJSON    = Format(config.ReportJSON)
	FormatTable   = Format(config.ReportTable)
	FormatSummary = Format(config.ReportSummary)
)

//nolint:gochecknoglobals // Read-only lookup table.
var formats = []Format{FormatText, FormatJSON, FormatTable, FormatSummary}

// Formats lists every report layout.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat maps a configured report name to a Format. The empty name
// selects the text layout.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if !format.IsValid() {
		names := make([]string, len(formats))
		for i, f := range formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unknown report format %q; valid formats: %s", name, strings.Join(names, ", "))
	}
	return format, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a known layout.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
