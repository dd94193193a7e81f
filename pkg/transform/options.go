// Package transform runs the whole pipeline: discovery and parsing, link
// resolution, analysis of the remaining diagnostics and rendering.
package transform

import (
	"io"

	"github.com/yaklabco/docweave/pkg/analysis"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/runner"
)

// Options controls a pipeline run.
type Options struct {
	// Runner controls discovery and parsing. Its Config is used for every
	// later stage as well.
	Runner runner.Options

	// Render enables the render stage. Without it the pipeline stops after
	// analysis, which is what the check command needs.
	Render bool

	// Output is the directory rendered documents are written to. Static
	// documents are copied next to them. Empty means Stdout.
	Output string

	// Stdout receives rendered documents when Output is empty.
	Stdout io.Writer

	// Analysis controls the diagnostics report.
	Analysis analysis.Options
}

func (o Options) config() *config.Config {
	if o.Runner.Config == nil {
		return config.NewConfig()
	}
	return o.Runner.Config
}
