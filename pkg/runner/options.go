// Package runner discovers an input directory and parses it into a document
// tree.
package runner

import (
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/markup"
)

// DirectoryConfigName is the per-directory tree configuration file.
const DirectoryConfigName = "directory.yaml"

// Options controls discovery and parsing.
type Options struct {
	// Input is the directory (or single file) forming the root of the
	// document tree. Relative inputs are resolved against WorkingDir.
	// Defaults to the working directory.
	Input string

	// WorkingDir is the base directory used to resolve a relative Input.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns, relative to the input root, of files
	// and directories to skip. They merge ignore patterns from config and
	// the CLI.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent parse workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run. Markup overrides,
	// extensions, root link targets and link validation come from it.
	Config *config.Config

	// Registry supplies markup formats. Defaults to markup.DefaultRegistry.
	Registry *markup.Registry
}

// effectiveInput returns the input to process, defaulting to ".".
func (o Options) effectiveInput() string {
	if o.Input == "" {
		return "."
	}
	return o.Input
}

func (o Options) registry() *markup.Registry {
	if o.Registry == nil {
		return markup.DefaultRegistry
	}
	return o.Registry
}

func (o Options) markupOverrides() map[string]string {
	if o.Config == nil {
		return nil
	}
	return o.Config.Markup
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
