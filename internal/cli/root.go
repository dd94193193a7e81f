package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/logging"

	// Register the built-in markup formats.
	_ "github.com/yaklabco/docweave/pkg/markup/markdown"
	_ "github.com/yaklabco/docweave/pkg/markup/rst"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root docweave command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "docweave",
		Short: "Transform trees of markup documents into linked output",
		Long: `docweave parses directories of lightweight markup documents into document
trees, resolves the references between them and renders the result.

Headers, footnotes, citations, link definitions and cross-document links are
resolved across the whole tree. Problems never stop a transformation: they are
embedded in the output as messages and reported with their source location.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newTransformCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
