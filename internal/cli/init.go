package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/configloader"
	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/markup"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// defaultConfigFile is the project configuration file written by init.
const defaultConfigFile = ".docweave.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docweave configuration file",
		Long: `Create a new .docweave.yml configuration file in the current directory.
The minimal template lists the common settings as comments; the full template
writes every setting with its default value and documents the available
markup formats and extensions.

Examples:
  docweave init                      Create minimal .docweave.yml
  docweave init --full               Create full config with every default
  docweave init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .docweave.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	formats, extensions := markupInfo(markup.DefaultRegistry)
	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:       flags.full,
		Formats:    formats,
		Extensions: extensions,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if configloader.IsInteractive() {
		logger.Info("customize your configuration by editing the file")
		logger.Info("run 'docweave formats' to see the available markup formats")
	}

	return nil
}
