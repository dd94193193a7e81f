package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/markup"
)

const formatJSON = "json"

// formatsOutput is the JSON form of the formats command.
type formatsOutput struct {
	Formats    []config.FormatInfo `json:"formats"`
	Extensions []config.FormatInfo `json:"extensions"`
}

func newFormatsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List markup formats and extensions",
		Long: `List the markup formats docweave can parse with the file extensions
mapped to them, and the markup extensions that can be enabled in the
configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats, extensions := markupInfo(markup.DefaultRegistry)

			if format == formatJSON {
				return outputFormatsJSON(cmd.OutOrStdout(), formats, extensions)
			}

			logger := logging.NewInteractive()
			logger.Info("markup formats")
			for _, f := range formats {
				logger.Info(f.Name,
					"extensions", strings.Join(f.Extensions, " "),
					"description", f.Description,
				)
			}
			if len(extensions) == 0 {
				return nil
			}
			logger.Info("markup extensions")
			for _, e := range extensions {
				logger.Info(e.Name, "description", e.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// markupInfo describes the formats and extensions of registry.
func markupInfo(registry *markup.Registry) (formats, extensions []config.FormatInfo) {
	for _, f := range registry.Formats() {
		formats = append(formats, config.FormatInfo{
			Name:        f.Name,
			Description: f.Description,
			Extensions:  f.FileExtensions,
		})
	}
	for _, e := range registry.AllExtensions() {
		extensions = append(extensions, config.FormatInfo{
			Name:        e.Name,
			Description: e.Description,
		})
	}
	return formats, extensions
}

func outputFormatsJSON(w io.Writer, formats, extensions []config.FormatInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(formatsOutput{Formats: formats, Extensions: extensions}); err != nil {
		return fmt.Errorf("encoding formats: %w", err)
	}
	return nil
}
