package render

import (
	"fmt"
	"io"

	"github.com/sanity-io/litter"

	"github.com/yaklabco/docweave/pkg/ast"
)

// DumpRenderer writes the Go value of the document content, for debugging
// parsers.
type DumpRenderer struct {
	opts Options
}

// Render writes the dump of doc.
func (r *DumpRenderer) Render(w io.Writer, doc *ast.Document) error {
	doc = FilterMessages(doc, r.opts.MessageLevel)

	cfg := litter.Options{
		StripPackageNames: true,
		Separator:         " ",
	}
	if _, err := fmt.Fprintf(w, "// %s [%s]\n%s\n", doc.Path, doc.Format, cfg.Sdump(doc.Content)); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}
