package transform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/fsutil"
	"github.com/yaklabco/docweave/pkg/render"
)

// writeStdout renders all documents in tree order to w.
func writeStdout(w io.Writer, renderer render.Renderer, tree *ast.DocumentTree) error {
	if w == nil {
		w = os.Stdout
	}
	for _, doc := range tree.AllDocuments() {
		if err := renderer.Render(w, doc); err != nil {
			return fmt.Errorf("render %s: %w", doc.Path, err)
		}
	}
	return nil
}

// outputWriter writes rendered documents and static documents into an
// output directory that mirrors the input tree.
type outputWriter struct {
	dir      string
	format   config.RenderFormat
	renderer render.Renderer
	jobs     int
}

func (w *outputWriter) write(ctx context.Context, inputRoot string, tree *ast.DocumentTree) ([]string, error) {
	docs := tree.AllDocuments()
	static := tree.AllStaticDocuments()
	written := make([]string, len(docs)+len(static))

	jobs := w.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for idx, doc := range docs {
		group.Go(func() error {
			target := w.target(render.OutputPath(doc.Path, w.format))
			if err := w.renderDocument(ctx, target, doc); err != nil {
				return err
			}
			written[idx] = target
			return nil
		})
	}
	for idx, p := range static {
		group.Go(func() error {
			target := w.target(p)
			if err := copyStatic(ctx, filepath.Join(inputRoot, filepath.FromSlash(p.String())), target); err != nil {
				return err
			}
			written[len(docs)+idx] = target
			return nil
		})
	}
	err := group.Wait()

	out := written[:0]
	for _, name := range written {
		if name != "" {
			out = append(out, name)
		}
	}
	return out, err
}

func (w *outputWriter) target(p ast.Path) string {
	return filepath.Join(w.dir, filepath.FromSlash(p.String()))
}

func (w *outputWriter) renderDocument(ctx context.Context, target string, doc *ast.Document) error {
	var buf bytes.Buffer
	if err := w.renderer.Render(&buf, doc); err != nil {
		return fmt.Errorf("render %s: %w", doc.Path, err)
	}
	if _, err := fsutil.WriteAtomicIfChanged(ctx, target, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// copyStatic copies a static document, keeping its mode.
func copyStatic(ctx context.Context, source, target string) error {
	if _, err := fsutil.CopyFile(ctx, source, target); err != nil {
		return fmt.Errorf("copy static document: %w", err)
	}
	return nil
}
