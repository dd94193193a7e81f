package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/docweave/internal/logging"
	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/fsutil"
	"github.com/yaklabco/docweave/pkg/markup"
)

// Runner parses discovered documents into a document tree.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers the files below opts.Input and parses them concurrently.
//
// The runner:
//   - Discovers markup, static and directory configuration files
//   - Parses documents on a bounded worker pool
//   - Assembles the documents into a tree mirroring the directory layout
//   - Respects context cancellation
//
// Files that cannot be read are reported in the result and left out of
// the tree.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	inv, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered input",
		logging.FieldInput, inv.Root,
		logging.FieldDocuments, len(inv.Sources),
		logging.FieldStaticDocuments, len(inv.Static))

	exts, err := opts.registry().Extensions(opts.config().Extensions)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:  inv.Root,
		Files: make([]FileOutcome, 0, len(inv.Sources)),
		Stats: Stats{
			DocumentsDiscovered: len(inv.Sources),
			StaticDocuments:     len(inv.Static),
		},
	}

	docs := make(map[ast.Path]*ast.Document, len(inv.Sources))
	if len(inv.Sources) > 0 {
		outcomes := r.parseAll(ctx, inv.Sources, opts.Jobs, newParserCache(exts))
		for _, src := range inv.Sources {
			outcome, ok := outcomes[src.Path]
			if !ok {
				continue
			}
			result.accumulate(outcome)
			if outcome.Document != nil {
				docs[src.Path] = outcome.Document
			}
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	result.Tree = buildTree(inv, docs, opts.config().TreeConfig())
	result.Stats.Trees = countTrees(result.Tree)
	return result, nil
}

// parseAll parses sources on a worker pool and returns the outcomes keyed
// by document path.
func (r *Runner) parseAll(
	ctx context.Context,
	sources []Source,
	jobs int,
	parsers *parserCache,
) map[ast.Path]FileOutcome {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(sources) {
		jobs = len(sources)
	}

	workCh := make(chan Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, parsers)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[ast.Path]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	return outcomes
}

// worker parses sources from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan Source,
	outCh chan<- FileOutcome,
	parsers *parserCache,
) {
	for src := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		docCtx := logging.WithDocument(ctx, src.Path.String(), src.Format.Name)
		outcome := FileOutcome{Path: src.Path, File: src.File, Format: src.Format.Name}
		doc, err := parse(docCtx, src, parsers)
		if err != nil {
			outcome.Error = err
			logging.FromContext(docCtx).Debug("parse failed", logging.FieldError, err)
		} else {
			outcome.Document = doc
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func parse(ctx context.Context, src Source, parsers *parserCache) (*ast.Document, error) {
	content, _, err := fsutil.ReadFile(ctx, src.File)
	if err != nil {
		return nil, err
	}
	doc, err := parsers.get(src.Format).Parse(ctx, src.Path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Path, err)
	}
	return doc, nil
}

// parserCache shares one parser per format across the workers of a run.
// Parsers are safe for concurrent use.
type parserCache struct {
	mu      sync.Mutex
	exts    []markup.Extension
	parsers map[string]markup.Parser
}

func newParserCache(exts []markup.Extension) *parserCache {
	return &parserCache{exts: exts, parsers: make(map[string]markup.Parser)}
}

func (c *parserCache) get(format markup.Format) markup.Parser {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.parsers[format.Name]; ok {
		return p
	}
	p := format.New(c.exts...)
	c.parsers[format.Name] = p
	return p
}
