package link

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/cursor"
)

// Index holds the target providers of every document in a tree, plus the
// link targets declared in tree configurations.
type Index struct {
	root        *cursor.RootCursor
	providers   map[ast.Path]*TargetProvider
	treeTargets map[ast.Path]map[Selector]TargetResolver
	excluded    map[ast.Path][]glob.Glob
}

// BuildIndex builds the providers of all documents below root. Providers
// are independent of each other and built concurrently.
func BuildIndex(ctx context.Context, root *cursor.RootCursor) (*Index, error) {
	docs := root.Documents()
	providers := make([]*TargetProvider, len(docs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for idx, dc := range docs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			providers[idx] = NewTargetProvider(dc.Document())
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("collect link targets: %w", err)
	}

	ix := &Index{
		root:        root,
		providers:   make(map[ast.Path]*TargetProvider, len(docs)),
		treeTargets: make(map[ast.Path]map[Selector]TargetResolver),
		excluded:    make(map[ast.Path][]glob.Glob),
	}
	for _, p := range providers {
		ix.providers[p.Path().WithoutFragment()] = p
	}
	if err := ix.addTree(root.Root()); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *Index) addTree(tc *cursor.TreeCursor) error {
	if targets := tc.Tree().Config.LinkTargets; len(targets) > 0 {
		resolvers := make(map[Selector]TargetResolver, len(targets))
		for id, dest := range targets {
			sel := LinkDefinitionSelector(id)
			resolvers[sel] = newDefinitionTarget(sel, dest, "", tc.Path(), tc.Path())
		}
		ix.treeTargets[tc.Path()] = resolvers
	}

	patterns := tc.Config().LinkValidation.Excluded
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("invalid link validation exclusion %q in %s: %w", pattern, tc.Path(), err)
		}
		globs = append(globs, g)
	}
	ix.excluded[tc.Path()] = globs

	for _, child := range tc.Children() {
		if err := ix.addTree(child); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the cursor the index was built from.
func (ix *Index) Root() *cursor.RootCursor {
	return ix.root
}

// Provider returns the provider of the document at p.
func (ix *Index) Provider(p ast.Path) (*TargetProvider, bool) {
	provider, ok := ix.providers[p.WithoutFragment()]
	return provider, ok
}

// ResolveTree builds the index for root and resolves every document.
// Documents are rewritten concurrently; each rewrite only reads the index.
func ResolveTree(ctx context.Context, root *cursor.RootCursor) (*ast.DocumentTree, error) {
	ix, err := BuildIndex(ctx, root)
	if err != nil {
		return nil, err
	}

	docs := root.Documents()
	resolved := make([]*ast.Document, len(docs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for idx, dc := range docs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resolved[idx] = ix.ResolveDocument(dc)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("resolve links: %w", err)
	}

	byPath := make(map[ast.Path]*ast.Document, len(docs))
	for _, doc := range resolved {
		byPath[doc.Path] = doc
	}
	return root.Tree().MapDocuments(func(doc *ast.Document) *ast.Document {
		if out, ok := byPath[doc.Path]; ok {
			return out
		}
		return doc
	}), nil
}
