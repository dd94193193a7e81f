package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/markup"
)

// Source is a markup file found during discovery.
type Source struct {
	// Path is the document path inside the tree.
	Path ast.Path

	// File is the absolute file system path.
	File string

	// Format parses the file.
	Format markup.Format
}

// Inventory is everything discovery found below the input root.
type Inventory struct {
	// Root is the absolute input root directory.
	Root string

	// Sources are the markup files, sorted by path.
	Sources []Source

	// Static are the non-markup files, sorted by path.
	Static []ast.Path

	// Directories holds every visited directory with the tree
	// configuration read from its directory.yaml.
	Directories map[ast.Path]ast.TreeConfig
}

// Discover walks opts.Input and classifies every file it finds. Markup files
// are those a registered format (or a configured override) claims; all other
// files are static documents. Hidden files and directories are skipped.
func Discover(ctx context.Context, opts Options) (*Inventory, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	input := opts.effectiveInput()
	if !filepath.IsAbs(input) {
		input = filepath.Join(workDir, input)
	}
	input = filepath.Clean(input)

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", opts.effectiveInput(), err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		opts:     opts,
		excludes: excludes,
		inv: &Inventory{
			Directories: map[ast.Path]ast.TreeConfig{ast.Root: {}},
		},
	}

	if !info.IsDir() {
		w.inv.Root = filepath.Dir(input)
		if err := w.addFile(input, ast.Root.Child(filepath.Base(input))); err != nil {
			return nil, err
		}
		if len(w.inv.Sources) == 0 {
			return nil, fmt.Errorf("%w: %s", markup.ErrNoParser, input)
		}
		return w.inv, nil
	}

	w.inv.Root = input
	if err := w.walk(ctx, input, ast.Root); err != nil {
		return nil, err
	}

	slices.SortFunc(w.inv.Sources, func(a, b Source) int {
		return strings.Compare(a.Path.String(), b.Path.String())
	})
	slices.SortFunc(w.inv.Static, func(a, b ast.Path) int {
		return strings.Compare(a.String(), b.String())
	})
	return w.inv, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

type walker struct {
	opts     Options
	excludes []glob.Glob
	inv      *Inventory
}

// walk visits the directory dir whose tree path is base.
func (w *walker) walk(ctx context.Context, dir string, base ast.Path) error {
	err := filepath.WalkDir(dir, func(file string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(dir, file)
		if relErr != nil {
			return relErr
		}
		treePath := base
		if rel != "." {
			treePath = ast.ParsePath(path.Join(base.String(), filepath.ToSlash(rel)))
		}

		if entry.IsDir() {
			if file == dir {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.excluded(treePath, true) {
				return filepath.SkipDir
			}
			w.inv.Directories[treePath] = ast.TreeConfig{}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") || w.excluded(treePath, false) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(file)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root's
				// children on its own.
				w.inv.Directories[treePath] = ast.TreeConfig{}
				return w.walk(ctx, realPath, treePath)
			}
		}

		return w.addFile(file, treePath)
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", dir, err)
	}
	return nil
}

// addFile classifies one file.
func (w *walker) addFile(file string, treePath ast.Path) error {
	if treePath.Name() == DirectoryConfigName {
		cfg, err := readTreeConfig(file)
		if err != nil {
			return err
		}
		w.inv.Directories[treePath.Parent()] = cfg
		return nil
	}

	format, err := w.opts.registry().ForFile(treePath.Name(), w.opts.markupOverrides())
	switch {
	case err == nil:
		w.inv.Sources = append(w.inv.Sources, Source{Path: treePath, File: file, Format: format})
	case errors.Is(err, markup.ErrNoParser):
		w.inv.Static = append(w.inv.Static, treePath)
	default:
		return err
	}
	return nil
}

// excluded reports whether a tree path matches an ignore pattern. Patterns
// are matched against the path relative to the root and against the base
// name, so "*.tmp" excludes temporary files at any depth.
func (w *walker) excluded(treePath ast.Path, isDir bool) bool {
	rel := strings.TrimPrefix(treePath.String(), "/")
	candidates := []string{rel, treePath.Name()}
	if isDir {
		candidates = append(candidates, rel+"/")
	}
	for _, g := range w.excludes {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

// readTreeConfig reads a directory.yaml file.
func readTreeConfig(file string) (ast.TreeConfig, error) {
	var cfg ast.TreeConfig

	content, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", file, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", file, err)
	}
	return cfg, nil
}
