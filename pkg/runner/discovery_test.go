package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/docweave/pkg/ast"
	"github.com/yaklabco/docweave/pkg/config"
	"github.com/yaklabco/docweave/pkg/markup"
	"github.com/yaklabco/docweave/pkg/runner"
)

func TestDiscover_ClassifiesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.txt":         "home",
		"guide/intro.txt":   "intro",
		"guide/logo.png":    "png",
		"guide/b/deep.txt":  "deep",
		".hidden/skip.txt":  "hidden",
		".secret.txt":       "hidden",
		"guide/notes.TXT":   "upper case extension",
		"guide/build.log":   "static",
		"directory.yaml":    "title: Handbook\n",
		"guide/other.yaml2": "static",
	})

	inv, err := runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry()})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var sources []string
	for _, src := range inv.Sources {
		sources = append(sources, src.Path.String())
		if src.Format.Name != "lines" {
			t.Errorf("unexpected format %q for %s", src.Format.Name, src.Path)
		}
	}
	wantSources := []string{"/guide/b/deep.txt", "/guide/intro.txt", "/guide/notes.TXT", "/index.txt"}
	if !slices.Equal(sources, wantSources) {
		t.Errorf("sources = %v, want %v", sources, wantSources)
	}

	wantStatic := []string{"/guide/build.log", "/guide/logo.png", "/guide/other.yaml2"}
	if got := paths(inv.Static); !slices.Equal(got, wantStatic) {
		t.Errorf("static = %v, want %v", got, wantStatic)
	}

	if inv.Directories[ast.Root].Title != "Handbook" {
		t.Errorf("expected root directory config, got %+v", inv.Directories[ast.Root])
	}
	if _, ok := inv.Directories[ast.ParsePath("/guide/b")]; !ok {
		t.Error("expected /guide/b in directories")
	}
	if _, ok := inv.Directories[ast.ParsePath("/.hidden")]; ok {
		t.Error("hidden directory must be skipped")
	}
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":             "a",
		"drafts/b.txt":      "b",
		"drafts/more/c.txt": "c",
		"keep/d.txt":        "d",
		"keep/e.tmp":        "e",
	})

	opts := runner.Options{
		Input:        dir,
		Registry:     lineRegistry(),
		ExcludeGlobs: []string{"drafts/**", "*.tmp"},
	}
	inv, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var sources []string
	for _, src := range inv.Sources {
		sources = append(sources, src.Path.String())
	}
	if want := []string{"/a.txt", "/keep/d.txt"}; !slices.Equal(sources, want) {
		t.Errorf("sources = %v, want %v", sources, want)
	}
	if len(inv.Static) != 0 {
		t.Errorf("expected *.tmp to be ignored, got %v", paths(inv.Static))
	}
}

func TestDiscover_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	opts := runner.Options{Input: t.TempDir(), Registry: lineRegistry(), ExcludeGlobs: []string{"[broken"}}
	if _, err := runner.Discover(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestDiscover_MarkupOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"notes.text": "x", "page.txt": "y"})

	cfg := config.NewConfig()
	cfg.Markup = map[string]string{".text": "lines"}
	inv, err := runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry(), Config: cfg})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(inv.Sources) != 2 {
		t.Errorf("expected override to claim notes.text, got %d sources", len(inv.Sources))
	}

	cfg.Markup = map[string]string{".text": "missing"}
	_, err = runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry(), Config: cfg})
	if !errors.Is(err, markup.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"only.txt": "x", "other.txt": "y"})

	opts := runner.Options{Input: "only.txt", WorkingDir: dir, Registry: lineRegistry()}
	inv, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(inv.Sources) != 1 || inv.Sources[0].Path.String() != "/only.txt" {
		t.Fatalf("unexpected sources %+v", inv.Sources)
	}
	if inv.Sources[0].File != filepath.Join(dir, "only.txt") {
		t.Errorf("unexpected file %s", inv.Sources[0].File)
	}

	opts.Input = filepath.Join(dir, "missing.png")
	writeTree(t, dir, map[string]string{"missing.png": "png"})
	if _, err := runner.Discover(context.Background(), opts); !errors.Is(err, markup.ErrNoParser) {
		t.Errorf("expected ErrNoParser for a non-markup file, got %v", err)
	}
}

func TestDiscover_MissingInput(t *testing.T) {
	t.Parallel()

	opts := runner.Options{Input: filepath.Join(t.TempDir(), "nope"), Registry: lineRegistry()}
	if _, err := runner.Discover(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestDiscover_InvalidDirectoryConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"directory.yaml": "titel: typo\n"})

	if _, err := runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry()}); err == nil {
		t.Fatal("expected error for unknown directory.yaml key")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a"})
	writeTree(t, outside, map[string]string{"shared.txt": "s"})
	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	inv, err := runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry()})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(inv.Sources) != 1 {
		t.Errorf("expected symlinked directory to be skipped, got %d sources", len(inv.Sources))
	}

	inv, err = runner.Discover(context.Background(), runner.Options{Input: dir, Registry: lineRegistry(), FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(inv.Sources) != 2 || inv.Sources[1].Path.String() != "/linked/shared.txt" {
		t.Errorf("expected linked document under /linked, got %+v", inv.Sources)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Discover(ctx, runner.Options{Input: dir, Registry: lineRegistry()}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
