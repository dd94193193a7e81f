package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-system and per-user configuration directories.
const appName = "docweave"

// ConfigPaths holds the configuration files found for one run. Empty
// fields mean no file exists at that layer.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/docweave/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/docweave/config.yaml.
	User string

	// Project is the nearest .docweave.yml at or above the working directory.
	Project string

	// Explicit is the file named by --config.
	Explicit string
}

// layer is one configuration file in precedence order.
type layer struct {
	name string
	path string
}

// layers returns the files to load, lowest precedence first, leaving out
// empty paths and the layers opts asks to skip.
func (p *ConfigPaths) layers(opts LoadOptions) []layer {
	all := []struct {
		layer
		skip bool
	}{
		{layer{"system", p.System}, opts.IgnoreSystemConfig},
		{layer{"user", p.User}, opts.IgnoreUserConfig},
		{layer{"project", p.Project}, opts.IgnoreProjectConfig},
		{layer{"explicit", p.Explicit}, false},
	}

	var out []layer
	for _, l := range all {
		if l.skip || l.path == "" {
			continue
		}
		out = append(out, l.layer)
	}
	return out
}

// projectFiles are the names searched for in each directory, best first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectFiles = []string{".docweave.yml", ".docweave.yaml", "docweave.yml", "docweave.yaml"}

// layerFiles are the names used inside the system and user directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerFiles = []string{"config.yaml", "config.yml"}

// repositoryMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repositoryMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project configuration files
// for a run started in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerFiles),
		User:    firstFile(userConfigDir(), layerFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		base := os.Getenv("ProgramData")
		if base == "" {
			base = `C:\ProgramData`
		}
		return filepath.Join(base, appName)
	}
	return filepath.Join("/etc", appName)
}

// userConfigDir honours XDG_CONFIG_HOME and falls back to ~/.config.
func userConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project configuration file it meets. The walk ends
// without a result at a repository root or at the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstFile(dir, projectFiles); found != "" {
			return found, nil
		}
		if isRepositoryRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
