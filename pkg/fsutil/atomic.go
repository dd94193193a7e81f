package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultFileMode is the default permission mode for newly created files.
	DefaultFileMode os.FileMode = 0644

	// DirMode is the permission mode for created parent directories.
	DirMode os.FileMode = 0755
)

// WriteAtomic writes content to path using a temporary file in the same
// directory followed by a rename. Missing parent directories are created.
// If mode is 0, DefaultFileMode is used.
//
// On error the temporary file is removed and an existing file at path is
// left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteAtomicIfChanged writes content to path atomically only if the
// content differs from the current file. It returns true if the file was
// written. Unchanged files keep their modification time.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	_, info, err := ReadFile(ctx, path)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return false, fmt.Errorf("read existing: %w", err)
	case info.Matches(content):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// CopyFile copies src to dst with the permission bits of src. An identical
// dst is left alone. It returns true if dst was written.
func CopyFile(ctx context.Context, src, dst string) (bool, error) {
	content, info, err := ReadFile(ctx, src)
	if err != nil {
		return false, err
	}
	return WriteAtomicIfChanged(ctx, dst, content, info.Mode.Perm())
}
