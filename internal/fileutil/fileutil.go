// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Sentinel errors for file utility operations.
var (
	ErrSourceMissing = errors.New("source path does not exist")
	ErrEmptyTarget   = errors.New("target path cannot be empty")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "markdown" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsCSS returns true if the string looks like CSS content rather than a
// name or path. CSS content contains at least one rule block.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}

// CopyFile copies a regular file byte for byte, creating parent directories.
func CopyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err := fsys.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// CopyTree mirrors src into dst. A file src is copied to dst itself; a
// directory is walked recursively. Symbolic links are skipped.
// Returns the number of files copied.
func CopyTree(fsys afero.Fs, src, dst string) (int, error) {
	info, err := lstat(fsys, src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return 0, fmt.Errorf("stat %s: %w", src, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return 0, nil
	}
	if !info.IsDir() {
		if err := CopyFile(fsys, src, dst); err != nil {
			return 0, err
		}
		return 1, nil
	}

	copied := 0
	err = afero.Walk(fsys, src, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case fi.Mode()&os.ModeSymlink != 0:
			return nil
		case fi.IsDir():
			return fsys.MkdirAll(target, 0o750)
		case !fi.Mode().IsRegular():
			return nil
		}

		if err := CopyFile(fsys, path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copying tree %s: %w", src, err)
	}
	return copied, nil
}

// lstat uses Lstat when the filesystem supports it so links are not followed.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// IsWithin reports whether path is dir or lies below it. Both are made
// absolute first; a path that cannot be resolved is not within anything.
func IsWithin(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// StagingDir creates an empty directory next to target for building output
// before it replaces target. The caller removes it on failure.
func StagingDir(fsys afero.Fs, target string) (string, error) {
	if target == "" {
		return "", ErrEmptyTarget
	}

	clean := filepath.Clean(target)
	parent := filepath.Dir(clean)
	if err := fsys.MkdirAll(parent, 0o750); err != nil {
		return "", fmt.Errorf("creating %s: %w", parent, err)
	}

	dir, err := afero.TempDir(fsys, parent, "."+filepath.Base(clean)+"-staging-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	return dir, nil
}

// ReplaceDir removes target and renames staging into its place.
func ReplaceDir(fsys afero.Fs, staging, target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	if err := fsys.RemoveAll(target); err != nil {
		return fmt.Errorf("removing %s: %w", target, err)
	}
	if err := fsys.Rename(staging, target); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", staging, target, err)
	}
	return nil
}
