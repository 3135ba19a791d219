package fileutil_test

// Notes:
// - Copy tests run against afero.MemMapFs; symlink and rename behavior is
//   exercised on the OS filesystem in t.TempDir because MemMapFs has no
//   symlinks.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/alnah/go-mdpage/internal/fileutil"
)

func mustWrite(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustRead(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestFileExists - Path probe
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantFile bool
	}{
		{"existing file", testFile, true},
		{"directory", tempDir, false},
		{"nonexistent path", filepath.Join(tempDir, "nonexistent"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.wantFile)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"markdown", false},
		{"my-style", false},
		{"./custom.css", true},
		{"../shared/style.css", true},
		{"/absolute/path.css", true},
		{`C:\windows\path.css`, true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "docs")

	tests := []struct {
		name string
		path string
		dir  string
		want bool
	}{
		{"same directory", root, root, true},
		{"same after cleaning", root + string(filepath.Separator) + ".", root, true},
		{"file below", filepath.Join(root, "index.md"), root, true},
		{"nested below", filepath.Join(root, "img", "a.png"), root, true},
		{"parent", filepath.Dir(root), root, false},
		{"sibling with shared prefix", root + "-old", root, false},
		{"dot-dot prefixed name", filepath.Join(root, "..data"), root, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsWithin(tt.path, tt.dir); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"body { margin: 0 }", true},
		{"h1{}", true},
		{"markdown", false},
		{"./style.css", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsCSS(tt.input); got != tt.want {
				t.Errorf("IsCSS(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCopyTree - Recursive mirroring
// ---------------------------------------------------------------------------

func TestCopyTree(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		mustWrite(t, fsys, "/src/pic.png", "PNG")

		n, err := fileutil.CopyTree(fsys, "/src/pic.png", "/out/pic.png")
		if err != nil {
			t.Fatalf("CopyTree() error = %v", err)
		}
		if n != 1 {
			t.Errorf("copied %d files, want 1", n)
		}
		if got := mustRead(t, fsys, "/out/pic.png"); got != "PNG" {
			t.Errorf("content = %q, want PNG", got)
		}
	})

	t.Run("nested directory", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		mustWrite(t, fsys, "/src/images/a.png", "A")
		mustWrite(t, fsys, "/src/images/sub/deeper/b.gif", "B")
		if err := fsys.MkdirAll("/src/images/empty", 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}

		n, err := fileutil.CopyTree(fsys, "/src/images", "/out/images")
		if err != nil {
			t.Fatalf("CopyTree() error = %v", err)
		}
		if n != 2 {
			t.Errorf("copied %d files, want 2", n)
		}
		if got := mustRead(t, fsys, "/out/images/sub/deeper/b.gif"); got != "B" {
			t.Errorf("nested content = %q, want B", got)
		}
		if ok, _ := afero.DirExists(fsys, "/out/images/empty"); !ok {
			t.Error("empty directory not mirrored")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.CopyTree(afero.NewMemMapFs(), "/nope", "/out")
		if !errors.Is(err, fileutil.ErrSourceMissing) {
			t.Errorf("CopyTree() error = %v, want ErrSourceMissing", err)
		}
	})
}

func TestCopyTree_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "real.png"), []byte("R"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(filepath.Join(src, "real.png"), filepath.Join(src, "link.png")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	fsys := afero.NewOsFs()
	dst := filepath.Join(dir, "out")
	n, err := fileutil.CopyTree(fsys, src, dst)
	if err != nil {
		t.Fatalf("CopyTree() error = %v", err)
	}
	if n != 1 {
		t.Errorf("copied %d files, want 1", n)
	}
	if _, err := os.Lstat(filepath.Join(dst, "link.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("symlink was copied: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestStagingDir / TestReplaceDir - Output swap
// ---------------------------------------------------------------------------

func TestStagingAndReplace(t *testing.T) {
	t.Parallel()

	fsys := afero.NewOsFs()
	root := t.TempDir()
	target := filepath.Join(root, "dist")
	mustWrite(t, fsys, filepath.Join(target, "stale.html"), "old")

	staging, err := fileutil.StagingDir(fsys, target)
	if err != nil {
		t.Fatalf("StagingDir() error = %v", err)
	}
	if filepath.Dir(staging) != root {
		t.Errorf("staging dir %q not next to target", staging)
	}
	mustWrite(t, fsys, filepath.Join(staging, "index.html"), "new")

	if err := fileutil.ReplaceDir(fsys, staging, target); err != nil {
		t.Fatalf("ReplaceDir() error = %v", err)
	}

	if got := mustRead(t, fsys, filepath.Join(target, "index.html")); got != "new" {
		t.Errorf("index.html = %q, want new", got)
	}
	if _, err := os.Stat(filepath.Join(target, "stale.html")); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale output survived replacement")
	}
	if _, err := os.Stat(staging); !errors.Is(err, os.ErrNotExist) {
		t.Error("staging directory still present")
	}
}

func TestStagingDir_EmptyTarget(t *testing.T) {
	t.Parallel()

	_, err := fileutil.StagingDir(afero.NewMemMapFs(), "")
	if !errors.Is(err, fileutil.ErrEmptyTarget) {
		t.Errorf("StagingDir() error = %v, want ErrEmptyTarget", err)
	}
	if err := fileutil.ReplaceDir(afero.NewMemMapFs(), "/x", ""); !errors.Is(err, fileutil.ErrEmptyTarget) {
		t.Errorf("ReplaceDir() error = %v, want ErrEmptyTarget", err)
	}
}
