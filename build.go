package mdpage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alnah/go-mdpage/internal/fileutil"
)

// Output defaults.
const (
	DefaultOutputDir = "dist"
	DefaultFilename  = "index"
)

// BuildOptions describes one page build.
type BuildOptions struct {
	Source    string     // Markdown file (required)
	OutputDir string     // Output directory (default: dist)
	Filename  string     // Page base name; a trailing .html is dropped (default: index)
	ImageRoot string     // Image file or directory
	Title     string     // Page title override
	Converter *Converter // nil uses NewConverter()

	// FS holds the source, the image root and the output. nil means the
	// OS filesystem. Images inlined as data URIs are always read from disk.
	FS afero.Fs
}

// BuildResult reports what a build wrote.
type BuildResult struct {
	*Result

	PagePath     string // <out>/<filename>.html
	CSSPath      string // <out>/css/<style>.css, empty in inline mode
	ImagesCopied int    // files mirrored under the copy policy
}

// Build converts one Markdown file and writes the page into OutputDir.
//
// Every input is validated before the filesystem is touched. The output is
// assembled in a staging directory next to OutputDir and swapped into place
// at the end, so a failed build leaves the previous output intact.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	filename, err := opts.validate(fsys, outDir)
	if err != nil {
		return nil, err
	}

	conv := opts.Converter
	if conv == nil {
		if conv, err = NewConverter(); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(fsys, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	res, err := conv.Convert(ctx, Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(opts.Source),
		ImageRoot: opts.ImageRoot,
		Title:     opts.Title,
	})
	if err != nil {
		return nil, err
	}

	out := &BuildResult{
		Result:   res,
		PagePath: filepath.Join(outDir, filename+".html"),
	}

	staging, err := fileutil.StagingDir(fsys, outDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if err := writeStaging(ctx, fsys, staging, filename, opts.ImageRoot, out); err != nil {
		_ = fsys.RemoveAll(staging)
		return nil, err
	}

	if err := fileutil.ReplaceDir(fsys, staging, outDir); err != nil {
		_ = fsys.RemoveAll(staging)
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	return out, nil
}

// validate checks the options without writing anything and returns the
// page base name. outDir is replaced wholesale, so it may not hold the
// source or the image root.
func (o BuildOptions) validate(fsys afero.Fs, outDir string) (string, error) {
	if o.Source == "" {
		return "", ErrMissingPath
	}
	info, err := fsys.Stat(o.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, o.Source)
		}
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, o.Source)
	}

	if fileutil.IsWithin(o.Source, outDir) {
		return "", fmt.Errorf("%w: %s contains the source %s", ErrInvalidOutputDir, outDir, o.Source)
	}

	if o.ImageRoot != "" {
		if _, err := fsys.Stat(o.ImageRoot); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidImagePath, o.ImageRoot)
		}
		if fileutil.IsWithin(o.ImageRoot, outDir) {
			return "", fmt.Errorf("%w: %s contains the image root %s", ErrInvalidOutputDir, outDir, o.ImageRoot)
		}
	}

	return pageName(o.Filename)
}

// pageName normalizes the output base name.
func pageName(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".html")
	if name == "" {
		return DefaultFilename, nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return name, nil
}

// writeStaging writes the page, the stylesheet and the copied images into
// the staging directory and fills in the result paths.
func writeStaging(ctx context.Context, fsys afero.Fs, staging, filename, imageRoot string, out *BuildResult) error {
	if err := afero.WriteFile(fsys, filepath.Join(staging, filename+".html"), out.HTML, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if out.CSSFile != "" {
		cssPath := filepath.Join(staging, filepath.FromSlash(out.CSSFile))
		if err := fsys.MkdirAll(filepath.Dir(cssPath), 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if err := afero.WriteFile(fsys, cssPath, []byte(out.CSS), 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		out.CSSPath = filepath.Join(filepath.Dir(out.PagePath), filepath.FromSlash(out.CSSFile))
	}

	if out.ImagePolicy == ImagesCopy {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := materialize(fsys, imageRoot, staging)
		if err != nil {
			return err
		}
		out.ImagesCopied = n
	}

	return nil
}
