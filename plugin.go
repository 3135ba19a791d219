package mdpage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultPluginFilename is the asset key used when PluginOptions.Filename is empty.
const DefaultPluginFilename = "index.html"

// Asset is a virtual output file held by a build pipeline.
type Asset interface {
	Source() string
	Size() int
}

// AssetMap is the set of outputs a build pipeline will write, keyed by
// slash-separated path relative to its output directory.
type AssetMap map[string]Asset

// PluginOptions configures a Plugin.
type PluginOptions struct {
	Path      string     // Markdown file (required)
	Filename  string     // Asset key for the page (default: index.html)
	ImageRoot string     // Image file or directory
	Title     string     // Page title override
	Converter *Converter // nil uses NewConverter()
}

// Plugin converts one Markdown file into an asset of a surrounding build
// pipeline instead of writing to disk.
type Plugin struct {
	path      string
	filename  string
	imageRoot string
	title     string
	conv      *Converter
	fs        afero.Fs
}

// NewPlugin validates opts and returns a Plugin.
// Returns ErrMissingPath if opts.Path is empty.
func NewPlugin(opts PluginOptions) (*Plugin, error) {
	if opts.Path == "" {
		return nil, ErrMissingPath
	}

	p := &Plugin{
		path:      opts.Path,
		filename:  opts.Filename,
		imageRoot: opts.ImageRoot,
		title:     opts.Title,
		conv:      opts.Converter,
		fs:        afero.NewOsFs(),
	}
	if p.filename == "" {
		p.filename = DefaultPluginFilename
	}
	if p.conv == nil {
		conv, err := NewConverter()
		if err != nil {
			return nil, err
		}
		p.conv = conv
	}
	return p, nil
}

// Filename returns the asset key the page is stored under.
func (p *Plugin) Filename() string {
	return p.filename
}

// Emit converts the source file and adds the page to assets. Under the
// copy image policy the image files are added too, keyed by
// <base(imageRoot)>/<relative path>; with a css file mode the stylesheet
// is added under its css/ path.
func (p *Plugin) Emit(ctx context.Context, assets AssetMap) error {
	if assets == nil {
		return ErrNilAssetMap
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := afero.ReadFile(p.fs, p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, p.path)
		}
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	res, err := p.conv.Convert(ctx, Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(p.path),
		ImageRoot: p.imageRoot,
		Title:     p.title,
	})
	if err != nil {
		return err
	}

	assets[p.filename] = rawAsset(res.HTML)

	if res.CSSFile != "" {
		assets[res.CSSFile] = rawAsset(res.CSS)
	}

	if res.ImagePolicy == ImagesCopy {
		if err := p.emitImages(assets); err != nil {
			return err
		}
	}

	return nil
}

// emitImages adds every regular file under the image root to assets.
func (p *Plugin) emitImages(assets AssetMap) error {
	root := filepath.Clean(p.imageRoot)
	base := filepath.Base(root)

	info, err := p.fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidImagePath, p.imageRoot)
	}
	if !info.IsDir() {
		data, err := afero.ReadFile(p.fs, root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		assets[base] = rawAsset(data)
		return nil
	}

	return afero.Walk(p.fs, root, func(name string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return err
		}
		data, err := afero.ReadFile(p.fs, name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrImageRead, err)
		}
		assets[path.Join(base, filepath.ToSlash(rel))] = rawAsset(data)
		return nil
	})
}

// rawAsset is an in-memory Asset. Size is the length of Source in bytes.
type rawAsset string

func (a rawAsset) Source() string { return string(a) }
func (a rawAsset) Size() int      { return len(a) }

var _ Asset = rawAsset("")
