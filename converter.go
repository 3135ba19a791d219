package mdpage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpage/internal/assets"
	"github.com/alnah/go-mdpage/internal/fileutil"
	"github.com/alnah/go-mdpage/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.ImageResolver = pipeline.PassthroughImages{}
	_ pipeline.ImageResolver = (*pipeline.InlineImages)(nil)
	_ pipeline.ImageResolver = (*pipeline.CopiedImages)(nil)
)

// Converter turns Markdown into a complete HTML page.
// Create with NewConverter and call Convert once per document. A Converter
// holds no per-document state, so it may serve several goroutines.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	htmlConverter     pipeline.HTMLConverter

	// Resolved by NewConverter.
	anchors      AnchorPolicy
	images       ImagePolicy // empty: decided per input
	cssMode      CSSMode
	styleName    string
	style        string
	template     string
	highlightCSS string
}

// NewConverter creates a Converter with the built-in style and template.
// Use options to customize behavior (e.g., WithStyle, WithAnchorPolicy).
// All option values are validated here, so a bad policy name or a missing
// style fails before any document is read.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		assetLoader:   assets.NewEmbeddedLoader(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	var err error
	if c.anchors, err = pipeline.ParseAnchorPolicy(c.cfg.anchors); err != nil {
		return nil, err
	}
	if c.cfg.images != "" {
		if c.images, err = pipeline.ParseImagePolicy(c.cfg.images); err != nil {
			return nil, err
		}
	}
	if c.cssMode, err = ParseCSSMode(c.cfg.cssMode); err != nil {
		return nil, err
	}
	if c.highlightCSS, err = pipeline.HighlightCSS(c.cfg.highlightStyle); err != nil {
		return nil, err
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	if err := c.resolveTemplate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert runs the pipeline on one document.
// Front matter may override the anchor and image policies and the title.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta, body, err := pipeline.SplitFrontMatter(pipeline.NormalizeLineEndings(input.Markdown))
	if err != nil {
		return nil, err
	}

	anchors := c.anchors
	if meta.Anchors != "" {
		if anchors, err = pipeline.ParseAnchorPolicy(meta.Anchors); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	policy, err := c.imagePolicy(input.ImageRoot, meta.Images)
	if err != nil {
		return nil, err
	}

	resolver, err := pipeline.NewImageResolver(pipeline.ImageOptions{
		Policy:     policy,
		Root:       input.ImageRoot,
		SourceDir:  input.SourceDir,
		StrictMIME: c.cfg.strictMIME,
	})
	if err != nil {
		return nil, err
	}

	frag, err := c.htmlConverter.ToHTML(ctx, body, pipeline.RenderOptions{
		Anchors:       anchors,
		DedupeAnchors: c.cfg.dedupeAnchors,
		Images:        resolver,
		AllowHTML:     c.cfg.allowHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlBody := frag.HTML
	if c.cfg.allowHTML && policy != ImagesNone {
		htmlBody, err = pipeline.RewriteRawImages(htmlBody, resolver)
		if err != nil {
			return nil, fmt.Errorf("rewriting raw images: %w", err)
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &Result{
		CSS:         c.stylesheet(),
		Headings:    frag.Headings,
		ImagePolicy: policy,
	}

	styleSlot := res.CSS
	if c.cssMode == CSSFile {
		res.CSSFile = path.Join("css", c.styleName+".css")
		styleSlot = fmt.Sprintf("@import url(%q);", res.CSSFile)
	}

	comp, err := pipeline.Compose(c.template, htmlBody, styleSlot, c.cfg.strictMarkers)
	if err != nil {
		return nil, err
	}
	for _, marker := range comp.Missing {
		res.Warnings = append(res.Warnings, fmt.Sprintf("template has no %s marker", marker))
	}

	page := comp.HTML
	res.Title = pickTitle(input.Title, meta.Title, frag.Headings)
	if res.Title != "" {
		page = pipeline.SetTitle(page, res.Title)
	}

	res.HTML = []byte(page)
	return res, nil
}

// imagePolicy picks the policy for one document: front matter, then the
// converter option, then inline when an image root is given.
func (c *Converter) imagePolicy(imageRoot, override string) (ImagePolicy, error) {
	if override != "" {
		policy, err := pipeline.ParseImagePolicy(override)
		if err != nil {
			return "", fmt.Errorf("front matter: %w", err)
		}
		return policy, nil
	}
	if c.images != "" {
		return c.images, nil
	}
	if imageRoot != "" {
		return ImagesInline, nil
	}
	return ImagesNone, nil
}

// stylesheet joins the page style and the highlight rules.
func (c *Converter) stylesheet() string {
	if c.style == "" {
		return c.highlightCSS
	}
	return strings.TrimRight(c.style, "\n") + "\n\n" + c.highlightCSS
}

// pickTitle returns the first non-empty of the explicit title, the front
// matter title, and the text of the first level-1 heading.
func pickTitle(explicit, frontMatter string, headings []Heading) string {
	if explicit != "" {
		return explicit
	}
	if frontMatter != "" {
		return frontMatter
	}
	for _, h := range headings {
		if h.Level == 1 && h.Text != "" {
			return h.Text
		}
	}
	return ""
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	c.styleName = DefaultStyle

	switch {
	case input == "":
		css, err := c.assetLoader.LoadStyle(DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", DefaultStyle, convertAssetError(err))
		}
		c.style = css

	case fileutil.IsCSS(input):
		c.style = input

	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrStyleNotFound, input)
			}
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.style = string(content)
		c.styleName = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	default:
		css, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
		}
		c.style = css
		c.styleName = input
	}

	return nil
}

// resolveTemplate resolves the template input (name or path) to HTML.
func (c *Converter) resolveTemplate() error {
	input := c.cfg.templateInput
	if input == "" {
		input = DefaultTemplate
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrTemplateNotFound, input)
			}
			return fmt.Errorf("loading template file %q: %w", input, err)
		}
		c.template = string(content)
		return nil
	}

	tmpl, err := c.assetLoader.LoadTemplate(input)
	if err != nil {
		return fmt.Errorf("loading template %q: %w", input, convertAssetError(err))
	}
	c.template = tmpl
	return nil
}
