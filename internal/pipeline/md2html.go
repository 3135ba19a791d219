package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion        = errors.New("HTML conversion failed")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// RenderOptions configures one Markdown to HTML conversion.
type RenderOptions struct {
	Anchors       AnchorPolicy
	DedupeAnchors bool          // suffix repeated hash anchors
	Images        ImageResolver // nil keeps image sources unchanged
	AllowHTML     bool          // pass raw HTML through instead of omitting it
}

// Fragment is the rendered document body and its heading outline.
type Fragment struct {
	HTML     string
	Headings []Heading
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, opts RenderOptions) (*Fragment, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
// It builds a new engine per call so that heading counters never leak
// from one document into the next.
type GoldmarkConverter struct{}

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{}
}

// newEngine creates a goldmark instance with GFM, footnotes, class-based
// highlighting and the heading/image overrides.
func newEngine(headings *headingRenderer, images *imageRenderer, allowHTML bool) goldmark.Markdown {
	rendererOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags
		renderer.WithNodeRenderers(
			util.Prioritized(headings, overridePriority),
			util.Prioritized(images, overridePriority),
		),
	}
	if allowHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // stylesheet comes from HighlightCSS
				),
			),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// ToHTML converts Markdown content to an HTML body fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, opts RenderOptions) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anchors, err := NewAnchorAssigner(opts.Anchors, opts.DedupeAnchors)
	if err != nil {
		return nil, err
	}
	images := opts.Images
	if images == nil {
		images = PassthroughImages{}
	}

	headings := newHeadingRenderer(anchors)
	md := newEngine(headings, newImageRenderer(images), opts.AllowHTML)

	type result struct {
		frag *Fragment
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: wrapRenderError(err)}
			return
		}
		done <- result{frag: &Fragment{HTML: buf.String(), Headings: headings.headings}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

// wrapRenderError keeps image sentinels visible to callers and tags
// everything else as a conversion failure.
func wrapRenderError(err error) error {
	if errors.Is(err, ErrImageRead) || errors.Is(err, ErrUnknownMIME) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
}

// HighlightCSS returns the class-based chroma stylesheet for a style name.
func HighlightCSS(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultHighlightStyle
	}

	style, ok := styles.Registry[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, name)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// HighlightStyles lists the registered chroma style names, sorted.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
