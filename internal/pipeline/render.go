package pipeline

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// overridePriority registers the overrides ahead of goldmark's default
// HTML renderer (priority 1000); lower values win.
const overridePriority = 100

// Heading is one entry of the rendered document outline.
type Heading struct {
	Level int
	ID    string // empty when the policy assigned no anchor
	Text  string
}

// headingRenderer writes headings with ids from an AnchorAssigner and
// records the outline as it goes.
type headingRenderer struct {
	anchors  AnchorAssigner
	headings []Heading
}

func newHeadingRenderer(anchors AnchorAssigner) *headingRenderer {
	return &headingRenderer{anchors: anchors}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	level := strconv.Itoa(n.Level)

	if !entering {
		_, _ = w.WriteString("</h" + level + ">\n")
		return ast.WalkContinue, nil
	}

	text := plainText(n, source)
	id, ok := r.anchors.Assign(n.Level, text)
	r.headings = append(r.headings, Heading{Level: n.Level, ID: id, Text: text})

	_, _ = w.WriteString("<h" + level)
	if ok {
		_, _ = w.WriteString(" id='")
		_, _ = w.Write(util.EscapeHTML([]byte(id)))
		_ = w.WriteByte('\'')
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

// imageRenderer writes <img> elements whose src comes from an ImageResolver.
type imageRenderer struct {
	images ImageResolver
}

func newImageRenderer(images ImageResolver) *imageRenderer {
	return &imageRenderer{images: images}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	src, err := r.images.Resolve(string(n.Destination))
	if err != nil {
		return ast.WalkStop, err
	}

	_, _ = w.WriteString(`<img src="`)
	if isDataURI(src) {
		_, _ = w.Write(util.EscapeHTML([]byte(src)))
	} else {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(src), true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(plainText(n, source))))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString("/>")

	// Alt text was written as an attribute.
	return ast.WalkSkipChildren, nil
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, source []byte) string {
	var buf []byte
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf = append(buf, t.Segment.Value(source)...)
			if t.SoftLineBreak() {
				buf = append(buf, ' ')
			}
		case *ast.String:
			buf = append(buf, t.Value...)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return string(buf)
}

// isDataURI reports whether src is already a data: URI.
func isDataURI(src string) bool {
	return len(src) >= 5 && src[:5] == "data:"
}

// Compile-time interface checks.
var (
	_ renderer.NodeRenderer = (*headingRenderer)(nil)
	_ renderer.NodeRenderer = (*imageRenderer)(nil)
)
