package mdpage

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpage/internal/pipeline"
)

// AnchorPolicy selects how heading ids are generated.
type AnchorPolicy = pipeline.AnchorPolicy

// Anchor policies.
const (
	AnchorsFlat         = pipeline.AnchorsFlat         // item1, item2, ... for every heading
	AnchorsHierarchical = pipeline.AnchorsHierarchical // item1 for h1, item1-1 for h2, none below
	AnchorsHash         = pipeline.AnchorsHash         // base64 of the heading text
)

// ImagePolicy selects how local image references are materialized.
type ImagePolicy = pipeline.ImagePolicy

// Image policies.
const (
	ImagesNone   = pipeline.ImagesNone   // leave src as written
	ImagesInline = pipeline.ImagesInline // embed as data: URI
	ImagesCopy   = pipeline.ImagesCopy   // copy the image root next to the page
)

// Heading is one entry of the rendered document outline.
type Heading = pipeline.Heading

// CSSMode selects where the page stylesheet is delivered.
type CSSMode string

// CSS delivery modes.
const (
	CSSInline CSSMode = "inline" // stylesheet substituted into the style marker
	CSSFile   CSSMode = "file"   // css/<style>.css next to the page, @import in the marker
)

// ParseCSSMode converts a mode name to a CSSMode.
// An empty name yields CSSInline.
func ParseCSSMode(name string) (CSSMode, error) {
	switch CSSMode(strings.ToLower(strings.TrimSpace(name))) {
	case "", CSSInline:
		return CSSInline, nil
	case CSSFile:
		return CSSFile, nil
	default:
		return "", fmt.Errorf("%w: %q (must be inline or file)", ErrInvalidCSSMode, name)
	}
}

// Input contains the data for one page conversion.
type Input struct {
	Markdown  string // Markdown content (may start with a front matter block)
	SourceDir string // Base for image references when ImageRoot is empty
	ImageRoot string // Image file or directory; references resolve from its parent
	Title     string // Page title; wins over front matter and the first h1
}

// Result is the output of a conversion.
type Result struct {
	HTML        []byte      // Complete page
	CSS         string      // Page stylesheet: style plus highlight rules
	CSSFile     string      // Slash path of the external stylesheet (CSSFile mode only)
	Title       string      // Title written into the page, if any
	Headings    []Heading   // Document outline in source order
	ImagePolicy ImagePolicy // Policy applied after front matter overrides
	Warnings    []string    // Non-fatal problems, e.g. missing template markers
}
