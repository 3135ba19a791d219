package mdpage

import (
	"errors"

	"github.com/alnah/go-mdpage/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Configuration errors: detected before anything is written.
	ErrMissingPath      = errors.New("markdown source path is required")
	ErrSourceNotFound   = errors.New("markdown source not found")
	ErrInvalidImagePath = errors.New("image root not found")
	ErrInvalidCSSMode   = errors.New("invalid CSS mode")
	ErrInvalidFilename  = errors.New("invalid output filename")
	ErrInvalidOutputDir = errors.New("output directory overlaps an input")
	ErrNilAssetMap      = errors.New("asset map is nil")

	// I/O errors.
	ErrReadMarkdown = errors.New("failed to read markdown")
	ErrWriteOutput  = errors.New("failed to write output")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors raised by the conversion pipeline, re-exported for errors.Is.
var (
	ErrInvalidAnchorPolicy   = pipeline.ErrInvalidAnchorPolicy
	ErrInvalidImagePolicy    = pipeline.ErrInvalidImagePolicy
	ErrImageRead             = pipeline.ErrImageRead
	ErrUnknownMIME           = pipeline.ErrUnknownMIME
	ErrMarkerNotFound        = pipeline.ErrMarkerNotFound
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrInvalidHighlightStyle = pipeline.ErrInvalidHighlightStyle
	ErrFrontMatter           = pipeline.ErrFrontMatter
)

// MarkerError lists the markers a template lacks under strict markers.
type MarkerError = pipeline.MarkerError
