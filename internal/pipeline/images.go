package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for image resolution.
var (
	ErrInvalidImagePolicy = errors.New("invalid image policy")
	ErrImageRead          = errors.New("failed to read image")
	ErrUnknownMIME        = errors.New("unknown image MIME type")
)

// ImagePolicy selects how image references are materialized.
type ImagePolicy string

// Supported image policies.
const (
	ImagesNone   ImagePolicy = "none"   // keep src as written
	ImagesInline ImagePolicy = "inline" // embed as data: URI
	ImagesCopy   ImagePolicy = "copy"   // point src at the copied asset tree
)

// ParseImagePolicy converts a policy name to an ImagePolicy (case-insensitive).
// An empty name yields ImagesNone.
func ParseImagePolicy(name string) (ImagePolicy, error) {
	switch ImagePolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", ImagesNone:
		return ImagesNone, nil
	case ImagesInline:
		return ImagesInline, nil
	case ImagesCopy:
		return ImagesCopy, nil
	default:
		return "", fmt.Errorf("%w: %q (must be none, inline, or copy)", ErrInvalidImagePolicy, name)
	}
}

// ImageResolver maps an image reference to the src attribute to emit.
type ImageResolver interface {
	Resolve(href string) (string, error)
}

// ImageOptions configures NewImageResolver.
type ImageOptions struct {
	Policy     ImagePolicy
	Root       string // image root (file or directory), optional
	SourceDir  string // directory of the Markdown source, used when Root is empty
	StrictMIME bool   // reject extensions with no known MIME type
}

// NewImageResolver builds the resolver for a policy.
// References resolve against the parent of Root when Root is set,
// otherwise against SourceDir.
func NewImageResolver(opts ImageOptions) (ImageResolver, error) {
	baseDir := opts.SourceDir
	if opts.Root != "" {
		baseDir = filepath.Dir(opts.Root)
	}

	switch opts.Policy {
	case "", ImagesNone:
		return PassthroughImages{}, nil
	case ImagesInline:
		return &InlineImages{BaseDir: baseDir, StrictMIME: opts.StrictMIME}, nil
	case ImagesCopy:
		if opts.Root == "" {
			return nil, fmt.Errorf("%w: copy policy requires an image root", ErrInvalidImagePolicy)
		}
		return &CopiedImages{BaseDir: baseDir, Root: opts.Root}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidImagePolicy, opts.Policy)
	}
}

// PassthroughImages leaves every reference untouched.
type PassthroughImages struct{}

// Resolve returns href unchanged.
func (PassthroughImages) Resolve(href string) (string, error) {
	return href, nil
}

// InlineImages embeds local images as base64 data URIs.
type InlineImages struct {
	BaseDir    string
	StrictMIME bool
}

// Resolve reads the referenced file and returns a data: URI.
// An unknown MIME type yields "data:;base64,..." unless StrictMIME is set.
func (r *InlineImages) Resolve(href string) (string, error) {
	if !isLocalReference(href) {
		return href, nil
	}

	path := resolveReference(r.BaseDir, href)
	data, err := os.ReadFile(path) // #nosec G304 -- document-referenced image
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageRead, err)
	}

	mimeType := lookupMIME(path)
	if mimeType == "" && r.StrictMIME {
		return "", fmt.Errorf("%w: %s", ErrUnknownMIME, filepath.Base(path))
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CopiedImages rewrites references to their location inside the output
// directory, where the image root is mirrored under its base name.
type CopiedImages struct {
	BaseDir string
	Root    string
}

// Resolve returns the output-relative, slash-separated path for references
// inside Root. Anything else is returned unchanged.
func (r *CopiedImages) Resolve(href string) (string, error) {
	if !isLocalReference(href) {
		return href, nil
	}

	absBase, err := filepath.Abs(r.BaseDir)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(r.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(resolveReference(absBase, href))

	if target != absRoot && !isPathUnderDir(target, absRoot) {
		return href, nil
	}

	rel, err := filepath.Rel(absBase, target)
	if err != nil {
		return href, nil
	}
	return filepath.ToSlash(rel), nil
}

// resolveReference joins a relative reference onto baseDir.
func resolveReference(baseDir, href string) string {
	if filepath.IsAbs(href) {
		return href
	}
	return filepath.Join(baseDir, filepath.FromSlash(href))
}

// lookupMIME returns the media type for a file extension without parameters,
// or "" when the extension is unknown.
func lookupMIME(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mediaType
}

// isLocalReference reports whether href points at a file on disk.
// URLs, data URIs and fragment links are not local.
func isLocalReference(href string) bool {
	if href == "" {
		return false
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(href, "//") {
		return false
	}

	return !strings.HasPrefix(href, "#")
}

// isPathUnderDir checks if absPath is under dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath, cleanDir)
}
