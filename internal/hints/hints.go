// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// maxListed caps how many names a hint enumerates.
const maxListed = 8

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the go-mdpage config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdpage/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check the parent of --output exists and is writable")
}

// ForOutputOverlap returns hints for an output directory holding the inputs.
func ForOutputOverlap() string {
	return format("the output directory is replaced on every build; point --output at a separate directory")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + joinCapped(available))
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound() string {
	return format("custom templates live in <asset-path>/templates/<name>.html")
}

// ForHighlightStyle returns hints for unknown chroma style names.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("try one of: " + joinCapped(available))
}

// ForImagePath returns hints for an image root that does not exist.
func ForImagePath() string {
	return format("--images must name an existing file or directory")
}

// ForImageRead returns hints for unreadable image references.
// imageRoot is empty when the source directory is the base.
func ForImageRead(imageRoot string) string {
	if imageRoot == "" {
		return format("image paths resolve relative to the Markdown file's directory")
	}
	return format("image paths resolve relative to " + filepath.Dir(filepath.Clean(imageRoot)))
}

// ForUnknownMIME returns hints for images whose type cannot be inferred.
func ForUnknownMIME() string {
	return format("use a known image extension (.png, .jpg, .gif, .svg, .webp) or drop --strict-mime")
}

// ForMissingMarkers returns hints for templates lacking substitution markers.
func ForMissingMarkers(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return format("add " + strings.Join(missing, " and ") + " to the template or drop --strict-markers")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// joinCapped joins names, eliding past maxListed.
func joinCapped(names []string) string {
	if len(names) <= maxListed {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxListed], ", ") + ", ..."
}
