package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrFrontMatter indicates a malformed front matter block.
var ErrFrontMatter = errors.New("invalid front matter")

// FrontMatter holds per-document overrides read from a YAML (---) or
// TOML (+++) block at the top of the Markdown source.
type FrontMatter struct {
	Title   string `yaml:"title" toml:"title"`
	Anchors string `yaml:"anchors" toml:"anchors"` // flat, hierarchical, hash
	Images  string `yaml:"images" toml:"images"`   // none, inline, copy
}

// IsZero reports whether no field was set.
func (f FrontMatter) IsZero() bool {
	return f == FrontMatter{}
}

// SplitFrontMatter separates the front matter from the Markdown body.
// Content without front matter is returned unchanged with a zero FrontMatter.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	return meta, string(body), nil
}
