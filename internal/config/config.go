package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-mdpage/internal/fileutil"
	"github.com/alnah/go-mdpage/internal/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxFilenameLength = 255  // NAME_MAX
	MaxNameLength     = 100  // style, template and highlight names
)

// CSS delivery modes.
const (
	CSSModeInline = "inline"
	CSSModeFile   = "file"
)

// Default values applied by DefaultConfig.
const (
	DefaultOutputDir = "dist"
	DefaultFilename  = "index"
)

// Config holds all configuration for a page build.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Render   RenderConfig   `yaml:"render"`
	Template TemplateConfig `yaml:"template"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines the Markdown source and its images.
type InputConfig struct {
	Path      string `yaml:"path"`      // Markdown file (CLI argument wins)
	ImageRoot string `yaml:"imageRoot"` // File or directory holding referenced images
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Output directory (default: dist)
	Filename string `yaml:"filename"` // Base name without .html (default: index)
}

// RenderConfig defines how Markdown is turned into HTML.
type RenderConfig struct {
	Anchors        string `yaml:"anchors"`        // flat, hierarchical, hash
	DedupeAnchors  bool   `yaml:"dedupeAnchors"`  // Suffix repeated hash anchors
	Images         string `yaml:"images"`         // none, inline, copy (empty = by image root)
	StrictMIME     bool   `yaml:"strictMime"`     // Unknown image types are errors
	AllowHTML      bool   `yaml:"allowHtml"`      // Pass raw HTML through
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name (default: github)
}

// TemplateConfig defines the page template.
type TemplateConfig struct {
	Name          string `yaml:"name"`          // templates/{name}.html (default: page)
	StrictMarkers bool   `yaml:"strictMarkers"` // Missing markers are errors
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // styles/{name}.css (default: markdown)
	Mode  string `yaml:"mode"`  // inline or file (default: inline)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks enum values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.path", c.Input.Path, MaxPathLength},
		{"input.imageRoot", c.Input.ImageRoot, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxFilenameLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxNameLength},
		{"template.name", c.Template.Name, MaxNameLength},
		{"css.style", c.CSS.Style, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if strings.ContainsAny(c.Output.Filename, `/\`) {
		return fmt.Errorf("%w: output.filename: %q must not contain path separators", ErrInvalidValue, c.Output.Filename)
	}

	if _, err := pipeline.ParseAnchorPolicy(c.Render.Anchors); err != nil {
		return fmt.Errorf("%w: render.anchors: %v", ErrInvalidValue, err)
	}
	if _, err := pipeline.ParseImagePolicy(c.Render.Images); err != nil {
		return fmt.Errorf("%w: render.images: %v", ErrInvalidValue, err)
	}
	if c.Render.HighlightStyle != "" && !slices.Contains(pipeline.HighlightStyles(), strings.ToLower(c.Render.HighlightStyle)) {
		return fmt.Errorf("%w: render.highlightStyle: unknown style %q", ErrInvalidValue, c.Render.HighlightStyle)
	}

	switch strings.ToLower(c.CSS.Mode) {
	case "", CSSModeInline, CSSModeFile:
	default:
		return fmt.Errorf("%w: css.mode: %q (must be inline or file)", ErrInvalidValue, c.CSS.Mode)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: DefaultOutputDir, Filename: DefaultFilename},
		Render: RenderConfig{Anchors: string(pipeline.DefaultAnchorPolicy), HighlightStyle: pipeline.DefaultHighlightStyle},
		CSS:    CSSConfig{Mode: CSSModeInline},
	}
}

// NotFoundError lists the locations searched for a config file.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeStrict unmarshals YAML, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	if len(data) > MaxConfigSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdpage/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdpage", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}
