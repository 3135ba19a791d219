package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-mdpage/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "MDPAGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDPAGE_CONFIG: config file name or path
	Style          string // MDPAGE_STYLE: CSS style name or path
	Template       string // MDPAGE_TEMPLATE: template name or path
	OutputDir      string // MDPAGE_OUTPUT_DIR: output directory
	ImageRoot      string // MDPAGE_IMAGE_ROOT: image file or directory
	ImagePolicy    string // MDPAGE_IMAGE_POLICY: none, inline, copy
	Anchors        string // MDPAGE_ANCHORS: flat, hierarchical, hash
	CSSMode        string // MDPAGE_CSS_MODE: inline, file
	HighlightStyle string // MDPAGE_HIGHLIGHT_STYLE: chroma style name
	AssetPath      string // MDPAGE_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MDPAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPAGE_CONFIG":          true,
	"MDPAGE_STYLE":           true,
	"MDPAGE_TEMPLATE":        true,
	"MDPAGE_OUTPUT_DIR":      true,
	"MDPAGE_IMAGE_ROOT":      true,
	"MDPAGE_IMAGE_POLICY":    true,
	"MDPAGE_ANCHORS":         true,
	"MDPAGE_CSS_MODE":        true,
	"MDPAGE_HIGHLIGHT_STYLE": true,
	"MDPAGE_ASSET_PATH":      true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:     os.Getenv("MDPAGE_CONFIG"),
		Style:          os.Getenv("MDPAGE_STYLE"),
		Template:       os.Getenv("MDPAGE_TEMPLATE"),
		OutputDir:      os.Getenv("MDPAGE_OUTPUT_DIR"),
		ImageRoot:      os.Getenv("MDPAGE_IMAGE_ROOT"),
		ImagePolicy:    os.Getenv("MDPAGE_IMAGE_POLICY"),
		Anchors:        os.Getenv("MDPAGE_ANCHORS"),
		CSSMode:        os.Getenv("MDPAGE_CSS_MODE"),
		HighlightStyle: os.Getenv("MDPAGE_HIGHLIGHT_STYLE"),
		AssetPath:      os.Getenv("MDPAGE_ASSET_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MDPAGE_* variables.
// Helps catch typos like MDPAGE_ANCHOR instead of MDPAGE_ANCHORS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment variables over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.CSS.Style, env.Style)
	set(&cfg.CSS.Mode, env.CSSMode)
	set(&cfg.Template.Name, env.Template)
	set(&cfg.Output.Dir, env.OutputDir)
	set(&cfg.Input.ImageRoot, env.ImageRoot)
	set(&cfg.Render.Images, env.ImagePolicy)
	set(&cfg.Render.Anchors, env.Anchors)
	set(&cfg.Render.HighlightStyle, env.HighlightStyle)
	set(&cfg.Assets.BasePath, env.AssetPath)
}
