package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// - applyEnvConfig: set variables override the config file, unset ones
//   leave it alone.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-mdpage/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MDPAGE_CONFIG", "/path/to/site.yaml")
	t.Setenv("MDPAGE_STYLE", "plain")
	t.Setenv("MDPAGE_OUTPUT_DIR", "/srv/www")
	t.Setenv("MDPAGE_ANCHORS", "hash")
	t.Setenv("MDPAGE_IMAGE_POLICY", "copy")

	cfg := loadEnvConfig()

	checks := map[string][2]string{
		"ConfigPath":  {cfg.ConfigPath, "/path/to/site.yaml"},
		"Style":       {cfg.Style, "plain"},
		"OutputDir":   {cfg.OutputDir, "/srv/www"},
		"Anchors":     {cfg.Anchors, "hash"},
		"ImagePolicy": {cfg.ImagePolicy, "copy"},
		"Template":    {cfg.Template, ""},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDPAGE_STYLE", "plain")
	t.Setenv("MDPAGE_ANCHOR", "hash")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "MDPAGE_ANCHOR ") {
		t.Errorf("typo not reported: %q", out)
	}
	if strings.Contains(out, "MDPAGE_STYLE") {
		t.Errorf("known variable reported: %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.CSS.Style = "from-file"
	cfg.Template.Name = "custom"

	applyEnvConfig(&envConfig{
		Style:     "plain",
		OutputDir: "public",
		CSSMode:   "file",
	}, cfg)

	if cfg.CSS.Style != "plain" {
		t.Errorf("CSS.Style = %q, want env value", cfg.CSS.Style)
	}
	if cfg.Output.Dir != "public" {
		t.Errorf("Output.Dir = %q, want public", cfg.Output.Dir)
	}
	if cfg.CSS.Mode != "file" {
		t.Errorf("CSS.Mode = %q, want file", cfg.CSS.Mode)
	}
	if cfg.Template.Name != "custom" {
		t.Errorf("Template.Name = %q, unset env must not override", cfg.Template.Name)
	}
}
