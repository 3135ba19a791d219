package hints

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     []string
		notWant  string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"site.yaml", "site.yml", filepath.Join("home", "u", ".config", "go-mdpage", "site.yaml")},
			want:     []string{"--config", "or create", "go-mdpage"},
		},
		{
			name:     "no user path only suggests flag",
			searched: []string{"site.yaml"},
			want:     []string{"--config"},
			notWant:  "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q missing %q", hint, w)
				}
			}
			if tt.notWant != "" && strings.Contains(hint, tt.notWant) {
				t.Errorf("hint %q should not contain %q", hint, tt.notWant)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}

	got := ForStyleNotFound([]string{"markdown", "plain"})
	if got != "\n  hint: available: markdown, plain" {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

func TestForHighlightStyle_Capped(t *testing.T) {
	t.Parallel()

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("s%02d", i)
	}

	got := ForHighlightStyle(names)
	if !strings.HasSuffix(got, ", ...") {
		t.Errorf("long list not elided: %q", got)
	}
	if strings.Contains(got, "s19") {
		t.Errorf("elided name present: %q", got)
	}
}

func TestForImageRead(t *testing.T) {
	t.Parallel()

	if got := ForImageRead(""); !strings.Contains(got, "Markdown file's directory") {
		t.Errorf("ForImageRead(\"\") = %q", got)
	}

	root := filepath.Join("docs", "images")
	if got := ForImageRead(root); !strings.Contains(got, "docs") || strings.Contains(got, "images") {
		t.Errorf("ForImageRead(%q) = %q, want parent dir", root, got)
	}
}

func TestForMissingMarkers(t *testing.T) {
	t.Parallel()

	if got := ForMissingMarkers(nil); got != "" {
		t.Errorf("ForMissingMarkers(nil) = %q, want empty", got)
	}

	got := ForMissingMarkers([]string{"<!-- content -->", "/*style*/"})
	if !strings.Contains(got, "<!-- content --> and /*style*/") {
		t.Errorf("ForMissingMarkers() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"output":   ForOutputDirectory(),
		"overlap":  ForOutputOverlap(),
		"template": ForTemplateNotFound(),
		"image":    ForImagePath(),
		"mime":     ForUnknownMIME(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint %q lacks prefix", name, hint)
		}
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
