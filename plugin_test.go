package mdpage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPlugin(t *testing.T) {
	t.Parallel()

	t.Run("missing path fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := NewPlugin(PluginOptions{})
		if !errors.Is(err, ErrMissingPath) {
			t.Errorf("NewPlugin() error = %v, want ErrMissingPath", err)
		}
	})

	t.Run("default filename", func(t *testing.T) {
		t.Parallel()

		p, err := NewPlugin(PluginOptions{Path: "doc.md"})
		if err != nil {
			t.Fatalf("NewPlugin() error = %v", err)
		}
		if p.Filename() != DefaultPluginFilename {
			t.Errorf("Filename() = %q, want %q", p.Filename(), DefaultPluginFilename)
		}
	})
}

func TestPlugin_Emit(t *testing.T) {
	t.Parallel()

	_, source, _ := buildFixture(t, "# Intro\n## Part\n")

	p, err := NewPlugin(PluginOptions{Path: source, Filename: "guide.html"})
	if err != nil {
		t.Fatalf("NewPlugin() error = %v", err)
	}

	assets := AssetMap{}
	if err := p.Emit(context.Background(), assets); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}
	page, ok := assets["guide.html"]
	if !ok {
		t.Fatal("page not stored under guide.html")
	}
	if page.Size() != len(page.Source()) {
		t.Errorf("Size() = %d, len(Source()) = %d", page.Size(), len(page.Source()))
	}
	if !strings.Contains(page.Source(), "<h1 id='item1'>Intro</h1>") {
		t.Error("page missing anchored heading")
	}
}

func TestPlugin_EmitCopyPolicy(t *testing.T) {
	t.Parallel()

	_, source, images := buildFixture(t, "![a](images/a.png)\n")

	p, err := NewPlugin(PluginOptions{
		Path:      source,
		ImageRoot: images,
		Converter: mustConverter(t, WithImagePolicy(ImagesCopy), WithCSSMode(CSSFile)),
	})
	if err != nil {
		t.Fatalf("NewPlugin() error = %v", err)
	}

	assets := AssetMap{}
	if err := p.Emit(context.Background(), assets); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	for _, key := range []string{"index.html", "css/markdown.css", "images/a.png", "images/sub/b.png"} {
		if _, ok := assets[key]; !ok {
			t.Errorf("asset %q missing", key)
		}
	}
	if got := assets["images/a.png"].Source(); got != string(pngBytes) {
		t.Error("image asset content differs from source")
	}
}

func TestPlugin_EmitErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("nil asset map", func(t *testing.T) {
		t.Parallel()

		p, _ := NewPlugin(PluginOptions{Path: filepath.Join(dir, "doc.md")})
		if err := p.Emit(context.Background(), nil); !errors.Is(err, ErrNilAssetMap) {
			t.Errorf("Emit() error = %v, want ErrNilAssetMap", err)
		}
	})

	t.Run("source missing", func(t *testing.T) {
		t.Parallel()

		p, _ := NewPlugin(PluginOptions{Path: filepath.Join(dir, "doc.md")})
		assets := AssetMap{}
		if err := p.Emit(context.Background(), assets); !errors.Is(err, ErrSourceNotFound) {
			t.Errorf("Emit() error = %v, want ErrSourceNotFound", err)
		}
		if len(assets) != 0 {
			t.Errorf("assets = %v, want none on failure", assets)
		}
	})
}
