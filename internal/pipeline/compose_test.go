package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeCSS(tt.input)
			if got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCompose - Marker substitution
// ---------------------------------------------------------------------------

func TestCompose(t *testing.T) {
	t.Parallel()

	const tmpl = "<html><head><style>/*style*/</style></head><body><!-- content --></body></html>"

	t.Run("single substitution of each marker", func(t *testing.T) {
		t.Parallel()

		body := "<h1 id='item1'>Hi</h1>"
		got, err := Compose(tmpl, body, "p{margin:0}", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}

		want := "<html><head><style>p{margin:0}</style></head><body><h1 id='item1'>Hi</h1></body></html>"
		if got.HTML != want {
			t.Errorf("Compose() = %q, want %q", got.HTML, want)
		}
		if strings.Contains(got.HTML, ContentMarker) || strings.Contains(got.HTML, StyleMarker) {
			t.Error("markers still present after composition")
		}
		if len(got.Missing) != 0 {
			t.Errorf("Missing = %v, want none", got.Missing)
		}
	})

	t.Run("only first marker replaced", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<!-- content -->|<!-- content -->", "X", "", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "X|<!-- content -->" {
			t.Errorf("Compose() = %q", got.HTML)
		}
	})

	t.Run("body containing marker text is not rescanned", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<style>/*style*/</style><!-- content -->", "/*style*/", "a{}", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "<style>a{}</style>/*style*/" {
			t.Errorf("Compose() = %q", got.HTML)
		}
	})

	t.Run("style marker inside body is left alone", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<body><!-- content --><style>/*style*/</style></body>", "<pre><code>/*style*/</code></pre>", "h1{color:red}", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		want := "<body><pre><code>/*style*/</code></pre><style>h1{color:red}</style></body>"
		if got.HTML != want {
			t.Errorf("Compose() = %q, want %q", got.HTML, want)
		}
		if len(got.Missing) != 0 {
			t.Errorf("Missing = %v, want none", got.Missing)
		}
	})

	t.Run("style marker only in body is reported missing", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<body><!-- content --></body>", "/*style*/", "a{}", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "<body>/*style*/</body>" {
			t.Errorf("Compose() = %q", got.HTML)
		}
		if len(got.Missing) != 1 || got.Missing[0] != StyleMarker {
			t.Errorf("Missing = %v, want [%s]", got.Missing, StyleMarker)
		}
	})

	t.Run("style marker before content marker", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<style>/*style*/</style><!-- content -->", "<!-- content -->", "b{}", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "<style>b{}</style><!-- content -->" {
			t.Errorf("Compose() = %q", got.HTML)
		}
	})

	t.Run("missing markers reported", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<html></html>", "body", "css", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "<html></html>" {
			t.Errorf("template changed: %q", got.HTML)
		}
		if len(got.Missing) != 2 {
			t.Errorf("Missing = %v, want both markers", got.Missing)
		}
	})

	t.Run("missing marker is an error when strict", func(t *testing.T) {
		t.Parallel()

		_, err := Compose("<style>/*style*/</style>", "body", "", true)
		if !errors.Is(err, ErrMarkerNotFound) {
			t.Errorf("Compose() error = %v, want ErrMarkerNotFound", err)
		}
		var markerErr *MarkerError
		if !errors.As(err, &markerErr) || len(markerErr.Missing) != 1 || markerErr.Missing[0] != ContentMarker {
			t.Errorf("error = %#v, want *MarkerError listing %s", err, ContentMarker)
		}
	})

	t.Run("css cannot close style block", func(t *testing.T) {
		t.Parallel()

		got, err := Compose(tmpl, "", "</style><script>", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if strings.Contains(got.HTML, "</style><script>") {
			t.Errorf("unsanitized CSS in output: %q", got.HTML)
		}
	})

	t.Run("compacts carriage-return tab pairs", func(t *testing.T) {
		t.Parallel()

		got, err := Compose("<body>\r\t<!-- content --></body>", "x", "", false)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got.HTML != "<body>x</body>" {
			t.Errorf("Compose() = %q", got.HTML)
		}
	})
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	got := NormalizeLineEndings("a\r\nb\rc\n")
	if got != "a\nb\nc\n" {
		t.Errorf("NormalizeLineEndings() = %q", got)
	}
}

func TestSetTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		title string
		want  string
	}{
		{"replaces text", "<head><title>Document</title></head>", "Guide", "<head><title>Guide</title></head>"},
		{"escapes markup", "<title>x</title>", "A & <B>", "<title>A &amp; &lt;B&gt;</title>"},
		{"first element only", "<title>a</title><title>b</title>", "c", "<title>c</title><title>b</title>"},
		{"case insensitive", "<TITLE>a</TITLE>", "c", "<title>c</title>"},
		{"no title element", "<head></head>", "c", "<head></head>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SetTitle(tt.doc, tt.title); got != tt.want {
				t.Errorf("SetTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
