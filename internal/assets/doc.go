// Package assets provides the page templates and CSS styles used to build
// the HTML output.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in page and style)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when the asset is not found, so a custom directory only
// needs to contain the files it overrides.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # CSS styles (e.g., markdown.css)
//	└── templates/
//	    └── {name}.html    # Page templates (e.g., page.html)
//
// A page template must contain the content marker "<!-- content -->" and
// should contain the style marker "/*style*/" inside a <style> element.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
