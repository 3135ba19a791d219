package mdpage

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings collected from options.
type converterConfig struct {
	assetPath      string
	styleInput     string // name, file path, or raw CSS
	templateInput  string // name or file path
	anchors        string
	dedupeAnchors  bool
	images         string // empty: inline with an image root, none without
	strictMIME     bool
	strictMarkers  bool
	allowHTML      bool
	highlightStyle string
	cssMode        string
}

// WithAssetPath sets a directory of custom styles/ and templates/.
// Assets missing from it fall back to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom AssetLoader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithStyle sets the page stylesheet.
// The value may be a style name ("markdown"), a path to a .css file, or
// CSS content (detected by the presence of "{").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTemplate sets the page template by name or file path.
func WithTemplate(template string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = template
	}
}

// WithAnchorPolicy sets the heading anchor policy.
func WithAnchorPolicy(policy AnchorPolicy) Option {
	return func(c *Converter) {
		c.cfg.anchors = string(policy)
	}
}

// WithDedupeAnchors suffixes repeated hash anchors with -1, -2, ...
func WithDedupeAnchors(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.dedupeAnchors = enabled
	}
}

// WithImagePolicy sets the image policy. Without it, images are inlined
// when Input.ImageRoot is set and left unchanged otherwise.
func WithImagePolicy(policy ImagePolicy) Option {
	return func(c *Converter) {
		c.cfg.images = string(policy)
	}
}

// WithStrictMIME makes images of unknown type an error instead of a
// "data:;base64," URI.
func WithStrictMIME(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.strictMIME = enabled
	}
}

// WithStrictMarkers makes a template without its markers an error instead
// of a warning.
func WithStrictMarkers(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.strictMarkers = enabled
	}
}

// WithAllowHTML passes raw HTML in the Markdown through to the page.
// Raw <img> elements then follow the image policy too.
func WithAllowHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.allowHTML = enabled
	}
}

// WithHighlightStyle sets the chroma style for fenced code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithCSSMode sets where the stylesheet is delivered.
func WithCSSMode(mode CSSMode) Option {
	return func(c *Converter) {
		c.cfg.cssMode = string(mode)
	}
}
