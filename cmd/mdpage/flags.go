package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds Markdown rendering flags.
type renderFlags struct {
	anchors        string
	dedupeAnchors  bool
	imagePolicy    string
	strictMIME     bool
	allowHTML      bool
	highlightStyle string
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style         string // Name, path, or CSS content
	template      string // Name or path
	assetPath     string // Override asset directory
	cssMode       string // inline or file
	strictMarkers bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	filename  string
	imageRoot string
	title     string
	render    renderFlags
	assets    assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.anchors, "anchors", "", "heading anchors: flat, hierarchical, hash")
	fs.BoolVar(&f.dedupeAnchors, "dedupe-anchors", false, "suffix repeated hash anchors")
	fs.StringVar(&f.imagePolicy, "image-policy", "", "images: inline, copy, none")
	fs.BoolVar(&f.strictMIME, "strict-mime", false, "fail on images of unknown type")
	fs.BoolVar(&f.allowHTML, "allow-html", false, "pass raw HTML through")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlight style (default: github)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
	fs.StringVarP(&f.template, "template", "t", "", "template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.cssMode, "css-mode", "", "stylesheet delivery: inline, file")
	fs.BoolVar(&f.strictMarkers, "strict-markers", false, "fail when the template lacks a marker")
}

// newBuildFlagSet registers every build flag on a new FlagSet bound to f.
// Shared by flag parsing and shell completion.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: dist)")
	fs.StringVarP(&f.filename, "filename", "f", "", "page base name (default: index)")
	fs.StringVarP(&f.imageRoot, "images", "i", "", "image file or directory")
	fs.StringVar(&f.title, "title", "", "page title (default: front matter or first H1)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage goes to usageOut on --help or a parse error.
func parseBuildFlags(args []string, usageOut io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printBuildUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
