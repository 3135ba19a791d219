// Package mdpage converts a Markdown document into a static HTML page.
//
// # Quick Start
//
// Build a page from a file into an output directory:
//
//	res, err := mdpage.Build(ctx, mdpage.BuildOptions{
//	    Source:    "README.md",
//	    OutputDir: "dist",
//	    ImageRoot: "images",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PagePath) // dist/index.html
//
// Or convert in memory:
//
//	conv, err := mdpage.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, mdpage.Input{Markdown: "# Hello\n\nWorld"})
//
// # Conversion Pipeline
//
//  1. Front matter (title, anchors, images) is split off the source
//  2. Markdown is rendered with Goldmark; headings get anchor ids and
//     local images are inlined or relocated
//  3. The body and the stylesheet replace the template's <!-- content -->
//     and /*style*/ markers
//  4. Build stages the page, its stylesheet and copied images next to the
//     output directory and swaps them into place
//
// # Anchors
//
// Three policies are available through WithAnchorPolicy:
//
//   - AnchorsFlat: item1, item2, ... in document order (default)
//   - AnchorsHierarchical: item1 for a level-1 heading, item1-1 for the
//     level-2 headings below it; deeper headings get no id
//   - AnchorsHash: standard base64 of the heading text
//
// The built-in template builds its sidebar table of contents from the ids
// of the level-1 headings.
//
// # Images
//
// WithImagePolicy selects ImagesInline (data: URI), ImagesCopy (the image
// root is copied next to the page and src is rewritten to match) or
// ImagesNone. Remote URLs, data: URIs and fragment links are never touched.
//
// # Build Pipelines
//
// Plugin adds the page to an AssetMap owned by a surrounding build instead
// of writing files:
//
//	p, err := mdpage.NewPlugin(mdpage.PluginOptions{Path: "docs/guide.md"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = p.Emit(ctx, assets) // assets["index.html"]
//
// # Error Handling
//
// Errors are sentinels checked with errors.Is:
//
//	if errors.Is(err, mdpage.ErrSourceNotFound) {
//	    // wrong path
//	}
//
// Configuration problems (ErrMissingPath, ErrInvalidAnchorPolicy,
// ErrStyleNotFound, ...) are reported before any output is written.
package mdpage
