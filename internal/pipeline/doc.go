// Package pipeline implements the Markdown-to-HTML page pipeline.
//
// The stages, in order:
//   - Front matter splitting (per-document overrides)
//   - Markdown to HTML conversion via Goldmark, with heading and image
//     node renderers replacing the defaults
//   - Raw <img> rewriting for HTML passed through from the source
//   - Template composition (content and style markers)
//
// Heading anchors come from an AnchorAssigner created fresh for every
// conversion. Image sources come from an ImageResolver chosen by policy:
// inline data URIs, paths into a copied asset tree, or unchanged.
//
// Writing files is left to the root mdpage package.
package pipeline
