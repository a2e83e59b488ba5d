// Package render serializes live document trees to HTML.
//
// The renderer walks the committed tree produced by the reconciler and
// emits HTML5 output:
//
//   - Text content and attribute values are escaped
//   - Void elements (input, br, img, ...) render without closing tags
//   - Reconciler marks render as nothing
//   - Shadow roots render declaratively as
//     <template shadowrootmode="open">
//   - Attributes and style declarations emit in sorted order, making
//     output deterministic
//
// For full documents, RenderPage wraps a body tree with the doctype,
// head metadata, and asset references. StreamRenderer flushes the head
// early so clients fetch assets while the body renders.
package render
