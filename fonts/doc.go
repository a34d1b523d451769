// Package fonts provides the font sources used by the forms widgets.
//
// Two families of fonts are supported, mirroring the two measurement
// strategies of the widget text engine:
//
//   - Vector fonts ([VectorFace]) are OpenType faces parsed with
//     golang.org/x/image/font/opentype. A [Registry] resolves CSS-style font
//     strings such as "14px Go" or "bold 20px Go Mono" to faces, and can switch
//     measurement to HarfBuzz shaping through go-text/typesetting.
//   - Bitmap fonts ([BitmapFont]) are glyph tables with per-glyph advances and
//     pairwise kerning, loaded from AngelCode BMFont files (text or XML) or
//     built from an x/image basicfont face.
//
// The package does no caching of string widths; the widget layer keeps its own
// per-character caches keyed by font signature.
package fonts
