// Package outline defines the boundary between the glyph atlas and the
// library that turns scalable font outlines into coverage bitmaps.
//
// An [Engine] inspects raw font file bytes ([Engine.Describe]) and opens a
// [Font] at a fixed pixel size ([Engine.Open]). A Font maps runes to glyph
// indices, reports line metrics and pairwise kerning, and renders a single
// glyph into a [Bitmap].
//
// # Engines
//
// Engines are looked up by name. The default engine, "sfnt", is built on
// golang.org/x/image/font/sfnt for outlines and metrics and
// golang.org/x/image/vector for 8-bit coverage, with font descriptions
// (family name, style, kerning tables) read through
// github.com/go-text/typesetting:
//
//	e := outline.Default()
//	desc, err := e.Describe(data)
//	if err != nil {
//	    return err
//	}
//	f, err := e.Open(data, 14)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	bm, err := f.Render(f.GlyphIndex('A'))
//
// Custom engines (for example a pre-rasterized bitmap source) can be made
// available with [RegisterEngine].
package outline
