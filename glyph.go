package glyphatlas

import (
	"github.com/gogpu/glyphatlas/outline"
	"github.com/gogpu/gpucontext"
)

// Printable character range served by the glyph cache.
const (
	MinGlyphCode rune = 0x20
	MaxGlyphCode rune = 0xFFFF
)

// glyphFlags track how far the lookup of a character has progressed.
type glyphFlags uint8

const (
	searchedMain glyphFlags = 1 << iota
	searchedFallback
	fromFallback
)

// Glyph is a cached glyph record.
//
// Metrics and texture coordinates are valid once Page is non-nil. A Glyph
// returned by Face.GetGlyph stays at the same address for the lifetime of
// the face.
type Glyph struct {
	// Width and Height are the bitmap dimensions in pixels.
	Width  int
	Height int

	// XAdvance is the horizontal pen advance in pixels.
	XAdvance int

	// XOffset and YOffset position the bitmap relative to the pen.
	// YOffset is negative for glyphs extending above the baseline.
	XOffset int
	YOffset int

	// S1, T1, S2 and T2 are the normalized texture coordinates of the
	// bitmap inside Page.
	S1, T1, S2, T2 float32

	// Page is the atlas page holding the bitmap, or nil until rendered.
	Page *Page

	flags glyphFlags
	index outline.GlyphIndex
}

// Rendered reports whether the glyph has been rasterized into an atlas page.
func (g *Glyph) Rendered() bool {
	return g.Page != nil
}

// FromFallback reports whether the glyph was resolved from the fallback face.
func (g *Glyph) FromFallback() bool {
	return g.flags&fromFallback != 0
}

// Index returns the outline glyph index, or 0 if unresolved.
func (g *Glyph) Index() outline.GlyphIndex {
	return g.index
}

// Page is an atlas texture page.
// Pages are append-only: glyph rectangles never move once packed.
type Page struct {
	// Name identifies the page: "Font <family> <size> <style> <n>".
	Name string

	// Width and Height are the page dimensions in pixels.
	Width  int
	Height int

	// Texture is the backend texture holding the page pixels.
	Texture gpucontext.Texture
}
