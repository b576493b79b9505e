package glyphatlas

import "github.com/gogpu/glyphatlas/backend"

// faceKind is the glyph source behind a Face.
type faceKind interface {
	// allocGlyphs returns a fresh table page for codes [first, first+256).
	allocGlyphs(first rune) *glyphPage

	// getGlyph resolves the glyph index of rec, searching the sources at
	// most once, and returns rec or nil on a miss.
	getGlyph(rec *Glyph, code rune) *Glyph

	// renderString rasterizes and packs every glyph of s that has no page.
	renderString(s string)
}

// faceKerner is implemented by face kinds that can kern.
type faceKerner interface {
	kerning(a, b rune) int
}

// fallbackSetter is implemented by face kinds that accept a fallback family.
type fallbackSetter interface {
	setFallback(fam *Family)
}

// Face is a font family loaded at one pixel size.
//
// A Face caches glyph records, packs rendered glyphs into its own atlas
// pages, and draws text through the registry backend. Faces are owned by
// their Registry and become unusable after FreeFonts or Shutdown.
type Face struct {
	family       *Family
	size         int
	height       int
	glyphYOffset int
	hasKerning   bool

	glyphs glyphTable
	packer *packer
	kind   faceKind
}

// Family returns the family the face was loaded from.
func (f *Face) Family() *Family {
	return f.family
}

// Size returns the pixel size the face was loaded at.
func (f *Face) Size() int {
	if f == nil {
		return 0
	}
	return f.size
}

// Height returns the line height in pixels.
func (f *Face) Height() int {
	if f == nil {
		return 0
	}
	return f.height
}

// HasKerning reports whether pen advances include pairwise kerning.
func (f *Face) HasKerning() bool {
	return f.hasKerning
}

// Pages returns the atlas pages allocated so far. The last page is the
// one currently being filled.
func (f *Face) Pages() []*Page {
	return f.packer.pages
}

// GetGlyph returns the glyph record for code, or nil if code is outside
// the printable range or no loaded face provides it.
// The record may not be rendered yet; see RenderString.
func (f *Face) GetGlyph(code rune) *Glyph {
	rec := f.glyphs.lookup(code, f.kind.allocGlyphs)
	if rec == nil {
		return nil
	}
	return f.kind.getGlyph(rec, code)
}

// RenderString rasterizes every glyph of s that is not in an atlas page
// yet. Colour escapes are skipped; characters without a glyph are ignored.
func (f *Face) RenderString(s string) {
	f.kind.renderString(s)
}

// Kerning returns the kerning adjustment in pixels between a and b.
// It is zero when the face does not kern, when either character is
// missing, or when exactly one of them comes from the fallback face.
func (f *Face) Kerning(a, b rune) int {
	if !f.hasKerning {
		return 0
	}
	k, ok := f.kind.(faceKerner)
	if !ok {
		return 0
	}
	return k.kerning(a, b)
}

// Touch re-announces the face's page textures to backends that evict
// unreferenced textures.
func (f *Face) Touch() {
	t, ok := f.family.registry.backend.(backend.Toucher)
	if !ok {
		return
	}
	f.packer.touch(t)
}
