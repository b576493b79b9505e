package glyphatlas

import (
	"fmt"

	"github.com/gogpu/glyphatlas/outline"
	"golang.org/x/image/math/fixed"
)

// outlineFamily loads faces from scalable outline fonts.
type outlineFamily struct {
	engine outline.Engine
}

// loadFace opens the family at size pixels per em and pre-renders the
// printable ASCII range and the replacement glyph.
func (k *outlineFamily) loadFace(fam *Family, size int) (*Face, error) {
	font, err := k.engine.Open(fam.data, size)
	if err != nil {
		return nil, err
	}

	r := fam.registry
	m := font.Metrics()
	height := m.Height.Round()
	baseLine := (m.Height - m.Ascender).Round()

	f := &Face{
		family:       fam,
		size:         size,
		height:       height,
		glyphYOffset: height - baseLine,
		hasKerning:   font.HasKerning(),
	}
	of := &outlineFace{
		face:   f,
		font:   font,
		engine: k.engine,
	}
	f.kind = of
	f.packer = newPacker(
		r.opts.atlas.PageWidth,
		r.opts.atlas.tierHeight(height),
		fmt.Sprintf("Font %s %d %d", fam.name, size, fam.style),
		r.scratch,
		r.backend,
		r.log,
	)

	pre := make([]rune, 0, '~'-' '+2)
	for c := ' '; c <= '~'; c++ {
		pre = append(pre, c)
	}
	pre = append(pre, r.opts.replacement)
	of.renderString(string(pre))

	return f, nil
}

func (k *outlineFamily) unloadFace(f *Face) {
	of, ok := f.kind.(*outlineFace)
	if !ok {
		return
	}
	if of.fallbackFont != nil {
		_ = of.fallbackFont.Close()
		of.fallbackFont = nil
	}
	if of.font != nil {
		_ = of.font.Close()
		of.font = nil
	}
}

func (k *outlineFamily) unloadFamily(fam *Family) {
	fam.data = nil
}

// outlineFace is the glyph source of a face loaded from outline data,
// with an optional fallback family consulted for missing characters.
type outlineFace struct {
	face   *Face
	font   outline.Font
	engine outline.Engine

	fallbackFamily *Family
	fallbackLoaded bool
	fallbackFont   outline.Font
}

func (of *outlineFace) allocGlyphs(first rune) *glyphPage {
	return new(glyphPage)
}

func (of *outlineFace) getGlyph(rec *Glyph, code rune) *Glyph {
	if rec.index == 0 {
		if rec.flags&searchedMain == 0 {
			rec.flags |= searchedMain
			rec.index = of.font.GlyphIndex(code)
			if rec.index != 0 {
				return rec
			}
		}

		if of.fallbackFamily != nil {
			if !of.fallbackLoaded {
				of.fallbackLoaded = true
				if !of.openFallback() {
					return nil
				}
			}
			if of.fallbackFont != nil && rec.flags&searchedFallback == 0 {
				rec.flags |= searchedFallback
				rec.index = of.fallbackFont.GlyphIndex(code)
				if rec.index != 0 {
					rec.flags |= fromFallback
				}
			}
		}
	}

	if rec.index == 0 {
		return nil
	}
	return rec
}

// openFallback opens the fallback family at the face size.
func (of *outlineFace) openFallback() bool {
	f := of.face
	log := f.family.registry.log()

	font, err := of.engine.Open(of.fallbackFamily.data, f.size)
	if err != nil {
		log.Warn("glyphatlas: failed to load fallback font face",
			"family", of.fallbackFamily.name, "err", err)
		return false
	}
	of.fallbackFont = font
	f.hasKerning = f.hasKerning || font.HasKerning()
	log.Debug("glyphatlas: fallback font face loaded",
		"family", f.family.name, "fallback", of.fallbackFamily.name, "size", f.size)
	return true
}

func (of *outlineFace) setFallback(fam *Family) {
	if of.fallbackFamily == nil {
		of.fallbackFamily = fam
	}
}

// source returns the font a resolved glyph comes from.
func (of *outlineFace) source(rec *Glyph) outline.Font {
	if rec.flags&fromFallback != 0 {
		return of.fallbackFont
	}
	return of.font
}

func (of *outlineFace) kerning(a, b rune) int {
	f := of.face
	g1 := f.GetGlyph(a)
	if g1 == nil || g1.index == 0 {
		return 0
	}
	g2 := f.GetGlyph(b)
	if g2 == nil || g2.index == 0 {
		return 0
	}
	if (g1.flags^g2.flags)&fromFallback != 0 {
		return 0
	}
	return of.source(g1).Kerning(g1.index, g2.index).Round()
}

func (of *outlineFace) renderString(s string) {
	f := of.face
	p := f.packer
	log := f.family.registry.log()

	for {
		tok := nextToken(s)
		s = s[tok.size:]
		if tok.kind == tokenEnd {
			p.finish()
			return
		}
		if tok.kind != tokenChar {
			continue
		}

		rec := f.GetGlyph(tok.char)
		if rec == nil || rec.Page != nil {
			continue
		}

		bm, err := of.source(rec).Render(rec.index)
		if err != nil {
			log.Warn("glyphatlas: failed to render glyph",
				"family", f.family.name, "char", tok.char, "err", err)
			bm = of.placeholder()
		}

		cellW, cellH := bm.Width+2, bm.Rows+2
		if cellW > p.width {
			log.Warn("glyphatlas: glyph width limit exceeded",
				"family", f.family.name, "char", tok.char, "width", bm.Width)
			cellW = p.width
		}
		if cellH > p.height {
			log.Warn("glyphatlas: glyph height limit exceeded",
				"family", f.family.name, "char", tok.char, "height", bm.Rows)
			cellH = p.height
		}

		c := p.place(cellW, cellH)

		w, h := cellW-2, cellH-2
		rec.Width = w
		rec.Height = h
		rec.XAdvance = bm.Advance.Round()
		rec.XOffset = bm.Left
		rec.YOffset = -bm.Top
		rec.Page = c.page
		rec.S1 = float32(c.x) / float32(p.width)
		rec.T1 = float32(c.y) / float32(p.height)
		rec.S2 = rec.S1 + float32(w)/float32(p.width)
		rec.T2 = rec.T1 + float32(h)/float32(p.height)

		p.scratch.composite(c.col, bm, w, h)
		p.commit(cellW)
	}
}

// placeholder returns a box-shaped bitmap for glyphs the engine cannot
// rasterize.
func (of *outlineFace) placeholder() *outline.Bitmap {
	f := of.face
	w := max(f.size/2, 1)
	h := max(f.glyphYOffset, 1)
	return &outline.Bitmap{
		Width:   w,
		Rows:    h,
		Mode:    outline.PixelModeNone,
		Top:     h,
		Advance: fixed.I(w + 2),
	}
}
