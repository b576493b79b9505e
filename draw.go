package glyphatlas

import (
	"image/color"
)

// glyphFor returns the glyph drawn for code, substituting the replacement
// glyph for characters no face provides, and makes sure it is rendered.
// rest is the remaining text starting at code, or empty; rendering it
// packs the upcoming glyphs in the same pass.
func (f *Face) glyphFor(code rune, rest string) (*Glyph, rune) {
	g := f.GetGlyph(code)
	if g == nil {
		code = f.family.registry.opts.replacement
		g = f.GetGlyph(code)
		if g == nil {
			return nil, code
		}
		rest = string(code)
	}
	if g.Page == nil {
		if rest == "" {
			rest = string(code)
		}
		f.RenderString(rest)
	}
	return g, code
}

// StringWidth returns the width in pixels of s up to the first newline or
// maxLen bytes, whichever comes first. A maxLen of 0 means no limit.
// Colour escapes and control characters take no space.
func (f *Face) StringWidth(s string, maxLen int) int {
	if f == nil {
		return 0
	}
	var width int
	var prev rune
	for i := 0; i < len(s) && s[i] != '\n'; {
		if maxLen > 0 && i >= maxLen {
			break
		}
		tok := nextToken(s[i:])
		rest := s[i:]
		i += tok.size
		if tok.kind != tokenChar || tok.char < ' ' {
			continue
		}

		g, code := f.glyphFor(tok.char, rest)
		if g == nil {
			continue
		}
		if prev != 0 && f.hasKerning {
			width += f.Kerning(prev, code)
		}
		width += g.XAdvance
		prev = code
	}
	return width
}

// StrlenForWidth returns the length in bytes of the longest prefix of s
// that fits in maxWidth pixels, stopping at the first newline.
// A maxWidth of 0 means no limit.
func (f *Face) StrlenForWidth(s string, maxWidth int) int {
	if f == nil {
		return 0
	}
	var width int
	var prev rune
	i := 0
	for i < len(s) {
		tok := nextToken(s[i:])
		if tok.kind == tokenChar && tok.char == '\n' {
			break
		}
		if tok.kind != tokenChar || tok.char < ' ' {
			i += tok.size
			continue
		}

		g, code := f.glyphFor(tok.char, s[i:])
		if g == nil {
			i += tok.size
			continue
		}
		advance := g.XAdvance
		if prev != 0 && f.hasKerning {
			advance += f.Kerning(prev, code)
		}
		if maxWidth > 0 && width+advance > maxWidth {
			break
		}
		width += advance
		prev = code
		i += tok.size
	}
	return i
}

// DrawRawChar draws code with its pen position at (x, y), y being the top
// of the line. Space and control characters draw nothing.
func (f *Face) DrawRawChar(x, y int, code rune, c color.Color) {
	if f == nil || code <= ' ' {
		return
	}
	g, code := f.glyphFor(code, "")
	if g == nil {
		return
	}
	if y <= -f.height {
		return // totally off screen
	}
	f.drawGlyph(x, y, g, c)
}

func (f *Face) drawGlyph(x, y int, g *Glyph, c color.Color) {
	if g.Page == nil {
		return
	}
	f.family.registry.backend.DrawStretchPic(g.Page.Texture,
		x+g.XOffset, y+f.glyphYOffset+g.YOffset, g.Width, g.Height,
		g.S1, g.T1, g.S2, g.T2, c)
}

// DrawClampChar draws code like DrawRawChar, clipped to the inclusive
// rectangle [xmin, xmax] x [ymin, ymax].
func (f *Face) DrawClampChar(x, y int, code rune, xmin, ymin, xmax, ymax int, c color.Color) {
	if f == nil || code <= ' ' || xmax <= xmin || ymax <= ymin {
		return
	}
	g, _ := f.glyphFor(code, "")
	if g == nil || g.Page == nil || g.Width == 0 || g.Height == 0 {
		return
	}

	x += g.XOffset
	y += f.glyphYOffset + g.YOffset
	x2, y2 := x+g.Width, y+g.Height
	if x > xmax || y > ymax || x2 <= xmin || y2 <= ymin {
		return
	}

	xmax++
	ymax++

	s1, t1, s2, t2 := float32(0), float32(0), float32(1), float32(1)
	if x < xmin {
		s1 = float32(xmin-x) / float32(g.Width)
		x = xmin
	}
	if y < ymin {
		t1 = float32(ymin-y) / float32(g.Height)
		y = ymin
	}
	if x2 > xmax {
		s2 = 1 - float32(x2-xmax)/float32(g.Width)
		x2 = xmax
	}
	if y2 > ymax {
		t2 = 1 - float32(y2-ymax)/float32(g.Height)
		y2 = ymax
	}

	tw, th := g.S2-g.S1, g.T2-g.T1
	f.family.registry.backend.DrawStretchPic(g.Page.Texture,
		x, y, x2-x, y2-y,
		g.S1+tw*s1, g.T1+th*t1, g.S1+tw*s2, g.T1+th*t2, c)
}

// DrawRawString draws s from pen position (x, y) until the first newline
// or until the next glyph would end beyond maxWidth pixels (0 means no
// limit). Colour escapes change the tint. It returns the number of bytes
// consumed, which equals StrlenForWidth(s, maxWidth).
func (f *Face) DrawRawString(x, y int, s string, maxWidth int, c color.Color) int {
	if f == nil {
		return 0
	}
	base := color.NRGBAModel.Convert(c).(color.NRGBA)
	tint := color.Color(c)

	var width int
	var prev rune
	i := 0
	for i < len(s) {
		tok := nextToken(s[i:])
		if tok.kind == tokenColor {
			tint = applyColor(base, tok.color)
			i += tok.size
			continue
		}
		if tok.kind == tokenChar && tok.char == '\n' {
			break
		}
		if tok.kind != tokenChar || tok.char < ' ' {
			i += tok.size
			continue
		}

		g, code := f.glyphFor(tok.char, s[i:])
		if g == nil {
			i += tok.size
			continue
		}
		pen := width
		if prev != 0 && f.hasKerning {
			pen += f.Kerning(prev, code)
		}
		if maxWidth > 0 && pen+g.XAdvance > maxWidth {
			break
		}

		f.DrawRawChar(x+pen, y, code, tint)

		width = pen + g.XAdvance
		prev = code
		i += tok.size
	}
	return i
}

// DrawClampString draws s from pen position (x, y) clipped to the
// inclusive rectangle [xmin, xmax] x [ymin, ymax]. Drawing stops at the
// first newline or once the pen passes xmax.
func (f *Face) DrawClampString(x, y int, s string, xmin, ymin, xmax, ymax int, c color.Color) {
	if f == nil || xmax <= xmin || ymax <= ymin || x > xmax || y > ymax {
		return
	}
	base := color.NRGBAModel.Convert(c).(color.NRGBA)
	tint := color.Color(c)

	var pen int
	var prev rune
	var prevGlyph *Glyph
	for s != "" {
		tok := nextToken(s)
		rest := s
		s = s[tok.size:]
		if tok.kind == tokenColor {
			tint = applyColor(base, tok.color)
			continue
		}
		if tok.char == '\n' {
			break
		}
		if tok.char < ' ' {
			continue
		}

		g, code := f.glyphFor(tok.char, rest)
		if g == nil {
			continue
		}
		if prev != 0 {
			pen += prevGlyph.XAdvance
			if f.hasKerning {
				pen += f.Kerning(prev, code)
			}
		}
		if x+pen > xmax {
			break
		}

		f.DrawClampChar(x+pen, y, code, xmin, ymin, xmax, ymax, tint)

		prev = code
		prevGlyph = g
	}
}
