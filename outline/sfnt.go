package outline

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// sfntEngine implements Engine using golang.org/x/image/font/sfnt for
// outlines and golang.org/x/image/vector for coverage.
type sfntEngine struct{}

// Describe implements Engine.Describe.
func (e *sfntEngine) Describe(data []byte) (Description, error) {
	if len(data) == 0 {
		return Description{}, ErrEmptyFontData
	}

	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return Description{}, fmt.Errorf("outline: failed to parse font: %w", err)
	}

	desc := face.Describe()
	_, horizontal := face.FontHExtents()
	_, scalable := face.GlyphData(0).(gotext.GlyphOutline)

	return Description{
		Family:     desc.Family,
		Italic:     desc.Aspect.Style == gotext.StyleItalic,
		Bold:       desc.Aspect.Weight >= gotext.WeightSemibold,
		Scalable:   scalable,
		Horizontal: horizontal,
		HasKerning: hasKerning(face),
	}, nil
}

// hasKerning reports whether the font has a legacy kern table or a GPOS
// pair positioning lookup.
func hasKerning(face *gotext.Face) bool {
	if len(face.Kern) > 0 || len(face.Kerx) > 0 {
		return true
	}
	for _, lookup := range face.GPOS.Lookups {
		for _, sub := range lookup.Subtables {
			if _, ok := sub.(tables.PairPos); ok {
				return true
			}
		}
	}
	return false
}

// Open implements Engine.Open.
func (e *sfntEngine) Open(data []byte, size int) (Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("outline: failed to parse font: %w", err)
	}

	desc, err := e.Describe(data)
	if err != nil {
		return nil, err
	}

	return &sfntFont{
		font: f,
		ppem: fixed.I(size),
		kern: desc.HasKerning,
	}, nil
}

// sfntFont implements Font on top of an sfnt.Font.
type sfntFont struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	kern bool
	rast vector.Rasterizer
}

// GlyphIndex implements Font.GlyphIndex.
func (f *sfntFont) GlyphIndex(r rune) GlyphIndex {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphIndex(idx)
}

// Metrics implements Font.Metrics.
func (f *sfntFont) Metrics() Metrics {
	m, err := f.font.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Height:   m.Height,
		Ascender: m.Ascent,
	}
}

// HasKerning implements Font.HasKerning.
func (f *sfntFont) HasKerning() bool {
	return f.kern
}

// Kerning implements Font.Kerning.
func (f *sfntFont) Kerning(a, b GlyphIndex) fixed.Int26_6 {
	if !f.kern {
		return 0
	}
	k, err := f.font.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return k
}

// Render implements Font.Render.
func (f *sfntFont) Render(g GlyphIndex) (*Bitmap, error) {
	x := sfnt.GlyphIndex(g)

	// GlyphAdvance must run before LoadGlyph: the segments returned by
	// LoadGlyph are only valid until f.buf is reused.
	advance, err := f.font.GlyphAdvance(&f.buf, x, f.ppem, font.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("outline: glyph %d advance: %w", g, err)
	}

	segments, err := f.font.LoadGlyph(&f.buf, x, f.ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, ErrUnsupportedGlyph
		}
		return nil, fmt.Errorf("outline: glyph %d: %w", g, err)
	}

	// Quantize the sub-pixel bounds to integer pixels. Glyph space has
	// the origin on the baseline with y growing downwards.
	bounds := segments.Bounds()
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()

	bm := &Bitmap{
		Mode:    PixelModeGray,
		Left:    minX,
		Top:     -minY,
		Advance: advance,
	}

	width, height := maxX-minX, maxY-minY
	if len(segments) == 0 || width <= 0 || height <= 0 {
		// Blank glyph, e.g. space.
		return bm, nil
	}

	biasX := -fixed.Int26_6(minX << 6)
	biasY := -fixed.Int26_6(minY << 6)

	f.rast.Reset(width, height)
	f.rast.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			f.rast.MoveTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
			)
		case sfnt.SegmentOpLineTo:
			f.rast.LineTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
			)
		case sfnt.SegmentOpQuadTo:
			f.rast.QuadTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
				float32(seg.Args[1].X+biasX)/64,
				float32(seg.Args[1].Y+biasY)/64,
			)
		case sfnt.SegmentOpCubeTo:
			f.rast.CubeTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
				float32(seg.Args[1].X+biasX)/64,
				float32(seg.Args[1].Y+biasY)/64,
				float32(seg.Args[2].X+biasX)/64,
				float32(seg.Args[2].Y+biasY)/64,
			)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	f.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	bm.Width = width
	bm.Rows = height
	bm.Pitch = mask.Stride
	bm.Buffer = mask.Pix
	return bm, nil
}

// Close implements Font.Close.
func (f *sfntFont) Close() error {
	f.font = nil
	return nil
}
