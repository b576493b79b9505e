package glyphatlas

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/gogpu/glyphatlas/backend"
	"github.com/gogpu/glyphatlas/outline"
	"golang.org/x/image/math/fixed"
)

// fakeGlyph describes one glyph of a fakeFontSpec.
type fakeGlyph struct {
	w, h    int
	advance int
	mono    bool // 1bpp instead of 8bpp
	unknown bool // report an unsupported pixel format
}

// fakeFontSpec is a synthetic font served by fakeEngine. Font data is the
// spec key, so tests never depend on real font files.
type fakeFontSpec struct {
	family      string
	italic      bool
	bold        bool
	notScalable bool
	kerning     bool
	height      int // line height in pixels
	ascender    int
	glyphs      map[rune]fakeGlyph
	kern        map[[2]rune]int
	failRender  map[rune]bool
	failOpen    bool // fail every Open except the replacement probe
}

// fakeEngine is an outline.Engine over fakeFontSpecs.
type fakeEngine struct {
	fonts map[string]*fakeFontSpec
	opens map[string]int
}

func newFakeEngine(specs ...*fakeFontSpec) *fakeEngine {
	e := &fakeEngine{
		fonts: make(map[string]*fakeFontSpec),
		opens: make(map[string]int),
	}
	for _, s := range specs {
		e.fonts[fontKey(s)] = s
	}
	return e
}

// fontKey returns the font data that selects spec.
func fontKey(s *fakeFontSpec) string {
	return fmt.Sprintf("%s/%t/%t", s.family, s.italic, s.bold)
}

func (e *fakeEngine) spec(data []byte) (*fakeFontSpec, error) {
	s, ok := e.fonts[string(data)]
	if !ok {
		return nil, errors.New("fake: unknown font data")
	}
	return s, nil
}

func (e *fakeEngine) Describe(data []byte) (outline.Description, error) {
	if len(data) == 0 {
		return outline.Description{}, outline.ErrEmptyFontData
	}
	s, err := e.spec(data)
	if err != nil {
		return outline.Description{}, err
	}
	return outline.Description{
		Family:     s.family,
		Italic:     s.italic,
		Bold:       s.bold,
		Scalable:   !s.notScalable,
		Horizontal: true,
		HasKerning: s.kerning,
	}, nil
}

func (e *fakeEngine) Open(data []byte, size int) (outline.Font, error) {
	s, err := e.spec(data)
	if err != nil {
		return nil, err
	}
	if s.failOpen && size != replacementProbeSize {
		return nil, errors.New("fake: open failed")
	}
	if size != replacementProbeSize {
		e.opens[s.family]++
	}
	return &fakeFont{spec: s, lookups: make(map[rune]int)}, nil
}

// fakeFont is an opened fakeFontSpec. It counts glyph lookups.
type fakeFont struct {
	spec    *fakeFontSpec
	lookups map[rune]int
	closed  bool
}

func (f *fakeFont) GlyphIndex(r rune) outline.GlyphIndex {
	f.lookups[r]++
	if _, ok := f.spec.glyphs[r]; ok {
		return outline.GlyphIndex(r)
	}
	return 0
}

func (f *fakeFont) Metrics() outline.Metrics {
	return outline.Metrics{
		Height:   fixed.I(f.spec.height),
		Ascender: fixed.I(f.spec.ascender),
	}
}

func (f *fakeFont) HasKerning() bool { return f.spec.kerning }

func (f *fakeFont) Kerning(a, b outline.GlyphIndex) fixed.Int26_6 {
	return fixed.I(f.spec.kern[[2]rune{rune(a), rune(b)}])
}

// Render returns a fully covered bitmap of the glyph size, so every
// interior pixel of a packed cell is 255 and every border pixel is 0.
func (f *fakeFont) Render(g outline.GlyphIndex) (*outline.Bitmap, error) {
	r := rune(g)
	if f.spec.failRender[r] {
		return nil, outline.ErrUnsupportedGlyph
	}
	fg := f.spec.glyphs[r]
	bm := &outline.Bitmap{
		Width:   fg.w,
		Rows:    fg.h,
		Mode:    outline.PixelModeGray,
		Pitch:   fg.w,
		Top:     fg.h,
		Advance: fixed.I(fg.advance),
	}
	switch {
	case fg.unknown:
		bm.Mode = outline.PixelModeNone
	case fg.mono:
		bm.Mode = outline.PixelModeMono
		bm.Pitch = (fg.w + 7) / 8
	}
	bm.Buffer = bytes.Repeat([]byte{0xFF}, bm.Pitch*fg.h)
	return bm, nil
}

func (f *fakeFont) Close() error {
	f.closed = true
	return nil
}

// glyphRange returns glyphs of the given size for every rune in [lo, hi].
func glyphRange(lo, hi rune, w, h, advance int) map[rune]fakeGlyph {
	m := make(map[rune]fakeGlyph)
	for r := lo; r <= hi; r++ {
		m[r] = fakeGlyph{w: w, h: h, advance: advance}
	}
	return m
}

// withGlyphs merges glyph maps, later maps winning.
func withGlyphs(maps ...map[rune]fakeGlyph) map[rune]fakeGlyph {
	m := make(map[rune]fakeGlyph)
	for _, mm := range maps {
		for r, g := range mm {
			m[r] = g
		}
	}
	return m
}

// asciiSpec returns a font with every printable ASCII glyph, a 0x0
// space and the replacement glyph. Advances vary with the character.
func asciiSpec(family string) *fakeFontSpec {
	glyphs := make(map[rune]fakeGlyph)
	for r := '!'; r <= '~'; r++ {
		glyphs[r] = fakeGlyph{w: 4, h: 6, advance: 5 + int(r%3)}
	}
	glyphs[' '] = fakeGlyph{advance: 3}
	glyphs[DefaultReplacementGlyph] = fakeGlyph{w: 5, h: 7, advance: 7}
	return &fakeFontSpec{
		family:   family,
		height:   10,
		ascender: 8,
		glyphs:   glyphs,
	}
}

// latinSpec returns a font holding only a space, the replacement glyph
// and the Latin-1 letters U+00C0..U+00FF, all 6x8 with advance 7.
// Face loading therefore packs just two cells.
func latinSpec(family string) *fakeFontSpec {
	return &fakeFontSpec{
		family:   family,
		height:   10,
		ascender: 8,
		glyphs: withGlyphs(
			glyphRange(0xC0, 0xFF, 6, 8, 7),
			map[rune]fakeGlyph{
				' ':                     {advance: 3},
				DefaultReplacementGlyph: {w: 6, h: 8, advance: 7},
			},
		),
	}
}

// newTestBackend returns an initialized software backend.
func newTestBackend(t testing.TB) *backend.SoftwareBackend {
	t.Helper()
	b := backend.NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

// testRegistry creates a registry over fake fonts, logging to logs.
func testRegistry(t testing.TB, logs *bytes.Buffer, specs []*fakeFontSpec, opts ...Option) (*Registry, *fakeEngine, *backend.SoftwareBackend) {
	t.Helper()
	if logs == nil {
		logs = new(bytes.Buffer)
	}
	e := newFakeEngine(specs...)
	b := newTestBackend(t)
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	all := append([]Option{WithEngine(e), WithLogger(logger)}, opts...)
	r := New(b, all...)
	t.Cleanup(r.Shutdown)
	return r, e, b
}

// mustLoad loads spec into r.
func mustLoad(t testing.TB, r *Registry, spec *fakeFontSpec, fallback bool) *Family {
	t.Helper()
	fam, err := r.LoadFamily(spec.family+".ttf", []byte(fontKey(spec)), fallback)
	if err != nil {
		t.Fatalf("LoadFamily(%s) error = %v", spec.family, err)
	}
	return fam
}

// mustRegister registers a face and fails the test on nil.
func mustRegister(t testing.TB, r *Registry, family, fallback string, style Style, size int) *Face {
	t.Helper()
	f := r.RegisterFont(family, fallback, style, size)
	if f == nil {
		t.Fatalf("RegisterFont(%q, %q, %v, %d) = nil", family, fallback, style, size)
	}
	return f
}
