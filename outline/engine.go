package outline

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// GlyphIndex identifies a glyph inside one font file.
// It is distinct from the character code; zero means "no glyph".
type GlyphIndex uint32

// Engine is a font outline backend.
// This abstraction allows swapping the library that parses and rasterizes
// outlines without touching the atlas code.
type Engine interface {
	// Describe parses font data just enough to report its identity and
	// capabilities. The data is not retained.
	Describe(data []byte) (Description, error)

	// Open parses font data and prepares it for rendering at the given
	// pixel size (pixels per em). The returned Font may keep a reference
	// to data, so the caller must not modify it while the Font is open.
	Open(data []byte, size int) (Font, error)
}

// Font is a font file opened at one fixed pixel size.
// A Font is not safe for concurrent use.
type Font interface {
	// GlyphIndex returns the glyph index for a rune, or 0 if the font
	// has no glyph for it.
	GlyphIndex(r rune) GlyphIndex

	// Metrics returns the scaled line metrics.
	Metrics() Metrics

	// HasKerning reports whether the font carries pairwise kerning data.
	HasKerning() bool

	// Kerning returns the horizontal adjustment between two glyphs.
	// It returns 0 when the pair is not kerned.
	Kerning(a, b GlyphIndex) fixed.Int26_6

	// Render rasterizes a glyph into a coverage bitmap.
	Render(g GlyphIndex) (*Bitmap, error)

	// Close releases resources held by the font.
	Close() error
}

// Description reports the identity and capabilities of a font file.
type Description struct {
	// Family is the font family name, e.g. "Go" or "DejaVu Sans".
	Family string

	// Italic and Bold describe the style of this particular file.
	Italic bool
	Bold   bool

	// Scalable reports whether glyphs are described by outlines rather
	// than by fixed-size bitmaps only.
	Scalable bool

	// Horizontal reports whether the font carries horizontal line metrics.
	Horizontal bool

	// HasKerning reports whether the font carries a kerning table or
	// pair positioning lookups.
	HasKerning bool
}

// Metrics holds line metrics for a font at a given pixel size.
// Values are in 26.6 fixed point pixels.
type Metrics struct {
	// Height is the recommended distance between two baselines.
	Height fixed.Int26_6

	// Ascender is the distance from the baseline to the top of the line.
	Ascender fixed.Int26_6
}

// engineRegistry holds registered engines.
var engineRegistry = map[string]Engine{
	DefaultEngineName: &sfntEngine{},
}

// DefaultEngineName is the name of the default engine.
const DefaultEngineName = "sfnt"

// RegisterEngine registers an engine under name, replacing any previous
// engine with the same name.
func RegisterEngine(name string, e Engine) {
	engineRegistry[name] = e
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	if e, ok := engineRegistry[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Default returns the default engine.
func Default() Engine {
	return engineRegistry[DefaultEngineName]
}
