package glyphatlas

import (
	"errors"

	"github.com/gogpu/glyphatlas/outline"
)

// Sentinel errors for glyphatlas package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = outline.ErrEmptyFontData

	// ErrNotScalable is returned when a font file has no scalable,
	// horizontally laid out outlines.
	ErrNotScalable = errors.New("glyphatlas: font is not a scalable horizontal outline font")

	// ErrMissingReplacementGlyph is returned when a font file lacks the
	// replacement glyph.
	ErrMissingReplacementGlyph = errors.New("glyphatlas: font has no replacement glyph")

	// ErrEmptyFamilyName is returned when a family is loaded without a name.
	ErrEmptyFamilyName = errors.New("glyphatlas: empty font family name")
)

// FontLoadError is returned when a font file cannot be registered as a
// family.
type FontLoadError struct {
	Name string
	Err  error
}

func (e *FontLoadError) Error() string {
	return "glyphatlas: failed to load font " + e.Name + ": " + e.Err.Error()
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}
