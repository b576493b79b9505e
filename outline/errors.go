package outline

import "errors"

// Sentinel errors for the outline package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("outline: empty font data")

	// ErrInvalidSize is returned when a font is opened at a non-positive pixel size.
	ErrInvalidSize = errors.New("outline: pixel size must be positive")

	// ErrUnknownEngine is returned by Lookup for names that were never registered.
	ErrUnknownEngine = errors.New("outline: unknown engine")

	// ErrUnsupportedGlyph is returned when a glyph has no monochrome outline
	// (for example a colour bitmap glyph).
	ErrUnsupportedGlyph = errors.New("outline: glyph has no outline")
)
