package outline

import "golang.org/x/image/math/fixed"

// PixelMode is the storage format of a Bitmap.
type PixelMode uint8

const (
	// PixelModeNone is an unknown or unsupported format.
	PixelModeNone PixelMode = iota

	// PixelModeMono stores one bit per pixel, most significant bit first.
	PixelModeMono

	// PixelModeGray stores one byte of coverage per pixel.
	PixelModeGray
)

// String returns the name of the pixel mode.
func (m PixelMode) String() string {
	switch m {
	case PixelModeMono:
		return "mono"
	case PixelModeGray:
		return "gray"
	default:
		return "none"
	}
}

// Bitmap is a rasterized glyph.
type Bitmap struct {
	// Width and Rows are the bitmap dimensions in pixels.
	Width int
	Rows  int

	// Pitch is the number of bytes between two rows of Buffer.
	Pitch int

	// Mode is the storage format of Buffer.
	Mode PixelMode

	// Buffer holds Rows*Pitch bytes of pixel data.
	Buffer []byte

	// Left is the horizontal distance from the pen position to the
	// leftmost column of the bitmap.
	Left int

	// Top is the vertical distance from the baseline to the topmost row
	// of the bitmap, positive upwards.
	Top int

	// Advance is the horizontal pen advance.
	Advance fixed.Int26_6
}

// Row returns the pixel data of row y.
func (b *Bitmap) Row(y int) []byte {
	start := y * b.Pitch
	return b.Buffer[start : start+b.Pitch]
}
