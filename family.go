package glyphatlas

import "strings"

// Style is a font style bitmask.
type Style uint8

// Font styles. Bold italic is StyleBold|StyleItalic.
const (
	StyleRegular Style = 0
	StyleItalic  Style = 1
	StyleBold    Style = 2

	styleMask = StyleItalic | StyleBold
)

// String returns a human-readable style name.
func (s Style) String() string {
	switch s & styleMask {
	case StyleItalic:
		return "italic"
	case StyleBold:
		return "bold"
	case StyleBold | StyleItalic:
		return "bold italic"
	default:
		return "regular"
	}
}

// familyKind loads faces for one kind of font source.
type familyKind interface {
	loadFace(fam *Family, size int) (*Face, error)
	unloadFace(f *Face)
	unloadFamily(fam *Family)
}

// Family is a font file registered with a Registry. It owns a private copy
// of the font data and the faces loaded from it, one per pixel size.
type Family struct {
	name     string
	key      string // case-folded name
	style    Style
	fallback bool
	data     []byte
	faces    []*Face
	kind     familyKind
	registry *Registry
}

// Name returns the family name reported by the font.
func (fam *Family) Name() string { return fam.name }

// Style returns the family style.
func (fam *Family) Style() Style { return fam.style }

// Fallback reports whether the family is only used as a fallback.
func (fam *Family) Fallback() bool { return fam.fallback }

// Faces returns the faces loaded so far.
func (fam *Family) Faces() []*Face { return fam.faces }

// face returns the loaded face of the given pixel size, if any.
func (fam *Family) face(size int) *Face {
	for _, f := range fam.faces {
		if f.size == size {
			return f
		}
	}
	return nil
}

// describe formats the family for font listings.
func (fam *Family) describe() string {
	var b strings.Builder
	b.WriteString(fam.name)
	if fam.fallback {
		b.WriteString(" (fallback)")
	}
	if fam.style&StyleItalic != 0 {
		b.WriteString(" (italic)")
	}
	if fam.style&StyleBold != 0 {
		b.WriteString(" (bold)")
	}
	return b.String()
}
