package glyphatlas

// glyphsPerPage is the number of glyph records in one table page.
const glyphsPerPage = 256

// glyphPage is a fixed block of glyph records for 256 consecutive codes.
type glyphPage [glyphsPerPage]Glyph

// glyphTable is a sparse table of glyph records keyed by character code.
// Pages are allocated on first touch and never moved or freed before the
// table itself, so record pointers stay valid.
type glyphTable struct {
	pages map[int]*glyphPage
}

// lookup returns the record for code, allocating its page through alloc
// if needed. Codes outside [MinGlyphCode, MaxGlyphCode] return nil.
func (t *glyphTable) lookup(code rune, alloc func(first rune) *glyphPage) *Glyph {
	if code < MinGlyphCode || code > MaxGlyphCode {
		return nil
	}
	if t.pages == nil {
		t.pages = make(map[int]*glyphPage)
	}
	n := int(code >> 8)
	page := t.pages[n]
	if page == nil {
		page = alloc(code &^ 0xFF)
		t.pages[n] = page
	}
	return &page[code&0xFF]
}

// len returns the number of allocated pages.
func (t *glyphTable) len() int {
	return len(t.pages)
}

// reset drops every page.
func (t *glyphTable) reset() {
	t.pages = nil
}
