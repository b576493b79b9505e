package glyphatlas

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glyphatlas/backend"
	"github.com/gogpu/glyphatlas/outline"
	"github.com/gogpu/gpucontext"
)

// scratchBuffer is the coverage buffer glyph cells are composited into
// before a row is uploaded. It is one page wide and grows vertically in
// fixed increments. A single buffer is shared by every face of a Registry.
type scratchBuffer struct {
	width     int
	rows      int
	increment int
	pix       []byte
	rgba      []byte // upload staging
}

func newScratchBuffer(width, increment int) *scratchBuffer {
	return &scratchBuffer{
		width:     width,
		rows:      increment,
		increment: increment,
		pix:       make([]byte, width*increment),
	}
}

// alignUp rounds n up to a multiple of the power of two a.
func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// grow makes room for at least rows rows, keeping the current content.
func (s *scratchBuffer) grow(rows int) {
	if rows <= s.rows {
		return
	}
	s.rows = alignUp(rows, s.increment)
	pix := make([]byte, s.width*s.rows)
	copy(pix, s.pix)
	s.pix = pix
}

// row returns scratch row y.
func (s *scratchBuffer) row(y int) []byte {
	return s.pix[y*s.width : (y+1)*s.width]
}

// composite writes a w x h glyph bitmap into the cell whose left border is
// at column col, surrounding it with a 1px transparent border. Rows of the
// cell's columns below the cell are cleared so stale coverage is never
// uploaded.
func (s *scratchBuffer) composite(col int, bm *outline.Bitmap, w, h int) {
	cellW := w + 2
	clear(s.row(0)[col : col+cellW])
	for y := 0; y < h; y++ {
		dst := s.row(y + 1)[col : col+cellW]
		dst[0] = 0
		dst[cellW-1] = 0
		px := dst[1 : 1+w]
		switch bm.Mode {
		case outline.PixelModeMono:
			src := bm.Row(y)
			for x := range px {
				px[x] = ((src[x>>3] >> (7 - uint(x&7))) & 1) * 255
			}
		case outline.PixelModeGray:
			copy(px, bm.Row(y)[:w])
		default:
			// Unknown format: draw the cell outline so the glyph stays visible.
			if w == 0 {
				break
			}
			if y == 0 || y == h-1 {
				for x := range px {
					px[x] = 255
				}
			} else {
				clear(px)
				px[0] = 255
				px[w-1] = 255
			}
		}
	}
	for y := h + 1; y < s.rows; y++ {
		clear(s.row(y)[col : col+cellW])
	}
}

// packer places glyph cells into a face's atlas pages.
//
// Cells are appended left to right to the current row. Each cell carries
// a 1px border, and neighbouring cells overlap by one column so they share
// that border; likewise each row starts on the last line of the row above
// it. A row is staged in the scratch buffer and uploaded when it wraps,
// when a new page is opened, or when a render pass ends.
type packer struct {
	width  int // page width
	height int // page height tier

	curX       int // page column where the staged row starts
	curY       int // page line of the current row
	lineHeight int // tallest cell of the current row

	rowWidth  int // staged columns, excluding the last cell's right border
	rowHeight int // tallest cell staged in this pass

	pages   []*Page
	name    string // page name prefix
	scratch *scratchBuffer
	backend backend.Backend
	log     func() *slog.Logger
}

// cell is a placed glyph cell.
type cell struct {
	page *Page
	x, y int // top-left of the cell interior in the page
	col  int // scratch column of the cell's left border
}

// newPacker creates a packer whose first placement opens page 0.
func newPacker(width, height int, name string, scratch *scratchBuffer, b backend.Backend, log func() *slog.Logger) *packer {
	return &packer{
		width:   width,
		height:  height,
		curY:    height,
		name:    name,
		scratch: scratch,
		backend: b,
		log:     log,
	}
}

// current returns the page being filled, or nil before the first placement.
func (p *packer) current() *Page {
	if len(p.pages) == 0 {
		return nil
	}
	return p.pages[len(p.pages)-1]
}

// place reserves a cellW x cellH cell, wrapping to a new row or opening a
// new page first when it does not fit. Cell sizes include the border and
// must not exceed the page dimensions.
func (p *packer) place(cellW, cellH int) cell {
	if p.curX+p.rowWidth+cellW > p.width {
		p.flush()
		p.rowWidth = 0
		p.rowHeight = 0
		p.curX = 0
		p.curY += p.lineHeight - 1 // share the previous row's bottom border
		p.lineHeight = 0
	}

	p.scratch.grow(cellH)

	if cellH > p.rowHeight {
		if cellH > p.lineHeight {
			if p.curY+cellH > p.height {
				p.flush()
				p.rowWidth = 0
				p.curX = 0
				p.curY = 0
				p.openPage()
			}
			p.lineHeight = cellH
		}
		p.rowHeight = cellH
	}

	return cell{
		page: p.current(),
		x:    p.curX + p.rowWidth + 1,
		y:    p.curY + 1,
		col:  p.rowWidth,
	}
}

// commit advances past a cell of width cellW placed by place.
func (p *packer) commit(cellW int) {
	p.rowWidth += cellW - 1 // share the previous cell's right border
}

// finish uploads the staged row and moves the cursor past it.
func (p *packer) finish() {
	p.flush()
	p.curX += p.rowWidth
	p.rowWidth = 0
	p.rowHeight = 0
}

// openPage allocates a new page texture.
func (p *packer) openPage() {
	n := len(p.pages)
	page := &Page{
		Name:   fmt.Sprintf("%s %d", p.name, n),
		Width:  p.width,
		Height: p.height,
	}
	tex, err := p.backend.NewTextureFromRGBA(p.width, p.height, make([]byte, p.width*p.height*4))
	if err != nil {
		p.log().Warn("glyphatlas: failed to create atlas page", "page", page.Name, "err", err)
	} else {
		page.Texture = tex
	}
	p.pages = append(p.pages, page)
	p.log().Debug("glyphatlas: atlas page allocated", "page", page.Name, "width", p.width, "height", p.height)
}

// flush uploads the staged row. Coverage is expanded to premultiplied
// white RGBA.
func (p *packer) flush() {
	page := p.current()
	w, h := p.rowWidth, p.rowHeight
	if page == nil || w == 0 || h == 0 || page.Texture == nil {
		return
	}

	updater, ok := page.Texture.(gpucontext.TextureRegionUpdater)
	if !ok {
		p.log().Warn("glyphatlas: atlas texture does not support region updates", "page", page.Name)
		return
	}

	s := p.scratch
	if need := w * h * 4; cap(s.rgba) < need {
		s.rgba = make([]byte, need)
	} else {
		s.rgba = s.rgba[:need]
	}
	for y := 0; y < h; y++ {
		src := s.row(y)[:w]
		dst := s.rgba[y*w*4 : (y+1)*w*4]
		for x, a := range src {
			dst[x*4+0] = a
			dst[x*4+1] = a
			dst[x*4+2] = a
			dst[x*4+3] = a
		}
	}

	if err := updater.UpdateRegion(p.curX, p.curY, w, h, s.rgba); err != nil {
		p.log().Warn("glyphatlas: atlas upload failed", "page", page.Name, "err", err)
	}
}

// touch re-announces the page textures.
func (p *packer) touch(t backend.Toucher) {
	for _, page := range p.pages {
		if page.Texture != nil {
			t.TouchTexture(page.Texture)
		}
	}
}

// release destroys the page textures when the backend supports it.
func (p *packer) release() {
	for _, page := range p.pages {
		if d, ok := page.Texture.(interface{ Destroy() }); ok {
			d.Destroy()
		}
		page.Texture = nil
	}
	p.pages = nil
}
