package glyphatlas

import (
	"bytes"
	"testing"

	"github.com/gogpu/glyphatlas/backend"
	"github.com/gogpu/glyphatlas/outline"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		n, a, want int
	}{
		{0, 64, 0},
		{1, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{6, 4, 8},
	}
	for _, tt := range tests {
		if got := alignUp(tt.n, tt.a); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.n, tt.a, got, tt.want)
		}
	}
}

func TestScratchBufferGrow(t *testing.T) {
	s := newScratchBuffer(8, 4)
	if s.rows != 4 || len(s.pix) != 32 {
		t.Fatalf("initial rows = %d, len = %d; want 4, 32", s.rows, len(s.pix))
	}
	s.row(3)[7] = 42

	s.grow(3)
	if s.rows != 4 {
		t.Errorf("grow(3) rows = %d, want 4", s.rows)
	}
	s.grow(6)
	if s.rows != 8 {
		t.Errorf("grow(6) rows = %d, want 8", s.rows)
	}
	s.grow(9)
	if s.rows != 12 {
		t.Errorf("grow(9) rows = %d, want 12", s.rows)
	}
	if len(s.pix) != 8*12 {
		t.Errorf("len(pix) = %d, want %d", len(s.pix), 8*12)
	}
	if s.row(3)[7] != 42 {
		t.Error("grow lost existing content")
	}
}

func TestScratchComposite(t *testing.T) {
	tests := []struct {
		name string
		bm   *outline.Bitmap
		want []string // cell rows, '#' = 255, '.' = 0
	}{
		{
			name: "gray",
			bm: &outline.Bitmap{
				Width: 2, Rows: 2, Pitch: 2, Mode: outline.PixelModeGray,
				Buffer: []byte{255, 0, 0, 255},
			},
			want: []string{
				"....",
				".#..",
				"..#.",
				"....",
			},
		},
		{
			name: "mono",
			bm: &outline.Bitmap{
				Width: 3, Rows: 2, Pitch: 1, Mode: outline.PixelModeMono,
				Buffer: []byte{0b1010_0000, 0b0100_0000},
			},
			want: []string{
				".....",
				".#.#.",
				"..#..",
				".....",
			},
		},
		{
			name: "unknown format",
			bm:   &outline.Bitmap{Width: 3, Rows: 3, Mode: outline.PixelModeNone},
			want: []string{
				".....",
				".###.",
				".#.#.",
				".###.",
				".....",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScratchBuffer(16, 8)
			// Stale coverage must not survive around the cell.
			for i := range s.pix {
				s.pix[i] = 255
			}
			const col = 3
			s.composite(col, tt.bm, tt.bm.Width, tt.bm.Rows)

			for y, want := range tt.want {
				row := s.row(y)[col : col+len(want)]
				var got bytes.Buffer
				for _, v := range row {
					switch v {
					case 255:
						got.WriteByte('#')
					case 0:
						got.WriteByte('.')
					default:
						got.WriteByte('?')
					}
				}
				if got.String() != want {
					t.Errorf("row %d = %q, want %q", y, got.String(), want)
				}
			}
			for y := len(tt.want); y < s.rows; y++ {
				for x, v := range s.row(y)[col : col+tt.bm.Width+2] {
					if v != 0 {
						t.Fatalf("pixel (%d,%d) below the cell = %d, want 0", col+x, y, v)
					}
				}
			}
		})
	}
}

func newTestPacker(t *testing.T, width, height int) (*packer, *backend.SoftwareBackend) {
	t.Helper()
	b := newTestBackend(t)
	return newPacker(width, height, "Font Test 10 0", newScratchBuffer(width, 4), b, Logger), b
}

func TestPackerFirstPlacementOpensPage(t *testing.T) {
	p, b := newTestPacker(t, 32, 16)
	if p.current() != nil {
		t.Fatal("fresh packer should have no page")
	}

	c := p.place(10, 6)
	if len(p.pages) != 1 || c.page != p.pages[0] {
		t.Fatalf("first placement should open page 0, pages = %d", len(p.pages))
	}
	if c.page.Name != "Font Test 10 0 0" {
		t.Errorf("page name = %q, want %q", c.page.Name, "Font Test 10 0 0")
	}
	if c.x != 1 || c.y != 1 || c.col != 0 {
		t.Errorf("cell = (%d,%d) col %d, want (1,1) col 0", c.x, c.y, c.col)
	}
	if len(b.Textures()) != 1 {
		t.Errorf("backend textures = %d, want 1", len(b.Textures()))
	}
}

// TestPackerSharedBorders pins the packing arithmetic: cells overlap the
// previous cell's right border and rows overlap the previous row's
// bottom border.
func TestPackerSharedBorders(t *testing.T) {
	p, _ := newTestPacker(t, 32, 16)

	type pos struct{ x, y, page int }
	var got []pos
	for range 10 {
		c := p.place(10, 6)
		p.commit(10)
		page := 0
		for i, pg := range p.pages {
			if pg == c.page {
				page = i
			}
		}
		got = append(got, pos{c.x, c.y, page})
	}
	p.finish()

	want := []pos{
		// Row 0: cells start every 9 columns.
		{1, 1, 0}, {10, 1, 0}, {19, 1, 0},
		// Row 1 starts on row 0's last line (0 + 6 - 1).
		{1, 6, 0}, {10, 6, 0}, {19, 6, 0},
		// Row 2 at 5 + 5; it ends exactly on the page bottom.
		{1, 11, 0}, {10, 11, 0}, {19, 11, 0},
		// Row 3 would need lines 15..20: new page.
		{1, 1, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("placed %d cells, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if p.curX != 9 || p.curY != 0 {
		t.Errorf("cursor after finish = (%d,%d), want (9,0)", p.curX, p.curY)
	}
}

func TestPackerTallerCellRaisesLine(t *testing.T) {
	p, _ := newTestPacker(t, 64, 64)

	p.place(10, 6)
	p.commit(10)
	p.place(10, 12)
	p.commit(10)
	if p.lineHeight != 12 || p.rowHeight != 12 {
		t.Fatalf("lineHeight = %d, rowHeight = %d; want 12, 12", p.lineHeight, p.rowHeight)
	}
	p.finish()

	// A new pass keeps the line height but restarts the staged height.
	c := p.place(10, 4)
	if c.x != 19 || c.y != 1 {
		t.Errorf("cell = (%d,%d), want (19,1)", c.x, c.y)
	}
	if p.lineHeight != 12 || p.rowHeight != 4 {
		t.Errorf("lineHeight = %d, rowHeight = %d; want 12, 4", p.lineHeight, p.rowHeight)
	}
	if p.scratch.rows != 12 {
		t.Errorf("scratch rows = %d, want 12", p.scratch.rows)
	}
}

func TestPackerUpload(t *testing.T) {
	p, b := newTestPacker(t, 32, 16)

	bm := &outline.Bitmap{
		Width: 2, Rows: 3, Pitch: 2, Mode: outline.PixelModeGray,
		Buffer: []byte{255, 255, 255, 255, 255, 255},
	}
	for range 2 {
		c := p.place(4, 5)
		p.scratch.composite(c.col, bm, 2, 3)
		p.commit(4)
	}
	p.finish()

	tex := b.Textures()[0].Image()
	// Cells interiors at columns 1-2 and 4-5, rows 1-3.
	for _, x := range []int{1, 2, 4, 5} {
		for y := 1; y <= 3; y++ {
			if got := tex.RGBAAt(x, y); got.A != 255 || got.R != 255 {
				t.Errorf("interior (%d,%d) = %v, want opaque white", x, y, got)
			}
		}
	}
	// Shared border column and the surrounding lines stay transparent.
	for _, pt := range [][2]int{{0, 1}, {3, 2}, {1, 0}, {4, 4}} {
		if got := tex.RGBAAt(pt[0], pt[1]); got.A != 0 {
			t.Errorf("border (%d,%d) alpha = %d, want 0", pt[0], pt[1], got.A)
		}
	}
}

func TestPackerTouchAndRelease(t *testing.T) {
	p, b := newTestPacker(t, 32, 16)
	p.place(10, 6)
	p.commit(10)
	p.finish()

	p.touch(b)
	if b.Touched() != 1 {
		t.Errorf("Touched() = %d, want 1", b.Touched())
	}

	tex := b.Textures()[0]
	p.release()
	if !tex.Destroyed() {
		t.Error("release should destroy page textures")
	}
	if len(p.pages) != 0 {
		t.Errorf("pages after release = %d, want 0", len(p.pages))
	}
}
