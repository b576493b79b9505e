package backend

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/draw"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
)

// Quad is a textured quad recorded by SoftwareBackend.DrawStretchPic.
type Quad struct {
	Texture        gpucontext.Texture
	X, Y, W, H     int
	S1, T1, S2, T2 float32
	Tint           color.Color
}

// SoftwareBackend is a CPU-based rendering backend.
// Textures are *image.RGBA; quads are scaled with nearest-neighbour
// sampling and composited over an optional target image.
// Every quad is also recorded so callers can inspect what was drawn.
type SoftwareBackend struct {
	initialized bool
	target      *image.RGBA
	textures    []*SoftwareTexture
	quads       []Quad
	touched     int
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() Backend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.textures = nil
	b.quads = nil
	b.target = nil
	b.initialized = false
}

// SetTarget sets the image quads are drawn into. A nil target disables
// compositing; quads are still recorded.
func (b *SoftwareBackend) SetTarget(dst *image.RGBA) {
	b.target = dst
}

// Target returns the current target image.
func (b *SoftwareBackend) Target() *image.RGBA {
	return b.target
}

// Textures returns the textures created so far, in creation order.
func (b *SoftwareBackend) Textures() []*SoftwareTexture {
	return b.textures
}

// Quads returns the quads drawn since the last ResetQuads.
func (b *SoftwareBackend) Quads() []Quad {
	return b.quads
}

// ResetQuads discards the recorded quads.
func (b *SoftwareBackend) ResetQuads() {
	b.quads = b.quads[:0]
}

// Touched returns how many times TouchTexture was called.
func (b *SoftwareBackend) Touched() int {
	return b.touched
}

// NewTextureFromRGBA creates a texture of the given size. data must hold
// width*height*4 bytes, or be nil for a transparent texture.
func (b *SoftwareBackend) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureData, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if data != nil {
		if len(data) != len(img.Pix) {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidTextureData, len(data), len(img.Pix))
		}
		copy(img.Pix, data)
	}
	tex := &SoftwareTexture{img: img}
	b.textures = append(b.textures, tex)
	return tex, nil
}

// TouchTexture implements Toucher.
func (b *SoftwareBackend) TouchTexture(tex gpucontext.Texture) {
	if tex != nil {
		b.touched++
	}
}

// DrawStretchPic implements Backend.DrawStretchPic.
func (b *SoftwareBackend) DrawStretchPic(tex gpucontext.Texture, x, y, w, h int, s1, t1, s2, t2 float32, tint color.Color) {
	b.quads = append(b.quads, Quad{
		Texture: tex,
		X:       x, Y: y, W: w, H: h,
		S1: s1, T1: t1, S2: s2, T2: t2,
		Tint: tint,
	})

	st, ok := tex.(*SoftwareTexture)
	if b.target == nil || !ok || w <= 0 || h <= 0 {
		return
	}

	tw, th := float64(st.Width()), float64(st.Height())
	sr := image.Rect(
		int(math.Round(float64(s1)*tw)),
		int(math.Round(float64(t1)*th)),
		int(math.Round(float64(s2)*tw)),
		int(math.Round(float64(t2)*th)),
	)
	if sr.Empty() {
		return
	}

	// Scale the coverage first, then use it as a mask for the tint.
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), st.img, sr, draw.Src, nil)

	dr := image.Rect(x, y, x+w, y+h)
	draw.DrawMask(b.target, dr, image.NewUniform(tint), image.Point{}, scaled, image.Point{}, draw.Over)
}

// SoftwareTexture is a CPU texture backed by an *image.RGBA.
// It implements gpucontext.Texture, gpucontext.TextureUpdater and
// gpucontext.TextureRegionUpdater.
type SoftwareTexture struct {
	img       *image.RGBA
	destroyed bool
}

// Width returns the texture width in pixels.
func (t *SoftwareTexture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in pixels.
func (t *SoftwareTexture) Height() int { return t.img.Rect.Dy() }

// Image returns the texture pixels.
func (t *SoftwareTexture) Image() *image.RGBA { return t.img }

// Destroy marks the texture as released. Later updates fail.
func (t *SoftwareTexture) Destroy() { t.destroyed = true }

// Destroyed reports whether Destroy was called.
func (t *SoftwareTexture) Destroyed() bool { return t.destroyed }

// UpdateData replaces the whole texture content.
func (t *SoftwareTexture) UpdateData(data []byte) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if len(data) != len(t.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidTextureData, len(data), len(t.img.Pix))
	}
	copy(t.img.Pix, data)
	return nil
}

// UpdateRegion replaces the w x h rectangle at (x, y). data is tightly
// packed RGBA, w*4 bytes per row.
func (t *SoftwareTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	r := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !r.In(t.img.Rect) {
		return fmt.Errorf("%w: %v in %v", ErrRegionOutOfBounds, r, t.img.Rect)
	}
	if len(data) != w*h*4 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidTextureData, len(data), w*h*4)
	}
	for row := 0; row < h; row++ {
		dst := t.img.PixOffset(x, y+row)
		copy(t.img.Pix[dst:dst+w*4], data[row*w*4:(row+1)*w*4])
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Backend                         = (*SoftwareBackend)(nil)
	_ Toucher                         = (*SoftwareBackend)(nil)
	_ gpucontext.TextureUpdater       = (*SoftwareTexture)(nil)
	_ gpucontext.TextureRegionUpdater = (*SoftwareTexture)(nil)
)
