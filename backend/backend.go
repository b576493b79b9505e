package backend

import (
	"errors"
	"image/color"

	"github.com/gogpu/gpucontext"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidTextureData is returned when pixel data does not match the
	// requested texture dimensions.
	ErrInvalidTextureData = errors.New("backend: invalid texture data size")

	// ErrRegionOutOfBounds is returned when a region update exceeds the
	// texture bounds.
	ErrRegionOutOfBounds = errors.New("backend: region exceeds texture bounds")

	// ErrTextureDestroyed is returned when a destroyed texture is updated.
	ErrTextureDestroyed = errors.New("backend: texture destroyed")
)

// Backend is the rendering backend consumed by the glyph atlas.
// It creates the pixel-addressable atlas pages and draws textured quads.
//
// Atlas pages are created through the embedded gpucontext.TextureCreator.
// Textures returned by a Backend should also implement
// gpucontext.TextureRegionUpdater; the atlas uploads glyph rows with it.
// All pixel data exchanged with a Backend is RGBA, 8 bits per channel.
type Backend interface {
	gpucontext.TextureCreator

	// Name returns the backend identifier (e.g., "software").
	Name() string

	// Init initializes the backend.
	// This should be called before any other operation.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// DrawStretchPic draws the texture region (s1, t1)-(s2, t2), given in
	// normalized texture coordinates, stretched over the w x h rectangle
	// whose top-left corner is (x, y). The texture coverage is modulated
	// by tint.
	DrawStretchPic(tex gpucontext.Texture, x, y, w, h int, s1, t1, s2, t2 float32, tint color.Color)
}

// Toucher is implemented by backends that release textures which are not
// referenced between loading phases. TouchTexture marks tex as in use.
type Toucher interface {
	TouchTexture(tex gpucontext.Texture)
}
