// Package backend provides the rendering backend abstraction used by the
// glyph atlas.
//
// A [Backend] creates atlas page textures (gpucontext.TextureCreator),
// accepts sub-rectangle uploads through gpucontext.TextureRegionUpdater on
// those textures, and draws textured, tinted quads. GPU integrations
// implement Backend on top of their device; this package ships a CPU
// implementation that draws into an *image.RGBA.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/glyphatlas/backend"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
// # Available Backends
//
// - "software": CPU textures and quad blits (always available)
package backend
