package glyphatlas

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/glyphatlas/backend"
	"golang.org/x/text/cases"
)

// ErrClosed is returned by registry operations after Shutdown.
var ErrClosed = errors.New("glyphatlas: registry is shut down")

// replacementProbeSize is the pixel size used to check for the
// replacement glyph while loading a family.
const replacementProbeSize = 16

// Registry owns the loaded font families, their faces and the shared
// rasterization scratch buffer.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	backend  backend.Backend
	opts     options
	fold     cases.Caser
	families []*Family
	scratch  *scratchBuffer
	closed   bool
}

// New creates a registry drawing through b. A nil backend selects the
// default registered backend.
func New(b backend.Backend, opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		opts: o,
		fold: cases.Fold(),
	}

	if err := r.opts.atlas.Validate(); err != nil {
		r.log().Warn("glyphatlas: invalid atlas config, using defaults", "err", err)
		r.opts.atlas = DefaultAtlasConfig()
	}

	if b == nil {
		var err error
		b, err = backend.InitDefault()
		if err != nil {
			r.log().Warn("glyphatlas: no render backend available", "err", err)
		}
	}
	r.backend = b
	r.scratch = newScratchBuffer(r.opts.atlas.PageWidth, r.opts.atlas.ScratchIncrement)
	return r
}

// log returns the registry logger.
func (r *Registry) log() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// Backend returns the render backend.
func (r *Registry) Backend() backend.Backend {
	return r.backend
}

// Families returns the loaded families in load order.
func (r *Registry) Families() []*Family {
	return r.families
}

// LoadFamily registers font data as a family. name identifies the data in
// errors and logs, typically the file name. The data is copied.
//
// The font must be a scalable outline font with horizontal metrics and
// must contain the replacement glyph.
func (r *Registry) LoadFamily(name string, data []byte, fallback bool) (*Family, error) {
	if r.closed {
		return nil, ErrClosed
	}
	fam, err := r.loadFamily(data, fallback)
	if err != nil {
		return nil, &FontLoadError{Name: name, Err: err}
	}

	r.families = append(r.families, fam)
	if r.opts.verbose {
		r.log().Info("glyphatlas: loaded font",
			"family", fam.name, "style", fam.style.String(), "fallback", fallback, "file", name)
	}
	return fam, nil
}

func (r *Registry) loadFamily(data []byte, fallback bool) (*Family, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	engine := r.opts.engine

	desc, err := engine.Describe(data)
	if err != nil {
		return nil, err
	}
	if !desc.Scalable || !desc.Horizontal {
		return nil, ErrNotScalable
	}
	if desc.Family == "" {
		return nil, ErrEmptyFamilyName
	}

	probe, err := engine.Open(data, replacementProbeSize)
	if err != nil {
		return nil, err
	}
	missing := probe.GlyphIndex(r.opts.replacement) == 0
	_ = probe.Close()
	if missing {
		return nil, fmt.Errorf("%w U+%04X", ErrMissingReplacementGlyph, r.opts.replacement)
	}

	var style Style
	if desc.Italic {
		style |= StyleItalic
	}
	if desc.Bold {
		style |= StyleBold
	}

	return &Family{
		name:     desc.Family,
		key:      r.fold.String(desc.Family),
		style:    style,
		fallback: fallback,
		data:     append([]byte(nil), data...),
		kind:     &outlineFamily{engine: engine},
		registry: r,
	}, nil
}

// lookupFamily finds a family by case-insensitive name. An exact style
// match wins; otherwise the family with the lowest style is returned.
func (r *Registry) lookupFamily(name string, style Style, fallback bool) *Family {
	key := r.fold.String(name)
	var best *Family
	for _, fam := range r.families {
		if fam.fallback != fallback || fam.key != key {
			continue
		}
		if fam.style == style {
			return fam
		}
		if best == nil || fam.style < best.style {
			best = fam
		}
	}
	return best
}

// RegisterFont returns the face of the named family at size pixels,
// loading it on first use. When fallback names a fallback family, glyphs
// missing from the face are looked up there.
//
// RegisterFont returns nil, after logging a warning, when the family is
// unknown or the face cannot be loaded.
func (r *Registry) RegisterFont(family, fallback string, style Style, size int) *Face {
	if r.closed {
		return nil
	}
	if family == "" {
		r.log().Warn("glyphatlas: tried to register an empty font family")
		return nil
	}
	if size <= 0 {
		r.log().Warn("glyphatlas: invalid font size", "family", family, "size", size)
		return nil
	}

	fam := r.lookupFamily(family, style, false)
	if fam == nil {
		r.log().Warn("glyphatlas: unknown font family", "family", family)
		return nil
	}

	face := fam.face(size)
	if face != nil {
		face.Touch()
	} else {
		var err error
		face, err = fam.kind.loadFace(fam, size)
		if err != nil {
			r.log().Warn("glyphatlas: failed to load font face",
				"family", fam.name, "size", size, "err", err)
			return nil
		}
		fam.faces = append(fam.faces, face)
	}

	if face.hasKerning {
		if _, ok := face.kind.(faceKerner); !ok {
			face.hasKerning = false
		}
	}

	if fallback != "" {
		if setter, ok := face.kind.(fallbackSetter); ok {
			if ff := r.lookupFamily(fallback, style, true); ff != nil {
				setter.setFallback(ff)
			} else {
				r.log().Warn("glyphatlas: unknown font family", "family", fallback)
			}
		}
	}

	return face
}

// TouchAll re-announces the page textures of every loaded face.
func (r *Registry) TouchAll() {
	for _, fam := range r.families {
		for _, f := range fam.faces {
			f.Touch()
		}
	}
}

// FreeFonts unloads every family and face and releases their atlas pages.
func (r *Registry) FreeFonts() {
	for _, fam := range r.families {
		for _, f := range fam.faces {
			fam.kind.unloadFace(f)
			f.packer.release()
			f.glyphs.reset()
		}
		fam.faces = nil
		fam.kind.unloadFamily(fam)
	}
	r.families = nil
}

// Shutdown frees every font and the scratch buffer. The registry cannot
// be used afterwards.
func (r *Registry) Shutdown() {
	if r.closed {
		return
	}
	r.FreeFonts()
	r.scratch = nil
	r.closed = true
}

// WriteFontList writes a listing of the loaded families and faces to w.
func (r *Registry) WriteFontList(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Font families:"); err != nil {
		return err
	}
	for _, fam := range r.families {
		if _, err := fmt.Fprintln(w, fam.describe()); err != nil {
			return err
		}
		for _, f := range fam.faces {
			_, err := fmt.Fprintf(w, "* size: %dpx, height: %dpx, images: %d (%dx%d)\n",
				f.size, f.height, len(f.packer.pages), f.packer.width, f.packer.height)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Compile-time interface checks.
var (
	_ familyKind     = (*outlineFamily)(nil)
	_ faceKind       = (*outlineFace)(nil)
	_ faceKerner     = (*outlineFace)(nil)
	_ fallbackSetter = (*outlineFace)(nil)
)
