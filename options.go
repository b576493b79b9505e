package glyphatlas

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/gogpu/glyphatlas/outline"
)

// Default font search directories, relative to the registry file system.
const (
	DefaultFontDir     = "fonts"
	DefaultFallbackDir = "fonts/fallback"
)

// DefaultReplacementGlyph is the glyph drawn for characters that no loaded
// face can provide. Every family must contain it.
const DefaultReplacementGlyph = '�'

// Option configures a Registry during creation.
// Use functional options to customize Registry behavior.
//
// Example:
//
//	// Default configuration, fonts read from ./fonts
//	r := glyphatlas.New(b)
//
//	// Fonts embedded in the binary
//	r := glyphatlas.New(b, glyphatlas.WithFS(embedded))
type Option func(*options)

// options holds optional configuration for Registry creation.
type options struct {
	engine         outline.Engine
	fsys           fs.FS
	fontDir        string
	fallbackDir    string
	replacement    rune
	atlas          AtlasConfig
	logger         *slog.Logger
	verbose        bool
	systemFallback []string
}

// defaultOptions returns the default registry options.
func defaultOptions() options {
	return options{
		engine:      outline.Default(),
		fsys:        nil, // os.DirFS(".") on first use
		fontDir:     DefaultFontDir,
		fallbackDir: DefaultFallbackDir,
		replacement: DefaultReplacementGlyph,
		atlas:       DefaultAtlasConfig(),
	}
}

// fileSystem returns the configured file system.
func (o *options) fileSystem() fs.FS {
	if o.fsys == nil {
		o.fsys = os.DirFS(".")
	}
	return o.fsys
}

// WithEngine sets the outline engine used to parse and rasterize fonts.
// A nil engine keeps the default.
func WithEngine(e outline.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithFS sets the file system Precache scans for font files.
//
// Example:
//
//	//go:embed fonts
//	var fonts embed.FS
//
//	r := glyphatlas.New(b, glyphatlas.WithFS(fonts))
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithFontDirs sets the primary and fallback font directories.
// Empty names keep the defaults.
func WithFontDirs(primary, fallback string) Option {
	return func(o *options) {
		if primary != "" {
			o.fontDir = primary
		}
		if fallback != "" {
			o.fallbackDir = fallback
		}
	}
}

// WithReplacementGlyph sets the glyph substituted for characters that no
// face provides. Fonts lacking it are rejected at load time.
func WithReplacementGlyph(r rune) Option {
	return func(o *options) {
		o.replacement = r
	}
}

// WithAtlasConfig sets the atlas page geometry.
// An invalid configuration is logged and replaced by the defaults.
func WithAtlasConfig(c AtlasConfig) Option {
	return func(o *options) {
		o.atlas = c
	}
}

// WithLogger sets the logger for one registry, overriding the package
// logger configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithVerbose enables Info level reports of every family loaded.
func WithVerbose(v bool) Option {
	return func(o *options) {
		o.verbose = v
	}
}

// WithSystemFallback adds installed system fonts, looked up by file or
// family name (e.g. "DejaVuSans.ttf", "arial"), as fallback families
// during Precache.
func WithSystemFallback(names ...string) Option {
	return func(o *options) {
		o.systemFallback = append(o.systemFallback, names...)
	}
}
