package glyphatlas

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAtlasConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*AtlasConfig)
		field  string
	}{
		{"default", func(*AtlasConfig) {}, ""},
		{"narrow page", func(c *AtlasConfig) { c.PageWidth = 8 }, "PageWidth"},
		{"wide page", func(c *AtlasConfig) { c.PageWidth = 16384 }, "PageWidth"},
		{"short small tier", func(c *AtlasConfig) { c.SmallHeight = 4 }, "SmallHeight"},
		{"medium below small", func(c *AtlasConfig) { c.MediumHeight = 64 }, "MediumHeight"},
		{"large below medium", func(c *AtlasConfig) { c.LargeHeight = 128 }, "LargeHeight"},
		{"tall large tier", func(c *AtlasConfig) { c.LargeHeight = 9000 }, "LargeHeight"},
		{"zero increment", func(c *AtlasConfig) { c.ScratchIncrement = 0 }, "ScratchIncrement"},
		{"odd increment", func(c *AtlasConfig) { c.ScratchIncrement = 48 }, "ScratchIncrement"},
		{"equal tiers", func(c *AtlasConfig) { c.MediumHeight, c.LargeHeight = 128, 128 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultAtlasConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var cfgErr *AtlasConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *AtlasConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
			if !strings.HasPrefix(err.Error(), "glyphatlas: invalid atlas config."+tt.field) {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestTierHeight(t *testing.T) {
	c := DefaultAtlasConfig()
	tests := []struct {
		lineHeight int
		want       int
	}{
		{1, 128},
		{24, 128},
		{25, 256},
		{48, 256},
		{49, 512},
		{300, 512},
	}
	for _, tt := range tests {
		if got := c.tierHeight(tt.lineHeight); got != tt.want {
			t.Errorf("tierHeight(%d) = %d, want %d", tt.lineHeight, got, tt.want)
		}
	}
}

func TestInvalidAtlasConfigFallsBack(t *testing.T) {
	var logs bytes.Buffer
	bad := DefaultAtlasConfig()
	bad.PageWidth = 1
	r, _, _ := testRegistry(t, &logs, nil, WithAtlasConfig(bad))

	if r.opts.atlas != DefaultAtlasConfig() {
		t.Errorf("atlas = %+v, want defaults", r.opts.atlas)
	}
	if !strings.Contains(logs.String(), "PageWidth") {
		t.Errorf("invalid config not logged:\n%s", logs.String())
	}
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.engine == nil {
		t.Error("engine = nil")
	}
	if o.fontDir != DefaultFontDir || o.fallbackDir != DefaultFallbackDir {
		t.Errorf("dirs = %q, %q", o.fontDir, o.fallbackDir)
	}
	if o.replacement != DefaultReplacementGlyph {
		t.Errorf("replacement = %U", o.replacement)
	}
	if o.fileSystem() == nil {
		t.Error("fileSystem() = nil")
	}
}

func TestOptions(t *testing.T) {
	o := defaultOptions()
	e := newFakeEngine()
	for _, opt := range []Option{
		WithEngine(e),
		WithEngine(nil),
		WithFontDirs("a", ""),
		WithFontDirs("", "b"),
		WithReplacementGlyph('?'),
		WithVerbose(true),
		WithSystemFallback("x.ttf"),
		WithSystemFallback("y", "z"),
	} {
		opt(&o)
	}
	if o.engine != e {
		t.Error("WithEngine(nil) replaced the engine")
	}
	if o.fontDir != "a" || o.fallbackDir != "b" {
		t.Errorf("dirs = %q, %q, want a, b", o.fontDir, o.fallbackDir)
	}
	if o.replacement != '?' || !o.verbose {
		t.Errorf("replacement = %q verbose = %v", o.replacement, o.verbose)
	}
	if got := strings.Join(o.systemFallback, ","); got != "x.ttf,y,z" {
		t.Errorf("systemFallback = %q", got)
	}
}
