// Command glyphdemo renders coloured text through the glyph atlas into a
// PNG file and optionally dumps the atlas pages.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/backend"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	var (
		width    = flag.Int("width", 640, "image width")
		height   = flag.Int("height", 240, "image height")
		output   = flag.String("output", "glyphdemo.png", "output file")
		family   = flag.String("family", "Go", "font family")
		fallback = flag.String("fallback", "Go Mono", "fallback font family")
		size     = flag.Int("size", 24, "font size in pixels")
		text     = flag.String("text", "^7The quick ^1brown ^3fox ^7jumps over the ^2lazy ^5dog", "text to draw")
		fontDir  = flag.String("fonts", "", "directory to precache fonts from instead of the Go fonts")
		system   = flag.String("system", "", "comma separated system fonts to add as fallbacks")
		pages    = flag.String("pages", "", "directory to write the atlas pages to")
		list     = flag.Bool("list", false, "print the loaded font families")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	b := backend.NewSoftwareBackend()
	if err := b.Init(); err != nil {
		log.Fatalf("Failed to init backend: %v", err)
	}
	defer b.Close()

	opts := []glyphatlas.Option{glyphatlas.WithVerbose(*verbose)}
	if *fontDir != "" {
		opts = append(opts, glyphatlas.WithFS(os.DirFS(*fontDir)), glyphatlas.WithFontDirs(".", "fallback"))
	}
	if *system != "" {
		opts = append(opts, glyphatlas.WithSystemFallback(strings.Split(*system, ",")...))
	}
	r := glyphatlas.New(b, opts...)
	defer r.Shutdown()

	if *fontDir != "" || *system != "" {
		log.Printf("Precached %d font families", r.Precache())
	}
	if *fontDir == "" {
		loadGoFonts(r)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{R: 24, G: 28, B: 40, A: 255}), image.Point{}, draw.Src)
	b.SetTarget(dst)

	drawDemo(r, *family, *fallback, *size, *text, *width, *height)

	if *list {
		if err := r.WriteFontList(os.Stdout); err != nil {
			log.Fatalf("Failed to list fonts: %v", err)
		}
	}

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)

	if *pages != "" {
		if err := dumpPages(b, *pages); err != nil {
			log.Fatalf("Failed to dump atlas pages: %v", err)
		}
	}
}

func loadGoFonts(r *glyphatlas.Registry) {
	fonts := []struct {
		name     string
		data     []byte
		fallback bool
	}{
		{"goregular.ttf", goregular.TTF, false},
		{"gobold.ttf", gobold.TTF, false},
		{"goitalic.ttf", goitalic.TTF, false},
		{"gomono.ttf", gomono.TTF, true},
	}
	for _, f := range fonts {
		if _, err := r.LoadFamily(f.name, f.data, f.fallback); err != nil {
			log.Fatalf("Failed to load %s: %v", f.name, err)
		}
	}
}

func drawDemo(r *glyphatlas.Registry, family, fallback string, size int, text string, w, h int) {
	regular := r.RegisterFont(family, fallback, glyphatlas.StyleRegular, size)
	if regular == nil {
		log.Fatalf("Font family %q not available", family)
	}
	bold := r.RegisterFont(family, fallback, glyphatlas.StyleBold, size)
	small := r.RegisterFont(family, fallback, glyphatlas.StyleItalic, size*2/3)

	x, y := 16, 16
	regular.DrawRawString(x, y, text, w-2*x, color.White)
	y += regular.Height()

	if bold != nil {
		title := fmt.Sprintf("^3%s ^7bold, %dpx", bold.Family().Name(), size)
		bold.DrawRawString(x, y, title, 0, color.White)
		y += bold.Height()
	}

	if small != nil {
		// Clipped to a box narrower than the text.
		box := w / 2
		small.DrawClampString(x, y, glyphatlas.StripColors(text), x, y, x+box, y+small.Height(), color.NRGBA{R: 200, G: 200, B: 255, A: 255})
		y += small.Height()
		n := small.StrlenForWidth(text, box)
		small.DrawRawString(x, y, text[:n], 0, color.NRGBA{R: 255, G: 255, B: 255, A: 160})
		y += small.Height()
	}

	regular.DrawRawString(x, y, "Unicode: Ωμέγα Привет 中文 ^9(missing glyphs use U+FFFD)", w-2*x, color.White)
	if y+regular.Height() > h {
		log.Printf("Text exceeds the image height %d", h)
	}
}

func dumpPages(b *backend.SoftwareBackend, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, tex := range b.Textures() {
		if tex.Destroyed() {
			continue
		}
		name := filepath.Join(dir, fmt.Sprintf("page%02d.png", i))
		if err := savePNG(name, tex.Image()); err != nil {
			return err
		}
	}
	return nil
}

func savePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
