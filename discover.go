package glyphatlas

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/flopp/go-findfont"
)

// Font file extensions recognized by Precache, in scan order.
var fontExtensions = []string{".ttf", ".otf"}

// findSystemFont locates an installed font file by name.
var findSystemFont = findfont.Find

// Precache loads every font file found in the primary font directory,
// then in the fallback directory, and finally the system fonts named with
// WithSystemFallback. TrueType files are loaded before OpenType files in
// each directory. Files that cannot be loaded are logged and skipped.
//
// Precache returns the number of families loaded.
func (r *Registry) Precache() int {
	if r.closed {
		return 0
	}
	n := r.precacheDir(r.opts.fontDir, false)
	n += r.precacheDir(r.opts.fallbackDir, true)
	n += r.precacheSystem()
	return n
}

func (r *Registry) precacheDir(dir string, fallback bool) int {
	fsys := r.opts.fileSystem()
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log().Warn("glyphatlas: failed to list font directory", "dir", dir, "err", err)
		}
		return 0
	}

	var n int
	for _, ext := range fontExtensions {
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ext) {
				continue
			}
			name := path.Join(dir, e.Name())
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				r.log().Warn("glyphatlas: failed to read font file", "file", name, "err", err)
				continue
			}
			if r.loadFile(name, data, fallback) {
				n++
			}
		}
	}
	return n
}

func (r *Registry) precacheSystem() int {
	var n int
	for _, name := range r.opts.systemFallback {
		file, err := findSystemFont(name)
		if err != nil {
			r.log().Warn("glyphatlas: system font not found", "font", name, "err", err)
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			r.log().Warn("glyphatlas: failed to read font file", "file", file, "err", err)
			continue
		}
		if r.loadFile(file, data, true) {
			n++
		}
	}
	return n
}

func (r *Registry) loadFile(name string, data []byte, fallback bool) bool {
	if _, err := r.LoadFamily(name, data, fallback); err != nil {
		r.log().Warn("glyphatlas: failed to load font", "file", name, "err", err)
		return false
	}
	return true
}
