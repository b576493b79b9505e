// Package glyphatlas rasterizes font glyphs on demand and packs them into
// texture atlas pages for text drawing.
//
// # Overview
//
// A [Registry] holds font families discovered at startup. Each family is
// loaded at one or more pixel sizes as a [Face]. A face caches one [Glyph]
// record per character code and rasterizes glyphs the first time they are
// needed, packing the bitmaps row by row into fixed-width [Page] textures
// created through a [backend.Backend].
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/glyphatlas"
//		"github.com/gogpu/glyphatlas/backend"
//	)
//
//	b := backend.NewSoftwareBackend()
//	_ = b.Init()
//
//	r := glyphatlas.New(b)
//	defer r.Shutdown()
//	r.Precache() // loads ./fonts and ./fonts/fallback
//
//	face := r.RegisterFont("DejaVu Sans", "Noto Sans CJK", glyphatlas.StyleRegular, 14)
//	face.DrawRawString(10, 10, "^1Hello ^7world", 0, color.White)
//
// # Fallback Faces
//
// Characters missing from a face are looked up in its fallback family,
// which is opened at the same size on first use. Each character is
// searched at most once per source; misses are remembered. Characters
// found nowhere are drawn with the replacement glyph (U+FFFD by default).
//
// # Colour Strings
//
// Drawn strings may carry colour escapes: "^0" through "^9" select an entry
// of [ColorTable] and "^^" is a literal caret.
//
// # Atlas Layout
//
// Pages are [AtlasConfig.PageWidth] pixels wide; their height depends on
// the face line height. Each glyph cell has a 1px transparent border
// shared with its neighbours on the right and below. Packed glyphs never
// move, so texture coordinates stay valid for the lifetime of the face.
//
// # Concurrency
//
// A Registry and everything reachable from it must be used from a single
// goroutine.
package glyphatlas
