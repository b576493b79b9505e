package glyphatlas

import (
	"image/color"
	"strings"
	"unicode/utf8"
)

// ColorEscape starts a colour escape in drawn strings: "^1" switches to
// ColorTable[1], "^^" is a literal '^'. A '^' followed by anything else
// is drawn as is.
const ColorEscape = '^'

// ColorTable holds the colours selected by "^0" through "^9".
// Escapes replace the red, green and blue channels of the tint and keep
// its alpha.
var ColorTable = [10]color.NRGBA{
	{0, 0, 0, 255},       // ^0 black
	{255, 0, 0, 255},     // ^1 red
	{0, 255, 0, 255},     // ^2 green
	{255, 255, 0, 255},   // ^3 yellow
	{0, 0, 255, 255},     // ^4 blue
	{0, 255, 255, 255},   // ^5 cyan
	{255, 0, 255, 255},   // ^6 magenta
	{255, 255, 255, 255}, // ^7 white
	{255, 128, 0, 255},   // ^8 orange
	{128, 128, 128, 255}, // ^9 grey
}

type tokenKind uint8

const (
	tokenEnd tokenKind = iota
	tokenChar
	tokenColor
)

// token is one decoded element of a colour string.
type token struct {
	kind  tokenKind
	char  rune
	color int
	size  int // bytes consumed
}

// nextToken decodes the element at the start of s. Invalid UTF-8 decodes
// to utf8.RuneError, one byte at a time.
func nextToken(s string) token {
	if s == "" {
		return token{kind: tokenEnd}
	}
	if s[0] == ColorEscape && len(s) > 1 {
		switch c := s[1]; {
		case c == ColorEscape:
			return token{kind: tokenChar, char: ColorEscape, size: 2}
		case c >= '0' && c <= '9':
			return token{kind: tokenColor, color: int(c - '0'), size: 2}
		}
	}
	r, n := utf8.DecodeRuneInString(s)
	return token{kind: tokenChar, char: r, size: n}
}

// StripColors removes colour escapes from s and unescapes "^^".
func StripColors(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for s != "" {
		tok := nextToken(s)
		if tok.kind == tokenChar {
			if tok.char == ColorEscape {
				b.WriteByte(ColorEscape)
			} else {
				b.WriteString(s[:tok.size])
			}
		}
		s = s[tok.size:]
	}
	return b.String()
}

// applyColor returns the tint selected by colour escape i.
func applyColor(tint color.NRGBA, i int) color.NRGBA {
	c := ColorTable[i]
	c.A = tint.A
	return c
}
