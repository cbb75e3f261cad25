package screen

import (
	"strconv"
	"unicode/utf8"

	"github.com/kamstrup/intmap"
)

// Glyph is a Code Page 437 code point. Every glyph on a screen comes from the
// 256-entry CP437 table so it can be drawn by any font that covers the set.
type Glyph uint8

// Rune returns the Unicode rune drawn for g.
func (g Glyph) Rune() rune {
	return CP437[g]
}

func (g Glyph) String() string {
	return string(CP437[g])
}

// CP437 maps every code page 437 code to its Unicode rune. Code 0 has no
// printable form and is drawn as a space.
var CP437 [256]rune

var cp437Rows = [16]string{
	" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼",
	"►◄↕‼¶§▬↨↑↓→←∟↔▲▼",
	" !\"#$%&'()*+,-./",
	"0123456789:;<=>?",
	"@ABCDEFGHIJKLMNO",
	"PQRSTUVWXYZ[\\]^_",
	"`abcdefghijklmno",
	"pqrstuvwxyz{|}~⌂",
	"ÇüéâäàåçêëèïîìÄÅ",
	"ÉæÆôöòûùÿÖÜ¢£¥₧ƒ",
	"áíóúñÑªº¿⌐¬½¼¡«»",
	"░▒▓│┤╡╢╖╕╣║╗╝╜╛┐",
	"└┴┬├─┼╞╟╚╔╩╦╠═╬╧",
	"╨╤╥╙╘╒╓╫╪┘┌█▄▌▐▀",
	"αßΓπΣσµτΦΘΩδ∞φε∩",
	"≡±≥≤⌠⌡÷≈°∙·√ⁿ²■\u00a0",
}

var runeToGlyph = intmap.New[rune, Glyph](256)

func init() {
	i := 0
	for row, s := range cp437Rows {
		if utf8.RuneCountInString(s) != 16 {
			panic("cp437 row " + strconv.Itoa(row) + " does not hold 16 glyphs")
		}
		for _, r := range s {
			CP437[i] = r
			i++
		}
	}
	// Code 0 shares its rune with the space at 0x20; skip it so the reverse
	// lookup lands on the printable code.
	for code := 1; code < len(CP437); code++ {
		runeToGlyph.PutIfNotExists(CP437[code], Glyph(code))
	}
}

// GlyphOf returns the CP437 code that draws r.
func GlyphOf(r rune) (Glyph, bool) {
	return runeToGlyph.Get(r)
}

// MustGlyph is GlyphOf for runes known to be in the table.
func MustGlyph(r rune) Glyph {
	g, ok := GlyphOf(r)
	if !ok {
		panic("rune " + string(r) + " is not in code page 437")
	}
	return g
}

// Box-drawing codes used by auto-wall rendering.
const (
	GlyphSpace Glyph = 0x20
	GlyphWall  Glyph = 0x23 // '#'
	GlyphBlock Glyph = 0xDB

	GlyphSingleHorizontal Glyph = 0xC4
	GlyphSingleVertical   Glyph = 0xB3
	GlyphSingleDownRight  Glyph = 0xDA
	GlyphSingleDownLeft   Glyph = 0xBF
	GlyphSingleUpRight    Glyph = 0xC0
	GlyphSingleUpLeft     Glyph = 0xD9
	GlyphSingleTeeRight   Glyph = 0xC3
	GlyphSingleTeeLeft    Glyph = 0xB4
	GlyphSingleTeeDown    Glyph = 0xC2
	GlyphSingleTeeUp      Glyph = 0xC1
	GlyphSingleCross      Glyph = 0xC5

	GlyphDoubleHorizontal Glyph = 0xCD
	GlyphDoubleVertical   Glyph = 0xBA
	GlyphDoubleDownRight  Glyph = 0xC9
	GlyphDoubleDownLeft   Glyph = 0xBB
	GlyphDoubleUpRight    Glyph = 0xC8
	GlyphDoubleUpLeft     Glyph = 0xBC
	GlyphDoubleTeeRight   Glyph = 0xCC
	GlyphDoubleTeeLeft    Glyph = 0xB9
	GlyphDoubleTeeDown    Glyph = 0xCB
	GlyphDoubleTeeUp      Glyph = 0xCA
	GlyphDoubleCross      Glyph = 0xCE
)

// WallMask records which orthogonal neighbours of a wall cell are walls too.
type WallMask uint8

const (
	WallNorth WallMask = 1 << iota
	WallEast
	WallSouth
	WallWest
)

var singleWalls = [16]Glyph{
	WallNorth:                                  GlyphSingleVertical,
	WallSouth:                                  GlyphSingleVertical,
	WallNorth | WallSouth:                      GlyphSingleVertical,
	WallEast:                                   GlyphSingleHorizontal,
	WallWest:                                   GlyphSingleHorizontal,
	WallEast | WallWest:                        GlyphSingleHorizontal,
	WallEast | WallSouth:                       GlyphSingleDownRight,
	WallWest | WallSouth:                       GlyphSingleDownLeft,
	WallNorth | WallEast:                       GlyphSingleUpRight,
	WallNorth | WallWest:                       GlyphSingleUpLeft,
	WallNorth | WallEast | WallSouth:           GlyphSingleTeeRight,
	WallNorth | WallWest | WallSouth:           GlyphSingleTeeLeft,
	WallEast | WallWest | WallSouth:            GlyphSingleTeeDown,
	WallNorth | WallEast | WallWest:            GlyphSingleTeeUp,
	WallNorth | WallEast | WallSouth | WallWest: GlyphSingleCross,
}

var doubleWalls = [16]Glyph{
	WallNorth:                                  GlyphDoubleVertical,
	WallSouth:                                  GlyphDoubleVertical,
	WallNorth | WallSouth:                      GlyphDoubleVertical,
	WallEast:                                   GlyphDoubleHorizontal,
	WallWest:                                   GlyphDoubleHorizontal,
	WallEast | WallWest:                        GlyphDoubleHorizontal,
	WallEast | WallSouth:                       GlyphDoubleDownRight,
	WallWest | WallSouth:                       GlyphDoubleDownLeft,
	WallNorth | WallEast:                       GlyphDoubleUpRight,
	WallNorth | WallWest:                       GlyphDoubleUpLeft,
	WallNorth | WallEast | WallSouth:           GlyphDoubleTeeRight,
	WallNorth | WallWest | WallSouth:           GlyphDoubleTeeLeft,
	WallEast | WallWest | WallSouth:            GlyphDoubleTeeDown,
	WallNorth | WallEast | WallWest:            GlyphDoubleTeeUp,
	WallNorth | WallEast | WallSouth | WallWest: GlyphDoubleCross,
}

// WallGlyph picks the box-drawing glyph for a wall with the given neighbours.
// An isolated wall keeps its own glyph.
func WallGlyph(own Glyph, mask WallMask, line WallLine) Glyph {
	mask &= WallNorth | WallEast | WallSouth | WallWest
	if mask == 0 {
		return own
	}
	if line == WallLineDouble {
		return doubleWalls[mask]
	}
	return singleWalls[mask]
}
