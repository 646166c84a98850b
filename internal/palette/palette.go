// Package palette maps escape-time results to console styles.
//
// The palette is a fixed, read-only sequence of 24 entries: six
// foreground/background hue pairs, each at four shading levels. Points in
// the set use the Black entry.
package palette

import (
	"fmt"

	"github.com/dshills/mandelterm/internal/fractal"
	"github.com/dshills/mandelterm/internal/renderer/core"
)

// Hue identifies a console color.
type Hue int

// Console hues.
const (
	HueBlack Hue = iota
	HueRed
	HueYellow
	HueGreen
	HueCyan
	HueBlue
	HueMagenta
)

// Color returns the terminal color for the hue.
func (h Hue) Color() core.Color {
	switch h {
	case HueRed:
		return core.ColorRed
	case HueYellow:
		return core.ColorYellow
	case HueGreen:
		return core.ColorGreen
	case HueCyan:
		return core.ColorCyan
	case HueBlue:
		return core.ColorBlue
	case HueMagenta:
		return core.ColorMagenta
	default:
		return core.ColorBlack
	}
}

func (h Hue) String() string {
	switch h {
	case HueBlack:
		return "black"
	case HueRed:
		return "red"
	case HueYellow:
		return "yellow"
	case HueGreen:
		return "green"
	case HueCyan:
		return "cyan"
	case HueBlue:
		return "blue"
	case HueMagenta:
		return "magenta"
	default:
		return fmt.Sprintf("hue(%d)", int(h))
	}
}

// Shade is a glyph density tier, 0 (solid) through 3 (lightest).
type Shade int

// Shading levels.
const (
	ShadeSolid Shade = iota
	ShadeDark
	ShadeMedium
	ShadeLight
)

// Glyphs indexed by Shade.
const (
	GlyphSolid  = '█'
	GlyphDark   = '▓'
	GlyphMedium = '▒'
	GlyphLight  = '░'
)

// Glyph returns the block character for the shade.
// Unknown levels draw solid.
func (s Shade) Glyph() rune {
	switch s {
	case ShadeDark:
		return GlyphDark
	case ShadeMedium:
		return GlyphMedium
	case ShadeLight:
		return GlyphLight
	default:
		return GlyphSolid
	}
}

// Entry is one palette slot.
type Entry struct {
	Fg    Hue
	Bg    Hue
	Shade Shade
}

// Style returns the terminal style of the entry.
func (e Entry) Style() core.Style {
	return core.NewStyle(e.Fg.Color(), e.Bg.Color())
}

// Glyph returns the character drawn for the entry.
func (e Entry) Glyph() rune {
	return e.Shade.Glyph()
}

// Cell returns the entry as a renderable cell.
func (e Entry) Cell() core.Cell {
	return core.NewStyledCell(e.Glyph(), e.Style())
}

func (e Entry) String() string {
	return fmt.Sprintf("%s/%s:%d", e.Fg, e.Bg, int(e.Shade))
}

// Black is the style of points in the set.
var Black = Entry{Fg: HueBlack, Bg: HueBlack, Shade: ShadeSolid}

// Size is the number of palette entries.
const Size = 24

// hueCycle is the order in which hue pairs repeat.
var hueCycle = [...][2]Hue{
	{HueRed, HueYellow},
	{HueYellow, HueGreen},
	{HueGreen, HueCyan},
	{HueCyan, HueBlue},
	{HueBlue, HueMagenta},
	{HueMagenta, HueRed},
}

var entries = func() [Size]Entry {
	var p [Size]Entry
	i := 0
	for _, pair := range hueCycle {
		for s := ShadeSolid; s <= ShadeLight; s++ {
			p[i] = Entry{Fg: pair[0], Bg: pair[1], Shade: s}
			i++
		}
	}
	return p
}()

// At returns palette entry i modulo Size.
func At(i int) Entry {
	i %= Size
	if i < 0 {
		i += Size
	}
	return entries[i]
}

// Entries returns a copy of the palette in order.
func Entries() [Size]Entry {
	return entries
}

// Select returns the style for an escape-time result.
func Select(r fractal.Result) Entry {
	if r.Member {
		return Black
	}
	return At(r.Steps)
}
