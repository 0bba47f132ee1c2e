// Package core implements the fixed-size character grid, the bordered
// window abstraction that composites onto it, and the window-chrome
// interaction state machine that intercepts mouse events before they
// reach a game.
package core

// Color is the standard 16-entry ANSI palette. Index order matches the
// classic ANSI SGR numbering: 0-7 are the normal colors, 8-15 their bright
// counterparts.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// DefaultFG and DefaultBG match the wire protocol's documented defaults
// (fg=7 White, bg=0 Black).
const (
	DefaultFG = White
	DefaultBG = Black
)

// ColorFromByte clamps an arbitrary integer onto the 16-color palette,
// defaulting out-of-range values to White.
func ColorFromByte(v int) Color {
	if v >= 0 && v <= 15 {
		return Color(v)
	}
	return White
}

// FGCode returns the ANSI SGR foreground code for this color.
func (c Color) FGCode() int {
	v := int(c)
	if v < 8 {
		return 30 + v
	}
	return 90 + (v - 8)
}

// BGCode returns the ANSI SGR background code for this color.
func (c Color) BGCode() int {
	v := int(c)
	if v < 8 {
		return 40 + v
	}
	return 100 + (v - 8)
}

// Attrs holds the boolean display attributes a cell may carry.
type Attrs struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Blink     bool
	Reverse   bool
}

// Any reports whether any attribute is set.
func (a Attrs) Any() bool {
	return a.Bold || a.Dim || a.Italic || a.Underline || a.Blink || a.Reverse
}

// SGRCodes returns the SGR "turn on" codes for the set attributes, in a
// fixed, stable order.
func (a Attrs) SGRCodes() []int {
	var codes []int
	if a.Bold {
		codes = append(codes, 1)
	}
	if a.Dim {
		codes = append(codes, 2)
	}
	if a.Italic {
		codes = append(codes, 3)
	}
	if a.Underline {
		codes = append(codes, 4)
	}
	if a.Blink {
		codes = append(codes, 5)
	}
	if a.Reverse {
		codes = append(codes, 7)
	}
	return codes
}

// Cell is a single character position: a codepoint plus its colors,
// attributes, and a dirty flag set whenever a mutator observes a change.
type Cell struct {
	Char  rune
	FG    Color
	BG    Color
	Attrs Attrs
	Dirty bool
}

// NewCell returns the default cell: a space, White on Black, no
// attributes, dirty (a freshly created surface must redraw once).
func NewCell() Cell {
	return Cell{Char: ' ', FG: DefaultFG, BG: DefaultBG, Dirty: true}
}

// Set overwrites the cell's fields, marking it dirty only if any field
// actually changed.
func (c *Cell) Set(ch rune, fg, bg Color, attrs Attrs) {
	if c.Char != ch || c.FG != fg || c.BG != bg || c.Attrs != attrs {
		c.Char = ch
		c.FG = fg
		c.BG = bg
		c.Attrs = attrs
		c.Dirty = true
	}
}

// SetChar updates only the character, marking dirty on change.
func (c *Cell) SetChar(ch rune) {
	if c.Char != ch {
		c.Char = ch
		c.Dirty = true
	}
}

// Clear resets the cell to its default value.
func (c *Cell) Clear() {
	*c = NewCell()
}
