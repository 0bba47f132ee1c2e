// Package termemu implements a small ANSI terminal emulator, one instance
// per terminal window, that turns bytes read from a dialed-out telnet host
// into a screen of cells a window can display.
package termemu

import (
	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

// TerminalType selects how incoming bytes are interpreted.
type TerminalType int

const (
	TypeAnsi TerminalType = iota
	TypeVt100
	TypeXterm
	TypeRaw
)

// TerminalTypeFromString parses a wire terminal-type name, defaulting
// anything unrecognized to Ansi.
func TerminalTypeFromString(s string) TerminalType {
	switch lower(s) {
	case "vt100":
		return TypeVt100
	case "xterm":
		return TypeXterm
	case "raw":
		return TypeRaw
	default:
		return TypeAnsi
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

type parserState int

const (
	parserNormal parserState = iota
	parserEscape
	parserCSI
	parserOSC
)

// Terminal is the per-window ANSI terminal emulator: a screen buffer,
// cursor and SGR state, a bounded scrollback, and a queue of bytes the
// remote host is owed in reply (device status reports).
type Terminal struct {
	ID string

	screen        [][]core.Cell
	Width, Height int

	CursorX, CursorY int

	FG    core.Color
	BG    core.Color
	Attrs core.Attrs

	savedCursor   [2]int
	hasSavedCursor bool

	Scrollback    [][]core.Cell
	MaxScrollback int

	Dirty bool

	state     parserState
	escBuffer []byte

	TerminalType TerminalType

	ResponseQueue [][]byte
}

func blankRow(width int, fg, bg core.Color, attrs core.Attrs) []core.Cell {
	row := make([]core.Cell, width)
	for i := range row {
		row[i] = core.Cell{Char: ' ', FG: fg, BG: bg, Attrs: attrs}
	}
	return row
}

func newScreen(width, height int) [][]core.Cell {
	screen := make([][]core.Cell, height)
	for y := range screen {
		screen[y] = blankRow(width, core.White, core.Black, core.Attrs{})
	}
	return screen
}

// NewTerminal creates a terminal of the given size and type.
func NewTerminal(id string, width, height int, termType TerminalType) *Terminal {
	return &Terminal{
		ID:            id,
		screen:        newScreen(width, height),
		Width:         width,
		Height:        height,
		FG:            core.White,
		BG:            core.Black,
		MaxScrollback: 1000,
		Dirty:         true,
		TerminalType:  termType,
	}
}

// ProcessData feeds bytes read from the remote host into the emulator.
// Raw-type terminals bypass the ANSI parser entirely: printable bytes are
// written literally, '\n' advances a line, '\r' returns to column 0, and
// everything else is dropped.
func (t *Terminal) ProcessData(data []byte) {
	if t.TerminalType == TypeRaw {
		for _, b := range data {
			switch {
			case b >= 32 && b < 127:
				t.putChar(rune(b))
			case b == '\n':
				t.newline()
			case b == '\r':
				t.CursorX = 0
			}
		}
		t.Dirty = true
		return
	}

	for _, b := range data {
		t.processByte(b)
	}
	t.Dirty = true
}

// Screen returns the live screen buffer for rendering.
func (t *Terminal) Screen() [][]core.Cell {
	return t.screen
}

// Resize reallocates the screen to the new dimensions, preserving the
// overlapping region and clamping the cursor into bounds. Fill color for
// any newly exposed cells is always the terminal default (white on
// black), matching the emulator's own reset color rather than whatever is
// currently selected.
func (t *Terminal) Resize(width, height int) {
	newScr := newScreen(width, height)
	for y := 0; y < height && y < t.Height; y++ {
		for x := 0; x < width && x < t.Width; x++ {
			newScr[y][x] = t.screen[y][x]
		}
	}
	t.screen = newScr
	t.Width, t.Height = width, height
	if t.CursorX >= width {
		t.CursorX = width - 1
	}
	if t.CursorY >= height {
		t.CursorY = height - 1
	}
	t.Dirty = true
}

func (t *Terminal) reset() {
	t.CursorX, t.CursorY = 0, 0
	t.FG = core.White
	t.BG = core.Black
	t.Attrs = core.Attrs{}
	t.hasSavedCursor = false
	t.eraseAll()
}
