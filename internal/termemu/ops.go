package termemu

import "github.com/benj-edwards/ascii-processing-unit/internal/core"

// putChar writes ch at the cursor with the current SGR state and advances
// the cursor, wrapping to the next line first if the cursor has run off
// the right edge.
func (t *Terminal) putChar(ch rune) {
	if t.CursorX >= t.Width {
		t.CursorX = 0
		t.newline()
	}

	if t.CursorY < t.Height && t.CursorX < t.Width {
		t.screen[t.CursorY][t.CursorX] = core.Cell{Char: ch, FG: t.FG, BG: t.BG, Attrs: t.Attrs}
		t.CursorX++
	}
}

// newline advances the cursor to the next row, scrolling the screen up
// one line if already on the bottom row.
func (t *Terminal) newline() {
	if t.CursorY < t.Height-1 {
		t.CursorY++
	} else {
		t.scrollUp()
	}
}

// scrollUp moves every row up by one, evicting the top row into the
// bounded scrollback and filling the newly exposed bottom row with the
// current SGR colors.
func (t *Terminal) scrollUp() {
	if len(t.screen) == 0 {
		return
	}
	top := t.screen[0]
	t.screen = t.screen[1:]
	t.Scrollback = append(t.Scrollback, top)
	for len(t.Scrollback) > t.MaxScrollback {
		t.Scrollback = t.Scrollback[1:]
	}
	t.screen = append(t.screen, blankRow(t.Width, t.FG, t.BG, core.Attrs{}))
}

// scrollDown moves every row down by one, dropping the bottom row (no
// scrollback restore — mirrors scrollUp without the symmetric history).
func (t *Terminal) scrollDown() {
	if len(t.screen) == 0 {
		return
	}
	t.screen = t.screen[:len(t.screen)-1]
	newTop := blankRow(t.Width, t.FG, t.BG, core.Attrs{})
	t.screen = append([][]core.Cell{newTop}, t.screen...)
}

func (t *Terminal) blank() core.Cell {
	return core.Cell{Char: ' ', FG: t.FG, BG: t.BG}
}

func (t *Terminal) eraseBelow() {
	t.eraseLineRight()
	for y := t.CursorY + 1; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			t.screen[y][x] = t.blank()
		}
	}
}

func (t *Terminal) eraseAbove() {
	for y := 0; y < t.CursorY; y++ {
		for x := 0; x < t.Width; x++ {
			t.screen[y][x] = t.blank()
		}
	}
	t.eraseLineLeft()
}

func (t *Terminal) eraseAll() {
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			t.screen[y][x] = t.blank()
		}
	}
}

func (t *Terminal) eraseLineRight() {
	for x := t.CursorX; x < t.Width; x++ {
		t.screen[t.CursorY][x] = t.blank()
	}
}

func (t *Terminal) eraseLineLeft() {
	end := minInt(t.CursorX, t.Width-1)
	for x := 0; x <= end; x++ {
		t.screen[t.CursorY][x] = t.blank()
	}
}

func (t *Terminal) eraseLine() {
	for x := 0; x < t.Width; x++ {
		t.screen[t.CursorY][x] = t.blank()
	}
}
