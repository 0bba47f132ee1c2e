package core

// BorderStyle selects the glyph set a bordered Window draws with.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderHeavy
	BorderASCII
)

// BorderGlyphs holds the eleven glyphs used to draw a bordered rectangle:
// four corners, two edges, and five junctions (unused by Window today but
// kept for callers that draw interior separators).
type BorderGlyphs struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
	TeeLeft, TeeRight, TeeTop, TeeBottom, Cross rune
}

var borderGlyphTable = map[BorderStyle]BorderGlyphs{
	BorderSingle: {
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
		TeeLeft: '├', TeeRight: '┤', TeeTop: '┬', TeeBottom: '┴', Cross: '┼',
	},
	BorderDouble: {
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
		TeeLeft: '╠', TeeRight: '╣', TeeTop: '╦', TeeBottom: '╩', Cross: '╬',
	},
	BorderRounded: {
		TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
		Horizontal: '─', Vertical: '│',
		TeeLeft: '├', TeeRight: '┤', TeeTop: '┬', TeeBottom: '┴', Cross: '┼',
	},
	BorderHeavy: {
		TopLeft: '┏', TopRight: '┓', BottomLeft: '┗', BottomRight: '┛',
		Horizontal: '━', Vertical: '┃',
		TeeLeft: '┣', TeeRight: '┫', TeeTop: '┳', TeeBottom: '┻', Cross: '╋',
	},
	BorderASCII: {
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
		TeeLeft: '+', TeeRight: '+', TeeTop: '+', TeeBottom: '+', Cross: '+',
	},
}

// Glyphs returns the glyph set for a border style. BorderNone returns the
// zero value; callers must check HasBorder first.
func (b BorderStyle) Glyphs() BorderGlyphs {
	return borderGlyphTable[b]
}

// HasBorder reports whether this style draws anything.
func (b BorderStyle) HasBorder() bool {
	return b != BorderNone
}

// Grid is a fixed-size, row-major buffer of cells. All mutating methods are
// bounds-checked no-ops on out-of-range coordinates; nothing panics or
// returns an error for bad geometry, because the game driving the display
// is untrusted input.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// NewGrid allocates a cols x rows grid of default cells.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows}
	g.cells = make([]Cell, cols*rows)
	for i := range g.cells {
		g.cells[i] = NewCell()
	}
	return g
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Cols && y < g.Rows
}

func (g *Grid) index(x, y int) int {
	return y*g.Cols + x
}

// Get returns the cell at (x,y) and true, or the zero Cell and false if
// out of bounds.
func (g *Grid) Get(x, y int) (Cell, bool) {
	if !g.inBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[g.index(x, y)], true
}

// GetRef returns a pointer to the live cell at (x,y), or nil if out of
// bounds. Used internally by operations that need to mutate in place.
func (g *Grid) GetRef(x, y int) *Cell {
	if !g.inBounds(x, y) {
		return nil
	}
	return &g.cells[g.index(x, y)]
}

// Set writes a full cell value at (x,y); a no-op if out of bounds.
func (g *Grid) Set(x, y int, ch rune, fg, bg Color, attrs Attrs) {
	c := g.GetRef(x, y)
	if c == nil {
		return
	}
	c.Set(ch, fg, bg, attrs)
}

// WriteStr writes text starting at (x,y), truncating at the right edge
// without wrapping. bg is optional: pass nil to preserve each cell's
// existing background (used by Window.Print's "no bg" path).
func (g *Grid) WriteStr(x, y int, text string, fg Color, bg *Color, attrs Attrs) {
	if y < 0 || y >= g.Rows {
		return
	}
	cx := x
	for _, r := range text {
		if cx >= g.Cols {
			break
		}
		if cx >= 0 {
			var bgv Color
			if bg != nil {
				bgv = *bg
			} else if existing := g.GetRef(cx, y); existing != nil {
				bgv = existing.BG
			}
			g.Set(cx, y, r, fg, bgv, attrs)
		}
		cx++
	}
}

// FillRect fills the rectangle [x,x+w) x [y,y+h) with the given cell value.
func (g *Grid) FillRect(x, y, w, h int, ch rune, fg, bg Color, attrs Attrs) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			g.Set(col, row, ch, fg, bg, attrs)
		}
	}
}

// HLine draws a horizontal line of length w starting at (x,y).
func (g *Grid) HLine(x, y, w int, ch rune, fg, bg Color) {
	for i := 0; i < w; i++ {
		g.Set(x+i, y, ch, fg, bg, Attrs{})
	}
}

// VLine draws a vertical line of length h starting at (x,y).
func (g *Grid) VLine(x, y, h int, ch rune, fg, bg Color) {
	for i := 0; i < h; i++ {
		g.Set(x, y+i, ch, fg, bg, Attrs{})
	}
}

// DrawBox draws a bordered rectangle with the given style. Requires w>=2
// and h>=2; otherwise it is a no-op.
func (g *Grid) DrawBox(x, y, w, h int, style BorderStyle, fg, bg Color) {
	if w < 2 || h < 2 || !style.HasBorder() {
		return
	}
	gl := style.Glyphs()
	g.Set(x, y, gl.TopLeft, fg, bg, Attrs{})
	g.Set(x+w-1, y, gl.TopRight, fg, bg, Attrs{})
	g.Set(x, y+h-1, gl.BottomLeft, fg, bg, Attrs{})
	g.Set(x+w-1, y+h-1, gl.BottomRight, fg, bg, Attrs{})
	g.HLine(x+1, y, w-2, gl.Horizontal, fg, bg)
	g.HLine(x+1, y+h-1, w-2, gl.Horizontal, fg, bg)
	g.VLine(x, y+1, h-2, gl.Vertical, fg, bg)
	g.VLine(x+w-1, y+1, h-2, gl.Vertical, fg, bg)
}

// Clear resets every cell to its default value.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = NewCell()
	}
}

// MarkAllDirty sets the dirty flag on every cell.
func (g *Grid) MarkAllDirty() {
	for i := range g.cells {
		g.cells[i].Dirty = true
	}
}

// MarkAllClean clears the dirty flag on every cell.
func (g *Grid) MarkAllClean() {
	for i := range g.cells {
		g.cells[i].Dirty = false
	}
}

// DirtyCell pairs a grid coordinate with its cell value, returned by
// IterDirty.
type DirtyCell struct {
	X, Y int
	Cell Cell
}

// IterDirty returns every cell currently marked dirty, in row-major order.
func (g *Grid) IterDirty() []DirtyCell {
	var out []DirtyCell
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.cells[g.index(x, y)]
			if c.Dirty {
				out = append(out, DirtyCell{X: x, Y: y, Cell: c})
			}
		}
	}
	return out
}

// DirtyCount returns the number of dirty cells without allocating.
func (g *Grid) DirtyCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Dirty {
			n++
		}
	}
	return n
}

// Resize reallocates the grid to the new dimensions, destroying all
// contents (unlike a Window resize, a raw Grid resize does not preserve
// overlapping content).
func (g *Grid) Resize(cols, rows int) {
	g.Cols = cols
	g.Rows = rows
	g.cells = make([]Cell, cols*rows)
	for i := range g.cells {
		g.cells[i] = NewCell()
	}
}

// Blit copies src onto dst at offset (dx,dy), clipped to the intersection
// of both grids' bounds. Cells copied as different values mark the
// destination dirty through the normal Set path.
func Blit(dst, src *Grid, dx, dy int) {
	for sy := 0; sy < src.Rows; sy++ {
		ty := dy + sy
		if ty < 0 || ty >= dst.Rows {
			continue
		}
		for sx := 0; sx < src.Cols; sx++ {
			tx := dx + sx
			if tx < 0 || tx >= dst.Cols {
				continue
			}
			c := src.cells[src.index(sx, sy)]
			dst.Set(tx, ty, c.Char, c.FG, c.BG, c.Attrs)
		}
	}
}
