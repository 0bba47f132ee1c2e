// Package renderer turns a core.Grid into the ANSI byte stream a raw
// telnet client understands.
package renderer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

// csi is the Control Sequence Introducer every escape below is built from.
const csi = "\x1b["

// MouseMode selects which xterm mouse-reporting protocol a renderer turns
// on for a client. Unknown names fall back to Sgr, the only mode that
// reports coordinates beyond 223 unambiguously.
type MouseMode int

const (
	MouseModeNone MouseMode = iota
	MouseModeNormal
	MouseModeButton
	MouseModeAny
	MouseModeSgr
)

// MouseModeFromString parses a wire mouse-mode name, defaulting unknown
// values to Sgr.
func MouseModeFromString(s string) MouseMode {
	switch strings.ToLower(s) {
	case "none":
		return MouseModeNone
	case "normal":
		return MouseModeNormal
	case "button":
		return MouseModeButton
	case "any":
		return MouseModeAny
	case "sgr":
		return MouseModeSgr
	default:
		return MouseModeSgr
	}
}

// Renderer turns a display Grid into a byte stream for a specific client
// protocol. Render dispatches to RenderFull or RenderDirty depending on
// forceFull, matching the behavior every caller wants by default.
type Renderer interface {
	Name() string
	Dimensions() (cols, rows int)
	Init() string
	Shutdown() string
	Clear() string
	RenderFull(g *core.Grid) string
	RenderDirty(g *core.Grid) string
	Render(g *core.Grid, forceFull bool) string
	EnableMouse(mode MouseMode) string
	DisableMouse() string
}

// AnsiIbmRenderer renders an IBM-PC-compatible ANSI stream: 16 colors, the
// standard box-drawing/CP437-adjacent glyph set passed straight through,
// and cursor-position tracking so it never re-emits an SGR sequence or a
// cursor move the terminal is already at.
type AnsiIbmRenderer struct {
	cols, rows int

	cursorX, cursorY int

	currentFG    core.Color
	currentBG    core.Color
	currentAttrs core.Attrs
}

// NewAnsiIbmRenderer creates a renderer sized to cols x rows.
func NewAnsiIbmRenderer(cols, rows int) *AnsiIbmRenderer {
	r := &AnsiIbmRenderer{cols: cols, rows: rows}
	r.reset()
	return r
}

// StandardAnsiIbmRenderer returns the classic 80x24 renderer.
func StandardAnsiIbmRenderer() *AnsiIbmRenderer {
	return NewAnsiIbmRenderer(80, 24)
}

// New selects a renderer implementation by config name, the way
// MouseModeFromString selects a mouse mode from a wire string. Only
// "ansi-ibm" exists today; any other name falls back to it rather than
// failing, since config.Load already clamps the name to a known value
// before it gets here.
func New(name string, cols, rows int) Renderer {
	switch name {
	case "ansi-ibm":
		return NewAnsiIbmRenderer(cols, rows)
	default:
		return NewAnsiIbmRenderer(cols, rows)
	}
}

func (r *AnsiIbmRenderer) reset() {
	r.cursorX, r.cursorY = 0, 0
	r.currentFG = core.White
	r.currentBG = core.Black
	r.currentAttrs = core.Attrs{}
}

func (r *AnsiIbmRenderer) moveCursor(x, y int) string {
	r.cursorX, r.cursorY = x, y
	return fmt.Sprintf("%s%d;%dH", csi, y+1, x+1)
}

// sgr emits the minimal SGR sequence to transition from the renderer's
// remembered state to (fg, bg, attrs). Turning an attribute off has no
// individual SGR code, so any attribute going from on to off forces a full
// reset (SGR 0); after a reset the renderer's remembered colors are set to
// a sentinel outside the 16-color palette (Color 0xff) so the very next
// cell is guaranteed to re-emit its real colors even if they happen to be
// the terminal's post-reset default.
func (r *AnsiIbmRenderer) sgr(fg, bg core.Color, attrs core.Attrs) string {
	var codes []int

	needsReset := (r.currentAttrs.Bold && !attrs.Bold) ||
		(r.currentAttrs.Dim && !attrs.Dim) ||
		(r.currentAttrs.Italic && !attrs.Italic) ||
		(r.currentAttrs.Underline && !attrs.Underline) ||
		(r.currentAttrs.Blink && !attrs.Blink) ||
		(r.currentAttrs.Reverse && !attrs.Reverse)

	if needsReset {
		codes = append(codes, 0)
		r.currentFG = core.Color(0xff)
		r.currentBG = core.Color(0xff)
		r.currentAttrs = core.Attrs{}
	}

	if attrs.Bold && !r.currentAttrs.Bold {
		codes = append(codes, 1)
	}
	if attrs.Dim && !r.currentAttrs.Dim {
		codes = append(codes, 2)
	}
	if attrs.Italic && !r.currentAttrs.Italic {
		codes = append(codes, 3)
	}
	if attrs.Underline && !r.currentAttrs.Underline {
		codes = append(codes, 4)
	}
	if attrs.Blink && !r.currentAttrs.Blink {
		codes = append(codes, 5)
	}
	if attrs.Reverse && !r.currentAttrs.Reverse {
		codes = append(codes, 7)
	}

	if fg != r.currentFG {
		codes = append(codes, fg.FGCode())
	}
	if bg != r.currentBG {
		codes = append(codes, bg.BGCode())
	}

	r.currentFG, r.currentBG, r.currentAttrs = fg, bg, attrs

	if len(codes) == 0 {
		return ""
	}
	strs := make([]string, len(codes))
	for i, c := range codes {
		strs[i] = strconv.Itoa(c)
	}
	return fmt.Sprintf("%s%sm", csi, strings.Join(strs, ";"))
}

// renderCell emits a cell's SGR transition followed by its character,
// with control characters sanitized to a space so a stray byte can never
// send a raw control sequence through the rendered stream.
func (r *AnsiIbmRenderer) renderCell(c core.Cell) string {
	var b strings.Builder
	b.WriteString(r.sgr(c.FG, c.BG, c.Attrs))
	if c.Char < ' ' || c.Char == '\x7f' {
		b.WriteByte(' ')
	} else {
		b.WriteRune(c.Char)
	}
	return b.String()
}

func (r *AnsiIbmRenderer) Name() string { return "ansi-ibm" }

func (r *AnsiIbmRenderer) Dimensions() (int, int) { return r.cols, r.rows }

func (r *AnsiIbmRenderer) Init() string {
	r.reset()
	return fmt.Sprintf("%s?25l%s2J%sH%s0m", csi, csi, csi, csi)
}

func (r *AnsiIbmRenderer) Shutdown() string {
	return fmt.Sprintf("%s%s0m%s?25h%s2J%sH", r.DisableMouse(), csi, csi, csi, csi)
}

func (r *AnsiIbmRenderer) Clear() string {
	return fmt.Sprintf("%s2J%sH", csi, csi)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RenderFull redraws every cell. It homes the cursor but never clears the
// screen first, since a clear-then-redraw causes visible flicker during a
// drag or resize.
func (r *AnsiIbmRenderer) RenderFull(g *core.Grid) string {
	var b strings.Builder
	r.reset()
	b.WriteString(fmt.Sprintf("%sH%s0m", csi, csi))

	rows := min(g.Rows, r.rows)
	cols := min(g.Cols, r.cols)
	for y := 0; y < rows; y++ {
		b.WriteString(r.moveCursor(0, y))
		for x := 0; x < cols; x++ {
			if c, ok := g.Get(x, y); ok {
				b.WriteString(r.renderCell(c))
			}
		}
	}
	return b.String()
}

// RenderDirty redraws only cells marked dirty, moving the cursor only when
// the next dirty cell isn't immediately after the last one written. If
// more than half the grid is dirty it upgrades to a full redraw instead,
// since the move-sparingly optimization costs more than it saves past
// that point.
func (r *AnsiIbmRenderer) RenderDirty(g *core.Grid) string {
	dirty := g.IterDirty()

	total := g.Cols * g.Rows
	if total > 0 && len(dirty) > total/2 {
		return r.RenderFull(g)
	}

	sort.Slice(dirty, func(i, j int) bool {
		if dirty[i].Y != dirty[j].Y {
			return dirty[i].Y < dirty[j].Y
		}
		return dirty[i].X < dirty[j].X
	})

	var b strings.Builder
	var lastX, lastY int
	haveLast := false

	for _, dc := range dirty {
		needMove := true
		if haveLast {
			needMove = !(dc.Y == lastY && dc.X == lastX+1)
		}
		if needMove {
			b.WriteString(r.moveCursor(dc.X, dc.Y))
		}
		b.WriteString(r.renderCell(dc.Cell))
		lastX, lastY = dc.X, dc.Y
		haveLast = true
	}
	return b.String()
}

// Render dispatches to RenderFull or RenderDirty.
func (r *AnsiIbmRenderer) Render(g *core.Grid, forceFull bool) string {
	if forceFull {
		return r.RenderFull(g)
	}
	return r.RenderDirty(g)
}

func (r *AnsiIbmRenderer) EnableMouse(mode MouseMode) string {
	switch mode {
	case MouseModeNone:
		return r.DisableMouse()
	case MouseModeNormal:
		return fmt.Sprintf("%s?1000h", csi)
	case MouseModeButton:
		return fmt.Sprintf("%s?1002h", csi)
	case MouseModeAny:
		return fmt.Sprintf("%s?1003h", csi)
	case MouseModeSgr:
		return fmt.Sprintf("%s?1006h%s?1002h", csi, csi)
	default:
		return r.DisableMouse()
	}
}

func (r *AnsiIbmRenderer) DisableMouse() string {
	return fmt.Sprintf("%s?1000l%s?1002l%s?1003l%s?1006l", csi, csi, csi, csi)
}
