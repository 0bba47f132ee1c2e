package termemu

import "github.com/benj-edwards/ascii-processing-unit/internal/core"

// RenderInto blits the terminal's screen onto dst at offset (dx,dy),
// clipped to dst's bounds. This is how a terminal window's content grid
// picks up what the remote host has sent.
func (t *Terminal) RenderInto(dst *core.Grid, dx, dy int) {
	for y, row := range t.screen {
		ty := dy + y
		for x, c := range row {
			tx := dx + x
			dst.Set(tx, ty, c.Char, c.FG, c.BG, c.Attrs)
		}
	}
}
