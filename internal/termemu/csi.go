package termemu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

func parseCSIParams(buf []byte) []int {
	parts := strings.Split(string(buf), ";")
	params := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		params[i] = n
	}
	return params
}

func paramAt(params []int, i, def int) int {
	if i < len(params) {
		return params[i]
	}
	return def
}

func atLeast1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// executeCSI dispatches a completed CSI sequence by its final byte.
func (t *Terminal) executeCSI(final rune) {
	params := parseCSIParams(t.escBuffer)

	switch final {
	case 'A':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorY = satSubInt(t.CursorY, n)
	case 'B':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorY = minInt(t.CursorY+n, t.Height-1)
	case 'C':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorX = minInt(t.CursorX+n, t.Width-1)
	case 'D':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorX = satSubInt(t.CursorX, n)
	case 'E':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorY = minInt(t.CursorY+n, t.Height-1)
		t.CursorX = 0
	case 'F':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorY = satSubInt(t.CursorY, n)
		t.CursorX = 0
	case 'G':
		n := atLeast1(paramAt(params, 0, 1))
		t.CursorX = minInt(n-1, t.Width-1)
	case 'H', 'f':
		row := atLeast1(paramAt(params, 0, 1))
		col := atLeast1(paramAt(params, 1, 1))
		t.CursorY = minInt(row-1, t.Height-1)
		t.CursorX = minInt(col-1, t.Width-1)
	case 'J':
		switch paramAt(params, 0, 0) {
		case 0:
			t.eraseBelow()
		case 1:
			t.eraseAbove()
		case 2, 3:
			t.eraseAll()
		}
	case 'K':
		switch paramAt(params, 0, 0) {
		case 0:
			t.eraseLineRight()
		case 1:
			t.eraseLineLeft()
		case 2:
			t.eraseLine()
		}
	case 'S':
		n := atLeast1(paramAt(params, 0, 1))
		for i := 0; i < n; i++ {
			t.scrollUp()
		}
	case 'T':
		n := atLeast1(paramAt(params, 0, 1))
		for i := 0; i < n; i++ {
			t.scrollDown()
		}
	case 'm':
		t.processSGR(params)
	case 's':
		t.savedCursor = [2]int{t.CursorX, t.CursorY}
		t.hasSavedCursor = true
	case 'u':
		if t.hasSavedCursor {
			t.CursorX, t.CursorY = t.savedCursor[0], t.savedCursor[1]
		}
	case 'n':
		if paramAt(params, 0, 0) == 6 {
			resp := fmt.Sprintf("\x1b[%d;%dR", t.CursorY+1, t.CursorX+1)
			t.ResponseQueue = append(t.ResponseQueue, []byte(resp))
		}
	case 'h', 'l':
		// mode set/reset, ignored
	default:
		// unknown CSI sequence, ignored
	}
}

func satSubInt(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

// processSGR applies Select Graphic Rendition parameters. An empty
// parameter list means reset, same as an explicit 0.
func (t *Terminal) processSGR(params []int) {
	if len(params) == 0 {
		t.FG = core.White
		t.BG = core.Black
		t.Attrs = core.Attrs{}
		return
	}

	for i := 0; i < len(params); i++ {
		switch p := params[i]; {
		case p == 0:
			t.FG = core.White
			t.BG = core.Black
			t.Attrs = core.Attrs{}
		case p == 1:
			t.Attrs.Bold = true
		case p == 2:
			t.Attrs.Dim = true
		case p == 3:
			t.Attrs.Italic = true
		case p == 4:
			t.Attrs.Underline = true
		case p == 5 || p == 6:
			t.Attrs.Blink = true
		case p == 7:
			t.Attrs.Reverse = true
		case p == 8 || p == 9:
			// hidden / strikethrough, not supported
		case p == 21:
			t.Attrs.Bold = false
		case p == 22:
			t.Attrs.Bold = false
			t.Attrs.Dim = false
		case p == 23:
			t.Attrs.Italic = false
		case p == 24:
			t.Attrs.Underline = false
		case p == 25:
			t.Attrs.Blink = false
		case p == 27:
			t.Attrs.Reverse = false
		case p == 29:
			// strikethrough, not supported
		case p >= 30 && p <= 37:
			t.FG = core.ColorFromByte(p - 30)
		case p == 38:
			if i+2 < len(params) && params[i+1] == 5 {
				t.FG = core.ColorFromByte(params[i+2])
				i += 2
			}
		case p == 39:
			t.FG = core.White
		case p >= 40 && p <= 47:
			t.BG = core.ColorFromByte(p - 40)
		case p == 48:
			if i+2 < len(params) && params[i+1] == 5 {
				t.BG = core.ColorFromByte(params[i+2])
				i += 2
			}
		case p == 49:
			t.BG = core.Black
		case p >= 90 && p <= 97:
			t.FG = core.ColorFromByte(p - 90 + 8)
		case p >= 100 && p <= 107:
			t.BG = core.ColorFromByte(p - 100 + 8)
		}
	}
}
