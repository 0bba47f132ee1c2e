package termemu

// processByte drives the four-state ANSI parser: Normal, Escape (just saw
// ESC), CSI (collecting parameter bytes after ESC [), and OSC (collecting
// and discarding an operating-system-command string).
func (t *Terminal) processByte(b byte) {
	switch t.state {
	case parserNormal:
		t.processNormal(b)
	case parserEscape:
		t.processEscape(b)
	case parserCSI:
		t.processCSIByte(b)
	case parserOSC:
		t.processOSCByte(b)
	}
}

func (t *Terminal) processNormal(b byte) {
	switch {
	case b == 0x1b:
		t.state = parserEscape
		t.escBuffer = t.escBuffer[:0]
	case b == 0x07:
		// bell, ignored
	case b == 0x08:
		if t.CursorX > 0 {
			t.CursorX--
		}
	case b == 0x09:
		t.CursorX = (t.CursorX + 8) &^ 7
		if t.CursorX >= t.Width {
			t.CursorX = t.Width - 1
		}
	case b == 0x0a:
		t.newline()
	case b == 0x0d:
		t.CursorX = 0
	case b >= 0x20 && b <= 0x7e:
		t.putChar(rune(b))
	case b >= 0x80:
		// Extended ASCII / CP437 — no UTF-8 decoding, byte maps
		// straight to a rune the same way the wire protocol treats it.
		t.putChar(rune(b))
	default:
		// other C0 controls ignored
	}
}

func (t *Terminal) processEscape(b byte) {
	switch b {
	case '[':
		t.state = parserCSI
		t.escBuffer = t.escBuffer[:0]
	case ']':
		t.state = parserOSC
		t.escBuffer = t.escBuffer[:0]
	case '7':
		t.savedCursor = [2]int{t.CursorX, t.CursorY}
		t.hasSavedCursor = true
		t.state = parserNormal
	case '8':
		if t.hasSavedCursor {
			t.CursorX, t.CursorY = t.savedCursor[0], t.savedCursor[1]
		}
		t.state = parserNormal
	case 'D':
		t.newline()
		t.state = parserNormal
	case 'E':
		t.CursorX = 0
		t.newline()
		t.state = parserNormal
	case 'M':
		if t.CursorY > 0 {
			t.CursorY--
		}
		t.state = parserNormal
	case 'c':
		t.reset()
		t.state = parserNormal
	default:
		t.state = parserNormal
	}
}

func (t *Terminal) processCSIByte(b byte) {
	if b >= 0x40 && b <= 0x7e {
		t.executeCSI(rune(b))
		t.state = parserNormal
		return
	}
	t.escBuffer = append(t.escBuffer, b)
}

func (t *Terminal) processOSCByte(b byte) {
	if b == 0x07 || b == 0x1b {
		t.state = parserNormal
		return
	}
	t.escBuffer = append(t.escBuffer, b)
}
