package termemu

import "testing"

func TestCSI_ScrollUpAndDown(t *testing.T) {
	term := NewTerminal("t1", 3, 3, TypeAnsi)
	term.ProcessData([]byte("aaa\r\nbbb\r\nccc"))

	term.ProcessData([]byte("\x1b[1S"))
	screen := term.Screen()
	if screen[0][0].Char != 'b' || screen[2][0].Char != ' ' {
		t.Fatalf("after scroll up, rows = %+v", screen)
	}
	if len(term.Scrollback) != 1 || term.Scrollback[0][0].Char != 'a' {
		t.Fatalf("expected the evicted row in scrollback, got %+v", term.Scrollback)
	}

	term.ProcessData([]byte("\x1b[1T"))
	screen = term.Screen()
	if screen[0][0].Char != ' ' || screen[1][0].Char != 'b' {
		t.Fatalf("after scroll down, rows = %+v", screen)
	}
}

func TestEraseAbove(t *testing.T) {
	term := NewTerminal("t1", 3, 3, TypeAnsi)
	term.ProcessData([]byte("aaa\r\nbbb\r\nccc"))
	term.CursorX, term.CursorY = 1, 1
	term.ProcessData([]byte("\x1b[1J"))

	screen := term.Screen()
	if screen[0][0].Char != ' ' {
		t.Error("expected rows above the cursor erased")
	}
	if screen[1][0].Char != ' ' || screen[1][1].Char != ' ' {
		t.Error("expected the cursor's row erased up to and including the cursor")
	}
	if screen[1][2].Char != 'b' {
		t.Error("expected cells after the cursor on its own row left untouched")
	}
	if screen[2][0].Char != 'c' {
		t.Error("expected rows below the cursor untouched")
	}
}

func TestScrollUp_EmptyScreenIsNoop(t *testing.T) {
	term := &Terminal{}
	term.scrollUp()
	// No panic on a zero-value terminal is the whole contract here.
}
