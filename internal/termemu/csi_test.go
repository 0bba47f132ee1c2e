package termemu

import (
	"testing"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

func TestCSI_CursorMovement(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.CursorX, term.CursorY = 5, 5

	term.ProcessData([]byte("\x1b[2A"))
	if term.CursorY != 3 {
		t.Errorf("after CUU 2: CursorY = %d, want 3", term.CursorY)
	}

	term.ProcessData([]byte("\x1b[2B"))
	if term.CursorY != 5 {
		t.Errorf("after CUD 2: CursorY = %d, want 5", term.CursorY)
	}

	term.ProcessData([]byte("\x1b[3C"))
	if term.CursorX != 8 {
		t.Errorf("after CUF 3: CursorX = %d, want 8", term.CursorX)
	}

	term.ProcessData([]byte("\x1b[3D"))
	if term.CursorX != 5 {
		t.Errorf("after CUB 3: CursorX = %d, want 5", term.CursorX)
	}
}

func TestCSI_CursorMovement_ClampsToBounds(t *testing.T) {
	term := NewTerminal("t1", 5, 5, TypeAnsi)

	term.ProcessData([]byte("\x1b[100A"))
	if term.CursorY != 0 {
		t.Errorf("CursorY = %d, want clamped to 0", term.CursorY)
	}

	term.ProcessData([]byte("\x1b[100C"))
	if term.CursorX != 4 {
		t.Errorf("CursorX = %d, want clamped to 4", term.CursorX)
	}
}

func TestCSI_CursorPosition(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.ProcessData([]byte("\x1b[3;4H"))
	if term.CursorY != 2 || term.CursorX != 3 {
		t.Fatalf("cursor = (%d,%d), want (3,2) (1-based 4;3)", term.CursorX, term.CursorY)
	}
}

func TestCSI_CursorPosition_DefaultsToHome(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.CursorX, term.CursorY = 5, 5
	term.ProcessData([]byte("\x1b[H"))
	if term.CursorX != 0 || term.CursorY != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", term.CursorX, term.CursorY)
	}
}

func TestCSI_EraseDisplay_Below(t *testing.T) {
	term := NewTerminal("t1", 5, 3, TypeAnsi)
	term.ProcessData([]byte("aaaaa\r\naaaaa\r\naaaaa"))
	term.CursorX, term.CursorY = 0, 1
	term.ProcessData([]byte("\x1b[0J"))

	screen := term.Screen()
	if screen[1][0].Char != ' ' || screen[2][0].Char != ' ' {
		t.Error("expected rows at and below the cursor erased")
	}
	if screen[0][0].Char != 'a' {
		t.Error("expected rows above the cursor untouched")
	}
}

func TestCSI_EraseDisplay_All(t *testing.T) {
	term := NewTerminal("t1", 5, 2, TypeAnsi)
	term.ProcessData([]byte("hello"))
	term.ProcessData([]byte("\x1b[2J"))

	screen := term.Screen()
	if screen[0][0].Char != ' ' {
		t.Error("expected the whole screen erased")
	}
}

func TestCSI_EraseLine(t *testing.T) {
	term := NewTerminal("t1", 5, 1, TypeAnsi)
	term.ProcessData([]byte("hello"))
	term.CursorX = 0
	term.ProcessData([]byte("\x1b[2K"))

	screen := term.Screen()
	for x := 0; x < 5; x++ {
		if screen[0][x].Char != ' ' {
			t.Errorf("cell(%d,0) = %q, want erased", x, screen[0][x].Char)
		}
	}
}

func TestCSI_SGR_SetsColorsAndAttrs(t *testing.T) {
	term := NewTerminal("t1", 5, 1, TypeAnsi)
	term.ProcessData([]byte("\x1b[1;31;44mx"))

	if !term.Attrs.Bold {
		t.Error("expected bold set")
	}
	if term.FG != core.Red {
		t.Errorf("FG = %v, want Red", term.FG)
	}
	if term.BG != core.Blue {
		t.Errorf("BG = %v, want Blue", term.BG)
	}
}

func TestCSI_SGR_Reset(t *testing.T) {
	term := NewTerminal("t1", 5, 1, TypeAnsi)
	term.ProcessData([]byte("\x1b[1;31m"))
	term.ProcessData([]byte("\x1b[0m"))

	if term.Attrs.Bold {
		t.Error("expected bold cleared after reset")
	}
	if term.FG != core.White {
		t.Errorf("FG = %v, want White after reset", term.FG)
	}
}

func TestCSI_SGR_256ColorPalette(t *testing.T) {
	term := NewTerminal("t1", 5, 1, TypeAnsi)
	term.ProcessData([]byte("\x1b[38;5;3m"))
	if term.FG != core.ColorFromByte(3) {
		t.Errorf("FG = %v, want %v", term.FG, core.ColorFromByte(3))
	}
}

func TestCSI_SGR_BrightColors(t *testing.T) {
	term := NewTerminal("t1", 5, 1, TypeAnsi)
	term.ProcessData([]byte("\x1b[91m"))
	if term.FG != core.BrightRed {
		t.Errorf("FG = %v, want BrightRed", term.FG)
	}
}

func TestCSI_SaveRestoreCursor(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.CursorX, term.CursorY = 4, 4
	term.ProcessData([]byte("\x1b[s"))
	term.CursorX, term.CursorY = 0, 0
	term.ProcessData([]byte("\x1b[u"))

	if term.CursorX != 4 || term.CursorY != 4 {
		t.Fatalf("cursor = (%d,%d), want restored to (4,4)", term.CursorX, term.CursorY)
	}
}

func TestCSI_DeviceStatusReport_QueuesResponse(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.CursorX, term.CursorY = 2, 1
	term.ProcessData([]byte("\x1b[6n"))

	if len(term.ResponseQueue) != 1 {
		t.Fatalf("len(ResponseQueue) = %d, want 1", len(term.ResponseQueue))
	}
	if string(term.ResponseQueue[0]) != "\x1b[2;3R" {
		t.Errorf("response = %q, want '\\x1b[2;3R'", term.ResponseQueue[0])
	}
}

func TestCSI_UnknownFinalByteIsIgnored(t *testing.T) {
	term := NewTerminal("t1", 10, 10, TypeAnsi)
	term.ProcessData([]byte("\x1b[99zx"))

	screen := term.Screen()
	if screen[0][0].Char != 'x' {
		t.Fatalf("screen[0][0] = %q, want 'x' (parser recovered after the unknown CSI)", screen[0][0].Char)
	}
}
