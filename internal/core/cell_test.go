package core

import "testing"

func TestColorFromByte(t *testing.T) {
	tests := []struct {
		in   int
		want Color
	}{
		{0, Black},
		{7, White},
		{15, BrightWhite},
		{16, White},
		{-1, White},
	}
	for _, tt := range tests {
		if got := ColorFromByte(tt.in); got != tt.want {
			t.Errorf("ColorFromByte(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColor_FGCodeAndBGCode(t *testing.T) {
	if got := White.FGCode(); got != 37 {
		t.Errorf("White.FGCode() = %d, want 37", got)
	}
	if got := BrightWhite.FGCode(); got != 97 {
		t.Errorf("BrightWhite.FGCode() = %d, want 97", got)
	}
	if got := Black.BGCode(); got != 40 {
		t.Errorf("Black.BGCode() = %d, want 40", got)
	}
	if got := BrightRed.BGCode(); got != 101 {
		t.Errorf("BrightRed.BGCode() = %d, want 101", got)
	}
}

func TestAttrs_AnyAndSGRCodes(t *testing.T) {
	var a Attrs
	if a.Any() {
		t.Fatal("zero Attrs should report Any() false")
	}

	a = Attrs{Bold: true, Underline: true}
	if !a.Any() {
		t.Fatal("expected Any() true")
	}
	codes := a.SGRCodes()
	if len(codes) != 2 || codes[0] != 1 || codes[1] != 4 {
		t.Errorf("SGRCodes() = %v, want [1 4]", codes)
	}
}

func TestNewCell_Defaults(t *testing.T) {
	c := NewCell()
	if c.Char != ' ' || c.FG != DefaultFG || c.BG != DefaultBG {
		t.Errorf("NewCell() = %+v, want space/White/Black", c)
	}
	if !c.Dirty {
		t.Error("a freshly created cell should start dirty")
	}
}

func TestCell_Set_MarksDirtyOnlyOnChange(t *testing.T) {
	c := NewCell()
	c.Dirty = false

	c.Set(' ', DefaultFG, DefaultBG, Attrs{})
	if c.Dirty {
		t.Fatal("setting identical values should not mark dirty")
	}

	c.Set('x', Red, Blue, Attrs{Bold: true})
	if !c.Dirty {
		t.Fatal("setting different values should mark dirty")
	}
	if c.Char != 'x' || c.FG != Red || c.BG != Blue {
		t.Errorf("cell = %+v, unexpected", c)
	}
}

func TestCell_Clear(t *testing.T) {
	c := Cell{Char: 'x', FG: Red, BG: Blue, Attrs: Attrs{Bold: true}}
	c.Clear()
	want := NewCell()
	if c != want {
		t.Errorf("Clear() = %+v, want %+v", c, want)
	}
}
