package renderer

import (
	"strings"
	"testing"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

func TestMouseModeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want MouseMode
	}{
		{"none", MouseModeNone},
		{"normal", MouseModeNormal},
		{"button", MouseModeButton},
		{"any", MouseModeAny},
		{"sgr", MouseModeSgr},
		{"SGR", MouseModeSgr},
		{"garbage", MouseModeSgr},
	}
	for _, tt := range tests {
		if got := MouseModeFromString(tt.in); got != tt.want {
			t.Errorf("MouseModeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnsiIbmRenderer_Dimensions(t *testing.T) {
	r := NewAnsiIbmRenderer(100, 40)
	cols, rows := r.Dimensions()
	if cols != 100 || rows != 40 {
		t.Errorf("Dimensions() = %d,%d, want 100,40", cols, rows)
	}
}

func TestAnsiIbmRenderer_Name(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	if r.Name() != "ansi-ibm" {
		t.Errorf("Name() = %q, want 'ansi-ibm'", r.Name())
	}
}

func TestAnsiIbmRenderer_Init_HidesCursorAndClears(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	out := r.Init()
	if !strings.Contains(out, "?25l") {
		t.Error("Init() should hide the cursor")
	}
	if !strings.Contains(out, "2J") {
		t.Error("Init() should clear the screen")
	}
}

func TestAnsiIbmRenderer_Shutdown_ShowsCursor(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	out := r.Shutdown()
	if !strings.Contains(out, "?25h") {
		t.Error("Shutdown() should show the cursor")
	}
}

func TestAnsiIbmRenderer_RenderFull_EmitsEveryCell(t *testing.T) {
	r := NewAnsiIbmRenderer(3, 1)
	g := core.NewGrid(3, 1)
	g.WriteStr(0, 0, "hi!", core.White, nil, core.Attrs{})

	out := r.RenderFull(g)
	if !strings.Contains(out, "hi!") {
		t.Errorf("RenderFull() = %q, want it to contain 'hi!'", out)
	}
}

func TestAnsiIbmRenderer_RenderFull_ClampsToRendererSize(t *testing.T) {
	r := NewAnsiIbmRenderer(2, 1)
	g := core.NewGrid(5, 5)
	g.WriteStr(0, 0, "hello", core.White, nil, core.Attrs{})

	out := r.RenderFull(g)
	if strings.Contains(out, "llo") {
		t.Errorf("RenderFull() = %q, should not render beyond the renderer's own dimensions", out)
	}
}

func TestAnsiIbmRenderer_RenderDirty_OnlyTouchesDirtyCells(t *testing.T) {
	r := NewAnsiIbmRenderer(5, 1)
	g := core.NewGrid(5, 1)
	g.MarkAllClean()
	g.Set(2, 0, 'x', core.White, core.Black, core.Attrs{})

	out := r.RenderDirty(g)
	if !strings.ContainsRune(out, 'x') {
		t.Errorf("RenderDirty() = %q, want it to contain 'x'", out)
	}
}

func TestAnsiIbmRenderer_RenderDirty_UpgradesToFullWhenMostlyDirty(t *testing.T) {
	r := NewAnsiIbmRenderer(2, 2)
	g := core.NewGrid(2, 2)
	// Every cell in a fresh grid starts dirty, well past the half threshold.
	out := r.RenderDirty(g)
	full := r.RenderFull(g)
	if out != full {
		t.Fatalf("RenderDirty() = %q, want the RenderFull() output %q", out, full)
	}
}

func TestAnsiIbmRenderer_Render_DispatchesOnForceFull(t *testing.T) {
	r := NewAnsiIbmRenderer(3, 1)
	g := core.NewGrid(3, 1)
	g.MarkAllClean()

	dirty := r.Render(g, false)
	if dirty != "" {
		t.Errorf("Render(forceFull=false) with a clean grid = %q, want empty", dirty)
	}

	full := r.Render(g, true)
	if full == "" {
		t.Error("Render(forceFull=true) should always emit output")
	}
}

func TestAnsiIbmRenderer_Sgr_SkipsRedundantCodes(t *testing.T) {
	r := NewAnsiIbmRenderer(2, 1)
	g := core.NewGrid(2, 1)
	g.MarkAllClean()
	g.Set(0, 0, 'a', core.Red, core.Black, core.Attrs{})
	g.Set(1, 0, 'b', core.Red, core.Black, core.Attrs{})

	out := r.RenderFull(g)
	// Only one SGR transition should appear since both cells share the
	// same color.
	if strings.Count(out, "m") > 2 {
		t.Errorf("RenderFull() = %q, expected the second cell to skip a redundant SGR", out)
	}
}

func TestAnsiIbmRenderer_ControlCharsRenderAsSpace(t *testing.T) {
	r := NewAnsiIbmRenderer(1, 1)
	g := core.NewGrid(1, 1)
	g.Set(0, 0, '\x01', core.White, core.Black, core.Attrs{})

	out := r.RenderFull(g)
	if strings.ContainsRune(out, '\x01') {
		t.Error("a control character must never reach the rendered stream verbatim")
	}
}

func TestAnsiIbmRenderer_EnableMouse_Modes(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	tests := []struct {
		mode MouseMode
		want string
	}{
		{MouseModeNormal, "?1000h"},
		{MouseModeButton, "?1002h"},
		{MouseModeAny, "?1003h"},
		{MouseModeSgr, "?1006h"},
	}
	for _, tt := range tests {
		if got := r.EnableMouse(tt.mode); !strings.Contains(got, tt.want) {
			t.Errorf("EnableMouse(%v) = %q, want it to contain %q", tt.mode, got, tt.want)
		}
	}
}

func TestAnsiIbmRenderer_EnableMouse_NoneDisables(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	got := r.EnableMouse(MouseModeNone)
	if !strings.Contains(got, "?1000l") {
		t.Errorf("EnableMouse(None) = %q, want it to disable mouse reporting", got)
	}
}

func TestAnsiIbmRenderer_DisableMouse_ClearsAllModes(t *testing.T) {
	r := NewAnsiIbmRenderer(80, 24)
	got := r.DisableMouse()
	for _, want := range []string{"?1000l", "?1002l", "?1003l", "?1006l"} {
		if !strings.Contains(got, want) {
			t.Errorf("DisableMouse() = %q, want it to contain %q", got, want)
		}
	}
}
