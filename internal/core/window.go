package core

// TitleAlign selects where a Window's title is drawn within its title bar.
type TitleAlign int

const (
	TitleLeft TitleAlign = iota
	TitleCenter
	TitleRight
)

// Window is a bordered sub-grid with position, z-order, chrome flags, and
// its own content Grid. When Border != BorderNone, Content is always kept
// at (Width-2, Height-2); SetBorder and Resize re-establish that invariant.
type Window struct {
	ID string

	X, Y          int
	Width, Height int

	Border      BorderStyle
	BorderColor Color
	Title       string
	TitleAlign  TitleAlign

	Background Color
	Visible    bool
	ZIndex     int
	Content    *Grid

	Closable  bool
	Resizable bool
	Draggable bool

	MinWidth, MinHeight int

	// Invert windows ignore border/content and simply swap fg/bg of
	// whatever they overlay, used for cursor overlays.
	Invert bool

	Dirty bool
}

// NewWindow constructs a window with the spec's documented defaults:
// border=Single, chrome flags all true, min size 10x5.
func NewWindow(id string, x, y, width, height int) *Window {
	w := &Window{
		ID:          id,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Border:      BorderSingle,
		BorderColor: White,
		TitleAlign:  TitleCenter,
		Background:  Black,
		Visible:     true,
		Closable:    true,
		Resizable:   true,
		Draggable:   true,
		MinWidth:    10,
		MinHeight:   5,
		Dirty:       true,
	}
	cw, ch := w.contentSize()
	w.Content = NewGrid(cw, ch)
	return w
}

// contentSize computes the content grid dimensions for the current
// border/width/height, never going below zero.
func (w *Window) contentSize() (int, int) {
	if w.Border.HasBorder() {
		cw, ch := w.Width-2, w.Height-2
		if cw < 0 {
			cw = 0
		}
		if ch < 0 {
			ch = 0
		}
		return cw, ch
	}
	return w.Width, w.Height
}

// InnerWidth and InnerHeight expose the current content dimensions.
func (w *Window) InnerWidth() int  { cw, _ := w.contentSize(); return cw }
func (w *Window) InnerHeight() int { _, ch := w.contentSize(); return ch }

// SetBorder changes the border style, reallocating Content to match the
// new inner size while preserving any overlapping content.
func (w *Window) SetBorder(style BorderStyle) {
	w.Border = style
	cw, ch := w.contentSize()
	newContent := NewGrid(cw, ch)
	if w.Content != nil {
		Blit(newContent, w.Content, 0, 0)
	}
	w.Content = newContent
	w.Dirty = true
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.Title = title
	w.Dirty = true
}

// Clear resets the content grid to defaults.
func (w *Window) Clear() {
	w.Content.Clear()
	w.Dirty = true
}

// Print writes text into the content grid. bg is optional (nil preserves
// existing cell backgrounds).
func (w *Window) Print(x, y int, text string, fg Color, bg *Color) {
	w.Content.WriteStr(x, y, text, fg, bg, Attrs{})
	w.Dirty = true
}

// Set writes a single content cell. bg is optional.
func (w *Window) Set(x, y int, ch rune, fg Color, bg *Color) {
	var bgv Color
	if bg != nil {
		bgv = *bg
	} else if existing := w.Content.GetRef(x, y); existing != nil {
		bgv = existing.BG
	}
	w.Content.Set(x, y, ch, fg, bgv, Attrs{})
	w.Dirty = true
}

// Fill fills a content rectangle. bg is optional.
func (w *Window) Fill(x, y, width, height int, ch rune, fg Color, bg *Color) {
	var bgv Color
	if bg != nil {
		bgv = *bg
	}
	w.Content.FillRect(x, y, width, height, ch, fg, bgv, Attrs{})
	w.Dirty = true
}

// MoveTo relocates the window.
func (w *Window) MoveTo(x, y int) {
	w.X, w.Y = x, y
	w.Dirty = true
}

// Resize changes outer dimensions, clamping to MinWidth/MinHeight and
// reallocating Content (preserving overlapping content) to match.
func (w *Window) Resize(width, height int) {
	if width < w.MinWidth {
		width = w.MinWidth
	}
	if height < w.MinHeight {
		height = w.MinHeight
	}
	w.Width, w.Height = width, height
	cw, ch := w.contentSize()
	newContent := NewGrid(cw, ch)
	if w.Content != nil {
		Blit(newContent, w.Content, 0, 0)
	}
	w.Content = newContent
	w.Dirty = true
}

// Show and Hide toggle visibility.
func (w *Window) Show() { w.Visible = true; w.Dirty = true }
func (w *Window) Hide() { w.Visible = false; w.Dirty = true }

// Contains reports whether (x,y) is within the window's outer rectangle.
func (w *Window) Contains(x, y int) bool {
	return x >= w.X && x < w.X+w.Width && y >= w.Y && y < w.Y+w.Height
}

// HitCloseButton reports whether (x,y) is on the close-button glyphs,
// which occupy the two title-row cells just right of the top-left corner
// (X+1 and X+2) when the window is closable and at least 4 cells wide.
func (w *Window) HitCloseButton(x, y int) bool {
	if !w.Closable || !w.Border.HasBorder() || w.Width < 4 {
		return false
	}
	return y == w.Y && (x == w.X+1 || x == w.X+2)
}

// HitTitleBar reports whether (x,y) is on the top border row, excluding
// the close-button cells so a click there unambiguously closes rather than
// drags.
func (w *Window) HitTitleBar(x, y int) bool {
	if !w.Border.HasBorder() {
		return false
	}
	if y != w.Y {
		return false
	}
	if x < w.X || x >= w.X+w.Width {
		return false
	}
	if w.HitCloseButton(x, y) {
		return false
	}
	return true
}

// HitResizeHandle reports whether (x,y) is the bottom-right resize glyph,
// present only when resizable and the window is at least 2x2.
func (w *Window) HitResizeHandle(x, y int) bool {
	if !w.Resizable || w.Width < 2 || w.Height < 2 {
		return false
	}
	return x == w.X+w.Width-1 && y == w.Y+w.Height-1
}

// truncateTitle truncates s to at most n runes, appending an ellipsis if
// truncated. n<1 yields an empty string.
func truncateTitle(s string, n int) string {
	if n < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// RenderTo composites this window onto target. Invert windows ignore
// border/content and simply swap fg/bg of every cell they overlay; normal
// windows draw their border/title/chrome glyphs, then blit their content
// grid at offset (1,1) (or (0,0) when borderless).
func (w *Window) RenderTo(target *Grid) {
	if !w.Visible {
		return
	}

	if w.Invert {
		for y := w.Y; y < w.Y+w.Height; y++ {
			for x := w.X; x < w.X+w.Width; x++ {
				c := target.GetRef(x, y)
				if c == nil {
					continue
				}
				c.Set(c.Char, c.BG, c.FG, c.Attrs)
			}
		}
		return
	}

	if w.Border.HasBorder() {
		target.DrawBox(w.X, w.Y, w.Width, w.Height, w.Border, w.BorderColor, w.Background)

		if w.Closable && w.Width >= 4 {
			target.Set(w.X+1, w.Y, '[', w.BorderColor, w.Background, Attrs{})
			target.Set(w.X+2, w.Y, ']', w.BorderColor, w.Background, Attrs{})
		}

		if w.Title != "" {
			// Reserve the close-button cells so the title field never
			// overlaps them.
			reserved := 0
			if w.Closable && w.Width >= 4 {
				reserved = 3
			}
			avail := maxInt(0, w.Width-2-reserved)
			if avail >= 2 {
				inner := truncateTitle(w.Title, avail-2)
				titleText := "[" + inner + "]"
				tx := w.X + 1 + reserved
				switch w.TitleAlign {
				case TitleCenter:
					pad := (avail - len([]rune(titleText))) / 2
					if pad > 0 {
						tx += pad
					}
				case TitleRight:
					pad := avail - len([]rune(titleText))
					if pad > 0 {
						tx += pad
					}
				}
				target.WriteStr(tx, w.Y, titleText, White, &w.Background, Attrs{Bold: true})
			}
		}

		if w.Resizable && w.Width >= 2 && w.Height >= 2 {
			target.Set(w.X+w.Width-1, w.Y+w.Height-1, '◢', w.BorderColor, w.Background, Attrs{})
		}

		Blit(target, w.Content, w.X+1, w.Y+1)
		return
	}

	Blit(target, w.Content, w.X, w.Y)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
