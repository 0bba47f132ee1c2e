package core

import "sort"

// WindowManager owns every window in one session's display, a background
// Grid, and a composited display Grid. z-order is kept sorted ascending by
// ZIndex, ties broken by the order windows were created.
type WindowManager struct {
	Cols, Rows int

	windows     map[string]*Window
	zOrder      []string
	insertOrder map[string]int
	nextInsert  int

	Background *Grid
	Display    *Grid
}

// NewWindowManager creates an empty manager sized to cols x rows.
func NewWindowManager(cols, rows int) *WindowManager {
	return &WindowManager{
		Cols:        cols,
		Rows:        rows,
		windows:     make(map[string]*Window),
		insertOrder: make(map[string]int),
		Background:  NewGrid(cols, rows),
		Display:     NewGrid(cols, rows),
	}
}

// Resize reallocates the background and display grids (destroying
// contents) and updates the bounds used for drag/resize clamping. Existing
// windows are left in place; callers typically follow a resize with a
// full re-init of window layout.
func (wm *WindowManager) Resize(cols, rows int) {
	wm.Cols, wm.Rows = cols, rows
	wm.Background = NewGrid(cols, rows)
	wm.Display = NewGrid(cols, rows)
}

// CreateWindow either creates a new window at the given geometry or, if id
// already exists, relocates/resizes it in place without touching its
// content.
func (wm *WindowManager) CreateWindow(id string, x, y, width, height int) *Window {
	if w, ok := wm.windows[id]; ok {
		w.X, w.Y = x, y
		w.Resize(width, height)
		return w
	}
	w := NewWindow(id, x, y, width, height)
	wm.windows[id] = w
	wm.insertOrder[id] = wm.nextInsert
	wm.nextInsert++
	wm.zOrder = append(wm.zOrder, id)
	wm.updateZOrder()
	return w
}

// Get returns the window with id, or nil.
func (wm *WindowManager) Get(id string) *Window {
	return wm.windows[id]
}

// GetMut is an alias for Get kept for readability at call sites that
// intend to mutate the returned window (Go has no separate mutable
// accessor, but the name documents intent the way the source's
// `get_mut` does).
func (wm *WindowManager) GetMut(id string) *Window {
	return wm.windows[id]
}

// Remove deletes a window entirely.
func (wm *WindowManager) Remove(id string) {
	if _, ok := wm.windows[id]; !ok {
		return
	}
	delete(wm.windows, id)
	delete(wm.insertOrder, id)
	for i, zid := range wm.zOrder {
		if zid == id {
			wm.zOrder = append(wm.zOrder[:i], wm.zOrder[i+1:]...)
			break
		}
	}
}

// ClearAllWindows removes every window.
func (wm *WindowManager) ClearAllWindows() {
	wm.windows = make(map[string]*Window)
	wm.insertOrder = make(map[string]int)
	wm.zOrder = nil
}

func (wm *WindowManager) updateZOrder() {
	sort.SliceStable(wm.zOrder, func(i, j int) bool {
		wi, wj := wm.windows[wm.zOrder[i]], wm.windows[wm.zOrder[j]]
		if wi.ZIndex != wj.ZIndex {
			return wi.ZIndex < wj.ZIndex
		}
		return wm.insertOrder[wm.zOrder[i]] < wm.insertOrder[wm.zOrder[j]]
	})
}

// BringToFront sets id's z-index above every other window's.
func (wm *WindowManager) BringToFront(id string) {
	w, ok := wm.windows[id]
	if !ok {
		return
	}
	max := w.ZIndex
	for _, other := range wm.windows {
		if other.ZIndex > max {
			max = other.ZIndex
		}
	}
	w.ZIndex = max + 1
	wm.updateZOrder()
}

// SendToBack sets id's z-index below every other window's.
func (wm *WindowManager) SendToBack(id string) {
	w, ok := wm.windows[id]
	if !ok {
		return
	}
	min := w.ZIndex
	for _, other := range wm.windows {
		if other.ZIndex < min {
			min = other.ZIndex
		}
	}
	w.ZIndex = min - 1
	wm.updateZOrder()
}

// Composite copies the background into the display grid, then renders each
// window onto it in ascending z-order.
func (wm *WindowManager) Composite() {
	Blit(wm.Display, wm.Background, 0, 0)
	for _, id := range wm.zOrder {
		wm.windows[id].RenderTo(wm.Display)
	}
}

// IsDirty reports whether any window or the background needs a redraw.
func (wm *WindowManager) IsDirty() bool {
	if wm.Background.DirtyCount() > 0 {
		return true
	}
	for _, w := range wm.windows {
		if w.Dirty {
			return true
		}
	}
	return false
}

// MarkAllClean clears every window's dirty flag (not the display grid's —
// callers clear that separately once rendered).
func (wm *WindowManager) MarkAllClean() {
	for _, w := range wm.windows {
		w.Dirty = false
	}
}

// frontToBack returns z-order reversed, for hit-testing (topmost first).
func (wm *WindowManager) frontToBack() []string {
	out := make([]string, len(wm.zOrder))
	for i, id := range wm.zOrder {
		out[len(wm.zOrder)-1-i] = id
	}
	return out
}

// WindowAt returns the id of the topmost visible window containing (x,y),
// or "" if none.
func (wm *WindowManager) WindowAt(x, y int) string {
	for _, id := range wm.frontToBack() {
		w := wm.windows[id]
		if w.Visible && w.Contains(x, y) {
			return id
		}
	}
	return ""
}

// HitCloseButton walks front-to-back and returns the id of the first
// window whose close button is hit, or "".
func (wm *WindowManager) HitCloseButton(x, y int) string {
	for _, id := range wm.frontToBack() {
		w := wm.windows[id]
		if w.Visible && w.HitCloseButton(x, y) {
			return id
		}
	}
	return ""
}

// HitTitleBar walks front-to-back and returns the id of the first window
// whose title bar is hit, or "".
func (wm *WindowManager) HitTitleBar(x, y int) string {
	for _, id := range wm.frontToBack() {
		w := wm.windows[id]
		if w.Visible && w.HitTitleBar(x, y) {
			return id
		}
	}
	return ""
}

// HitResizeHandle walks front-to-back and returns the id of the first
// window whose resize handle is hit, or "".
func (wm *WindowManager) HitResizeHandle(x, y int) string {
	for _, id := range wm.frontToBack() {
		w := wm.windows[id]
		if w.Visible && w.HitResizeHandle(x, y) {
			return id
		}
	}
	return ""
}
