package core

// MouseButton identifies which physical button an event concerns.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// MouseAction is the phase of a mouse event.
type MouseAction int

const (
	ActionPress MouseAction = iota
	ActionRelease
	ActionDrag
	ActionMove
)

// MouseInput is the normalized mouse event a session feeds into the chrome
// interaction state machine, already decoded from whatever wire encoding
// (X10 or SGR) the client used.
type MouseInput struct {
	Action MouseAction
	Button MouseButton
	X, Y   int
}

// ChromeResult tells the caller what happened to a mouse event: whether it
// was consumed by window chrome (and should not be forwarded to the game)
// and what, if anything, changed that the session needs to report.
type ChromeResult struct {
	Suppress bool

	FocusedWindow   string
	CloseRequested  string
	MaximizeWindow  string
	MovedWindow     string
	MovedX, MovedY  int
	ResizedWindow   string
	ResizedW, ResizedH int
}

// DragState records an in-progress window drag: the window being moved and
// the cursor offset from its top-left corner at the moment the drag began.
type DragState struct {
	WindowID       string
	OffsetX, OffsetY int
}

// ResizeState records an in-progress window resize: the window being
// resized and its dimensions/cursor position at the moment the resize
// began, so deltas can be computed each move.
type ResizeState struct {
	WindowID                      string
	OriginalWidth, OriginalHeight int
	StartX, StartY                int
}

// TitleBarClick remembers the last title-bar press, to detect double-clicks.
type TitleBarClick struct {
	WindowID string
	TimeMs   int64
}

const doubleClickWindowMs = 500

// InteractionState is the window-chrome state machine that intercepts
// mouse events on behalf of a client session before they reach a game.
// Exactly one of Dragging/Resizing is active at a time.
type InteractionState struct {
	Dragging  *DragState
	Resizing  *ResizeState
	LastClick *TitleBarClick
}

// NewInteractionState returns an idle state machine.
func NewInteractionState() *InteractionState {
	return &InteractionState{}
}

// HandleMouseEvent is the single entry point a session calls for every
// decoded mouse event. nowMs is the caller's current time in milliseconds
// (epoch or monotonic, only used for double-click delta), used instead of
// an internal clock so callers can inject it in tests.
//
// Only Left-button presses/releases/drags against the topmost window under
// the cursor are intercepted; everything else passes through unsuppressed.
func (is *InteractionState) HandleMouseEvent(wm *WindowManager, ev MouseInput, nowMs int64) ChromeResult {
	switch ev.Action {
	case ActionPress:
		return is.handlePress(wm, ev, nowMs)
	case ActionRelease:
		return is.handleRelease(wm, ev)
	case ActionDrag, ActionMove:
		return is.handleMove(wm, ev)
	}
	return ChromeResult{}
}

func (is *InteractionState) handlePress(wm *WindowManager, ev MouseInput, nowMs int64) ChromeResult {
	if ev.Button != MouseLeft {
		return ChromeResult{}
	}

	// Only the topmost window under the cursor is eligible for chrome hits.
	// A lower window's close button or title bar must never steal a click
	// that lands on whatever is stacked above it.
	id := wm.WindowAt(ev.X, ev.Y)
	if id == "" {
		return ChromeResult{}
	}
	w := wm.Get(id)

	if w.HitCloseButton(ev.X, ev.Y) {
		return ChromeResult{Suppress: true, CloseRequested: id}
	}

	if w.HitResizeHandle(ev.X, ev.Y) {
		is.Resizing = &ResizeState{
			WindowID:       id,
			OriginalWidth:  w.Width,
			OriginalHeight: w.Height,
			StartX:         ev.X,
			StartY:         ev.Y,
		}
		wm.BringToFront(id)
		return ChromeResult{Suppress: true}
	}

	if w.HitTitleBar(ev.X, ev.Y) {
		if is.LastClick != nil && is.LastClick.WindowID == id && nowMs-is.LastClick.TimeMs <= doubleClickWindowMs {
			is.LastClick = nil
			wm.BringToFront(id)
			return ChromeResult{Suppress: true, MaximizeWindow: id}
		}
		is.LastClick = &TitleBarClick{WindowID: id, TimeMs: nowMs}
		is.Dragging = &DragState{WindowID: id, OffsetX: ev.X - w.X, OffsetY: ev.Y - w.Y}
		wm.BringToFront(id)
		return ChromeResult{Suppress: true}
	}

	wm.BringToFront(id)
	return ChromeResult{FocusedWindow: id}
}

func (is *InteractionState) handleRelease(wm *WindowManager, ev MouseInput) ChromeResult {
	if is.Dragging != nil {
		d := is.Dragging
		is.Dragging = nil
		w := wm.Get(d.WindowID)
		if w == nil {
			return ChromeResult{Suppress: true}
		}
		return ChromeResult{Suppress: true, MovedWindow: d.WindowID, MovedX: w.X, MovedY: w.Y}
	}
	if is.Resizing != nil {
		r := is.Resizing
		is.Resizing = nil
		w := wm.Get(r.WindowID)
		if w == nil {
			return ChromeResult{Suppress: true}
		}
		return ChromeResult{Suppress: true, ResizedWindow: r.WindowID, ResizedW: w.Width, ResizedH: w.Height}
	}
	return ChromeResult{}
}

func (is *InteractionState) handleMove(wm *WindowManager, ev MouseInput) ChromeResult {
	if is.Dragging != nil {
		d := is.Dragging
		w := wm.Get(d.WindowID)
		if w == nil {
			return ChromeResult{Suppress: true}
		}
		newX := ev.X - d.OffsetX
		if newX < 0 {
			newX = 0
		}
		newY := ev.Y - d.OffsetY
		if newY < 1 {
			// row 0 is reserved for a menu bar; windows never cover it.
			newY = 1
		}
		if maxX := wm.Cols - w.Width; newX > maxX {
			newX = maxX
		}
		if maxY := wm.Rows - w.Height; newY > maxY {
			newY = maxY
		}
		if maxX := wm.Cols - w.Width; maxX < 0 {
			newX = 0
		}
		if maxY := wm.Rows - w.Height; maxY < 1 {
			newY = 1
		}
		w.MoveTo(newX, newY)
		return ChromeResult{Suppress: true}
	}

	if is.Resizing != nil {
		r := is.Resizing
		w := wm.Get(r.WindowID)
		if w == nil {
			return ChromeResult{Suppress: true}
		}
		dx := ev.X - r.StartX
		dy := ev.Y - r.StartY
		newW := r.OriginalWidth + dx
		if newW < w.MinWidth {
			newW = w.MinWidth
		}
		newH := r.OriginalHeight + dy
		if newH < w.MinHeight {
			newH = w.MinHeight
		}
		if maxW := wm.Cols - w.X; newW > maxW {
			newW = maxW
		}
		if maxH := wm.Rows - w.Y; newH > maxH {
			newH = maxH
		}
		if newW != w.Width || newH != w.Height {
			w.Resize(newW, newH)
		}
		return ChromeResult{Suppress: true}
	}

	return ChromeResult{}
}
