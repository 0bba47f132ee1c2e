// Package session implements ClientSession, the per-connection state a
// telnet player accumulates: its window layout, renderer, window-chrome
// interaction state machine, debug console, and any terminal windows it has
// open onto other telnet hosts.
package session

import (
	"fmt"
	"strings"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
	"github.com/benj-edwards/ascii-processing-unit/internal/input"
	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/renderer"
	"github.com/benj-edwards/ascii-processing-unit/internal/termemu"
)

// consoleToggleChar is Ctrl+\, the byte a client sends to open or close the
// debug console.
const consoleToggleChar = '\x1c'

// WindowShare pairs a session id with a single window id, the unit
// window-level sharing bookkeeping operates on (as opposed to
// DisplaySharesFrom/DisplaySharesTo, which track a whole-session mirror).
type WindowShare struct {
	Session string
	Window  string
}

// ClientSession is one connected telnet player.
type ClientSession struct {
	ID          string
	Address     string
	ConnectedAt int64

	outputCh chan<- string
	done     <-chan struct{}

	RendererName    string
	ScrollbackLines int

	Windows     *core.WindowManager
	renderer    renderer.Renderer
	Interaction *core.InteractionState

	// DisplaySharesFrom lists sessions whose display this session mirrors;
	// DisplaySharesTo lists sessions that mirror this one. WindowSharesFrom
	// and WindowSharesTo do the same at single-window granularity. All four
	// are maintained at server level (the Share*/Unshare* commands are
	// handled there, not in ProcessCommand) and read here only for
	// bookkeeping.
	DisplaySharesFrom []string
	DisplaySharesTo   []string
	WindowSharesFrom  []WindowShare
	WindowSharesTo    []WindowShare

	ConsoleOpen  bool
	consoleInput string

	terminals     map[string]*TerminalHandle
	FocusedWindow string
}

// NewClientSession creates a session with a fresh window manager and
// renderer sized to cols x rows. connectedAt is a Unix timestamp supplied
// by the caller (Go has no clock access policy here; the server stamps it
// once at accept time). done is closed by the caller when the session tears
// down, unblocking any send() call waiting on a full output channel.
func NewClientSession(id, address string, outputCh chan<- string, done <-chan struct{}, cols, rows int, connectedAt int64, rendererName string, scrollbackLines int) *ClientSession {
	return &ClientSession{
		ID:              id,
		Address:         address,
		ConnectedAt:     connectedAt,
		outputCh:        outputCh,
		done:            done,
		RendererName:    rendererName,
		ScrollbackLines: scrollbackLines,
		Windows:         core.NewWindowManager(cols, rows),
		renderer:        renderer.New(rendererName, cols, rows),
		Interaction:     core.NewInteractionState(),
		terminals:       make(map[string]*TerminalHandle),
	}
}

// Info returns this session's entry for a ListSessions response.
func (s *ClientSession) Info() protocol.SessionInfo {
	return protocol.SessionInfo{ID: s.ID, Address: s.Address, ConnectedAt: s.ConnectedAt}
}

// send blocks until the output reaches the client's write queue, exerting
// backpressure on a slow reader rather than dropping frames. The only
// escape is session teardown, signaled by done.
func (s *ClientSession) send(output string) {
	if output == "" {
		return
	}
	select {
	case s.outputCh <- output:
	case <-s.done:
	}
}

// Init sends the renderer's initialization sequence to the client.
func (s *ClientSession) Init() {
	s.send(s.renderer.Init())
}

// Shutdown sends the renderer's teardown sequence to the client.
func (s *ClientSession) Shutdown() {
	s.send(s.renderer.Shutdown())
}

// EnableMouse turns on the given mouse-reporting mode.
func (s *ClientSession) EnableMouse(mode renderer.MouseMode) {
	s.send(s.renderer.EnableMouse(mode))
}

// DisableMouse turns off mouse reporting.
func (s *ClientSession) DisableMouse() {
	s.send(s.renderer.DisableMouse())
}

// IsConsoleToggleChar reports whether ch is the debug console's hotkey.
func IsConsoleToggleChar(ch rune) bool {
	return ch == consoleToggleChar
}

// ToggleConsole flips the debug console open/closed, clearing any typed
// input on every toggle, opening as well as closing.
func (s *ClientSession) ToggleConsole() {
	s.ConsoleOpen = !s.ConsoleOpen
	s.consoleInput = ""
}

// DrawConsole renders the debug console overlay directly, bypassing the
// window compositor: a 60-wide, 3-row box centered at the top of the
// screen showing the current input line.
func (s *ClientSession) DrawConsole() {
	if !s.ConsoleOpen {
		return
	}
	cols, _ := s.renderer.Dimensions()
	const width = 60
	x := (cols - width) / 2
	if x < 0 {
		x = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\x1b[%d;%dH\x1b[0m", 1, x+1)
	b.WriteString("┌" + strings.Repeat("─", width-2) + "┐")

	display := s.consoleInput
	if len(display) > 25 {
		display = display[len(display)-25:]
	}
	line := "> " + display + "█"
	pad := width - 2 - len([]rune(line))
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH│%s%s│", 2, x+1, line, strings.Repeat(" ", pad))

	fmt.Fprintf(&b, "\x1b[%d;%dH└%s┘", 3, x+1, strings.Repeat("─", width-2))

	s.send(b.String())
}

// PushConsoleChar appends a typed character to the console input buffer.
func (s *ClientSession) PushConsoleChar(ch rune) {
	s.consoleInput += string(ch)
}

// BackspaceConsole removes the last character of the console input buffer.
func (s *ClientSession) BackspaceConsole() {
	r := []rune(s.consoleInput)
	if len(r) > 0 {
		s.consoleInput = string(r[:len(r)-1])
	}
}

// CancelConsole closes the console and discards any typed input.
func (s *ClientSession) CancelConsole() {
	s.ConsoleOpen = false
	s.consoleInput = ""
}

// ProcessConsoleCommand interprets the typed console line, clears the
// buffer, and reports whether the session should request a full game
// refresh or disconnect.
func (s *ClientSession) ProcessConsoleCommand() (shouldReset, shouldClose bool) {
	cmd := strings.ToLower(strings.TrimSpace(s.consoleInput))
	s.consoleInput = ""
	switch cmd {
	case "reset":
		return true, false
	case "close":
		return false, true
	default:
		// "help" and anything unrecognized are no-ops; the console's reply
		// text, if any, is left to whatever drew the box.
		return false, false
	}
}

// HandleMouseEvent runs a decoded mouse event through the window-chrome
// interaction state machine and translates the result into the events a
// session should emit plus whether the event should still reach the game.
func (s *ClientSession) HandleMouseEvent(ev input.Event, nowMs int64) ([]protocol.Response, bool) {
	mi := core.MouseInput{
		Action: mouseActionFrom(ev.MouseKind),
		Button: mouseButtonFrom(ev.Button),
		X:      ev.X,
		Y:      ev.Y,
	}
	result := s.Interaction.HandleMouseEvent(s.Windows, mi, nowMs)

	if !result.Suppress {
		if result.FocusedWindow != "" {
			s.FocusedWindow = result.FocusedWindow
			return []protocol.Response{protocol.WindowFocused(result.FocusedWindow)}, true
		}
		return nil, true
	}

	var events []protocol.Response
	switch {
	case result.CloseRequested != "":
		events = append(events, protocol.WindowCloseRequested(result.CloseRequested))
	case result.MaximizeWindow != "":
		events = append(events, protocol.WindowMaximizeRequested(result.MaximizeWindow))
	case result.MovedWindow != "":
		events = append(events, protocol.WindowMoved(result.MovedWindow, result.MovedX, result.MovedY))
	case result.ResizedWindow != "":
		events = append(events, protocol.WindowResized(result.ResizedWindow, result.ResizedW, result.ResizedH))
	}
	return events, false
}

func mouseActionFrom(k input.MouseEventKind) core.MouseAction {
	switch k {
	case input.MousePress:
		return core.ActionPress
	case input.MouseRelease:
		return core.ActionRelease
	case input.MouseDrag:
		return core.ActionDrag
	default:
		return core.ActionMove
	}
}

func mouseButtonFrom(b input.MouseButton) core.MouseButton {
	switch b {
	case input.ButtonLeft:
		return core.MouseLeft
	case input.ButtonMiddle:
		return core.MouseMiddle
	case input.ButtonRight:
		return core.MouseRight
	default:
		return core.MouseNone
	}
}

// AutoFlush composites and renders the display if anything is dirty,
// sending the result straight to the client. Called after every mouse
// event (for live drag/resize feedback) and on a timer.
func (s *ClientSession) AutoFlush() {
	if !s.Windows.IsDirty() {
		return
	}
	s.Windows.Composite()
	output := s.renderer.Render(s.Windows.Display, false)
	s.Windows.Display.MarkAllClean()
	s.Windows.MarkAllClean()
	s.send(output)
}

// SyncTerminalsToWindows copies every open terminal's screen into its
// window's content grid, ahead of a flush.
func (s *ClientSession) SyncTerminalsToWindows() {
	for windowID, handle := range s.terminals {
		win := s.Windows.Get(windowID)
		if win == nil {
			continue
		}
		handle.RenderTo(win.Content, 0, 0, win.InnerWidth(), win.InnerHeight())
		win.Dirty = true
		handle.ClearDirty()
	}
}

// CreateTerminal opens a new terminal window dialing out to host:port, or
// repositions an existing terminal's window if id is unchanged on a
// second call with the same id (mirroring CreateWindow's own update-or-create
// behavior).
func (s *ClientSession) CreateTerminal(id, host string, port, x, y, width, height int, termType termemu.TerminalType, border core.BorderStyle, title string, closable, resizable bool, events EventSink) {
	contentWidth, contentHeight := width, height
	if border.HasBorder() {
		contentWidth, contentHeight = width-2, height-2
		if contentWidth < 0 {
			contentWidth = 0
		}
		if contentHeight < 0 {
			contentHeight = 0
		}
	}

	handle := newTerminalHandle(id, host, port, contentWidth, contentHeight, termType, s.ScrollbackLines, events)

	win := s.Windows.CreateWindow(id, x, max(y, 1), width, height)
	win.SetBorder(border)
	if title != "" {
		win.SetTitle(title)
	} else if border.HasBorder() {
		win.SetTitle(fmt.Sprintf("%s:%d", host, port))
	}
	win.Closable = closable
	win.Resizable = resizable
	win.Draggable = border.HasBorder()

	if old, ok := s.terminals[id]; ok {
		old.Close()
	}
	s.terminals[id] = handle
	s.FocusedWindow = id
}

// ResizeTerminal updates an existing terminal's emulator buffer, NAWS, and
// window geometry/chrome together, the one command that touches both.
func (s *ClientSession) ResizeTerminal(id string, x, y, width, height int, border core.BorderStyle, title *string, closable, resizable, draggable bool) {
	contentWidth, contentHeight := width, height
	if border.HasBorder() {
		contentWidth, contentHeight = width-2, height-2
		if contentWidth < 0 {
			contentWidth = 0
		}
		if contentHeight < 0 {
			contentHeight = 0
		}
	}

	if handle, ok := s.terminals[id]; ok {
		handle.Resize(contentWidth, contentHeight)
	}

	if win := s.Windows.Get(id); win != nil {
		win.X = x
		win.Y = max(y, 1)
		win.Resize(width, height)
		win.SetBorder(border)
		if title != nil {
			win.SetTitle(*title)
		} else if !border.HasBorder() {
			win.SetTitle("")
		}
		win.Closable = closable
		win.Resizable = resizable
		win.Draggable = draggable
		win.Dirty = true
	}
}

// CloseTerminal tears down a terminal connection and removes its window.
func (s *ClientSession) CloseTerminal(id string) {
	if handle, ok := s.terminals[id]; ok {
		handle.Close()
		delete(s.terminals, id)
		s.Windows.Remove(id)
	}
}

// SendTerminalInput forwards raw bytes to an open terminal's remote host.
func (s *ClientSession) SendTerminalInput(id string, data []byte) bool {
	handle, ok := s.terminals[id]
	if !ok {
		return false
	}
	return handle.Send(data)
}

// ConfigureTerminal updates local-echo and line-ending settings on an open
// terminal.
func (s *ClientSession) ConfigureTerminal(id string, localEcho *bool, lineEnding *string) {
	handle, ok := s.terminals[id]
	if !ok {
		return
	}
	if localEcho != nil {
		handle.LocalEcho = *localEcho
	}
	if lineEnding != nil {
		handle.LineEnding = *lineEnding
	}
}

// FocusedTerminal returns the handle for the currently focused window, or
// nil if the focused window isn't a terminal (or there is none).
func (s *ClientSession) FocusedTerminal() *TerminalHandle {
	if s.FocusedWindow == "" {
		return nil
	}
	return s.terminals[s.FocusedWindow]
}

// HasTerminals reports whether this session has any open terminal windows,
// letting the server skip the sync/composite/render cycle on every tick
// when there's nothing to sync.
func (s *ClientSession) HasTerminals() bool {
	return len(s.terminals) > 0
}

// CloseAllTerminals tears down every open terminal, used when a session
// disconnects.
func (s *ClientSession) CloseAllTerminals() {
	for id, handle := range s.terminals {
		handle.Close()
		delete(s.terminals, id)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
