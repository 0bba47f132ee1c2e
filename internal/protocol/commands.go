// Package protocol implements the newline-delimited JSON wire protocol a
// game speaks to the server over its game-port connection: Command values
// flow in, Response values flow out. Go has no native sum type, so
// Command and Response are flat structs carrying every field any command
// or response might need, discriminated by a "cmd"/"type" string — the
// same shape the standard library's encoding/json naturally produces for
// a tagged union, since no third-party JSON library appears anywhere in
// the example pack.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
)

// Command names, matching the wire protocol's "cmd" values exactly.
const (
	CmdInit             = "init"
	CmdShutdown         = "shutdown"
	CmdClear            = "clear"
	CmdReset            = "reset"
	CmdClearBackground  = "clear_background"
	CmdCreateWindow     = "create_window"
	CmdRemoveWindow     = "remove_window"
	CmdUpdateWindow     = "update_window"
	CmdSetCell          = "set_cell"
	CmdPrint            = "print"
	CmdClearWindow      = "clear_window"
	CmdFill             = "fill"
	CmdSetDirect        = "set_direct"
	CmdPrintDirect      = "print_direct"
	CmdBatch            = "batch"
	CmdFlush            = "flush"
	CmdBringToFront     = "bring_to_front"
	CmdSendToBack       = "send_to_back"
	CmdEnableMouse      = "enable_mouse"
	CmdDisableMouse     = "disable_mouse"
	CmdListSessions     = "list_sessions"
	CmdShareDisplay     = "share_display"
	CmdUnshareDisplay   = "unshare_display"
	CmdShareWindow      = "share_window"
	CmdUnshareWindow    = "unshare_window"
	CmdCreateTerminal   = "create_terminal"
	CmdCloseTerminal    = "close_terminal"
	CmdTerminalInput    = "terminal_input"
	CmdTerminalConfig   = "terminal_config"
	CmdResizeTerminal   = "resize_terminal"
)

// BatchCell is one entry of a Batch command's cell list.
type BatchCell struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Char   string  `json:"char"`
	FG     *int    `json:"fg,omitempty"`
	BG     *int    `json:"bg,omitempty"`
	Window *string `json:"window,omitempty"`
}

// FGOr returns the cell's foreground, defaulting to white (7).
func (c BatchCell) FGOr() int {
	if c.FG != nil {
		return *c.FG
	}
	return 7
}

// BGOr returns the cell's background, defaulting to black (0).
func (c BatchCell) BGOr() int {
	if c.BG != nil {
		return *c.BG
	}
	return 0
}

// Command is every field any wire command might carry. Cmd selects which
// fields are meaningful; unused fields are simply absent from the source
// JSON and left at their zero value.
type Command struct {
	Cmd string `json:"cmd"`

	// Init
	Cols *int `json:"cols,omitempty"`
	Rows *int `json:"rows,omitempty"`

	// CreateWindow / UpdateWindow / ResizeTerminal / CreateTerminal share
	// most of window geometry and chrome.
	ID         string  `json:"id,omitempty"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Border     *string `json:"border,omitempty"`
	Title      *string `json:"title,omitempty"`
	Closable   *bool   `json:"closable,omitempty"`
	Resizable  *bool   `json:"resizable,omitempty"`
	Draggable  *bool   `json:"draggable,omitempty"`
	MinWidth   *int    `json:"min_width,omitempty"`
	MinHeight  *int    `json:"min_height,omitempty"`
	Invert     bool    `json:"invert,omitempty"`
	Visible    *bool   `json:"visible,omitempty"`
	ZIndex     *int    `json:"z_index,omitempty"`

	// SetCell / Print / Fill / SetDirect / PrintDirect
	Window string `json:"window,omitempty"`
	Char   string `json:"char,omitempty"`
	Text   string `json:"text,omitempty"`
	FG     *int   `json:"fg,omitempty"`
	BG     *int   `json:"bg,omitempty"`

	// Batch
	Cells []BatchCell `json:"cells,omitempty"`

	// Flush
	ForceFull bool `json:"force_full,omitempty"`

	// EnableMouse
	Mode *string `json:"mode,omitempty"`

	// ShareDisplay / UnshareDisplay / ShareWindow / UnshareWindow
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`

	// ShareWindow / UnshareWindow
	WindowID string `json:"window_id,omitempty"`

	// CreateTerminal / ResizeTerminal / TerminalConfig
	Host         string  `json:"host,omitempty"`
	Port         int     `json:"port,omitempty"`
	TerminalType *string `json:"terminal_type,omitempty"`
	LocalEcho    *bool   `json:"local_echo,omitempty"`
	LineEnding   *string `json:"line_ending,omitempty"`

	// TerminalInput
	Data string `json:"data,omitempty"`
}

// FGOr returns FG, defaulting to white (7).
func (c Command) FGOr() int {
	if c.FG != nil {
		return *c.FG
	}
	return 7
}

// BGOr returns BG, defaulting to black (0).
func (c Command) BGOr() int {
	if c.BG != nil {
		return *c.BG
	}
	return 0
}

// ClosableOr, ResizableOr, DraggableOr default to true.
func (c Command) ClosableOr() bool  { return c.Closable == nil || *c.Closable }
func (c Command) ResizableOr() bool { return c.Resizable == nil || *c.Resizable }
func (c Command) DraggableOr() bool { return c.Draggable == nil || *c.Draggable }

// MinWidthOr and MinHeightOr default to 10 and 5.
func (c Command) MinWidthOr() int {
	if c.MinWidth != nil {
		return *c.MinWidth
	}
	return 10
}

func (c Command) MinHeightOr() int {
	if c.MinHeight != nil {
		return *c.MinHeight
	}
	return 5
}

// ModeOr defaults to "sgr".
func (c Command) ModeOr() string {
	if c.Mode != nil {
		return *c.Mode
	}
	return "sgr"
}

// TerminalTypeOr defaults to "ansi".
func (c Command) TerminalTypeOr() string {
	if c.TerminalType != nil {
		return *c.TerminalType
	}
	return "ansi"
}

// BorderOr defaults to "single".
func (c Command) BorderOr() string {
	if c.Border != nil {
		return *c.Border
	}
	return "single"
}

// TitleOr returns the title or "".
func (c Command) TitleOr() string {
	if c.Title != nil {
		return *c.Title
	}
	return ""
}

// ParseBorderStyle maps a wire border name onto the core palette,
// defaulting anything unrecognized to Single.
func ParseBorderStyle(s string) core.BorderStyle {
	switch s {
	case "none":
		return core.BorderNone
	case "single":
		return core.BorderSingle
	case "double":
		return core.BorderDouble
	case "rounded":
		return core.BorderRounded
	case "heavy":
		return core.BorderHeavy
	case "ascii":
		return core.BorderASCII
	default:
		return core.BorderSingle
	}
}

// ParseCommand decodes a single JSON command, ignoring any session field
// (use ParseTargetedCommand when that matters).
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("parse command: %w", err)
	}
	return cmd, nil
}

// TargetedCommand pairs a command with an optional session target:
// empty or "*" means broadcast to every session, anything else names one
// specific session.
type TargetedCommand struct {
	Session string
	Command Command
}

// ParseTargetedCommand extracts the optional "session" field before
// parsing the remainder as a Command, mirroring how the wire format lets
// any command carry an out-of-band routing hint.
func ParseTargetedCommand(data []byte) (TargetedCommand, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return TargetedCommand{}, fmt.Errorf("parse targeted command: %w", err)
	}

	var session string
	if sessionRaw, ok := raw["session"]; ok {
		_ = json.Unmarshal(sessionRaw, &session)
		delete(raw, "session")
	}

	remainder, err := json.Marshal(raw)
	if err != nil {
		return TargetedCommand{}, fmt.Errorf("re-marshal command: %w", err)
	}

	cmd, err := ParseCommand(remainder)
	if err != nil {
		return TargetedCommand{}, err
	}

	return TargetedCommand{Session: session, Command: cmd}, nil
}
