package session

import (
	"github.com/benj-edwards/ascii-processing-unit/internal/core"
	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/renderer"
)

// ProcessCommand runs a game command against this session's display and
// returns the response to send back. Commands that only make sense at
// server level (session management, terminal lifecycle) are intercepted by
// the server before a command ever reaches here; if one slips through, it
// reports an error rather than silently doing nothing.
func (s *ClientSession) ProcessCommand(cmd protocol.Command) protocol.Response {
	switch cmd.Cmd {
	case protocol.CmdInit:
		cols, rows := 80, 24
		if cmd.Cols != nil {
			cols = *cmd.Cols
		}
		if cmd.Rows != nil {
			rows = *cmd.Rows
		}
		s.Windows.Resize(cols, rows)
		s.renderer = renderer.New(s.RendererName, cols, rows)
		s.send(s.renderer.Init())
		return protocol.Info(cols, rows, s.renderer.Name())

	case protocol.CmdShutdown:
		s.send(s.renderer.Shutdown())
		return protocol.Ok()

	case protocol.CmdClear, protocol.CmdClearBackground:
		s.Windows.Background.Clear()
		return protocol.Ok()

	case protocol.CmdReset:
		s.Windows.ClearAllWindows()
		s.Windows.Background.Clear()
		return protocol.Ok()

	case protocol.CmdCreateWindow:
		y := cmd.Y
		if !cmd.Invert && y < 1 {
			y = 1
		}
		win := s.Windows.CreateWindow(cmd.ID, cmd.X, y, cmd.Width, cmd.Height)
		win.SetBorder(protocol.ParseBorderStyle(cmd.BorderOr()))
		if cmd.Title != nil {
			win.SetTitle(*cmd.Title)
		}
		win.Closable = cmd.ClosableOr()
		win.Resizable = cmd.ResizableOr()
		win.Draggable = cmd.DraggableOr()
		win.MinWidth = cmd.MinWidthOr()
		win.MinHeight = cmd.MinHeightOr()
		win.Invert = cmd.Invert
		return protocol.Ok()

	case protocol.CmdRemoveWindow:
		s.Windows.Remove(cmd.ID)
		return protocol.Ok()

	case protocol.CmdUpdateWindow:
		win := s.Windows.Get(cmd.ID)
		if win == nil {
			return protocol.ErrorResp("Window not found: " + cmd.ID)
		}
		win.X = cmd.X
		y := cmd.Y
		if !win.Invert && y < 1 {
			y = 1
		}
		win.Y = y
		win.Dirty = true
		if cmd.Width != 0 && cmd.Height != 0 {
			win.Resize(cmd.Width, cmd.Height)
		}
		if cmd.Border != nil {
			win.SetBorder(protocol.ParseBorderStyle(*cmd.Border))
		}
		if cmd.Visible != nil {
			if *cmd.Visible {
				win.Show()
			} else {
				win.Hide()
			}
		}
		if cmd.Title != nil {
			win.SetTitle(*cmd.Title)
		}
		if cmd.Closable != nil {
			win.Closable = *cmd.Closable
		}
		if cmd.Resizable != nil {
			win.Resizable = *cmd.Resizable
		}
		if cmd.Draggable != nil {
			win.Draggable = *cmd.Draggable
		}
		if cmd.ZIndex != nil {
			win.ZIndex = *cmd.ZIndex
		}
		return protocol.Ok()

	case protocol.CmdSetCell:
		win := s.Windows.Get(cmd.Window)
		if win == nil {
			return protocol.ErrorResp("Window not found: " + cmd.Window)
		}
		win.Set(cmd.X, cmd.Y, charOf(cmd.Char), colorOrDefault(cmd.FG, core.White), colorPtr(cmd.BG))
		return protocol.Ok()

	case protocol.CmdPrint:
		win := s.Windows.Get(cmd.Window)
		if win == nil {
			return protocol.ErrorResp("Window not found: " + cmd.Window)
		}
		win.Print(cmd.X, cmd.Y, cmd.Text, colorOrDefault(cmd.FG, core.White), colorPtr(cmd.BG))
		return protocol.Ok()

	case protocol.CmdClearWindow:
		win := s.Windows.Get(cmd.ID)
		if win == nil {
			return protocol.ErrorResp("Window not found: " + cmd.ID)
		}
		win.Clear()
		return protocol.Ok()

	case protocol.CmdFill:
		win := s.Windows.Get(cmd.Window)
		if win == nil {
			return protocol.ErrorResp("Window not found: " + cmd.Window)
		}
		win.Fill(cmd.X, cmd.Y, cmd.Width, cmd.Height, charOf(cmd.Char), colorOrDefault(cmd.FG, core.White), colorPtr(cmd.BG))
		return protocol.Ok()

	case protocol.CmdSetDirect:
		s.Windows.Background.Set(cmd.X, cmd.Y, charOf(cmd.Char), colorOrDefault(cmd.FG, core.White), colorOrDefault(cmd.BG, core.Black), core.Attrs{})
		return protocol.Ok()

	case protocol.CmdPrintDirect:
		s.Windows.Background.WriteStr(cmd.X, cmd.Y, cmd.Text, colorOrDefault(cmd.FG, core.White), colorPtr(cmd.BG), core.Attrs{})
		return protocol.Ok()

	case protocol.CmdBatch:
		for _, c := range cmd.Cells {
			if c.Window != nil {
				if win := s.Windows.Get(*c.Window); win != nil {
					win.Set(c.X, c.Y, charOf(c.Char), colorOrDefault(c.FG, core.White), colorPtr(c.BG))
				}
				continue
			}
			s.Windows.Background.Set(c.X, c.Y, charOf(c.Char), colorOrDefault(c.FG, core.White), colorOrDefault(c.BG, core.Black), core.Attrs{})
		}
		return protocol.Ok()

	case protocol.CmdFlush:
		s.SyncTerminalsToWindows()
		s.Windows.Composite()
		output := s.renderer.Render(s.Windows.Display, cmd.ForceFull)
		s.Windows.Display.MarkAllClean()
		s.Windows.MarkAllClean()
		s.send(output)
		return protocol.Output(output)

	case protocol.CmdBringToFront:
		s.Windows.BringToFront(cmd.ID)
		return protocol.Ok()

	case protocol.CmdSendToBack:
		s.Windows.SendToBack(cmd.ID)
		return protocol.Ok()

	case protocol.CmdEnableMouse:
		s.EnableMouse(renderer.MouseModeFromString(cmd.ModeOr()))
		return protocol.Ok()

	case protocol.CmdDisableMouse:
		s.DisableMouse()
		return protocol.Ok()

	// Session management and terminal lifecycle commands are intercepted
	// by the server before it ever calls ProcessCommand.
	case protocol.CmdListSessions:
		return protocol.ErrorResp("ListSessions should be handled at server level")
	case protocol.CmdShareDisplay:
		return protocol.ErrorResp("ShareDisplay should be handled at server level")
	case protocol.CmdUnshareDisplay:
		return protocol.ErrorResp("UnshareDisplay should be handled at server level")
	case protocol.CmdShareWindow:
		return protocol.ErrorResp("ShareWindow should be handled at server level")
	case protocol.CmdUnshareWindow:
		return protocol.ErrorResp("UnshareWindow should be handled at server level")
	case protocol.CmdCreateTerminal:
		return protocol.ErrorResp("CreateTerminal should be handled at server level")
	case protocol.CmdCloseTerminal:
		return protocol.ErrorResp("CloseTerminal should be handled at server level")
	case protocol.CmdTerminalInput:
		return protocol.ErrorResp("TerminalInput should be handled at server level")
	case protocol.CmdTerminalConfig:
		return protocol.ErrorResp("TerminalConfig should be handled at server level")
	case protocol.CmdResizeTerminal:
		return protocol.ErrorResp("ResizeTerminal should be handled at server level")

	default:
		return protocol.ErrorResp("Unknown command: " + cmd.Cmd)
	}
}

func charOf(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func colorOrDefault(v *int, def core.Color) core.Color {
	if v == nil {
		return def
	}
	return core.ColorFromByte(*v)
}

func colorPtr(v *int) *core.Color {
	if v == nil {
		return nil
	}
	c := core.ColorFromByte(*v)
	return &c
}
