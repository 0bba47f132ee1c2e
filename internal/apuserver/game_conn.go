package apuserver

import (
	"bufio"
	"log"
	"net"

	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/session"
	"github.com/benj-edwards/ascii-processing-unit/internal/termemu"
)

// gameChannelCapacity is the size of a connected game's broadcast output
// channel. It is lossy by design: a game that falls behind misses events
// rather than stalling every other connected game.
const gameChannelCapacity = 1000

func (s *Server) handleGameConn(conn net.Conn) {
	defer conn.Close()

	out := make(chan []byte, gameChannelCapacity)
	id := s.registerGame(out)
	defer s.unregisterGame(id)

	log.Printf("[apuserver] game connected from %s", conn.RemoteAddr())

	s.mu.Lock()
	infos := make([]protocol.SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, sess.Info())
	}
	s.mu.Unlock()
	if len(infos) > 0 {
		out <- append(protocol.Marshal(protocol.Sessions(infos)), '\n')
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for line := range out {
			if _, err := conn.Write(line); err != nil {
				return
			}
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		tc, err := protocol.ParseTargetedCommand(line)
		if err != nil {
			s.broadcast(protocol.ErrorResp("malformed command: " + err.Error()))
			continue
		}
		s.routeCommand(tc)
	}

	log.Printf("[apuserver] game disconnected from %s", conn.RemoteAddr())
	s.unregisterGame(id)
	<-writerDone
}

// routeCommand handles the commands that only make sense at server level —
// session enumeration, display/window sharing bookkeeping, and terminal
// lifecycle, all of which need access to the session table or a terminal
// handle directly — then falls through to per-session ProcessCommand
// dispatch for everything else.
func (s *Server) routeCommand(tc protocol.TargetedCommand) {
	cmd := tc.Command
	s.debugf("[apuserver] route %s session=%q", cmd.Cmd, tc.Session)
	switch cmd.Cmd {
	case protocol.CmdListSessions:
		s.mu.Lock()
		infos := make([]protocol.SessionInfo, 0, len(s.sessions))
		for _, sess := range s.sessions {
			infos = append(infos, sess.Info())
		}
		s.mu.Unlock()
		s.broadcast(protocol.Sessions(infos))

	case protocol.CmdShareDisplay:
		s.mu.Lock()
		src, dst := s.sessions[cmd.Source], s.sessions[cmd.Target]
		if src != nil && dst != nil {
			src.DisplaySharesTo = appendUnique(src.DisplaySharesTo, cmd.Target)
			dst.DisplaySharesFrom = appendUnique(dst.DisplaySharesFrom, cmd.Source)
		}
		s.mu.Unlock()

	case protocol.CmdUnshareDisplay:
		s.mu.Lock()
		src, dst := s.sessions[cmd.Source], s.sessions[cmd.Target]
		if src != nil {
			src.DisplaySharesTo = removeString(src.DisplaySharesTo, cmd.Target)
		}
		if dst != nil {
			dst.DisplaySharesFrom = removeString(dst.DisplaySharesFrom, cmd.Source)
		}
		s.mu.Unlock()

	case protocol.CmdShareWindow:
		s.mu.Lock()
		src, dst := s.sessions[cmd.Source], s.sessions[cmd.Target]
		if src != nil && dst != nil {
			share := session.WindowShare{Session: cmd.Target, Window: cmd.WindowID}
			src.WindowSharesTo = appendUniqueWindowShare(src.WindowSharesTo, share)
			dst.WindowSharesFrom = appendUniqueWindowShare(dst.WindowSharesFrom,
				session.WindowShare{Session: cmd.Source, Window: cmd.WindowID})
		}
		s.mu.Unlock()

	case protocol.CmdUnshareWindow:
		s.mu.Lock()
		src, dst := s.sessions[cmd.Source], s.sessions[cmd.Target]
		if src != nil {
			src.WindowSharesTo = removeWindowShare(src.WindowSharesTo,
				session.WindowShare{Session: cmd.Target, Window: cmd.WindowID})
		}
		if dst != nil {
			dst.WindowSharesFrom = removeWindowShare(dst.WindowSharesFrom,
				session.WindowShare{Session: cmd.Source, Window: cmd.WindowID})
		}
		s.mu.Unlock()

	case protocol.CmdShutdown:
		if tc.Session != "" && tc.Session != "*" {
			if sess := s.session(tc.Session); sess != nil {
				sess.Shutdown()
				s.disconnectSession(tc.Session)
			}
		}

	case protocol.CmdCreateTerminal:
		if sess := s.session(tc.Session); sess != nil {
			termType := termemu.TerminalTypeFromString(cmd.TerminalTypeOr())
			border := protocol.ParseBorderStyle(cmd.BorderOr())
			sess.CreateTerminal(cmd.ID, cmd.Host, cmd.Port, cmd.X, cmd.Y, cmd.Width, cmd.Height,
				termType, border, cmd.TitleOr(), cmd.ClosableOr(), cmd.ResizableOr(), s.events)
		}

	case protocol.CmdCloseTerminal:
		if sess := s.session(tc.Session); sess != nil {
			sess.CloseTerminal(cmd.ID)
		}

	case protocol.CmdTerminalInput:
		if sess := s.session(tc.Session); sess != nil {
			sess.SendTerminalInput(cmd.ID, []byte(cmd.Data))
		}

	case protocol.CmdTerminalConfig:
		if sess := s.session(tc.Session); sess != nil {
			sess.ConfigureTerminal(cmd.ID, cmd.LocalEcho, cmd.LineEnding)
		}

	case protocol.CmdResizeTerminal:
		if sess := s.session(tc.Session); sess != nil {
			border := protocol.ParseBorderStyle(cmd.BorderOr())
			sess.ResizeTerminal(cmd.ID, cmd.X, cmd.Y, cmd.Width, cmd.Height, border, cmd.Title,
				cmd.ClosableOr(), cmd.ResizableOr(), cmd.DraggableOr())
		}

	default:
		s.dispatchToSessions(tc)
	}
}

// dispatchToSessions runs a command through ProcessCommand on the targeted
// session, or every session when none (or "*") is named.
func (s *Server) dispatchToSessions(tc protocol.TargetedCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tc.Session == "" || tc.Session == "*" {
		for _, sess := range s.sessions {
			s.broadcast(sess.ProcessCommand(tc.Command))
		}
		return
	}

	sess, ok := s.sessions[tc.Session]
	if !ok {
		s.broadcast(protocol.ErrorResp("Session not found: " + tc.Session))
		return
	}
	s.broadcast(sess.ProcessCommand(tc.Command))
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

func appendUniqueWindowShare(list []session.WindowShare, v session.WindowShare) []session.WindowShare {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func removeWindowShare(list []session.WindowShare, v session.WindowShare) []session.WindowShare {
	out := list[:0]
	for _, existing := range list {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}
