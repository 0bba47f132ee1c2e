package apuserver

import "github.com/benj-edwards/ascii-processing-unit/internal/protocol"

// terminalEventSink broadcasts a terminal handle's connect/disconnect/error
// notifications to every connected game, satisfying session.EventSink.
type terminalEventSink struct {
	s *Server
}

func (t terminalEventSink) TerminalConnected(id, host string, port int) {
	t.s.broadcast(protocol.TerminalConnected(id, host, port))
}

func (t terminalEventSink) TerminalDisconnected(id, reason string) {
	t.s.broadcast(protocol.TerminalDisconnected(id, reason))
}

func (t terminalEventSink) TerminalError(id, reason string) {
	t.s.broadcast(protocol.TerminalError(id, reason))
}
