package apuserver

import (
	"testing"

	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/session"
)

func newTestServerWithSessions(ids ...string) (*Server, map[string]chan string) {
	s := NewServer(testConfig())
	outs := make(map[string]chan string)
	for _, id := range ids {
		out := make(chan string, 64)
		outs[id] = out
		s.sessions[id] = session.NewClientSession(id, "127.0.0.1:0", out, make(chan struct{}), 80, 24, 0, "ansi-ibm", 1000)
	}
	return s, outs
}

func TestRouteCommand_ListSessions(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")
	gameOut := make(chan []byte, 4)
	s.registerGame(gameOut)

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{Cmd: protocol.CmdListSessions}})

	if len(gameOut) != 1 {
		t.Fatalf("expected one broadcast message, got %d", len(gameOut))
	}
}

func TestRouteCommand_ShareAndUnshareDisplay(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdShareDisplay, Source: "a", Target: "b",
	}})

	if got := s.sessions["a"].DisplaySharesTo; len(got) != 1 || got[0] != "b" {
		t.Fatalf("a.DisplaySharesTo = %v, want [b]", got)
	}
	if got := s.sessions["b"].DisplaySharesFrom; len(got) != 1 || got[0] != "a" {
		t.Fatalf("b.DisplaySharesFrom = %v, want [a]", got)
	}

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdUnshareDisplay, Source: "a", Target: "b",
	}})

	if got := s.sessions["a"].DisplaySharesTo; len(got) != 0 {
		t.Fatalf("a.DisplaySharesTo = %v, want empty", got)
	}
	if got := s.sessions["b"].DisplaySharesFrom; len(got) != 0 {
		t.Fatalf("b.DisplaySharesFrom = %v, want empty", got)
	}
}

func TestRouteCommand_ShareAndUnshareWindow(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdShareWindow, Source: "a", Target: "b", WindowID: "w1",
	}})

	if got := s.sessions["a"].WindowSharesTo; len(got) != 1 || got[0] != (session.WindowShare{Session: "b", Window: "w1"}) {
		t.Fatalf("a.WindowSharesTo = %v, want [{b w1}]", got)
	}
	if got := s.sessions["b"].WindowSharesFrom; len(got) != 1 || got[0] != (session.WindowShare{Session: "a", Window: "w1"}) {
		t.Fatalf("b.WindowSharesFrom = %v, want [{a w1}]", got)
	}

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdUnshareWindow, Source: "a", Target: "b", WindowID: "w1",
	}})

	if got := s.sessions["a"].WindowSharesTo; len(got) != 0 {
		t.Fatalf("a.WindowSharesTo = %v, want empty", got)
	}
	if got := s.sessions["b"].WindowSharesFrom; len(got) != 0 {
		t.Fatalf("b.WindowSharesFrom = %v, want empty", got)
	}
}

func TestRouteCommand_ShareWindow_KeepsSeparateWindowsDistinct(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")

	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdShareWindow, Source: "a", Target: "b", WindowID: "w1",
	}})
	s.routeCommand(protocol.TargetedCommand{Command: protocol.Command{
		Cmd: protocol.CmdShareWindow, Source: "a", Target: "b", WindowID: "w2",
	}})

	if got := s.sessions["a"].WindowSharesTo; len(got) != 2 {
		t.Fatalf("a.WindowSharesTo = %v, want two distinct window shares", got)
	}
}

func TestDispatchToSessions_NamedSession(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")
	gameOut := make(chan []byte, 4)
	s.registerGame(gameOut)

	s.dispatchToSessions(protocol.TargetedCommand{
		Session: "a",
		Command: protocol.Command{Cmd: protocol.CmdInit, Cols: intp(80), Rows: intp(24)},
	})

	if len(gameOut) != 1 {
		t.Fatalf("expected one response, got %d", len(gameOut))
	}
}

func TestDispatchToSessions_UnknownSession(t *testing.T) {
	s, _ := newTestServerWithSessions("a")
	gameOut := make(chan []byte, 4)
	s.registerGame(gameOut)

	s.dispatchToSessions(protocol.TargetedCommand{
		Session: "missing",
		Command: protocol.Command{Cmd: protocol.CmdInit},
	})

	if len(gameOut) != 1 {
		t.Fatalf("expected one error response, got %d", len(gameOut))
	}
}

func TestDispatchToSessions_Broadcast(t *testing.T) {
	s, _ := newTestServerWithSessions("a", "b")
	gameOut := make(chan []byte, 4)
	s.registerGame(gameOut)

	s.dispatchToSessions(protocol.TargetedCommand{
		Session: "*",
		Command: protocol.Command{Cmd: protocol.CmdInit, Cols: intp(80), Rows: intp(24)},
	})

	if len(gameOut) != 2 {
		t.Fatalf("expected one response per session, got %d", len(gameOut))
	}
}

func intp(v int) *int { return &v }
