package apuserver

import (
	"log"
	"net"
	"time"

	"github.com/benj-edwards/ascii-processing-unit/internal/input"
	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/session"
	"github.com/benj-edwards/ascii-processing-unit/internal/telnet"
)

const autoFlushInterval = 30 * time.Millisecond

// clientChannelCapacity is the size of a connected client's output channel.
// Unlike the game broadcast channel, this one is never lossy: send() blocks
// once it fills, so capacity only bounds how far a slow telnet client can
// fall behind before the goroutine producing its output starts waiting.
const clientChannelCapacity = 100

func (s *Server) handleClientConn(conn net.Conn) {
	defer conn.Close()

	id := newSessionID()
	addr := conn.RemoteAddr().String()
	log.Printf("[apuserver] client %s connected from %s", id, addr)

	outCh := make(chan string, clientChannelCapacity)
	shutdown := make(chan struct{})
	sess := session.NewClientSession(id, addr, outCh, shutdown, 80, 24, time.Now().Unix(), s.Renderer, s.ScrollbackLines)

	s.mu.Lock()
	s.sessions[id] = sess
	s.shutdownSignals[id] = shutdown
	s.mu.Unlock()
	s.broadcast(protocol.ClientConnect(id))

	defer func() {
		sess.CloseAllTerminals()
		s.mu.Lock()
		delete(s.sessions, id)
		delete(s.shutdownSignals, id)
		s.mu.Unlock()
		s.broadcast(protocol.ClientDisconnect(id))
		log.Printf("[apuserver] client %s disconnected", id)
	}()

	conn.Write(telnet.RawModeNegotiation())
	sess.Init()

	// The writer never closes outCh itself; it exits on shutdown instead, so
	// a send() blocked on a full channel elsewhere can never race a close.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case out := <-outCh:
				if _, err := conn.Write([]byte(out)); err != nil {
					return
				}
			case <-shutdown:
				return
			}
		}
	}()
	defer func() {
		closeShutdownSignal(shutdown)
		<-writerDone
	}()

	readCh := make(chan []byte)
	readErrCh := make(chan error, 1)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				data := append([]byte(nil), buf[:n]...)
				select {
				case readCh <- data:
				case <-shutdown:
					return
				}
			}
			if err != nil {
				readErrCh <- err
				return
			}
		}
	}()

	parser := input.NewParser()
	ticker := time.NewTicker(autoFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return

		case <-ticker.C:
			if sess.HasTerminals() {
				sess.SyncTerminalsToWindows()
				sess.AutoFlush()
			}

		case data := <-readCh:
			filtered := telnet.FilterIAC(data)
			for _, ev := range parser.Feed(filtered) {
				s.handleClientEvent(sess, ev)
			}

		case <-readErrCh:
			return
		}
	}
}

func isConsoleToggle(ev input.Event) bool {
	if ev.Type == input.EventChar && session.IsConsoleToggleChar(ev.Char) {
		return true
	}
	return ev.Type == input.EventKey && ev.Key == input.KeyF10
}

func (s *Server) handleClientEvent(sess *session.ClientSession, ev input.Event) {
	if isConsoleToggle(ev) {
		sess.ToggleConsole()
		if sess.ConsoleOpen {
			sess.DrawConsole()
		} else {
			s.broadcast(protocol.RefreshRequested(sess.ID))
		}
		return
	}

	if sess.ConsoleOpen {
		switch ev.Type {
		case input.EventChar:
			sess.PushConsoleChar(ev.Char)
			sess.DrawConsole()
		case input.EventKey:
			switch ev.Key {
			case input.KeyEnter:
				shouldReset, shouldClose := sess.ProcessConsoleCommand()
				sess.ConsoleOpen = false
				if shouldReset {
					s.broadcast(protocol.RefreshRequested(sess.ID))
				}
				if shouldClose {
					s.disconnectSession(sess.ID)
				}
			case input.KeyBackspace:
				sess.BackspaceConsole()
				sess.DrawConsole()
			case input.KeyEscape:
				sess.CancelConsole()
			}
		}
		return
	}

	if ev.Type == input.EventMouse {
		events, forward := sess.HandleMouseEvent(ev, time.Now().UnixMilli())
		for _, e := range events {
			s.broadcast(e)
		}
		sess.AutoFlush()
		if forward {
			s.broadcast(protocol.Input(sess.ID, ev))
		}
		return
	}

	if h := sess.FocusedTerminal(); h != nil {
		data := inputEventToBytes(ev, h.LineEnding)
		if len(data) > 0 {
			if h.LocalEcho {
				h.Echo(data)
			}
			h.Send(data)
			return
		}
	}

	s.broadcast(protocol.Input(sess.ID, ev))
}
