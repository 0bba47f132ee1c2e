// Package apuserver owns the two TCP listeners an APU process exposes: the
// game port, where a driving program sends display commands and receives
// events back as newline-delimited JSON, and the client port, where raw
// telnet clients connect to see the composited display and drive window
// chrome with their mouse. Server ties the two together: every session a
// client opens is visible to every connected game, and every command a game
// sends lands on one session's display (or all of them).
package apuserver

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/benj-edwards/ascii-processing-unit/internal/config"
	"github.com/benj-edwards/ascii-processing-unit/internal/protocol"
	"github.com/benj-edwards/ascii-processing-unit/internal/session"
)

// Server is the top-level APU process: two listeners, a table of connected
// client sessions, and a registry of connected games to fan events out to.
// Session methods are not internally synchronized; mu is the single lock
// serializing every access to sessions, matching the original's
// coarse-grained session-table lock rather than a lock per session.
type Server struct {
	GamePort   int
	ClientPort int
	GameBind   string
	ClientBind string

	Renderer        string
	ScrollbackLines int
	LogLevel        string

	mu              sync.Mutex
	sessions        map[string]*session.ClientSession
	shutdownSignals map[string]chan struct{}

	gameMu     sync.Mutex
	games      map[int]chan []byte
	nextGameID int

	events session.EventSink
}

// NewServer constructs a server from cfg, bound to cfg's addresses. Call Run
// to start accepting connections.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		GamePort:        cfg.GamePort,
		ClientPort:      cfg.ClientPort,
		GameBind:        cfg.GameBind,
		ClientBind:      cfg.ClientBind,
		Renderer:        cfg.Renderer,
		ScrollbackLines: cfg.ScrollbackLines,
		LogLevel:        cfg.LogLevel,
		sessions:        make(map[string]*session.ClientSession),
		shutdownSignals: make(map[string]chan struct{}),
		games:           make(map[int]chan []byte),
	}
	s.events = terminalEventSink{s}
	return s
}

// debugf logs only when the server is configured for debug verbosity,
// gating the routing trace that would otherwise drown out normal operation.
func (s *Server) debugf(format string, args ...interface{}) {
	if s.LogLevel == "debug" {
		log.Printf(format, args...)
	}
}

// Run binds both listeners and serves until one of them fails.
func (s *Server) Run() error {
	gameAddr := net.JoinHostPort(s.GameBind, strconv.Itoa(s.GamePort))
	gameLn, err := net.Listen("tcp", gameAddr)
	if err != nil {
		return fmt.Errorf("listen game port: %w", err)
	}
	clientAddr := net.JoinHostPort(s.ClientBind, strconv.Itoa(s.ClientPort))
	clientLn, err := net.Listen("tcp", clientAddr)
	if err != nil {
		gameLn.Close()
		return fmt.Errorf("listen client port: %w", err)
	}

	log.Printf("[apuserver] game port listening on %s", gameAddr)
	log.Printf("[apuserver] client port listening on %s", clientAddr)

	errCh := make(chan error, 2)
	go func() { errCh <- s.acceptLoop(gameLn, s.handleGameConn) }()
	go func() { errCh <- s.acceptLoop(clientLn, s.handleClientConn) }()
	return <-errCh
}

func (s *Server) acceptLoop(ln net.Listener, handle func(net.Conn)) error {
	defer ln.Close()
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handle(conn)
	}
}

// registerGame adds a game's output channel to the broadcast registry and
// returns an id to unregister it with later.
func (s *Server) registerGame(out chan []byte) int {
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	s.nextGameID++
	id := s.nextGameID
	s.games[id] = out
	return id
}

func (s *Server) unregisterGame(id int) {
	s.gameMu.Lock()
	ch, ok := s.games[id]
	delete(s.games, id)
	s.gameMu.Unlock()
	if ok {
		close(ch)
	}
}

// broadcast fans a response out to every connected game. A game whose
// output channel is full misses this event (the drop is logged) rather
// than blocking every other game on a single slow reader.
func (s *Server) broadcast(resp protocol.Response) {
	line := append(protocol.Marshal(resp), '\n')
	s.gameMu.Lock()
	defer s.gameMu.Unlock()
	for id, ch := range s.games {
		select {
		case ch <- line:
		default:
			log.Printf("[apuserver] game %d output channel full, dropping event", id)
		}
	}
}

func (s *Server) session(id string) *session.ClientSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// disconnectSession signals a connected client's read loop to tear down,
// used by the console's "close" command and by a game-issued Shutdown.
func (s *Server) disconnectSession(id string) {
	s.mu.Lock()
	ch, ok := s.shutdownSignals[id]
	s.mu.Unlock()
	if ok {
		closeShutdownSignal(ch)
	}
}

// closeShutdownSignal closes ch unless it's already closed, since a session
// can be torn down both explicitly (disconnectSession) and by its own
// connection dying, and both paths need to close the same channel safely.
func closeShutdownSignal(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

func newSessionID() string {
	return uuid.NewString()
}
