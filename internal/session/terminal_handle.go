package session

import (
	"log"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/benj-edwards/ascii-processing-unit/internal/core"
	"github.com/benj-edwards/ascii-processing-unit/internal/telnet"
	"github.com/benj-edwards/ascii-processing-unit/internal/termemu"
)

// TerminalHandle owns a dialed-out telnet connection and the terminal
// emulator fed by it. The connection and its read/write loops run in the
// background from the moment the handle is created; callers never block on
// the dial.
type TerminalHandle struct {
	mu       sync.Mutex
	terminal *termemu.Terminal

	Host string
	Port int

	LocalEcho  bool
	LineEnding string // "cr" (default), "crlf", or "lf"

	inputCh   chan []byte
	done      chan struct{}
	closeOnce sync.Once
	conn      net.Conn

	events EventSink
}

func (h *TerminalHandle) closeDone() {
	h.closeOnce.Do(func() { close(h.done) })
}

// EventSink receives the out-of-band events a terminal handle produces
// while its background goroutines run: connect/disconnect/error
// notifications that the owning session forwards to games.
type EventSink interface {
	TerminalConnected(id, host string, port int)
	TerminalDisconnected(id, reason string)
	TerminalError(id, reason string)
}

// newTerminalHandle creates a terminal emulator of the given size and spawns
// a background goroutine that dials host:port, negotiates telnet, and pumps
// bytes between the socket and the emulator. It returns immediately; dial
// failure is reported asynchronously via events.
func newTerminalHandle(id, host string, port, width, height int, termType termemu.TerminalType, scrollbackLines int, events EventSink) *TerminalHandle {
	term := termemu.NewTerminal(id, width, height, termType)
	if scrollbackLines > 0 {
		term.MaxScrollback = scrollbackLines
	}
	h := &TerminalHandle{
		terminal:   term,
		Host:       host,
		Port:       port,
		LineEnding: "cr",
		inputCh:    make(chan []byte, 100),
		done:       make(chan struct{}),
		events:     events,
	}
	go h.dial(id, width, height)
	return h
}

// Resize resizes the terminal emulator buffer and, if connected, tells the
// remote end via a NAWS subnegotiation.
func (h *TerminalHandle) Resize(width, height int) {
	h.mu.Lock()
	h.terminal.Resize(width, height)
	conn := h.conn
	h.mu.Unlock()

	if conn == nil {
		return
	}
	w, hh := uint16(width), uint16(height)
	naws := []byte{
		telnet.IAC, telnet.SB, telnet.OptNAWS,
		byte(w >> 8), byte(w & 0xff),
		byte(hh >> 8), byte(hh & 0xff),
		telnet.IAC, telnet.SE,
	}
	select {
	case h.inputCh <- naws:
	default:
	}
}

// Send queues data to write to the remote host, giving up after a short
// timeout if the write loop is wedged rather than blocking the caller
// indefinitely.
func (h *TerminalHandle) Send(data []byte) bool {
	select {
	case h.inputCh <- data:
		return true
	case <-h.done:
		return false
	case <-time.After(50 * time.Millisecond):
		return false
	}
}

// Close tears down the connection and its goroutines. Safe to call more
// than once.
func (h *TerminalHandle) Close() {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	h.closeDone()
}

func (h *TerminalHandle) dial(id string, width, height int) {
	addr := net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		h.events.TerminalError(id, "connection failed: "+err.Error())
		return
	}

	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		conn.Close()
		return
	default:
	}
	h.conn = conn
	h.mu.Unlock()

	h.events.TerminalConnected(id, h.Host, h.Port)

	// Announce terminal capabilities proactively, matching the greeting a
	// raw telnet client would send.
	conn.Write(telnet.InitialGreeting())

	writerDone := make(chan struct{})
	go h.writeLoop(id, conn, writerDone)

	h.readLoop(id, conn, width, height)

	conn.Close()
	h.closeDone()
	<-writerDone
}

func (h *TerminalHandle) writeLoop(id string, conn net.Conn, done chan struct{}) {
	defer close(done)
	for {
		select {
		case data, ok := <-h.inputCh:
			if !ok {
				return
			}
			if _, err := conn.Write(data); err != nil {
				log.Printf("terminal %s write error: %v", id, err)
				return
			}
		case <-h.done:
			return
		}
	}
}

// Echo feeds data straight into the terminal emulator without going over
// the wire, used for local echo when the remote host doesn't echo typed
// characters itself.
func (h *TerminalHandle) Echo(data []byte) {
	h.mu.Lock()
	h.terminal.ProcessData(data)
	h.mu.Unlock()
}

// RenderTo blits the terminal's current screen onto dst at (dx,dy), up to
// maxW x maxH cells.
func (h *TerminalHandle) RenderTo(dst *core.Grid, dx, dy, maxW, maxH int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for y, row := range h.terminal.Screen() {
		if y >= maxH {
			break
		}
		for x, c := range row {
			if x >= maxW {
				break
			}
			dst.Set(dx+x, dy+y, c.Char, c.FG, c.BG, c.Attrs)
		}
	}
}

// ClearDirty clears the terminal's dirty flag after a sync.
func (h *TerminalHandle) ClearDirty() {
	h.mu.Lock()
	h.terminal.Dirty = false
	h.mu.Unlock()
}

func (h *TerminalHandle) readLoop(id string, conn net.Conn, width, height int) {
	neg := telnet.NewNegotiator(width, height)
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			filtered, replies := neg.Feed(buf[:n])
			if len(replies) > 0 {
				select {
				case h.inputCh <- replies:
				case <-h.done:
					return
				}
			}
			if len(filtered) > 0 {
				h.mu.Lock()
				h.terminal.ProcessData(filtered)
				queued := h.terminal.ResponseQueue
				h.terminal.ResponseQueue = nil
				h.mu.Unlock()
				for _, resp := range queued {
					select {
					case h.inputCh <- resp:
					case <-h.done:
						return
					}
				}
			}
		}
		if err != nil {
			h.events.TerminalDisconnected(id, "connection closed")
			return
		}
	}
}
