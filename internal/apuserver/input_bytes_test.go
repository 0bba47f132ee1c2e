package apuserver

import (
	"bytes"
	"testing"

	"github.com/benj-edwards/ascii-processing-unit/internal/input"
)

func TestInputEventToBytes_Char(t *testing.T) {
	got := inputEventToBytes(input.Event{Type: input.EventChar, Char: 'q'}, "cr")
	if !bytes.Equal(got, []byte("q")) {
		t.Fatalf("got %q, want 'q'", got)
	}
}

func TestInputEventToBytes_Arrows(t *testing.T) {
	tests := []struct {
		key  input.Key
		want string
	}{
		{input.KeyUp, "\x1b[A"},
		{input.KeyDown, "\x1b[B"},
		{input.KeyRight, "\x1b[C"},
		{input.KeyLeft, "\x1b[D"},
		{input.KeyHome, "\x1b[H"},
		{input.KeyEnd, "\x1b[F"},
		{input.KeyPageUp, "\x1b[5~"},
		{input.KeyPageDown, "\x1b[6~"},
	}
	for _, tt := range tests {
		got := inputEventToBytes(input.Event{Type: input.EventKey, Key: tt.key}, "cr")
		if string(got) != tt.want {
			t.Errorf("key %v = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestInputEventToBytes_EnterLineEndings(t *testing.T) {
	tests := []struct {
		lineEnding string
		want       string
	}{
		{"cr", "\r"},
		{"crlf", "\r\n"},
		{"lf", "\n"},
		{"", "\r"},
	}
	for _, tt := range tests {
		got := inputEventToBytes(input.Event{Type: input.EventKey, Key: input.KeyEnter}, tt.lineEnding)
		if string(got) != tt.want {
			t.Errorf("lineEnding %q = %q, want %q", tt.lineEnding, got, tt.want)
		}
	}
}

func TestInputEventToBytes_FunctionKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want string
	}{
		{input.KeyF1, "\x1bOP"},
		{input.KeyF4, "\x1bOS"},
		{input.KeyF5, "\x1b[15~"},
		{input.KeyF12, "\x1b[24~"},
	}
	for _, tt := range tests {
		got := inputEventToBytes(input.Event{Type: input.EventKey, Key: tt.key}, "cr")
		if string(got) != tt.want {
			t.Errorf("key %v = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestInputEventToBytes_Mouse_NotHandled(t *testing.T) {
	got := inputEventToBytes(input.Event{Type: input.EventMouse}, "cr")
	if got != nil {
		t.Fatalf("expected nil for a mouse event, got %q", got)
	}
}
