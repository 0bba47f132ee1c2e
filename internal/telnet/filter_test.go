package telnet

import (
	"bytes"
	"testing"
)

func TestRawModeNegotiation(t *testing.T) {
	got := RawModeNegotiation()
	want := []byte{
		IAC, WILL, OptEcho,
		IAC, WILL, OptSuppressGoAhead,
		IAC, DO, OptSuppressGoAhead,
		IAC, DONT, OptLinemode,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("RawModeNegotiation() = %v, want %v", got, want)
	}
}

func TestFilterIAC_PassesPlainData(t *testing.T) {
	got := FilterIAC([]byte("hello"))
	if string(got) != "hello" {
		t.Fatalf("FilterIAC(plain) = %q, want 'hello'", got)
	}
}

func TestFilterIAC_StripsOptionNegotiation(t *testing.T) {
	data := append([]byte("a"), IAC, WILL, OptEcho)
	data = append(data, "b"...)
	got := FilterIAC(data)
	if string(got) != "ab" {
		t.Fatalf("FilterIAC = %q, want 'ab'", got)
	}
}

func TestFilterIAC_StripsSubnegotiationBlock(t *testing.T) {
	data := []byte{'x'}
	data = append(data, IAC, SB, OptNAWS, 0, 80, 0, 24, IAC, SE)
	data = append(data, 'y')

	got := FilterIAC(data)
	if string(got) != "xy" {
		t.Fatalf("FilterIAC = %q, want 'xy'", got)
	}
}

func TestFilterIAC_EscapedIACBecomesLiteral(t *testing.T) {
	data := []byte{'a', IAC, IAC, 'b'}
	got := FilterIAC(data)
	want := []byte{'a', 0xff, 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("FilterIAC = %v, want %v", got, want)
	}
}

func TestFilterIAC_TrailingIACWithNoFollowByte(t *testing.T) {
	data := []byte{'a', IAC}
	got := FilterIAC(data)
	if string(got) != "a\xff" {
		t.Fatalf("FilterIAC = %q, want trailing IAC passed through literally", got)
	}
}
