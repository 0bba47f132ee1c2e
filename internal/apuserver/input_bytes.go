package apuserver

import "github.com/benj-edwards/ascii-processing-unit/internal/input"

// inputEventToBytes converts a decoded input event into the byte sequence a
// real telnet client would have sent for it, so a keystroke routed to a
// terminal window reaches its remote host exactly as if the player had
// typed it directly into a telnet session. Mouse events never translate:
// they are chrome/game input only. lineEnding selects what Enter sends:
// "crlf" for CRLF, "lf" for a bare LF, anything else (including "cr", the
// default) for a bare CR.
func inputEventToBytes(ev input.Event, lineEnding string) []byte {
	switch ev.Type {
	case input.EventChar:
		return []byte(string(ev.Char))

	case input.EventKey:
		switch ev.Key {
		case input.KeyUp:
			return []byte("\x1b[A")
		case input.KeyDown:
			return []byte("\x1b[B")
		case input.KeyRight:
			return []byte("\x1b[C")
		case input.KeyLeft:
			return []byte("\x1b[D")
		case input.KeyHome:
			return []byte("\x1b[H")
		case input.KeyEnd:
			return []byte("\x1b[F")
		case input.KeyPageUp:
			return []byte("\x1b[5~")
		case input.KeyPageDown:
			return []byte("\x1b[6~")
		case input.KeyInsert:
			return []byte("\x1b[2~")
		case input.KeyDelete:
			return []byte("\x1b[3~")
		case input.KeyBackspace:
			return []byte{0x08}
		case input.KeyEnter:
			switch lineEnding {
			case "crlf":
				return []byte("\r\n")
			case "lf":
				return []byte("\n")
			default:
				return []byte("\r")
			}
		case input.KeyTab:
			return []byte{0x09}
		case input.KeyEscape:
			return []byte{0x1b}
		case input.KeyF1:
			return []byte("\x1bOP")
		case input.KeyF2:
			return []byte("\x1bOQ")
		case input.KeyF3:
			return []byte("\x1bOR")
		case input.KeyF4:
			return []byte("\x1bOS")
		case input.KeyF5:
			return []byte("\x1b[15~")
		case input.KeyF6:
			return []byte("\x1b[17~")
		case input.KeyF7:
			return []byte("\x1b[18~")
		case input.KeyF8:
			return []byte("\x1b[19~")
		case input.KeyF9:
			return []byte("\x1b[20~")
		case input.KeyF10:
			return []byte("\x1b[21~")
		case input.KeyF11:
			return []byte("\x1b[23~")
		case input.KeyF12:
			return []byte("\x1b[24~")
		}
	}
	return nil
}
