package protocol

import "encoding/json"

// Response type names, matching the wire protocol's "type" values.
const (
	RespOutput                  = "output"
	RespError                   = "error"
	RespOk                      = "ok"
	RespInfo                    = "info"
	RespInput                   = "input"
	RespClientConnect           = "client_connect"
	RespClientDisconnect        = "client_disconnect"
	RespWindowMoved             = "window_moved"
	RespWindowResized           = "window_resized"
	RespWindowCloseRequested    = "window_close_requested"
	RespWindowMaximizeRequested = "window_maximize_requested"
	RespWindowFocused           = "window_focused"
	RespSessions                = "sessions"
	RespRefreshRequested        = "refresh_requested"
	RespTerminalConnected       = "terminal_connected"
	RespTerminalDisconnected    = "terminal_disconnected"
	RespTerminalError           = "terminal_error"
)

// SessionInfo describes one connected client session for ListSessions.
type SessionInfo struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	ConnectedAt int64  `json:"connected_at"`
}

// Response is every field any wire response might carry, discriminated
// by Type.
type Response struct {
	Type string `json:"type"`

	Data string `json:"data,omitempty"`

	Message string `json:"message,omitempty"`

	Cols     int    `json:"cols,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Renderer string `json:"renderer,omitempty"`

	Session string      `json:"session,omitempty"`
	Event   interface{} `json:"event,omitempty"`

	ID     string `json:"id,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`

	Sessions []SessionInfo `json:"sessions,omitempty"`

	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

func Output(data string) Response { return Response{Type: RespOutput, Data: data} }

func ErrorResp(message string) Response { return Response{Type: RespError, Message: message} }

func Ok() Response { return Response{Type: RespOk} }

func Info(cols, rows int, renderer string) Response {
	return Response{Type: RespInfo, Cols: cols, Rows: rows, Renderer: renderer}
}

func Input(session string, event interface{}) Response {
	return Response{Type: RespInput, Session: session, Event: event}
}

func ClientConnect(session string) Response {
	return Response{Type: RespClientConnect, Session: session}
}

func ClientDisconnect(session string) Response {
	return Response{Type: RespClientDisconnect, Session: session}
}

func WindowMoved(id string, x, y int) Response {
	return Response{Type: RespWindowMoved, ID: id, X: x, Y: y}
}

func WindowResized(id string, width, height int) Response {
	return Response{Type: RespWindowResized, ID: id, Width: width, Height: height}
}

func WindowCloseRequested(id string) Response {
	return Response{Type: RespWindowCloseRequested, ID: id}
}

func WindowMaximizeRequested(id string) Response {
	return Response{Type: RespWindowMaximizeRequested, ID: id}
}

func WindowFocused(id string) Response {
	return Response{Type: RespWindowFocused, ID: id}
}

func Sessions(sessions []SessionInfo) Response {
	return Response{Type: RespSessions, Sessions: sessions}
}

func RefreshRequested(session string) Response {
	return Response{Type: RespRefreshRequested, Session: session}
}

func TerminalConnected(id, host string, port int) Response {
	return Response{Type: RespTerminalConnected, ID: id, Host: host, Port: port}
}

func TerminalDisconnected(id, reason string) Response {
	return Response{Type: RespTerminalDisconnected, ID: id, Reason: reason}
}

func TerminalError(id, errMsg string) Response {
	return Response{Type: RespTerminalError, ID: id, Error: errMsg}
}

// Marshal serializes a response to its JSON wire form, without the
// trailing newline (callers append it before writing), falling back to a hand-written error envelope if serialization somehow
// fails (an interface{} Event field holding something unmarshalable).
func Marshal(r Response) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		return []byte(`{"type":"error","message":"serialization failed"}`)
	}
	return b
}
