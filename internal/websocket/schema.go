// Package websocket defines the wire schema and helpers for the live
// attempt stream: clients push autosaves and heartbeats over one socket and
// receive their graded result when they submit.
package websocket

import "encoding/json"

// Client → server actions.
const (
	ActionAutosave = "autosave"
	ActionPing     = "ping"
	ActionSubmit   = "submit"
)

// Server → client events.
const (
	EventError  = "error"
	EventSaved  = "saved"
	EventPong   = "pong"
	EventState  = "state"
	EventGraded = "graded"
)

// ClientMessage is the envelope for every client → server frame.
type ClientMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is the envelope for every server → client frame.
type ServerMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}
