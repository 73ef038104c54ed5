// Package websocket exposes running games over a JSON WebSocket protocol.
//
// Clients connect to the hub (optionally with ?session=<id> to watch an
// existing game) and send requests of the form
//
//	{"type": "new", "seed": 7}
//	{"type": "step", "session_id": "ab12", "actions": ["UP", "UPFIRE"], "repeat": 4}
//	{"type": "query", "session_id": "ab12", "query": "enemy_tile", "args": 0}
//	{"type": "state" | "frame" | "sessions" | "queries", "session_id": "ab12"}
//	{"type": "save" | "load", "session_id": "ab12", "name": "slot"}
//
// Every request gets exactly one reply (event "reply" or "error"). Steps are
// also broadcast as "state_update" events to the other clients watching the
// same session.
package websocket
