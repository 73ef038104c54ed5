package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/storage"
	"github.com/vovakirdan/tui-toybox/internal/transport/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024

	// Upper bound on ticks one step request may run.
	maxStepTicks = 100_000
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errNoStore = errors.New("no database configured")

// Request is one client command.
type Request struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Seed      uint32          `json:"seed,omitempty"`
	Actions   []string        `json:"actions,omitempty"`
	Repeat    int             `json:"repeat,omitempty"`
	Query     string          `json:"query,omitempty"`
	Args      json.RawMessage `json:"args,omitempty"`
	Name      string          `json:"name,omitempty"`
}

// Message is sent to clients.
type Message struct {
	Event     string            `json:"event"`
	SessionID string            `json:"session_id,omitempty"`
	Summary   *session.Summary  `json:"summary,omitempty"`
	Result    json.RawMessage   `json:"result,omitempty"`
	Config    json.RawMessage   `json:"config,omitempty"`
	State     json.RawMessage   `json:"state,omitempty"`
	Frame     []FrameCmd        `json:"frame,omitempty"`
	Sessions  []session.Summary `json:"sessions,omitempty"`
	Queries   []string          `json:"queries,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// FrameCmd is a draw command tagged with its kind.
type FrameCmd struct {
	Kind  string   `json:"kind"`
	ID    string   `json:"id,omitempty"`
	Color core.RGB `json:"color"`
	X     int32    `json:"x"`
	Y     int32    `json:"y"`
	W     int32    `json:"w"`
	H     int32    `json:"h"`
}

// EncodeFrame tags draw commands for JSON clients.
func EncodeFrame(cmds []core.Drawable) []FrameCmd {
	out := make([]FrameCmd, 0, len(cmds))
	for _, cmd := range cmds {
		switch d := cmd.(type) {
		case core.Clear:
			out = append(out, FrameCmd{Kind: "clear", Color: d.Color})
		case core.Rectangle:
			out = append(out, FrameCmd{Kind: "rect", Color: d.Color, X: d.X, Y: d.Y, W: d.W, H: d.H})
		case core.Sprite:
			out = append(out, FrameCmd{Kind: "sprite", ID: d.ID, Color: d.Color, X: d.X, Y: d.Y, W: d.W, H: d.H})
		}
	}
	return out
}

// Client is one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub serves game sessions to WebSocket clients and fans step results out
// to every client watching a session.
type Hub struct {
	manager *session.Manager
	store   *storage.Store
	logger  *log.Logger

	mu       sync.RWMutex
	clients  map[*Client]string          // client -> watched session
	sessions map[string]map[*Client]bool // session -> watchers
}

// NewHub creates a hub. store may be nil, which disables save and load.
func NewHub(manager *session.Manager, store *storage.Store, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		manager:  manager,
		store:    store,
		logger:   logger,
		clients:  make(map[*Client]string),
		sessions: make(map[string]map[*Client]bool),
	}
}

// ServeHTTP upgrades the request and starts the client pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register(client, r.URL.Query().Get("session"))

	go client.writePump()
	go client.readPump()
}

// ClientCount returns how many clients watch a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) register(c *Client, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = ""
	h.watchLocked(c, sessionID)
	h.logger.Debug("client registered", "session", sessionID, "clients", len(h.clients))
}

// watch moves a client to another session's watcher set.
func (h *Hub) watch(c *Client, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.watchLocked(c, sessionID)
	}
}

func (h *Hub) watchLocked(c *Client, sessionID string) {
	if old := h.clients[c]; old != "" {
		delete(h.sessions[old], c)
		if len(h.sessions[old]) == 0 {
			delete(h.sessions, old)
		}
	}
	h.clients[c] = sessionID
	if sessionID == "" {
		return
	}
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]bool)
	}
	h.sessions[sessionID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(c)
}

func (h *Hub) unregisterLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.watchLocked(c, "")
	delete(h.clients, c)
	close(c.send)
	h.logger.Debug("client unregistered", "clients", len(h.clients))
}

// deliver queues data for one client, dropping clients that fell behind.
func (h *Hub) deliver(c *Client, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(c, data)
}

func (h *Hub) deliverLocked(c *Client, data []byte) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		h.logger.Warn("client send buffer full, dropping client")
		h.unregisterLocked(c)
	}
}

// broadcast sends msg to every watcher of its session except skip.
func (h *Hub) broadcast(msg *Message, skip *Client) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot marshal broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.sessions[msg.SessionID] {
		if c != skip {
			h.deliverLocked(c, data)
		}
	}
}

// handle executes one request and returns the reply.
func (h *Hub) handle(c *Client, req *Request) *Message {
	reply, err := h.dispatch(c, req)
	if err != nil {
		return &Message{Event: "error", SessionID: req.SessionID, Error: err.Error()}
	}
	reply.Event = "reply"
	return reply
}

func (h *Hub) dispatch(c *Client, req *Request) (*Message, error) {
	switch req.Type {
	case "new":
		sess, err := h.manager.Create(req.SessionID, req.Seed)
		if err != nil {
			return nil, err
		}
		h.watch(c, sess.ID)
		sum := sess.Summary()
		return &Message{SessionID: sess.ID, Summary: &sum}, nil

	case "load":
		if h.store == nil {
			return nil, errNoStore
		}
		sess, err := h.manager.Load(h.store, req.Name, req.SessionID)
		if err != nil {
			return nil, err
		}
		h.watch(c, sess.ID)
		sum := sess.Summary()
		return &Message{SessionID: sess.ID, Summary: &sum}, nil

	case "sessions":
		list := h.manager.List()
		sums := make([]session.Summary, len(list))
		for i, s := range list {
			sums[i] = s.Summary()
		}
		return &Message{Sessions: sums}, nil

	case "queries":
		return &Message{Queries: h.manager.Simulation().QueryNames()}, nil
	}

	sess, err := h.manager.Get(req.SessionID)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case "step":
		actions, err := parseActions(req.Actions, req.Repeat)
		if err != nil {
			return nil, err
		}
		sum := sess.Step(actions)
		h.broadcast(&Message{Event: "state_update", SessionID: sess.ID, Summary: &sum}, c)
		return &Message{SessionID: sess.ID, Summary: &sum}, nil

	case "query":
		out, err := sess.Query(req.Query, req.Args)
		if err != nil {
			return nil, err
		}
		return &Message{SessionID: sess.ID, Result: json.RawMessage(out)}, nil

	case "state":
		config, state, err := sess.Snapshot()
		if err != nil {
			return nil, err
		}
		sum := sess.Summary()
		return &Message{SessionID: sess.ID, Summary: &sum, Config: config, State: state}, nil

	case "frame":
		return &Message{SessionID: sess.ID, Frame: EncodeFrame(sess.Frame())}, nil

	case "save":
		if h.store == nil {
			return nil, errNoStore
		}
		if req.Name == "" {
			return nil, errors.New("save needs a name")
		}
		if err := h.manager.Save(h.store, sess.ID, req.Name); err != nil {
			return nil, err
		}
		sum := sess.Summary()
		return &Message{SessionID: sess.ID, Summary: &sum}, nil
	}

	return nil, fmt.Errorf("unknown request type %q", req.Type)
}

// parseActions resolves ALE action names; each action runs repeat ticks.
// No actions means a single NOOP.
func parseActions(names []string, repeat int) ([]core.AleAction, error) {
	repeat = max(repeat, 1)
	if len(names) == 0 {
		names = []string{core.AleNoop.String()}
	}
	if len(names)*repeat > maxStepTicks {
		return nil, fmt.Errorf("step too long: %d ticks (max %d)", len(names)*repeat, maxStepTicks)
	}

	out := make([]core.AleAction, 0, len(names)*repeat)
	for _, name := range names {
		a, err := core.ParseAleAction(name)
		if err != nil {
			return nil, err
		}
		for range repeat {
			out = append(out, a)
		}
	}
	return out, nil
}

// readPump reads requests until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // A failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var req Request
		var reply *Message
		if err := json.Unmarshal(data, &req); err != nil {
			reply = &Message{Event: "error", Error: fmt.Sprintf("bad request: %v", err)}
		} else {
			reply = c.hub.handle(c, &req)
		}

		out, err := json.Marshal(reply)
		if err != nil {
			c.hub.logger.Error("cannot marshal reply", "error", err)
			continue
		}
		c.hub.deliver(c, out)
	}
}

// writePump writes queued messages, one frame each, and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // A failed deadline surfaces on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Connection is going away regardless
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline surfaces on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
