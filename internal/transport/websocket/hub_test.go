package websocket

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-toybox/internal/core"
	_ "github.com/vovakirdan/tui-toybox/internal/games/amidar"
	"github.com/vovakirdan/tui-toybox/internal/registry"
	"github.com/vovakirdan/tui-toybox/internal/storage"
	"github.com/vovakirdan/tui-toybox/internal/transport/session"
)

func newTestHub(t *testing.T, withStore bool) (*Hub, *httptest.Server) {
	t.Helper()
	sim, err := registry.Create("amidar", registry.Options{})
	require.NoError(t, err)

	var store *storage.Store
	if withStore {
		store, err = storage.Open(filepath.Join(t.TempDir(), "toybox.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
	}

	hub := NewHub(session.NewManager(sim), store, nil)
	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func call(t *testing.T, conn *websocket.Conn, req Request) Message {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	return read(t, conn)
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestNewStepQuery(t *testing.T) {
	_, server := newTestHub(t, false)
	conn := dial(t, server, "")

	created := call(t, conn, Request{Type: "new", Seed: 5})
	require.Equal(t, "reply", created.Event, created.Error)
	require.NotEmpty(t, created.SessionID)
	require.NotNil(t, created.Summary)
	require.Equal(t, uint32(5), created.Summary.Seed)
	require.Equal(t, 0, created.Summary.Ticks)

	stepped := call(t, conn, Request{Type: "step", SessionID: created.SessionID, Actions: []string{"UP", "NOOP"}, Repeat: 5})
	require.Equal(t, "reply", stepped.Event, stepped.Error)
	require.Equal(t, 10, stepped.Summary.Ticks)

	q := call(t, conn, Request{Type: "query", SessionID: created.SessionID, Query: "num_enemies"})
	require.Equal(t, "reply", q.Event, q.Error)
	require.NotEmpty(t, q.Result)
}

func TestStateAndFrame(t *testing.T) {
	_, server := newTestHub(t, false)
	conn := dial(t, server, "")

	created := call(t, conn, Request{Type: "new", SessionID: "demo", Seed: 1})
	require.Equal(t, "demo", created.SessionID)

	state := call(t, conn, Request{Type: "state", SessionID: "demo"})
	require.Equal(t, "reply", state.Event, state.Error)
	require.NotEmpty(t, state.Config)
	require.NotEmpty(t, state.State)

	frame := call(t, conn, Request{Type: "frame", SessionID: "demo"})
	require.NotEmpty(t, frame.Frame)
	require.Equal(t, "clear", frame.Frame[0].Kind)
}

func TestErrors(t *testing.T) {
	_, server := newTestHub(t, false)
	conn := dial(t, server, "")

	missing := call(t, conn, Request{Type: "step", SessionID: "nope"})
	require.Equal(t, "error", missing.Event)
	require.Contains(t, missing.Error, "session not found")

	created := call(t, conn, Request{Type: "new"})
	badAction := call(t, conn, Request{Type: "step", SessionID: created.SessionID, Actions: []string{"JUMP"}})
	require.Equal(t, "error", badAction.Event)

	unknown := call(t, conn, Request{Type: "dance", SessionID: created.SessionID})
	require.Equal(t, "error", unknown.Event)
	require.Contains(t, unknown.Error, "dance")

	noStore := call(t, conn, Request{Type: "save", SessionID: created.SessionID, Name: "x"})
	require.Equal(t, "error", noStore.Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	bad := read(t, conn)
	require.Equal(t, "error", bad.Event)
	require.Contains(t, bad.Error, "bad request")
}

func TestWatchersReceiveUpdates(t *testing.T) {
	hub, server := newTestHub(t, false)
	player := dial(t, server, "")
	created := call(t, player, Request{Type: "new", SessionID: "live"})
	require.Equal(t, "reply", created.Event)

	watcher := dial(t, server, "?session=live")
	require.Eventually(t, func() bool { return hub.ClientCount("live") == 2 }, time.Second, 10*time.Millisecond)

	call(t, player, Request{Type: "step", SessionID: "live", Actions: []string{"LEFT"}, Repeat: 3})

	update := read(t, watcher)
	require.Equal(t, "state_update", update.Event)
	require.Equal(t, "live", update.SessionID)
	require.Equal(t, 3, update.Summary.Ticks)
}

func TestClientLeavesSessionOnClose(t *testing.T) {
	hub, server := newTestHub(t, false)
	conn := dial(t, server, "")
	call(t, conn, Request{Type: "new", SessionID: "gone"})
	require.Equal(t, 1, hub.ClientCount("gone"))

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("gone") == 0 }, time.Second, 10*time.Millisecond)
}

func TestSaveAndLoad(t *testing.T) {
	_, server := newTestHub(t, true)
	conn := dial(t, server, "")

	call(t, conn, Request{Type: "new", SessionID: "orig", Seed: 3})
	call(t, conn, Request{Type: "step", SessionID: "orig", Actions: []string{"UP"}, Repeat: 30})

	saved := call(t, conn, Request{Type: "save", SessionID: "orig", Name: "slot"})
	require.Equal(t, "reply", saved.Event, saved.Error)

	loaded := call(t, conn, Request{Type: "load", Name: "slot"})
	require.Equal(t, "reply", loaded.Event, loaded.Error)
	require.NotEqual(t, "orig", loaded.SessionID)

	a := call(t, conn, Request{Type: "state", SessionID: "orig"})
	b := call(t, conn, Request{Type: "state", SessionID: loaded.SessionID})
	require.JSONEq(t, string(a.State), string(b.State))

	list := call(t, conn, Request{Type: "sessions"})
	require.Len(t, list.Sessions, 2)
}

func TestParseActions(t *testing.T) {
	got, err := parseActions(nil, 0)
	require.NoError(t, err)
	require.Equal(t, []core.AleAction{core.AleNoop}, got)

	got, err = parseActions([]string{"UP", "FIRE"}, 2)
	require.NoError(t, err)
	require.Equal(t, []core.AleAction{core.AleUp, core.AleUp, core.AleFire, core.AleFire}, got)

	_, err = parseActions([]string{"UP"}, maxStepTicks+1)
	require.Error(t, err)
}

func TestEncodeFrame(t *testing.T) {
	cmds := []core.Drawable{
		core.Clear{Color: core.NewRGB(1, 2, 3)},
		core.Rectangle{X: 1, Y: 2, W: 3, H: 4},
		core.Sprite{ID: "player_l1", X: 5, Y: 6, W: 7, H: 7},
	}
	frame := EncodeFrame(cmds)
	require.Len(t, frame, 3)
	require.Equal(t, "clear", frame[0].Kind)
	require.Equal(t, core.NewRGB(1, 2, 3), frame[0].Color)
	require.Equal(t, FrameCmd{Kind: "rect", X: 1, Y: 2, W: 3, H: 4}, frame[1])
	require.Equal(t, "player_l1", frame[2].ID)
}
