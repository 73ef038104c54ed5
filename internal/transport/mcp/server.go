// Package mcp exposes game sessions as Model Context Protocol tools so that
// agents can play, inspect and checkpoint games over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-toybox/internal/core"
	"github.com/vovakirdan/tui-toybox/internal/storage"
	"github.com/vovakirdan/tui-toybox/internal/transport/session"
)

const (
	serverVersion = "1.0.0"

	defaultRenderCols = 64
	defaultRenderRows = 32
	maxStepTicks      = 100_000
)

// Server wires a session manager to an MCP server.
type Server struct {
	manager   *session.Manager
	store     *storage.Store
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server. store may be nil, which disables the
// save and load tools.
func NewServer(manager *session.Manager, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		manager: manager,
		store:   store,
		logger:  logger,
	}

	sim := manager.Simulation()
	s.mcpServer = server.NewMCPServer(
		"toybox "+sim.ID(),
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(fmt.Sprintf(`%s simulation.

Start a game with new_game, then advance it with step. Every step entry is
one ALE action name (NOOP, UP, DOWNFIRE, ...) applied for "repeat" ticks.
Use query for read-only facts about the board (see list_queries), render for
a text picture of the frame and game_state for the full JSON state.`, sim.Title())),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves requests on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	sessionID := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by new_game"))

	s.mcpServer.AddTool(mcp.NewTool("new_game",
		mcp.WithDescription("Start a new game session"),
		mcp.WithNumber("seed", mcp.Description("Random seed (default 0)")),
		mcp.WithString("session_id", mcp.Description("Session ID to use (optional, generated when empty)")),
	), s.handleNewGame)

	s.mcpServer.AddTool(mcp.NewTool("step",
		mcp.WithDescription("Advance a game by applying actions, one tick each"),
		sessionID,
		mcp.WithArray("actions", mcp.Description("ALE action names"),
			mcp.WithStringEnumItems(actionNames())),
		mcp.WithNumber("repeat", mcp.Description("Ticks per action (default 1)"), mcp.Min(1)),
	), s.handleStep)

	s.mcpServer.AddTool(mcp.NewTool("query",
		mcp.WithDescription("Answer a named read-only question about a game"),
		sessionID,
		mcp.WithString("name", mcp.Required(), mcp.Description("Query name, see list_queries")),
		mcp.WithString("args", mcp.Description("JSON encoded query argument, e.g. 0 or {\"x\":1,\"y\":2}")),
	), s.handleQuery)

	s.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the score summary and the full serialized state"),
		sessionID,
	), s.handleGameState)

	s.mcpServer.AddTool(mcp.NewTool("render",
		mcp.WithDescription("Draw the current frame as text"),
		sessionID,
		mcp.WithNumber("cols", mcp.Description("Maximum width in characters")),
		mcp.WithNumber("rows", mcp.Description("Maximum height in characters")),
	), s.handleRender)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List running game sessions"),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("list_queries",
		mcp.WithDescription("List the names accepted by the query tool"),
	), s.handleListQueries)

	s.mcpServer.AddTool(mcp.NewTool("legal_actions",
		mcp.WithDescription("List the actions the game distinguishes"),
	), s.handleLegalActions)

	s.mcpServer.AddTool(mcp.NewTool("save_game",
		mcp.WithDescription("Save a session under a name"),
		sessionID,
		mcp.WithString("name", mcp.Required(), mcp.Description("Save slot name")),
	), s.handleSave)

	s.mcpServer.AddTool(mcp.NewTool("load_game",
		mcp.WithDescription("Restore a saved game as a new session"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Save slot name")),
		mcp.WithString("session_id", mcp.Description("Session ID to use (optional)")),
	), s.handleLoad)
}

func actionNames() []string {
	names := make([]string, 0, int(core.AleDownLeftFire)+1)
	for a := core.AleNoop; a <= core.AleDownLeftFire; a++ {
		names = append(names, a.String())
	}
	return names
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) session(request mcp.CallToolRequest) (*session.Session, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return nil, err
	}
	return s.manager.Get(id)
}

func (s *Server) handleNewGame(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return mcp.NewToolResultError("seed must not be negative"), nil
	}
	sess, err := s.manager.Create(request.GetString("session_id", ""), uint32(seed)) //#nosec G115 -- checked above
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Debug("session created", "session", sess.ID, "seed", seed)
	return jsonResult(sess.Summary())
}

func (s *Server) handleStep(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names := request.GetStringSlice("actions", []string{core.AleNoop.String()})
	repeat := max(request.GetInt("repeat", 1), 1)
	if len(names)*repeat > maxStepTicks {
		return mcp.NewToolResultErrorf("step too long: %d ticks (max %d)", len(names)*repeat, maxStepTicks), nil
	}

	actions := make([]core.AleAction, 0, len(names)*repeat)
	for _, name := range names {
		a, err := core.ParseAleAction(strings.ToUpper(name))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for range repeat {
			actions = append(actions, a)
		}
	}
	return jsonResult(sess.Step(actions))
}

func (s *Server) handleQuery(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var args json.RawMessage
	if raw := request.GetString("args", ""); raw != "" {
		args = json.RawMessage(raw)
	}
	out, err := sess.Query(name, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleGameState(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	config, state, err := sess.Snapshot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(struct {
		Summary session.Summary `json:"summary"`
		Config  json.RawMessage `json:"config"`
		State   json.RawMessage `json:"state"`
	}{sess.Summary(), config, state})
}

func (s *Server) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.session(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cols := max(request.GetInt("cols", defaultRenderCols), 1)
	rows := max(request.GetInt("rows", defaultRenderRows), 1)

	sum := sess.Summary()
	header := fmt.Sprintf("score %d  lives %d  level %d  tick %d", sum.Score, sum.Lives, sum.Level, sum.Ticks)
	if sum.GameOver {
		header += "  GAME OVER"
	}
	return mcp.NewToolResultText(header + "\n" + sess.Render(cols, rows)), nil
}

func (s *Server) handleListSessions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.manager.List()
	sums := make([]session.Summary, len(list))
	for i, sess := range list {
		sums[i] = sess.Summary()
	}
	return jsonResult(sums)
}

func (s *Server) handleListQueries(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.manager.Simulation().QueryNames())
}

func (s *Server) handleLegalActions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	legal := s.manager.Simulation().LegalActions()
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	return jsonResult(names)
}

func (s *Server) handleSave(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("no database configured"), nil
	}
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.manager.Save(s.store, id, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved session %s as %q", id, name)), nil
}

func (s *Server) handleLoad(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("no database configured"), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := s.manager.Load(s.store, name, request.GetString("session_id", ""))
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultErrorf("no save named %q", name), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sess.Summary())
}
