// Package mcpgame exposes FreeCell sessions to AI agents over the Model
// Context Protocol, grounded in the teacher's transport/mcp.Client but
// calling the Session Manager in-process instead of proxying over HTTP.
package mcpgame

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
	"github.com/tristhaus/rslibrecell-go/internal/session"
)

// Server wraps an MCP server backed directly by a session.Manager.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
}

// NewServer builds a Server and registers all FreeCell tools.
func NewServer(manager *session.Manager) *Server {
	s := &Server{manager: manager}
	s.mcpServer = server.NewMCPServer(
		"RustLibreCell",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`RustLibreCell - MCP Interface

Play FreeCell solitaire through a session-scoped engine.

AVAILABLE TOOLS:
- freecell_new_game: start a session on a specific or random deal
- freecell_state: read the current board (structured or canonical text)
- freecell_move: move a card between a cell, a foundation, and a column
- freecell_undo: revert the last move
- freecell_journey: read the session's next-deal/skipped journey progress
- freecell_skip_deal: skip the journey's next deal without playing it

Columns and cells are zero-indexed (columns 0-7, cells 0-3). Foundations
are suit-pinned and require no index.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying mark3labs/mcp-go server for transport wiring.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_new_game",
		Description: "Start a new game in a session, on a specific deal id or a random one",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to create; generated if omitted; an id that already exists is rejected",
				},
				"deal_id": map[string]interface{}{
					"type":        "integer",
					"description": "Deal id in [1,64000]; omit or 0 for a random deal",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_state",
		Description: "Get the current board for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "summary"},
					"description": "text renders the canonical 34-column board; summary is compact",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_move",
		Description: "Move a card from one location to another",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
				"from_kind": map[string]interface{}{
					"type": "string",
					"enum": []string{"cell", "foundation", "column"},
				},
				"from_index": map[string]interface{}{
					"type":        "integer",
					"description": "Index for cell (0-3) or column (0-7); ignored for foundation",
				},
				"to_kind": map[string]interface{}{
					"type": "string",
					"enum": []string{"cell", "foundation", "column"},
				},
				"to_index": map[string]interface{}{
					"type":        "integer",
					"description": "Index for cell (0-3) or column (0-7); ignored for foundation",
				},
			},
			Required: []string{"session_id", "from_kind", "to_kind"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_undo",
		Description: "Revert the last move in a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleUndo)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_journey",
		Description: "Get a session's next deal and skipped history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleJourney)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "freecell_skip_deal",
		Description: "Skip the journey's next deal without playing it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleSkipDeal)
}

func argString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func argInt(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func toolArgs(request mcp.CallToolRequest) map[string]interface{} {
	if m, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sessionID := argString(args, "session_id")
	dealID := engine.GameId(argInt(args, "deal_id"))

	sess, err := s.manager.Create(sessionID, dealID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session %s started on deal #%d\n\n%s", sess.ID, sess.Handler.Current().ID, sess.Handler.Current().ToText())
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sess, err := s.manager.Get(argString(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	game := sess.Handler.Current()
	if game == nil {
		return mcp.NewToolResultError("session has no active game"), nil
	}

	if argString(args, "format") == "summary" {
		return mcp.NewToolResultText(fmt.Sprintf("deal #%d, won=%v", game.ID, game.IsWon())), nil
	}
	return mcp.NewToolResultText(game.ToText()), nil
}

func locationFrom(kind string, index int) (engine.Location, error) {
	switch kind {
	case "cell":
		return engine.CellLocation(index), nil
	case "foundation":
		return engine.FoundationLocation(), nil
	case "column":
		return engine.ColumnLocation(index), nil
	default:
		return engine.Location{}, engine.ErrMoveRejected
	}
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sess, err := s.manager.Get(argString(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	from, err := locationFrom(argString(args, "from_kind"), argInt(args, "from_index"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := locationFrom(argString(args, "to_kind"), argInt(args, "to_index"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sess.Handler.MakeMove(engine.Move{From: from, To: to}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	game := sess.Handler.Current()
	result := game.ToText()
	if game.IsWon() {
		result += "\n\nWON!"
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sess, err := s.manager.Get(argString(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sess.Handler.Revert(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(sess.Handler.Current().ToText()), nil
}

func (s *Server) handleJourney(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sess, err := s.manager.Get(argString(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	next, skipped := sess.Journey.NextGameIds()
	return mcp.NewToolResultText(fmt.Sprintf("next: #%d\nskipped: %v", next, skipped)), nil
}

func (s *Server) handleSkipDeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := toolArgs(request)
	sess, err := s.manager.Get(argString(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := sess.Journey.SkipNext(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	next, skipped := sess.Journey.NextGameIds()
	return mcp.NewToolResultText(fmt.Sprintf("next: #%d\nskipped: %v", next, skipped)), nil
}
