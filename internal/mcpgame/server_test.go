package mcpgame

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tristhaus/rslibrecell-go/internal/journey"
	"github.com/tristhaus/rslibrecell-go/internal/session"
)

func memFactory(sessionID string) journey.Repository {
	return journey.NewMemRepository()
}

func newTestServer() *Server {
	manager := session.NewManager(memFactory, nil)
	return NewServer(manager)
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestArgStringAndArgInt(t *testing.T) {
	args := map[string]interface{}{
		"session_id": "abcd",
		"deal_id":    float64(42), // JSON numbers decode to float64
		"from_index": 3,           // also accept a native int
	}
	if got := argString(args, "session_id"); got != "abcd" {
		t.Errorf("argString = %q, want %q", got, "abcd")
	}
	if got := argString(args, "missing"); got != "" {
		t.Errorf("argString(missing) = %q, want empty", got)
	}
	if got := argInt(args, "deal_id"); got != 42 {
		t.Errorf("argInt(deal_id) = %d, want 42", got)
	}
	if got := argInt(args, "from_index"); got != 3 {
		t.Errorf("argInt(from_index) = %d, want 3", got)
	}
	if got := argInt(args, "missing"); got != 0 {
		t.Errorf("argInt(missing) = %d, want 0", got)
	}
}

func TestToolArgsHandlesMissingArguments(t *testing.T) {
	var req mcp.CallToolRequest
	args := toolArgs(req)
	if len(args) != 0 {
		t.Errorf("toolArgs on an empty request = %v, want empty map", args)
	}
}

func TestLocationFromKnownKinds(t *testing.T) {
	if _, err := locationFrom("cell", 2); err != nil {
		t.Errorf("locationFrom(cell): %v", err)
	}
	if _, err := locationFrom("foundation", 0); err != nil {
		t.Errorf("locationFrom(foundation): %v", err)
	}
	if _, err := locationFrom("column", 5); err != nil {
		t.Errorf("locationFrom(column): %v", err)
	}
	if _, err := locationFrom("bogus", 0); err == nil {
		t.Error("expected an error for an unknown location kind")
	}
}

func TestHandleNewGameAndState(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	res, err := s.handleNewGame(ctx, toolRequest(map[string]interface{}{
		"session_id": "play",
		"deal_id":    float64(42),
	}))
	if err != nil {
		t.Fatalf("handleNewGame: %v", err)
	}
	if res.IsError {
		t.Fatalf("handleNewGame returned a tool error: %+v", res)
	}

	stateRes, err := s.handleState(ctx, toolRequest(map[string]interface{}{
		"session_id": "play",
		"format":     "summary",
	}))
	if err != nil {
		t.Fatalf("handleState: %v", err)
	}
	if stateRes.IsError {
		t.Fatalf("handleState returned a tool error: %+v", stateRes)
	}
}

func TestHandleStateUnknownSessionIsToolError(t *testing.T) {
	s := newTestServer()
	res, err := s.handleState(context.Background(), toolRequest(map[string]interface{}{
		"session_id": "ghost",
	}))
	if err != nil {
		t.Fatalf("handleState: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected a tool error for an unknown session")
	}
}

func TestHandleMoveThenUndo(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	if _, err := s.handleNewGame(ctx, toolRequest(map[string]interface{}{
		"session_id": "mover",
		"deal_id":    float64(123),
	})); err != nil {
		t.Fatalf("handleNewGame: %v", err)
	}

	moveRes, err := s.handleMove(ctx, toolRequest(map[string]interface{}{
		"session_id": "mover",
		"from_kind":  "column",
		"from_index": float64(6),
		"to_kind":    "column",
		"to_index":   float64(0),
	}))
	if err != nil {
		t.Fatalf("handleMove: %v", err)
	}
	if moveRes.IsError {
		t.Fatalf("handleMove returned a tool error: %+v", moveRes)
	}

	undoRes, err := s.handleUndo(ctx, toolRequest(map[string]interface{}{
		"session_id": "mover",
	}))
	if err != nil {
		t.Fatalf("handleUndo: %v", err)
	}
	if undoRes.IsError {
		t.Fatalf("handleUndo returned a tool error: %+v", undoRes)
	}
}

func TestHandleMoveRejectsIllegalMove(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	if _, err := s.handleNewGame(ctx, toolRequest(map[string]interface{}{
		"session_id": "illegal",
		"deal_id":    float64(123),
	})); err != nil {
		t.Fatalf("handleNewGame: %v", err)
	}

	res, err := s.handleMove(ctx, toolRequest(map[string]interface{}{
		"session_id": "illegal",
		"from_kind":  "column",
		"from_index": float64(4),
		"to_kind":    "column",
		"to_index":   float64(7),
	}))
	if err != nil {
		t.Fatalf("handleMove: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected a tool error for an illegal move")
	}
}

func TestHandleJourneyAndSkipDeal(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	if _, err := s.handleNewGame(ctx, toolRequest(map[string]interface{}{
		"session_id": "journeyed",
		"deal_id":    float64(42),
	})); err != nil {
		t.Fatalf("handleNewGame: %v", err)
	}

	res, err := s.handleJourney(ctx, toolRequest(map[string]interface{}{"session_id": "journeyed"}))
	if err != nil {
		t.Fatalf("handleJourney: %v", err)
	}
	if res.IsError {
		t.Fatalf("handleJourney returned a tool error: %+v", res)
	}

	skipRes, err := s.handleSkipDeal(ctx, toolRequest(map[string]interface{}{"session_id": "journeyed"}))
	if err != nil {
		t.Fatalf("handleSkipDeal: %v", err)
	}
	if skipRes.IsError {
		t.Fatalf("handleSkipDeal returned a tool error: %+v", skipRes)
	}
}

func TestNewServerBuildsUnderlyingMCPServer(t *testing.T) {
	s := newTestServer()
	if s.MCPServer() == nil {
		t.Fatal("expected a non-nil underlying MCP server")
	}
}
