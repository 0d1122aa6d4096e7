package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
	"github.com/tristhaus/rslibrecell-go/internal/session"
)

// Envelope is the uniform JSON response wrapper for every endpoint.
type Envelope struct {
	Ok    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func ok(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, Envelope{Ok: true, Data: data})
}

func fail(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), Envelope{Ok: false, Error: err.Error()})
}

type createSessionRequest struct {
	ID     string        `json:"id,omitempty"`
	DealID engine.GameId `json:"deal_id,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	sess, err := s.manager.Create(req.ID, req.DealID)
	if err != nil {
		fail(w, err)
		return
	}

	ok(w, http.StatusCreated, sessionInfo(sess))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.manager.List()
	infos := make([]sessionInfoView, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sessionInfo(sess))
	}
	ok(w, http.StatusOK, map[string]any{"count": len(infos), "sessions": infos})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(sessionIDFromPath(r))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, http.StatusOK, sessionInfo(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromPath(r)
	if err := s.manager.Delete(id); err != nil {
		fail(w, err)
		return
	}
	ok(w, http.StatusOK, map[string]string{"id": id, "deleted": "true"})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(sessionIDFromPath(r))
	if err != nil {
		fail(w, err)
		return
	}

	game := sess.Handler.Current()
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(game.ToText()))
		return
	}

	ok(w, http.StatusOK, game)
}

type locationWire struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

func (l locationWire) toLocation() (engine.Location, error) {
	switch l.Kind {
	case "cell":
		return engine.CellLocation(l.Index), nil
	case "foundation":
		return engine.FoundationLocation(), nil
	case "column":
		return engine.ColumnLocation(l.Index), nil
	default:
		return engine.Location{}, engine.ErrMoveRejected
	}
}

type moveRequest struct {
	From locationWire `json:"from"`
	To   locationWire `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromPath(r)
	sess, err := s.manager.Get(id)
	if err != nil {
		fail(w, err)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, engine.ErrMoveRejected)
		return
	}

	from, err := req.From.toLocation()
	if err != nil {
		fail(w, err)
		return
	}
	to, err := req.To.toLocation()
	if err != nil {
		fail(w, err)
		return
	}

	if err := sess.Handler.MakeMove(engine.Move{From: from, To: to}); err != nil {
		fail(w, err)
		return
	}

	game := sess.Handler.Current()
	if s.hub != nil {
		s.hub.BroadcastToSession(id, game)
	}
	ok(w, http.StatusOK, game)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromPath(r)
	sess, err := s.manager.Get(id)
	if err != nil {
		fail(w, err)
		return
	}

	if err := sess.Handler.Revert(); err != nil {
		fail(w, err)
		return
	}

	game := sess.Handler.Current()
	if s.hub != nil {
		s.hub.BroadcastToSession(id, game)
	}
	ok(w, http.StatusOK, game)
}

type newDealRequest struct {
	Random bool          `json:"random"`
	DealID engine.GameId `json:"deal_id"`
}

func (s *Server) handleNewDeal(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromPath(r)
	sess, err := s.manager.Get(id)
	if err != nil {
		fail(w, err)
		return
	}

	var req newDealRequest
	json.NewDecoder(r.Body).Decode(&req)

	if req.Random || req.DealID == 0 {
		err = sess.Handler.RandomGame()
	} else {
		err = sess.Handler.GameFromID(req.DealID)
	}
	if err != nil {
		fail(w, err)
		return
	}

	game := sess.Handler.Current()
	if s.hub != nil {
		s.hub.BroadcastToSession(id, game)
	}
	ok(w, http.StatusOK, game)
}

func (s *Server) handleJourney(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(sessionIDFromPath(r))
	if err != nil {
		fail(w, err)
		return
	}

	next, skipped := sess.Journey.NextGameIds()
	ok(w, http.StatusOK, map[string]any{"next": next, "skipped": skipped})
}

func (s *Server) handleJourneySkip(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(sessionIDFromPath(r))
	if err != nil {
		fail(w, err)
		return
	}

	if err := sess.Journey.SkipNext(); err != nil {
		fail(w, err)
		return
	}

	next, skipped := sess.Journey.NextGameIds()
	ok(w, http.StatusOK, map[string]any{"next": next, "skipped": skipped})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if s.hub == nil {
		http.Error(w, "websocket hub not configured", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r, sessionID)
}

// sessionInfoView is the JSON wire shape for a session, per SPEC_FULL.md §3.1.
type sessionInfoView struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	Game           *engine.Game   `json:"game"`
	JourneyNext    engine.GameId  `json:"journey_next"`
	JourneySkipped []engine.GameId `json:"journey_skipped"`
}

func sessionInfo(sess *session.Session) sessionInfoView {
	next, skipped := sess.Journey.NextGameIds()
	return sessionInfoView{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Game:           sess.Handler.Current(),
		JourneyNext:    next,
		JourneySkipped: skipped,
	}
}
