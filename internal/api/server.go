// Package api exposes the Session Manager over a REST interface.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tristhaus/rslibrecell-go/internal/engine"
	"github.com/tristhaus/rslibrecell-go/internal/handler"
	"github.com/tristhaus/rslibrecell-go/internal/journeyrepo"
	"github.com/tristhaus/rslibrecell-go/internal/session"
	"github.com/tristhaus/rslibrecell-go/internal/wsboard"
)

// Server is the REST API over a session.Manager.
type Server struct {
	manager *session.Manager
	hub     *wsboard.Hub
	router  *mux.Router
}

// NewServer builds a Server and registers all routes.
func NewServer(manager *session.Manager, hub *wsboard.Hub) *Server {
	s := &Server{manager: manager, hub: hub, router: mux.NewRouter()}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	api.HandleFunc("/sessions/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/undo", s.handleUndo).Methods("POST")
	api.HandleFunc("/sessions/{id}/new-deal", s.handleNewDeal).Methods("POST")
	api.HandleFunc("/sessions/{id}/journey", s.handleJourney).Methods("GET")
	api.HandleFunc("/sessions/{id}/journey/skip", s.handleJourneySkip).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps a core error to its HTTP status, per SPEC_FULL.md §4.9:
// rejections and precondition failures are ordinary 4xx outcomes, never 5xx.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, engine.ErrMoveRejected):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidGameID), errors.Is(err, engine.ErrInvalidGameText):
		return http.StatusUnprocessableEntity
	case errors.Is(err, handler.ErrNoActiveGame), errors.Is(err, handler.ErrAlreadyWon), errors.Is(err, handler.ErrEmptyHistory):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, journeyrepo.ErrJourneyCorrupt), errors.Is(err, journeyrepo.ErrJourneyIO):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func sessionIDFromPath(r *http.Request) string {
	return mux.Vars(r)["id"]
}
