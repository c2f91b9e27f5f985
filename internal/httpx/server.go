// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"laserchess/internal/game"
)

// Server wires the HTTP and websocket layer to the game manager.
type Server struct {
	manager  *Manager
	router   *way.Router
	upgrader websocket.Upgrader
	srvMu    sync.Mutex
	srv      *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server and registers its routes.
func NewServer(manager *Manager) *Server {
	s := &Server{manager: manager}
	s.routes()
	return s
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router = way.NewRouter()

	s.router.HandleFunc("POST", "/api/games", s.withJSON(s.handleCreate))
	s.router.HandleFunc("GET", "/api/games/:id/state", s.withJSON(s.handleState))
	s.router.HandleFunc("GET", "/api/games/:id/actions", s.withJSON(s.handleActions))
	s.router.HandleFunc("POST", "/api/games/:id/move", s.withJSON(s.handleMove))
	s.router.HandleFunc("POST", "/api/games/:id/undo", s.withJSON(s.handleUndo))
	s.router.HandleFunc("POST", "/api/games/:id/reset", s.withJSON(s.handleReset))
	s.router.HandleFunc("GET", "/api/games/:id/events", s.handleEvents)

	s.router.HandleFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// statusForError maps engine errors onto HTTP statuses. Rejected moves
// are client errors; a finished game or empty history is a conflict
// with current state; a simulation overrun is an engine bug.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, game.ErrSimulationOverrun):
		return http.StatusInternalServerError
	case errors.Is(err, game.ErrUnknownPiece),
		errors.Is(err, game.ErrWrongSide),
		errors.Is(err, game.ErrImmutablePiece),
		errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, game.ErrOccupiedCell),
		errors.Is(err, game.ErrColorMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// lookup resolves the :id route parameter to a managed game.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*managedGame, bool) {
	g, err := s.manager.Get(way.Param(r.Context(), "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return g, true
}

// ---- API: games ----

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Create()
	if err != nil {
		log.Printf("create game: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create game")
		return
	}
	g.mu.Lock()
	state := g.engine.State()
	g.mu.Unlock()

	log.WithField("game", g.id).Info("game created")
	writeJSON(w, http.StatusCreated, map[string]any{"id": g.id, "state": state})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	g.mu.Lock()
	state := g.engine.State()
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	g.mu.Lock()
	actions := g.engine.LegalActions()
	g.mu.Unlock()
	if actions == nil {
		actions = []game.Action{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()
	var action game.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	g.mu.Lock()
	beam, err := g.engine.ApplyTurn(action)
	state := g.engine.State()
	if err == nil {
		g.updatedAt = time.Now()
	}
	g.mu.Unlock()

	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	g.hub.broadcast(TurnEvent{GameID: g.id, Action: action, Beam: beam, State: state})
	writeJSON(w, http.StatusOK, map[string]any{"state": state, "beam": beam})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	g.mu.Lock()
	err := g.engine.Undo()
	state := g.engine.State()
	if err == nil {
		g.updatedAt = time.Now()
	}
	g.mu.Unlock()

	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	g.mu.Lock()
	err := g.engine.Reset()
	state := g.engine.State()
	if err == nil {
		g.updatedAt = time.Now()
	}
	g.mu.Unlock()

	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

// ---- websocket events ----

// handleEvents streams TurnEvents for one game until the client hangs
// up. The read loop only exists to observe the close.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, err := s.manager.Get(way.Param(r.Context(), "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	// Subscribe before the handshake completes so a turn played right
	// after the client connects is never missed.
	events := g.hub.subscribe()
	defer g.hub.unsubscribe(events)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	log.WithField("game", g.id).Info("event subscriber connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
