// Package server wires stores, the chore service and handlers into an
// http.Handler.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/perryvale/hearth/internal/chore"
	"github.com/perryvale/hearth/internal/handler"
	"github.com/perryvale/hearth/internal/middleware"
	"github.com/perryvale/hearth/internal/store"
	ws "github.com/perryvale/hearth/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	svc         *chore.Service
	householdH  *handler.HouseholdHandler
	roomH       *handler.RoomHandler
	memberH     *handler.MemberHandler
	choreH      *handler.ChoreHandler
	completionH *handler.CompletionHandler
	pointsH     *handler.PointsHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	svc := chore.NewService(db, hub, logger.With("component", "chore"))

	householdStore := store.NewHouseholdStore(db)
	memberStore := store.NewMemberStore(db)
	roomStore := store.NewRoomStore(db)
	choreStore := store.NewChoreStore(db)

	return &Server{
		db:          db,
		hub:         hub,
		svc:         svc,
		householdH:  handler.NewHouseholdHandler(householdStore),
		roomH:       handler.NewRoomHandler(roomStore, hub),
		memberH:     handler.NewMemberHandler(memberStore, hub),
		choreH:      handler.NewChoreHandler(svc, choreStore, roomStore, hub),
		completionH: handler.NewCompletionHandler(svc),
		pointsH:     handler.NewPointsHandler(svc),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the event hub for shutdown.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("POST /api/households", s.householdH.Create)
	mux.HandleFunc("GET /api/households/{id}", s.householdH.Get)

	mux.HandleFunc("POST /api/rooms", s.roomH.Create)
	mux.HandleFunc("GET /api/rooms", s.roomH.List)
	mux.HandleFunc("GET /api/rooms/{id}", s.roomH.Get)
	mux.HandleFunc("PUT /api/rooms/{id}", s.roomH.Update)
	mux.HandleFunc("DELETE /api/rooms/{id}", s.roomH.Delete)

	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("GET /api/members/{id}", s.memberH.Get)
	mux.HandleFunc("PUT /api/members/{id}", s.memberH.Update)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)
	mux.HandleFunc("POST /api/members/{id}/pin", s.memberH.SetPIN)
	mux.HandleFunc("POST /api/members/{id}/pin/verify", s.rateLimited(s.memberH.VerifyPIN))
	mux.HandleFunc("GET /api/members/{id}/weekly-status", s.pointsH.WeeklyStatus)
	mux.HandleFunc("GET /api/members/{id}/allowance", s.pointsH.Allowance)

	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("GET /api/chores/{id}", s.choreH.Get)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)

	mux.HandleFunc("POST /api/completions/{id}/confirm", s.completionH.Confirm)
	mux.HandleFunc("POST /api/completions/batch-confirm", s.completionH.BatchConfirm)
	mux.HandleFunc("GET /api/completions/pending", s.completionH.Pending)

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimited throttles PIN verification attempts per client IP.
func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
