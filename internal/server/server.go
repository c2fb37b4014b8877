package server

import (
	"net/http"
	"time"

	"promptclash/internal/game"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type Server struct {
	engine *game.Engine
	hub    *wsHub
	log    *zap.Logger
}

func New(engine *game.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine: engine,
		hub:    newWSHub(logger),
		log:    logger,
	}
	engine.SetNotifier(s)
	return s
}

// RoomUpdated implements game.Notifier: push the fresh read model to
// every subscriber of the room.
func (s *Server) RoomUpdated(roomID string) {
	view, err := s.engine.View(roomID)
	if err != nil {
		return
	}
	s.hub.Broadcast(roomID, view)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(120, time.Minute))

	r.Route("/api", func(r chi.Router) {
		r.Post("/rooms", s.handleCreateRoom)
		r.Get("/rooms/code/{code}", s.handleResolveCode)
		r.Route("/rooms/{roomID}", func(r chi.Router) {
			r.Get("/", s.handleRoomState)
			r.Post("/join", s.handleJoin)
			r.Post("/start", s.handleStart)
			r.Post("/prompts", s.handlePrompt)
			r.Post("/votes", s.handleVote)
			r.Post("/connection", s.handleConnection)
			r.Post("/kick", s.handleKick)
		})
	})
	r.Get("/ws/rooms/{roomID}", s.handleWebsocket)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}
