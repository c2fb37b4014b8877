package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
	log    *zap.Logger
}

func newWSHub(logger *zap.Logger) *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
		log:    logger,
	}
}

func (h *wsHub) Add(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[roomID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[roomID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[roomID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, roomID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(roomID string, payload any) {
	h.mu.Lock()
	group := h.groups[roomID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(roomID, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	view, err := s.engine.View(roomID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.log.Info("ws connected",
		zap.String("room_id", roomID),
		zap.String("remote", r.RemoteAddr))
	s.hub.Add(roomID, conn)
	s.hub.Send(conn, view)
	go s.readWS(roomID, conn)
}

func (s *Server) readWS(roomID string, conn *websocket.Conn) {
	defer s.hub.Remove(roomID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.log.Debug("ws disconnected", zap.String("room_id", roomID))
			return
		}
	}
}
