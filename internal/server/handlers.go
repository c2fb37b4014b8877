package server

import (
	"net/http"

	"github.com/go-chi/chi"
)

type createRoomRequest struct {
	MaxPlayers int  `json:"max_players"`
	Rounds     int  `json:"rounds"`
	Private    bool `json:"private"`
}

type joinRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type startRequest struct {
	PlayerID string `json:"player_id"`
}

type promptRequest struct {
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

type voteRequest struct {
	PlayerID string `json:"player_id"`
	ImageID  string `json:"image_id"`
}

type connectionRequest struct {
	PlayerID  string `json:"player_id"`
	Connected bool   `json:"connected"`
}

type kickRequest struct {
	PlayerID string `json:"player_id"`
	TargetID string `json:"target_id"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if r.ContentLength > 0 {
		if err := readJSON(r.Body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	room := s.engine.CreateRoom(req.MaxPlayers, req.Rounds, req.Private)
	writeJSON(w, http.StatusCreated, map[string]string{
		"room_id":   room.ID,
		"join_code": room.JoinCode,
	})
}

// handleResolveCode turns a human-entered join code into a room id.
func (s *Server) handleResolveCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	room, ok := s.engine.Store().FindRoomByJoinCode(code)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"room_id": room.ID})
}

func (s *Server) handleRoomState(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.View(chi.URLParam(r, "roomID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := s.engine.JoinRoom(chi.URLParam(r, "roomID"), req.UserID, req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": player.ID,
		"is_host":   player.IsHost,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.StartGame(chi.URLParam(r, "roomID"), req.PlayerID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "starting"})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prompt, err := s.engine.SubmitPrompt(chi.URLParam(r, "roomID"), req.PlayerID, req.Text)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt_id": prompt.ID})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vote, err := s.engine.SubmitVote(chi.URLParam(r, "roomID"), req.PlayerID, req.ImageID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"vote_id": vote.ID})
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	var req connectionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.SetConnected(chi.URLParam(r, "roomID"), req.PlayerID, req.Connected); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKick(w http.ResponseWriter, r *http.Request) {
	var req kickRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.Kick(chi.URLParam(r, "roomID"), req.PlayerID, req.TargetID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
