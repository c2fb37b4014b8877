package game

import (
	"go.uber.org/zap"
)

// CreateRoom provisions a waiting room with a fresh join code. The
// zero values fall back to configured defaults.
func (e *Engine) CreateRoom(maxPlayers, roundsTotal int, private bool) *Room {
	if maxPlayers <= 0 {
		maxPlayers = e.cfg.MaxPlayers
	}
	if roundsTotal <= 0 {
		roundsTotal = e.cfg.RoundsPerGame
	}
	room := e.store.CreateRoom(maxPlayers, roundsTotal, private)
	e.persistRoom(room)
	e.recordEvent(room.ID, "", "room_created", eventPayload{JoinCode: room.JoinCode})
	e.log.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("join_code", room.JoinCode))
	return room
}

// JoinRoom adds the user to the room, one player row per (room, user).
// The first joiner becomes host.
func (e *Engine) JoinRoom(roomID, userID, name string) (*Player, error) {
	trimmed, err := validateName(name)
	if err != nil {
		return nil, err
	}
	player, err := e.store.AddPlayer(roomID, userID, trimmed)
	if err != nil {
		return nil, err
	}
	e.persistPlayer(player)
	e.recordEvent(roomID, "", "player_joined", eventPayload{PlayerName: trimmed})
	e.log.Info("player joined",
		zap.String("room_id", roomID),
		zap.String("player_id", player.ID),
		zap.String("player_name", trimmed))
	e.notifyRoom(roomID)
	return player, nil
}

// StartGame flips the room to starting and hands round-one setup to the
// scheduler. Only the host may start, and only from waiting with at
// least two connected players.
func (e *Engine) StartGame(roomID, playerID string) error {
	player, err := e.requireMember(roomID, playerID)
	if err != nil {
		return err
	}
	if !player.IsHost {
		return preconditionErr("only the host can start the game")
	}
	connected := 0
	for _, p := range e.store.PlayersByRoom(roomID) {
		if p.Status == PlayerConnected {
			connected++
		}
	}
	if connected < 2 {
		return preconditionErr("need at least 2 connected players")
	}
	room, err := e.store.UpdateRoom(roomID, func(room *Room) error {
		if room.Status != RoomWaiting {
			return preconditionErr("game already started")
		}
		room.Status = RoomStarting
		return nil
	})
	if err != nil {
		return err
	}
	e.persistRoom(room)
	e.notifyRoom(roomID)
	e.sched.ScheduleAfter(0, func() {
		if err := e.initializeGame(roomID); err != nil {
			e.log.Error("game initialization failed",
				zap.String("room_id", roomID), zap.Error(err))
		}
	})
	return nil
}

// initializeGame picks the first question, creates round one, and flips
// the room to playing.
func (e *Engine) initializeGame(roomID string) error {
	room, ok := e.store.GetRoom(roomID)
	if !ok {
		return ErrNotFound
	}
	question := e.pickQuestion(room)
	round, err := e.StartRound(room, 1, question)
	if err != nil {
		return err
	}
	room, err = e.store.UpdateRoom(roomID, func(room *Room) error {
		room.Status = RoomPlaying
		room.CurrentRound = round.Number
		return nil
	})
	if err != nil {
		return err
	}
	e.persistRoom(room)
	e.recordEvent(roomID, round.ID, "game_started", eventPayload{RoundNumber: 1})
	e.notifyRoom(roomID)
	return nil
}

// StartNextRound creates the next round with a question not yet used in
// this game when one is available.
func (e *Engine) StartNextRound(roomID string) error {
	room, ok := e.store.GetRoom(roomID)
	if !ok {
		return ErrNotFound
	}
	if room.Status != RoomPlaying {
		return preconditionErr("room is not playing")
	}
	next := room.CurrentRound + 1
	question := e.pickQuestion(room)
	round, err := e.StartRound(room, next, question)
	if err != nil {
		return err
	}
	room, err = e.store.UpdateRoom(roomID, func(room *Room) error {
		room.CurrentRound = round.Number
		return nil
	})
	if err != nil {
		return err
	}
	e.persistRoom(room)
	e.notifyRoom(roomID)
	return nil
}

// EndGame flips the room to finished.
func (e *Engine) EndGame(roomID string) {
	room, err := e.store.UpdateRoom(roomID, func(room *Room) error {
		room.Status = RoomFinished
		return nil
	})
	if err != nil {
		return
	}
	e.persistRoom(room)
	e.recordEvent(roomID, "", "game_ended", eventPayload{})
	e.log.Info("game ended", zap.String("room_id", roomID))
	e.notifyRoom(roomID)
}
