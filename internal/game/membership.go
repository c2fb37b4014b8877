package game

import "go.uber.org/zap"

// SetConnected marks a player connected or disconnected. Disconnected
// players stay on the roster but drop out of every eligibility set, so
// a phase waiting on them can still complete early.
func (e *Engine) SetConnected(roomID, playerID string, connected bool) error {
	player, ok := e.store.GetPlayer(playerID)
	if !ok || player.RoomID != roomID {
		return ErrNotFound
	}
	status := PlayerDisconnected
	if connected {
		status = PlayerConnected
	}
	player, err := e.store.UpdatePlayer(playerID, func(player *Player) error {
		if player.Status == PlayerKicked {
			return preconditionErr("player was removed")
		}
		player.Status = status
		return nil
	})
	if err != nil {
		return err
	}
	e.persistPlayer(player)
	e.log.Info("player connection changed",
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
		zap.String("status", string(status)))
	e.notifyRoom(roomID)

	// Shrinking the roster can complete the current phase.
	if !connected {
		if round, ok := e.store.CurrentRound(roomID); ok {
			switch round.Status {
			case RoundPrompt:
				e.checkPromptCompletion(round.ID)
			case RoundVoting:
				e.checkVoteCompletion(round.ID)
			}
		}
	}
	return nil
}

// Kick removes a player from the game. Host only.
func (e *Engine) Kick(roomID, hostID, targetID string) error {
	host, err := e.requireMember(roomID, hostID)
	if err != nil {
		return err
	}
	if !host.IsHost {
		return preconditionErr("only the host can kick players")
	}
	if hostID == targetID {
		return preconditionErr("host cannot kick themselves")
	}
	target, ok := e.store.GetPlayer(targetID)
	if !ok || target.RoomID != roomID {
		return ErrNotFound
	}
	target, err = e.store.UpdatePlayer(targetID, func(player *Player) error {
		player.Status = PlayerKicked
		return nil
	})
	if err != nil {
		return err
	}
	e.persistPlayer(target)
	e.recordEvent(roomID, "", "player_kicked", eventPayload{PlayerName: target.Name})
	e.log.Info("player kicked",
		zap.String("room_id", roomID),
		zap.String("player_id", targetID))
	e.notifyRoom(roomID)

	if round, ok := e.store.CurrentRound(roomID); ok {
		switch round.Status {
		case RoundPrompt:
			e.checkPromptCompletion(round.ID)
		case RoundVoting:
			e.checkVoteCompletion(round.ID)
		}
	}
	return nil
}
