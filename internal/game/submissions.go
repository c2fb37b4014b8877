package game

import (
	"go.uber.org/zap"
)

// SubmitPrompt validates and upserts one player's prompt for the active
// prompt phase, then checks whether everyone required has now acted.
func (e *Engine) SubmitPrompt(roomID, playerID, text string) (*Prompt, error) {
	trimmed, err := validatePromptText(text)
	if err != nil {
		return nil, err
	}
	player, err := e.requireMember(roomID, playerID)
	if err != nil {
		return nil, err
	}
	round, ok := e.store.CurrentRound(roomID)
	if !ok {
		return nil, preconditionErr("no active round")
	}
	if round.Status != RoundPrompt {
		return nil, preconditionErr("prompts are closed for this round")
	}

	prompt := e.store.UpsertPrompt(round.ID, player.ID, trimmed)
	e.persistPrompt(round, prompt)
	e.log.Info("prompt submitted",
		zap.String("room_id", roomID),
		zap.String("round_id", round.ID),
		zap.String("player_id", player.ID))
	e.notifyRoom(roomID)

	e.checkPromptCompletion(round.ID)
	return prompt, nil
}

// SubmitVote validates and upserts one player's vote for the active
// voting phase, then checks whether everyone required has now acted.
func (e *Engine) SubmitVote(roomID, playerID, imageID string) (*Vote, error) {
	player, err := e.requireMember(roomID, playerID)
	if err != nil {
		return nil, err
	}
	round, ok := e.store.CurrentRound(roomID)
	if !ok {
		return nil, preconditionErr("no active round")
	}
	if round.Status != RoundVoting {
		return nil, preconditionErr("voting is closed for this round")
	}
	image, ok := e.store.GetImage(imageID)
	if !ok || image.RoundID != round.ID {
		return nil, validationErr("image is not part of this round")
	}
	if image.PlayerID == player.ID {
		return nil, preconditionErr("cannot vote for your own image")
	}

	vote := e.store.UpsertVote(round.ID, player.ID, imageID)
	e.persistVote(round, vote)
	e.log.Info("vote submitted",
		zap.String("room_id", roomID),
		zap.String("round_id", round.ID),
		zap.String("player_id", player.ID))
	e.notifyRoom(roomID)

	e.checkVoteCompletion(round.ID)
	return vote, nil
}

// checkPromptCompletion re-reads authoritative state and advances the
// round early when every connected player has a prompt in.
func (e *Engine) checkPromptCompletion(roundID string) {
	round, ok := e.store.GetRound(roundID)
	if !ok || round.Status != RoundPrompt {
		return
	}
	players := e.store.PlayersByRoom(round.RoomID)
	acted := make(map[string]bool)
	for _, prompt := range e.store.PromptsByRound(roundID) {
		acted[prompt.PlayerID] = true
	}
	if !AllRequiredHaveActed(PromptEligibility(players), acted) {
		return
	}
	e.log.Info("all prompts in, advancing early",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", roundID))
	e.cancelAndTransition(roundID)
}

// checkVoteCompletion re-reads authoritative state and advances the
// round early when every eligible voter has voted.
func (e *Engine) checkVoteCompletion(roundID string) {
	round, ok := e.store.GetRound(roundID)
	if !ok || round.Status != RoundVoting {
		return
	}
	players := e.store.PlayersByRoom(round.RoomID)
	images := e.store.ImagesByRound(roundID)
	acted := make(map[string]bool)
	for _, vote := range e.store.VotesByRound(roundID) {
		acted[vote.VoterID] = true
	}
	if !AllRequiredHaveActed(VoteEligibility(players, images), acted) {
		return
	}
	e.log.Info("all votes in, advancing early",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", roundID))
	e.cancelAndTransition(roundID)
}

func (e *Engine) requireMember(roomID, playerID string) (*Player, error) {
	player, ok := e.store.GetPlayer(playerID)
	if !ok || player.RoomID != roomID {
		return nil, preconditionErr("not a member of this room")
	}
	if player.Status != PlayerConnected {
		return nil, preconditionErr("player is not connected")
	}
	return player, nil
}
