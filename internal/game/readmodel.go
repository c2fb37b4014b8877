package game

import "time"

// RoomView is the derived, never authoritative client read model.
// Consumers poll it or receive it over the websocket hub.
type RoomView struct {
	RoomID       string       `json:"room_id"`
	JoinCode     string       `json:"join_code"`
	Status       RoomStatus   `json:"status"`
	RoundsTotal  int          `json:"rounds_total"`
	CurrentRound int          `json:"current_round,omitempty"`
	Players      []PlayerView `json:"players"`
	Round        *RoundView   `json:"round,omitempty"`
}

type PlayerView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    PlayerStatus `json:"status"`
	IsHost    bool         `json:"is_host"`
	Score     int          `json:"score"`
	Submitted bool         `json:"submitted"`
	Voted     bool         `json:"voted"`
}

type RoundView struct {
	Number          int         `json:"number"`
	Status          RoundStatus `json:"status"`
	Question        string      `json:"question"`
	PhaseEndTime    time.Time   `json:"phase_end_time"`
	GenerationError string      `json:"generation_error,omitempty"`
	Images          []ImageView `json:"images,omitempty"`
}

type ImageView struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	URL      string `json:"url,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
	Votes    int    `json:"votes"`
	Winner   bool   `json:"winner,omitempty"`
}

// View assembles the room's current read model from authoritative
// state. The image list, vote counts, and winner flags appear only
// during voting and results.
func (e *Engine) View(roomID string) (*RoomView, error) {
	room, ok := e.store.GetRoom(roomID)
	if !ok {
		return nil, ErrNotFound
	}
	view := &RoomView{
		RoomID:       room.ID,
		JoinCode:     room.JoinCode,
		Status:       room.Status,
		RoundsTotal:  room.RoundsTotal,
		CurrentRound: room.CurrentRound,
	}

	round, hasRound := e.store.CurrentRound(roomID)
	var submitted, voted map[string]bool
	if hasRound {
		submitted = make(map[string]bool)
		for _, prompt := range e.store.PromptsByRound(round.ID) {
			submitted[prompt.PlayerID] = true
		}
		voted = make(map[string]bool)
		for _, vote := range e.store.VotesByRound(round.ID) {
			voted[vote.VoterID] = true
		}
	}

	for _, player := range e.store.PlayersByRoom(roomID) {
		view.Players = append(view.Players, PlayerView{
			ID:        player.ID,
			Name:      player.Name,
			Status:    player.Status,
			IsHost:    player.IsHost,
			Score:     player.Score,
			Submitted: hasRound && submitted[player.ID],
			Voted:     hasRound && voted[player.ID],
		})
	}

	if !hasRound {
		return view, nil
	}
	roundView := &RoundView{
		Number:          round.Number,
		Status:          round.Status,
		Question:        round.QuestionText,
		PhaseEndTime:    round.PhaseEndTime,
		GenerationError: round.GenerationError,
	}
	if round.Status == RoundVoting || round.Status == RoundResults {
		votes := e.store.VotesByRound(round.ID)
		counts := CountPerTarget(votes)
		winners := make(map[string]bool)
		for _, imageID := range WinningTargets(counts) {
			winners[imageID] = true
		}
		for _, image := range e.store.ImagesByRound(round.ID) {
			roundView.Images = append(roundView.Images, ImageView{
				ID:       image.ID,
				PlayerID: image.PlayerID,
				URL:      image.URL,
				Failed:   image.Error != "",
				Votes:    counts[image.ID],
				Winner:   round.Status == RoundResults && winners[image.ID],
			})
		}
	}
	view.Round = roundView
	return view, nil
}
