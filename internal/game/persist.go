package game

import (
	"encoding/json"
	"time"

	"promptclash/internal/db"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// The store is authoritative for live rooms; Postgres is a
// write-through mirror for history and restarts. Persistence failures
// are logged and absorbed - they never fail the triggering operation.

func (e *Engine) persistRoom(room *Room) {
	if e.db == nil {
		return
	}
	record := db.Room{
		ID:           room.ID,
		JoinCode:     room.JoinCode,
		HostID:       room.HostID,
		Status:       string(room.Status),
		MaxPlayers:   room.MaxPlayers,
		RoundsTotal:  room.RoundsTotal,
		Private:      room.Private,
		CurrentRound: room.CurrentRound,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("room persist failed", zap.String("room_id", room.ID), zap.Error(err))
	}
}

func (e *Engine) persistPlayer(player *Player) {
	if e.db == nil {
		return
	}
	record := db.Player{
		ID:       player.ID,
		RoomID:   player.RoomID,
		UserID:   player.UserID,
		Name:     player.Name,
		Status:   string(player.Status),
		IsHost:   player.IsHost,
		Score:    player.Score,
		JoinedAt: player.JoinedAt,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("player persist failed", zap.String("player_id", player.ID), zap.Error(err))
	}
}

func (e *Engine) persistRound(round *Round) {
	if e.db == nil {
		return
	}
	record := db.Round{
		ID:              round.ID,
		RoomID:          round.RoomID,
		Number:          round.Number,
		QuestionID:      round.QuestionID,
		QuestionText:    round.QuestionText,
		Status:          string(round.Status),
		PhaseEndTime:    round.PhaseEndTime,
		ExpectedImages:  round.ExpectedImages,
		CompletedImages: round.CompletedImages,
		GenerationError: round.GenerationError,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("round persist failed", zap.String("round_id", round.ID), zap.Error(err))
	}
}

func (e *Engine) persistPrompt(round *Round, prompt *Prompt) {
	if e.db == nil {
		return
	}
	record := db.Prompt{
		ID:       prompt.ID,
		RoundID:  round.ID,
		PlayerID: prompt.PlayerID,
		Text:     prompt.Text,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("prompt persist failed", zap.String("prompt_id", prompt.ID), zap.Error(err))
	}
}

func (e *Engine) persistImage(round *Round, image *GeneratedImage) {
	if e.db == nil {
		return
	}
	record := db.GeneratedImage{
		ID:       image.ID,
		RoundID:  round.ID,
		PromptID: image.PromptID,
		PlayerID: image.PlayerID,
		URL:      image.URL,
		Error:    image.Error,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("image persist failed", zap.String("image_id", image.ID), zap.Error(err))
	}
}

func (e *Engine) persistVote(round *Round, vote *Vote) {
	if e.db == nil {
		return
	}
	record := db.Vote{
		ID:      vote.ID,
		RoundID: round.ID,
		VoterID: vote.VoterID,
		ImageID: vote.ImageID,
	}
	if err := e.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		e.log.Warn("vote persist failed", zap.String("vote_id", vote.ID), zap.Error(err))
	}
}

func (e *Engine) persistQuestion(question *Question) {
	if e.db == nil {
		return
	}
	record := db.Question{
		ID:     question.ID,
		Text:   question.Text,
		Active: question.Active,
	}
	if err := e.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		e.log.Warn("question persist failed", zap.String("question_id", question.ID), zap.Error(err))
	}
}

type eventPayload struct {
	JoinCode    string `json:"join_code,omitempty"`
	PlayerName  string `json:"player,omitempty"`
	RoundNumber int    `json:"round_number,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Question    string `json:"question,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Count       int    `json:"count,omitempty"`
}

func (e *Engine) recordEvent(roomID, roundID, eventType string, payload eventPayload) {
	if e.db == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	record := db.Event{
		RoomID:    roomID,
		RoundID:   roundID,
		Type:      eventType,
		Payload:   datatypes.JSON(raw),
		CreatedAt: time.Now().UTC(),
	}
	if err := e.db.Create(&record).Error; err != nil {
		e.log.Warn("event persist failed", zap.String("room_id", roomID), zap.Error(err))
	}
}
