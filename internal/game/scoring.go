package game

import (
	"sort"

	"go.uber.org/zap"
)

// CalculateAwards computes per-player point awards for a finished
// voting phase. Pure: the result maps player id to points. The win
// budget is floor-split across the owners of every image tied for the
// most votes; every distinct voter earns the participation amount once,
// winner or not. Zero votes award nothing.
func CalculateAwards(votes []*Vote, images []*GeneratedImage, winBudget, participation int) map[string]int {
	awards := make(map[string]int)
	if len(votes) == 0 {
		return awards
	}

	ownerByImage := make(map[string]string, len(images))
	for _, image := range images {
		ownerByImage[image.ID] = image.PlayerID
	}

	winners := WinningTargets(CountPerTarget(votes))
	if len(winners) > 0 {
		share := winBudget / len(winners)
		for _, imageID := range winners {
			if owner, ok := ownerByImage[imageID]; ok {
				awards[owner] += share
			}
		}
	}

	voted := make(map[string]bool, len(votes))
	for _, vote := range votes {
		if !voted[vote.VoterID] {
			voted[vote.VoterID] = true
			awards[vote.VoterID] += participation
		}
	}
	return awards
}

// applyScores runs once per round at the voting -> results boundary and
// adds the round's awards onto player scores.
func (e *Engine) applyScores(round *Round) {
	votes := e.store.VotesByRound(round.ID)
	images := e.store.ImagesByRound(round.ID)
	awards := CalculateAwards(votes, images, e.cfg.WinPoints, e.cfg.ParticipationPoints)
	if len(awards) == 0 {
		e.log.Info("round scored with no votes",
			zap.String("room_id", round.RoomID),
			zap.String("round_id", round.ID))
		return
	}

	playerIDs := make([]string, 0, len(awards))
	for playerID := range awards {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	for _, playerID := range playerIDs {
		points := awards[playerID]
		player, err := e.store.UpdatePlayer(playerID, func(player *Player) error {
			player.Score += points
			return nil
		})
		if err != nil {
			e.log.Warn("score award skipped, player gone",
				zap.String("round_id", round.ID),
				zap.String("player_id", playerID))
			continue
		}
		e.persistPlayer(player)
	}
	e.recordEvent(round.RoomID, round.ID, "round_scored", eventPayload{
		RoundNumber: round.Number,
		Count:       len(awards),
	})
	e.log.Info("round scored",
		zap.String("room_id", round.RoomID),
		zap.String("round_id", round.ID),
		zap.Int("players_awarded", len(awards)))
}
