package game

// Eligibility says whether a player must act in the current phase, and
// why not when they are excused.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// PromptEligibility requires every connected player to submit a prompt.
func PromptEligibility(players []*Player) map[string]Eligibility {
	result := make(map[string]Eligibility, len(players))
	for _, player := range players {
		if player.Status != PlayerConnected {
			result[player.ID] = Eligibility{Reason: "not connected"}
			continue
		}
		result[player.ID] = Eligibility{Eligible: true}
	}
	return result
}

// VoteEligibility requires a vote from every connected player who has
// at least one votable image, that is an image owned by someone else.
// A player whose own image is the only one in the round is excused, as
// is everyone when no images exist at all, so an image-less voting
// phase is never treated as complete and runs out on its timer.
func VoteEligibility(players []*Player, images []*GeneratedImage) map[string]Eligibility {
	result := make(map[string]Eligibility, len(players))
	for _, player := range players {
		if player.Status != PlayerConnected {
			result[player.ID] = Eligibility{Reason: "not connected"}
			continue
		}
		votable := 0
		own := 0
		for _, image := range images {
			if image.PlayerID == player.ID {
				own++
			} else {
				votable++
			}
		}
		if votable > 0 {
			result[player.ID] = Eligibility{Eligible: true}
			continue
		}
		if own > 0 {
			result[player.ID] = Eligibility{Reason: "only own image available"}
		} else {
			result[player.ID] = Eligibility{Reason: "no images available"}
		}
	}
	return result
}

// AllRequiredHaveActed is true only when the eligible set is non-empty
// and every eligible player appears in acted. An empty eligible set is
// never "complete" - a phase with zero required participants waits for
// its timer.
func AllRequiredHaveActed(eligibility map[string]Eligibility, acted map[string]bool) bool {
	required := 0
	for playerID, elig := range eligibility {
		if !elig.Eligible {
			continue
		}
		required++
		if !acted[playerID] {
			return false
		}
	}
	return required > 0
}

// CountPerTarget tallies votes by target image.
func CountPerTarget(votes []*Vote) map[string]int {
	counts := make(map[string]int, len(votes))
	for _, vote := range votes {
		counts[vote.ImageID]++
	}
	return counts
}

// WinningTargets returns every target tied for the maximum count. Ties
// return all tied targets; zero counts never produce a winner.
func WinningTargets(counts map[string]int) []string {
	top := 0
	for _, count := range counts {
		if count > top {
			top = count
		}
	}
	if top == 0 {
		return nil
	}
	var winners []string
	for target, count := range counts {
		if count == top {
			winners = append(winners, target)
		}
	}
	return winners
}
