package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id string, status PlayerStatus) *Player {
	return &Player{ID: id, Status: status}
}

func image(id, ownerID string) *GeneratedImage {
	return &GeneratedImage{ID: id, PlayerID: ownerID}
}

func TestVoteEligibilityLoneSubmitter(t *testing.T) {
	players := []*Player{
		player("p1", PlayerConnected),
		player("p2", PlayerConnected),
	}
	images := []*GeneratedImage{image("img1", "p1")}

	elig := VoteEligibility(players, images)
	assert.False(t, elig["p1"].Eligible)
	assert.Equal(t, "only own image available", elig["p1"].Reason)
	assert.True(t, elig["p2"].Eligible, "non-submitter is eligible when any image exists")
}

func TestVoteEligibilityNoImages(t *testing.T) {
	players := []*Player{
		player("p1", PlayerConnected),
		player("p2", PlayerConnected),
	}

	elig := VoteEligibility(players, nil)
	for id, entry := range elig {
		assert.False(t, entry.Eligible, "player %s should be ineligible with no images", id)
		assert.Equal(t, "no images available", entry.Reason)
	}
}

func TestVoteEligibilityDisconnectedAndKicked(t *testing.T) {
	players := []*Player{
		player("p1", PlayerDisconnected),
		player("p2", PlayerKicked),
		player("p3", PlayerConnected),
	}
	images := []*GeneratedImage{image("img1", "p1"), image("img2", "p3")}

	elig := VoteEligibility(players, images)
	assert.False(t, elig["p1"].Eligible)
	assert.False(t, elig["p2"].Eligible)
	assert.Equal(t, "not connected", elig["p1"].Reason)
	assert.Equal(t, "not connected", elig["p2"].Reason)
	assert.True(t, elig["p3"].Eligible)
}

func TestAllRequiredHaveActed(t *testing.T) {
	elig := map[string]Eligibility{
		"p1": {Eligible: true},
		"p2": {Eligible: true},
		"p3": {Reason: "not connected"},
	}

	assert.False(t, AllRequiredHaveActed(elig, map[string]bool{"p1": true}))
	assert.True(t, AllRequiredHaveActed(elig, map[string]bool{"p1": true, "p2": true}))
}

func TestAllRequiredHaveActedEmptyEligibleSet(t *testing.T) {
	elig := map[string]Eligibility{
		"p1": {Reason: "no images available"},
	}
	assert.False(t, AllRequiredHaveActed(elig, nil),
		"an empty eligible set must never complete a phase")
	assert.False(t, AllRequiredHaveActed(nil, nil))
}

func TestWinningTargetsTies(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 3, "c": 1}
	winners := WinningTargets(counts)
	require.Len(t, winners, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, winners)
}

func TestWinningTargetsEmptyAndZero(t *testing.T) {
	assert.Empty(t, WinningTargets(nil))
	assert.Empty(t, WinningTargets(map[string]int{}))
	assert.Empty(t, WinningTargets(map[string]int{"a": 0, "b": 0}),
		"a count of zero never produces a winner")
}

func TestCountPerTarget(t *testing.T) {
	votes := []*Vote{
		{VoterID: "p1", ImageID: "a"},
		{VoterID: "p2", ImageID: "a"},
		{VoterID: "p3", ImageID: "b"},
	}
	counts := CountPerTarget(votes)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, counts)
}

func TestPromptEligibility(t *testing.T) {
	players := []*Player{
		player("p1", PlayerConnected),
		player("p2", PlayerDisconnected),
	}
	elig := PromptEligibility(players)
	assert.True(t, elig["p1"].Eligible)
	assert.False(t, elig["p2"].Eligible)
}
