package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("ROUNDS_PER_GAME", "5")
	t.Setenv("PROMPT_SECONDS", "30")
	t.Setenv("WIN_POINTS", "500")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg := Load()
	assert.Equal(t, 5, cfg.RoundsPerGame)
	assert.Equal(t, 30, cfg.PromptDurationSeconds)
	assert.Equal(t, 500, cfg.WinPoints)
	assert.Equal(t, "nats://broker:4222", cfg.NATSURL)
	assert.Equal(t, 8, cfg.MaxPlayers, "untouched values keep defaults")
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("ROUNDS_PER_GAME", "zero")
	t.Setenv("MAX_PLAYERS", "1")
	t.Setenv("VOTE_SECONDS", "-10")

	cfg := Load()
	defaults := Default()
	assert.Equal(t, defaults.RoundsPerGame, cfg.RoundsPerGame)
	assert.Equal(t, defaults.MaxPlayers, cfg.MaxPlayers, "a solo game is never allowed")
	assert.Equal(t, defaults.VoteDurationSeconds, cfg.VoteDurationSeconds)
}
