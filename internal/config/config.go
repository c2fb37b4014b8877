package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	RoundsPerGame            int
	MaxPlayers               int
	PromptDurationSeconds    int
	GenerateDurationSeconds  int
	VoteDurationSeconds      int
	ResultsDurationSeconds   int
	NextRoundGraceSeconds    int
	WinPoints                int
	ParticipationPoints      int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	NATSURL                  string
	GenerateSubject          string
	ResultSubject            string
}

func Default() Config {
	return Config{
		RoundsPerGame:            3,
		MaxPlayers:               8,
		PromptDurationSeconds:    90,
		GenerateDurationSeconds:  60,
		VoteDurationSeconds:      45,
		ResultsDurationSeconds:   15,
		NextRoundGraceSeconds:    5,
		WinPoints:                1000,
		ParticipationPoints:      100,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		GenerateSubject:          "genimage.generate",
		ResultSubject:            "genimage.result",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("ROUNDS_PER_GAME"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.RoundsPerGame = value
		}
	}
	if raw := os.Getenv("MAX_PLAYERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 1 {
			cfg.MaxPlayers = value
		}
	}
	if raw := os.Getenv("PROMPT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.PromptDurationSeconds = value
		}
	}
	if raw := os.Getenv("GENERATE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.GenerateDurationSeconds = value
		}
	}
	if raw := os.Getenv("VOTE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.VoteDurationSeconds = value
		}
	}
	if raw := os.Getenv("RESULTS_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.ResultsDurationSeconds = value
		}
	}
	if raw := os.Getenv("NEXT_ROUND_GRACE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.NextRoundGraceSeconds = value
		}
	}
	if raw := os.Getenv("WIN_POINTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.WinPoints = value
		}
	}
	if raw := os.Getenv("PARTICIPATION_POINTS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.ParticipationPoints = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("NATS_URL"); raw != "" {
		cfg.NATSURL = raw
	}
	if raw := os.Getenv("GENERATE_SUBJECT"); raw != "" {
		cfg.GenerateSubject = raw
	}
	if raw := os.Getenv("RESULT_SUBJECT"); raw != "" {
		cfg.ResultSubject = raw
	}
	return cfg
}
