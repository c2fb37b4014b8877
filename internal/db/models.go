package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID           string    `gorm:"primaryKey;size:36"`
	JoinCode     string    `gorm:"size:12;uniqueIndex;not null"`
	HostID       string    `gorm:"size:36"`
	Status       string    `gorm:"size:32;not null"`
	MaxPlayers   int       `gorm:"not null"`
	RoundsTotal  int       `gorm:"not null"`
	Private      bool      `gorm:"not null;default:false"`
	CurrentRound int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Players      []Player
	Rounds       []Round
	Events       []Event
}

type Player struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoomID    string    `gorm:"size:36;index;not null;uniqueIndex:idx_players_room_user"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_players_room_user"`
	Name      string    `gorm:"size:64;not null"`
	Status    string    `gorm:"size:32;not null"`
	IsHost    bool      `gorm:"not null;default:false"`
	Score     int       `gorm:"not null;default:0"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Round struct {
	ID              string    `gorm:"primaryKey;size:36"`
	RoomID          string    `gorm:"size:36;index;not null;uniqueIndex:idx_rounds_room_number"`
	Number          int       `gorm:"not null;uniqueIndex:idx_rounds_room_number"`
	QuestionID      string    `gorm:"size:36"`
	QuestionText    string    `gorm:"size:280"`
	Status          string    `gorm:"size:32;not null"`
	PhaseEndTime    time.Time `gorm:"not null"`
	ExpectedImages  int       `gorm:"not null;default:0"`
	CompletedImages int       `gorm:"not null;default:0"`
	GenerationError string    `gorm:"size:280"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
	Prompts         []Prompt
	Images          []GeneratedImage
	Votes           []Vote
}

type Prompt struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoundID   string    `gorm:"size:36;index;not null;uniqueIndex:idx_prompts_round_player"`
	PlayerID  string    `gorm:"size:36;not null;uniqueIndex:idx_prompts_round_player"`
	Text      string    `gorm:"size:280;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type GeneratedImage struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoundID   string    `gorm:"size:36;index;not null"`
	PromptID  string    `gorm:"size:36;index;not null"`
	PlayerID  string    `gorm:"size:36;not null"`
	URL       string    `gorm:"size:512"`
	Error     string    `gorm:"size:280"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Vote struct {
	ID        string    `gorm:"primaryKey;size:36"`
	RoundID   string    `gorm:"size:36;index;not null;uniqueIndex:idx_votes_round_voter"`
	VoterID   string    `gorm:"size:36;not null;uniqueIndex:idx_votes_round_voter"`
	ImageID   string    `gorm:"size:36;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Question struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Text      string    `gorm:"size:280;uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    string         `gorm:"size:36;index;not null"`
	RoundID   string         `gorm:"size:36;index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
