package game

import "time"

// RoomStatus is the lifecycle of a room across a whole game.
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomStarting RoomStatus = "starting"
	RoomPlaying  RoomStatus = "playing"
	RoomFinished RoomStatus = "finished"
)

// RoundStatus is the phase state machine of a single round. Linear,
// no back-edges: prompt -> generating -> voting -> results -> complete.
type RoundStatus string

const (
	RoundPrompt     RoundStatus = "prompt"
	RoundGenerating RoundStatus = "generating"
	RoundVoting     RoundStatus = "voting"
	RoundResults    RoundStatus = "results"
	RoundComplete   RoundStatus = "complete"
)

type PlayerStatus string

const (
	PlayerConnected    PlayerStatus = "connected"
	PlayerDisconnected PlayerStatus = "disconnected"
	PlayerKicked       PlayerStatus = "kicked"
)

type Room struct {
	ID            string
	JoinCode      string
	HostID        string
	Status        RoomStatus
	MaxPlayers    int
	RoundsTotal   int
	Private       bool
	CurrentRound  int
	UsedQuestions map[string]struct{}
	CreatedAt     time.Time
}

type Player struct {
	ID       string
	RoomID   string
	UserID   string
	Name     string
	Status   PlayerStatus
	IsHost   bool
	Score    int
	JoinedAt time.Time
}

type Round struct {
	ID           string
	RoomID       string
	Number       int
	QuestionID   string
	QuestionText string
	Status       RoundStatus
	PhaseEndTime time.Time

	// ScheduledTransitionID is the handle of the pending timer-driven
	// transition, or empty while one is being processed. Cleared before
	// a transition branches so a losing racer sees it gone.
	ScheduledTransitionID string

	ExpectedImages  int
	CompletedImages int
	GenerationError string
}

type Prompt struct {
	ID          string
	RoundID     string
	PlayerID    string
	Text        string
	SubmittedAt time.Time
}

type GeneratedImage struct {
	ID          string
	RoundID     string
	PromptID    string
	PlayerID    string
	URL         string
	Error       string
	GeneratedAt time.Time
}

type Vote struct {
	ID          string
	RoundID     string
	VoterID     string
	ImageID     string
	SubmittedAt time.Time
}

type Question struct {
	ID     string
	Text   string
	Active bool
}
