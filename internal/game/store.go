package game

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the authoritative in-memory state for live rooms. Every
// single-entity read-modify-write goes through an Update* closure under
// the store lock, which is the per-entity atomic mutation guarantee the
// transition idempotence design relies on.
type Store struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	players   map[string]*Player
	rounds    map[string]*Round
	prompts   map[string]*Prompt
	images    map[string]*GeneratedImage
	votes     map[string]*Vote
	questions map[string]*Question
}

func NewStore() *Store {
	return &Store{
		rooms:     make(map[string]*Room),
		players:   make(map[string]*Player),
		rounds:    make(map[string]*Round),
		prompts:   make(map[string]*Prompt),
		images:    make(map[string]*GeneratedImage),
		votes:     make(map[string]*Vote),
		questions: make(map[string]*Question),
	}
}

func (s *Store) CreateRoom(maxPlayers, roundsTotal int, private bool) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := &Room{
		ID:            uuid.NewString(),
		JoinCode:      s.newJoinCodeLocked(),
		Status:        RoomWaiting,
		MaxPlayers:    maxPlayers,
		RoundsTotal:   roundsTotal,
		Private:       private,
		UsedQuestions: make(map[string]struct{}),
		CreatedAt:     time.Now().UTC(),
	}
	s.rooms[room.ID] = room
	return room
}

func (s *Store) GetRoom(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	return room, ok
}

func (s *Store) FindRoomByJoinCode(code string) (*Room, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.rooms {
		if room.JoinCode == code {
			return room, true
		}
	}
	return nil, false
}

func (s *Store) UpdateRoom(id string, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := update(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Store) DeleteRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	for playerID, player := range s.players {
		if player.RoomID == id {
			delete(s.players, playerID)
		}
	}
	for roundID, round := range s.rounds {
		if round.RoomID != id {
			continue
		}
		delete(s.rounds, roundID)
		for promptID, prompt := range s.prompts {
			if prompt.RoundID == roundID {
				delete(s.prompts, promptID)
			}
		}
		for imageID, image := range s.images {
			if image.RoundID == roundID {
				delete(s.images, imageID)
			}
		}
		for voteID, vote := range s.votes {
			if vote.RoundID == roundID {
				delete(s.votes, voteID)
			}
		}
	}
}

func (s *Store) AddPlayer(roomID, userID, name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, player := range s.players {
		if player.RoomID == roomID && player.UserID == userID {
			return player, nil
		}
	}
	if room.Status != RoomWaiting {
		return nil, preconditionErr("game already started")
	}
	connected := 0
	for _, player := range s.players {
		if player.RoomID == roomID && player.Status != PlayerKicked {
			connected++
		}
	}
	if room.MaxPlayers > 0 && connected >= room.MaxPlayers {
		return nil, preconditionErr("room is full")
	}
	player := &Player{
		ID:       uuid.NewString(),
		RoomID:   roomID,
		UserID:   userID,
		Name:     name,
		Status:   PlayerConnected,
		IsHost:   connected == 0,
		JoinedAt: time.Now().UTC(),
	}
	s.players[player.ID] = player
	if player.IsHost {
		room.HostID = player.ID
	}
	return player, nil
}

func (s *Store) GetPlayer(id string) (*Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	return player, ok
}

func (s *Store) UpdatePlayer(id string, update func(player *Player) error) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := update(player); err != nil {
		return nil, err
	}
	return player, nil
}

// PlayersByRoom returns a room's players ordered by join time.
func (s *Store) PlayersByRoom(roomID string) []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*Player
	for _, player := range s.players {
		if player.RoomID == roomID {
			list = append(list, player)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].JoinedAt.Equal(list[j].JoinedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].JoinedAt.Before(list[j].JoinedAt)
	})
	return list
}

func (s *Store) InsertRound(round *Round) *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	s.rounds[round.ID] = round
	return round
}

func (s *Store) GetRound(id string) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	return round, ok
}

func (s *Store) UpdateRound(id string, update func(round *Round) error) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := update(round); err != nil {
		return nil, err
	}
	return round, nil
}

// CurrentRound returns the one round of the room whose status is not
// complete, if any.
func (s *Store) CurrentRound(roomID string) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, round := range s.rounds {
		if round.RoomID == roomID && round.Status != RoundComplete {
			return round, true
		}
	}
	return nil, false
}

func (s *Store) RoundByNumber(roomID string, number int) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, round := range s.rounds {
		if round.RoomID == roomID && round.Number == number {
			return round, true
		}
	}
	return nil, false
}

// UpsertPrompt inserts or replaces the player's prompt for the round.
// Re-submission updates the text in place.
func (s *Store) UpsertPrompt(roundID, playerID, text string) *Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prompt := range s.prompts {
		if prompt.RoundID == roundID && prompt.PlayerID == playerID {
			prompt.Text = text
			prompt.SubmittedAt = time.Now().UTC()
			return prompt
		}
	}
	prompt := &Prompt{
		ID:          uuid.NewString(),
		RoundID:     roundID,
		PlayerID:    playerID,
		Text:        text,
		SubmittedAt: time.Now().UTC(),
	}
	s.prompts[prompt.ID] = prompt
	return prompt
}

func (s *Store) PromptsByRound(roundID string) []*Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*Prompt
	for _, prompt := range s.prompts {
		if prompt.RoundID == roundID {
			list = append(list, prompt)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SubmittedAt.Before(list[j].SubmittedAt) })
	return list
}

func (s *Store) InsertImage(image *GeneratedImage) *GeneratedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	s.images[image.ID] = image
	return image
}

func (s *Store) GetImage(id string) (*GeneratedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	image, ok := s.images[id]
	return image, ok
}

func (s *Store) ImagesByRound(roundID string) []*GeneratedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*GeneratedImage
	for _, image := range s.images {
		if image.RoundID == roundID {
			list = append(list, image)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].GeneratedAt.Before(list[j].GeneratedAt) })
	return list
}

// UpsertVote inserts or replaces the voter's vote for the round.
// Re-voting moves the vote to the new target.
func (s *Store) UpsertVote(roundID, voterID, imageID string) *Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vote := range s.votes {
		if vote.RoundID == roundID && vote.VoterID == voterID {
			vote.ImageID = imageID
			vote.SubmittedAt = time.Now().UTC()
			return vote
		}
	}
	vote := &Vote{
		ID:          uuid.NewString(),
		RoundID:     roundID,
		VoterID:     voterID,
		ImageID:     imageID,
		SubmittedAt: time.Now().UTC(),
	}
	s.votes[vote.ID] = vote
	return vote
}

func (s *Store) VotesByRound(roundID string) []*Vote {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*Vote
	for _, vote := range s.votes {
		if vote.RoundID == roundID {
			list = append(list, vote)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SubmittedAt.Before(list[j].SubmittedAt) })
	return list
}

func (s *Store) InsertQuestion(text string) *Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	question := &Question{
		ID:     uuid.NewString(),
		Text:   text,
		Active: true,
	}
	s.questions[question.ID] = question
	return question
}

func (s *Store) GetQuestion(id string) (*Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	return question, ok
}

func (s *Store) ActiveQuestions() []*Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []*Question
	for _, question := range s.questions {
		if question.Active {
			list = append(list, question)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func (s *Store) newJoinCodeLocked() string {
	for {
		code := randomCode(joinCodeAlphabet, 5)
		taken := false
		for _, room := range s.rooms {
			if room.JoinCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code
		}
	}
}
