package game

import (
	"math/rand"

	"go.uber.org/zap"
)

var defaultQuestions = []string{
	"An animal having the worst day of its life",
	"The last thing you would want to find in your fridge",
	"A superhero with a completely useless power",
	"What the moon does when nobody is watching",
	"The world's most disappointing theme park ride",
	"A monster that is afraid of something ridiculous",
	"The secret life of office furniture",
	"A sport that should never have been invented",
	"Breakfast, but it has gone terribly wrong",
	"The least intimidating pirate on the seven seas",
	"A robot trying to understand a picnic",
	"Your grandmother's wildest dream",
}

// pickQuestion chooses an active question not yet used in this game,
// falling back to any active question, seeding the defaults as a last
// resort. The chosen question is marked used for the room.
func (e *Engine) pickQuestion(room *Room) *Question {
	questions := e.store.ActiveQuestions()
	if len(questions) == 0 {
		e.seedQuestions()
		questions = e.store.ActiveQuestions()
	}
	if len(questions) == 0 {
		return nil
	}

	var unused []*Question
	for _, question := range questions {
		if _, used := room.UsedQuestions[question.ID]; !used {
			unused = append(unused, question)
		}
	}
	pool := unused
	if len(pool) == 0 {
		pool = questions
	}
	question := pool[rand.Intn(len(pool))]
	_, err := e.store.UpdateRoom(room.ID, func(room *Room) error {
		if room.UsedQuestions == nil {
			room.UsedQuestions = make(map[string]struct{})
		}
		room.UsedQuestions[question.ID] = struct{}{}
		return nil
	})
	if err != nil {
		return question
	}
	return question
}

func (e *Engine) seedQuestions() {
	for _, text := range defaultQuestions {
		question := e.store.InsertQuestion(text)
		e.persistQuestion(question)
	}
	e.log.Info("question library seeded", zap.Int("count", len(defaultQuestions)))
}

// LoadQuestions adds questions to the library, skipping duplicates.
func (e *Engine) LoadQuestions(texts []string) int {
	existing := make(map[string]struct{})
	for _, question := range e.store.ActiveQuestions() {
		existing[question.Text] = struct{}{}
	}
	added := 0
	for _, text := range texts {
		trimmed := normalizeText(text)
		if trimmed == "" {
			continue
		}
		if _, ok := existing[trimmed]; ok {
			continue
		}
		existing[trimmed] = struct{}{}
		question := e.store.InsertQuestion(trimmed)
		e.persistQuestion(question)
		added++
	}
	return added
}
