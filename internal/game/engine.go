package game

import (
	"context"

	"promptclash/internal/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Generator is the image-generation collaborator. GenerateBatch fires
// one asynchronous generation job per prompt; results come back through
// Engine.HandleImageResult one image at a time.
type Generator interface {
	GenerateBatch(ctx context.Context, round *Round, prompts []*Prompt) error
}

// Notifier receives a signal whenever a room's derived view may have
// changed. The websocket hub implements it; tests leave it unset.
type Notifier interface {
	RoomUpdated(roomID string)
}

type Engine struct {
	store  *Store
	sched  Scheduler
	gen    Generator
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	notify Notifier
}

func NewEngine(store *Store, sched Scheduler, gen Generator, conn *gorm.DB, cfg config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store: store,
		sched: sched,
		gen:   gen,
		cfg:   cfg,
		db:    conn,
		log:   logger,
	}
}

func (e *Engine) SetNotifier(n Notifier) {
	e.notify = n
}

func (e *Engine) Store() *Store {
	return e.store
}

func (e *Engine) notifyRoom(roomID string) {
	if e.notify != nil {
		e.notify.RoomUpdated(roomID)
	}
}
