package main

import (
	"net/http"
	"os"

	"promptclash/internal/config"
	"promptclash/internal/db"
	"promptclash/internal/game"
	"promptclash/internal/genimage"
	"promptclash/internal/server"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn("failed to load .env", zap.Error(err))
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		conn, err = db.Open(cfg)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		if err := db.Migrate(conn); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}
	} else {
		logger.Warn("DATABASE_URL not set, running memory-only")
	}

	store := game.NewStore()
	sched := game.NewClockScheduler()
	defer sched.Stop()

	gen, err := genimage.Connect(cfg.NATSURL, logger)
	if err != nil {
		logger.Fatal("nats connection failed", zap.Error(err))
	}
	defer gen.Close()

	engine := game.NewEngine(store, sched, gen, conn, cfg, logger)
	if err := gen.Start(engine, cfg.GenerateSubject, cfg.ResultSubject); err != nil {
		logger.Fatal("nats subscription failed", zap.Error(err))
	}

	srv := server.New(engine, logger)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	logger.Info("promptclash server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
