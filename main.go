package main

import (
	"log"
	"os"
	"path/filepath"

	"warden-bot/bot"
	"warden-bot/config"
	"warden-bot/handlers"
	"warden-bot/scheduler"
	"warden-bot/utils/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.Init(filepath.Join(cfg.DataDir, "warden.db"))
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	sched := scheduler.New(db, scheduler.SystemClock())

	b, err := bot.New(cfg, db, sched)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	b.Close()
}
