package main

import (
	"context"
	"log"
	"os"

	"github.com/playvault/playvault/internal/config"
	"github.com/playvault/playvault/internal/database"
	"github.com/playvault/playvault/internal/jobs"
	"github.com/playvault/playvault/internal/logger"
	"github.com/playvault/playvault/internal/steam"
)

// populate runs one catalog sync pass on demand and exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	syncer := &jobs.Syncer{
		DB:    db,
		Steam: steam.NewClient(cfg.SteamListURL, cfg.SteamDetailsURL),
		Log:   appLog,
		Limit: cfg.SyncLimit,
	}

	if err := syncer.Run(context.Background()); err != nil {
		log.Printf("Catalog sync failed: %v", err)
		os.Exit(1)
	}

	log.Println("Catalog sync completed")
}
