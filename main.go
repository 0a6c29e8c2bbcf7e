package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gradstat/adapters/postgres"
	"gradstat/internal"
	"gradstat/internal/cache"
	"gradstat/internal/config"
	"gradstat/internal/debug"
	"gradstat/ports"
	"gradstat/ui"
)

// initDatabase connects to PostgreSQL and ensures the history schema. A
// missing DATABASE_URL is not an error: history is an optional feature.
func initDatabase(cfg *config.Config, logger *internal.Logger) (*sqlx.DB, ports.HistoryRepository) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, analysis history disabled")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Warn("could not connect to database, history disabled: %v", err)
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Warn("could not prepare history schema, history disabled: %v", err)
		db.Close()
		return nil, nil
	}

	logger.Info("analysis history enabled")
	return db, postgres.NewHistoryRepository(db)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, history := initDatabase(cfg, logger)
	if db != nil {
		defer db.Close()
	}

	resultCache := cache.NewManager(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.MaxEntries,
		logger,
	)

	if cfg.Profiling.Enabled {
		ops := debug.NewServer(resultCache, logger)
		go func() {
			if err := ops.Start(":" + cfg.Profiling.Port); err != nil {
				logger.Error("ops server failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(cfg, resultCache, history, logger)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
