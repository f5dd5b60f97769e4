package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"escopo/adapters/postgres"
	"escopo/app"
	"escopo/internal/config"
	"escopo/internal/errors"
	"escopo/internal/ingest"
	"escopo/internal/migration"
	"escopo/ui"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	synonyms, err := ingest.LoadSynonyms(appConfig.Ingest.SynonymFile)
	if err != nil {
		log.Fatalf("Failed to load synonym table: %v", err)
	}

	pipeline := ingest.NewPipeline(synonyms, ingest.LocatorConfig{
		SearchWindow: appConfig.Ingest.HeaderSearchWindow,
		MinMatches:   appConfig.Ingest.MinHeaderMatches,
	})

	repo := postgres.NewScopeRepository(db)
	ingestService := app.NewIngestService(pipeline, repo)

	server := ui.NewServer(appConfig, ingestService, repo)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
