// package main provides the entry point for the sentinel-backend
// microservice: the CVE ingestion pipeline and the read API it feeds.
package main

import (
	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/internal/api"
	"github.com/sentinelvuln/sentinel-backend/internal/config"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/epss"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/kev"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/nvd"
	"github.com/sentinelvuln/sentinel-backend/internal/ingest"
	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

func main() {
	log := database.InitLogger().Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db := database.InitializeDatabase()
	store := database.NewArangoStore(db)

	engine := query.NewEngine(store)
	pipeline := ingest.NewPipeline(
		store,
		nvd.NewClient(cfg, log),
		kev.NewClient(cfg, log),
		epss.NewClient(cfg, log),
		log,
	)

	app := api.NewFiberApp(engine, pipeline, cfg.IngestInterval, log)

	log.Infof("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
